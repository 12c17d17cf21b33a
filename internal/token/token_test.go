package token_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"bee-go/internal/config"
	"bee-go/internal/token"

	"github.com/golang-jwt/jwt/v5"
)

func TestFileStore(t *testing.T) {
	t.Run("save, load, clear round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token")
		store := token.NewFileStore(path)

		if err := store.Save("secret"); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got != "secret" {
			t.Errorf("Load() = %q, want %q", got, "secret")
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("token file mode = %o, want 0600", info.Mode().Perm())
		}

		if err := store.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("token file still exists after Clear()")
		}
	})

	t.Run("missing file loads as empty without error", func(t *testing.T) {
		store := token.NewFileStore(filepath.Join(t.TempDir(), "nope"))
		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got != "" {
			t.Errorf("Load() = %q, want empty", got)
		}
	})

	t.Run("clearing a missing file is a no-op", func(t *testing.T) {
		store := token.NewFileStore(filepath.Join(t.TempDir(), "nope"))
		if err := store.Clear(); err != nil {
			t.Errorf("Clear() error = %v", err)
		}
	})

	t.Run("creates parent directories on save", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "deeper", "token")
		store := token.NewFileStore(path)
		if err := store.Save("secret"); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, _ := store.Load()
		if got != "secret" {
			t.Errorf("Load() = %q, want %q", got, "secret")
		}
	})
}

func TestAgeStore(t *testing.T) {
	newStore := func(t *testing.T) *token.AgeStore {
		t.Helper()
		dir := t.TempDir()
		store := token.NewAgeStore(
			filepath.Join(dir, "token.age"),
			filepath.Join(dir, "recipient"),
			filepath.Join(dir, "identity"),
		)
		if err := store.Setup(); err != nil {
			t.Fatalf("Setup() error = %v", err)
		}
		return store
	}

	t.Run("round trip keeps the token unreadable at rest", func(t *testing.T) {
		dir := t.TempDir()
		tokenPath := filepath.Join(dir, "token.age")
		store := token.NewAgeStore(tokenPath, filepath.Join(dir, "recipient"), filepath.Join(dir, "identity"))
		if err := store.Setup(); err != nil {
			t.Fatalf("Setup() error = %v", err)
		}

		if err := store.Save("secret-token"); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		raw, err := os.ReadFile(tokenPath)
		if err != nil {
			t.Fatalf("reading ciphertext: %v", err)
		}
		if string(raw) == "secret-token" {
			t.Error("token stored in plaintext")
		}

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got != "secret-token" {
			t.Errorf("Load() = %q, want %q", got, "secret-token")
		}
	})

	t.Run("missing ciphertext loads as empty", func(t *testing.T) {
		store := newStore(t)
		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got != "" {
			t.Errorf("Load() = %q, want empty", got)
		}
	})

	t.Run("setup refuses to overwrite existing keys", func(t *testing.T) {
		dir := t.TempDir()
		store := token.NewAgeStore(
			filepath.Join(dir, "token.age"),
			filepath.Join(dir, "recipient"),
			filepath.Join(dir, "identity"),
		)
		if err := store.Setup(); err != nil {
			t.Fatalf("Setup() error = %v", err)
		}
		if err := store.Setup(); err == nil {
			t.Error("second Setup() error = nil, want error")
		}
	})

	t.Run("IsConfigured", func(t *testing.T) {
		dir := t.TempDir()
		store := token.NewAgeStore(
			filepath.Join(dir, "token.age"),
			filepath.Join(dir, "recipient"),
			filepath.Join(dir, "identity"),
		)
		if store.IsConfigured() {
			t.Error("IsConfigured() = true before Setup()")
		}
		if err := store.Setup(); err != nil {
			t.Fatalf("Setup() error = %v", err)
		}
		if !store.IsConfigured() {
			t.Error("IsConfigured() = false after Setup()")
		}
	})
}

func TestMemoryStore(t *testing.T) {
	store := token.NewMemoryStore()

	got, err := store.Load()
	if err != nil || got != "" {
		t.Fatalf("Load() = %q, %v; want empty, nil", got, err)
	}

	store.Save("secret")
	got, _ = store.Load()
	if got != "secret" {
		t.Errorf("Load() = %q, want %q", got, "secret")
	}

	store.Clear()
	got, _ = store.Load()
	if got != "" {
		t.Errorf("Load() = %q after Clear(), want empty", got)
	}
}

func TestNewStoreFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.TokenConfig
		wantErr bool
	}{
		{"file", config.TokenConfig{Type: "file", Path: "/tmp/t"}, false},
		{"empty type defaults to file", config.TokenConfig{Path: "/tmp/t"}, false},
		{"file without path", config.TokenConfig{Type: "file"}, true},
		{"age", config.TokenConfig{Type: "age", Path: "/tmp/t", RecipientPath: "/tmp/r", IdentityPath: "/tmp/i"}, false},
		{"age missing identity", config.TokenConfig{Type: "age", Path: "/tmp/t", RecipientPath: "/tmp/r"}, true},
		{"memory", config.TokenConfig{Type: "memory"}, false},
		{"unknown", config.TokenConfig{Type: "vault"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := token.NewStoreFromConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewStoreFromConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	t.Run("reads subject and expiry from a JWT", func(t *testing.T) {
		issued := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
		expires := issued.Add(24 * time.Hour)
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "ada@example.com",
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		}).SignedString([]byte("test-key"))
		if err != nil {
			t.Fatalf("signing test token: %v", err)
		}

		claims, ok := token.Inspect(signed)
		if !ok {
			t.Fatal("Inspect() ok = false, want true")
		}
		if claims.Subject != "ada@example.com" {
			t.Errorf("Subject = %q, want %q", claims.Subject, "ada@example.com")
		}
		if !claims.ExpiresAt.Equal(expires) {
			t.Errorf("ExpiresAt = %v, want %v", claims.ExpiresAt, expires)
		}
		if claims.Expired(issued) {
			t.Error("Expired(before expiry) = true")
		}
		if !claims.Expired(expires.Add(time.Minute)) {
			t.Error("Expired(after expiry) = false")
		}
	})

	t.Run("an opaque token is not an error", func(t *testing.T) {
		if _, ok := token.Inspect("tok-12345"); ok {
			t.Error("Inspect(opaque) ok = true, want false")
		}
	})

	t.Run("claims without expiry never expire", func(t *testing.T) {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject: "ada@example.com",
		}).SignedString([]byte("test-key"))
		if err != nil {
			t.Fatalf("signing test token: %v", err)
		}
		claims, ok := token.Inspect(signed)
		if !ok {
			t.Fatal("Inspect() ok = false, want true")
		}
		if claims.Expired(time.Now().Add(1000 * time.Hour)) {
			t.Error("Expired() = true for token without expiry")
		}
	})
}
