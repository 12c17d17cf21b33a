package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bee-go/internal/api"
	"bee-go/internal/bee"
	"bee-go/internal/session"
	"bee-go/internal/testutil"
	"bee-go/internal/token"
)

// backendSession wires a session store against the stub backend, sharing
// one token store between the client and the session.
func backendSession(t *testing.T, backend *testutil.Backend) (*session.Store, *api.Client, *token.MemoryStore) {
	t.Helper()

	srv := backend.Server(t)
	tokens := token.NewMemoryStore()
	client := api.New(srv.URL, 5*time.Second, tokens, bee.NewNopLogger())
	store := session.NewStore(tokens, client.Users, bee.NewNopLogger())
	return store, client, tokens
}

func TestStore_Login(t *testing.T) {
	t.Run("populates the session and persists the token", func(t *testing.T) {
		backend := testutil.NewBackend()
		_, tok := backend.AddUser("Ada", "ada@example.com", "ada", "pw")
		store, _, tokens := backendSession(t, backend)

		if err := store.Login(context.Background(), tok); err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		user := store.CurrentUser()
		if user == nil || user.Username != "ada" {
			t.Fatalf("CurrentUser() = %+v, want ada", user)
		}
		if !store.Authenticated() {
			t.Error("Authenticated() = false after login")
		}
		persisted, _ := tokens.Load()
		if persisted != tok {
			t.Errorf("persisted token = %q, want %q", persisted, tok)
		}
	})

	t.Run("is all-or-nothing when user resolution fails", func(t *testing.T) {
		backend := testutil.NewBackend()
		store, _, tokens := backendSession(t, backend)

		err := store.Login(context.Background(), "tok-does-not-exist")
		if err == nil {
			t.Fatal("Login() error = nil, want error")
		}

		if store.CurrentUser() != nil {
			t.Error("CurrentUser() != nil after failed login")
		}
		if store.Token() != "" {
			t.Errorf("Token() = %q, want empty", store.Token())
		}
		persisted, _ := tokens.Load()
		if persisted != "" {
			t.Errorf("persisted token = %q, want empty", persisted)
		}
	})
}

func TestStore_Logout(t *testing.T) {
	backend := testutil.NewBackend()
	_, tok := backend.AddUser("Ada", "ada@example.com", "ada", "pw")
	store, _, tokens := backendSession(t, backend)

	if err := store.Login(context.Background(), tok); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := store.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	if store.Authenticated() {
		t.Error("Authenticated() = true after logout")
	}
	if store.CurrentUser() != nil {
		t.Error("CurrentUser() != nil after logout")
	}
	persisted, _ := tokens.Load()
	if persisted != "" {
		t.Errorf("persisted token = %q, want empty", persisted)
	}
}

func TestStore_Initialize(t *testing.T) {
	t.Run("restores a session from a valid persisted token", func(t *testing.T) {
		backend := testutil.NewBackend()
		_, tok := backend.AddUser("Ada", "ada@example.com", "ada", "pw")
		store, _, tokens := backendSession(t, backend)
		tokens.Save(tok)

		if err := store.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize() error = %v", err)
		}
		user := store.CurrentUser()
		if user == nil || user.Username != "ada" {
			t.Fatalf("CurrentUser() = %+v, want ada", user)
		}
	})

	t.Run("empty slot leaves the store unauthenticated without error", func(t *testing.T) {
		store, _, _ := backendSession(t, testutil.NewBackend())

		if err := store.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize() error = %v", err)
		}
		if store.Authenticated() {
			t.Error("Authenticated() = true with empty slot")
		}
	})

	t.Run("rejected token is purged without error", func(t *testing.T) {
		backend := testutil.NewBackend()
		store, _, tokens := backendSession(t, backend)
		tokens.Save("tok-stale")

		if err := store.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize() error = %v", err)
		}
		if store.Authenticated() {
			t.Error("Authenticated() = true with rejected token")
		}
		persisted, _ := tokens.Load()
		if persisted != "" {
			t.Errorf("persisted token = %q, want empty", persisted)
		}
	})

	t.Run("transport failure surfaces and keeps the slot", func(t *testing.T) {
		backend := testutil.NewBackend()
		_, tok := backend.AddUser("Ada", "ada@example.com", "ada", "pw")
		store, _, tokens := backendSession(t, backend)
		tokens.Save(tok)
		backend.FailNext(500, "database down")

		if err := store.Initialize(context.Background()); err == nil {
			t.Fatal("Initialize() error = nil, want error")
		}
		if store.Authenticated() {
			t.Error("Authenticated() = true after failed restore")
		}
		persisted, _ := tokens.Load()
		if persisted != tok {
			t.Errorf("persisted token = %q, want kept", persisted)
		}
	})

	t.Run("runs exactly once per process", func(t *testing.T) {
		backend := testutil.NewBackend()
		_, tok := backend.AddUser("Ada", "ada@example.com", "ada", "pw")
		store, _, tokens := backendSession(t, backend)

		if err := store.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize() error = %v", err)
		}

		// A token appearing after the first call must not be picked up.
		tokens.Save(tok)
		if err := store.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize() #2 error = %v", err)
		}
		if store.Authenticated() {
			t.Error("Authenticated() = true, second Initialize should be a no-op")
		}
	})
}

func TestStore_Refresh(t *testing.T) {
	t.Run("reconciles the snapshot with the backend", func(t *testing.T) {
		backend := testutil.NewBackend()
		ada, tok := backend.AddUser("Ada", "ada@example.com", "ada", "pw")
		bob, _ := backend.AddUser("Bob", "bob@example.com", "bob", "pw")
		store, _, _ := backendSession(t, backend)

		if err := store.Login(context.Background(), tok); err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		backend.SetFollowing(ada, bob)
		if err := store.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh() error = %v", err)
		}
		if !store.CurrentUser().IsFollowing(bob) {
			t.Error("IsFollowing(bob) = false after refresh")
		}
	})

	t.Run("auth rejection acts as an implicit logout", func(t *testing.T) {
		backend := testutil.NewBackend()
		_, tok := backend.AddUser("Ada", "ada@example.com", "ada", "pw")
		store, _, tokens := backendSession(t, backend)

		if err := store.Login(context.Background(), tok); err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		backend.RevokeToken(tok)
		err := store.Refresh(context.Background())
		if err == nil {
			t.Fatal("Refresh() error = nil, want error")
		}
		if store.Authenticated() {
			t.Error("Authenticated() = true after rejected refresh")
		}
		if store.Token() != "" {
			t.Errorf("Token() = %q, want empty", store.Token())
		}
		persisted, _ := tokens.Load()
		if persisted != "" {
			t.Errorf("persisted token = %q, want empty", persisted)
		}
	})

	t.Run("transport failure keeps the previous snapshot", func(t *testing.T) {
		backend := testutil.NewBackend()
		_, tok := backend.AddUser("Ada", "ada@example.com", "ada", "pw")
		store, _, _ := backendSession(t, backend)

		if err := store.Login(context.Background(), tok); err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		backend.FailNext(500, "database down")
		if err := store.Refresh(context.Background()); err == nil {
			t.Fatal("Refresh() error = nil, want error")
		}
		if !store.Authenticated() {
			t.Error("Authenticated() = false, snapshot should survive a transport failure")
		}
	})

	t.Run("without a session returns ErrNoSession", func(t *testing.T) {
		store, _, _ := backendSession(t, testutil.NewBackend())
		if err := store.Refresh(context.Background()); !errors.Is(err, bee.ErrNoSession) {
			t.Errorf("Refresh() error = %v, want ErrNoSession", err)
		}
	})
}

func TestStore_CurrentUserReturnsCopy(t *testing.T) {
	backend := testutil.NewBackend()
	_, tok := backend.AddUser("Ada", "ada@example.com", "ada", "pw")
	store, _, _ := backendSession(t, backend)

	if err := store.Login(context.Background(), tok); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	first := store.CurrentUser()
	first.Username = "mutated"
	if got := store.CurrentUser().Username; got != "ada" {
		t.Errorf("Username = %q after caller mutation, want %q", got, "ada")
	}
}
