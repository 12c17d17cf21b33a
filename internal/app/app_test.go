package app

import (
	"context"
	"testing"
	"time"

	"bee-go/internal/config"
	"bee-go/internal/testutil"
)

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	return &config.Config{
		ClientID:   "test-client",
		BaseURL:    baseURL,
		TimeoutSec: 5,
		LogDir:     t.TempDir(),
		Token:      config.TokenConfig{Type: "memory"},
		Media:      config.MediaConfig{Type: "memory"},
		Database:   config.DatabaseConfig{Type: "memory"},
	}
}

func TestApp_New(t *testing.T) {
	backend := testutil.NewBackend()
	srv := backend.Server(t)

	a, err := New(context.Background(), testConfig(t, srv.URL), "GetFeed")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	if a.Client() == nil || a.Session() == nil || a.Service() == nil || a.Journal() == nil {
		t.Error("New() left a dependency nil")
	}
	if a.Config().ClientID != "test-client" {
		t.Errorf("Config().ClientID = %q, want %q", a.Config().ClientID, "test-client")
	}
}

func TestApp_RequireUser(t *testing.T) {
	t.Run("errors when nobody is logged in", func(t *testing.T) {
		backend := testutil.NewBackend()
		srv := backend.Server(t)

		a, err := New(context.Background(), testConfig(t, srv.URL), "GetFeed")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		defer a.Close()

		if _, err := a.RequireUser(context.Background()); err == nil {
			t.Error("RequireUser() error = nil, want not-logged-in error")
		}
	})

	t.Run("returns the user after login", func(t *testing.T) {
		backend := testutil.NewBackend()
		_, tok := backend.AddUser("Ada", "ada@example.com", "ada", "pw")
		srv := backend.Server(t)

		a, err := New(context.Background(), testConfig(t, srv.URL), "GetFeed")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		defer a.Close()

		if err := a.Session().Login(context.Background(), tok); err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		user, err := a.RequireUser(context.Background())
		if err != nil {
			t.Fatalf("RequireUser() error = %v", err)
		}
		if user.Username != "ada" {
			t.Errorf("Username = %q, want %q", user.Username, "ada")
		}
	})
}

func TestApp_Journal(t *testing.T) {
	t.Run("record once, finish on close", func(t *testing.T) {
		backend := testutil.NewBackend()
		srv := backend.Server(t)

		a, err := New(context.Background(), testConfig(t, srv.URL), "PublishPost")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		if err := a.Record("photo.jpg"); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if err := a.Record("photo.jpg"); err != nil {
			t.Fatalf("Record() #2 error = %v", err)
		}

		records, err := a.Journal().RecentCommands(10)
		if err != nil {
			t.Fatalf("RecentCommands() error = %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("len(records) = %d, want 1 (Record must be idempotent)", len(records))
		}
		if records[0].Command != "PublishPost" || records[0].Parameters != "photo.jpg" {
			t.Errorf("record = %+v, want PublishPost/photo.jpg", records[0])
		}

		if err := a.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	})

	t.Run("fail lands an error status in the journal", func(t *testing.T) {
		backend := testutil.NewBackend()
		srv := backend.Server(t)

		cfg := testConfig(t, srv.URL)
		a, err := New(context.Background(), cfg, "PublishPost")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		if err := a.Record("photo.jpg"); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		a.Fail()

		// Status lands on Close; read it before the memory DB goes away.
		if err := a.db.FinishCommand(a.run.ID, a.run.Status); err != nil {
			t.Fatalf("FinishCommand() error = %v", err)
		}
		records, _ := a.Journal().RecentCommands(1)
		if records[0].Status != "error" {
			t.Errorf("Status = %q, want %q", records[0].Status, "error")
		}

		a.Close()
	})

	t.Run("unrecorded runs leave no journal entry", func(t *testing.T) {
		backend := testutil.NewBackend()
		srv := backend.Server(t)

		a, err := New(context.Background(), testConfig(t, srv.URL), "GetFeed")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		defer a.Close()

		records, err := a.Journal().RecentCommands(10)
		if err != nil {
			t.Fatalf("RecentCommands() error = %v", err)
		}
		if len(records) != 0 {
			t.Errorf("len(records) = %d, want 0", len(records))
		}
	})
}

func TestApp_EndToEndFeed(t *testing.T) {
	backend := testutil.NewBackend()
	clock := testutil.FixedClock()
	backend.Clock = clock

	ada, tok := backend.AddUser("Ada", "ada@example.com", "ada", "pw")
	bob, _ := backend.AddUser("Bob", "bob@example.com", "bob", "pw")
	eve, _ := backend.AddUser("Eve", "eve@example.com", "eve", "pw")
	backend.SetFollowing(ada, bob)

	backend.AddPost(bob, "old from bob", "https://img.example/1.jpg")
	clock.Advance(time.Hour)
	backend.AddPost(ada, "middle from ada", "https://img.example/2.jpg")
	clock.Advance(time.Hour)
	backend.AddPost(bob, "new from bob", "https://img.example/3.jpg")
	backend.AddPost(eve, "unfollowed", "https://img.example/4.jpg")

	srv := backend.Server(t)
	a, err := New(context.Background(), testConfig(t, srv.URL), "GetFeed")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	if err := a.Session().Login(context.Background(), tok); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	posts, err := a.Service().Feed(context.Background())
	if err != nil {
		t.Fatalf("Feed() error = %v", err)
	}

	wantCaptions := []string{"new from bob", "middle from ada", "old from bob"}
	if len(posts) != len(wantCaptions) {
		t.Fatalf("len(posts) = %d, want %d", len(posts), len(wantCaptions))
	}
	for i, want := range wantCaptions {
		if posts[i].Caption != want {
			t.Errorf("posts[%d].Caption = %q, want %q", i, posts[i].Caption, want)
		}
	}
}
