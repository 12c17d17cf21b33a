package database_test

import (
	"testing"
	"time"

	"bee-go/internal/bee"
	"bee-go/internal/testutil"
)

func TestSQLiteStore_Drafts(t *testing.T) {
	clock := testutil.FixedClock()

	t.Run("save and find round trip", func(t *testing.T) {
		store := testutil.NewTestStore(t, clock)

		draft := &bee.Draft{
			ID:        "d1",
			Caption:   "sunset",
			Image:     "/tmp/sunset.jpg",
			Location:  "Lisbon",
			CreatedAt: clock.Now(),
		}
		if err := store.SaveDraft(draft); err != nil {
			t.Fatalf("SaveDraft() error = %v", err)
		}

		got, err := store.FindDraft("d1")
		if err != nil {
			t.Fatalf("FindDraft() error = %v", err)
		}
		if got == nil {
			t.Fatal("FindDraft() = nil, want draft")
		}
		if got.Caption != "sunset" || got.Location != "Lisbon" {
			t.Errorf("FindDraft() = %+v, want saved fields", got)
		}
	})

	t.Run("missing draft yields nil without error", func(t *testing.T) {
		store := testutil.NewTestStore(t, clock)

		got, err := store.FindDraft("nope")
		if err != nil {
			t.Fatalf("FindDraft() error = %v", err)
		}
		if got != nil {
			t.Errorf("FindDraft() = %+v, want nil", got)
		}
	})

	t.Run("save with an existing id replaces the draft", func(t *testing.T) {
		store := testutil.NewTestStore(t, clock)

		store.SaveDraft(&bee.Draft{ID: "d1", Caption: "first", Image: "a", CreatedAt: clock.Now()})
		if err := store.SaveDraft(&bee.Draft{ID: "d1", Caption: "second", Image: "a", CreatedAt: clock.Now()}); err != nil {
			t.Fatalf("SaveDraft() error = %v", err)
		}

		got, _ := store.FindDraft("d1")
		if got.Caption != "second" {
			t.Errorf("Caption = %q, want %q", got.Caption, "second")
		}
		drafts, _ := store.ListDrafts()
		if len(drafts) != 1 {
			t.Errorf("len(drafts) = %d, want 1", len(drafts))
		}
	})

	t.Run("list returns newest first", func(t *testing.T) {
		store := testutil.NewTestStore(t, clock)
		base := clock.Now()

		store.SaveDraft(&bee.Draft{ID: "old", Caption: "c", Image: "i", CreatedAt: base})
		store.SaveDraft(&bee.Draft{ID: "new", Caption: "c", Image: "i", CreatedAt: base.Add(time.Hour)})

		drafts, err := store.ListDrafts()
		if err != nil {
			t.Fatalf("ListDrafts() error = %v", err)
		}
		if len(drafts) != 2 {
			t.Fatalf("len(drafts) = %d, want 2", len(drafts))
		}
		if drafts[0].ID != "new" || drafts[1].ID != "old" {
			t.Errorf("order = [%s %s], want [new old]", drafts[0].ID, drafts[1].ID)
		}
	})

	t.Run("deleting a missing draft is a no-op", func(t *testing.T) {
		store := testutil.NewTestStore(t, clock)
		if err := store.DeleteDraft("nope"); err != nil {
			t.Errorf("DeleteDraft() error = %v", err)
		}
	})
}

func TestSQLiteStore_Journal(t *testing.T) {
	t.Run("create and finish a record", func(t *testing.T) {
		clock := testutil.FixedClock()
		store := testutil.NewTestStore(t, clock)

		rec, err := store.CreateCommand("PublishPost", "photo.jpg")
		if err != nil {
			t.Fatalf("CreateCommand() error = %v", err)
		}
		if rec.ID == 0 {
			t.Error("CreateCommand() ID = 0, want assigned")
		}
		if rec.Status != "success" {
			t.Errorf("Status = %q, want %q", rec.Status, "success")
		}

		clock.Advance(2 * time.Second)
		if err := store.FinishCommand(rec.ID, "error"); err != nil {
			t.Fatalf("FinishCommand() error = %v", err)
		}

		records, err := store.RecentCommands(10)
		if err != nil {
			t.Fatalf("RecentCommands() error = %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("len(records) = %d, want 1", len(records))
		}
		got := records[0]
		if got.Status != "error" {
			t.Errorf("Status = %q, want %q", got.Status, "error")
		}
		if got.FinishedAt == nil {
			t.Fatal("FinishedAt = nil after FinishCommand()")
		}
		if want := got.StartedAt.Add(2 * time.Second); !got.FinishedAt.Equal(want) {
			t.Errorf("FinishedAt = %v, want %v", got.FinishedAt, want)
		}
	})

	t.Run("recent returns newest first and honors the limit", func(t *testing.T) {
		store := testutil.NewTestStore(t, testutil.FixedClock())

		for _, cmd := range []string{"Login", "GetFeed", "PublishPost"} {
			if _, err := store.CreateCommand(cmd, ""); err != nil {
				t.Fatalf("CreateCommand(%s) error = %v", cmd, err)
			}
		}

		records, err := store.RecentCommands(2)
		if err != nil {
			t.Fatalf("RecentCommands() error = %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("len(records) = %d, want 2", len(records))
		}
		if records[0].Command != "PublishPost" || records[1].Command != "GetFeed" {
			t.Errorf("order = [%s %s], want [PublishPost GetFeed]", records[0].Command, records[1].Command)
		}
	})

	t.Run("unfinished records have nil FinishedAt", func(t *testing.T) {
		store := testutil.NewTestStore(t, testutil.FixedClock())

		store.CreateCommand("GetFeed", "")
		records, _ := store.RecentCommands(1)
		if records[0].FinishedAt != nil {
			t.Errorf("FinishedAt = %v, want nil", records[0].FinishedAt)
		}
	})
}

func TestSQLiteStore_Migrations(t *testing.T) {
	clock := testutil.FixedClock()

	// NewTestStore migrates; a second check must pass.
	store := testutil.NewTestStore(t, clock)
	if err := store.CheckMigrations(); err != nil {
		t.Errorf("CheckMigrations() error = %v after Migrate()", err)
	}
}
