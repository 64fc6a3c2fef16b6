package synclog

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "synclog.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAddAndListRecords(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, err := store.Add(ctx, Record{
		WorkoutID:   "abc123",
		ActivityID:  4242,
		ActivityURL: "https://www.strava.com/activities/4242",
		RunID:       "run-1",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected assigned ID")
	}
	if first.UploadedAt.IsZero() {
		t.Fatal("expected UploadedAt to be set")
	}

	if _, err := store.Add(ctx, Record{
		WorkoutID:   "def456",
		ActivityID:  4243,
		ActivityURL: "https://www.strava.com/activities/4243",
		RunID:       "run-1",
	}); err != nil {
		t.Fatalf("Add second: %v", err)
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Most recent first.
	if records[0].WorkoutID != "def456" || records[1].WorkoutID != "abc123" {
		t.Fatalf("unexpected order: %s, %s", records[0].WorkoutID, records[1].WorkoutID)
	}
}

func TestByWorkoutID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	uploadedAt := time.Date(2020, 6, 1, 7, 30, 0, 0, time.UTC)
	if _, err := store.Add(ctx, Record{
		WorkoutID:   "abc123",
		ActivityID:  4242,
		ActivityURL: "https://www.strava.com/activities/4242",
		RunID:       "run-1",
		UploadedAt:  uploadedAt,
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	records, err := store.ByWorkoutID(ctx, "abc123")
	if err != nil {
		t.Fatalf("ByWorkoutID: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if !records[0].UploadedAt.Equal(uploadedAt) {
		t.Fatalf("UploadedAt = %v, want %v", records[0].UploadedAt, uploadedAt)
	}

	none, err := store.ByWorkoutID(ctx, "missing")
	if err != nil {
		t.Fatalf("ByWorkoutID missing: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no records, got %d", len(none))
	}
}

func TestOpenExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "synclog.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Add(context.Background(), Record{WorkoutID: "abc", ActivityID: 1, ActivityURL: "u", RunID: "r"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	records, err := reopened.List(context.Background())
	if err != nil {
		t.Fatalf("List after reopen: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected persisted record, got %d", len(records))
	}
}
