package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func saveTestReplay(t *testing.T, store *Store, gameID string, score int) int64 {
	t.Helper()
	id, err := store.SaveReplay(Replay{
		GameID:     gameID,
		Seed:       int64(score) + 1,
		Config:     "grid:\n    visible_rows: 15\n",
		Inputs:     "0:10,8:1,0:100",
		Ticks:      111,
		FinalScore: score,
	})
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreIndexes(t *testing.T) {
	store := openTestStore(t)

	rows, err := store.db.Query(`SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = 'replays' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		t.Fatalf("query indexes: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan index: %v", err)
		}
		names = append(names, name)
	}
	if len(names) != 1 || names[0] != "idx_replays_game_id" {
		t.Errorf("indexes = %v, want only idx_replays_game_id", names)
	}
}

func TestStoreSaveAndLoadReplay(t *testing.T) {
	store := openTestStore(t)

	id := saveTestReplay(t, store, "doodle", 700)

	r, err := store.Replay(id)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if r == nil {
		t.Fatal("Replay() returned nil for a saved ID")
	}
	if r.GameID != "doodle" || r.Seed != 701 || r.FinalScore != 700 || r.Ticks != 111 {
		t.Errorf("loaded replay = %+v", r)
	}
	if r.Inputs != "0:10,8:1,0:100" || r.Config == "" {
		t.Errorf("loaded replay lost its recording: inputs=%q config=%q", r.Inputs, r.Config)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}

	missing, err := store.Replay(id + 100)
	if err != nil || missing != nil {
		t.Errorf("Replay(missing) = %v, %v, want nil, nil", missing, err)
	}
}

func TestStoreRecentReplays(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 300, 200} {
		saveTestReplay(t, store, "doodle", score)
	}
	saveTestReplay(t, store, "other", 900)

	replays, err := store.RecentReplays("doodle", 2)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(replays) != 2 {
		t.Fatalf("Expected 2 replays with limit, got %d", len(replays))
	}
	// Same-second inserts fall back to ID order, newest first.
	if replays[0].FinalScore != 200 || replays[1].FinalScore != 300 {
		t.Errorf("Replays not newest first: %+v", replays)
	}
	if replays[0].Inputs != "" {
		t.Error("listing should not load the recording")
	}
}

func TestStoreDeleteAndClear(t *testing.T) {
	store := openTestStore(t)

	keep := saveTestReplay(t, store, "doodle", 100)
	drop := saveTestReplay(t, store, "doodle", 200)
	saveTestReplay(t, store, "other", 300)

	if err := store.DeleteReplay(drop); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}
	if r, _ := store.Replay(drop); r != nil {
		t.Error("deleted replay still loads")
	}
	if r, _ := store.Replay(keep); r == nil {
		t.Error("DeleteReplay removed the wrong row")
	}

	if err := store.ClearReplays("doodle"); err != nil {
		t.Fatalf("ClearReplays() failed: %v", err)
	}
	if replays, _ := store.RecentReplays("doodle", 10); len(replays) != 0 {
		t.Errorf("Expected 0 doodle replays after clear, got %d", len(replays))
	}
	if replays, _ := store.RecentReplays("other", 10); len(replays) != 1 {
		t.Error("Other games should not be affected by clearing doodle")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("doodle")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	saveTestReplay(t, store, "doodle", 100)
	saveTestReplay(t, store, "doodle", 300)

	stats, err = store.GetGameStats("doodle")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.TotalTicks != 222 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not populated")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
