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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{SceneID: "run", Score: 100, Distance: 120, Duration: 10, Seed: 1},
		{SceneID: "run", Score: 50, Distance: 60, Duration: 5, Seed: 2},
		{SceneID: "run", Score: 200, Distance: 250, Duration: 19.5, Seed: 3},
		{SceneID: "other", Score: 500},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("run", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}

	want := []int{200, 100, 50}
	for i, r := range top {
		if r.Score != want[i] {
			t.Errorf("top[%d].Score = %d, want %d", i, r.Score, want[i])
		}
	}
	if top[0].Distance != 250 || top[0].Duration != 19.5 || top[0].Seed != 3 {
		t.Errorf("Run fields not round-tripped: %+v", top[0])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestStoreTopRunsLimitAndTies(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(RunRecord{SceneID: "run", Score: (i + 1) * 100})
	}
	store.SaveRun(RunRecord{SceneID: "run", Score: 500, Distance: 999})

	top, err := store.TopRuns("run", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(top))
	}
	if top[0].Score != 500 || top[0].Distance != 999 {
		t.Errorf("Tie not broken by distance: %+v", top[0])
	}
	if top[2].Score != 400 {
		t.Errorf("top[2].Score = %d, want 400", top[2].Score)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 4; i++ {
		store.SaveRun(RunRecord{SceneID: "run", Score: i})
	}

	recent, err := store.RecentRuns("run", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 4 || recent[1].Score != 3 {
		t.Errorf("RecentRuns() = %+v", recent)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("run")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty scene, got %d", high)
	}

	store.SaveRun(RunRecord{SceneID: "run", Score: 100})
	store.SaveRun(RunRecord{SceneID: "run", Score: 300})
	store.SaveRun(RunRecord{SceneID: "run", Score: 200})

	high, err = store.HighScore("run")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{SceneID: "run", Score: 100})
	store.SaveRun(RunRecord{SceneID: "run", Score: 200})
	store.SaveRun(RunRecord{SceneID: "other", Score: 300})

	if err := store.ClearRuns("run"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("run", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}

	other, _ := store.TopRuns("other", 10)
	if len(other) != 1 {
		t.Errorf("Other scene should not be affected by clearing run")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("run")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Stats() on empty scene = %+v", empty)
	}

	store.SaveRun(RunRecord{SceneID: "run", Score: 100, Distance: 50, Duration: 4})
	store.SaveRun(RunRecord{SceneID: "run", Score: 300, Distance: 150, Duration: 12})

	stats, err := store.Stats("run")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("Stats() = %+v", stats)
	}
	if stats.TotalDistance != 200 || stats.LongestRun != 12 {
		t.Errorf("Stats() distance/duration = %v/%v", stats.TotalDistance, stats.LongestRun)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
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

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
