package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/bioblitz/internal/registry"
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
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRecent(t *testing.T) {
	store := openTestStore(t)

	matches := []Match{
		{GameID: "bioblitz", Winner: "green", GreenScore: 200, RedScore: 0, Moves: 31, Duration: 95},
		{GameID: "bioblitz", Winner: "red", GreenScore: 0, RedScore: 180, Moves: 40, Duration: 120},
		{GameID: "bioblitz_small", Winner: "green", GreenScore: 90, RedScore: 0, Moves: 12, Duration: 30},
	}
	for _, m := range matches {
		if _, err := store.SaveMatch(m); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	recent, err := store.RecentMatches("bioblitz", 10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(recent))
	}

	// Same timestamp resolution, so the later insert wins the tie on id
	if recent[0].Winner != "red" || recent[0].RedScore != 180 {
		t.Errorf("Expected newest match first, got %+v", recent[0])
	}
	if recent[1].Moves != 31 || recent[1].Duration != 95 {
		t.Errorf("Match fields not round-tripped: %+v", recent[1])
	}

	small, err := store.RecentMatches("bioblitz_small", 10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(small) != 1 {
		t.Errorf("Expected 1 small match, got %d", len(small))
	}
}

func TestStoreRecentLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveMatch(Match{GameID: "test", Winner: "green", GreenScore: i + 1})
	}

	recent, err := store.RecentMatches("test", 3)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("Expected 3 matches with limit, got %d", len(recent))
	}
}

func TestStoreRejectsMatchWithoutWinner(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveMatch(Match{GameID: "bioblitz"}); err == nil {
		t.Error("Expected error for match without winner")
	}
}

func TestStoreWinCounts(t *testing.T) {
	store := openTestStore(t)

	wins, err := store.WinCounts("bioblitz")
	if err != nil {
		t.Fatalf("WinCounts() failed: %v", err)
	}
	if wins.Total() != 0 {
		t.Errorf("Expected no wins on empty store, got %+v", wins)
	}

	for _, w := range []string{"green", "green", "red"} {
		store.SaveMatch(Match{GameID: "bioblitz", Winner: w})
	}
	store.SaveMatch(Match{GameID: "bioblitz_large", Winner: "red"})

	wins, err = store.WinCounts("bioblitz")
	if err != nil {
		t.Fatalf("WinCounts() failed: %v", err)
	}
	if wins.Green != 2 || wins.Red != 1 {
		t.Errorf("Expected 2 green / 1 red, got %+v", wins)
	}
}

func TestStoreRecordResult(t *testing.T) {
	store := openTestStore(t)

	err := store.RecordResult(registry.MatchResult{
		GameID:     "bioblitz",
		Winner:     "red",
		GreenScore: 0,
		RedScore:   77,
		Moves:      9,
		Duration:   42*time.Second + 900*time.Millisecond,
	})
	if err != nil {
		t.Fatalf("RecordResult() failed: %v", err)
	}

	recent, _ := store.RecentMatches("bioblitz", 1)
	if len(recent) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(recent))
	}
	if recent[0].Duration != 42 {
		t.Errorf("Expected duration truncated to 42s, got %d", recent[0].Duration)
	}
	if recent[0].RedScore != 77 || recent[0].Moves != 9 {
		t.Errorf("Unexpected match: %+v", recent[0])
	}
}

func TestStoreClearMatches(t *testing.T) {
	store := openTestStore(t)

	store.SaveMatch(Match{GameID: "bioblitz", Winner: "green"})
	store.SaveMatch(Match{GameID: "bioblitz_small", Winner: "red"})

	if err := store.ClearMatches("bioblitz"); err != nil {
		t.Fatalf("ClearMatches() failed: %v", err)
	}

	recent, _ := store.RecentMatches("bioblitz", 10)
	if len(recent) != 0 {
		t.Errorf("Expected 0 matches after clear, got %d", len(recent))
	}

	small, _ := store.RecentMatches("bioblitz_small", 10)
	if len(small) != 1 {
		t.Errorf("Other variant should be untouched, got %d matches", len(small))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("bioblitz")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.MatchesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveMatch(Match{GameID: "bioblitz", Winner: "green", GreenScore: 150, Moves: 10, Duration: 60})
	store.SaveMatch(Match{GameID: "bioblitz", Winner: "red", RedScore: 210, Moves: 20, Duration: 120})

	stats, err := store.Stats("bioblitz")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.MatchesCount != 2 {
		t.Errorf("Expected 2 matches, got %d", stats.MatchesCount)
	}
	if stats.BestScore != 210 {
		t.Errorf("Expected best score 210, got %d", stats.BestScore)
	}
	if stats.AvgMoves != 15 {
		t.Errorf("Expected avg moves 15, got %v", stats.AvgMoves)
	}
	if stats.Wins.Green != 1 || stats.Wins.Red != 1 {
		t.Errorf("Unexpected wins: %+v", stats.Wins)
	}
}
