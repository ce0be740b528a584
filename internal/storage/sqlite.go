// Package storage provides SQLite-based persistence for finished matches.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/bioblitz/internal/registry"
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// Match is one finished match.
type Match struct {
	ID         int64
	GameID     string
	Winner     string // "green" or "red"
	GreenScore int
	RedScore   int
	Moves      int
	Duration   int // Duration in seconds
	CreatedAt  time.Time
}

// WinCounts holds per-colour victories for one variant.
type WinCounts struct {
	Green int
	Red   int
}

// Total returns the number of decided matches.
func (w WinCounts) Total() int {
	return w.Green + w.Red
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			winner TEXT NOT NULL,
			green_score INTEGER NOT NULL DEFAULT 0,
			red_score INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_game_id ON matches(game_id);
		CREATE INDEX IF NOT EXISTS idx_matches_recent ON matches(game_id, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a finished match.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(m Match) (int64, error) {
	if m.Winner == "" {
		return 0, errors.New("storage: cannot save match without a winner")
	}

	result, err := s.db.Exec(
		`INSERT INTO matches (game_id, winner, green_score, red_score, moves, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.GameID, m.Winner, m.GreenScore, m.RedScore, m.Moves, m.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordResult implements the platform's result recorder.
// This adapter lets the TUI save results without knowing the schema.
func (s *Store) RecordResult(r registry.MatchResult) error {
	_, err := s.SaveMatch(Match{
		GameID:     r.GameID,
		Winner:     r.Winner,
		GreenScore: r.GreenScore,
		RedScore:   r.RedScore,
		Moves:      r.Moves,
		Duration:   int(r.Duration / time.Second),
	})
	return err
}

// RecentMatches retrieves the latest N matches for the given variant,
// newest first.
func (s *Store) RecentMatches(gameID string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, winner, green_score, red_score, moves, duration_secs, created_at
		 FROM matches
		 WHERE game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		var createdAt any
		if err := rows.Scan(&m.ID, &m.GameID, &m.Winner, &m.GreenScore, &m.RedScore,
			&m.Moves, &m.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.CreatedAt = parseTime(createdAt)
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return matches, nil
}

// WinCounts returns how many matches each colour has won on the given variant.
func (s *Store) WinCounts(gameID string) (WinCounts, error) {
	var wins WinCounts
	err := s.db.QueryRow(
		`SELECT
		   COALESCE(SUM(CASE WHEN winner = 'green' THEN 1 ELSE 0 END), 0),
		   COALESCE(SUM(CASE WHEN winner = 'red' THEN 1 ELSE 0 END), 0)
		 FROM matches WHERE game_id = ?`,
		gameID,
	).Scan(&wins.Green, &wins.Red)
	if err != nil {
		return WinCounts{}, fmt.Errorf("storage: cannot count wins: %w", err)
	}
	return wins, nil
}

// ClearMatches deletes all matches for the given variant.
func (s *Store) ClearMatches(gameID string) error {
	_, err := s.db.Exec("DELETE FROM matches WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a variant.
type GameStats struct {
	GameID       string
	MatchesCount int
	Wins         WinCounts
	BestScore    int // Largest winning cell count
	AvgMoves     float64
	AvgDuration  float64 // Seconds
	LastPlayed   time.Time
}

// Stats retrieves aggregated statistics for a specific variant.
func (s *Store) Stats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(MAX(CASE WHEN winner = 'green' THEN green_score ELSE red_score END), 0),
		        COALESCE(AVG(moves), 0),
		        COALESCE(AVG(duration_secs), 0)
		 FROM matches WHERE game_id = ?`,
		gameID,
	).Scan(&stats.MatchesCount, &stats.BestScore, &stats.AvgMoves, &stats.AvgDuration)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	wins, err := s.WinCounts(gameID)
	if err != nil {
		return nil, err
	}
	stats.Wins = wins

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM matches WHERE game_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetime values from SQLite.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
