// Package storage provides SQLite-based persistence for quadfall: the
// top-10 ranking line and a history of finished rounds.
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
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RoundRecord is one finished round.
type RoundRecord struct {
	ID        int64
	Catalog   string
	Seed      int64
	Score     int
	Pieces    int
	Ticks     uint64
	Duration  time.Duration
	CreatedAt time.Time
}

// Stats contains aggregated statistics over all recorded rounds.
type Stats struct {
	Rounds      int
	HighScore   int
	AvgScore    float64
	TotalPieces int64
	TotalTime   time.Duration
	LastPlayed  time.Time
}

// DefaultPath returns ~/.quadfall/quadfall.db.
func DefaultPath() string {
	return filepath.Join("~", ".quadfall", "quadfall.db")
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
		CREATE TABLE IF NOT EXISTS ranking (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			line TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			catalog TEXT NOT NULL,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			pieces INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_score ON rounds(score DESC);
		CREATE INDEX IF NOT EXISTS idx_rounds_created ON rounds(created_at DESC);
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

// Load returns the persisted ranking line, or "" if none was saved.
// Together with Save it makes the store a ranking backend.
func (s *Store) Load() (string, error) {
	var line string
	err := s.db.QueryRow("SELECT line FROM ranking WHERE id = 1").Scan(&line)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot load ranking: %w", err)
	}
	return line, nil
}

// Save replaces the persisted ranking line.
func (s *Store) Save(line string) error {
	_, err := s.db.Exec(
		`INSERT INTO ranking (id, line) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET line = excluded.line, updated_at = CURRENT_TIMESTAMP`,
		line,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save ranking: %w", err)
	}
	return nil
}

// SaveRound records a finished round.
// Returns the ID of the inserted record.
func (s *Store) SaveRound(r RoundRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO rounds (catalog, seed, score, pieces, ticks, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Catalog, r.Seed, r.Score, r.Pieces, int64(r.Ticks), r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRounds retrieves the N best rounds, highest score first.
func (s *Store) TopRounds(limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRounds(
		`SELECT id, catalog, seed, score, pieces, ticks, duration_ms, created_at
		 FROM rounds
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// RecentRounds retrieves the N most recent rounds, newest first.
func (s *Store) RecentRounds(limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRounds(
		`SELECT id, catalog, seed, score, pieces, ticks, duration_ms, created_at
		 FROM rounds
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryRounds(query string, args ...any) ([]RoundRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		var r RoundRecord
		var ticks, durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Catalog, &r.Seed, &r.Score, &r.Pieces, &ticks, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTimestamp(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Stats retrieves aggregated statistics over all rounds.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}
	var totalMS int64
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(pieces), 0), COALESCE(SUM(duration_ms), 0), MAX(created_at)
		 FROM rounds`,
	).Scan(&stats.Rounds, &stats.HighScore, &stats.AvgScore, &stats.TotalPieces, &totalMS, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	stats.TotalTime = time.Duration(totalMS) * time.Millisecond
	stats.LastPlayed = parseTimestamp(lastPlayed)
	return stats, nil
}

// ClearRounds deletes the round history. The ranking line is kept.
func (s *Store) ClearRounds() error {
	if _, err := s.db.Exec("DELETE FROM rounds"); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string datetime columns.
func parseTimestamp(v any) time.Time {
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
