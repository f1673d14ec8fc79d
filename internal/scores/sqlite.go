package scores

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// SQLiteStore implements Store on a local SQLite database. The file lives at
// a fixed per-user location; the caller resolves the path.
type SQLiteStore struct {
	db  *sql.DB
	max int
}

// NewSQLiteStore opens or creates the database at path and runs migrations.
// maxScores <= 0 falls back to DefaultMaxScores.
func NewSQLiteStore(path string, maxScores int) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scores database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite is not concurrent for writes

	s := &SQLiteStore{db: db, max: maxScores}
	if s.max <= 0 {
		s.max = DefaultMaxScores
	}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates the schema. Safe to run repeatedly.
func (s *SQLiteStore) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS high_scores (
			id TEXT PRIMARY KEY,
			player_name TEXT NOT NULL,
			completion_time REAL NOT NULL,
			date_achieved TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_high_scores_time ON high_scores(completion_time ASC, date_achieved ASC)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("scores migration failed: %w", err)
		}
	}
	return nil
}

// Add inserts a score and trims the table back to the cap, dropping the
// worst times. The returned bool is false when the new score itself was
// trimmed away.
func (s *SQLiteStore) Add(playerName string, completionSeconds float64) (Entry, bool, error) {
	entry := Entry{
		ID:             uuid.New().String(),
		PlayerName:     playerName,
		CompletionTime: completionSeconds,
		DateAchieved:   time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Entry{}, false, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO high_scores (id, player_name, completion_time, date_achieved) VALUES (?, ?, ?, ?)`,
		entry.ID, entry.PlayerName, entry.CompletionTime, entry.DateAchieved.Format(time.RFC3339),
	)
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to insert score: %w", err)
	}

	_, err = tx.Exec(
		`DELETE FROM high_scores WHERE id NOT IN (
			SELECT id FROM high_scores ORDER BY completion_time ASC, date_achieved ASC LIMIT ?
		)`, s.max,
	)
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to trim scores: %w", err)
	}

	var kept int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM high_scores WHERE id = ?`, entry.ID).Scan(&kept); err != nil {
		return Entry{}, false, err
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, false, err
	}
	return entry, kept == 1, nil
}

// List returns every stored score, best time first.
func (s *SQLiteStore) List() ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, player_name, completion_time, date_achieved
		 FROM high_scores ORDER BY completion_time ASC, date_achieved ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var achieved string
		if err := rows.Scan(&e.ID, &e.PlayerName, &e.CompletionTime, &achieved); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, achieved); err == nil {
			e.DateAchieved = ts
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Qualifies reports whether completionSeconds would enter the table: always
// while underfull, otherwise only when strictly better than the worst kept
// time.
func (s *SQLiteStore) Qualifies(completionSeconds float64) (bool, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM high_scores`).Scan(&count); err != nil {
		return false, err
	}
	if count < s.max {
		return true, nil
	}

	var worst float64
	if err := s.db.QueryRow(`SELECT MAX(completion_time) FROM high_scores`).Scan(&worst); err != nil {
		return false, err
	}
	return completionSeconds < worst, nil
}

// Clear deletes every score.
func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM high_scores`)
	return err
}
