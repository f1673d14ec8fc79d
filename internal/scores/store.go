package scores

import (
	"time"
)

// DefaultMaxScores is the leaderboard cap when none is configured.
const DefaultMaxScores = 10

// Entry is one high-score row. CompletionTime is seconds, lower is better.
type Entry struct {
	ID             string    `json:"id"`
	PlayerName     string    `json:"player_name"`
	CompletionTime float64   `json:"completion_time"`
	DateAchieved   time.Time `json:"date_achieved"`
}

// Store is the high-score persistence interface. Implementations keep the
// table bounded and ordered by completion time ascending.
type Store interface {
	Close() error
	Migrate() error

	// Add records a score with the current timestamp. The bool reports
	// whether the score made the bounded table.
	Add(playerName string, completionSeconds float64) (Entry, bool, error)

	// List returns the table best-first.
	List() ([]Entry, error)

	// Qualifies reports whether a completion time would make the table.
	Qualifies(completionSeconds float64) (bool, error)

	// Clear empties the table.
	Clear() error
}
