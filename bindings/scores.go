package bindings

import (
	"fmt"
	"log"
	"strings"

	"github.com/avessner/minesweeper-desktop/internal/scores"
)

// HighScores returns the leaderboard, best time first. Store failures
// degrade to an empty table rather than an error reaching the frontend.
func (a *App) HighScores() []scores.Entry {
	if a.scores == nil {
		return []scores.Entry{}
	}
	entries, err := a.scores.List()
	if err != nil {
		log.Printf("loading high scores failed: %v", err)
		return []scores.Entry{}
	}
	if entries == nil {
		entries = []scores.Entry{}
	}
	return entries
}

// ScoreQualifies reports whether a completion time would make the table.
func (a *App) ScoreQualifies(completionSeconds float64) bool {
	if a.scores == nil {
		return false
	}
	ok, err := a.scores.Qualifies(completionSeconds)
	if err != nil {
		log.Printf("score qualification check failed: %v", err)
		return false
	}
	return ok
}

// AddHighScore records the current session's winning time under the given
// name. Rejected unless the game is actually won.
func (a *App) AddHighScore(playerName string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return fmt.Errorf("player name is required")
	}
	return a.game.AddHighScore(playerName)
}

// ClearHighScores empties the leaderboard.
func (a *App) ClearHighScores() error {
	if a.scores == nil {
		return nil
	}
	return a.scores.Clear()
}
