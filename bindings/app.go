package bindings

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/avessner/minesweeper-desktop/internal/config"
	"github.com/avessner/minesweeper-desktop/internal/game"
	"github.com/avessner/minesweeper-desktop/internal/scores"
)

const (
	appDirName   = "minesweeper-desktop"
	scoresDBName = "scores.db"
)

// App is the single object bound to the webview. It owns the live game
// session and the score store, and serializes user intents with a mutex so
// exactly one gameplay operation is in flight at a time.
type App struct {
	ctx context.Context
	mu  sync.Mutex

	cfg    config.Config
	game   *game.Controller
	scores scores.Store
}

func New() *App {
	return &App{}
}

// Startup resolves the per-user data directory, opens the score database and
// builds the initial session from configuration. Wails calls it once, before
// the window shows.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	cfg, err := config.Load()
	if err != nil {
		log.Printf("config load failed: %v; using defaults", err)
		cfg = config.Config{Rows: 16, Cols: 16, Mines: 40, MaxScores: scores.DefaultMaxScores}
	}
	a.cfg = cfg

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	appDir := filepath.Join(configDir, appDirName)
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		log.Printf("appdata mkdir failed: %v; using working directory", err)
		appDir = "."
	}

	store, err := scores.NewSQLiteStore(filepath.Join(appDir, scoresDBName), cfg.MaxScores)
	if err != nil {
		// High scores are strictly optional: the game must stay
		// playable with persistence down.
		log.Printf("score store unavailable: %v", err)
	} else {
		a.scores = store
	}

	ctrl, err := game.NewController(cfg.Rows, cfg.Cols, cfg.Mines, a.controllerOptions()...)
	if err != nil {
		log.Printf("invalid configured board %dx%d/%d: %v; falling back to 16x16/40",
			cfg.Rows, cfg.Cols, cfg.Mines, err)
		ctrl, _ = game.NewController(16, 16, 40, a.controllerOptions()...)
	}
	a.game = ctrl
}

// Shutdown closes the score store.
func (a *App) Shutdown(ctx context.Context) {
	if a.scores != nil {
		if err := a.scores.Close(); err != nil {
			log.Printf("score store close failed: %v", err)
		}
	}
}

func (a *App) controllerOptions() []game.Option {
	if a.scores == nil {
		return nil
	}
	return []game.Option{game.WithScoreRecorder(&recorderAdapter{store: a.scores})}
}

// recorderAdapter narrows the score store to the seam the game core wants,
// degrading store failures to "does not qualify" per the persistence policy.
type recorderAdapter struct {
	store scores.Store
}

func (r *recorderAdapter) AddScore(playerName string, completionSeconds float64) error {
	_, _, err := r.store.Add(playerName, completionSeconds)
	return err
}

func (r *recorderAdapter) Qualifies(completionSeconds float64) bool {
	ok, err := r.store.Qualifies(completionSeconds)
	if err != nil {
		log.Printf("score qualification check failed: %v", err)
		return false
	}
	return ok
}
