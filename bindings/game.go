package bindings

import (
	"fmt"

	"github.com/avessner/minesweeper-desktop/internal/config"
	"github.com/avessner/minesweeper-desktop/internal/game"
)

// RevealResponse wraps the core reveal outcome for the frontend. Rejected is
// set when the core refused the move (game over, bad target, flagged cell).
type RevealResponse struct {
	Rejected bool              `json:"rejected"`
	Result   game.RevealResult `json:"result"`
}

// FlagResponse wraps a flag toggle outcome.
type FlagResponse struct {
	Rejected bool            `json:"rejected"`
	Result   game.FlagResult `json:"result"`
}

// ChordResponse wraps a chord reveal outcome. A flag-count mismatch comes
// back as Rejected with no cells revealed.
type ChordResponse struct {
	Rejected bool             `json:"rejected"`
	Result   game.ChordResult `json:"result"`
}

// Status is the polled session summary the frontend renders in the header.
type Status struct {
	State          game.State `json:"game_state"`
	Rows           int        `json:"rows"`
	Cols           int        `json:"cols"`
	TotalMines     int        `json:"total_mines"`
	MinesRemaining int        `json:"mines_remaining"`
	ElapsedSeconds int        `json:"elapsed_time"`
}

// Snapshot is the full grid view for a complete redraw.
type Snapshot struct {
	Status Status        `json:"status"`
	Cells  [][]game.Cell `json:"cells"`
}

// NewGame replaces the session with a fresh board of the given shape.
func (a *App) NewGame(rows, cols, mines int) (Status, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctrl, err := game.NewController(rows, cols, mines, a.controllerOptions()...)
	if err != nil {
		return Status{}, err
	}
	a.game = ctrl
	return a.status(), nil
}

// NewGamePreset starts a fresh session at a named difficulty.
func (a *App) NewGamePreset(name string) (Status, error) {
	preset, ok := config.PresetByName(name)
	if !ok {
		return Status{}, fmt.Errorf("unknown difficulty %q", name)
	}
	return a.NewGame(preset.Rows, preset.Cols, preset.Mines)
}

// Presets lists the named difficulties for the menu.
func (a *App) Presets() []config.Preset {
	return config.Presets()
}

// Restart discards the board and resets the session, keeping its shape.
func (a *App) Restart() Status {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.game.RestartGame()
	return a.status()
}

// Reveal uncovers the cell at (row, col).
func (a *App) Reveal(row, col int) RevealResponse {
	a.mu.Lock()
	defer a.mu.Unlock()

	result, ok := a.game.Reveal(row, col)
	return RevealResponse{Rejected: !ok, Result: result}
}

// ToggleFlag flags or unflags the cell at (row, col).
func (a *App) ToggleFlag(row, col int) FlagResponse {
	a.mu.Lock()
	defer a.mu.Unlock()

	result, ok := a.game.ToggleFlag(row, col)
	return FlagResponse{Rejected: !ok, Result: result}
}

// ChordReveal opens the remaining neighbors of a satisfied numbered cell.
func (a *App) ChordReveal(row, col int) ChordResponse {
	a.mu.Lock()
	defer a.mu.Unlock()

	result, ok := a.game.ChordReveal(row, col)
	return ChordResponse{Rejected: !ok, Result: result}
}

// GetStatus returns the polled header summary.
func (a *App) GetStatus() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status()
}

// GetSnapshot returns the whole grid for a full redraw.
func (a *App) GetSnapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	board := a.game.Board()
	cells := make([][]game.Cell, board.Rows)
	for r := 0; r < board.Rows; r++ {
		cells[r] = make([]game.Cell, board.Cols)
		for c := 0; c < board.Cols; c++ {
			cells[r][c] = *board.Cell(r, c)
		}
	}
	return Snapshot{Status: a.status(), Cells: cells}
}

func (a *App) status() Status {
	board := a.game.Board()
	return Status{
		State:          a.game.State(),
		Rows:           board.Rows,
		Cols:           board.Cols,
		TotalMines:     a.game.TotalMines(),
		MinesRemaining: a.game.RemainingMines(),
		ElapsedSeconds: a.game.ElapsedSeconds(),
	}
}
