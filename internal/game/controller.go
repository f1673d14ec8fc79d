package game

import (
	"fmt"
	"time"
)

// ScoreRecorder is the narrow seam the controller needs from the high-score
// collaborator. The scores package satisfies it.
type ScoreRecorder interface {
	AddScore(playerName string, completionSeconds float64) error
	Qualifies(completionSeconds float64) bool
}

// RevealedCell identifies one cell that became visible during a reveal or
// chord, with the facts the frontend needs to draw it.
type RevealedCell struct {
	Row           int  `json:"row"`
	Col           int  `json:"col"`
	IsMine        bool `json:"is_mine"`
	AdjacentMines int  `json:"adjacent_mines"`
}

// RevealResult is the outcome of a single reveal, including the incremental
// set of newly visible cells.
type RevealResult struct {
	State          State          `json:"game_state"`
	Revealed       []RevealedCell `json:"revealed_cells"`
	MinesRemaining int            `json:"mines_remaining"`
	ElapsedSeconds int            `json:"elapsed_time"`
	ScoreQualifies bool           `json:"score_qualifies"`
}

// FlagResult is the outcome of a flag toggle.
type FlagResult struct {
	State          State `json:"game_state"`
	Row            int   `json:"row"`
	Col            int   `json:"col"`
	Flagged        bool  `json:"is_flagged"`
	MinesRemaining int   `json:"mines_remaining"`
	ElapsedSeconds int   `json:"elapsed_time"`
}

// ChordResult is the outcome of a chord reveal.
type ChordResult struct {
	State          State          `json:"game_state"`
	Revealed       []RevealedCell `json:"revealed_cells"`
	GameOver       bool           `json:"game_over"`
	Won            bool           `json:"won"`
	MinesRemaining int            `json:"mines_remaining"`
	ElapsedSeconds int            `json:"elapsed_time"`
	ScoreQualifies bool           `json:"score_qualifies"`
}

// Controller runs one game session on top of a board it owns exclusively:
// timer, flag bookkeeping, chorded reveal, state promotion and the win
// handoff to the score recorder. Gameplay rejections are signaled with a
// false second return, never an error.
type Controller struct {
	board *Board

	state       State
	startTime   time.Time
	elapsed     int
	totalMines  int
	flagsPlaced int

	scores ScoreRecorder
	now    func() time.Time
}

// Option customizes a Controller at construction.
type Option func(*Controller)

// WithScoreRecorder attaches the high-score collaborator. Without one, wins
// simply skip the score handoff.
func WithScoreRecorder(r ScoreRecorder) Option {
	return func(c *Controller) { c.scores = r }
}

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController builds a session for a rows×cols board with mines mines.
func NewController(rows, cols, mines int, opts ...Option) (*Controller, error) {
	if mines < 0 || rows <= 0 || cols <= 0 || mines >= rows*cols {
		return nil, fmt.Errorf("invalid game parameters: %dx%d with %d mines", rows, cols, mines)
	}

	board, err := NewBoard(rows, cols)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		board:      board,
		state:      StateNew,
		totalMines: mines,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Board exposes the owned board. The controller is the only writer; the
// presentation layer reads it for rendering.
func (c *Controller) Board() *Board { return c.board }

// State returns the session state.
func (c *Controller) State() State { return c.state }

// TotalMines returns the configured mine count.
func (c *Controller) TotalMines() int { return c.totalMines }

// FlagsPlaced returns the number of flags currently on the board, as
// tracked by the controller.
func (c *Controller) FlagsPlaced() int { return c.flagsPlaced }

// Cell returns the cell at (row, col), nil when out of bounds.
func (c *Controller) Cell(row, col int) *Cell { return c.board.Cell(row, col) }

// StartGame places the mines and starts the timer. Only effective from the
// new state; calling it again mid-game neither re-places mines nor resets
// the clock.
func (c *Controller) StartGame() {
	if c.state != StateNew {
		return
	}
	if err := c.board.PlaceMines(c.totalMines); err != nil {
		// Parameters were validated at construction; a failure here
		// means the board was tampered with externally.
		return
	}
	c.state = StateInProgress
	c.startTime = c.now()
}

// RestartGame discards the board and resets every session attribute. Mines
// are placed lazily again, on the first move after the restart.
func (c *Controller) RestartGame() {
	board, _ := NewBoard(c.board.Rows, c.board.Cols)
	c.board = board
	c.state = StateNew
	c.startTime = time.Time{}
	c.elapsed = 0
	c.flagsPlaced = 0
}

// ElapsedSeconds returns 0 before the first move, the live wall-clock delta
// while the game runs, and the frozen value once it is over.
func (c *Controller) ElapsedSeconds() int {
	switch c.state {
	case StateNew:
		return 0
	case StateWon, StateLost:
		return c.elapsed
	default:
		return int(c.now().Sub(c.startTime).Seconds())
	}
}

// RemainingMines is total mines minus flags placed. Over-flagging is
// allowed, so the value can go negative.
func (c *Controller) RemainingMines() int {
	return c.totalMines - c.flagsPlaced
}

// Reveal reveals (row, col), auto-starting the game on the first move. The
// result carries the cells that became newly visible so the frontend can
// update incrementally. Returns false when the session is over, the target
// is invalid, or the reveal was blocked by a flag.
func (c *Controller) Reveal(row, col int) (RevealResult, bool) {
	if c.state != StateNew && c.state != StateInProgress {
		return RevealResult{}, false
	}
	if c.state == StateNew {
		c.StartGame()
	}

	before := c.revealedSet()
	if !c.board.RevealCell(row, col) {
		return RevealResult{}, false
	}
	revealed := c.newlyRevealed(before)

	qualifies := false
	if c.board.State == StateLost {
		c.finish(StateLost)
	} else if c.board.AllSafeRevealed() {
		// Re-checked here rather than trusting the board's mutated
		// state, then frozen: this is the moment of the win handoff.
		c.finish(StateWon)
		qualifies = c.scoreQualifies()
	}

	return RevealResult{
		State:          c.state,
		Revealed:       revealed,
		MinesRemaining: c.RemainingMines(),
		ElapsedSeconds: c.ElapsedSeconds(),
		ScoreQualifies: qualifies,
	}, true
}

// ToggleFlag flags or unflags (row, col), auto-starting on the first move.
// The flag counter is updated by comparing the cell's state before and
// after the toggle, keeping it consistent with the cell's own flip.
func (c *Controller) ToggleFlag(row, col int) (FlagResult, bool) {
	if c.state != StateNew && c.state != StateInProgress {
		return FlagResult{}, false
	}

	cell := c.board.Cell(row, col)
	if cell == nil {
		return FlagResult{}, false
	}

	if c.state == StateNew {
		c.StartGame()
	}

	wasFlagged := cell.IsFlagged
	if !c.board.ToggleFlag(row, col) {
		return FlagResult{}, false
	}
	if wasFlagged {
		c.flagsPlaced--
	} else {
		c.flagsPlaced++
	}

	return FlagResult{
		State:          c.state,
		Row:            row,
		Col:            col,
		Flagged:        cell.IsFlagged,
		MinesRemaining: c.RemainingMines(),
		ElapsedSeconds: c.ElapsedSeconds(),
	}, true
}

// ChordReveal reveals every unrevealed, unflagged neighbor of a revealed
// numbered cell, but only when the flagged-neighbor count matches the
// number exactly. A wrong flag means a mine gets revealed, which ends the
// session in loss and aborts the rest of the batch. A count mismatch is a
// no-op returning false.
func (c *Controller) ChordReveal(row, col int) (ChordResult, bool) {
	if c.state != StateInProgress {
		return ChordResult{}, false
	}

	cell := c.board.Cell(row, col)
	if cell == nil || !cell.IsRevealed || cell.AdjacentMines == 0 {
		return ChordResult{}, false
	}

	flagged := 0
	var hidden []*Cell
	for _, neighbor := range c.board.Neighbors(row, col) {
		if neighbor.IsFlagged {
			flagged++
		} else if !neighbor.IsRevealed {
			hidden = append(hidden, neighbor)
		}
	}
	if flagged != cell.AdjacentMines {
		return ChordResult{}, false
	}

	var revealed []RevealedCell
	for _, neighbor := range hidden {
		if neighbor.IsRevealed {
			// A previous neighbor's flood fill got here first.
			continue
		}
		before := c.revealedSet()
		if !c.board.RevealCell(neighbor.Row, neighbor.Col) {
			continue
		}
		revealed = append(revealed, c.newlyRevealed(before)...)
		if c.board.State == StateLost {
			break
		}
	}

	qualifies := false
	if c.board.State == StateLost {
		c.finish(StateLost)
	} else if c.board.AllSafeRevealed() {
		c.finish(StateWon)
		qualifies = c.scoreQualifies()
	}

	return ChordResult{
		State:          c.state,
		Revealed:       revealed,
		GameOver:       c.state == StateWon || c.state == StateLost,
		Won:            c.state == StateWon,
		MinesRemaining: c.RemainingMines(),
		ElapsedSeconds: c.ElapsedSeconds(),
		ScoreQualifies: qualifies,
	}, true
}

// AddHighScore records the frozen completion time under the given name.
// Valid only after a win.
func (c *Controller) AddHighScore(playerName string) error {
	if c.state != StateWon {
		return fmt.Errorf("cannot record a score in state %s", c.state)
	}
	if c.scores == nil {
		return fmt.Errorf("no score recorder configured")
	}
	return c.scores.AddScore(playerName, float64(c.elapsed))
}

// finish promotes the session to a terminal state and freezes the timer.
func (c *Controller) finish(s State) {
	if c.state == StateWon || c.state == StateLost {
		return
	}
	c.elapsed = c.ElapsedSeconds()
	c.state = s
}

func (c *Controller) scoreQualifies() bool {
	if c.scores == nil {
		return false
	}
	return c.scores.Qualifies(float64(c.elapsed))
}

func (c *Controller) revealedSet() map[int]bool {
	set := make(map[int]bool)
	for r := 0; r < c.board.Rows; r++ {
		for col := 0; col < c.board.Cols; col++ {
			if c.board.grid[r][col].IsRevealed {
				set[r*c.board.Cols+col] = true
			}
		}
	}
	return set
}

func (c *Controller) newlyRevealed(before map[int]bool) []RevealedCell {
	var cells []RevealedCell
	for r := 0; r < c.board.Rows; r++ {
		for col := 0; col < c.board.Cols; col++ {
			cell := c.board.grid[r][col]
			if cell.IsRevealed && !before[r*c.board.Cols+col] {
				cells = append(cells, RevealedCell{
					Row:           r,
					Col:           col,
					IsMine:        cell.IsMine,
					AdjacentMines: cell.AdjacentMines,
				})
			}
		}
	}
	return cells
}
