package game

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// State describes where a board or session is in its lifecycle. It is a
// string so it serializes directly for the frontend.
type State string

const (
	StateNew        State = "new"
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateLost       State = "lost"
)

// Board owns the row-major grid of cells and the board-level state machine:
// new --PlaceMines--> in_progress --mine revealed--> lost, or
// in_progress --all safe cells revealed--> won. Won and lost are terminal;
// a restart replaces the board rather than resetting it.
type Board struct {
	Rows  int
	Cols  int
	State State

	grid [][]*Cell
}

// NewBoard builds an empty rows×cols board with no mines placed.
func NewBoard(rows, cols int) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("board dimensions must be positive, got %dx%d", rows, cols)
	}

	grid := make([][]*Cell, rows)
	for r := 0; r < rows; r++ {
		grid[r] = make([]*Cell, cols)
		for c := 0; c < cols; c++ {
			grid[r][c] = &Cell{Row: r, Col: c}
		}
	}

	return &Board{Rows: rows, Cols: cols, State: StateNew, grid: grid}, nil
}

// PlaceMines scatters count mines over distinct cells chosen uniformly at
// random, computes every safe cell's adjacency count, and moves the board to
// in_progress. It must run exactly once per board, before any reveal.
func (b *Board) PlaceMines(count int) error {
	if b.State != StateNew {
		return fmt.Errorf("mines already placed (state %s)", b.State)
	}
	if count < 0 || count >= b.Rows*b.Cols {
		return fmt.Errorf("mine count must be in [0, %d), got %d", b.Rows*b.Cols, count)
	}

	positions := rand.Perm(b.Rows * b.Cols)[:count]
	b.placeMinesAt(positions)
	return nil
}

// placeMinesAt mines the given flat positions (row*cols + col). Split out so
// tests can build deterministic layouts.
func (b *Board) placeMinesAt(positions []int) {
	for _, p := range positions {
		b.grid[p/b.Cols][p%b.Cols].IsMine = true
	}
	b.calculateAdjacentMines()
	b.State = StateInProgress
}

// calculateAdjacentMines fills in AdjacentMines for every safe cell. Mine
// cells keep 0; their count is never consulted.
func (b *Board) calculateAdjacentMines() {
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			cell := b.grid[r][c]
			if cell.IsMine {
				continue
			}
			n := 0
			for _, neighbor := range b.Neighbors(r, c) {
				if neighbor.IsMine {
					n++
				}
			}
			cell.AdjacentMines = n
		}
	}
}

// Cell returns the cell at (row, col), or nil when the position is outside
// the grid. Callers nil-check instead of handling an error.
func (b *Board) Cell(row, col int) *Cell {
	if row < 0 || row >= b.Rows || col < 0 || col >= b.Cols {
		return nil
	}
	return b.grid[row][col]
}

// Neighbors returns the existing cells in the 8-neighborhood of (row, col):
// 3 at a corner, 5 on an edge, 8 in the interior.
func (b *Board) Neighbors(row, col int) []*Cell {
	neighbors := make([]*Cell, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if cell := b.Cell(row+dr, col+dc); cell != nil {
				neighbors = append(neighbors, cell)
			}
		}
	}
	return neighbors
}

// RevealCell reveals the cell at (row, col) and reports whether anything
// changed. Out-of-bounds, already-revealed and flagged targets are no-ops.
// Revealing a mine moves the board to lost and never cascades. Revealing a
// zero-adjacency cell flood-fills: the connected zero region plus its
// numbered border are revealed, skipping flagged cells. The work list keeps
// the fill iterative regardless of grid size.
func (b *Board) RevealCell(row, col int) bool {
	cell := b.Cell(row, col)
	if cell == nil || cell.IsRevealed || cell.IsFlagged {
		return false
	}

	if cell.Reveal() {
		b.State = StateLost
		return true
	}

	if cell.AdjacentMines == 0 {
		frontier := []*Cell{cell}
		for len(frontier) > 0 {
			next := frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
			for _, neighbor := range b.Neighbors(next.Row, next.Col) {
				if neighbor.IsRevealed || neighbor.IsFlagged {
					continue
				}
				neighbor.Reveal()
				// Only zero cells expand the region; the numbered
				// border is revealed but halts the fill.
				if neighbor.AdjacentMines == 0 {
					frontier = append(frontier, neighbor)
				}
			}
		}
	}

	b.checkWinCondition()
	return true
}

// ToggleFlag toggles the flag at (row, col), rejecting out-of-bounds and
// revealed targets.
func (b *Board) ToggleFlag(row, col int) bool {
	cell := b.Cell(row, col)
	if cell == nil || cell.IsRevealed {
		return false
	}
	return cell.ToggleFlag()
}

// AllSafeRevealed reports the win predicate: every non-mine cell revealed.
// Mines do not need to be flagged.
func (b *Board) AllSafeRevealed() bool {
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			cell := b.grid[r][c]
			if !cell.IsMine && !cell.IsRevealed {
				return false
			}
		}
	}
	return true
}

func (b *Board) checkWinCondition() {
	if b.State == StateInProgress && b.AllSafeRevealed() {
		b.State = StateWon
	}
}

// String renders the board for logs and debugging: '*' revealed mine,
// digits for revealed numbers, ' ' revealed blanks, 'F' flags, '.' hidden.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.Rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < b.Cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			cell := b.grid[r][c]
			switch {
			case cell.IsRevealed && cell.IsMine:
				sb.WriteByte('*')
			case cell.IsRevealed && cell.AdjacentMines > 0:
				sb.WriteString(strconv.Itoa(cell.AdjacentMines))
			case cell.IsRevealed:
				sb.WriteByte(' ')
			case cell.IsFlagged:
				sb.WriteByte('F')
			default:
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
