package game

import "testing"

// boardWithMines builds a board with mines at the given (row, col) pairs and
// adjacency already computed.
func boardWithMines(t *testing.T, rows, cols int, mines [][2]int) *Board {
	t.Helper()
	b, err := NewBoard(rows, cols)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	positions := make([]int, len(mines))
	for i, m := range mines {
		positions[i] = m[0]*cols + m[1]
	}
	b.placeMinesAt(positions)
	return b
}

func TestNewBoardValidation(t *testing.T) {
	for _, tc := range [][2]int{{0, 5}, {5, 0}, {-1, 5}, {5, -3}} {
		if _, err := NewBoard(tc[0], tc[1]); err == nil {
			t.Errorf("NewBoard(%d, %d): expected error", tc[0], tc[1])
		}
	}

	b, err := NewBoard(16, 30)
	if err != nil {
		t.Fatalf("NewBoard(16, 30): %v", err)
	}
	if b.State != StateNew {
		t.Errorf("fresh board state = %s, want %s", b.State, StateNew)
	}
}

func TestPlaceMinesCountAndAdjacency(t *testing.T) {
	b, err := NewBoard(16, 16)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	if err := b.PlaceMines(40); err != nil {
		t.Fatalf("PlaceMines: %v", err)
	}
	if b.State != StateInProgress {
		t.Errorf("state after placement = %s, want %s", b.State, StateInProgress)
	}

	mines := 0
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			if b.Cell(r, c).IsMine {
				mines++
			}
		}
	}
	if mines != 40 {
		t.Errorf("placed %d mines, want 40", mines)
	}

	// Every safe cell's count must match a brute-force recount.
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			cell := b.Cell(r, c)
			if cell.IsMine {
				if cell.AdjacentMines != 0 {
					t.Errorf("mine at (%d,%d) has adjacency %d", r, c, cell.AdjacentMines)
				}
				continue
			}
			want := 0
			for _, n := range b.Neighbors(r, c) {
				if n.IsMine {
					want++
				}
			}
			if cell.AdjacentMines != want {
				t.Errorf("cell (%d,%d) adjacency = %d, want %d", r, c, cell.AdjacentMines, want)
			}
		}
	}
}

func TestPlaceMinesOnlyOnce(t *testing.T) {
	b, _ := NewBoard(4, 4)
	if err := b.PlaceMines(3); err != nil {
		t.Fatalf("first placement: %v", err)
	}
	if err := b.PlaceMines(3); err == nil {
		t.Error("second placement succeeded")
	}
}

func TestPlaceMinesInvalidCount(t *testing.T) {
	b, _ := NewBoard(3, 3)
	if err := b.PlaceMines(9); err == nil {
		t.Error("full-board mine count accepted")
	}
	if err := b.PlaceMines(-1); err == nil {
		t.Error("negative mine count accepted")
	}
}

func TestNeighborsClipping(t *testing.T) {
	b, _ := NewBoard(5, 5)

	tests := []struct {
		row, col, want int
	}{
		{0, 0, 3},
		{0, 4, 3},
		{4, 0, 3},
		{4, 4, 3},
		{0, 2, 5},
		{2, 0, 5},
		{4, 2, 5},
		{2, 4, 5},
		{2, 2, 8},
	}
	for _, tc := range tests {
		if got := len(b.Neighbors(tc.row, tc.col)); got != tc.want {
			t.Errorf("Neighbors(%d,%d) = %d cells, want %d", tc.row, tc.col, got, tc.want)
		}
	}
}

func TestCellOutOfBounds(t *testing.T) {
	b, _ := NewBoard(3, 3)
	for _, tc := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		if b.Cell(tc[0], tc[1]) != nil {
			t.Errorf("Cell(%d,%d) returned a cell outside the grid", tc[0], tc[1])
		}
	}
	if b.RevealCell(5, 5) {
		t.Error("out-of-bounds reveal reported a change")
	}
	if b.ToggleFlag(5, 5) {
		t.Error("out-of-bounds flag reported a change")
	}
}

func TestRevealMineLosesWithoutCascade(t *testing.T) {
	b := boardWithMines(t, 3, 3, [][2]int{{1, 1}})

	if !b.RevealCell(1, 1) {
		t.Fatal("mine reveal reported no change")
	}
	if b.State != StateLost {
		t.Errorf("state = %s, want %s", b.State, StateLost)
	}

	revealed := 0
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if b.Cell(r, c).IsRevealed {
				revealed++
			}
		}
	}
	if revealed != 1 {
		t.Errorf("mine reveal cascaded: %d cells revealed, want 1", revealed)
	}
}

func TestRevealFlaggedCellNoOp(t *testing.T) {
	b := boardWithMines(t, 3, 3, [][2]int{{0, 0}})
	b.ToggleFlag(2, 2)

	if b.RevealCell(2, 2) {
		t.Error("flagged cell reveal reported a change")
	}
	if b.Cell(2, 2).IsRevealed {
		t.Error("flagged cell became revealed")
	}
}

func TestFloodFillRevealsRegionWithNumberedBoundary(t *testing.T) {
	// Single mine in the corner of a 5x5 board: revealing the far corner
	// must open everything except the mine.
	b := boardWithMines(t, 5, 5, [][2]int{{0, 0}})

	if !b.RevealCell(4, 4) {
		t.Fatal("reveal reported no change")
	}

	revealed := 0
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			cell := b.Cell(r, c)
			if cell.IsMine {
				if cell.IsRevealed {
					t.Error("flood fill revealed the mine")
				}
				continue
			}
			if !cell.IsRevealed {
				t.Errorf("safe cell (%d,%d) not revealed by flood fill", r, c)
			}
			revealed++
		}
	}
	if revealed <= 1 {
		t.Error("flood fill did not expand past the initial cell")
	}
	if b.State != StateWon {
		t.Errorf("state = %s, want %s (all safe cells open)", b.State, StateWon)
	}
}

func TestFloodFillStopsAtNumbers(t *testing.T) {
	// Mines down the rightmost column of a 3x5 board. Revealing the left
	// edge opens the zero region and its numbered border, nothing beyond.
	b := boardWithMines(t, 3, 5, [][2]int{{0, 4}, {1, 4}, {2, 4}})

	if !b.RevealCell(1, 0) {
		t.Fatal("reveal reported no change")
	}

	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			if !b.Cell(r, c).IsRevealed {
				t.Errorf("cell (%d,%d) should be revealed", r, c)
			}
		}
		if b.Cell(r, 4).IsRevealed {
			t.Errorf("mine (%d,4) was revealed", r)
		}
	}

	// Region boundary must carry numbers; zero cells stay interior.
	for r := 0; r < 3; r++ {
		if b.Cell(r, 3).AdjacentMines == 0 {
			t.Errorf("boundary cell (%d,3) unexpectedly has zero adjacency", r)
		}
	}
}

func TestFloodFillSkipsFlaggedCells(t *testing.T) {
	b := boardWithMines(t, 5, 5, [][2]int{{0, 0}})
	b.ToggleFlag(2, 2)

	b.RevealCell(4, 4)

	if b.Cell(2, 2).IsRevealed {
		t.Error("flood fill revealed a flagged cell")
	}
	if b.State == StateWon {
		t.Error("board won while a safe cell is still hidden behind a flag")
	}
}

func TestWinRequiresAllSafeCellsOnly(t *testing.T) {
	b := boardWithMines(t, 3, 3, [][2]int{{0, 0}, {2, 2}})

	safe := [][2]int{{0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}, {2, 0}, {2, 1}}
	for _, pos := range safe {
		b.RevealCell(pos[0], pos[1])
		// Flood fill may finish the board early; the state must agree
		// with the predicate at every step.
		if won := b.State == StateWon; won != b.AllSafeRevealed() {
			t.Fatalf("state %s disagrees with win predicate after (%d,%d)", b.State, pos[0], pos[1])
		}
	}

	// No flags on the mines, still a win.
	if b.State != StateWon {
		t.Errorf("state = %s, want %s", b.State, StateWon)
	}
	if !b.AllSafeRevealed() {
		t.Error("win predicate disagrees with state")
	}
}

func TestBoardString(t *testing.T) {
	b := boardWithMines(t, 2, 2, [][2]int{{0, 0}})
	b.ToggleFlag(0, 0)
	b.RevealCell(1, 1)

	want := "F .\n. 1"
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
