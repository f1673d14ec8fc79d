package game

// Cell is a single square on the board. Its position never changes after
// construction; the remaining fields are mutated in place by reveal and flag
// operations until the whole board is replaced on restart.
type Cell struct {
	Row           int  `json:"row"`
	Col           int  `json:"col"`
	IsMine        bool `json:"is_mine"`
	IsRevealed    bool `json:"is_revealed"`
	IsFlagged     bool `json:"is_flagged"`
	AdjacentMines int  `json:"adjacent_mines"`
}

// Reveal marks the cell revealed and reports whether it holds a mine.
// A flagged cell cannot be revealed; the call is a no-op returning false.
// Reveal alone is not idempotent — aggregate flows (flood fill, chord)
// check IsRevealed before calling.
func (c *Cell) Reveal() bool {
	if c.IsFlagged {
		return false
	}
	c.IsRevealed = true
	return c.IsMine
}

// ToggleFlag flips the flag marker and reports whether anything changed.
// A revealed cell cannot be flagged.
func (c *Cell) ToggleFlag() bool {
	if c.IsRevealed {
		return false
	}
	c.IsFlagged = !c.IsFlagged
	return true
}
