// Package blocks implements the block puzzle engine behind engine.GameEngine.
package blocks

import (
	"blockudoku-term/shapes"
	"blockudoku-term/types"
)

const size = types.BoardSize

// Board is the 9x9 grid. It is a value type: assigning a Board copies it.
type Board struct {
	cells types.Grid
	gen   int // clear generation, bumped by every ResolveClears
}

// inBounds returns true if (row, col) lies on the grid.
func inBounds(row, col int) bool {
	return row >= 0 && row < size && col >= 0 && col < size
}

// Cell returns the state at (row, col). Out-of-range cells read as Filled.
func (b *Board) Cell(row, col int) types.CellState {
	if !inBounds(row, col) {
		return types.Filled
	}
	return b.cells[row][col]
}

// Cells returns a copy of the grid.
func (b *Board) Cells() types.Grid {
	return b.cells
}

// FilledCount returns the number of Filled cells.
func (b *Board) FilledCount() int {
	n := 0
	for r := range b.cells {
		for c := range b.cells[r] {
			if b.cells[r][c] == types.Filled {
				n++
			}
		}
	}
	return n
}

// CanPlace checks that every cell of s anchored at (row, col) is on the grid
// and vacant. Clearing cells count as vacant.
func (b *Board) CanPlace(s shapes.Shape, row, col int) bool {
	if len(s) == 0 {
		return false
	}
	for _, o := range s {
		r, c := row+o.Row, col+o.Col
		if !inBounds(r, c) {
			return false
		}
		if !b.cells[r][c].Vacant() {
			return false
		}
	}
	return true
}

// Place fills every cell covered by s. It changes nothing and returns
// ErrCannotPlace when CanPlace does not hold.
func (b *Board) Place(s shapes.Shape, row, col int) error {
	if !b.CanPlace(s, row, col) {
		return ErrCannotPlace
	}
	for _, o := range s {
		b.cells[row+o.Row][col+o.Col] = types.Filled
	}
	return nil
}

// DetectClears returns every row, column and box whose nine cells are Filled.
func (b *Board) DetectClears() types.ClearSet {
	var set types.ClearSet
	for r := 0; r < size; r++ {
		full := true
		for c := 0; c < size; c++ {
			if b.cells[r][c] != types.Filled {
				full = false
				break
			}
		}
		if full {
			set.Rows = append(set.Rows, r)
		}
	}
	for c := 0; c < size; c++ {
		full := true
		for r := 0; r < size; r++ {
			if b.cells[r][c] != types.Filled {
				full = false
				break
			}
		}
		if full {
			set.Cols = append(set.Cols, c)
		}
	}
	for box := 0; box < size; box++ {
		br, bc := (box/types.BoxSize)*types.BoxSize, (box%types.BoxSize)*types.BoxSize
		full := true
		for dr := 0; dr < types.BoxSize && full; dr++ {
			for dc := 0; dc < types.BoxSize; dc++ {
				if b.cells[br+dr][bc+dc] != types.Filled {
					full = false
					break
				}
			}
		}
		if full {
			set.Boxes = append(set.Boxes, box)
		}
	}
	return set
}

// ResolveClears moves every cell of the set to Clearing and returns the new
// clear generation. The cells are vacant from this point on.
func (b *Board) ResolveClears(set types.ClearSet) int {
	if set.Empty() {
		return b.gen
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if set.Covers(r, c) {
				b.cells[r][c] = types.Clearing
			}
		}
	}
	b.gen++
	return b.gen
}

// Generation returns the current clear generation.
func (b *Board) Generation() int {
	return b.gen
}

// Settle turns every Clearing cell into Empty if gen is the current clear
// generation. Cells filled again while fading are left alone.
func (b *Board) Settle(gen int) bool {
	if gen != b.gen {
		return false
	}
	for r := range b.cells {
		for c := range b.cells[r] {
			if b.cells[r][c] == types.Clearing {
				b.cells[r][c] = types.Empty
			}
		}
	}
	return true
}

// clear empties the grid and starts a new clear generation so pending
// settle timers go stale.
func (b *Board) clear() {
	b.cells = types.Grid{}
	b.gen++
}
