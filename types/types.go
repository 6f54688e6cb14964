// Package types contains shared data structures for blockudoku-term.
package types

import (
	"encoding/json"
	"fmt"
)

// BoardSize is the width and height of the grid.
const BoardSize = 9

// BoxSize is the width and height of one of the nine boxes tiling the grid.
const BoxSize = 3

// TraySize is the number of pieces offered at once.
const TraySize = 3

// CellState is the state of a single grid cell.
type CellState uint8

const (
	Empty CellState = iota
	Filled
	// Clearing marks a cell of a line or box that was just cleared. It is
	// vacant for placement purposes and only tells the renderer to fade it.
	Clearing
)

func (c CellState) String() string {
	switch c {
	case Empty:
		return "empty"
	case Filled:
		return "filled"
	case Clearing:
		return "clearing"
	}
	return fmt.Sprintf("CellState(%d)", uint8(c))
}

// Vacant reports whether a piece may cover the cell.
func (c CellState) Vacant() bool {
	return c != Filled
}

// Grid is the full board, indexed as Grid[row][col].
type Grid [BoardSize][BoardSize]CellState

// Offset is a relative (row, col) position inside a shape.
type Offset struct {
	Row int
	Col int
}

// MarshalJSON writes an Offset as a JSON array [row, col].
func (o Offset) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{o.Row, o.Col})
}

// UnmarshalJSON allows Offset to be unmarshaled from a JSON array [row, col].
func (o *Offset) UnmarshalJSON(data []byte) error {
	var v []int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if len(v) != 2 {
		return fmt.Errorf("offset must have 2 elements, got %d", len(v))
	}
	o.Row = v[0]
	o.Col = v[1]
	return nil
}

// Phase is the state of a game session.
type Phase string

const (
	Playing  Phase = "playing"
	GameOver Phase = "game_over"
)

// Piece is a shape offered in the tray.
type Piece struct {
	Cells []Offset `json:"cells"`
	Used  bool     `json:"used"`
}

// Clone returns a deep copy of the piece.
func (p Piece) Clone() Piece {
	cells := make([]Offset, len(p.Cells))
	copy(cells, p.Cells)
	return Piece{Cells: cells, Used: p.Used}
}

// ClearSet lists the rows, columns and boxes that are full after a placement.
// Boxes are numbered row-major: box = (row/3)*3 + col/3.
type ClearSet struct {
	Rows  []int `json:"rows,omitempty"`
	Cols  []int `json:"cols,omitempty"`
	Boxes []int `json:"boxes,omitempty"`
}

// Count returns the number of cleared rows, columns and boxes.
func (s ClearSet) Count() int {
	return len(s.Rows) + len(s.Cols) + len(s.Boxes)
}

// Empty returns true if nothing cleared.
func (s ClearSet) Empty() bool {
	return s.Count() == 0
}

// Covers reports whether the cell at (row, col) belongs to a cleared unit.
func (s ClearSet) Covers(row, col int) bool {
	for _, r := range s.Rows {
		if r == row {
			return true
		}
	}
	for _, c := range s.Cols {
		if c == col {
			return true
		}
	}
	box := (row/BoxSize)*BoxSize + col/BoxSize
	for _, b := range s.Boxes {
		if b == box {
			return true
		}
	}
	return false
}

// PlaceResult describes a committed placement.
type PlaceResult struct {
	Piece    int      `json:"piece"`
	Row      int      `json:"row"`
	Col      int      `json:"col"`
	Cells    int      `json:"cells"`
	Clears   ClearSet `json:"clears"`
	Points   int      `json:"points"`
	Refilled bool     `json:"refilled"`
	Phase    Phase    `json:"phase"`
	ClearGen int      `json:"clear_gen"`
}

// GameState is a read-only copy of a session handed to the presentation layer.
type GameState struct {
	Board    Grid    `json:"board"`
	Tray     []Piece `json:"tray"`
	Score    int     `json:"score"`
	Best     int     `json:"best"`
	Phase    Phase   `json:"phase"`
	CanUndo  bool    `json:"can_undo"`
	ClearGen int     `json:"clear_gen"`
}

// Finished returns true if the game is over.
func (s *GameState) Finished() bool {
	return s.Phase == GameOver
}

// Clearing returns true if any cell is still fading out.
func (s *GameState) Clearing() bool {
	for r := range s.Board {
		for c := range s.Board[r] {
			if s.Board[r][c] == Clearing {
				return true
			}
		}
	}
	return false
}
