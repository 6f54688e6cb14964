package blocks

import (
	"blockudoku-term/shapes"
	"blockudoku-term/types"
)

// Piece is a tray slot.
type Piece struct {
	Shape shapes.Shape
	Used  bool
}

// Tray holds the pieces offered to the player.
type Tray struct {
	pieces [types.TraySize]Piece
}

// newTray draws a full tray of unused pieces.
func newTray(c *shapes.Catalog) Tray {
	var t Tray
	t.fill(c)
	return t
}

func (t *Tray) fill(c *shapes.Catalog) {
	for i := range t.pieces {
		t.pieces[i] = Piece{Shape: c.PickRandom()}
	}
}

// IsExhausted returns true when every piece has been placed.
func (t *Tray) IsExhausted() bool {
	return t.Unused() == 0
}

// Unused returns the number of pieces still available.
func (t *Tray) Unused() int {
	n := 0
	for _, p := range t.pieces {
		if !p.Used {
			n++
		}
	}
	return n
}

// Refill replaces all pieces with fresh draws. It is only legal once the tray
// is exhausted.
func (t *Tray) Refill(c *shapes.Catalog) error {
	if !t.IsExhausted() {
		return ErrTrayNotExhausted
	}
	t.fill(c)
	return nil
}

// Piece returns a copy of slot i.
func (t *Tray) Piece(i int) (Piece, error) {
	if i < 0 || i >= len(t.pieces) {
		return Piece{}, ErrPieceIndex
	}
	p := t.pieces[i]
	p.Shape = p.Shape.Clone()
	return p, nil
}

// MarkUsed flags slot i as placed.
func (t *Tray) MarkUsed(i int) error {
	if i < 0 || i >= len(t.pieces) {
		return ErrPieceIndex
	}
	if t.pieces[i].Used {
		return ErrPieceUsed
	}
	t.pieces[i].Used = true
	return nil
}

// Pieces returns the slots in the form handed to the presentation layer.
func (t *Tray) Pieces() []types.Piece {
	out := make([]types.Piece, len(t.pieces))
	for i, p := range t.pieces {
		out[i] = types.Piece{Cells: p.Shape.Clone(), Used: p.Used}
	}
	return out
}

// clone returns a deep copy that shares no shape slices.
func (t Tray) clone() Tray {
	for i := range t.pieces {
		t.pieces[i].Shape = t.pieces[i].Shape.Clone()
	}
	return t
}
