// Package shapes builds the pool of polyomino shapes drawn into the tray.
package shapes

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kamstrup/intmap"

	"blockudoku-term/types"
)

// keySpan is the side of the square window a canonical shape must fit in to
// be encoded as a Key.
const keySpan = 8

var (
	ErrEmptyShape      = errors.New("shape has no cells")
	ErrDuplicateOffset = errors.New("shape has duplicate offsets")
	ErrShapeTooLarge   = errors.New("shape does not fit the 8x8 key window")
)

// Shape is an ordered set of relative offsets.
type Shape []types.Offset

// Canonicalize translates a shape so its minimum row and column are 0 and
// sorts the offsets by row, then column. Two shapes covering the same cells
// have the same canonical form.
func Canonicalize(s Shape) Shape {
	if len(s) == 0 {
		return Shape{}
	}
	minR, minC := s[0].Row, s[0].Col
	for _, o := range s[1:] {
		if o.Row < minR {
			minR = o.Row
		}
		if o.Col < minC {
			minC = o.Col
		}
	}
	out := make(Shape, len(s))
	for i, o := range s {
		out[i] = types.Offset{Row: o.Row - minR, Col: o.Col - minC}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row == out[j].Row {
			return out[i].Col < out[j].Col
		}
		return out[i].Row < out[j].Row
	})
	return out
}

// Rotate90 turns a shape a quarter turn: (r, c) -> (c, -r).
func Rotate90(s Shape) Shape {
	out := make(Shape, len(s))
	for i, o := range s {
		out[i] = types.Offset{Row: o.Col, Col: -o.Row}
	}
	return Canonicalize(out)
}

// Mirror flips a shape left to right: (r, c) -> (r, -c).
func Mirror(s Shape) Shape {
	out := make(Shape, len(s))
	for i, o := range s {
		out[i] = types.Offset{Row: o.Row, Col: -o.Col}
	}
	return Canonicalize(out)
}

// Validate checks that a shape is non-empty, has no repeated offsets and fits
// the key window once canonicalized.
func Validate(s Shape) error {
	if len(s) == 0 {
		return ErrEmptyShape
	}
	c := Canonicalize(s)
	for i := 1; i < len(c); i++ {
		if c[i] == c[i-1] {
			return fmt.Errorf("%w: (%d,%d)", ErrDuplicateOffset, c[i].Row, c[i].Col)
		}
	}
	h, w := c.Size()
	if h > keySpan || w > keySpan {
		return fmt.Errorf("%w: %dx%d", ErrShapeTooLarge, h, w)
	}
	return nil
}

// Key encodes the canonical form of a shape as a bit set, one bit per cell of
// an 8x8 window. Shapes with equal keys cover the same cells up to
// translation. The shape must be valid.
func Key(s Shape) uint64 {
	var k uint64
	for _, o := range Canonicalize(s) {
		k |= 1 << uint(o.Row*keySpan+o.Col)
	}
	return k
}

// Size returns the height and width of the shape's bounding box.
func (s Shape) Size() (int, int) {
	if len(s) == 0 {
		return 0, 0
	}
	minR, maxR, minC, maxC := s[0].Row, s[0].Row, s[0].Col, s[0].Col
	for _, o := range s[1:] {
		minR = min(minR, o.Row)
		maxR = max(maxR, o.Row)
		minC = min(minC, o.Col)
		maxC = max(maxC, o.Col)
	}
	return maxR - minR + 1, maxC - minC + 1
}

// Equal returns true if both shapes cover the same cells up to translation.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	a, b := Canonicalize(s), Canonicalize(o)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that does not share the offset slice.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// String draws the shape with '#' for cells and '.' for gaps, one line per row.
func (s Shape) String() string {
	c := Canonicalize(s)
	h, w := c.Size()
	rows := make([][]byte, h)
	for r := range rows {
		rows[r] = []byte(strings.Repeat(".", w))
	}
	for _, o := range c {
		rows[o.Row][o.Col] = '#'
	}
	lines := make([]string, h)
	for r := range rows {
		lines[r] = string(rows[r])
	}
	return strings.Join(lines, "\n")
}

// GenerateVariants returns every distinct shape reachable from base by the
// four rotations, each optionally mirrored. The result has at most 8 shapes,
// fewer for symmetric bases, in the order they are first reached. It returns
// nil when base fails Validate.
func GenerateVariants(base Shape) []Shape {
	if Validate(base) != nil {
		return nil
	}
	seen := intmap.New[uint64, struct{}](8)
	out := make([]Shape, 0, 8)
	add := func(s Shape) {
		k := Key(s)
		if seen.Has(k) {
			return
		}
		seen.Put(k, struct{}{})
		out = append(out, s)
	}
	s := Canonicalize(base)
	for i := 0; i < 4; i++ {
		add(s)
		add(Mirror(s))
		s = Rotate90(s)
	}
	return out
}
