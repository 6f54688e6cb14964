package shapes

import (
	"fmt"
	"math/rand"

	"github.com/kamstrup/intmap"

	"blockudoku-term/types"
)

// DefaultBaseShapes returns the base polyominoes of the classic game, one to
// five cells each. Several entries are rotations of one another and keep
// their own slots in the catalog, which raises their draw weight.
func DefaultBaseShapes() []Shape {
	return []Shape{
		offsets(0, 0),
		offsets(0, 0, 0, 1),
		offsets(0, 0, 1, 0),
		offsets(0, 0, 0, 1, 0, 2),
		offsets(0, 0, 1, 0, 2, 0),
		offsets(0, 0, 0, 1, 0, 2, 0, 3),
		offsets(0, 0, 1, 0, 2, 0, 3, 0),
		offsets(0, 0, 0, 1, 1, 0, 1, 1),
		offsets(0, 0, 0, 1, 0, 2, 1, 1),
		offsets(0, 0, 0, 1, 0, 2, 1, 1, 2, 1),
		offsets(0, 0, 1, 0, 2, 0, 2, 1, 2, 2),
		offsets(0, 0, 1, 0, 1, 1, 1, 2),
		offsets(0, 0, 0, 1, 0, 2, 1, 0),
		offsets(0, 0, 0, 1, 1, 1, 1, 2),
		offsets(0, 0, 1, 0, 1, 1),
	}
}

// offsets builds a shape from row, col pairs.
func offsets(rc ...int) Shape {
	s := make(Shape, 0, len(rc)/2)
	for i := 0; i+1 < len(rc); i += 2 {
		s = append(s, types.Offset{Row: rc[i], Col: rc[i+1]})
	}
	return s
}

// Catalog is the pool of drawable shapes. A shape reachable from several
// bases has one slot per base.
type Catalog struct {
	shapes []Shape
	index  *intmap.Map[uint64, int] // first slot of each distinct shape
	rng    *rand.Rand
}

// NewCatalog expands every base shape into its variants and concatenates the
// variant lists in base order. Variants are distinct within a base only.
func NewCatalog(bases []Shape, rng *rand.Rand) (*Catalog, error) {
	if rng == nil {
		return nil, fmt.Errorf("catalog needs a random source")
	}
	c := &Catalog{
		index: intmap.New[uint64, int](64),
		rng:   rng,
	}
	for i, base := range bases {
		if err := Validate(base); err != nil {
			return nil, fmt.Errorf("base shape %d: %w", i, err)
		}
		for _, v := range GenerateVariants(base) {
			if k := Key(v); !c.index.Has(k) {
				c.index.Put(k, len(c.shapes))
			}
			c.shapes = append(c.shapes, v)
		}
	}
	if len(c.shapes) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	return c, nil
}

// Len returns the number of slots in the pool.
func (c *Catalog) Len() int {
	return len(c.shapes)
}

// Shapes returns a copy of the pool.
func (c *Catalog) Shapes() []Shape {
	out := make([]Shape, len(c.shapes))
	for i, s := range c.shapes {
		out[i] = s.Clone()
	}
	return out
}

// IndexOf returns the first slot holding a shape, or -1.
func (c *Catalog) IndexOf(s Shape) int {
	if Validate(s) != nil {
		return -1
	}
	i, ok := c.index.Get(Key(s))
	if !ok {
		return -1
	}
	return i
}

// PickRandom returns a shape drawn uniformly over the pool slots, so a base
// with eight variants is drawn eight times as often as a symmetric one.
func (c *Catalog) PickRandom() Shape {
	return c.shapes[c.pickSlot()].Clone()
}

func (c *Catalog) pickSlot() int {
	return c.rng.Intn(len(c.shapes))
}
