package blocks

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell names:
// - Columns: A-I, left to right
// - Rows: 1-9, top to bottom
// - Example: A1 is the top-left cell (0, 0), I9 the bottom-right (8, 8)

// CellName converts grid coordinates (0-indexed, top-left origin) to a cell name.
func CellName(row, col int) string {
	if !inBounds(row, col) {
		return fmt.Sprintf("(%d,%d)", row, col)
	}
	return fmt.Sprintf("%c%d", 'A'+rune(col), row+1)
}

// ParseCell converts a cell name such as "E5" to grid coordinates.
func ParseCell(name string) (int, int, error) {
	name = strings.TrimSpace(strings.ToUpper(name))
	if len(name) < 2 {
		return 0, 0, fmt.Errorf("invalid cell: %q", name)
	}

	col := int(name[0] - 'A')
	if name[0] < 'A' || col >= size {
		return 0, 0, fmt.Errorf("invalid column in cell: %q", name)
	}

	n, err := strconv.Atoi(name[1:])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row in cell: %q", name)
	}
	row := n - 1

	if !inBounds(row, col) {
		return 0, 0, fmt.Errorf("cell out of bounds: %q", name)
	}
	return row, col, nil
}
