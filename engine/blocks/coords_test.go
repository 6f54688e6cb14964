package blocks

import (
	"testing"
)

func TestCellName(t *testing.T) {
	tests := []struct {
		row, col int
		want     string
	}{
		{0, 0, "A1"},
		{8, 8, "I9"},
		{4, 2, "C5"},
		{9, 0, "(9,0)"},
	}
	for _, tt := range tests {
		if got := CellName(tt.row, tt.col); got != tt.want {
			t.Fatalf("CellName(%d, %d) = %q, want %q", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestParseCell(t *testing.T) {
	row, col, err := ParseCell(" c5 ")
	if err != nil {
		t.Fatal(err)
	}
	if row != 4 || col != 2 {
		t.Fatalf("expected (4, 2), got (%d, %d)", row, col)
	}

	for _, bad := range []string{"", "A", "J1", "A0", "A10", "@1", "Ax"} {
		if _, _, err := ParseCell(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestCellNameRoundTrip(t *testing.T) {
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			gotR, gotC, err := ParseCell(CellName(r, c))
			if err != nil {
				t.Fatal(err)
			}
			if gotR != r || gotC != c {
				t.Fatalf("round trip of (%d, %d) gave (%d, %d)", r, c, gotR, gotC)
			}
		}
	}
}
