package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// GridCells is the number of cells on a standard board.
const GridCells = 81

// Grid is a board in row-major order, index 0..80. A cell holds 1..9, or 0
// when empty. The fixed size keeps assignment a plain value copy.
type Grid [GridCells]uint8

// RowOf returns the row (0..8) of cell index i.
func RowOf(i int) int { return i / 9 }

// ColOf returns the column (0..8) of cell index i.
func ColOf(i int) int { return i % 9 }

// BoxOf returns the 3x3 box (0..8) of cell index i.
func BoxOf(i int) int { return 3*(i/9/3) + (i%9)/3 }

// CellAt maps row and column back to a cell index.
func CellAt(row, col int) int { return row*9 + col }

// ParseGrid reads the compact text form: 81 cells in row-major order, digits
// 1-9 and any of '0', '.', '-' for empty. Whitespace is ignored, so both the
// one-line and the nine-line layouts parse.
func ParseGrid(s string) (Grid, error) {
	var g Grid
	n := 0
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			continue
		case n == GridCells:
			return Grid{}, fmt.Errorf("grid text: more than %d cells", GridCells)
		case r >= '1' && r <= '9':
			g[n] = uint8(r - '0')
			n++
		case r == '0' || r == '.' || r == '-':
			n++
		default:
			return Grid{}, fmt.Errorf("grid text: bad cell %q at cell %d", r, n)
		}
	}
	if n != GridCells {
		return Grid{}, fmt.Errorf("grid text: got %d cells, want %d", n, GridCells)
	}
	return g, nil
}

// String is the compact 81-character form with '.' for empty cells.
func (g Grid) String() string {
	var b strings.Builder
	b.Grow(GridCells)
	for _, v := range g {
		if v == 0 {
			b.WriteByte('.')
		} else {
			b.WriteByte('0' + v)
		}
	}
	return b.String()
}

// PrettyString renders the board with box separators for terminal output.
func (g Grid) PrettyString() string {
	var b strings.Builder
	for r := 0; r < 9; r++ {
		if r > 0 && r%3 == 0 {
			b.WriteString("------+-------+------\n")
		}
		for c := 0; c < 9; c++ {
			if c > 0 && c%3 == 0 {
				b.WriteString("| ")
			}
			if v := g[CellAt(r, c)]; v == 0 {
				b.WriteByte('.')
			} else {
				b.WriteByte('0' + v)
			}
			if c < 8 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// CheckCells rejects cell values outside 0..9. JSON and file input can
// carry any uint8; ParseGrid never produces one.
func (g Grid) CheckCells() error {
	for i, v := range g {
		if v > 9 {
			return fmt.Errorf("cell %d: value %d out of range 0..9", i, v)
		}
	}
	return nil
}

// Complete reports whether every cell is filled.
func (g Grid) Complete() bool {
	for _, v := range g {
		if v == 0 {
			return false
		}
	}
	return true
}

// Clues counts the filled cells.
func (g Grid) Clues() int {
	n := 0
	for _, v := range g {
		if v != 0 {
			n++
		}
	}
	return n
}
