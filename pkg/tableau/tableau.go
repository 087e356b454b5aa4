// Package tableau provides the dense rectangular grid of rationals that
// the Simplex solver pivots in place.
package tableau

import (
	"fmt"

	"factoryopt/pkg/rational"
)

// Table is a width x height grid of rationals backed by a single
// contiguous row-major allocation. The solver touches rows as contiguous
// slices; there is no column accessor.
type Table struct {
	width, height int
	cells         []rational.Rational
}

// New creates a table with every cell zero.
func New(width, height int) *Table {
	return &Table{
		width:  width,
		height: height,
		cells:  make([]rational.Rational, width*height),
	}
}

// Width returns the number of columns.
func (t *Table) Width() int { return t.width }

// Height returns the number of rows.
func (t *Table) Height() int { return t.height }

// Row returns row y as a mutable slice aliasing the backing store. An
// out-of-range index is a caller bug and panics.
func (t *Table) Row(y int) []rational.Rational {
	if y < 0 || y >= t.height {
		panic(fmt.Sprintf("tableau: row %d out of range [0,%d)", y, t.height))
	}
	return t.cells[y*t.width : (y+1)*t.width]
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	copied := New(t.width, t.height)
	copy(copied.cells, t.cells)
	return copied
}
