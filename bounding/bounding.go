// Package bounding builds the admissibility mask that restricts which cells
// of an m×n alignment grid an elastic distance may visit.
package bounding

import (
	"math"
	"strings"

	"github.com/nozzle/tsdist/errs"
)

// Matrix describes the admissible cells of an m×n alignment grid. The band
// is contiguous in every row, so only its radius is stored. It is never
// mutated after New returns and is safe for concurrent readers.
type Matrix struct {
	rows, cols int
	radius     int // -1 when unbounded
}

// Window returns a pointer to w, for use as the optional window argument.
func Window(w float64) *float64 { return &w }

// New builds the bounding matrix for series of lengths m and n.
//
// A nil window admits every cell. Otherwise *window is a Sakoe–Chiba radius
// in [0, 1], normalised by max(m, n): cell (i, j) is admissible iff
// |i-j| <= round(w·max(m, n)). The radius is widened to |m-n| when it is
// smaller, so the corner (m-1, n-1) is always reachable from (0, 0).
func New(m, n int, window *float64) (*Matrix, error) {
	const op = "bounding.New"
	if m < 1 {
		return nil, errs.InvalidShape(op, "m", m)
	}
	if n < 1 {
		return nil, errs.InvalidShape(op, "n", n)
	}
	if err := ValidateWindow(window); err != nil {
		return nil, err
	}

	b := &Matrix{rows: m, cols: n, radius: -1}
	if window != nil {
		b.radius = max(int(math.Round(*window*float64(max(m, n)))), absInt(m-n))
	}
	return b, nil
}

// ValidateWindow checks that a requested window lies in [0, 1]. A nil window
// is valid.
func ValidateWindow(window *float64) error {
	if window == nil {
		return nil
	}
	if w := *window; math.IsNaN(w) || w < 0 || w > 1 {
		return errs.InvalidParameter("bounding.ValidateWindow", "window", w)
	}
	return nil
}

// Rows returns m.
func (b *Matrix) Rows() int { return b.rows }

// Cols returns n.
func (b *Matrix) Cols() int { return b.cols }

// Radius returns the band half-width, or -1 if no window was requested.
func (b *Matrix) Radius() int { return b.radius }

// At reports whether cell (i, j) is admissible. Out-of-range cells are not.
func (b *Matrix) At(i, j int) bool {
	if i < 0 || i >= b.rows || j < 0 || j >= b.cols {
		return false
	}
	lo, hi := b.Span(i)
	return lo <= j && j < hi
}

// Span returns the half-open column range [lo, hi) admissible in row i.
// The band is contiguous, so every cell in the range is admissible.
func (b *Matrix) Span(i int) (lo, hi int) {
	if b.radius < 0 {
		return 0, b.cols
	}
	lo = max(i-b.radius, 0)
	hi = min(i+b.radius+1, b.cols)
	return lo, hi
}

// Count returns the number of admissible cells.
func (b *Matrix) Count() int {
	var c int
	for i := range b.rows {
		lo, hi := b.Span(i)
		c += hi - lo
	}
	return c
}

// String renders the mask with '#' for admissible and '.' for excluded cells.
func (b *Matrix) String() string {
	var sb strings.Builder
	sb.Grow(b.rows * (b.cols + 1))
	for i := range b.rows {
		for j := range b.cols {
			if b.At(i, j) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
