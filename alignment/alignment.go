// Package alignment recovers the optimal alignment path from a filled
// elastic-distance cost matrix.
package alignment

import (
	"math"
	"slices"

	"github.com/nozzle/tsdist/bounding"
	"github.com/nozzle/tsdist/series"
	"gonum.org/v1/gonum/mat"
)

// Coord is a matched pair of indices: I into the first series, J into the
// second.
type Coord struct {
	I, J int
}

// Path is an ordered sequence of matched index pairs.
type Path []Coord

// Valid reports whether p is a warping path over an m×n grid: it starts at
// (0,0), ends at (m-1,n-1) and every step advances I, J or both by one.
func (p Path) Valid(m, n int) bool {
	if len(p) == 0 || p[0] != (Coord{}) || p[len(p)-1] != (Coord{m - 1, n - 1}) {
		return false
	}
	for k := 1; k < len(p); k++ {
		di, dj := p[k].I-p[k-1].I, p[k].J-p[k-1].J
		if di < 0 || di > 1 || dj < 0 || dj > 1 || di+dj == 0 {
			return false
		}
	}
	return true
}

// MinCost backtracks a minimum-cost path through cost, from (m-1,n-1) to
// (0,0). Cells outside bounds are read as +Inf; a nil bounds admits every
// cell. Among the predecessors (i-1,j-1), (i-1,j) and (i,j-1) the cheapest
// wins, ties resolved diagonal first, then vertical, then horizontal. On
// row 0 or column 0 the walk runs straight to the origin.
func MinCost(cost mat.Matrix, bounds *bounding.Matrix) Path {
	m, n := cost.Dims()
	at := func(i, j int) float64 {
		if bounds != nil && !bounds.At(i, j) {
			return math.Inf(1)
		}
		return cost.At(i, j)
	}

	path := make(Path, 0, m+n-1)
	i, j := m-1, n-1
	for i > 0 || j > 0 {
		path = append(path, Coord{i, j})
		switch {
		case i == 0:
			j--
		case j == 0:
			i--
		default:
			diag, up, left := at(i-1, j-1), at(i-1, j), at(i, j-1)
			switch {
			case diag <= up && diag <= left:
				i, j = i-1, j-1
			case up <= left:
				i--
			default:
				j--
			}
		}
	}
	path = append(path, Coord{0, 0})
	slices.Reverse(path)
	return path
}

// LCSS backtracks the matched pairs of a longest-common-subsequence count
// matrix. Walking from (m,n) in padded coordinates, a cell whose points lie
// within epsilon is recorded and left diagonally; otherwise the walk follows
// the larger count of (i-1,j) and (i,j-1), preferring i on ties. Row and
// column 0 count as zero, cells outside bounds as -1, and the walk stops once
// the count reaches zero, so the path length always equals the final count.
// The returned path holds only matched pairs, in increasing order.
func LCSS(x, y *series.Series, epsilon float64, bounds *bounding.Matrix, cost mat.Matrix) Path {
	count := func(i, j int) float64 {
		switch {
		case i == 0 || j == 0:
			return 0
		case bounds != nil && !bounds.At(i-1, j-1):
			return -1
		}
		return cost.At(i-1, j-1)
	}

	var path Path
	i, j := x.Len(), y.Len()
	for count(i, j) > 0 {
		if series.Euclidean(x, y, i-1, j-1) <= epsilon {
			path = append(path, Coord{i - 1, j - 1})
			i, j = i-1, j-1
			continue
		}
		if count(i-1, j) >= count(i, j-1) {
			i--
		} else {
			j--
		}
	}
	slices.Reverse(path)
	return path
}
