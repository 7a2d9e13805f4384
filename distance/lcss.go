package distance

import (
	"github.com/nozzle/tsdist/alignment"
	"github.com/nozzle/tsdist/bounding"
	"github.com/nozzle/tsdist/internal/pool"
	"github.com/nozzle/tsdist/series"
	"gonum.org/v1/gonum/mat"
)

// lcss implements the Longest Common Subsequence distance. Two points match
// when their Euclidean distance is at most epsilon; the distance is
// 1 - matches/min(m, n).
type lcss struct {
	epsilon float64
}

// LCSSCostMatrix returns the m×n LCSS match-count matrix of x against y.
// Cell (i, j) holds the longest common subsequence of x[:, :i+1] and
// y[:, :j+1]; cells outside bounds hold 0.
func LCSSCostMatrix(x, y *series.Series, bounds *bounding.Matrix, epsilon float64) (*mat.Dense, error) {
	p := DefaultParams()
	p.Epsilon = epsilon
	if err := p.Validate(MetricLCSS); err != nil {
		return nil, err
	}
	bounds, err := resolveBounds("distance.LCSSCostMatrix", x, y, bounds)
	if err != nil {
		return nil, err
	}
	return lcss{epsilon: epsilon}.costMatrix(x, y, bounds), nil
}

func (l lcss) costMatrix(x, y *series.Series, b *bounding.Matrix) *mat.Dense {
	m, n := x.Len(), y.Len()
	full := mat.NewDense(m+1, n+1, nil)
	raw := full.RawMatrix()
	l.fill(x, y, b, func(i int) []float64 {
		return raw.Data[i*raw.Stride : i*raw.Stride+n+1]
	})
	return full.Slice(1, m+1, 1, n+1).(*mat.Dense)
}

func (l lcss) distance(x, y *series.Series, b *bounding.Matrix) float64 {
	n := y.Len()
	prev, releasePrev := pool.GetFloat64Slice(n + 1)
	defer releasePrev()
	cur, releaseCur := pool.GetFloat64Slice(n + 1)
	defer releaseCur()

	l.fill(x, y, b, func(i int) []float64 {
		if i%2 == 0 {
			return prev
		}
		return cur
	})
	last := cur
	if x.Len()%2 == 0 {
		last = prev
	}
	return lcssDistance(last[n], x.Len(), n)
}

func (l lcss) path(x, y *series.Series, b *bounding.Matrix) (alignment.Path, float64, *mat.Dense) {
	m, n := x.Len(), y.Len()
	cost := l.costMatrix(x, y, b)
	return alignment.LCSS(x, y, l.epsilon, b, cost), lcssDistance(cost.At(m-1, n-1), m, n), cost
}

// fill runs the LCSS recurrence over the padded (m+1)×(n+1) grid. row(i)
// returns the storage for padded row i; consecutive rows must not alias.
func (l lcss) fill(x, y *series.Series, b *bounding.Matrix, row func(i int) []float64) {
	m, n := x.Len(), y.Len()

	prev := row(0)
	clear(prev)
	for i := 1; i <= m; i++ {
		cur := row(i)
		cur[0] = 0

		lo, hi := b.Span(i - 1)
		for j := 1; j <= lo; j++ {
			cur[j] = 0
		}
		for j := lo + 1; j <= hi; j++ {
			if series.Euclidean(x, y, i-1, j-1) <= l.epsilon {
				cur[j] = prev[j-1] + 1
			} else {
				cur[j] = max(cur[j-1], prev[j])
			}
		}
		for j := hi + 1; j <= n; j++ {
			cur[j] = 0
		}
		prev = cur
	}
}

func lcssDistance(matches float64, m, n int) float64 {
	return 1 - matches/float64(min(m, n))
}
