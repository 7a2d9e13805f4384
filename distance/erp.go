package distance

import (
	"math"

	"github.com/nozzle/tsdist/alignment"
	"github.com/nozzle/tsdist/bounding"
	"github.com/nozzle/tsdist/internal/pool"
	"github.com/nozzle/tsdist/series"
	"gonum.org/v1/gonum/mat"
)

// erp implements Edit distance with Real Penalty. A point left unmatched pays
// its Euclidean distance to the constant reference g; a matched pair pays the
// Euclidean distance between the two points.
type erp struct {
	g float64
}

// ERPCostMatrix returns the m×n ERP cost matrix of x against y. Cell (i, j)
// holds the cheapest cost of aligning x[:, :i+1] with y[:, :j+1]; cells
// outside bounds hold +Inf. The distance is the bottom-right cell.
func ERPCostMatrix(x, y *series.Series, bounds *bounding.Matrix, g float64) (*mat.Dense, error) {
	p := DefaultParams()
	p.G = g
	if err := p.Validate(MetricERP); err != nil {
		return nil, err
	}
	bounds, err := resolveBounds("distance.ERPCostMatrix", x, y, bounds)
	if err != nil {
		return nil, err
	}
	return erp{g: g}.costMatrix(x, y, bounds), nil
}

func (e erp) costMatrix(x, y *series.Series, b *bounding.Matrix) *mat.Dense {
	m, n := x.Len(), y.Len()
	full := mat.NewDense(m+1, n+1, nil)
	raw := full.RawMatrix()
	e.fill(x, y, b, func(i int) []float64 {
		return raw.Data[i*raw.Stride : i*raw.Stride+n+1]
	})
	return full.Slice(1, m+1, 1, n+1).(*mat.Dense)
}

func (e erp) distance(x, y *series.Series, b *bounding.Matrix) float64 {
	n := y.Len()
	prev, releasePrev := pool.GetFloat64Slice(n + 1)
	defer releasePrev()
	cur, releaseCur := pool.GetFloat64Slice(n + 1)
	defer releaseCur()

	e.fill(x, y, b, func(i int) []float64 {
		if i%2 == 0 {
			return prev
		}
		return cur
	})
	if x.Len()%2 == 0 {
		return prev[n]
	}
	return cur[n]
}

func (e erp) path(x, y *series.Series, b *bounding.Matrix) (alignment.Path, float64, *mat.Dense) {
	cost := e.costMatrix(x, y, b)
	return alignment.MinCost(cost, b), cost.At(x.Len()-1, y.Len()-1), cost
}

// fill runs the ERP recurrence over the padded (m+1)×(n+1) grid. row(i)
// returns the storage for padded row i; consecutive rows must not alias.
func (e erp) fill(x, y *series.Series, b *bounding.Matrix, row func(i int) []float64) {
	m, n := x.Len(), y.Len()
	gx, releaseGx := pool.GetFloat64Slice(m)
	defer releaseGx()
	gy, releaseGy := pool.GetFloat64Slice(n)
	defer releaseGy()
	gx = series.GapCost(x, e.g, gx)
	gy = series.GapCost(y, e.g, gy)

	inf := math.Inf(1)
	prev := row(0)
	prev[0] = 0
	for j := 1; j <= n; j++ {
		prev[j] = prev[j-1] + gy[j-1]
	}

	for i := 1; i <= m; i++ {
		cur := row(i)
		gap := gx[i-1]
		cur[0] = prev[0] + gap

		lo, hi := b.Span(i - 1)
		for j := 1; j <= lo; j++ {
			cur[j] = inf
		}
		for j := lo + 1; j <= hi; j++ {
			d := series.Euclidean(x, y, i-1, j-1)
			cur[j] = min(prev[j-1]+d, prev[j]+gap, cur[j-1]+gy[j-1])
		}
		for j := hi + 1; j <= n; j++ {
			cur[j] = inf
		}
		prev = cur
	}
}
