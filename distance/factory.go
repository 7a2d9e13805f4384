package distance

import (
	"github.com/nozzle/tsdist/alignment"
	"github.com/nozzle/tsdist/bounding"
	"github.com/nozzle/tsdist/errs"
	"github.com/nozzle/tsdist/series"
	"gonum.org/v1/gonum/mat"
)

// engine is implemented once per distance family.
type engine interface {
	costMatrix(x, y *series.Series, b *bounding.Matrix) *mat.Dense
	distance(x, y *series.Series, b *bounding.Matrix) float64
	path(x, y *series.Series, b *bounding.Matrix) (alignment.Path, float64, *mat.Dense)
}

func newEngine(metric Metric, p Params) (engine, error) {
	if err := p.Validate(metric); err != nil {
		return nil, err
	}
	if metric == MetricLCSS {
		return lcss{epsilon: p.Epsilon}, nil
	}
	return erp{g: p.G}, nil
}

// Factory binds a metric, its parameters and the bounding matrix for one
// (m, n) length pair. It is safe for concurrent use; the bounding matrix is
// built once and only read afterwards.
type Factory struct {
	metric Metric
	params Params
	m, n   int
	bounds *bounding.Matrix
	eng    engine
}

// NewFactory validates p and builds the bounding matrix for series of
// lengths m and n. Every later call must pass series of exactly those
// lengths.
func NewFactory(metric Metric, m, n int, p Params) (*Factory, error) {
	eng, err := newEngine(metric, p)
	if err != nil {
		return nil, err
	}
	b, err := bounding.New(m, n, p.Window)
	if err != nil {
		return nil, err
	}
	return &Factory{metric: metric, params: p, m: m, n: n, bounds: b, eng: eng}, nil
}

// Metric returns the bound metric.
func (f *Factory) Metric() Metric { return f.metric }

// Params returns the bound parameters.
func (f *Factory) Params() Params { return f.params }

// Bounds returns the shared bounding matrix. Callers must not modify it.
func (f *Factory) Bounds() *bounding.Matrix { return f.bounds }

// Distance returns the distance between x and y. Only two rows of the cost
// matrix are kept in memory.
func (f *Factory) Distance(x, y *series.Series) (float64, error) {
	if err := checkPair("distance.Factory.Distance", x, y, f.bounds); err != nil {
		return 0, err
	}
	return f.eng.distance(x, y, f.bounds), nil
}

// DistanceWithPath returns the alignment path and distance between x and y,
// plus the full cost matrix when wantCostMatrix is set.
//
// ERP paths run from (0,0) to (m-1,n-1). LCSS paths list the matched pairs
// only.
func (f *Factory) DistanceWithPath(x, y *series.Series, wantCostMatrix bool) (alignment.Path, float64, *mat.Dense, error) {
	if err := checkPair("distance.Factory.DistanceWithPath", x, y, f.bounds); err != nil {
		return nil, 0, nil, err
	}
	path, d, cost := f.eng.path(x, y, f.bounds)
	if !wantCostMatrix {
		cost = nil
	}
	return path, d, cost, nil
}

// Distance computes a single distance, building a throwaway factory from the
// shapes of x and y.
func Distance(metric Metric, x, y *series.Series, p Params) (float64, error) {
	if err := checkSeries("distance.Distance", x, y); err != nil {
		return 0, err
	}
	f, err := NewFactory(metric, x.Len(), y.Len(), p)
	if err != nil {
		return 0, err
	}
	return f.Distance(x, y)
}

// AlignmentPath computes a single distance with its alignment path.
func AlignmentPath(metric Metric, x, y *series.Series, p Params, wantCostMatrix bool) (alignment.Path, float64, *mat.Dense, error) {
	if err := checkSeries("distance.AlignmentPath", x, y); err != nil {
		return nil, 0, nil, err
	}
	f, err := NewFactory(metric, x.Len(), y.Len(), p)
	if err != nil {
		return nil, 0, nil, err
	}
	return f.DistanceWithPath(x, y, wantCostMatrix)
}

// ERP returns the ERP distance between x and y.
func ERP(x, y *series.Series, p Params) (float64, error) {
	return Distance(MetricERP, x, y, p)
}

// LCSS returns the LCSS distance between x and y.
func LCSS(x, y *series.Series, p Params) (float64, error) {
	return Distance(MetricLCSS, x, y, p)
}

// ERPAlignmentPath returns the ERP alignment path and distance between x and
// y, plus the cost matrix when wantCostMatrix is set.
func ERPAlignmentPath(x, y *series.Series, p Params, wantCostMatrix bool) (alignment.Path, float64, *mat.Dense, error) {
	return AlignmentPath(MetricERP, x, y, p, wantCostMatrix)
}

// LCSSAlignmentPath returns the LCSS matched pairs and distance between x
// and y, plus the match-count matrix when wantCostMatrix is set.
func LCSSAlignmentPath(x, y *series.Series, p Params, wantCostMatrix bool) (alignment.Path, float64, *mat.Dense, error) {
	return AlignmentPath(MetricLCSS, x, y, p, wantCostMatrix)
}

func checkSeries(op string, x, y *series.Series) error {
	if x == nil {
		return errs.InvalidShape(op, "x", nil)
	}
	if y == nil {
		return errs.InvalidShape(op, "y", nil)
	}
	if x.Dims() != y.Dims() {
		return errs.ShapeMismatch(op, "y.dims", y.Dims(), x.Dims())
	}
	return nil
}

func checkPair(op string, x, y *series.Series, b *bounding.Matrix) error {
	if err := checkSeries(op, x, y); err != nil {
		return err
	}
	if x.Len() != b.Rows() {
		return errs.ShapeMismatch(op, "len(x)", x.Len(), b.Rows())
	}
	if y.Len() != b.Cols() {
		return errs.ShapeMismatch(op, "len(y)", y.Len(), b.Cols())
	}
	return nil
}

// resolveBounds validates the pair against b, or builds an unbounded matrix
// when b is nil.
func resolveBounds(op string, x, y *series.Series, b *bounding.Matrix) (*bounding.Matrix, error) {
	if b != nil {
		return b, checkPair(op, x, y, b)
	}
	if err := checkSeries(op, x, y); err != nil {
		return nil, err
	}
	return bounding.New(x.Len(), y.Len(), nil)
}
