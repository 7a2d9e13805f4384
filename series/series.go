// Package series holds the canonical time-series representation used by the
// distance engines: a rectangular dimensions × length matrix of finite values.
package series

import (
	"fmt"
	"math"

	"github.com/nozzle/tsdist/errs"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Series is an immutable dimensions × length matrix. Row k holds channel k,
// column t holds the observation at time t.
type Series struct {
	m   *mat.Dense
	raw blas64.General
}

func newSeries(dims, length int, data []float64) *Series {
	m := mat.NewDense(dims, length, data)
	return &Series{m: m, raw: m.RawMatrix()}
}

// Dims returns the number of channels.
func (s *Series) Dims() int { return s.raw.Rows }

// Len returns the number of time points.
func (s *Series) Len() int { return s.raw.Cols }

// At returns channel d at time t.
func (s *Series) At(d, t int) float64 { return s.raw.Data[d*s.raw.Stride+t] }

// Point copies the observation at time t into dst (grown if needed) and
// returns it.
func (s *Series) Point(t int, dst []float64) []float64 {
	if cap(dst) < s.raw.Rows {
		dst = make([]float64, s.raw.Rows)
	}
	dst = dst[:s.raw.Rows]
	for d := range dst {
		dst[d] = s.raw.Data[d*s.raw.Stride+t]
	}
	return dst
}

// Mat returns the series as a read-only gonum matrix.
func (s *Series) Mat() mat.Matrix { return s.m }

// RawMatrix exposes the row-major backing store. Callers must not modify it.
func (s *Series) RawMatrix() blas64.General { return s.raw }

func (s *Series) String() string {
	return fmt.Sprintf("Series(%dx%d)", s.raw.Rows, s.raw.Cols)
}

// Collection is an ordered set of series, as fed to the pairwise driver.
type Collection []*Series

// Dims returns the shared channel count of the collection. It checks every
// element and reports the first one that is nil or disagrees with element 0.
// An empty collection has zero dims.
func (c Collection) Dims() (int, error) {
	const op = "series.Collection.Dims"
	dims := 0
	for i, s := range c {
		switch {
		case s == nil:
			return 0, errs.InvalidShape(op, fmt.Sprintf("[%d]", i), nil)
		case i == 0:
			dims = s.Dims()
		case s.Dims() != dims:
			return 0, errs.ShapeMismatch(op, fmt.Sprintf("[%d].dims", i), s.Dims(), dims)
		}
	}
	return dims, nil
}

func checkFinite(op string, data []float64) error {
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errs.InvalidParameter(op, fmt.Sprintf("value[%d]", i), v)
		}
	}
	return nil
}

// Euclidean returns the L2 distance between observation i of x and
// observation j of y. Both series must share Dims.
func Euclidean(x, y *Series, i, j int) float64 {
	xs, ys := x.raw, y.raw
	var sum float64
	for k := range xs.Rows {
		d := xs.Data[k*xs.Stride+i] - ys.Data[k*ys.Stride+j]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// GapCost returns the L2 distance between each observation of s and the
// constant vector (g, ..., g), written into dst.
func GapCost(s *Series, g float64, dst []float64) []float64 {
	r := s.raw
	if cap(dst) < r.Cols {
		dst = make([]float64, r.Cols)
	}
	dst = dst[:r.Cols]
	clear(dst)
	for k := range r.Rows {
		row := r.Data[k*r.Stride : k*r.Stride+r.Cols]
		for t, v := range row {
			d := v - g
			dst[t] += d * d
		}
	}
	for t, v := range dst {
		dst[t] = math.Sqrt(v)
	}
	return dst
}
