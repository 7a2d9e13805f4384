package distance

import (
	"sync"

	"github.com/nozzle/tsdist/pairwise"
	"github.com/nozzle/tsdist/series"
	"gonum.org/v1/gonum/mat"
)

// Pairwise returns the |xs|×|ys| matrix of metric distances. A nil ys, or a
// ys that is the same slice as xs, means xs against itself, in which case
// only the upper triangle is computed for symmetric metrics.
//
// Factories are built on first use of each (len(x), len(y)) pair and shared
// read-only across workers, so only length pairs that are actually visited
// cost anything.
func Pairwise(metric Metric, xs, ys series.Collection, p Params, numWorkers int) (*mat.Dense, error) {
	if err := p.Validate(metric); err != nil {
		return nil, err
	}
	self := ys == nil || sameCollection(xs, ys)
	if ys == nil {
		ys = xs
	}
	if err := pairwise.CheckShapes(xs, ys); err != nil {
		return nil, err
	}

	var factories sync.Map // [2]int -> *Factory
	dist := func(x, y *series.Series) (float64, error) {
		key := [2]int{x.Len(), y.Len()}
		if f, ok := factories.Load(key); ok {
			return f.(*Factory).Distance(x, y)
		}
		f, err := NewFactory(metric, key[0], key[1], p)
		if err != nil {
			return 0, err
		}
		got, _ := factories.LoadOrStore(key, f)
		return got.(*Factory).Distance(x, y)
	}
	return pairwise.Compute(xs, ys, dist, pairwise.Options{
		Symmetric:  self && IsSymmetric(metric),
		NumWorkers: numWorkers,
	})
}

// sameCollection reports whether xs and ys share their backing array and
// length.
func sameCollection(xs, ys series.Collection) bool {
	return len(xs) == len(ys) && len(xs) > 0 && &xs[0] == &ys[0]
}
