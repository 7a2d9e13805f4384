// Package pairwise applies a single-pair distance across two collections of
// series, producing the full |xs|×|ys| distance matrix.
package pairwise

import (
	"fmt"

	"github.com/nozzle/tsdist/errs"
	"github.com/nozzle/tsdist/internal/parallel"
	"github.com/nozzle/tsdist/series"
	"gonum.org/v1/gonum/mat"
)

// Func is a distance between two series.
type Func func(x, y *series.Series) (float64, error)

// Options configures Compute.
type Options struct {
	// Symmetric declares that dist(x, y) == dist(y, x) and that xs and ys
	// are the same collection. Only cells with j >= i are computed; the rest
	// are mirrored.
	Symmetric bool

	// NumWorkers for parallel processing (0 = auto).
	NumWorkers int
}

// CheckShapes verifies that every series in xs and ys shares one channel
// count.
func CheckShapes(xs, ys series.Collection) error {
	dx, err := xs.Dims()
	if err != nil {
		return fmt.Errorf("xs: %w", err)
	}
	dy, err := ys.Dims()
	if err != nil {
		return fmt.Errorf("ys: %w", err)
	}
	if len(xs) > 0 && len(ys) > 0 && dx != dy {
		return errs.ShapeMismatch("pairwise.CheckShapes", "ys.dims", dy, dx)
	}
	return nil
}

// Compute returns the matrix whose (i, j) cell is dist(xs[i], ys[j]).
//
// Rows are spread over workers and every cell is written by exactly one of
// them. With opts.Symmetric the upper triangle (j >= i) is filled first and
// the lower triangle is mirrored from it afterwards, so a copy never races
// its source and the result is exactly symmetric.
//
// An empty collection on either side yields an empty matrix. If dist fails,
// the error of the first failing cell in row-major order is returned and no
// matrix is produced.
func Compute(xs, ys series.Collection, dist Func, opts Options) (*mat.Dense, error) {
	if err := CheckShapes(xs, ys); err != nil {
		return nil, err
	}
	if opts.Symmetric && len(xs) != len(ys) {
		return nil, errs.InvalidParameter("pairwise.Compute", "symmetric", fmt.Sprintf("%d x %d", len(xs), len(ys)))
	}
	nx, ny := len(xs), len(ys)
	if nx == 0 || ny == 0 {
		return &mat.Dense{}, nil
	}

	out := mat.NewDense(nx, ny, nil)
	raw := out.RawMatrix()
	rowErr := make([]error, nx)
	workers := parallel.Resolve(opts.NumWorkers, nx)

	parallel.ForDynamic(0, nx, 1, workers, func(i int) {
		row := raw.Data[i*raw.Stride : i*raw.Stride+ny]
		start := 0
		if opts.Symmetric {
			start = i
		}
		for j := start; j < ny; j++ {
			d, err := dist(xs[i], ys[j])
			if err != nil {
				rowErr[i] = fmt.Errorf("pairwise: cell (%d, %d): %w", i, j, err)
				return
			}
			row[j] = d
		}
	})
	for _, err := range rowErr {
		if err != nil {
			return nil, err
		}
	}

	if opts.Symmetric {
		parallel.For(1, nx, workers, func(i int) {
			for j := range i {
				raw.Data[i*raw.Stride+j] = raw.Data[j*raw.Stride+i]
			}
		})
	}
	return out, nil
}
