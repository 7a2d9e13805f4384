package pairwise

import (
	"github.com/nozzle/tsdist/errs"
	"github.com/nozzle/tsdist/internal/heap"
	"github.com/nozzle/tsdist/internal/parallel"
	"gonum.org/v1/gonum/mat"
)

// Neighbor is one entry of a nearest-neighbour list.
type Neighbor struct {
	Index    int
	Distance float64
}

// Nearest returns, for every row of a distance matrix, the k columns with
// the smallest distances in ascending order. Ties are broken by the lower
// column index. With excludeSelf the diagonal is skipped, for matrices
// produced by self-pairwise runs. Rows with fewer than k candidates return
// all of them.
func Nearest(d mat.Matrix, k int, excludeSelf bool, numWorkers int) ([][]Neighbor, error) {
	if k < 1 {
		return nil, errs.InvalidParameter("pairwise.Nearest", "k", k)
	}
	rows, cols := d.Dims()
	out := make([][]Neighbor, rows)

	parallel.For(0, rows, parallel.Resolve(numWorkers, rows), func(i int) {
		h := heap.New(min(k, cols))
		for j := range cols {
			if excludeSelf && i == j {
				continue
			}
			h.Push(j, d.At(i, j))
		}
		h.Sort()

		nb := make([]Neighbor, len(h.Indices))
		for n := range nb {
			nb[n] = Neighbor{Index: h.Indices[n], Distance: h.Distances[n]}
		}
		out[i] = nb
	})
	return out, nil
}
