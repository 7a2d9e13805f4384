package pairwise

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nozzle/tsdist/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNearest(t *testing.T) {
	d := mat.NewDense(3, 3, []float64{
		0, 2, 1,
		2, 0, 2,
		1, 2, 0,
	})

	got, err := Nearest(d, 1, true, 2)
	require.NoError(t, err)
	want := [][]Neighbor{
		{{Index: 2, Distance: 1}},
		{{Index: 0, Distance: 2}},
		{{Index: 0, Distance: 1}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Nearest mismatch (-want +got):\n%s", diff)
	}

	got, err = Nearest(d, 5, false, 1)
	require.NoError(t, err)
	want = [][]Neighbor{
		{{0, 0}, {2, 1}, {1, 2}},
		{{1, 0}, {0, 2}, {2, 2}},
		{{2, 0}, {0, 1}, {1, 2}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Nearest mismatch (-want +got):\n%s", diff)
	}
}

func TestNearestFromCompute(t *testing.T) {
	xs := constants(t, 0, 10, 1, 9)
	d, err := Compute(xs, xs, absDiff, Options{Symmetric: true})
	require.NoError(t, err)

	got, err := Nearest(d, 1, true, 0)
	require.NoError(t, err)
	idx := make([]int, len(got))
	for i, nb := range got {
		require.Len(t, nb, 1)
		idx[i] = nb[0].Index
	}
	assert.Equal(t, []int{2, 3, 0, 1}, idx)
}

func TestNearestErrors(t *testing.T) {
	_, err := Nearest(mat.NewDense(1, 1, nil), 0, false, 1)
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)

	got, err := Nearest(&mat.Dense{}, 3, true, 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}
