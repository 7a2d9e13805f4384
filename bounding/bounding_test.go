package bounding

import (
	"math"
	"testing"

	"github.com/nozzle/tsdist/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNoWindow(t *testing.T) {
	b, err := New(3, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Rows())
	assert.Equal(t, 4, b.Cols())
	assert.Equal(t, -1, b.Radius())
	assert.Equal(t, 12, b.Count())
	for i := range 3 {
		lo, hi := b.Span(i)
		assert.Equal(t, 0, lo)
		assert.Equal(t, 4, hi)
	}
}

func TestNewZeroWindowIsDiagonal(t *testing.T) {
	b, err := New(4, 4, Window(0))
	require.NoError(t, err)
	assert.Equal(t, 0, b.Radius())
	assert.Equal(t, "#...\n.#..\n..#.\n...#\n", b.String())
}

func TestNewSakoeChibaBand(t *testing.T) {
	// round(0.25 * 8) = 2
	b, err := New(8, 8, Window(0.25))
	require.NoError(t, err)
	assert.Equal(t, 2, b.Radius())
	for i := range 8 {
		for j := range 8 {
			assert.Equal(t, absInt(i-j) <= 2, b.At(i, j), "cell (%d,%d)", i, j)
		}
	}
}

func TestNewWidensToReachCorner(t *testing.T) {
	b, err := New(3, 6, Window(0))
	require.NoError(t, err)
	assert.Equal(t, 3, b.Radius())
	assert.True(t, b.At(2, 5))
	assert.True(t, b.At(0, 0))
}

func TestNewFullWindowAdmitsAll(t *testing.T) {
	b, err := New(5, 7, Window(1))
	require.NoError(t, err)
	assert.Equal(t, 35, b.Count())
}

func TestNewRejectsInvalid(t *testing.T) {
	for _, w := range []float64{-0.1, 1.01, math.NaN(), math.Inf(1)} {
		_, err := New(3, 3, Window(w))
		assert.ErrorIs(t, err, errs.ErrInvalidParameter, "window %v", w)
	}
	_, err := New(0, 3, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidShape)
	_, err = New(3, 0, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidShape)
}

func TestAtOutOfRange(t *testing.T) {
	b, err := New(2, 2, nil)
	require.NoError(t, err)
	assert.False(t, b.At(-1, 0))
	assert.False(t, b.At(0, 2))
}

func TestSymmetricUnderTranspose(t *testing.T) {
	a, err := New(5, 9, Window(0.3))
	require.NoError(t, err)
	b, err := New(9, 5, Window(0.3))
	require.NoError(t, err)
	for i := range 5 {
		for j := range 9 {
			assert.Equal(t, a.At(i, j), b.At(j, i))
		}
	}
}

func TestCountMatchesAt(t *testing.T) {
	for _, w := range []*float64{nil, Window(0), Window(0.2), Window(0.5)} {
		b, err := New(4, 6, w)
		require.NoError(t, err)
		var want int
		for i := range 4 {
			for j := range 6 {
				if b.At(i, j) {
					want++
				}
			}
		}
		assert.Equal(t, want, b.Count())
	}

	// radius widened to |4-6| = 2
	b, err := New(4, 6, Window(0))
	require.NoError(t, err)
	assert.Equal(t, 17, b.Count())
	assert.Equal(t, "###...\n####..\n#####.\n.#####\n", b.String())
}
