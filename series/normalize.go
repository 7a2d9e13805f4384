package series

import (
	"fmt"

	"github.com/nozzle/tsdist/errs"
)

// Normalize turns a dense buffer with explicit shape metadata into a Series.
//
//   - (L)    is one channel of length L.
//   - (d, L) is d channels of length L.
//   - (L, 1) with L != 1 is read as one channel of length L. A (1, L) buffer
//     is already canonical. Both layouts are identical in row-major order, so
//     no copy is made.
//
// More than two axes, a zero axis, or a buffer whose length disagrees with the
// shape fail with errs.ErrInvalidShape. Non-finite values fail with
// errs.ErrInvalidParameter. The returned Series is a view over data.
func Normalize(data []float64, shape ...int) (*Series, error) {
	const op = "series.Normalize"
	switch {
	case len(shape) == 0:
		return nil, errs.InvalidShape(op, "axes", 0)
	case len(shape) > 2:
		return nil, errs.InvalidShape(op, "axes", len(shape))
	}
	if err := checkShape(op, data, shape); err != nil {
		return nil, err
	}
	if err := checkFinite(op, data); err != nil {
		return nil, err
	}

	dims, length := 1, shape[0]
	if len(shape) == 2 && (shape[1] != 1 || shape[0] == 1) {
		dims, length = shape[0], shape[1]
	}
	return newSeries(dims, length, data[:dims*length:dims*length]), nil
}

// FromValues builds a single-channel series from a 1-D slice.
func FromValues(values []float64) (*Series, error) {
	return Normalize(values, len(values))
}

// FromRows builds a series from a 2-D slice of shape (d, L), applying the
// same (L, 1) rule as Normalize. The values are copied.
func FromRows(rows [][]float64) (*Series, error) {
	const op = "series.FromRows"
	if len(rows) == 0 {
		return nil, errs.InvalidShape(op, "rows", 0)
	}
	cols := len(rows[0])
	flat := make([]float64, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, errs.InvalidShape(op, fmt.Sprintf("len(rows[%d])", i), len(r))
		}
		flat = append(flat, r...)
	}
	return Normalize(flat, len(rows), cols)
}

// NormalizeCollection turns a dense buffer into a collection of series.
//
//   - (n)       is n single-point, single-channel series.
//   - (n, L)    is n single-channel series of length L.
//   - (n, d, L) is n series of d channels and length L.
//
// More than three axes fail with errs.ErrInvalidShape. A zero count yields an
// empty collection; any other zero axis is an error. Every element is a view
// over data.
func NormalizeCollection(data []float64, shape ...int) (Collection, error) {
	const op = "series.NormalizeCollection"
	switch {
	case len(shape) == 0:
		return nil, errs.InvalidShape(op, "axes", 0)
	case len(shape) > 3:
		return nil, errs.InvalidShape(op, "axes", len(shape))
	}

	n, dims, length := shape[0], 1, 1
	switch len(shape) {
	case 2:
		length = shape[1]
	case 3:
		dims, length = shape[1], shape[2]
	}
	if n < 0 {
		return nil, errs.InvalidShape(op, "shape[0]", n)
	}
	if n == 0 {
		if len(data) != 0 {
			return nil, errs.InvalidShape(op, "len(data)", len(data))
		}
		return Collection{}, nil
	}
	if err := checkShape(op, data, shape); err != nil {
		return nil, err
	}
	if err := checkFinite(op, data); err != nil {
		return nil, err
	}

	size := dims * length
	out := make(Collection, n)
	for i := range out {
		lo, hi := i*size, (i+1)*size
		out[i] = newSeries(dims, length, data[lo:hi:hi])
	}
	return out, nil
}

func checkShape(op string, data []float64, shape []int) error {
	total := 1
	for i, s := range shape {
		if s <= 0 {
			return errs.InvalidShape(op, fmt.Sprintf("shape[%d]", i), s)
		}
		total *= s
	}
	if total != len(data) {
		return errs.InvalidShape(op, "len(data)", len(data))
	}
	return nil
}
