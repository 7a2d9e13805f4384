package distance_test

import (
	"fmt"

	"github.com/nozzle/tsdist/bounding"
	"github.com/nozzle/tsdist/distance"
	"github.com/nozzle/tsdist/series"
	"gonum.org/v1/gonum/mat"
)

// ExampleERP compares two univariate series against the default gap
// reference g = 0.
func ExampleERP() {
	x, _ := series.FromValues([]float64{0, 0, 0})
	y, _ := series.FromValues([]float64{5, 5, 5})

	d, err := distance.ERP(x, y, distance.DefaultParams())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("distance=%.1f\n", d)
	// Output:
	// distance=15.0
}

// ExampleAlignmentPath restricts ERP to the diagonal with a zero window, so
// the path is the identity alignment.
func ExampleAlignmentPath() {
	x, _ := series.FromValues([]float64{1, 2, 3, 4})
	y, _ := series.FromValues([]float64{2, 2, 5, 1})

	p := distance.DefaultParams()
	p.Window = bounding.Window(0)

	path, d, _, err := distance.AlignmentPath(distance.MetricERP, x, y, p, false)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("distance=%.1f\npath=%v\n", d, path)
	// Output:
	// distance=6.0
	// path=[{0 0} {1 1} {2 2} {3 3}]
}

// ExampleLCSS shows the matched pairs behind an LCSS distance.
func ExampleLCSS() {
	x, _ := series.FromValues([]float64{1, 2, 3, 4})
	y, _ := series.FromValues([]float64{1, 3, 4, 9})

	p := distance.DefaultParams()
	p.Epsilon = 0

	path, d, _, err := distance.AlignmentPath(distance.MetricLCSS, x, y, p, false)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("distance=%.2f\nmatches=%v\n", d, path)
	// Output:
	// distance=0.25
	// matches=[{0 0} {2 1} {3 2}]
}

func ExamplePairwise() {
	xs, _ := series.NormalizeCollection([]float64{
		0, 0, 0,
		1, 1, 1,
		5, 5, 5,
	}, 3, 3)

	d, err := distance.Pairwise(distance.MetricERP, xs, nil, distance.DefaultParams(), 1)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for i := range xs {
		fmt.Println(mat.Row(nil, i, d))
	}
	// Output:
	// [0 3 15]
	// [3 0 12]
	// [15 12 0]
}
