package tsdist_test

import (
	"fmt"

	"github.com/nozzle/tsdist"
	"github.com/nozzle/tsdist/bounding"
	"github.com/nozzle/tsdist/series"
)

func Example() {
	x, _ := series.FromValues([]float64{1, 2, 3, 4})
	y, _ := series.FromValues([]float64{2, 2, 5, 1})

	cfg := tsdist.DefaultConfig()
	cfg.Window = bounding.Window(0)

	m, err := tsdist.New(cfg)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	res, err := m.Align(x, y)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("erp=%.1f path=%v\n", res.Distance, res.Path)
	// Output:
	// erp=6.0 path=[{0 0} {1 1} {2 2} {3 3}]
}
