// Package distance provides elastic distances between time series.
//
// Two families are implemented: Edit distance with Real Penalty (ERP) and
// Longest Common Subsequence (LCSS). Both fill a dynamic-programming cost
// matrix restricted by a bounding matrix, and both can recover the alignment
// path behind the distance.
//
// Basic usage:
//
//	f, err := distance.NewFactory(distance.MetricERP, x.Len(), y.Len(), distance.DefaultParams())
//	d, err := f.Distance(x, y)
package distance

import (
	"math"

	"github.com/nozzle/tsdist/bounding"
	"github.com/nozzle/tsdist/errs"
)

// Metric names an elastic distance family.
type Metric int

const (
	// MetricERP is Edit distance with Real Penalty.
	MetricERP Metric = iota
	// MetricLCSS is the Longest Common Subsequence distance.
	MetricLCSS
)

// Registry maps metric names to their implementations.
var Registry = map[string]Metric{
	"erp":  MetricERP,
	"lcss": MetricLCSS,
}

// SymmetricMetrics are metrics where d(x, y) == d(y, x) holds exactly, so the
// pairwise driver may mirror instead of recomputing.
var SymmetricMetrics = map[Metric]bool{
	MetricERP:  true,
	MetricLCSS: true,
}

// Get returns the metric for the given name.
func Get(name string) (Metric, bool) {
	m, ok := Registry[name]
	return m, ok
}

// ParseMetric resolves a metric name, failing with errs.ErrInvalidParameter
// for unknown names.
func ParseMetric(name string) (Metric, error) {
	m, ok := Get(name)
	if !ok {
		return 0, errs.InvalidParameter("distance.ParseMetric", "metric", name)
	}
	return m, nil
}

// IsSymmetric returns true if the metric is exactly symmetric.
func IsSymmetric(m Metric) bool {
	return SymmetricMetrics[m]
}

func (m Metric) String() string {
	switch m {
	case MetricERP:
		return "erp"
	case MetricLCSS:
		return "lcss"
	default:
		return "unknown"
	}
}

// Params holds the options recognised by the distance families.
type Params struct {
	// Window is the Sakoe–Chiba radius in [0, 1], as a fraction of the longer
	// series. nil means no window.
	Window *float64

	// G is the ERP reference value that unmatched points are penalised
	// against. Must be finite.
	// Default: 0
	G float64

	// Epsilon is the LCSS match threshold. Must be finite and >= 0.
	// Default: 1.0
	Epsilon float64
}

// DefaultParams returns the default parameters.
func DefaultParams() Params {
	return Params{
		Window:  nil,
		G:       0,
		Epsilon: 1.0,
	}
}

// Validate checks the parameters used by metric.
func (p Params) Validate(metric Metric) error {
	if err := bounding.ValidateWindow(p.Window); err != nil {
		return err
	}
	switch metric {
	case MetricERP:
		if math.IsNaN(p.G) || math.IsInf(p.G, 0) {
			return errs.InvalidParameter("distance.Params", "g", p.G)
		}
	case MetricLCSS:
		if math.IsNaN(p.Epsilon) || math.IsInf(p.Epsilon, 0) || p.Epsilon < 0 {
			return errs.InvalidParameter("distance.Params", "epsilon", p.Epsilon)
		}
	default:
		return errs.InvalidParameter("distance.Params", "metric", int(metric))
	}
	return nil
}
