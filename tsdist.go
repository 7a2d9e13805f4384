// Package tsdist computes elastic distances between time series.
//
// Two distance families are supported: Edit distance with Real Penalty (ERP)
// and Longest Common Subsequence (LCSS). Series may be multivariate and of
// unequal length, comparisons may be restricted to a Sakoe–Chiba window, and
// the alignment behind a distance can be recovered.
//
// Basic usage:
//
//	m, err := tsdist.New(tsdist.DefaultConfig())
//	d, err := m.Distance(x, y)
//	dists, err := m.Pairwise(xs, nil)
package tsdist

import (
	"log/slog"
	"sync"
	"time"

	"github.com/nozzle/tsdist/alignment"
	"github.com/nozzle/tsdist/distance"
	"github.com/nozzle/tsdist/errs"
	"github.com/nozzle/tsdist/internal/parallel"
	"github.com/nozzle/tsdist/series"
	"gonum.org/v1/gonum/mat"
)

// Config configures a Measure.
type Config struct {
	// Metric is the distance family.
	// Options: "erp", "lcss"
	// Default: "erp"
	Metric string

	// Window is the Sakoe–Chiba radius in [0, 1], as a fraction of the
	// longer series. nil compares every pair of points.
	// Default: nil
	Window *float64

	// G is the ERP reference value that unmatched points are penalised
	// against.
	// Default: 0
	G float64

	// Epsilon is the LCSS match threshold.
	// Default: 1.0
	Epsilon float64

	// ReturnCostMatrix makes Align return the full cost matrix.
	// Default: false
	ReturnCostMatrix bool

	// NumWorkers for parallel processing.
	// 0 = auto-detect based on CPU cores.
	// Default: 0
	NumWorkers int

	// Verbose enables progress logging.
	// Default: false
	Verbose bool

	// Logger receives progress output when Verbose is set.
	// Default: nil (slog.Default())
	Logger *slog.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Metric:           "erp",
		Window:           nil,
		G:                0,
		Epsilon:          1.0,
		ReturnCostMatrix: false,
		NumWorkers:       0,
		Verbose:          false,
	}
}

// Params returns the distance parameters held by c.
func (c Config) Params() distance.Params {
	return distance.Params{Window: c.Window, G: c.G, Epsilon: c.Epsilon}
}

// Result is the outcome of aligning two series.
type Result struct {
	Distance float64

	// Path is the warping path for ERP and the matched pairs for LCSS.
	Path alignment.Path

	// CostMatrix is set only when Config.ReturnCostMatrix is true.
	CostMatrix *mat.Dense
}

// Measure is a validated, reusable distance configuration. It is safe for
// concurrent use.
type Measure struct {
	Config Config

	metric distance.Metric
	params distance.Params
	logger *slog.Logger

	mu        sync.Mutex
	factories map[[2]int]*distance.Factory
}

// New validates cfg and returns a Measure. Invalid metrics, windows or
// parameters fail here rather than on first use.
func New(cfg Config) (*Measure, error) {
	metric, err := distance.ParseMetric(cfg.Metric)
	if err != nil {
		return nil, err
	}
	params := cfg.Params()
	if err := params.Validate(metric); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Measure{
		Config:    cfg,
		metric:    metric,
		params:    params,
		logger:    logger,
		factories: make(map[[2]int]*distance.Factory),
	}, nil
}

// Metric returns the resolved metric.
func (m *Measure) Metric() distance.Metric { return m.metric }

// Distance returns the distance between x and y.
func (m *Measure) Distance(x, y *series.Series) (float64, error) {
	f, err := m.factory(x, y)
	if err != nil {
		return 0, err
	}
	return f.Distance(x, y)
}

// Align returns the distance between x and y together with its alignment.
func (m *Measure) Align(x, y *series.Series) (*Result, error) {
	f, err := m.factory(x, y)
	if err != nil {
		return nil, err
	}
	path, d, cost, err := f.DistanceWithPath(x, y, m.Config.ReturnCostMatrix)
	if err != nil {
		return nil, err
	}
	return &Result{Distance: d, Path: path, CostMatrix: cost}, nil
}

// Pairwise returns the |xs|×|ys| distance matrix. A nil ys, or ys being the
// same slice as xs, compares xs with itself and computes only the upper
// triangle.
func (m *Measure) Pairwise(xs, ys series.Collection) (*mat.Dense, error) {
	if !m.Config.Verbose {
		return distance.Pairwise(m.metric, xs, ys, m.params, m.Config.NumWorkers)
	}

	cols := len(ys)
	if ys == nil {
		cols = len(xs)
	}
	m.logger.Info("pairwise distances",
		"metric", m.metric.String(),
		"rows", len(xs),
		"cols", cols,
		"workers", parallel.Resolve(m.Config.NumWorkers, len(xs)),
	)
	start := time.Now()
	out, err := distance.Pairwise(m.metric, xs, ys, m.params, m.Config.NumWorkers)
	if err != nil {
		m.logger.Error("pairwise distances failed", "error", err)
		return nil, err
	}
	m.logger.Info("pairwise distances done", "elapsed", time.Since(start))
	return out, nil
}

// maxCachedFactories caps the per-Measure factory cache. The cache is
// dropped wholesale when full.
const maxCachedFactories = 256

// factory returns the cached factory for the lengths of x and y.
func (m *Measure) factory(x, y *series.Series) (*distance.Factory, error) {
	if x == nil {
		return nil, errs.InvalidShape("tsdist.Measure", "x", nil)
	}
	if y == nil {
		return nil, errs.InvalidShape("tsdist.Measure", "y", nil)
	}
	key := [2]int{x.Len(), y.Len()}

	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.factories[key]; ok {
		return f, nil
	}
	f, err := distance.NewFactory(m.metric, key[0], key[1], m.params)
	if err != nil {
		return nil, err
	}
	if len(m.factories) >= maxCachedFactories {
		clear(m.factories)
	}
	m.factories[key] = f
	return f, nil
}
