package distance_test

import (
	"math"
	"testing"

	"github.com/nozzle/tsdist/bounding"
	"github.com/nozzle/tsdist/distance"
	"github.com/nozzle/tsdist/series"
)

// sine returns a single-channel sine wave of length n shifted by phase.
func sine(b *testing.B, n int, phase float64) *series.Series {
	b.Helper()
	v := make([]float64, n)
	for i := range v {
		v[i] = math.Sin(float64(i)/8 + phase)
	}
	s, err := series.FromValues(v)
	if err != nil {
		b.Fatalf("FromValues failed: %v", err)
	}
	return s
}

// benchmarkDistance runs the factory distance on sine waves of lengths m and n.
func benchmarkDistance(b *testing.B, metric distance.Metric, m, n int, p distance.Params) {
	x, y := sine(b, m, 0), sine(b, n, 0.5)
	f, err := distance.NewFactory(metric, m, n, p)
	if err != nil {
		b.Fatalf("NewFactory failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		if _, err := f.Distance(x, y); err != nil {
			b.Fatalf("Distance failed: %v", err)
		}
	}
}

// benchmarkPath runs the full-matrix path recovery on sine waves of lengths m and n.
func benchmarkPath(b *testing.B, metric distance.Metric, m, n int, p distance.Params) {
	x, y := sine(b, m, 0), sine(b, n, 0.5)
	f, err := distance.NewFactory(metric, m, n, p)
	if err != nil {
		b.Fatalf("NewFactory failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		if _, _, _, err := f.DistanceWithPath(x, y, false); err != nil {
			b.Fatalf("DistanceWithPath failed: %v", err)
		}
	}
}

func BenchmarkERP_Small(b *testing.B) {
	benchmarkDistance(b, distance.MetricERP, 100, 100, distance.DefaultParams())
}

func BenchmarkERP_Medium(b *testing.B) {
	benchmarkDistance(b, distance.MetricERP, 500, 500, distance.DefaultParams())
}

// BenchmarkERP_Window restricts the medium case to a 10% band.
func BenchmarkERP_Window(b *testing.B) {
	p := distance.DefaultParams()
	p.Window = bounding.Window(0.1)
	benchmarkDistance(b, distance.MetricERP, 500, 500, p)
}

func BenchmarkERP_Path(b *testing.B) {
	benchmarkPath(b, distance.MetricERP, 200, 200, distance.DefaultParams())
}

func BenchmarkLCSS_Small(b *testing.B) {
	benchmarkDistance(b, distance.MetricLCSS, 100, 100, distance.DefaultParams())
}

func BenchmarkLCSS_Medium(b *testing.B) {
	benchmarkDistance(b, distance.MetricLCSS, 500, 500, distance.DefaultParams())
}

func BenchmarkLCSS_Window(b *testing.B) {
	p := distance.DefaultParams()
	p.Window = bounding.Window(0.1)
	benchmarkDistance(b, distance.MetricLCSS, 500, 501, p)
}

func BenchmarkLCSS_Path(b *testing.B) {
	benchmarkPath(b, distance.MetricLCSS, 200, 200, distance.DefaultParams())
}

// BenchmarkPairwise computes a 64×64 symmetric ERP matrix.
func BenchmarkPairwise(b *testing.B) {
	xs := make(series.Collection, 64)
	for i := range xs {
		xs[i] = sine(b, 128, float64(i)/10)
	}
	p := distance.DefaultParams()
	p.Window = bounding.Window(0.2)

	b.ResetTimer()
	for b.Loop() {
		if _, err := distance.Pairwise(distance.MetricERP, xs, nil, p, 0); err != nil {
			b.Fatalf("Pairwise failed: %v", err)
		}
	}
}
