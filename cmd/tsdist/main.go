// Command tsdist computes elastic distances between the time series in CSV
// files.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/nozzle/tsdist"
	"github.com/nozzle/tsdist/bounding"
	"github.com/nozzle/tsdist/errs"
	"github.com/nozzle/tsdist/pairwise"
	"github.com/nozzle/tsdist/series"
	"gonum.org/v1/gonum/mat"
)

type options struct {
	input     string
	other     string
	output    string
	neighbors string
	k         int
	dims      int
	path      bool
	config    tsdist.Config
}

func main() {
	// Parse command-line flags
	inputFile := flag.String("input", "", "Input CSV file, one series per row (required)")
	otherFile := flag.String("other", "", "Second CSV file; rows of -input are compared against it")
	outputFile := flag.String("output", "distances.csv", "Output CSV file")
	metric := flag.String("metric", "erp", "Distance metric (erp, lcss)")
	window := flag.Float64("window", -1, "Sakoe-Chiba window in [0, 1]; negative disables it")
	g := flag.Float64("g", 0, "ERP gap reference value")
	epsilon := flag.Float64("epsilon", 1, "LCSS match threshold")
	dims := flag.Int("dims", 1, "Channels per series; each row holds dims*length values, channel-major")
	workers := flag.Int("workers", 0, "Number of workers (0 = all CPUs)")
	k := flag.Int("k", 0, "Also report the k nearest neighbours of every input series")
	neighborsFile := flag.String("neighbors", "neighbors.csv", "Output CSV file for -k")
	showPath := flag.Bool("path", false, "Print the alignment path of the first pair")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -input flag is required")
		flag.Usage()
		os.Exit(1)
	}

	config := tsdist.DefaultConfig()
	config.Metric = *metric
	if *window >= 0 {
		config.Window = bounding.Window(*window)
	}
	config.G = *g
	config.Epsilon = *epsilon
	config.NumWorkers = *workers
	config.Verbose = *verbose
	config.Logger = logger

	opts := options{
		input:     *inputFile,
		other:     *otherFile,
		output:    *outputFile,
		neighbors: *neighborsFile,
		k:         *k,
		dims:      *dims,
		path:      *showPath,
		config:    config,
	}
	if err := run(opts, os.Stdout, logger); err != nil {
		logger.Error("tsdist failed", "error", err)
		os.Exit(1)
	}
}

func run(opts options, stdout io.Writer, logger *slog.Logger) error {
	measure, err := tsdist.New(opts.config)
	if err != nil {
		return err
	}

	// Load data
	xs, sum, err := loadCSV(opts.input, opts.dims)
	if err != nil {
		return fmt.Errorf("loading %s: %w", opts.input, err)
	}
	logger.Debug("loaded input", "file", opts.input, "series", len(xs), "dims", opts.dims,
		"xxhash", fmt.Sprintf("%016x", sum))

	var ys series.Collection
	if opts.other != "" {
		if ys, sum, err = loadCSV(opts.other, opts.dims); err != nil {
			return fmt.Errorf("loading %s: %w", opts.other, err)
		}
		logger.Debug("loaded other", "file", opts.other, "series", len(ys),
			"xxhash", fmt.Sprintf("%016x", sum))
	}

	if opts.path {
		if err := printPath(stdout, measure, xs, ys); err != nil {
			return err
		}
	}

	d, err := measure.Pairwise(xs, ys)
	if err != nil {
		return err
	}

	// Save output
	if err := saveCSV(opts.output, d); err != nil {
		return fmt.Errorf("saving %s: %w", opts.output, err)
	}
	r, c := d.Dims()
	logger.Debug("saved distances", "file", opts.output, "rows", r, "cols", c)

	if opts.k > 0 {
		nn, err := pairwise.Nearest(d, opts.k, ys == nil, opts.config.NumWorkers)
		if err != nil {
			return err
		}
		if err := saveNeighbors(opts.neighbors, nn); err != nil {
			return fmt.Errorf("saving %s: %w", opts.neighbors, err)
		}
		logger.Debug("saved neighbours", "file", opts.neighbors, "k", opts.k)
	}
	return nil
}

// printPath aligns the first series of xs with the first of ys, or with the
// second of xs when ys is nil.
func printPath(w io.Writer, m *tsdist.Measure, xs, ys series.Collection) error {
	x, y := xs[0], xs[0]
	switch {
	case len(ys) > 0:
		y = ys[0]
	case len(xs) > 1:
		y = xs[1]
	}
	res, err := m.Align(x, y)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s=%g path=%v\n", m.Metric(), res.Distance, res.Path)
	return err
}

// loadCSV loads one series per row (no header, numeric values only). Rows
// may differ in length but each must split evenly into dims channels. The
// returned checksum is the xxHash64 of the decompressed file contents.
func loadCSV(filename string, dims int) (series.Collection, uint64, error) {
	if dims < 1 {
		return nil, 0, errs.InvalidParameter("loadCSV", "dims", dims)
	}
	in, err := openInput(filename)
	if err != nil {
		return nil, 0, err
	}
	defer in.Close()

	digest := xxhash.New()
	reader := csv.NewReader(io.TeeReader(in, digest))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, 0, err
	}

	data := make(series.Collection, 0, len(records))
	for i, record := range records {
		if len(record) == 1 && record[0] == "" {
			continue
		}
		if len(record)%dims != 0 {
			return nil, 0, errs.InvalidShape("loadCSV", fmt.Sprintf("row %d", i), len(record))
		}
		values := make([]float64, len(record))
		for j, val := range record {
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, 0, fmt.Errorf("row %d, col %d: %w", i, j, err)
			}
			values[j] = f
		}
		c, err := series.NormalizeCollection(values, 1, dims, len(record)/dims)
		if err != nil {
			return nil, 0, fmt.Errorf("row %d: %w", i, err)
		}
		data = append(data, c[0])
	}

	if len(data) == 0 {
		return nil, 0, errs.EmptyCollection("loadCSV", filename)
	}
	return data, digest.Sum64(), nil
}

// writeRecords writes records as CSV to filename.
func writeRecords(filename string, records func(w *csv.Writer) error) (err error) {
	out, err := createOutput(filename)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	writer := csv.NewWriter(out)
	if err := records(writer); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// saveCSV saves a distance matrix to a CSV file, one row per input series.
func saveCSV(filename string, d *mat.Dense) error {
	return writeRecords(filename, func(w *csv.Writer) error {
		r, c := d.Dims()
		record := make([]string, c)
		for i := range r {
			for j := range c {
				record[j] = strconv.FormatFloat(d.At(i, j), 'g', -1, 64)
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// saveNeighbors writes one (query, rank, neighbour, distance) row per
// neighbour.
func saveNeighbors(filename string, nn [][]pairwise.Neighbor) error {
	return writeRecords(filename, func(w *csv.Writer) error {
		for i, row := range nn {
			for rank, nb := range row {
				record := []string{
					strconv.Itoa(i),
					strconv.Itoa(rank + 1),
					strconv.Itoa(nb.Index),
					strconv.FormatFloat(nb.Distance, 'g', -1, 64),
				}
				if err := w.Write(record); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
