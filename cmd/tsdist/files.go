package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// openInput opens filename, decompressing it when it ends in .zst or .lz4.
func openInput(filename string) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	switch filepath.Ext(filename) {
	case ".zst":
		dec, err := zstd.NewReader(file, zstd.WithDecoderConcurrency(1))
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		return &readCloser{Reader: dec, close: func() error {
			dec.Close()
			return file.Close()
		}}, nil
	case ".lz4":
		return &readCloser{Reader: lz4.NewReader(file), close: file.Close}, nil
	default:
		return file, nil
	}
}

// createOutput creates filename, compressing it when it ends in .zst or
// .lz4.
func createOutput(filename string) (io.WriteCloser, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	switch filepath.Ext(filename) {
	case ".zst":
		enc, err := zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return &writeCloser{Writer: enc, close: func() error {
			return errors.Join(enc.Close(), file.Close())
		}}, nil
	case ".lz4":
		enc := lz4.NewWriter(file)
		return &writeCloser{Writer: enc, close: func() error {
			return errors.Join(enc.Close(), file.Close())
		}}, nil
	default:
		return file, nil
	}
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r *readCloser) Close() error { return r.close() }

type writeCloser struct {
	io.Writer
	close func() error
}

func (w *writeCloser) Close() error { return w.close() }
