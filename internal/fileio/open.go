// Package fileio opens possibly-compressed input files.
package fileio

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Reader wraps an input file with transparent decompression based on the
// file extension (.gz, .zst, .lz4).
type Reader struct {
	io.Reader
	file    *os.File
	closers []io.Closer
}

// Open opens path for reading, decompressing on the fly when the extension
// indicates a compressed file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	r := &Reader{Reader: f, file: f}

	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		r.Reader = gz
		r.closers = append(r.closers, gz)
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open zstd reader: %w", err)
		}
		rc := zr.IOReadCloser()
		r.Reader = rc
		r.closers = append(r.closers, rc)
	case strings.HasSuffix(path, ".lz4"):
		r.Reader = lz4.NewReader(f)
	}

	return r, nil
}

// Close closes the decompressor (if any) and the underlying file.
func (r *Reader) Close() error {
	for _, c := range r.closers {
		c.Close()
	}
	return r.file.Close()
}
