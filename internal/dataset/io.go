package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ErrNoHeader is returned when a CSV source has no header line.
var ErrNoHeader = errors.New("csv has no header")

// Read parses a CSV stream whose first record is the header.
func Read(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	hdr, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	// Strip a UTF-8 BOM, which Savant exports carry.
	if len(hdr) > 0 {
		hdr[0] = strings.TrimPrefix(hdr[0], "\ufeff")
	}
	for i := range hdr {
		hdr[i] = strings.TrimSpace(hdr[i])
	}

	f := New(hdr...)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(f.Rows)+1, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		f.Append(rec...)
	}
	return f, nil
}

// ReadFile reads a CSV file, transparently decompressing .gz and .zst.
func ReadFile(path string) (*Frame, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var src io.Reader = fh
	switch {
	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(fh)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		src = dec
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(fh)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	f, err := Read(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Write encodes the frame as CSV.
func (f *Frame) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(f.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteFile writes the frame to path, replacing any existing file. The data
// goes to a temp file in the same directory first so readers never observe a
// half-written file. Paths ending in .zst are compressed.
func (f *Frame) WriteFile(path string) error {
	return ReplaceFile(path, func(w io.Writer) error {
		if strings.HasSuffix(path, ".zst") {
			enc, err := zstd.NewWriter(w)
			if err != nil {
				return fmt.Errorf("zstd: %w", err)
			}
			if err := f.Write(enc); err != nil {
				enc.Close()
				return err
			}
			return enc.Close()
		}
		return f.Write(w)
	})
}

// ReplaceFile atomically replaces path with whatever fill writes.
func ReplaceFile(path string, fill func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("temp file: %w", err)
	}
	tmpName := tmp.Name()
	if err := fill(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
