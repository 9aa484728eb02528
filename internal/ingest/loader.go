package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupported indicates a file format no loader recognises.
var ErrUnsupported = errors.New("unsupported dataset format")

// Loader reads one tabular file format into a Dataset.
type Loader interface {
	CanLoad(filename string) bool
	Load(path string, opt Options) (*Dataset, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// LoadFile selects a loader based on filename and reads the dataset.
func LoadFile(path string, opt Options) (*Dataset, error) {
	for _, l := range registry {
		if l.CanLoad(path) {
			return l.Load(path, opt)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

// Supported reports whether some loader accepts filename.
func Supported(filename string) bool {
	for _, l := range registry {
		if l.CanLoad(filename) {
			return true
		}
	}
	return false
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}

// collect converts row-major records into a Dataset, honouring MaxRows and
// padding short rows with empty (null) cells.
func collect(name string, header []string, next func() ([]string, error), opt Options) (*Dataset, error) {
	ncol := len(header)
	ds := &Dataset{Name: name}
	names := make([]string, ncol)
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
		if names[i] == "" {
			names[i] = fmt.Sprintf("column_%d", i+1)
		}
	}
	names = dedupe(names)
	maxRows := opt.MaxRows
	cells := make([][]string, ncol)
	processed := 0
	for {
		rec, err := next()
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", ds.Rows+1, err)
		}
		if rec == nil {
			break
		}
		ds.Rows++
		if maxRows > 0 && processed >= maxRows {
			continue
		}
		processed++
		for j := 0; j < ncol; j++ {
			v := ""
			if j < len(rec) {
				v = rec[j]
			}
			cells[j] = append(cells[j], v)
		}
	}
	if processed < ds.Rows {
		ds.Warnings = append(ds.Warnings, fmt.Sprintf("processed only %d/%d rows due to MaxRows", processed, ds.Rows))
	}
	tbl, err := buildTable(names, cells, opt)
	if err != nil {
		return nil, fmt.Errorf("build table: %w", err)
	}
	ds.Table = tbl
	return ds, nil
}

// dedupe suffixes repeated header names so every column name is unique.
func dedupe(names []string) []string {
	seen := make(map[string]int, len(names))
	out := make([]string, len(names))
	for i, n := range names {
		seen[n]++
		if seen[n] == 1 {
			out[i] = n
			continue
		}
		cand := fmt.Sprintf("%s_%d", n, seen[n])
		for {
			if _, ok := seen[cand]; !ok {
				break
			}
			seen[n]++
			cand = fmt.Sprintf("%s_%d", n, seen[n])
		}
		seen[cand] = 1
		out[i] = cand
	}
	return out
}
