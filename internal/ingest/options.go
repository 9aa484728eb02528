package ingest

import "github.com/KaramelBytes/skim-cli/internal/table"

// Options controls how tabular files are read and typed.
type Options struct {
	// MaxRows limits rows loaded; 0 means unlimited. Extra rows are still counted.
	MaxRows int
	// Delimiter for CSV. If 0, '\t' for .tsv files and ',' otherwise.
	Delimiter rune
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune // optional; if 0, auto-detect common separators (',' '.' space)
	// NullValues are cell contents (after trimming) treated as missing.
	NullValues []string
	// Categorical names text columns to load as Categorical instead of Utf8.
	Categorical []string
	// XLSX sheet selection. SheetName wins; SheetIndex is 1-based.
	SheetName  string
	SheetIndex int
}

// DefaultOptions returns reasonable defaults for loading a dataset.
func DefaultOptions() Options {
	return Options{
		MaxRows:    100000,
		NullValues: []string{"", "NA", "N/A", "null", "NULL", "None"},
		SheetIndex: 1,
	}
}

// Dataset is a loaded table plus what the loader noticed along the way.
type Dataset struct {
	Name string
	// Rows counts every data row in the source, loaded or not.
	Rows     int
	Table    *table.Table
	Warnings []string
}

// Release frees the table.
func (d *Dataset) Release() {
	if d != nil && d.Table != nil {
		d.Table.Release()
	}
}
