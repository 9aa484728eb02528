package skim

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyColumn marks a column without a single usable value.
	ErrEmptyColumn = errors.New("no non-null values")
	// ErrTypeCoercion marks a column that cannot be read as its group's kind.
	ErrTypeCoercion = errors.New("cannot coerce column")
	// ErrDegenerateHistogram marks input whose bins cannot be normalised
	// (empty or a single distinct value). BuildHistogram resolves it to blanks.
	ErrDegenerateHistogram = errors.New("degenerate histogram")
	// ErrUnknownColumn marks a requested column missing from the table.
	ErrUnknownColumn = errors.New("unknown column")
)

// ColumnError is a recoverable failure confined to one column.
type ColumnError struct {
	Column string
	Group  TypeGroup
	Err    error
}

func (e *ColumnError) Error() string {
	if e == nil {
		return "column error"
	}
	return fmt.Sprintf("column %q (%s): %v", e.Column, e.Group, e.Err)
}

func (e *ColumnError) Unwrap() error { return e.Err }
