package table

import (
	"errors"
	"fmt"
	"time"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/float16"
)

var (
	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("duplicate column name")
	// ErrRaggedColumns is returned when columns have different lengths.
	ErrRaggedColumns = errors.New("columns have different lengths")
	// ErrNotNumeric is returned when a numeric view is requested from a non-numeric column.
	ErrNotNumeric = errors.New("column is not numeric")
	// ErrUnsupportedKind is returned when a column cannot be viewed as the requested kind.
	ErrUnsupportedKind = errors.New("unsupported column kind")
)

// Table is an immutable, ordered set of uniquely named columns of equal length.
// It is backed by an Arrow record; Clone shares the underlying buffers.
type Table struct {
	rec arrow.Record
}

// New wraps rec. The table holds its own reference; callers keep theirs.
func New(rec arrow.Record) (*Table, error) {
	seen := make(map[string]struct{}, rec.NumCols())
	for i := 0; i < int(rec.NumCols()); i++ {
		name := rec.ColumnName(i)
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		seen[name] = struct{}{}
	}
	rec.Retain()
	return &Table{rec: rec}, nil
}

// NumRows returns the row count.
func (t *Table) NumRows() int { return int(t.rec.NumRows()) }

// NumCols returns the column count.
func (t *Table) NumCols() int { return int(t.rec.NumCols()) }

// ColumnNames returns the column names in display order.
func (t *Table) ColumnNames() []string {
	out := make([]string, t.NumCols())
	for i := range out {
		out[i] = t.rec.ColumnName(i)
	}
	return out
}

// Column returns the i-th column.
func (t *Table) Column(i int) Column {
	f := t.rec.Schema().Field(i)
	return Column{Name: f.Name, Tag: TagOf(f.Type), arr: t.rec.Column(i)}
}

// ColumnByName looks a column up by exact name.
func (t *Table) ColumnByName(name string) (Column, bool) {
	for i := 0; i < t.NumCols(); i++ {
		if t.rec.ColumnName(i) == name {
			return t.Column(i), true
		}
	}
	return Column{}, false
}

// Columns returns every column in order.
func (t *Table) Columns() []Column {
	out := make([]Column, t.NumCols())
	for i := range out {
		out[i] = t.Column(i)
	}
	return out
}

// Clone returns a snapshot that stays valid after t is released.
func (t *Table) Clone() *Table {
	t.rec.Retain()
	return &Table{rec: t.rec}
}

// Release drops this table's reference to the underlying record.
func (t *Table) Release() {
	if t == nil || t.rec == nil {
		return
	}
	t.rec.Release()
}

// Record exposes the underlying Arrow record without transferring ownership.
func (t *Table) Record() arrow.Record { return t.rec }

// Column is a named, typed view over one Arrow array.
type Column struct {
	Name string
	Tag  TypeTag
	arr  arrow.Array
}

// Len returns the number of entries including nulls.
func (c Column) Len() int {
	if c.arr == nil {
		return 0
	}
	return c.arr.Len()
}

// NullN returns the number of null entries.
func (c Column) NullN() int {
	if c.arr == nil {
		return 0
	}
	return c.arr.NullN()
}

// Array exposes the backing array.
func (c Column) Array() arrow.Array { return c.arr }

type valuer[T any] interface {
	Len() int
	IsNull(int) bool
	Value(int) T
}

func collect[T, U any](a valuer[T], conv func(T) U) ([]U, int) {
	out := make([]U, 0, a.Len())
	nulls := 0
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) {
			nulls++
			continue
		}
		out = append(out, conv(a.Value(i)))
	}
	return out, nulls
}

func toFloat[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64](v T) float64 {
	return float64(v)
}

// Float64s returns the non-null values of a numeric column as float64 along
// with the null count.
func (c Column) Float64s() ([]float64, int, error) {
	switch a := c.arr.(type) {
	case *array.Int8:
		v, n := collect[int8](a, toFloat[int8])
		return v, n, nil
	case *array.Int16:
		v, n := collect[int16](a, toFloat[int16])
		return v, n, nil
	case *array.Int32:
		v, n := collect[int32](a, toFloat[int32])
		return v, n, nil
	case *array.Int64:
		v, n := collect[int64](a, toFloat[int64])
		return v, n, nil
	case *array.Uint8:
		v, n := collect[uint8](a, toFloat[uint8])
		return v, n, nil
	case *array.Uint16:
		v, n := collect[uint16](a, toFloat[uint16])
		return v, n, nil
	case *array.Uint32:
		v, n := collect[uint32](a, toFloat[uint32])
		return v, n, nil
	case *array.Uint64:
		v, n := collect[uint64](a, toFloat[uint64])
		return v, n, nil
	case *array.Float16:
		v, n := collect[float16.Num](a, func(f float16.Num) float64 { return float64(f.Float32()) })
		return v, n, nil
	case *array.Float32:
		v, n := collect[float32](a, toFloat[float32])
		return v, n, nil
	case *array.Float64:
		v, n := collect[float64](a, toFloat[float64])
		return v, n, nil
	}
	return nil, c.NullN(), fmt.Errorf("%w: %s is %s", ErrNotNumeric, c.Name, c.Tag)
}

// Strings returns the non-null values of a Utf8 or Categorical column.
func (c Column) Strings() ([]string, int, error) {
	ident := func(s string) string { return s }
	switch a := c.arr.(type) {
	case *array.String:
		v, n := collect[string](a, ident)
		return v, n, nil
	case *array.LargeString:
		v, n := collect[string](a, ident)
		return v, n, nil
	case *array.Dictionary:
		dict, ok := a.Dictionary().(interface{ Value(int) string })
		if !ok {
			break
		}
		out := make([]string, 0, a.Len())
		nulls := 0
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				nulls++
				continue
			}
			out = append(out, dict.Value(a.GetValueIndex(i)))
		}
		return out, nulls, nil
	}
	return nil, c.NullN(), fmt.Errorf("%w: %s is %s, want text", ErrUnsupportedKind, c.Name, c.Tag)
}

// Bools returns the non-null values of a Boolean column.
func (c Column) Bools() ([]bool, int, error) {
	if a, ok := c.arr.(*array.Boolean); ok {
		v, n := collect[bool](a, func(b bool) bool { return b })
		return v, n, nil
	}
	return nil, c.NullN(), fmt.Errorf("%w: %s is %s, want Boolean", ErrUnsupportedKind, c.Name, c.Tag)
}

// Times returns the non-null values of a Date, Datetime or Time column.
func (c Column) Times() ([]time.Time, int, error) {
	switch a := c.arr.(type) {
	case *array.Date32:
		v, n := collect[arrow.Date32](a, func(d arrow.Date32) time.Time { return d.ToTime().UTC() })
		return v, n, nil
	case *array.Date64:
		v, n := collect[arrow.Date64](a, func(d arrow.Date64) time.Time { return d.ToTime().UTC() })
		return v, n, nil
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		v, n := collect[arrow.Timestamp](a, func(ts arrow.Timestamp) time.Time { return ts.ToTime(unit).UTC() })
		return v, n, nil
	case *array.Time32:
		unit := a.DataType().(*arrow.Time32Type).Unit
		v, n := collect[arrow.Time32](a, func(t arrow.Time32) time.Time { return t.ToTime(unit).UTC() })
		return v, n, nil
	case *array.Time64:
		unit := a.DataType().(*arrow.Time64Type).Unit
		v, n := collect[arrow.Time64](a, func(t arrow.Time64) time.Time { return t.ToTime(unit).UTC() })
		return v, n, nil
	}
	return nil, c.NullN(), fmt.Errorf("%w: %s is %s, want temporal", ErrUnsupportedKind, c.Name, c.Tag)
}

// Durations returns the non-null values of a Duration column.
func (c Column) Durations() ([]time.Duration, int, error) {
	if a, ok := c.arr.(*array.Duration); ok {
		mul := a.DataType().(*arrow.DurationType).Unit.Multiplier()
		v, n := collect[arrow.Duration](a, func(d arrow.Duration) time.Duration { return time.Duration(d) * mul })
		return v, n, nil
	}
	return nil, c.NullN(), fmt.Errorf("%w: %s is %s, want Duration", ErrUnsupportedKind, c.Name, c.Tag)
}
