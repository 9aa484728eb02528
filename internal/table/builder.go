package table

import (
	"fmt"
	"time"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// Builder assembles a Table column by column. Errors are sticky and
// reported by Build. A nil valid slice means every value is present.
type Builder struct {
	mem    memory.Allocator
	fields []arrow.Field
	cols   []arrow.Array
	err    error
}

// NewBuilder returns a Builder using mem, or the default allocator when nil.
func NewBuilder(mem memory.Allocator) *Builder {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	return &Builder{mem: mem}
}

func (b *Builder) check(name string, n int, valid []bool) bool {
	if b.err != nil {
		return false
	}
	if valid != nil && len(valid) != n {
		b.err = fmt.Errorf("column %q: %d values but %d validity flags", name, n, len(valid))
		return false
	}
	return true
}

func (b *Builder) add(name string, arr arrow.Array) {
	b.fields = append(b.fields, arrow.Field{Name: name, Type: arr.DataType(), Nullable: true})
	b.cols = append(b.cols, arr)
}

// Int64 appends a signed integer column.
func (b *Builder) Int64(name string, vals []int64, valid []bool) *Builder {
	if !b.check(name, len(vals), valid) {
		return b
	}
	bld := array.NewInt64Builder(b.mem)
	defer bld.Release()
	bld.AppendValues(vals, valid)
	b.add(name, bld.NewArray())
	return b
}

// Float64 appends a floating point column.
func (b *Builder) Float64(name string, vals []float64, valid []bool) *Builder {
	if !b.check(name, len(vals), valid) {
		return b
	}
	bld := array.NewFloat64Builder(b.mem)
	defer bld.Release()
	bld.AppendValues(vals, valid)
	b.add(name, bld.NewArray())
	return b
}

// String appends a Utf8 column.
func (b *Builder) String(name string, vals []string, valid []bool) *Builder {
	if !b.check(name, len(vals), valid) {
		return b
	}
	bld := array.NewStringBuilder(b.mem)
	defer bld.Release()
	bld.AppendValues(vals, valid)
	b.add(name, bld.NewArray())
	return b
}

// Bool appends a Boolean column.
func (b *Builder) Bool(name string, vals []bool, valid []bool) *Builder {
	if !b.check(name, len(vals), valid) {
		return b
	}
	bld := array.NewBooleanBuilder(b.mem)
	defer bld.Release()
	bld.AppendValues(vals, valid)
	b.add(name, bld.NewArray())
	return b
}

// Date appends a calendar date column; the time of day is dropped.
func (b *Builder) Date(name string, vals []time.Time, valid []bool) *Builder {
	if !b.check(name, len(vals), valid) {
		return b
	}
	days := make([]arrow.Date32, len(vals))
	for i, v := range vals {
		days[i] = arrow.Date32FromTime(v)
	}
	bld := array.NewDate32Builder(b.mem)
	defer bld.Release()
	bld.AppendValues(days, valid)
	b.add(name, bld.NewArray())
	return b
}

// Timestamp appends a microsecond precision UTC datetime column.
func (b *Builder) Timestamp(name string, vals []time.Time, valid []bool) *Builder {
	if !b.check(name, len(vals), valid) {
		return b
	}
	ts := make([]arrow.Timestamp, len(vals))
	for i, v := range vals {
		ts[i] = arrow.Timestamp(v.UnixMicro())
	}
	bld := array.NewTimestampBuilder(b.mem, &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"})
	defer bld.Release()
	bld.AppendValues(ts, valid)
	b.add(name, bld.NewArray())
	return b
}

// Duration appends a microsecond precision duration column.
func (b *Builder) Duration(name string, vals []time.Duration, valid []bool) *Builder {
	if !b.check(name, len(vals), valid) {
		return b
	}
	ds := make([]arrow.Duration, len(vals))
	for i, v := range vals {
		ds[i] = arrow.Duration(v.Microseconds())
	}
	bld := array.NewDurationBuilder(b.mem, &arrow.DurationType{Unit: arrow.Microsecond})
	defer bld.Release()
	bld.AppendValues(ds, valid)
	b.add(name, bld.NewArray())
	return b
}

// Categorical appends a dictionary encoded string column.
func (b *Builder) Categorical(name string, vals []string, valid []bool) *Builder {
	if !b.check(name, len(vals), valid) {
		return b
	}
	dt := &arrow.DictionaryType{IndexType: arrow.PrimitiveTypes.Int32, ValueType: arrow.BinaryTypes.String}
	bld := array.NewDictionaryBuilder(b.mem, dt).(*array.BinaryDictionaryBuilder)
	defer bld.Release()
	for i, v := range vals {
		if valid != nil && !valid[i] {
			bld.AppendNull()
			continue
		}
		if err := bld.AppendString(v); err != nil {
			b.err = fmt.Errorf("column %q: %w", name, err)
			return b
		}
	}
	b.add(name, bld.NewArray())
	return b
}

// Build validates the columns and returns the table. The builder must not be
// reused afterwards.
func (b *Builder) Build() (*Table, error) {
	defer func() {
		for _, c := range b.cols {
			c.Release()
		}
		b.cols = nil
	}()
	if b.err != nil {
		return nil, b.err
	}
	nrows := 0
	for i, c := range b.cols {
		if i == 0 {
			nrows = c.Len()
			continue
		}
		if c.Len() != nrows {
			return nil, fmt.Errorf("%w: %q has %d rows, %q has %d", ErrRaggedColumns, b.fields[0].Name, nrows, b.fields[i].Name, c.Len())
		}
	}
	rec := array.NewRecord(arrow.NewSchema(b.fields, nil), b.cols, int64(nrows))
	defer rec.Release()
	return New(rec)
}
