package skim

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/KaramelBytes/skim-cli/internal/table"
)

// SummaryRow is one column's summary, ready to be laid out as table cells.
type SummaryRow interface {
	ColumnName() string
	Cells() []string
}

// Summarizer computes per-column summaries for one TypeGroup.
type Summarizer interface {
	Group() TypeGroup
	// Title is the section title, e.g. "number".
	Title() string
	Header() []string
	Summarize(col table.Column) (SummaryRow, error)
}

// DefaultSummarizers returns one summarizer per summarised group, in display order.
func DefaultSummarizers() []Summarizer {
	return []Summarizer{
		numericSummarizer{},
		categoricalSummarizer{},
		temporalSummarizer{},
		stringSummarizer{},
		booleanSummarizer{},
	}
}

// undefinedCell fills text cells that have no value.
const undefinedCell = "-"

type numericSummarizer struct{}

func (numericSummarizer) Group() TypeGroup { return Numeric }
func (numericSummarizer) Title() string    { return "number" }
func (numericSummarizer) Header() []string { return NumericHeader() }
func (numericSummarizer) Summarize(col table.Column) (SummaryRow, error) {
	return summarizeNumericColumn(col)
}

// CategoricalRow summarises a Categorical column.
type CategoricalRow struct {
	Name    string `json:"name" yaml:"name"`
	Count   int    `json:"count" yaml:"count"`
	Nulls   int    `json:"null_count" yaml:"null_count"`
	Unique  int    `json:"unique" yaml:"unique"`
	Top     string `json:"top" yaml:"top"`
	TopFreq int    `json:"freq" yaml:"freq"`
}

func (r CategoricalRow) ColumnName() string { return r.Name }

func (r CategoricalRow) Cells() []string {
	top := r.Top
	if r.Count == 0 {
		top = undefinedCell
	}
	return []string{r.Name, strconv.Itoa(r.Count), strconv.Itoa(r.Nulls), strconv.Itoa(r.Unique), top, strconv.Itoa(r.TopFreq)}
}

type categoricalSummarizer struct{}

func (categoricalSummarizer) Group() TypeGroup { return Categorical }
func (categoricalSummarizer) Title() string    { return "category" }
func (categoricalSummarizer) Header() []string {
	return []string{"name", "count", "null_count", "unique", "top", "freq"}
}

func (categoricalSummarizer) Summarize(col table.Column) (SummaryRow, error) {
	row := CategoricalRow{Name: col.Name, Nulls: col.NullN()}
	vals, nulls, err := col.Strings()
	if err != nil {
		row.Count = col.Len() - col.NullN()
		return row, &ColumnError{Column: col.Name, Group: Categorical, Err: fmt.Errorf("%w: %v", ErrTypeCoercion, err)}
	}
	row.Count, row.Nulls = len(vals), nulls
	if len(vals) == 0 {
		return row, &ColumnError{Column: col.Name, Group: Categorical, Err: ErrEmptyColumn}
	}
	freq := map[string]int{}
	for _, v := range vals {
		freq[v]++
	}
	row.Unique = len(freq)
	for k, n := range freq {
		if n > row.TopFreq || (n == row.TopFreq && k < row.Top) {
			row.Top, row.TopFreq = k, n
		}
	}
	return row, nil
}

// TemporalRow summarises a Date, Datetime, Time or Duration column.
type TemporalRow struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
	Nulls int    `json:"null_count" yaml:"null_count"`
	First string `json:"first" yaml:"first"`
	Last  string `json:"last" yaml:"last"`
	Span  string `json:"span" yaml:"span"`
}

func (r TemporalRow) ColumnName() string { return r.Name }

func (r TemporalRow) Cells() []string {
	return []string{r.Name, strconv.Itoa(r.Count), strconv.Itoa(r.Nulls), orUndefined(r.First), orUndefined(r.Last), orUndefined(r.Span)}
}

type temporalSummarizer struct{}

func (temporalSummarizer) Group() TypeGroup { return Temporal }
func (temporalSummarizer) Title() string    { return "datetime" }
func (temporalSummarizer) Header() []string {
	return []string{"name", "count", "null_count", "first", "last", "span"}
}

func (temporalSummarizer) Summarize(col table.Column) (SummaryRow, error) {
	row := TemporalRow{Name: col.Name, Nulls: col.NullN(), Count: col.Len() - col.NullN()}
	if strings.HasPrefix(string(col.Tag), "Durat") {
		ds, _, err := col.Durations()
		if err != nil {
			return row, &ColumnError{Column: col.Name, Group: Temporal, Err: fmt.Errorf("%w: %v", ErrTypeCoercion, err)}
		}
		if len(ds) == 0 {
			return row, &ColumnError{Column: col.Name, Group: Temporal, Err: ErrEmptyColumn}
		}
		lo, hi := ds[0], ds[0]
		for _, d := range ds[1:] {
			lo, hi = min(lo, d), max(hi, d)
		}
		row.First, row.Last, row.Span = lo.String(), hi.String(), formatSpan(hi-lo)
		return row, nil
	}
	ts, _, err := col.Times()
	if err != nil {
		return row, &ColumnError{Column: col.Name, Group: Temporal, Err: fmt.Errorf("%w: %v", ErrTypeCoercion, err)}
	}
	if len(ts) == 0 {
		return row, &ColumnError{Column: col.Name, Group: Temporal, Err: ErrEmptyColumn}
	}
	lo, hi := ts[0], ts[0]
	for _, t := range ts[1:] {
		if t.Before(lo) {
			lo = t
		}
		if t.After(hi) {
			hi = t
		}
	}
	layout := "2006-01-02 15:04:05"
	switch col.Tag {
	case table.TagDate:
		layout = "2006-01-02"
	case table.TagTime:
		layout = "15:04:05"
	}
	row.First, row.Last, row.Span = lo.Format(layout), hi.Format(layout), formatSpan(hi.Sub(lo))
	return row, nil
}

// formatSpan prints whole days separately, e.g. "28d", "1d 2h30m0s".
func formatSpan(d time.Duration) string {
	const day = 24 * time.Hour
	days := d / day
	rest := d % day
	switch {
	case days == 0:
		return rest.String()
	case rest == 0:
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd %s", days, rest)
}

// StringRow summarises a Utf8 column; lengths are in runes.
type StringRow struct {
	Name    string  `json:"name" yaml:"name"`
	Count   int     `json:"count" yaml:"count"`
	Nulls   int     `json:"null_count" yaml:"null_count"`
	Unique  int     `json:"unique" yaml:"unique"`
	Empty   int     `json:"empty" yaml:"empty"`
	MinLen  int     `json:"min_len" yaml:"min_len"`
	MeanLen float64 `json:"mean_len" yaml:"mean_len"`
	MaxLen  int     `json:"max_len" yaml:"max_len"`
}

func (r StringRow) ColumnName() string { return r.Name }

func (r StringRow) Cells() []string {
	minLen, maxLen := strconv.Itoa(r.MinLen), strconv.Itoa(r.MaxLen)
	if r.Count == 0 {
		minLen, maxLen = undefinedCell, undefinedCell
	}
	return []string{
		r.Name, strconv.Itoa(r.Count), strconv.Itoa(r.Nulls), strconv.Itoa(r.Unique), strconv.Itoa(r.Empty),
		minLen, formatStat(r.MeanLen), maxLen,
	}
}

type stringSummarizer struct{}

func (stringSummarizer) Group() TypeGroup { return String }
func (stringSummarizer) Title() string    { return "string" }
func (stringSummarizer) Header() []string {
	return []string{"name", "count", "null_count", "unique", "empty", "min_len", "mean_len", "max_len"}
}

func (stringSummarizer) Summarize(col table.Column) (SummaryRow, error) {
	row := StringRow{Name: col.Name, Nulls: col.NullN(), MeanLen: math.NaN()}
	vals, nulls, err := col.Strings()
	if err != nil {
		row.Count = col.Len() - col.NullN()
		return row, &ColumnError{Column: col.Name, Group: String, Err: fmt.Errorf("%w: %v", ErrTypeCoercion, err)}
	}
	row.Count, row.Nulls = len(vals), nulls
	if len(vals) == 0 {
		return row, &ColumnError{Column: col.Name, Group: String, Err: ErrEmptyColumn}
	}
	seen := map[string]struct{}{}
	total := 0
	row.MinLen = math.MaxInt
	for _, v := range vals {
		seen[v] = struct{}{}
		if v == "" {
			row.Empty++
		}
		n := utf8.RuneCountInString(v)
		total += n
		row.MinLen = min(row.MinLen, n)
		row.MaxLen = max(row.MaxLen, n)
	}
	row.Unique = len(seen)
	row.MeanLen = round2(float64(total) / float64(len(vals)))
	return row, nil
}

// BooleanRow summarises a Boolean column.
type BooleanRow struct {
	Name     string  `json:"name" yaml:"name"`
	Count    int     `json:"count" yaml:"count"`
	Nulls    int     `json:"null_count" yaml:"null_count"`
	True     int     `json:"true" yaml:"true"`
	False    int     `json:"false" yaml:"false"`
	TrueRate float64 `json:"true_rate" yaml:"true_rate"`
}

func (r BooleanRow) ColumnName() string { return r.Name }

func (r BooleanRow) Cells() []string {
	return []string{r.Name, strconv.Itoa(r.Count), strconv.Itoa(r.Nulls), strconv.Itoa(r.True), strconv.Itoa(r.False), formatStat(r.TrueRate)}
}

type booleanSummarizer struct{}

func (booleanSummarizer) Group() TypeGroup { return Boolean }
func (booleanSummarizer) Title() string    { return "bool" }
func (booleanSummarizer) Header() []string {
	return []string{"name", "count", "null_count", "true", "false", "true_rate"}
}

func (booleanSummarizer) Summarize(col table.Column) (SummaryRow, error) {
	row := BooleanRow{Name: col.Name, Nulls: col.NullN(), TrueRate: math.NaN()}
	vals, nulls, err := col.Bools()
	if err != nil {
		row.Count = col.Len() - col.NullN()
		return row, &ColumnError{Column: col.Name, Group: Boolean, Err: fmt.Errorf("%w: %v", ErrTypeCoercion, err)}
	}
	row.Count, row.Nulls = len(vals), nulls
	if len(vals) == 0 {
		return row, &ColumnError{Column: col.Name, Group: Boolean, Err: ErrEmptyColumn}
	}
	for _, v := range vals {
		if v {
			row.True++
		} else {
			row.False++
		}
	}
	row.TrueRate = round2(float64(row.True) / float64(len(vals)))
	return row, nil
}

func orUndefined(s string) string {
	if s == "" {
		return undefinedCell
	}
	return s
}
