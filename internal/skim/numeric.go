package skim

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/KaramelBytes/skim-cli/internal/table"
)

// PercentileLevels are the percentiles reported for every numeric column.
var PercentileLevels = []float64{0, 10, 25, 50, 75, 99, 100}

// NumericRow is the descriptive summary of one numeric column. Statistics are
// rounded to two decimals; undefined ones are NaN.
type NumericRow struct {
	Name  string
	Count int // non-null entries, non-finite ones included
	Nulls int
	// NonFinite counts NaN/±Inf entries, which are left out of every statistic.
	NonFinite   int
	Mean        float64
	Std         float64
	Min         float64
	Max         float64
	Median      float64
	Percentiles []float64 // aligned with PercentileLevels
	Histogram   string
}

// NumericHeader names the cells of NumericRow.Cells.
func NumericHeader() []string {
	h := []string{"name", "count", "null_count", "mean", "std", "min", "max", "median"}
	for _, p := range PercentileLevels {
		h = append(h, strconv.FormatFloat(p, 'f', -1, 64)+"%")
	}
	return append(h, "hist")
}

func (r NumericRow) ColumnName() string { return r.Name }

func (r NumericRow) Cells() []string {
	cells := []string{
		r.Name, strconv.Itoa(r.Count), strconv.Itoa(r.Nulls),
		formatStat(r.Mean), formatStat(r.Std), formatStat(r.Min), formatStat(r.Max), formatStat(r.Median),
	}
	for _, p := range r.Percentiles {
		cells = append(cells, formatStat(p))
	}
	return append(cells, r.Histogram)
}

func undefinedNumericRow(name string) NumericRow {
	r := NumericRow{
		Name: name, Mean: math.NaN(), Std: math.NaN(), Min: math.NaN(), Max: math.NaN(), Median: math.NaN(),
		Percentiles: make([]float64, len(PercentileLevels)),
		Histogram:   BuildHistogram(nil),
	}
	for i := range r.Percentiles {
		r.Percentiles[i] = math.NaN()
	}
	return r
}

// SummarizeNumeric returns one row per name in columns, in order. Columns that
// fail still get a row with undefined statistics; their failures are
// returned as *ColumnError. Names missing from t are skipped with an error.
func SummarizeNumeric(t *table.Table, columns []string) ([]NumericRow, []error) {
	var (
		rows []NumericRow
		errs []error
	)
	for _, name := range columns {
		col, ok := t.ColumnByName(name)
		if !ok {
			errs = append(errs, &ColumnError{Column: name, Group: Numeric, Err: ErrUnknownColumn})
			continue
		}
		row, err := summarizeNumericColumn(col)
		rows = append(rows, row)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return rows, errs
}

func summarizeNumericColumn(col table.Column) (NumericRow, error) {
	row := undefinedNumericRow(col.Name)
	vals, nulls, err := col.Float64s()
	if err != nil {
		row.Count = col.Len() - col.NullN()
		row.Nulls = col.NullN()
		return row, &ColumnError{Column: col.Name, Group: Numeric, Err: fmt.Errorf("%w: %v", ErrTypeCoercion, err)}
	}
	row.Count = len(vals)
	row.Nulls = nulls
	xs := finite(vals)
	row.NonFinite = len(vals) - len(xs)
	if len(xs) == 0 {
		return row, &ColumnError{Column: col.Name, Group: Numeric, Err: ErrEmptyColumn}
	}

	// stats only fails on empty input, ruled out above.
	lo, _ := stats.Min(xs)
	hi, _ := stats.Max(xs)
	mean, std := moments(xs, lo, hi)
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	row.Mean = round2(mean)
	row.Std = round2(std)
	row.Min = round2(lo)
	row.Max = round2(hi)
	row.Median = round2(percentile(sorted, 0.5))

	for i, p := range PercentileLevels {
		row.Percentiles[i] = round2(percentile(sorted, p/100))
	}
	row.Histogram = BuildHistogram(xs)
	return row, nil
}

// largeMagnitude is where sums of values or squared deviations may overflow.
const largeMagnitude = 1e150

// moments returns the mean and population standard deviation of xs, whose
// extremes are lo and hi. Columns with large magnitudes are scaled into
// [-1, 1] first so the sums stay finite.
func moments(xs []float64, lo, hi float64) (mean, std float64) {
	scale := math.Max(math.Abs(lo), math.Abs(hi))
	if scale < largeMagnitude {
		mean, _ = stats.Mean(xs)
		std, _ = stats.StandardDeviationPopulation(xs)
		return mean, std
	}
	scaled := make([]float64, len(xs))
	for i, x := range xs {
		scaled[i] = x / scale
	}
	mean, _ = stats.Mean(scaled)
	std, _ = stats.StandardDeviationPopulation(scaled)
	// Rounding may push the mean of near-identical values past an extreme.
	return math.Min(math.Max(mean*scale, lo), hi), std * scale
}

// percentile interpolates linearly between the order statistics of sorted.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

func round2(v float64) float64 {
	if math.Abs(v) >= 1e15 {
		return v
	}
	return math.Round(v*100) / 100
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
