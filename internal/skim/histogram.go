package skim

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// HistogramBins is the fixed width of every histogram string.
const HistogramBins = 6

// histogramGlyphs[k] draws fill level k/8.
var histogramGlyphs = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// BuildHistogram renders values as a HistogramBins wide sparkline. Bins span
// [min, max] with equal width, the last bin closed on both ends. Non-finite
// values are ignored. Empty or constant input renders as blanks.
func BuildHistogram(values []float64) string {
	levels := make([]float64, HistogramBins)
	if counts, err := binCounts(values); err == nil {
		if top := floats.Max(counts); top > 0 {
			floats.ScaleTo(levels, 1/top, counts)
		}
	}
	out := make([]rune, HistogramBins)
	for i, l := range levels {
		out[i] = histogramGlyphs[nearestLevel(l)]
	}
	return string(out)
}

// binCounts counts values per bin. Values are first mapped onto [0, 1] so
// that neither huge nor subnormal ranges break the bin edges. Bins have equal
// width, so counts are proportional to densities.
func binCounts(values []float64) ([]float64, error) {
	xs := finite(values)
	if len(xs) == 0 {
		return nil, ErrDegenerateHistogram
	}
	sort.Float64s(xs)
	lo, hi := xs[0], xs[len(xs)-1]
	if lo == hi {
		return nil, ErrDegenerateHistogram
	}
	shift, span := lo, hi-lo
	if math.IsInf(span, 0) {
		// Range overflows float64; halve everything.
		for i := range xs {
			xs[i] /= 2
		}
		shift, span = lo/2, hi/2-lo/2
	}
	for i, x := range xs {
		xs[i] = (x - shift) / span
	}
	dividers := make([]float64, HistogramBins+1)
	floats.Span(dividers, 0, 1)
	dividers[HistogramBins] = math.Nextafter(1, 2)
	return stat.Histogram(nil, dividers, xs, nil), nil
}

// nearestLevel returns k such that k/8 is closest to v. Ties keep the lower k.
func nearestLevel(v float64) int {
	best, bestDiff := 0, math.Inf(1)
	last := len(histogramGlyphs) - 1
	for k := 0; k <= last; k++ {
		d := math.Abs(v - float64(k)/float64(last))
		if d < bestDiff {
			best, bestDiff = k, d
		}
	}
	return best
}

func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
