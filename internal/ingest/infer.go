package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/skim-cli/internal/table"
)

type kind int

const (
	kindBool kind = iota
	kindInt
	kindFloat
	kindDate
	kindDatetime
	kindDuration
	kindText
)

var dateLayouts = []string{"2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006"}

var datetimeLayouts = []string{
	time.RFC3339, "2006-01-02 15:04", "2006-01-02 15:04:05", "2006-01-02T15:04:05",
	"1/2/2006 15:04", "1/2/2006 15:04:05",
}

// buildTable infers a type per column and converts the string cells. cells is
// column-major; every column has len(rows) entries.
func buildTable(header []string, cells [][]string, opt Options) (*table.Table, error) {
	nulls := make(map[string]struct{}, len(opt.NullValues))
	for _, v := range opt.NullValues {
		nulls[strings.TrimSpace(v)] = struct{}{}
	}
	cats := make(map[string]struct{}, len(opt.Categorical))
	for _, c := range opt.Categorical {
		cats[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}

	b := table.NewBuilder(nil)
	for j, name := range header {
		col := cells[j]
		valid := make([]bool, len(col))
		for i, v := range col {
			v = strings.TrimSpace(v)
			col[i] = v
			_, isNull := nulls[v]
			valid[i] = !isNull
		}
		if _, ok := cats[strings.ToLower(name)]; ok {
			b.Categorical(name, col, valid)
			continue
		}
		switch inferKind(col, valid, opt) {
		case kindBool:
			vals := make([]bool, len(col))
			for i, v := range col {
				if valid[i] {
					vals[i], _ = parseBool(v)
				}
			}
			b.Bool(name, vals, valid)
		case kindInt:
			vals := make([]int64, len(col))
			for i, v := range col {
				if valid[i] {
					vals[i], _ = parseInt(v, opt)
				}
			}
			b.Int64(name, vals, valid)
		case kindFloat:
			vals := make([]float64, len(col))
			for i, v := range col {
				if valid[i] {
					vals[i], _ = parseNumeric(v, opt)
				}
			}
			b.Float64(name, vals, valid)
		case kindDate:
			vals := make([]time.Time, len(col))
			for i, v := range col {
				if valid[i] {
					vals[i], _ = parseLayouts(v, dateLayouts)
				}
			}
			b.Date(name, vals, valid)
		case kindDatetime:
			vals := make([]time.Time, len(col))
			for i, v := range col {
				if valid[i] {
					vals[i], _ = parseLayouts(v, datetimeLayouts)
				}
			}
			b.Timestamp(name, vals, valid)
		case kindDuration:
			vals := make([]time.Duration, len(col))
			for i, v := range col {
				if valid[i] {
					vals[i], _ = time.ParseDuration(v)
				}
			}
			b.Duration(name, vals, valid)
		default:
			b.String(name, col, valid)
		}
	}
	return b.Build()
}

// inferKind returns the first kind every non-null cell parses as.
func inferKind(col []string, valid []bool, opt Options) kind {
	checks := []struct {
		k  kind
		ok func(string) bool
	}{
		{kindBool, func(s string) bool { _, ok := parseBool(s); return ok }},
		{kindInt, func(s string) bool { _, ok := parseInt(s, opt); return ok }},
		{kindFloat, func(s string) bool { _, ok := parseNumeric(s, opt); return ok }},
		{kindDate, func(s string) bool { _, ok := parseLayouts(s, dateLayouts); return ok }},
		{kindDatetime, func(s string) bool { _, ok := parseLayouts(s, datetimeLayouts); return ok }},
		{kindDuration, func(s string) bool { _, err := time.ParseDuration(s); return err == nil }},
	}
	seen := 0
	for i := range col {
		if valid[i] {
			seen++
		}
	}
	if seen == 0 {
		return kindText
	}
	for _, c := range checks {
		all := true
		for i, v := range col {
			if valid[i] && !c.ok(v) {
				all = false
				break
			}
		}
		if all {
			return c.k
		}
	}
	return kindText
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func parseLayouts(s string, layouts []string) (time.Time, bool) {
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseInt(s string, opt Options) (int64, bool) {
	raw, ok := normalizeNumeric(s, opt)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseNumeric(s string, opt Options) (float64, bool) {
	raw, ok := normalizeNumeric(s, opt)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// normalizeNumeric strips thousands separators and rewrites the decimal
// separator to '.'.
func normalizeNumeric(s string, opt Options) (string, bool) {
	raw := strings.TrimSpace(s)
	// Normalize spaces
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		if cpos >= 0 && dpos >= 0 {
			if cpos > dpos {
				dec = ','
				thou = '.'
			} else {
				dec = '.'
				thou = ','
			}
		} else if cpos >= 0 {
			dec = ','
		} else {
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	return raw, true
}
