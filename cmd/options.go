package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/skim-cli/internal/ingest"
	"github.com/KaramelBytes/skim-cli/internal/render"
	"github.com/KaramelBytes/skim-cli/internal/skim"
)

// loadFlags are the dataset and output flags shared by report, types and batch.
type loadFlags struct {
	format      string
	headerStyle string
	delimiter   string
	decimal     string
	thousands   string
	maxRows     int
	categorical []string
	groups      []string
	sheetName   string
	sheetIndex  int
}

func (lf *loadFlags) register(c *cobra.Command, summaries bool) {
	f := c.Flags()
	f.StringVar(&lf.format, "format", "", "output format: table|markdown|json|yaml (default from config)")
	f.StringVar(&lf.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | '|' | 'tab' (by extension if omitted: tab for .tsv, else comma)")
	f.StringVar(&lf.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	f.StringVar(&lf.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	f.IntVar(&lf.maxRows, "max-rows", -1, "maximum rows to load (0 = unlimited, default from config)")
	f.StringSliceVar(&lf.categorical, "categorical", nil, "text columns to treat as categorical (repeatable)")
	f.StringVar(&lf.sheetName, "sheet-name", "", "XLSX: sheet name to skim")
	f.IntVar(&lf.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	f.StringVar(&lf.headerStyle, "header-style", "", "table header style, e.g. 'bold cyan' or 'italic #ff8800 on black'")
	if summaries {
		f.StringSliceVar(&lf.groups, "groups", nil, "only summarise these type groups: numeric,categorical,temporal,string,boolean,other")
	}
}

// ingestOptions merges config defaults with flags; flags win.
func (lf *loadFlags) ingestOptions() (ingest.Options, error) {
	opt := ingest.DefaultOptions()
	delim, dec, thou := "", "", ""
	if cfg != nil {
		if cfg.MaxRows >= 0 {
			opt.MaxRows = cfg.MaxRows
		}
		if cfg.NullValues != nil {
			opt.NullValues = cfg.NullValues
		}
		delim, dec, thou = cfg.Delimiter, cfg.Decimal, cfg.Thousands
	}
	if lf.maxRows >= 0 {
		opt.MaxRows = lf.maxRows
	}
	if lf.delimiter != "" {
		delim = lf.delimiter
	}
	if lf.decimal != "" {
		dec = lf.decimal
	}
	if lf.thousands != "" {
		thou = lf.thousands
	}

	switch delim {
	case "":
	case ",", "comma":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";", "semicolon":
		opt.Delimiter = ';'
	case "|", "pipe":
		opt.Delimiter = '|'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", delim)
	}
	switch strings.ToLower(strings.TrimSpace(dec)) {
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", dec)
	}
	switch strings.ToLower(thou) {
	case ",", "comma":
		opt.ThousandsSeparator = ','
	case ".", "dot":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", thou)
	}
	opt.Categorical = lf.categorical
	opt.SheetName = lf.sheetName
	if lf.sheetIndex > 0 {
		opt.SheetIndex = lf.sheetIndex
	}
	return opt, nil
}

func (lf *loadFlags) renderer() (render.Renderer, error) {
	format, style := lf.format, lf.headerStyle
	if cfg != nil {
		if format == "" {
			format = cfg.Format
		}
		if style == "" {
			style = cfg.HeaderStyle
		}
	}
	return render.New(format, style)
}

func (lf *loadFlags) skimOptions(name string) (skim.Options, error) {
	opt := skim.Options{Name: name}
	names := lf.groups
	if len(names) == 0 && cfg != nil {
		names = cfg.Groups
	}
	for _, n := range names {
		g, ok := skim.ParseGroup(n)
		if !ok {
			return opt, fmt.Errorf("unknown type group: %s", n)
		}
		opt.Groups = append(opt.Groups, g)
	}
	return opt, nil
}

// skimFile loads path and skims it. Loader warnings are carried on the report.
func (lf *loadFlags) skimFile(path string, overview bool) (*skim.Report, error) {
	iopt, err := lf.ingestOptions()
	if err != nil {
		return nil, err
	}
	ds, err := ingest.LoadFile(path, iopt)
	if err != nil {
		return nil, err
	}
	defer ds.Release()

	sopt, err := lf.skimOptions(ds.Name)
	if err != nil {
		return nil, err
	}
	sopt.Overview = overview
	rep := skim.Skim(ds.Table, sopt)
	rep.Warnings = append(append([]string(nil), ds.Warnings...), rep.Warnings...)
	return rep, nil
}
