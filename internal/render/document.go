package render

import (
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/skim-cli/internal/skim"
	"github.com/KaramelBytes/skim-cli/internal/utils"
)

// Document is the machine-readable form of a report. Undefined statistics
// are nil so they encode as null.
type Document struct {
	ID       string                 `json:"id" yaml:"id"`
	Name     string                 `json:"name" yaml:"name"`
	Rows     int                    `json:"rows" yaml:"rows"`
	Columns  int                    `json:"columns" yaml:"columns"`
	Types    []skim.TypeCount       `json:"types" yaml:"types"`
	Groups   map[skim.TypeGroup]int `json:"groups" yaml:"groups"`
	Numeric  []NumericDoc           `json:"numeric" yaml:"numeric"`
	Sections []skim.Section         `json:"sections" yaml:"sections"`
	Warnings []string               `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NumericDoc is a skim.NumericRow with nullable statistics.
type NumericDoc struct {
	Name        string              `json:"name" yaml:"name"`
	Count       int                 `json:"count" yaml:"count"`
	Nulls       int                 `json:"null_count" yaml:"null_count"`
	NonFinite   int                 `json:"non_finite" yaml:"non_finite"`
	Mean        *float64            `json:"mean" yaml:"mean"`
	Std         *float64            `json:"std" yaml:"std"`
	Min         *float64            `json:"min" yaml:"min"`
	Max         *float64            `json:"max" yaml:"max"`
	Median      *float64            `json:"median" yaml:"median"`
	Percentiles map[string]*float64 `json:"percentiles" yaml:"percentiles"`
	Histogram   string              `json:"hist" yaml:"hist"`
}

// NewDocument flattens r.
func NewDocument(r *skim.Report) Document {
	d := Document{
		ID:       r.ID,
		Name:     r.Name,
		Rows:     r.Rows,
		Columns:  r.Cols,
		Types:    r.Classification.TypeCounts,
		Groups:   r.Classification.GroupCounts,
		Numeric:  []NumericDoc{},
		Sections: r.Sections(),
		Warnings: r.Warnings,
	}
	for _, n := range r.Numeric {
		nd := NumericDoc{
			Name: n.Name, Count: n.Count, Nulls: n.Nulls, NonFinite: n.NonFinite,
			Mean: nullable(n.Mean), Std: nullable(n.Std), Min: nullable(n.Min), Max: nullable(n.Max),
			Median:      nullable(n.Median),
			Percentiles: make(map[string]*float64, len(n.Percentiles)),
			Histogram:   n.Histogram,
		}
		for i, p := range n.Percentiles {
			nd.Percentiles[strconv.FormatFloat(skim.PercentileLevels[i], 'f', -1, 64)+"%"] = nullable(p)
		}
		d.Numeric = append(d.Numeric, nd)
	}
	return d
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// JSON writes the report as an indented Document.
type JSON struct{}

func (JSON) Ext() string { return "json" }

func (JSON) Render(w io.Writer, r *skim.Report) error {
	b, err := utils.PrettyJSON(NewDocument(r))
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// YAML writes the report as a Document.
type YAML struct{}

func (YAML) Ext() string { return "yaml" }

func (YAML) Render(w io.Writer, r *skim.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(r)); err != nil {
		return err
	}
	return enc.Close()
}
