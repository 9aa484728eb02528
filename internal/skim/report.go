package skim

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/KaramelBytes/skim-cli/internal/table"
)

// Options controls a skim.
type Options struct {
	// Name labels the report, usually the source file name.
	Name string
	// Groups restricts which groups get a per-column summary section. Empty
	// means all.
	Groups []TypeGroup
	// Summarizers overrides DefaultSummarizers.
	Summarizers []Summarizer
	// Overview stops after classification; the report has no summaries.
	Overview bool
}

// DefaultOptions summarises every group with the default summarizers.
func DefaultOptions() Options {
	return Options{Name: "dataframe"}
}

// GroupSummary holds the summary rows of one group, in column order.
type GroupSummary struct {
	Group  TypeGroup
	Title  string
	Header []string
	Rows   []SummaryRow
}

// Report is the complete result of a skim.
type Report struct {
	ID             string
	Name           string
	Rows           int
	Cols           int
	Classification Classification
	// Numeric repeats the numeric group's rows with their concrete type.
	Numeric   []NumericRow
	Summaries []GroupSummary
	// Errors are the per-column failures; Warnings adds their messages to any
	// notes supplied by the caller.
	Errors   []error
	Warnings []string
}

// Skim summarises a snapshot of t. The caller may release or replace t while
// the skim runs; nothing in t is modified.
func Skim(t *table.Table, opt Options) *Report {
	snap := t.Clone()
	defer snap.Release()

	name := opt.Name
	if name == "" {
		name = DefaultOptions().Name
	}
	rep := &Report{
		ID:             uuid.NewString(),
		Name:           name,
		Rows:           snap.NumRows(),
		Cols:           snap.NumCols(),
		Classification: Classify(snap),
	}

	if opt.Overview {
		return rep
	}

	wanted := map[TypeGroup]bool{}
	for _, g := range opt.Groups {
		wanted[g] = true
	}
	summarizers := opt.Summarizers
	if len(summarizers) == 0 {
		summarizers = DefaultSummarizers()
	}
	for _, s := range summarizers {
		g := s.Group()
		if len(wanted) > 0 && !wanted[g] {
			continue
		}
		cols := rep.Classification.Columns(g)
		if len(cols) == 0 && g != Numeric {
			continue
		}
		gs := GroupSummary{Group: g, Title: s.Title(), Header: s.Header()}
		for _, cn := range cols {
			col, _ := snap.ColumnByName(cn)
			row, err := s.Summarize(col)
			if err != nil {
				rep.Errors = append(rep.Errors, err)
				rep.Warnings = append(rep.Warnings, err.Error())
			}
			if row == nil {
				continue
			}
			gs.Rows = append(gs.Rows, row)
			if nr, ok := row.(NumericRow); ok {
				rep.Numeric = append(rep.Numeric, nr)
			}
		}
		rep.Summaries = append(rep.Summaries, gs)
	}
	return rep
}

// Section is a titled grid of string cells handed to a display.
type Section struct {
	Title   string     `json:"title" yaml:"title"`
	Columns []string   `json:"columns" yaml:"columns"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// Sections lays the report out in display order: shape, exact types, type
// groups, then one section per summarised group.
func (r *Report) Sections() []Section {
	out := []Section{
		{
			Title:   "Data Summary",
			Columns: []string{"dataframe", "Values"},
			Rows: [][]string{
				{"Number of rows", strconv.Itoa(r.Rows)},
				{"Number of columns", strconv.Itoa(r.Cols)},
			},
		},
	}
	types := Section{Title: "Data Types", Columns: []string{"Column Type", "Count"}}
	for _, tc := range r.Classification.TypeCounts {
		types.Rows = append(types.Rows, []string{string(tc.Tag), strconv.Itoa(tc.Count)})
	}
	groups := Section{Title: "Type Groups", Columns: []string{"Type Group", "Count"}}
	for _, g := range r.Classification.Present() {
		groups.Rows = append(groups.Rows, []string{string(g), strconv.Itoa(r.Classification.GroupCounts[g])})
	}
	out = append(out, types, groups)
	for _, gs := range r.Summaries {
		sec := Section{Title: gs.Title, Columns: gs.Header}
		for _, row := range gs.Rows {
			sec.Rows = append(sec.Rows, row.Cells())
		}
		out = append(out, sec)
	}
	return out
}

// Assemble skims t with default options and returns its sections.
func Assemble(t *table.Table) []Section {
	return Skim(t, DefaultOptions()).Sections()
}
