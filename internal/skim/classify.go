package skim

import "github.com/KaramelBytes/skim-cli/internal/table"

// TypeCount is the number of columns sharing an exact TypeTag.
type TypeCount struct {
	Tag   table.TypeTag `json:"type" yaml:"type"`
	Count int           `json:"count" yaml:"count"`
}

// Classification partitions a table's columns by TypeGroup. Groups without
// columns are absent from both maps.
type Classification struct {
	Groups      map[TypeGroup][]string
	GroupCounts map[TypeGroup]int
	// TypeCounts is ordered by first appearance of each tag.
	TypeCounts []TypeCount
}

// Classify computes a fresh Classification for t. It keeps no state between
// calls.
func Classify(t *table.Table) Classification {
	c := Classification{
		Groups:      map[TypeGroup][]string{},
		GroupCounts: map[TypeGroup]int{},
	}
	tagIdx := map[table.TypeTag]int{}
	for _, col := range t.Columns() {
		g := GroupOf(string(col.Tag))
		c.Groups[g] = append(c.Groups[g], col.Name)
		c.GroupCounts[g]++
		if i, ok := tagIdx[col.Tag]; ok {
			c.TypeCounts[i].Count++
			continue
		}
		tagIdx[col.Tag] = len(c.TypeCounts)
		c.TypeCounts = append(c.TypeCounts, TypeCount{Tag: col.Tag, Count: 1})
	}
	return c
}

// Columns returns the ordered column names of group g.
func (c Classification) Columns(g TypeGroup) []string { return c.Groups[g] }

// Total is the number of classified columns.
func (c Classification) Total() int {
	n := 0
	for _, v := range c.GroupCounts {
		n += v
	}
	return n
}

// Present returns the groups that have columns, in display order.
func (c Classification) Present() []TypeGroup {
	var out []TypeGroup
	for _, g := range AllGroups {
		if c.GroupCounts[g] > 0 {
			out = append(out, g)
		}
	}
	return out
}
