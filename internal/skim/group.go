package skim

import "strings"

// TypeGroup is the coarse semantic category a column's TypeTag falls into.
type TypeGroup string

const (
	Numeric     TypeGroup = "numeric"
	Categorical TypeGroup = "categorical"
	Temporal    TypeGroup = "temporal"
	String      TypeGroup = "string"
	Boolean     TypeGroup = "boolean"
	Other       TypeGroup = "other"
)

// AllGroups lists every group in display order.
var AllGroups = []TypeGroup{Numeric, Categorical, Temporal, String, Boolean, Other}

// First match wins, so order matters.
var groupPrefixes = []struct {
	group    TypeGroup
	prefixes []string
}{
	{Numeric, []string{"Int", "UInt", "Float"}},
	{Temporal, []string{"Date", "Time", "Durat"}},
	{String, []string{"Utf8"}},
	{Boolean, []string{"Bool"}},
	{Categorical, []string{"Categor"}},
}

// GroupOf classifies a type name by case-sensitive prefix. Names matching no
// rule are Other.
func GroupOf(tag string) TypeGroup {
	for _, gp := range groupPrefixes {
		for _, p := range gp.prefixes {
			if strings.HasPrefix(tag, p) {
				return gp.group
			}
		}
	}
	return Other
}

// ParseGroup accepts a group name as printed by TypeGroup or a few common aliases.
func ParseGroup(s string) (TypeGroup, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "numeric", "number", "num":
		return Numeric, true
	case "categorical", "category", "cat":
		return Categorical, true
	case "temporal", "datetime", "time":
		return Temporal, true
	case "string", "str", "text":
		return String, true
	case "boolean", "bool":
		return Boolean, true
	case "other":
		return Other, true
	}
	return "", false
}
