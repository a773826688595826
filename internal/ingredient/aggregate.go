package ingredient

import (
	"slices"
	"sort"
	"strings"
)

// Entry is one ingredient line contributed to an aggregation, together with
// the factor its recipe is scaled by and a label describing where it came from.
type Entry struct {
	Line        string  `json:"line"`
	ScaleFactor float64 `json:"scale_factor"`
	SourceLabel string  `json:"source_label"`
}

// AggregatedItem is the consolidated total of every entry sharing a name and unit.
type AggregatedItem struct {
	Name          string   `json:"name"`
	TotalQuantity float64  `json:"total_quantity"`
	Unit          string   `json:"unit"`
	Category      Category `json:"category"`
	SourceLabels  []string `json:"source_labels"`
	Quantified    bool     `json:"quantified"`
}

// Line renders the item as an ingredient line. Parsing the result yields the
// same name, unit and quantity.
func (a AggregatedItem) Line() string {
	if !a.Quantified {
		return a.Name
	}
	return render(a.TotalQuantity, a.Unit, a.Name)
}

type aggregateOptions struct {
	sortByCategory bool
	normalizeUnits bool
}

// Option changes how Aggregate groups or orders its output.
type Option func(*aggregateOptions)

// SortByCategory orders the output by shopping department, then by name.
func SortByCategory() Option {
	return func(o *aggregateOptions) { o.sortByCategory = true }
}

// NormalizeUnits groups unit spellings such as "cup" and "cups" together
// using NormalizeUnit. Without it units must match exactly.
func NormalizeUnits() Option {
	return func(o *aggregateOptions) { o.normalizeUnits = true }
}

type groupKey struct {
	name string
	unit string
}

// Aggregate parses, scales and consolidates ingredient entries. Items appear
// in the order their name and unit were first seen unless SortByCategory is
// given.
func Aggregate(entries []Entry, opts ...Option) []AggregatedItem {
	var o aggregateOptions
	for _, opt := range opts {
		opt(&o)
	}

	items := make([]AggregatedItem, 0, len(entries))
	index := make(map[groupKey]int, len(entries))

	for _, e := range entries {
		scaled := Scale(Parse(e.Line), e.ScaleFactor)
		unit := scaled.Unit
		if o.normalizeUnits {
			unit = NormalizeUnit(unit)
		}
		key := groupKey{name: strings.ToLower(strings.TrimSpace(scaled.Name)), unit: unit}

		i, ok := index[key]
		if !ok {
			i = len(items)
			index[key] = i
			items = append(items, AggregatedItem{
				Name:         key.name,
				Unit:         key.unit,
				Category:     Categorize(key.name),
				SourceLabels: []string{},
			})
		}

		item := &items[i]
		if scaled.Amount != nil {
			item.TotalQuantity += *scaled.Amount
			item.Quantified = true
		}
		if e.SourceLabel != "" && !slices.Contains(item.SourceLabels, e.SourceLabel) {
			item.SourceLabels = append(item.SourceLabels, e.SourceLabel)
		}
	}

	if o.sortByCategory {
		sort.SliceStable(items, func(i, j int) bool {
			ri, rj := categoryRank(items[i].Category), categoryRank(items[j].Category)
			if ri != rj {
				return ri < rj
			}
			return items[i].Name < items[j].Name
		})
	}
	return items
}

// EntriesFromLines wraps lines that share a scale factor and source label.
func EntriesFromLines(lines []string, factor float64, label string) []Entry {
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, Entry{Line: line, ScaleFactor: factor, SourceLabel: label})
	}
	return entries
}
