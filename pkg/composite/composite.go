// Package composite builds comparison keys from the selected columns of a record.
package composite

import (
	"strings"

	"github.com/agentstation/tabmatch/pkg/constants"
	"github.com/agentstation/tabmatch/pkg/dataset"
	"github.com/agentstation/tabmatch/pkg/normalize"
)

// Value is the key derived from one record's selected columns.
type Value struct {
	// Exhibited is the text shown in results and exports.
	Exhibited string
	// Normalized is the text compared by the matchers.
	Normalized string
}

// Join concatenates the selected cells in selection order with " | ".
// A column missing from the record contributes an empty slot.
func Join(record dataset.Record, columns dataset.Selection) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = record.Get(col)
	}
	return strings.Join(parts, constants.CompositeSeparator)
}

// Build derives the composite value of record under mode. The succession
// marker is stripped from the raw joined text before normalization.
func Build(record dataset.Record, columns dataset.Selection, mode normalize.Mode) Value {
	raw := normalize.StripSuccession(Join(record, columns))
	normalized := normalize.Normalize(raw, mode)
	return Value{Exhibited: normalized, Normalized: normalized}
}

// BuildAll precomputes the composite value of every record of d, in row order.
func BuildAll(d *dataset.Dataset, columns dataset.Selection, mode normalize.Mode) []Value {
	if d == nil {
		return nil
	}
	values := make([]Value, len(d.Records))
	for i, rec := range d.Records {
		values[i] = Build(rec, columns, mode)
	}
	return values
}

// Index maps each normalized value to the first row holding it.
type Index map[string]int

// NewIndex indexes values for constant-time exact lookups.
func NewIndex(values []Value) Index {
	idx := make(Index, len(values))
	for i, v := range values {
		if _, ok := idx[v.Normalized]; !ok {
			idx[v.Normalized] = i
		}
	}
	return idx
}

// Contains reports whether normalized is one of the indexed values.
func (idx Index) Contains(normalized string) bool {
	_, ok := idx[normalized]
	return ok
}
