// Package table converts comparison results into rows for terminal rendering.
package table

import (
	"strconv"

	"github.com/agentstation/tabmatch/internal/cmd/emoji"
	"github.com/agentstation/tabmatch/pkg/duplicates"
	"github.com/agentstation/tabmatch/pkg/normalize"
	"github.com/agentstation/tabmatch/pkg/reconcile"
	"github.com/agentstation/tabmatch/pkg/similarity"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// ResultsToTableData renders match results under the export headers, with a
// leading row number.
func ResultsToTableData(headers []string, results []reconcile.Result) Data {
	data := Data{
		Headers:         append([]string{"#"}, headers...),
		Rows:            make([][]string, 0, len(results)),
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignCenter, AlignLeft},
	}
	for i, r := range results {
		data.Rows = append(data.Rows, append([]string{strconv.Itoa(i + 1)}, r.Row()...))
	}
	return data
}

// PairsToTableData renders near-duplicate pairs with comma-decimal scores.
func PairsToTableData(pairs []duplicates.Pair) Data {
	data := Data{
		Headers:         duplicates.Headers(),
		Rows:            make([][]string, 0, len(pairs)),
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight},
	}
	for _, p := range pairs {
		data.Rows = append(data.Rows, []string{p.A, p.B, similarity.Format(p.Score)})
	}
	return data
}

// ColumnsToTableData lists headers in order and marks the identifier column.
func ColumnsToTableData(columns []string, identifier string, samples map[string]string) Data {
	data := Data{
		Headers:         []string{"#", "Column", "Identifier", "Sample"},
		Rows:            make([][]string, 0, len(columns)),
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignCenter, AlignLeft},
	}
	for i, col := range columns {
		mark := ""
		if col == identifier {
			mark = emoji.Success
		}
		data.Rows = append(data.Rows, []string{strconv.Itoa(i + 1), col, mark, samples[col]})
	}
	return data
}

// NormalizedToTableData shows each input next to its normalized form.
func NormalizedToTableData(inputs []string, mode normalize.Mode) Data {
	data := Data{
		Headers: []string{"Input", "Normalized (" + mode.String() + ")"},
		Rows:    make([][]string, 0, len(inputs)),
	}
	for _, in := range inputs {
		data.Rows = append(data.Rows, []string{in, normalize.Normalize(in, mode)})
	}
	return data
}
