// Package dataset holds tabular data loaded from one spreadsheet side.
//
// A Dataset is an ordered sequence of records, each mapping a column name to
// its cell text. Datasets are loaded once and treated as read-only snapshots
// for the duration of a comparison run.
package dataset

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/tabmatch/pkg/constants"
	"github.com/agentstation/tabmatch/pkg/errors"
)

// Record maps column name to cell value.
type Record map[string]string

// Get returns the cell of column, or "" when the record lacks it.
func (r Record) Get(column string) string {
	return r[column]
}

// Dataset is an ordered table with uniquely named columns.
type Dataset struct {
	// Name is the display name used in exported headers.
	Name string
	// Columns lists column names in their original order.
	Columns []string
	// Records holds the rows in their original order.
	Records []Record
}

// New builds a dataset from a header row and data rows. Duplicate or blank
// header names are made unique ("NOME", "NOME.1", "Unnamed: 2"). Short rows
// are padded with empty cells; extra cells are dropped.
func New(name string, header []string, rows [][]string) *Dataset {
	columns := uniqueColumns(header)
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(columns))
		for i, col := range columns {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return &Dataset{Name: name, Columns: columns, Records: records}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Empty reports whether the dataset has no records.
func (d *Dataset) Empty() bool {
	return d.Len() == 0
}

// HasColumn reports whether column is part of the header.
func (d *Dataset) HasColumn(column string) bool {
	return slices.Contains(d.Columns, column)
}

// Head returns a dataset sharing the first n records.
func (d *Dataset) Head(n int) *Dataset {
	if n > len(d.Records) {
		n = len(d.Records)
	}
	return &Dataset{Name: d.Name, Columns: d.Columns, Records: d.Records[:n]}
}

// ColumnValues returns the trimmed, non-blank cells of column in row order.
// Repeated values are kept.
func (d *Dataset) ColumnValues(column string) []string {
	values := make([]string, 0, len(d.Records))
	for _, rec := range d.Records {
		v := strings.TrimSpace(rec.Get(column))
		if v == "" {
			continue
		}
		values = append(values, v)
	}
	return values
}

// Rows returns the records as string rows following column order.
func (d *Dataset) Rows() [][]string {
	rows := make([][]string, 0, len(d.Records))
	for _, rec := range d.Records {
		row := make([]string, len(d.Columns))
		for i, col := range d.Columns {
			row[i] = rec.Get(col)
		}
		rows = append(rows, row)
	}
	return rows
}

// DisplayName returns Name or fallback when Name is blank.
func (d *Dataset) DisplayName(fallback string) string {
	if d == nil || strings.TrimSpace(d.Name) == "" {
		return fallback
	}
	return d.Name
}

// Validate checks that the dataset is present and has records.
func Validate(field string, d *Dataset) error {
	if d == nil {
		return errors.NewValidationError(field, nil, "dataset not loaded")
	}
	if d.Empty() {
		return &errors.ValidationError{
			Field:   field,
			Value:   d.Name,
			Message: "dataset is empty; load a file with data",
			Err:     errors.ErrEmptyDataset,
		}
	}
	return nil
}

// Selection is an ordered set of column names chosen on one dataset side.
type Selection []string

// Label joins the selected names for use in exported headers.
func (s Selection) Label() string {
	return strings.Join(s, constants.ColumnLabelSeparator)
}

// Validate checks the selection against the dataset schema once, so the
// matching loops never need per-row column checks.
func (s Selection) Validate(field string, d *Dataset) error {
	if len(s) == 0 {
		return errors.NewValidationError(field, nil, "select at least one column")
	}
	seen := make(map[string]struct{}, len(s))
	for _, col := range s {
		if _, dup := seen[col]; dup {
			return errors.NewValidationError(field, col, fmt.Sprintf("column %q selected twice", col))
		}
		seen[col] = struct{}{}
		if !d.HasColumn(col) {
			return errors.NewValidationError(field, col, fmt.Sprintf("column %q not found in %s", col, d.DisplayName("dataset")))
		}
	}
	return nil
}

func uniqueColumns(header []string) []string {
	columns := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, h := range header {
		base := strings.TrimSpace(h)
		if base == "" {
			base = fmt.Sprintf("Unnamed: %d", i)
		}
		name := base
		for n := 1; used[name]; n++ {
			name = fmt.Sprintf("%s.%d", base, n)
		}
		used[name] = true
		columns[i] = name
	}
	return columns
}
