// Package tabular loads datasets from spreadsheet files and exports result tables.
//
// Supported formats are Excel workbooks (.xlsx), comma or semicolon separated
// text (.csv) and, for export only, Markdown tables (.md).
package tabular

import (
	"path/filepath"
	"strings"
)

// Format identifies a file format by extension.
type Format string

const (
	// FormatXLSX is an Excel workbook. Only the first sheet is read.
	FormatXLSX Format = ".xlsx"
	// FormatCSV is delimiter separated text with a header row.
	FormatCSV Format = ".csv"
	// FormatMarkdown is a Markdown table. Export only.
	FormatMarkdown Format = ".md"
)

// DefaultFormat is appended to output paths without a supported extension.
const DefaultFormat = FormatXLSX

// FormatOf returns the format of path from its extension.
func FormatOf(path string) (Format, bool) {
	switch Format(strings.ToLower(filepath.Ext(path))) {
	case FormatXLSX:
		return FormatXLSX, true
	case FormatCSV:
		return FormatCSV, true
	case FormatMarkdown:
		return FormatMarkdown, true
	default:
		return "", false
	}
}

// EnsureExtension appends ".xlsx" when path has no supported extension.
func EnsureExtension(path string) string {
	if _, ok := FormatOf(path); ok {
		return path
	}
	return path + string(DefaultFormat)
}

// DisplayName returns the base name of path without its extension.
func DisplayName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
