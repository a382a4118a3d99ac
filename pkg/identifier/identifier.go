// Package identifier implements the tax-ID short-circuit used by the two-dataset matcher.
//
// A dataset exposes an identifier column when one of its headers normalizes
// to "CPF". Identifier values are compared by their digits only, so
// "123.456.789-00" and "12345678900" are the same identifier.
package identifier

import (
	"strings"

	"github.com/agentstation/tabmatch/pkg/dataset"
	"github.com/agentstation/tabmatch/pkg/normalize"
)

// HeaderName is the normalized header that marks an identifier column.
const HeaderName = "CPF"

// Set holds the digit-only identifiers of a dataset.
type Set map[string]struct{}

// DetectColumn returns the first column whose normalized header is "CPF".
func DetectColumn(d *dataset.Dataset) (string, bool) {
	if d == nil {
		return "", false
	}
	for _, col := range d.Columns {
		if normalizeHeader(col) == HeaderName {
			return col, true
		}
	}
	return "", false
}

// BuildSet collects the non-empty digit strings of column across all records.
func BuildSet(d *dataset.Dataset, column string) Set {
	set := make(Set)
	if d == nil {
		return set
	}
	for _, rec := range d.Records {
		if digits := Digits(rec.Get(column)); digits != "" {
			set[digits] = struct{}{}
		}
	}
	return set
}

// Contains reports whether the digits of value belong to the set.
// Values without digits are never contained.
func (s Set) Contains(value string) bool {
	digits := Digits(value)
	if digits == "" {
		return false
	}
	_, ok := s[digits]
	return ok
}

// Len returns the number of distinct identifiers.
func (s Set) Len() int {
	return len(s)
}

// Digits keeps only the ASCII digits of value.
func Digits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Matcher performs the short-circuit lookup. The zero value is inactive.
type Matcher struct {
	targetColumn string
	set          Set
	active       bool
}

// NewMatcher activates the short-circuit only when both datasets expose an
// identifier column. The reference set is built once here.
func NewMatcher(reference, target *dataset.Dataset) *Matcher {
	refCol, refOK := DetectColumn(reference)
	targetCol, targetOK := DetectColumn(target)
	if !refOK || !targetOK {
		return &Matcher{}
	}
	return &Matcher{
		targetColumn: targetCol,
		set:          BuildSet(reference, refCol),
		active:       true,
	}
}

// Active reports whether the short-circuit applies.
func (m *Matcher) Active() bool {
	return m != nil && m.active
}

// Size returns the number of reference identifiers.
func (m *Matcher) Size() int {
	if !m.Active() {
		return 0
	}
	return m.set.Len()
}

// Match reports whether the target record's identifier is present in the reference set.
func (m *Matcher) Match(record dataset.Record) bool {
	if !m.Active() {
		return false
	}
	return m.set.Contains(record.Get(m.targetColumn))
}

// normalizeHeader strips accents, uppercases and keeps only A-Z and 0-9.
func normalizeHeader(header string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(normalize.StripDiacritics(header)) {
		if ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
