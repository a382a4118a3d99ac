// Package columns resolves user column selections against a dataset header.
//
// A selector is either an exact column name or a pattern. Patterns may be
// shell globs ("NOME*", "?PF") or regular expressions ("^(NOME|CIDADE)$"),
// and expand to every matching column in header order.
package columns

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/tabmatch/pkg/dataset"
	"github.com/agentstation/tabmatch/pkg/errors"
)

// Resolve turns selectors into an ordered selection of header columns.
// Exact names win over patterns; a column selected twice is kept once, at
// its first position. A selector matching nothing is a ValidationError.
func Resolve(field string, header []string, selectors []string) (dataset.Selection, error) {
	var selection dataset.Selection
	add := func(col string) {
		if !slices.Contains(selection, col) {
			selection = append(selection, col)
		}
	}

	for _, raw := range selectors {
		selector := strings.TrimSpace(raw)
		if selector == "" {
			continue
		}

		if slices.Contains(header, selector) {
			add(selector)
			continue
		}

		pattern, err := Compile(Auto, selector)
		if err != nil {
			return nil, errors.WrapValidation(field, err)
		}
		matches := pattern.MatchAll(header...)
		if len(matches) == 0 {
			return nil, errors.NewValidationError(field, selector,
				fmt.Sprintf("no column matches %s pattern %q (available: %s)", pattern.Type(), pattern.Source(), strings.Join(header, ", ")))
		}
		for _, col := range matches {
			add(col)
		}
	}

	if len(selection) == 0 {
		return nil, errors.NewValidationError(field, selectors, "select at least one column")
	}
	return selection, nil
}
