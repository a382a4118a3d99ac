package reconcile

import (
	"fmt"
	"strings"

	"github.com/agentstation/tabmatch/pkg/constants"
	"github.com/agentstation/tabmatch/pkg/similarity"
)

// Result classifies one target row.
type Result struct {
	// Value is the normalized composite of the target row.
	Value string `json:"value" yaml:"value"`
	// Found is true for identifier or exact composite matches.
	Found bool `json:"found" yaml:"found"`
	// Candidates lists fuzzy matches as "<reference composite> (<score>%)",
	// in reference row order. Empty when Found.
	Candidates []string `json:"candidates,omitempty" yaml:"candidates,omitempty"`
}

// Similar joins the candidates with ", ".
func (r Result) Similar() string {
	return strings.Join(r.Candidates, constants.CandidateSeparator)
}

// FoundLabel renders Found as "Sim" or "Não".
func (r Result) FoundLabel() string {
	if r.Found {
		return constants.FoundYes
	}
	return constants.FoundNo
}

// Row renders the result as export cells.
func (r Result) Row() []string {
	return []string{r.Value, r.FoundLabel(), r.Similar()}
}

// Summary counts results by classification.
type Summary struct {
	Total     int `json:"total" yaml:"total"`
	Found     int `json:"found" yaml:"found"`
	WithMatch int `json:"with_candidates" yaml:"with_candidates"`
	Missing   int `json:"missing" yaml:"missing"`
}

// Summarize counts found rows, unmatched rows with candidates and rows with neither.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Found:
			s.Found++
		case len(r.Candidates) > 0:
			s.WithMatch++
		default:
			s.Missing++
		}
	}
	return s
}

// Records renders results as export rows in order.
func Records(results []Result) [][]string {
	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = r.Row()
	}
	return rows
}

func candidate(label string, score float64) string {
	return fmt.Sprintf("%s (%s%%)", label, similarity.Format(score))
}
