package duplicates

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/agentstation/tabmatch/pkg/constants"
	"github.com/agentstation/tabmatch/pkg/errors"
)

// SortOrder arranges an already computed pair list.
type SortOrder int

const (
	// BySimilarityDesc puts the highest scores first; ties by A then B.
	BySimilarityDesc SortOrder = iota
	// BySimilarityAsc puts the lowest scores first; ties by A then B.
	BySimilarityAsc
	// ByFirstAsc sorts A-Z on A, case-insensitively; ties by B then score.
	ByFirstAsc
	// ByFirstDesc is the exact reverse of ByFirstAsc.
	ByFirstDesc
	// BySecondAsc sorts A-Z on B, case-insensitively; ties by A then score.
	BySecondAsc
	// BySecondDesc is the exact reverse of BySecondAsc.
	BySecondDesc
)

var sortOrderNames = map[SortOrder]string{
	BySimilarityDesc: "similarity-desc",
	BySimilarityAsc:  "similarity-asc",
	ByFirstAsc:       "first-asc",
	ByFirstDesc:      "first-desc",
	BySecondAsc:      "second-asc",
	BySecondDesc:     "second-desc",
}

// String returns the flag name of the order.
func (o SortOrder) String() string {
	if name, ok := sortOrderNames[o]; ok {
		return name
	}
	return fmt.Sprintf("order(%d)", int(o))
}

// SortOrders lists every order in presentation order.
func SortOrders() []SortOrder {
	return []SortOrder{BySimilarityDesc, BySimilarityAsc, ByFirstAsc, ByFirstDesc, BySecondAsc, BySecondDesc}
}

// ParseSortOrder converts a flag name to a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return BySimilarityDesc, nil
	}
	for _, o := range SortOrders() {
		if o.String() == name {
			return o, nil
		}
	}
	names := make([]string, 0, len(sortOrderNames))
	for _, o := range SortOrders() {
		names = append(names, o.String())
	}
	return BySimilarityDesc, errors.NewValidationError("sort", s, "must be one of: "+strings.Join(names, ", "))
}

// Sort returns a sorted copy of pairs. Scores are not recomputed.
func Sort(pairs []Pair, order SortOrder) []Pair {
	sorted := slices.Clone(pairs)
	slices.SortStableFunc(sorted, comparator(order))
	return sorted
}

func comparator(order SortOrder) func(x, y Pair) int {
	switch order {
	case BySimilarityAsc:
		return func(x, y Pair) int {
			return cmp.Or(cmp.Compare(x.Score, y.Score), strings.Compare(x.A, y.A), strings.Compare(x.B, y.B))
		}
	case ByFirstAsc:
		return byFirst
	case ByFirstDesc:
		return func(x, y Pair) int { return byFirst(y, x) }
	case BySecondAsc:
		return bySecond
	case BySecondDesc:
		return func(x, y Pair) int { return bySecond(y, x) }
	default:
		return func(x, y Pair) int {
			return cmp.Or(cmp.Compare(y.Score, x.Score), strings.Compare(x.A, y.A), strings.Compare(x.B, y.B))
		}
	}
}

func byFirst(x, y Pair) int {
	return cmp.Or(
		strings.Compare(strings.ToLower(x.A), strings.ToLower(y.A)),
		strings.Compare(strings.ToLower(x.B), strings.ToLower(y.B)),
		cmp.Compare(x.Score, y.Score),
	)
}

func bySecond(x, y Pair) int {
	return cmp.Or(
		strings.Compare(strings.ToLower(x.B), strings.ToLower(y.B)),
		strings.Compare(strings.ToLower(x.A), strings.ToLower(y.A)),
		cmp.Compare(x.Score, y.Score),
	)
}

// Headers returns the export column names.
func Headers() []string {
	return []string{constants.PairFirstHeader, constants.PairSecondHeader, constants.PairScoreHeader}
}

// Records renders pairs as export rows. Scores keep a dot decimal so
// spreadsheets read them as numbers.
func Records(pairs []Pair) [][]string {
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{p.A, p.B, strconv.FormatFloat(p.Score, 'f', 1, 64)}
	}
	return rows
}
