// Package similarity scores how alike two strings are on a 0-100 scale.
//
// Ratio is strict about character order: "JOAO DA SILVA" and "JOAO SILVA DA"
// score well below 100. TokenSortRatio sorts whitespace-separated tokens of
// both inputs before scoring, so word transpositions score 100.
//
// Threshold decisions go through Score.Meets, which compares in integers so a
// score that is exactly on the threshold is never lost to float rounding.
package similarity

import (
	"sort"
	"strconv"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Scorer measures the similarity of two strings.
type Scorer func(a, b string) Score

// Score is the raw outcome of one comparison: of Total runes across both
// inputs, Kept survive the weighted edit distance.
type Score struct {
	Kept  int
	Total int
}

// Percent returns the score in [0,100]. Two empty strings score 100.
func (s Score) Percent() float64 {
	if s.Total == 0 {
		return 100
	}
	return float64(100*s.Kept) / float64(s.Total)
}

// Meets reports whether the score is at or above threshold. The boundary is
// inclusive and exact.
func (s Score) Meets(threshold float64) bool {
	if s.Total == 0 {
		return threshold <= 100
	}
	return float64(100*s.Kept) >= threshold*float64(s.Total)
}

// indel weighs insertions and deletions as 1 and substitutions as 2, so a
// substitution costs the same as deleting and re-inserting a rune.
var indel = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 2,
	Matches: levenshtein.IdenticalRunes,
}

// Measure compares a and b character by character.
func Measure(a, b string) Score {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if a == b {
		return Score{Kept: total, Total: total}
	}
	return Score{Kept: total - levenshtein.DistanceForStrings(ra, rb, indel), Total: total}
}

// TokenSortMeasure is Measure of the inputs after sorting their tokens.
func TokenSortMeasure(a, b string) Score {
	return Measure(sortTokens(a), sortTokens(b))
}

// Ratio returns the edit-distance based similarity of a and b in [0,100].
func Ratio(a, b string) float64 {
	return Measure(a, b).Percent()
}

// TokenSortRatio returns Ratio of the inputs after sorting their tokens.
func TokenSortRatio(a, b string) float64 {
	return TokenSortMeasure(a, b).Percent()
}

// Round rounds a score to one decimal place. Ties on the exact binary value
// go to the even digit, so 96.25 becomes 96.2.
func Round(score float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(score, 'f', 1, 64), 64)
	if err != nil {
		return score
	}
	return r
}

// Format renders a score with one decimal and a comma separator ("97,5").
// It rounds the same way as Round.
func Format(score float64) string {
	return strings.Replace(strconv.FormatFloat(score, 'f', 1, 64), ".", ",", 1)
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
