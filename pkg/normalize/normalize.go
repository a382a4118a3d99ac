// Package normalize converts raw cell text into comparison-ready strings.
//
// Normalization is a pure function of the input text and a Mode. Every mode
// trims the text and collapses internal whitespace; all modes except
// NoNormalization additionally strip diacritics, remove punctuation, drop the
// "(SUCESSAO DE)" marker and uppercase the result.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/agentstation/tabmatch/pkg/errors"
)

// Mode selects the normalization rules.
type Mode int

const (
	// Standard strips accents, common punctuation and extra whitespace, and uppercases.
	Standard Mode = iota
	// IgnorePunctuation is Standard but removes every punctuation and symbol character.
	IgnorePunctuation
	// RemoveStopwords is Standard plus removal of company-suffix tokens (LTDA, ME, SA...).
	RemoveStopwords
	// NoNormalization only trims and collapses whitespace.
	NoNormalization
)

var (
	// basicPunctuation is the set removed by Standard and RemoveStopwords.
	basicPunctuation = regexp.MustCompile(`[,;:.!?'\-]`)

	// allPunctuation is the set removed by IgnorePunctuation.
	allPunctuation = regexp.MustCompile(`[\p{P}\p{S}]`)

	// successionMarker matches "( SUCESSÃO DE )" in accented or plain form.
	successionMarker = regexp.MustCompile(`(?i)\(\s*SUCESS[ÃA]O\s+DE\s*\)`)

	// stopwords are compared against uppercased tokens.
	stopwords = map[string]struct{}{
		"LTDA":   {},
		"ME":     {},
		"S/A":    {},
		"SA":     {},
		"EIRELI": {},
		"EPP":    {},
	}
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case Standard:
		return "standard"
	case IgnorePunctuation:
		return "ignore-punctuation"
	case RemoveStopwords:
		return "remove-stopwords"
	case NoNormalization:
		return "none"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// Modes returns every supported mode in presentation order.
func Modes() []Mode {
	return []Mode{Standard, IgnorePunctuation, RemoveStopwords, NoNormalization}
}

// ParseMode converts a configuration name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "default":
		return Standard, nil
	case "ignore-punctuation", "ignore_punctuation", "punctuation":
		return IgnorePunctuation, nil
	case "remove-stopwords", "remove_stopwords", "stopwords":
		return RemoveStopwords, nil
	case "none", "no-normalization", "raw":
		return NoNormalization, nil
	default:
		return Standard, errors.NewValidationError("mode", s,
			"must be one of: standard, ignore-punctuation, remove-stopwords, none")
	}
}

// Normalize converts text to its comparison form under mode.
// It is idempotent: Normalize(Normalize(x, m), m) == Normalize(x, m).
func Normalize(text string, mode Mode) string {
	s := CollapseSpace(text)
	if s == "" {
		return ""
	}
	if mode == NoNormalization {
		return s
	}

	s = StripDiacritics(s)

	if mode == IgnorePunctuation {
		s = allPunctuation.ReplaceAllString(s, " ")
	} else {
		s = basicPunctuation.ReplaceAllString(s, " ")
	}

	// The marker goes before token filtering so a stopword uncovered by its
	// removal is filtered as well.
	s = removeMarker(s)

	if mode == RemoveStopwords {
		s = dropStopwords(s)
	}

	return strings.ToUpper(CollapseSpace(s))
}

// StripSuccession removes the "(SUCESSAO DE)" marker from raw text, accented
// or not, and collapses the surrounding whitespace.
func StripSuccession(text string) string {
	return CollapseSpace(removeMarker(text))
}

// StripDiacritics decomposes text and drops combining marks.
func StripDiacritics(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return result
}

// CollapseSpace trims text and replaces internal whitespace runs with one space.
func CollapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// removeMarker repeats until no marker is left, since removing a nested
// marker can complete an outer one.
func removeMarker(s string) string {
	for successionMarker.MatchString(s) {
		s = successionMarker.ReplaceAllString(s, " ")
	}
	return s
}

func dropStopwords(s string) string {
	tokens := strings.Fields(s)
	kept := tokens[:0]
	for _, token := range tokens {
		if _, stop := stopwords[strings.ToUpper(token)]; stop {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}
