package columns

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// PatternType represents the type of pattern matching to use.
type PatternType int

const (
	// Glob uses shell-style glob patterns (*, ?, []).
	Glob PatternType = iota
	// Regex uses regular expressions.
	Regex
	// Auto attempts to detect the pattern type.
	Auto
)

// String returns a string representation of the PatternType.
func (pt PatternType) String() string {
	switch pt {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// Pattern matches column headers case-insensitively. Regular expressions
// are anchored so "NOME" never matches "SOBRENOME".
type Pattern struct {
	source      string
	patternType PatternType
	compiled    *regexp.Regexp
	glob        string
}

// Compile builds a Pattern, detecting its type when patternType is Auto.
func Compile(patternType PatternType, source string) (*Pattern, error) {
	p := &Pattern{source: source, patternType: patternType}
	if patternType == Auto {
		p.patternType = detectPatternType(source)
	}

	switch p.patternType {
	case Glob:
		p.glob = strings.ToLower(source)
		if _, err := filepath.Match(p.glob, ""); err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", source, err)
		}
	case Regex:
		expr := source
		if !strings.HasPrefix(expr, "^") {
			expr = "^(?:" + expr + ")"
		}
		if !strings.HasSuffix(expr, "$") {
			expr += "$"
		}
		compiled, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", source, err)
		}
		p.compiled = compiled
	default:
		return nil, fmt.Errorf("unsupported pattern type: %v", patternType)
	}
	return p, nil
}

// Match reports whether header matches the pattern.
func (p *Pattern) Match(header string) bool {
	switch p.patternType {
	case Glob:
		matched, _ := filepath.Match(p.glob, strings.ToLower(header))
		return matched
	case Regex:
		return p.compiled.MatchString(header)
	default:
		return false
	}
}

// MatchAll returns the headers matching the pattern, in their given order.
func (p *Pattern) MatchAll(headers ...string) []string {
	var results []string
	for _, h := range headers {
		if p.Match(h) {
			results = append(results, h)
		}
	}
	return results
}

// Source returns the original pattern string.
func (p *Pattern) Source() string {
	return p.source
}

// Type returns the pattern type being used.
func (p *Pattern) Type() PatternType {
	return p.patternType
}

// detectPatternType attempts to detect if a pattern is glob or regex.
func detectPatternType(pattern string) PatternType {
	regexIndicators := []string{
		"^", "$", "\\d", "\\w", "\\s", "\\D", "\\W", "\\S",
		"(?:", "(?i)", "{", "}", "+", "|", "(", ")", ".*",
	}
	for _, indicator := range regexIndicators {
		if strings.Contains(pattern, indicator) {
			return Regex
		}
	}
	return Glob
}
