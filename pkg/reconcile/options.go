package reconcile

import (
	"strings"

	"github.com/agentstation/tabmatch/pkg/constants"
	"github.com/agentstation/tabmatch/pkg/dataset"
	"github.com/agentstation/tabmatch/pkg/errors"
	"github.com/agentstation/tabmatch/pkg/normalize"
	"github.com/agentstation/tabmatch/pkg/similarity"
)

// Config is the immutable configuration captured when a Matcher is built.
// Running tasks only ever see this copy, so later setting changes cannot
// race with a comparison in progress.
type Config struct {
	ReferenceColumns dataset.Selection
	TargetColumns    dataset.Selection
	Threshold        float64
	Mode             normalize.Mode
	PreviewRows      int
	ReferenceName    string
	TargetName       string

	// Scorer ranks fuzzy candidates. Defaults to similarity.TokenSortMeasure.
	Scorer similarity.Scorer
}

func defaultConfig() Config {
	return Config{
		Threshold:   constants.DefaultThreshold,
		Mode:        normalize.Standard,
		PreviewRows: constants.DefaultPreviewRows,
		Scorer:      similarity.TokenSortMeasure,
	}
}

// Option is a function that configures a Matcher.
type Option func(*Config) error

func (c *Config) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// WithReferenceColumns selects the reference columns forming the composite key.
func WithReferenceColumns(columns ...string) Option {
	return func(c *Config) error {
		c.ReferenceColumns = dataset.Selection(columns)
		return nil
	}
}

// WithTargetColumns selects the target columns forming the composite key.
func WithTargetColumns(columns ...string) Option {
	return func(c *Config) error {
		c.TargetColumns = dataset.Selection(columns)
		return nil
	}
}

// WithThreshold sets the minimum fuzzy score, inclusive, in [0,100].
func WithThreshold(threshold float64) Option {
	return func(c *Config) error {
		if threshold < 0 || threshold > constants.MaxThreshold {
			return &errors.ValidationError{
				Field:   "threshold",
				Value:   threshold,
				Message: "must be between 0 and 100",
			}
		}
		c.Threshold = threshold
		return nil
	}
}

// WithMode sets the normalization mode.
func WithMode(mode normalize.Mode) Option {
	return func(c *Config) error {
		c.Mode = mode
		return nil
	}
}

// WithPreviewRows sets how many target rows the preview computes.
func WithPreviewRows(rows int) Option {
	return func(c *Config) error {
		if rows < 1 {
			return &errors.ValidationError{
				Field:   "preview_rows",
				Value:   rows,
				Message: "must be at least 1",
			}
		}
		c.PreviewRows = rows
		return nil
	}
}

// WithNames overrides the display names used in exported headers.
// Blank names fall back to the dataset names.
func WithNames(reference, target string) Option {
	return func(c *Config) error {
		c.ReferenceName = strings.TrimSpace(reference)
		c.TargetName = strings.TrimSpace(target)
		return nil
	}
}

// WithScorer replaces the fuzzy tier scorer.
func WithScorer(scorer similarity.Scorer) Option {
	return func(c *Config) error {
		if scorer == nil {
			return &errors.ValidationError{Field: "scorer", Message: "must not be nil"}
		}
		c.Scorer = scorer
		return nil
	}
}
