package tabmatch

import (
	"github.com/agentstation/tabmatch/pkg/constants"
	"github.com/agentstation/tabmatch/pkg/errors"
	"github.com/agentstation/tabmatch/pkg/normalize"
)

// options holds client-wide defaults applied before per-call options.
type options struct {
	threshold           float64
	duplicatesThreshold float64
	mode                normalize.Mode
	previewRows         int
}

func defaultOptions() *options {
	return &options{
		threshold:           constants.DefaultThreshold,
		duplicatesThreshold: constants.DefaultDuplicatesThreshold,
		mode:                normalize.Standard,
		previewRows:         constants.DefaultPreviewRows,
	}
}

// Option is a function that configures a Client.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithThreshold sets the default fuzzy threshold of two-dataset comparisons.
func WithThreshold(threshold float64) Option {
	return func(o *options) error {
		if threshold < 0 || threshold > constants.MaxThreshold {
			return &errors.ValidationError{
				Field:   "threshold",
				Value:   threshold,
				Message: "must be between 0 and 100",
			}
		}
		o.threshold = threshold
		return nil
	}
}

// WithDuplicatesThreshold sets the default threshold of near-duplicate scans.
func WithDuplicatesThreshold(threshold float64) Option {
	return func(o *options) error {
		if threshold < constants.MinDuplicatesThreshold || threshold > constants.MaxThreshold {
			return &errors.ValidationError{
				Field:   "duplicates_threshold",
				Value:   threshold,
				Message: "must be between 50 and 100",
			}
		}
		o.duplicatesThreshold = threshold
		return nil
	}
}

// WithMode sets the default normalization mode.
func WithMode(mode normalize.Mode) Option {
	return func(o *options) error {
		o.mode = mode
		return nil
	}
}

// WithPreviewRows sets how many rows a comparison previews.
func WithPreviewRows(rows int) Option {
	return func(o *options) error {
		if rows < 1 {
			return &errors.ValidationError{
				Field:   "preview_rows",
				Value:   rows,
				Message: "must be at least 1",
			}
		}
		o.previewRows = rows
		return nil
	}
}
