// Package duplicates finds near-duplicate values within one dataset column.
//
// Values are compared as given: no normalization is applied, so the scan is
// case and accent sensitive. Scores use the strict character-order ratio, so
// word transpositions lower the score instead of being ignored.
package duplicates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/tabmatch/pkg/constants"
	"github.com/agentstation/tabmatch/pkg/dataset"
	"github.com/agentstation/tabmatch/pkg/errors"
	"github.com/agentstation/tabmatch/pkg/logging"
	"github.com/agentstation/tabmatch/pkg/similarity"
	"github.com/agentstation/tabmatch/pkg/task"
)

// Operation names the task in errors and logs.
const Operation = "duplicates"

// Pair is two different values whose similarity reached the threshold.
// A precedes B in the input order.
type Pair struct {
	A     string  `json:"value_a" yaml:"value_a"`
	B     string  `json:"value_b" yaml:"value_b"`
	Score float64 `json:"score" yaml:"score"`
}

// Detector scans a fixed list of values.
type Detector struct {
	values    []string
	threshold float64
}

// Option configures a Detector.
type Option func(*Detector) error

// WithThreshold sets the minimum score, inclusive, in [50,100].
func WithThreshold(threshold float64) Option {
	return func(d *Detector) error {
		if threshold < constants.MinDuplicatesThreshold || threshold > constants.MaxThreshold {
			return &errors.ValidationError{
				Field:   "threshold",
				Value:   threshold,
				Message: fmt.Sprintf("must be between %d and %d", constants.MinDuplicatesThreshold, constants.MaxThreshold),
			}
		}
		d.threshold = threshold
		return nil
	}
}

// New creates a detector over values. Values are trimmed and blank ones
// dropped; repeated values keep their positions. At least two values are
// required.
func New(values []string, opts ...Option) (*Detector, error) {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	d := &Detector{values: kept, threshold: constants.DefaultDuplicatesThreshold}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	if len(kept) < constants.MinDuplicateValues {
		return nil, &errors.ValidationError{
			Field:   "values",
			Value:   len(kept),
			Message: "at least two non-blank values are needed to look for similar pairs",
		}
	}
	return d, nil
}

// FromDataset creates a detector over the non-blank values of column.
func FromDataset(d *dataset.Dataset, column string, opts ...Option) (*Detector, error) {
	if err := dataset.Validate("dataset", d); err != nil {
		return nil, err
	}
	if err := (dataset.Selection{column}).Validate("column", d); err != nil {
		return nil, err
	}
	return New(d.ColumnValues(column), opts...)
}

// Len returns the number of values scanned.
func (d *Detector) Len() int {
	return len(d.values)
}

// Threshold returns the configured minimum score.
func (d *Detector) Threshold() float64 {
	return d.threshold
}

// TotalPairs returns n*(n-1)/2.
func (d *Detector) TotalPairs() int {
	n := len(d.values)
	return n * (n - 1) / 2
}

// Start runs the scan in the background. The channel receives one Outcome:
// Completed with every pair in scan order, Cancelled with no pairs, or Failed.
func (d *Detector) Start(ctx context.Context, h *task.Handle) <-chan task.Outcome[[]Pair] {
	ctx = logging.WithRun(ctx, Operation)
	logger := logging.FromContext(ctx)
	logger.Debug().
		Int("values", len(d.values)).
		Int("pairs", d.TotalPairs()).
		Float64("threshold", d.threshold).
		Msg("Near-duplicate scan started")

	done := make(chan task.Outcome[[]Pair], 1)
	go func() {
		defer close(done)
		start := time.Now()
		out := task.Run(ctx, h, Operation, d.scan)
		logger.Debug().
			Str("status", out.Status.String()).
			Int("found", len(out.Value)).
			Dur("elapsed", time.Since(start)).
			Msg("Near-duplicate scan finished")
		done <- out
	}()
	return done
}

// Run scans synchronously.
func (d *Detector) Run(ctx context.Context, h *task.Handle) task.Outcome[[]Pair] {
	return <-d.Start(ctx, h)
}

// scan visits every pair i<j. Progress is reported every max(1, total/100)
// visited pairs and once more at the end.
func (d *Detector) scan(h *task.Handle) ([]Pair, error) {
	total := d.TotalPairs()
	step := max(1, total/100)
	visited := 0

	var pairs []Pair
	for i := 0; i < len(d.values); i++ {
		if h.Canceled() {
			return nil, errors.ErrCanceled
		}
		a := d.values[i]
		for j := i + 1; j < len(d.values); j++ {
			if h.Canceled() {
				return nil, errors.ErrCanceled
			}
			b := d.values[j]
			if a != b {
				if score := similarity.Measure(a, b); score.Meets(d.threshold) {
					pairs = append(pairs, Pair{A: a, B: b, Score: similarity.Round(score.Percent())})
				}
			}
			visited++
			if visited%step == 0 {
				h.Report(visited * 100 / total)
			}
		}
	}
	h.Report(100)
	return pairs, nil
}

// Message summarizes a completed scan for the user.
func Message(pairs []Pair) string {
	if len(pairs) == 0 {
		return "No similar pairs found at the configured threshold."
	}
	return fmt.Sprintf("Found %d pair(s) of similar values.", len(pairs))
}
