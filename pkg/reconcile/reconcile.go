// Package reconcile decides, for every row of a target dataset, whether an
// equivalent row exists in a reference dataset.
//
// Each target row goes through three tiers in order:
//
//  1. Identifier short-circuit: when both datasets expose a CPF column and the
//     row's digits are in the reference set, the row is found.
//  2. Exact composite match: the row's normalized composite equals a
//     reference composite.
//  3. Fuzzy candidates: every reference composite whose token-sorted
//     similarity reaches the threshold is listed, in reference row order.
//
// A Matcher follows Idle → Previewing → Running → {Completed | Cancelled | Failed}.
// The preview is computed synchronously; the full run is a background task
// whose cancellation discards every row already processed.
package reconcile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/agentstation/tabmatch/pkg/composite"
	"github.com/agentstation/tabmatch/pkg/constants"
	"github.com/agentstation/tabmatch/pkg/dataset"
	"github.com/agentstation/tabmatch/pkg/errors"
	"github.com/agentstation/tabmatch/pkg/identifier"
	"github.com/agentstation/tabmatch/pkg/logging"
	"github.com/agentstation/tabmatch/pkg/task"
)

// Operation names the task in errors and logs.
const Operation = "reconcile"

// Matcher compares a target dataset against a reference dataset.
type Matcher struct {
	cfg       Config
	reference *dataset.Dataset
	target    *dataset.Dataset

	// precomputed once in New, read-only afterwards
	refValues []composite.Value
	refIndex  composite.Index
	ids       *identifier.Matcher

	mu      sync.Mutex
	state   State
	preview []Result
}

// New validates both datasets and their column selections, then precomputes
// the reference composites and identifier set.
func New(reference, target *dataset.Dataset, opts ...Option) (*Matcher, error) {
	cfg := defaultConfig()
	if err := cfg.apply(opts...); err != nil {
		return nil, err
	}

	if err := dataset.Validate("reference", reference); err != nil {
		return nil, err
	}
	if err := dataset.Validate("target", target); err != nil {
		return nil, err
	}
	if err := cfg.ReferenceColumns.Validate("reference_columns", reference); err != nil {
		return nil, err
	}
	if err := cfg.TargetColumns.Validate("target_columns", target); err != nil {
		return nil, err
	}

	if cfg.ReferenceName == "" {
		cfg.ReferenceName = reference.DisplayName(constants.DefaultReferenceName)
	}
	if cfg.TargetName == "" {
		cfg.TargetName = target.DisplayName(constants.DefaultTargetName)
	}

	refValues := composite.BuildAll(reference, cfg.ReferenceColumns, cfg.Mode)
	m := &Matcher{
		cfg:       cfg,
		reference: reference,
		target:    target,
		refValues: refValues,
		refIndex:  composite.NewIndex(refValues),
		ids:       identifier.NewMatcher(reference, target),
	}

	ctx := logging.WithDataset(context.Background(), cfg.ReferenceName)
	logging.FromContext(ctx).Debug().
		Str("target", cfg.TargetName).
		Int("reference_rows", reference.Len()).
		Int("target_rows", target.Len()).
		Int("distinct_composites", len(m.refIndex)).
		Bool("identifier_active", m.ids.Active()).
		Int("identifiers", m.ids.Size()).
		Str("mode", cfg.Mode.String()).
		Float64("threshold", cfg.Threshold).
		Msg("Prepared reference dataset")

	return m, nil
}

// Config returns the configuration captured by New.
func (m *Matcher) Config() Config {
	return m.cfg
}

// State returns the current lifecycle state.
func (m *Matcher) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IdentifierActive reports whether the identifier short-circuit applies.
func (m *Matcher) IdentifierActive() bool {
	return m.ids.Active()
}

// Match classifies a single target record.
func (m *Matcher) Match(record dataset.Record) Result {
	value := composite.Build(record, m.cfg.TargetColumns, m.cfg.Mode)

	if m.ids.Match(record) {
		return Result{Value: value.Exhibited, Found: true}
	}
	if m.refIndex.Contains(value.Normalized) {
		return Result{Value: value.Exhibited, Found: true}
	}

	var candidates []string
	for _, ref := range m.refValues {
		if score := m.cfg.Scorer(ref.Normalized, value.Normalized); score.Meets(m.cfg.Threshold) {
			candidates = append(candidates, candidate(ref.Exhibited, score.Percent()))
		}
	}
	return Result{Value: value.Exhibited, Candidates: candidates}
}

// Preview computes results for the first PreviewRows target rows and moves
// to Previewing. It is allowed from Idle and from any terminal state.
func (m *Matcher) Preview() ([]Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Idle && !m.state.Terminal() {
		return nil, errors.NewStateError("preview", m.state.String())
	}

	head := m.target.Head(m.cfg.PreviewRows)
	results := make([]Result, len(head.Records))
	for i, rec := range head.Records {
		results[i] = m.Match(rec)
	}
	m.preview = results
	m.state = Previewing
	return results, nil
}

// Abort discards the preview and returns to Idle without starting a task.
func (m *Matcher) Abort() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Previewing {
		return errors.NewStateError("abort", m.state.String())
	}
	m.preview = nil
	m.state = Idle
	return nil
}

// Start confirms the preview and runs the full comparison in the background.
// The channel receives one Outcome: Completed with every result in target
// order, Cancelled with no results, or Failed with a TaskError.
func (m *Matcher) Start(ctx context.Context, h *task.Handle) (<-chan task.Outcome[[]Result], error) {
	m.mu.Lock()
	if m.state != Previewing {
		state := m.state
		m.mu.Unlock()
		return nil, errors.NewStateError("start", state.String())
	}
	m.state = Running
	m.preview = nil
	m.mu.Unlock()

	ctx = logging.WithRun(ctx, Operation)
	logger := logging.FromContext(ctx)
	logger.Debug().Int("rows", m.target.Len()).Msg("Comparison started")

	done := make(chan task.Outcome[[]Result], 1)
	go func() {
		defer close(done)
		start := time.Now()
		out := task.Run(ctx, h, Operation, m.run)
		m.finish(out.Status)

		event := logger.Debug()
		if out.Status == task.Failed {
			event = logger.Error().Err(out.Err)
		}
		event.
			Str("status", out.Status.String()).
			Int("results", len(out.Value)).
			Dur("elapsed", time.Since(start)).
			Msg("Comparison finished")

		done <- out
	}()
	return done, nil
}

// Run previews, confirms and waits for the full comparison. It suits
// callers that do not need an interactive confirmation.
func (m *Matcher) Run(ctx context.Context, h *task.Handle) task.Outcome[[]Result] {
	if _, err := m.Preview(); err != nil {
		return task.Outcome[[]Result]{Status: task.Failed, Err: err}
	}
	done, err := m.Start(ctx, h)
	if err != nil {
		return task.Outcome[[]Result]{Status: task.Failed, Err: err}
	}
	return <-done
}

// Headers returns the three export column names.
func (m *Matcher) Headers() []string {
	return []string{
		fmt.Sprintf("%s NA PLANILHA %s", m.cfg.TargetColumns.Label(), m.cfg.TargetName),
		fmt.Sprintf("ESTÁ NA PLANILHA %s", m.cfg.ReferenceName),
		fmt.Sprintf("%s SIMILARES NA PLANILHA %s", m.cfg.ReferenceColumns.Label(), m.cfg.ReferenceName),
	}
}

// run is the background loop. It checks the cancellation flag before every
// row and reports floor((i+1)/total*100) after it.
func (m *Matcher) run(h *task.Handle) ([]Result, error) {
	records := m.target.Records
	total := len(records)
	results := make([]Result, 0, total)
	for i, rec := range records {
		if h.Canceled() {
			return nil, errors.ErrCanceled
		}
		results = append(results, m.Match(rec))
		h.Report((i + 1) * 100 / total)
	}
	return results, nil
}

func (m *Matcher) finish(status task.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch status {
	case task.Completed:
		m.state = Completed
	case task.Cancelled:
		m.state = Cancelled
	default:
		m.state = Failed
	}
}
