// Package tabmatch reconciles tabular datasets and finds near-duplicate values.
//
// The Client wraps the matching engine with file loading, export, progress
// hooks and cancellation:
//
//   - Reconcile classifies every row of a target dataset as found or not found
//     in a reference dataset, through an identifier short-circuit, an exact
//     composite match and a fuzzy token-sorted similarity tier.
//   - Duplicates lists pairs of similar values within one column using a
//     strict character-order similarity.
//
// Example usage:
//
//	tm, err := tabmatch.New(tabmatch.WithThreshold(90))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ref, _ := tm.Load("clientes.xlsx")
//	target, _ := tm.Load("pedidos.csv")
//
//	tm.OnProgress(func(op string, pct int) {
//	    fmt.Printf("%s: %d%%\n", op, pct)
//	})
//
//	report, err := tm.Reconcile(ctx, ref, target,
//	    reconcile.WithReferenceColumns("NOME"),
//	    reconcile.WithTargetColumns("CLIENTE"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = tm.Export("resultado.xlsx", report.Headers, report.Records())
package tabmatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/agentstation/tabmatch/pkg/dataset"
	"github.com/agentstation/tabmatch/pkg/duplicates"
	"github.com/agentstation/tabmatch/pkg/errors"
	"github.com/agentstation/tabmatch/pkg/logging"
	"github.com/agentstation/tabmatch/pkg/reconcile"
	"github.com/agentstation/tabmatch/pkg/tabular"
	"github.com/agentstation/tabmatch/pkg/task"
)

// Client loads datasets, runs the matchers and exports their results.
type Client interface {
	// Load reads a dataset from an .xlsx or .csv file
	Load(path string) (*dataset.Dataset, error)

	// Reconcile compares target against reference and waits for the result
	Reconcile(ctx context.Context, reference, target *dataset.Dataset, opts ...reconcile.Option) (*Report, error)

	// Duplicates scans one column for near-duplicate pairs and waits for the result
	Duplicates(ctx context.Context, d *dataset.Dataset, column string, opts ...duplicates.Option) ([]duplicates.Pair, error)

	// Export writes a result table to an .xlsx, .csv or .md file
	Export(path string, headers []string, rows [][]string) error

	// Cancel stops every running task at its next iteration boundary
	Cancel()

	// OnProgress registers a callback for progress updates
	OnProgress(ProgressHook)

	// OnFinished registers a callback for task completion
	OnFinished(FinishedHook)
}

// Report is the outcome of a completed comparison.
type Report struct {
	Headers []string
	Results []reconcile.Result
	Summary reconcile.Summary
}

// Records renders the results as export rows.
func (r *Report) Records() [][]string {
	return reconcile.Records(r.Results)
}

// client is the default implementation of Client.
type client struct {
	options *options
	hooks   *hooks

	// one active handle per matcher
	mu      sync.Mutex
	running map[string]*task.Handle
}

// New creates a Client with the given options.
func New(opts ...Option) (Client, error) {
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}
	return &client{
		options: o,
		hooks:   newHooks(),
		running: make(map[string]*task.Handle),
	}, nil
}

// Load reads a dataset from path.
func (c *client) Load(path string) (*dataset.Dataset, error) {
	return tabular.Load(path)
}

// Export writes headers and rows to path.
func (c *client) Export(path string, headers []string, rows [][]string) error {
	return tabular.Export(path, headers, rows)
}

// Reconcile compares target against reference without an interactive preview.
// A cancelled run returns errors.ErrCanceled and no report.
func (c *client) Reconcile(ctx context.Context, reference, target *dataset.Dataset, opts ...reconcile.Option) (*Report, error) {
	defaults := []reconcile.Option{
		reconcile.WithThreshold(c.options.threshold),
		reconcile.WithMode(c.options.mode),
		reconcile.WithPreviewRows(c.options.previewRows),
	}
	m, err := reconcile.New(reference, target, append(defaults, opts...)...)
	if err != nil {
		return nil, err
	}

	h, err := c.begin(reconcile.Operation)
	if err != nil {
		return nil, err
	}
	defer c.end(reconcile.Operation)

	out := m.Run(ctx, h)
	c.hooks.triggerFinished(reconcile.Operation, out.Status)
	if out.Status != task.Completed {
		return nil, out.Err
	}

	logging.FromContext(ctx).Info().
		Int("rows", len(out.Value)).
		Msg("Comparison completed")

	return &Report{
		Headers: m.Headers(),
		Results: out.Value,
		Summary: reconcile.Summarize(out.Value),
	}, nil
}

// Duplicates scans column of d. A cancelled scan returns errors.ErrCanceled
// and no pairs.
func (c *client) Duplicates(ctx context.Context, d *dataset.Dataset, column string, opts ...duplicates.Option) ([]duplicates.Pair, error) {
	defaults := []duplicates.Option{duplicates.WithThreshold(c.options.duplicatesThreshold)}
	det, err := duplicates.FromDataset(d, column, append(defaults, opts...)...)
	if err != nil {
		return nil, err
	}

	h, err := c.begin(duplicates.Operation)
	if err != nil {
		return nil, err
	}
	defer c.end(duplicates.Operation)

	out := det.Run(ctx, h)
	c.hooks.triggerFinished(duplicates.Operation, out.Status)
	if out.Status != task.Completed {
		return nil, out.Err
	}
	return out.Value, nil
}

// Cancel stops every running task.
func (c *client) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, h := range c.running {
		h.Cancel()
	}
}

// OnProgress registers a callback for progress updates.
func (c *client) OnProgress(fn ProgressHook) {
	c.hooks.OnProgress(fn)
}

// OnFinished registers a callback for task completion.
func (c *client) OnFinished(fn FinishedHook) {
	c.hooks.OnFinished(fn)
}

// begin registers a handle for operation, refusing a second concurrent task
// of the same matcher.
func (c *client) begin(operation string) (*task.Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.running[operation]; busy {
		return nil, fmt.Errorf("%s task already running: %w", operation, errors.ErrInvalidState)
	}
	h := task.NewHandle(c.hooks.progressFunc(operation))
	c.running[operation] = h
	return h, nil
}

func (c *client) end(operation string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.running, operation)
}
