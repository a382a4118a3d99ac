// Package duplicates provides the duplicates command.
package duplicates

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/tabmatch/internal/cmd/alerts"
	"github.com/agentstation/tabmatch/internal/cmd/application"
	"github.com/agentstation/tabmatch/internal/cmd/output"
	"github.com/agentstation/tabmatch/internal/cmd/table"
	"github.com/agentstation/tabmatch/internal/columns"
	"github.com/agentstation/tabmatch/pkg/duplicates"
	"github.com/agentstation/tabmatch/pkg/errors"
	"github.com/agentstation/tabmatch/pkg/tabular"
)

// Flags holds the duplicates command flags.
type Flags struct {
	Column    string
	Threshold float64
	Sort      string
	Out       string
}

// NewCommand creates the duplicates command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "duplicates FILE",
		Aliases: []string{"dups"},
		GroupID: "core",
		Short:   "Find pairs of similar values within one column",
		Long: `Duplicates compares every pair of non-blank values of one column and lists
the pairs whose similarity reaches the threshold (50-100). Values are compared
as written, so differences in case, accents and punctuation count.

Sort orders: ` + sortOrderNames(),
		Example: `  tabmatch duplicates clientes.xlsx --column NOME
  tabmatch duplicates clientes.csv --column NOME --threshold 92 --sort first-asc --out pares.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.Column, "column", "c", "", "column to scan (name, glob or regex matching one column)")
	cmd.Flags().Float64Var(&flags.Threshold, "threshold", 0, "minimum similarity, 50-100 (default from config, 85)")
	cmd.Flags().StringVar(&flags.Sort, "sort", duplicates.BySimilarityDesc.String(), "sort order of the pairs")
	cmd.Flags().StringVar(&flags.Out, "out", "", "also export the pairs to this file (.xlsx, .csv or .md)")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, flags *Flags, path string) error {
	ctx := cmd.Context()
	format := output.DetectFormat(app.OutputFormat())
	notify := alerts.NewFormatWriter(cmd.ErrOrStderr(), format)

	order, err := duplicates.ParseSortOrder(flags.Sort)
	if err != nil {
		return err
	}

	client, err := app.Client()
	if err != nil {
		return err
	}

	d, err := client.Load(path)
	if err != nil {
		return err
	}

	selection, err := columns.Resolve("column", d.Columns, []string{flags.Column})
	if err != nil {
		return err
	}
	if len(selection) != 1 {
		return errors.NewValidationError("column", flags.Column,
			fmt.Sprintf("matches %d columns; select exactly one", len(selection)))
	}

	var opts []duplicates.Option
	if cmd.Flags().Changed("threshold") {
		opts = append(opts, duplicates.WithThreshold(flags.Threshold))
	}

	progress := output.NewProgress(cmd.ErrOrStderr(), "Scanning")
	client.OnProgress(func(operation string, percent int) {
		if operation == duplicates.Operation {
			progress.Update(percent)
		}
	})

	pairs, err := client.Duplicates(ctx, d, selection[0], opts...)
	progress.Done()
	if errors.IsCanceled(err) {
		return notify.WriteAlert(alerts.FromError(err))
	}
	if err != nil {
		return err
	}

	pairs = duplicates.Sort(pairs, order)
	if pairs == nil {
		pairs = []duplicates.Pair{}
	}
	if len(pairs) > 0 || format != output.FormatTable {
		if err := output.Print(cmd.OutOrStdout(), format, table.PairsToTableData(pairs), pairs); err != nil {
			return err
		}
	}

	level := alerts.LevelSuccess
	if len(pairs) == 0 {
		level = alerts.LevelInfo
	}
	if err := notify.WriteAlert(alerts.New(level, duplicates.Message(pairs))); err != nil {
		return err
	}

	if flags.Out == "" {
		return nil
	}
	out := tabular.EnsureExtension(flags.Out)
	if err := client.Export(out, duplicates.Headers(), duplicates.Records(pairs)); err != nil {
		return err
	}
	return notify.WriteAlert(alerts.NewSuccess(fmt.Sprintf("Pairs saved to %s", out)))
}

func sortOrderNames() string {
	names := make([]string, 0, len(duplicates.SortOrders()))
	for _, o := range duplicates.SortOrders() {
		names = append(names, o.String())
	}
	return strings.Join(names, ", ")
}
