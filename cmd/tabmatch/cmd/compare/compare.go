// Package compare provides the compare command.
package compare

import (
	"cmp"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/tabmatch/internal/cmd/alerts"
	"github.com/agentstation/tabmatch/internal/cmd/application"
	"github.com/agentstation/tabmatch/internal/cmd/output"
	"github.com/agentstation/tabmatch/internal/cmd/prompt"
	"github.com/agentstation/tabmatch/internal/cmd/table"
	"github.com/agentstation/tabmatch/internal/columns"
	"github.com/agentstation/tabmatch/pkg/logging"
	"github.com/agentstation/tabmatch/pkg/normalize"
	"github.com/agentstation/tabmatch/pkg/reconcile"
	"github.com/agentstation/tabmatch/pkg/tabular"
	"github.com/agentstation/tabmatch/pkg/task"
)

// DefaultOutput is the export path used when --out is not given.
const DefaultOutput = "resultado.xlsx"

// Flags holds the compare command flags.
type Flags struct {
	RefCols     []string
	TargetCols  []string
	Threshold   float64
	Mode        string
	Out         string
	Yes         bool
	RefName     string
	TargetName  string
	PreviewRows int
}

// NewCommand creates the compare command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "compare REFERENCE TARGET",
		GroupID: "core",
		Short:   "Check which target rows exist in a reference spreadsheet",
		Long: `Compare classifies every row of TARGET as found or not found in REFERENCE.

A row is found when its identifier (a column named CPF on both sides) or its
normalized composite of the selected columns appears in the reference. Rows
that are not found list the reference values whose token-sorted similarity
reaches the threshold.

The first rows are previewed and the full comparison starts after
confirmation. Press Ctrl-C to cancel; nothing is saved then.`,
		Example: `  tabmatch compare clientes.xlsx pedidos.csv --ref-cols NOME --target-cols CLIENTE
  tabmatch compare a.csv b.csv --ref-cols NOME,CIDADE --target-cols 'NOME*' --threshold 85 --yes
  tabmatch compare a.xlsx b.xlsx --ref-cols NOME --target-cols NOME --mode remove-stopwords --out saida.md`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, flags, args[0], args[1])
		},
	}

	cmd.Flags().StringSliceVar(&flags.RefCols, "ref-cols", nil, "reference columns (names, globs or regexes)")
	cmd.Flags().StringSliceVar(&flags.TargetCols, "target-cols", nil, "target columns (names, globs or regexes)")
	cmd.Flags().Float64Var(&flags.Threshold, "threshold", 0, "minimum similarity for candidates, 0-100 (default from config, 90)")
	cmd.Flags().StringVar(&flags.Mode, "mode", "", "normalization: standard, ignore-punctuation, remove-stopwords, none")
	cmd.Flags().StringVar(&flags.Out, "out", DefaultOutput, "result file (.xlsx, .csv or .md)")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "skip the preview confirmation")
	cmd.Flags().StringVar(&flags.RefName, "ref-name", "", "reference name in result headers (default: file name)")
	cmd.Flags().StringVar(&flags.TargetName, "target-name", "", "target name in result headers (default: file name)")
	cmd.Flags().IntVar(&flags.PreviewRows, "preview-rows", 0, "rows shown before confirmation (default from config, 20)")
	_ = cmd.MarkFlagRequired("ref-cols")
	_ = cmd.MarkFlagRequired("target-cols")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, flags *Flags, refPath, targetPath string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	settings := app.Settings()
	format := output.DetectFormat(app.OutputFormat())
	notify := alerts.NewFormatWriter(cmd.ErrOrStderr(), format)

	client, err := app.Client()
	if err != nil {
		return err
	}

	reference, err := client.Load(refPath)
	if err != nil {
		return err
	}
	target, err := client.Load(targetPath)
	if err != nil {
		return err
	}

	refCols, err := columns.Resolve("ref-cols", reference.Columns, flags.RefCols)
	if err != nil {
		return err
	}
	targetCols, err := columns.Resolve("target-cols", target.Columns, flags.TargetCols)
	if err != nil {
		return err
	}

	opts := []reconcile.Option{
		reconcile.WithReferenceColumns(refCols...),
		reconcile.WithTargetColumns(targetCols...),
		reconcile.WithThreshold(settings.Threshold),
		reconcile.WithMode(settings.Mode),
		reconcile.WithPreviewRows(settings.PreviewRows),
		reconcile.WithNames(
			cmp.Or(flags.RefName, settings.ReferenceName, tabular.DisplayName(refPath)),
			cmp.Or(flags.TargetName, settings.TargetName, tabular.DisplayName(targetPath)),
		),
	}
	if cmd.Flags().Changed("threshold") {
		opts = append(opts, reconcile.WithThreshold(flags.Threshold))
	}
	if cmd.Flags().Changed("mode") {
		mode, err := normalize.ParseMode(flags.Mode)
		if err != nil {
			return err
		}
		opts = append(opts, reconcile.WithMode(mode))
	}
	if cmd.Flags().Changed("preview-rows") {
		opts = append(opts, reconcile.WithPreviewRows(flags.PreviewRows))
	}

	m, err := reconcile.New(reference, target, opts...)
	if err != nil {
		return err
	}

	preview, err := m.Preview()
	if err != nil {
		return err
	}
	if err := output.Print(cmd.OutOrStdout(), format, table.ResultsToTableData(m.Headers(), preview), preview); err != nil {
		return err
	}

	if !flags.Yes && !settings.AssumeYes {
		question := fmt.Sprintf("Compare all %d rows of %s?", target.Len(), m.Config().TargetName)
		if prompt.ConfirmContext(ctx, cmd.InOrStdin(), cmd.ErrOrStderr(), question) != prompt.Confirmed {
			if err := m.Abort(); err != nil {
				return err
			}
			return notify.WriteAlert(alerts.NewInfo("Comparison not started; nothing was saved."))
		}
	}

	progress := output.NewProgress(cmd.ErrOrStderr(), "Comparing")
	done, err := m.Start(ctx, task.NewHandle(progress.Update))
	if err != nil {
		return err
	}
	out := <-done
	progress.Done()

	switch out.Status {
	case task.Cancelled:
		return notify.WriteAlert(alerts.FromError(out.Err))
	case task.Failed:
		return out.Err
	}

	path := tabular.EnsureExtension(cmp.Or(flags.Out, DefaultOutput))
	if err := client.Export(path, m.Headers(), reconcile.Records(out.Value)); err != nil {
		return err
	}

	summary := reconcile.Summarize(out.Value)
	logger.Info().
		Str("path", path).
		Int("rows", summary.Total).
		Msg("Results exported")

	return notify.WriteAlert(alerts.NewSuccess(fmt.Sprintf("Results saved to %s", path)).WithDetails(
		fmt.Sprintf("%d rows compared", summary.Total),
		fmt.Sprintf("%d found", summary.Found),
		fmt.Sprintf("%d with similar values", summary.WithMatch),
		fmt.Sprintf("%d without match", summary.Missing),
	))
}
