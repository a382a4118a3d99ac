// Package normalize provides the normalize command.
package normalize

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/tabmatch/internal/cmd/application"
	"github.com/agentstation/tabmatch/internal/cmd/output"
	"github.com/agentstation/tabmatch/internal/cmd/table"
	"github.com/agentstation/tabmatch/pkg/normalize"
)

// Form pairs an input with its normalized form.
type Form struct {
	Input      string `json:"input" yaml:"input"`
	Normalized string `json:"normalized" yaml:"normalized"`
}

// NewCommand creates the normalize command.
func NewCommand(app application.Application) *cobra.Command {
	var modeName string

	cmd := &cobra.Command{
		Use:     "normalize TEXT...",
		GroupID: "inspect",
		Short:   "Show how values are normalized before comparison",
		Example: `  tabmatch normalize "José da Silva Jr." "JOSE SILVA"
  tabmatch normalize --mode remove-stopwords "Maria dos Santos Neto"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := app.Settings().Mode
			if cmd.Flags().Changed("mode") {
				var err error
				if mode, err = normalize.ParseMode(modeName); err != nil {
					return err
				}
			}

			forms := make([]Form, len(args))
			for i, in := range args {
				forms[i] = Form{Input: in, Normalized: normalize.Normalize(in, mode)}
			}

			format := output.DetectFormat(app.OutputFormat())
			return output.Print(cmd.OutOrStdout(), format, table.NormalizedToTableData(args, mode), forms)
		},
	}

	cmd.Flags().StringVar(&modeName, "mode", "", "normalization: standard, ignore-punctuation, remove-stopwords, none")
	return cmd
}
