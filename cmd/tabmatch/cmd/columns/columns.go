// Package columns provides the columns command.
package columns

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/tabmatch/internal/cmd/application"
	"github.com/agentstation/tabmatch/internal/cmd/output"
	"github.com/agentstation/tabmatch/internal/cmd/table"
	"github.com/agentstation/tabmatch/pkg/dataset"
	"github.com/agentstation/tabmatch/pkg/identifier"
)

// Column describes one header of a spreadsheet.
type Column struct {
	Index      int    `json:"index" yaml:"index"`
	Name       string `json:"name" yaml:"name"`
	Identifier bool   `json:"identifier" yaml:"identifier"`
	Sample     string `json:"sample,omitempty" yaml:"sample,omitempty"`
}

// NewCommand creates the columns command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "columns FILE",
		Aliases: []string{"cols"},
		GroupID: "inspect",
		Short:   "List the columns of a spreadsheet",
		Long: `Columns lists the headers of FILE in order with a sample value, and marks
the identifier column that compare uses to short-circuit matching.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			d, err := client.Load(args[0])
			if err != nil {
				return err
			}

			idColumn, _ := identifier.DetectColumn(d)
			samples := Samples(d)

			cols := make([]Column, len(d.Columns))
			for i, name := range d.Columns {
				cols[i] = Column{Index: i + 1, Name: name, Identifier: name == idColumn, Sample: samples[name]}
			}

			format := output.DetectFormat(app.OutputFormat())
			return output.Print(cmd.OutOrStdout(), format, table.ColumnsToTableData(d.Columns, idColumn, samples), cols)
		},
	}
}

// Samples returns the first non-blank cell of every column.
func Samples(d *dataset.Dataset) map[string]string {
	samples := make(map[string]string, len(d.Columns))
	for _, col := range d.Columns {
		for _, rec := range d.Records {
			if v := strings.TrimSpace(rec.Get(col)); v != "" {
				samples[col] = v
				break
			}
		}
	}
	return samples
}
