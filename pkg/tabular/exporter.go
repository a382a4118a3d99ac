package tabular

import (
	"encoding/csv"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/tabmatch/pkg/constants"
	"github.com/agentstation/tabmatch/pkg/errors"
	"github.com/agentstation/tabmatch/pkg/logging"
)

// Export writes headers and rows to path in the format given by its
// extension. A zero-row export produces a header-only file. Failures are
// WriteErrors; a destination that is open elsewhere or not writable is
// reported as locked.
func Export(path string, headers []string, rows [][]string) error {
	if path == "" {
		return errors.NewValidationError("output", path, "choose where to save the results")
	}
	path = EnsureExtension(path)
	format, _ := FormatOf(path)

	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return writeError(path, err)
	}

	var err error
	switch format {
	case FormatCSV:
		err = writeCSV(path, headers, rows)
	case FormatMarkdown:
		err = writeMarkdown(path, headers, rows)
	default:
		err = writeXLSX(path, headers, rows)
	}
	if err != nil {
		return writeError(path, err)
	}

	logging.Debug().
		Str("path", path).
		Int("rows", len(rows)).
		Msg("Exported results")
	return nil
}

func writeError(path string, err error) error {
	return errors.WrapWrite(path, stderrors.Is(err, fs.ErrPermission), err)
}

func create(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions)
}

func writeCSV(path string, headers []string, rows [][]string) (err error) {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	// The BOM lets spreadsheet programs detect UTF-8 headers such as "ESTÁ".
	if _, err := f.Write(utf8BOM); err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

func writeXLSX(path string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, row := range append([][]string{headers}, rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func writeMarkdown(path string, headers []string, rows [][]string) (err error) {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return md.NewMarkdown(f).
		Table(md.TableSet{Header: headers, Rows: rows}).
		Build()
}
