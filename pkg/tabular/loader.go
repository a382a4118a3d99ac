package tabular

import (
	"bytes"
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/tabmatch/pkg/dataset"
	"github.com/agentstation/tabmatch/pkg/errors"
	"github.com/agentstation/tabmatch/pkg/logging"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads the dataset stored at path. The first row is the header. The
// dataset is named after the file. A file with no data rows loads as an
// empty dataset and a warning is logged; callers decide whether that blocks
// a run.
func Load(path string) (*dataset.Dataset, error) {
	format, ok := FormatOf(path)
	if !ok || format == FormatMarkdown {
		ext := filepath.Ext(path)
		if strings.EqualFold(ext, ".xls") {
			return nil, errors.NewReadError(path, fmt.Errorf("legacy %q workbooks are not supported; save the file as .xlsx", ext))
		}
		return nil, errors.NewReadError(path, fmt.Errorf("unsupported file type %q", ext))
	}

	var (
		header []string
		rows   [][]string
		err    error
	)
	switch format {
	case FormatCSV:
		header, rows, err = readCSV(path)
	default:
		header, rows, err = readXLSX(path)
	}
	if err != nil {
		return nil, errors.WrapRead(path, err)
	}

	ds := dataset.New(DisplayName(path), header, rows)
	logger := logging.FromContext(logging.WithDataset(context.Background(), ds.Name))
	if ds.Empty() {
		logger.Warn().
			Str("path", path).
			Int("columns", len(ds.Columns)).
			Msg("Spreadsheet has no data rows")
	} else {
		logger.Debug().
			Str("path", path).
			Int("rows", ds.Len()).
			Int("columns", len(ds.Columns)).
			Msg("Loaded spreadsheet")
	}
	return ds, nil
}

func readXLSX(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, nil
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}
	return split(all)
}

func readCSV(path string) ([]string, [][]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	b = bytes.TrimPrefix(b, utf8BOM)

	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1
	r.Comma = sniffDelimiter(b)

	var all [][]string
	for {
		rec, err := r.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		all = append(all, rec)
	}
	return split(all)
}

// sniffDelimiter picks ';' when the first line has more semicolons than commas,
// which is how spreadsheet programs in comma-decimal locales save CSV.
func sniffDelimiter(b []byte) rune {
	line := b
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		line = b[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

// split separates the header from data rows and drops fully blank rows.
func split(all [][]string) ([]string, [][]string, error) {
	if len(all) == 0 {
		return nil, nil, nil
	}
	rows := make([][]string, 0, len(all)-1)
	for _, row := range all[1:] {
		if blank(row) {
			continue
		}
		rows = append(rows, row)
	}
	return all[0], rows, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
