package parse

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// rawTable is the file-format-agnostic shape every reader produces: a
// header row plus every data row beneath it, as raw strings. Everything
// downstream of this point is format-independent.
type rawTable struct {
	Headers []string
	Rows    [][]string
}

// readFile dispatches on file extension and returns the raw header/row
// grid. Unrecognized extensions are a hard error — the request is rejected
// before any row is inspected.
func readFile(filename string, data []byte) (rawTable, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return readDelimited(data, ',')
	case ".tsv":
		return readDelimited(data, '\t')
	case ".xlsx", ".xls":
		return readExcel(data)
	default:
		return rawTable{}, errUnsupportedFileType(filename)
	}
}

func readDelimited(data []byte, delimiter rune) (rawTable, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1 // tolerate ragged rows; cells missing from a short row read as empty downstream, extra cells are ignored
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return rawTable{}, errParse(fmt.Sprintf("malformed delimited file: %v", err))
	}
	if len(records) == 0 {
		return rawTable{}, errParse("file has no rows")
	}
	return rawTable{Headers: records[0], Rows: records[1:]}, nil
}

func readExcel(data []byte) (rawTable, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return rawTable{}, errParse(fmt.Sprintf("malformed workbook: %v", err))
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return rawTable{}, errParse("workbook has no sheets")
	}

	rowsIter, err := wb.Rows(sheets[0])
	if err != nil {
		return rawTable{}, errParse(fmt.Sprintf("cannot read sheet %q: %v", sheets[0], err))
	}
	defer rowsIter.Close()

	var all [][]string
	for rowsIter.Next() {
		cols, err := rowsIter.Columns()
		if err != nil {
			if err == io.EOF {
				break
			}
			return rawTable{}, errParse(fmt.Sprintf("cannot read row: %v", err))
		}
		all = append(all, cols)
	}
	if len(all) == 0 {
		return rawTable{}, errParse("sheet has no rows")
	}
	return rawTable{Headers: all[0], Rows: all[1:]}, nil
}
