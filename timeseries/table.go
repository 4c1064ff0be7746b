package timeseries

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// Column names every input table must provide.
const (
	ColumnTimestamp = "ds"
	ColumnValue     = "y"
)

// Table holds raw tabular input: a header row and the data records as text.
type Table struct {
	Header  []string
	Records [][]string
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// ReadTable reads a comma-separated table with a header row.
func ReadTable(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if ch, _, err := br.ReadRune(); err == nil && ch != '\ufeff' {
		_ = br.UnreadRune()
	}

	reader := csv.NewReader(br)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &SchemaError{Column: ColumnTimestamp}
	}
	if err != nil {
		return nil, csvParseError(err)
	}

	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	table := &Table{Header: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvParseError(err)
		}
		table.Records = append(table.Records, record)
	}

	return table, nil
}

// csvParseError converts encoding/csv errors into ParseError, translating
// the reader's line number into a data row number.
func csvParseError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		row := perr.StartLine - 1
		if row < 0 {
			row = 0
		}
		return &ParseError{Row: row, Err: perr.Err}
	}
	return &ParseError{Err: err}
}
