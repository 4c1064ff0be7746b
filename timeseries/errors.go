package timeseries

import "fmt"

// SchemaError reports a required column that is missing from the input table.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column %q: input must contain \"ds\" and \"y\" columns", e.Column)
}

// ParseError reports a cell or record that could not be parsed.
// Row is the 1-based data row (the header is not counted); zero means the
// failure is not tied to a single row.
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Row == 0:
		return fmt.Sprintf("invalid input: %v", e.Err)
	case e.Column == "":
		return fmt.Sprintf("invalid record in row %d: %v", e.Row, e.Err)
	case e.Column == ColumnTimestamp:
		return fmt.Sprintf("invalid date format in row %d: %q", e.Row, e.Value)
	default:
		return fmt.Sprintf("invalid numeric value in row %d: %q", e.Row, e.Value)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InsufficientDataError reports that an operation received fewer
// observations than it needs.
type InsufficientDataError struct {
	Op   string
	Need int
	Got  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: need at least %d rows, got %d", e.Op, e.Need, e.Got)
}
