package timeseries

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order when parsing the ds column.
// Layouts without a zone are interpreted in UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
}

// ParseTimestamp parses a ds cell using the accepted layouts.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}

// Validate checks that the table has ds and y columns, parses every row and
// returns the observations sorted by timestamp. Ties keep their input order.
// A single bad row rejects the whole table.
func Validate(t *Table) (*Series, error) {
	dsIdx := t.ColumnIndex(ColumnTimestamp)
	if dsIdx < 0 {
		return nil, &SchemaError{Column: ColumnTimestamp}
	}
	yIdx := t.ColumnIndex(ColumnValue)
	if yIdx < 0 {
		return nil, &SchemaError{Column: ColumnValue}
	}
	if len(t.Records) == 0 {
		return nil, &InsufficientDataError{Op: "validation", Need: 1, Got: 0}
	}

	type row struct {
		ts    time.Time
		value float64
	}
	rows := make([]row, 0, len(t.Records))

	for i, record := range t.Records {
		rowNum := i + 1
		if dsIdx >= len(record) || yIdx >= len(record) {
			return nil, &ParseError{Row: rowNum, Err: fmt.Errorf("expected %d fields, got %d", len(t.Header), len(record))}
		}

		rawTS := strings.TrimSpace(record[dsIdx])
		ts, err := ParseTimestamp(rawTS)
		if err != nil {
			return nil, &ParseError{Row: rowNum, Column: ColumnTimestamp, Value: rawTS, Err: err}
		}

		rawY := strings.TrimSpace(record[yIdx])
		value, err := strconv.ParseFloat(rawY, 64)
		if err == nil && (math.IsNaN(value) || math.IsInf(value, 0)) {
			err = fmt.Errorf("non-finite value %q", rawY)
		}
		if err != nil {
			return nil, &ParseError{Row: rowNum, Column: ColumnValue, Value: rawY, Err: err}
		}

		rows = append(rows, row{ts: ts, value: value})
	}

	slices.SortStableFunc(rows, func(a, b row) int {
		return a.ts.Compare(b.ts)
	})

	series := &Series{
		Timestamps: make([]time.Time, len(rows)),
		Values:     make([]float64, len(rows)),
		Name:       ColumnValue,
	}
	for i, r := range rows {
		series.Timestamps[i] = r.ts
		series.Values[i] = r.value
	}
	return series, nil
}
