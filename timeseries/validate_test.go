package timeseries

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func mustReadTable(t *testing.T, csvData string) *Table {
	t.Helper()
	table, err := ReadTable(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Failed to read table: %v", err)
	}
	return table
}

func TestValidateSortsStably(t *testing.T) {
	table := mustReadTable(t, `ds,y
2021-01-03,3
2021-01-01,1
2021-01-02,20
2021-01-02,21`)

	series, err := Validate(table)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	expected := []float64{1, 20, 21, 3}
	for i, v := range expected {
		if series.Values[i] != v {
			t.Errorf("Value at index %d: expected %f, got %f", i, v, series.Values[i])
		}
	}

	for i := 1; i < series.Len(); i++ {
		if series.Timestamps[i].Before(series.Timestamps[i-1]) {
			t.Errorf("Timestamps not sorted at index %d", i)
		}
	}
}

func TestValidateIgnoresExtraColumns(t *testing.T) {
	table := mustReadTable(t, `unique_id,y,ds
A,100,2020-01-01
A,101,2020-01-02`)

	series, err := Validate(table)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if series.Len() != 2 || series.Values[1] != 101 {
		t.Errorf("Unexpected series: %v", series.Values)
	}
}

func TestValidateMissingColumns(t *testing.T) {
	tests := []struct {
		name    string
		csvData string
		column  string
	}{
		{"missing y", "ds,value\n2020-01-01,1\n", "y"},
		{"missing ds", "date,y\n2020-01-01,1\n", "ds"},
		{"missing both", "a,b\n1,2\n", "ds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(mustReadTable(t, tt.csvData))

			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("Expected SchemaError, got %v", err)
			}
			if schemaErr.Column != tt.column {
				t.Errorf("Expected missing column %q, got %q", tt.column, schemaErr.Column)
			}
			if !strings.Contains(err.Error(), `"`+tt.column+`"`) {
				t.Errorf("Error message should name the column: %v", err)
			}
		})
	}
}

func TestValidateRejectsBadRows(t *testing.T) {
	tests := []struct {
		name    string
		csvData string
		row     int
		column  string
	}{
		{"bad date", "ds,y\n2020-01-01,1\nnot-a-date,2\n", 2, "ds"},
		{"bad number", "ds,y\n2020-01-01,1\n2020-01-02,abc\n", 2, "y"},
		{"empty value", "ds,y\n2020-01-01,\n", 1, "y"},
		{"NaN value", "ds,y\n2020-01-01,NaN\n", 1, "y"},
		{"infinite value", "ds,y\n2020-01-01,1\n2020-01-02,2\n2020-01-03,+Inf\n", 3, "y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(mustReadTable(t, tt.csvData))

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Expected ParseError, got %v", err)
			}
			if parseErr.Row != tt.row || parseErr.Column != tt.column {
				t.Errorf("Expected row %d column %q, got row %d column %q",
					tt.row, tt.column, parseErr.Row, parseErr.Column)
			}
		})
	}
}

func TestValidateNoRows(t *testing.T) {
	_, err := Validate(mustReadTable(t, "ds,y\n"))

	var insufficient *InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Expected InsufficientDataError, got %v", err)
	}
}

func TestParseTimestampLayouts(t *testing.T) {
	expected := time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
	}{
		{"ISO date", "2021-03-04"},
		{"ISO datetime", "2021-03-04T00:00:00"},
		{"space datetime", "2021-03-04 00:00:00"},
		{"RFC3339", "2021-03-04T00:00:00Z"},
		{"slashes", "2021/03/04"},
		{"US format", "03/04/2021"},
		{"day-month-year", "04-Mar-2021"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := ParseTimestamp(tt.value)
			if err != nil {
				t.Fatalf("Failed to parse %q: %v", tt.value, err)
			}
			if !ts.Equal(expected) {
				t.Errorf("Expected %v, got %v", expected, ts)
			}
		})
	}
}
