// Package timeseries provides time series data structures and the input
// stage of the analysis pipeline.
//
// # Reading and Validating Input
//
// Input arrives as a comma-separated table with a header row. The table must
// contain a "ds" column (timestamps) and a "y" column (numeric values):
//
//	table, err := timeseries.ReadTable(r)
//	if err != nil {
//	    return err
//	}
//	series, err := timeseries.Validate(table)
//
// Validate rejects the whole table on the first bad row; there is no
// partial-success mode. Errors are typed:
//
//   - *SchemaError: a required column is missing
//   - *ParseError: a timestamp, number, or CSV record could not be parsed
//   - *InsufficientDataError: too few rows for the requested operation
//
// The returned series is sorted by timestamp with a stable sort, so rows
// sharing a timestamp keep their input order.
//
// # Splitting
//
// Split a series chronologically into training (70%) and evaluation (30%):
//
//	split, err := timeseries.SplitChronological(series)
//	// split.Training, split.Evaluation
//
// The split index is floor(0.7n) clamped to [1, n-1], so both partitions
// are non-empty for any n >= 2.
//
// # Basic Statistics
//
//	mean := series.Mean()
//	std := series.Std()
//	min := series.Min()
//	max := series.Max()
package timeseries
