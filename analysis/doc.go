// Package analysis runs the series analysis pipeline and assembles its report.
//
// # Pipeline
//
// One call to Analyze reads a ds,y table and runs, in order:
//
//  1. timeseries.Validate: parse and sort the rows
//  2. timeseries.SplitChronological: 70% training, 30% evaluation
//  3. Model.Fit on the training segment
//  4. Predict over the training timestamps followed by a horizon as long
//     as the evaluation segment
//  5. Predict over the distinct timestamps of the full series
//  6. stats.Score of the horizon rows against the evaluation actuals
//  7. seasonality.Aggregate of the full-series components
//
// The first failing stage aborts the analysis and its error is returned
// unchanged, so callers can match it with errors.As:
//
//	report, err := analysis.New().Analyze(ctx, file)
//	var schemaErr *timeseries.SchemaError
//	if errors.As(err, &schemaErr) {
//	    // missing column schemaErr.Column
//	}
//
// # Report
//
// Report carries the record counts, the date range, accuracy metrics,
// averaged weekly and monthly seasonal contributions, summary statistics of
// the observed values, optional residual diagnostics, and a preview of the
// last PreviewSize rows. Its JSON encoding is deterministic: map keys are
// sorted by encoding/json and the model has no random state.
//
// # Options
//
//	a := analysis.New(
//	    analysis.WithLogger(logger),
//	    analysis.WithTracerProvider(tp),
//	    analysis.WithModel(forecast.NewAdditive(opts)),
//	)
//
// An Analyzer is safe for concurrent use.
package analysis
