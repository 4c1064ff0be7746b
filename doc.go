// Package goseason analyzes a daily series with a seasonal trend
// decomposition model.
//
// The input is a table with a "ds" timestamp column and a "y" value column.
// goseason splits it chronologically into training (70%) and evaluation
// (30%) segments, fits a piecewise-linear trend with additive weekly and
// yearly seasonality to the training rows, and reports:
//
//   - MAPE and RMSE of the forecast over the evaluation segment
//   - the mean weekly contribution per weekday and yearly contribution per month
//   - summary statistics and a preview of the most recent 30 rows
//
// # Quick Start
//
//	f, _ := os.Open("sales.csv")
//	report, err := analysis.New().Analyze(ctx, f)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(report.ModelMetrics.MAPE)
//
// # Packages
//
//   - timeseries: table reading, validation, the Series type and splitting
//   - forecast: the Model interface and the additive seasonal model
//   - stats: accuracy metrics and residual diagnostics (ACF, Ljung-Box)
//   - seasonality: weekday and month aggregation of seasonal components
//   - analysis: the pipeline and the report
//   - server: the HTTP API
//   - config, telemetry: environment configuration and tracing
//
// The goseason command in cmd/goseason runs an analysis from the command line
// (goseason analyze) or serves the HTTP API (goseason serve).
package goseason
