// Package stats provides forecast accuracy metrics and residual diagnostics.
//
// # Accuracy Metrics
//
// Compare held-out actuals with forecasts aligned by position:
//
//	acc, err := stats.Score(actual, predicted)
//	fmt.Printf("MAPE=%.2f%% RMSE=%.4f\n", acc.MAPE, acc.RMSE)
//
// MAPE is undefined when an actual value is zero; Score and MAPE return a
// *DivisionByZeroError instead of a NaN or infinite result.
//
// # Autocorrelation
//
//	acf := stats.ACF(series, 20)
//	significant := stats.SignificantLags(acf, stats.ConfidenceBound(series.Len()))
//
// # Residual Diagnostics
//
// Test model residuals for autocorrelation:
//
//	lb, err := stats.LjungBox(residuals, 10, 0)
//	if err == nil && lb.PValue > 0.05 {
//	    // no evidence of autocorrelation
//	}
//
//	dw, ok := stats.DurbinWatson(residuals)
//
// LjungBox needs at least MinResidualRows residuals and fails with
// ErrConstantResiduals when they have no variance.
package stats
