// Package forecast implements a seasonal trend-decomposition forecasting
// model behind a small capability interface.
//
// A Model is fitted once to a training series and returns a Fitted value
// that can be asked for predictions at any timestamps, in-sample or in the
// future, without refitting:
//
//	model := forecast.NewAdditive(nil) // default configuration
//	fitted, err := model.Fit(train)
//	if err != nil {
//	    return err
//	}
//
//	// Predict the evaluation horizon
//	future, err := fitted.Predict(fitted.Horizon(evaluation.Len()))
//
//	// Predict arbitrary timestamps
//	components, err := fitted.Predict(series.DistinctTimestamps())
//
// # Additive Model
//
// The Additive model decomposes a series as
//
//	y(t) = trend(t) + weekly(t) + yearly(t) + error
//
// where the trend is piecewise linear with up to 25 changepoints over the
// first 80% of the training data, and the weekly (order 3) and yearly
// (order 10) cycles are Fourier series. Coefficients are estimated by
// penalised least squares; changepoint and seasonal coefficients carry ridge
// penalties so short series still have a unique solution.
//
// A cycle is only fitted when the training data spans at least one full
// period of it. With less than a year of history the yearly component is
// zero.
//
// Every forecast row carries a point estimate, an uncertainty band and the
// trend, weekly and yearly contributions. The band is symmetric around the
// point estimate and widens with the square root of the distance past the
// end of training, so Lower <= Point <= Upper always holds.
//
// # Errors
//
// Fit returns *timeseries.InsufficientDataError for fewer than two rows and
// *ConvergenceError when the decomposition cannot be computed, for example
// when training covers less than one full weekly cycle.
package forecast
