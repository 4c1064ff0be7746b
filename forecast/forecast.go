// Package forecast implements the seasonal trend-decomposition forecasting model.
package forecast

import (
	"fmt"
	"time"

	"github.com/sartorproj/goseason/timeseries"
)

// Model fits a forecasting strategy to a training series.
type Model interface {
	Fit(train *timeseries.Series) (Fitted, error)
}

// Fitted is a model that has been fitted to a training series. A Fitted
// value is read-only: predicting never refits or mutates it.
type Fitted interface {
	// Predict returns point estimates, uncertainty bounds and seasonal
	// components for arbitrary timestamps, in-sample or out-of-sample.
	Predict(timestamps []time.Time) (*Forecast, error)

	// Horizon returns periods timestamps following the end of training,
	// spaced by the training sampling interval.
	Horizon(periods int) []time.Time

	// Residuals returns the in-sample residuals (actual - fitted) of the
	// training series.
	Residuals() []float64
}

// Forecast holds model output for a set of timestamps. All slices have the
// same length and Lower[i] <= Point[i] <= Upper[i] for every i.
type Forecast struct {
	Timestamps []time.Time
	Point      []float64
	Lower      []float64
	Upper      []float64
	Trend      []float64
	Weekly     []float64
	Yearly     []float64
}

func newForecast(n int) *Forecast {
	return &Forecast{
		Timestamps: make([]time.Time, n),
		Point:      make([]float64, n),
		Lower:      make([]float64, n),
		Upper:      make([]float64, n),
		Trend:      make([]float64, n),
		Weekly:     make([]float64, n),
		Yearly:     make([]float64, n),
	}
}

// Len returns the number of forecast rows.
func (f *Forecast) Len() int {
	return len(f.Timestamps)
}

// Tail returns the last n rows, or all rows if there are fewer.
func (f *Forecast) Tail(n int) *Forecast {
	start := f.Len() - n
	if start < 0 {
		start = 0
	}
	return &Forecast{
		Timestamps: f.Timestamps[start:],
		Point:      f.Point[start:],
		Lower:      f.Lower[start:],
		Upper:      f.Upper[start:],
		Trend:      f.Trend[start:],
		Weekly:     f.Weekly[start:],
		Yearly:     f.Yearly[start:],
	}
}

// ConvergenceError reports that the model could not be fitted.
type ConvergenceError struct {
	Reason string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("model fit failed: %s", e.Reason)
}
