// Package stats provides statistical functions for time series analysis.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/goseason/timeseries"
)

// ACF calculates the Autocorrelation Function for the given series.
// Returns ACF values for lags 0 to maxLag, or nil for a constant series.
func ACF(series *timeseries.Series, maxLag int) []float64 {
	n := series.Len()
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := stat.Mean(series.Values, nil)
	variance := 0.0
	for _, v := range series.Values {
		diff := v - mean
		variance += diff * diff
	}

	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (series.Values[i] - mean) * (series.Values[i-k] - mean)
		}
		acf[k] = sum / variance
	}

	return acf
}

// ConfidenceBound returns the 95% significance bound (1.96/sqrt(n)) for
// autocorrelations of a series of length n.
func ConfidenceBound(n int) float64 {
	if n <= 0 {
		return math.NaN()
	}
	return 1.96 / math.Sqrt(float64(n))
}

// SignificantLags returns the lags, excluding lag 0, whose autocorrelation
// exceeds bound in absolute value. The result is never nil.
func SignificantLags(acf []float64, bound float64) []int {
	lags := []int{}
	for lag, r := range acf {
		if lag > 0 && math.Abs(r) > bound {
			lags = append(lags, lag)
		}
	}
	return lags
}
