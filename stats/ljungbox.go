package stats

import (
	"errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/goseason/timeseries"
)

// MinResidualRows is the smallest residual sample LjungBox accepts.
const MinResidualRows = 10

// ErrConstantResiduals is returned when residuals have no variance, so
// autocorrelation is undefined.
var ErrConstantResiduals = errors.New("residuals are constant")

// LjungBoxResult holds the portmanteau statistic Q and its chi-square tail
// probability. A small PValue means the residuals are autocorrelated.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int // lags - fitdf, at least 1
}

// LjungBox tests residuals for autocorrelation up to lags, which is capped
// at len(residuals)-1. fitdf is subtracted from the degrees of freedom.
func LjungBox(residuals []float64, lags, fitdf int) (*LjungBoxResult, error) {
	n := len(residuals)
	if n < MinResidualRows {
		return nil, &timeseries.InsufficientDataError{Op: "Ljung-Box test", Need: MinResidualRows, Got: n}
	}
	if lags < 1 {
		return nil, errors.New("Ljung-Box test needs at least one lag")
	}
	lags = min(lags, n-1)

	acf := ACF(timeseries.New(residuals), lags)
	if acf == nil {
		return nil, ErrConstantResiduals
	}

	weights := make([]float64, lags)
	for k := range weights {
		weights[k] = 1 / float64(n-k-1)
	}
	sq := make([]float64, lags)
	floats.MulTo(sq, acf[1:], acf[1:])
	q := float64(n*(n+2)) * floats.Dot(sq, weights)

	dof := max(lags-fitdf, 1)
	chi := distuv.ChiSquared{K: float64(dof)}

	return &LjungBoxResult{
		Statistic: q,
		PValue:    chi.Survival(q),
		Lags:      lags,
		DOF:       dof,
	}, nil
}

// DurbinWatson returns sum((e[t]-e[t-1])^2) / sum(e[t]^2). Values near 2
// mean no first-order autocorrelation, below 2 positive and above 2
// negative. ok is false for fewer than two residuals or all-zero residuals.
func DurbinWatson(residuals []float64) (d float64, ok bool) {
	n := len(residuals)
	if n < 2 {
		return 0, false
	}

	denominator := floats.Dot(residuals, residuals)
	if denominator == 0 {
		return 0, false
	}

	diff := make([]float64, n-1)
	floats.SubTo(diff, residuals[1:], residuals[:n-1])
	return floats.Dot(diff, diff) / denominator, true
}
