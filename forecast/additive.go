package forecast

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/goseason/timeseries"
)

// Options holds the fixed configuration of the additive model.
type Options struct {
	MaxChangepoints       int     // Upper bound on trend changepoints (default: 25)
	ChangepointRange      float64 // Share of training rows that may hold changepoints (default: 0.8)
	ChangepointPriorScale float64 // Ridge scale for changepoint deltas (default: 0.05)
	SeasonalityPriorScale float64 // Ridge scale for Fourier coefficients (default: 10)
	IntervalWidth         float64 // Coverage of the uncertainty band (default: 0.8)
}

// DefaultOptions returns the model configuration used by the pipeline.
func DefaultOptions() *Options {
	return &Options{
		MaxChangepoints:       25,
		ChangepointRange:      0.8,
		ChangepointPriorScale: 0.05,
		SeasonalityPriorScale: 10,
		IntervalWidth:         0.8,
	}
}

// Additive decomposes a series into a piecewise-linear trend plus additive
// weekly and yearly Fourier seasonality, fitted by penalised least squares.
// A cycle is only fitted when training spans at least one full period of it;
// shorter series get a zero yearly component.
//
// Uncertainty bands are symmetric: for a timestamp h sampling steps past the
// end of training the half-width is z*sigma*sqrt(1+h), where sigma is the
// standard deviation of the in-sample residuals and z the normal quantile
// for IntervalWidth. In-sample timestamps use h = 0.
type Additive struct {
	opts Options
}

// NewAdditive creates an additive model. A nil opts uses DefaultOptions.
func NewAdditive(opts *Options) *Additive {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Additive{opts: *opts}
}

// AdditiveFit is a fitted additive model.
type AdditiveFit struct {
	layout       layout
	coeffs       []float64
	changepoints []float64 // on the scaled training clock
	start        time.Time
	end          time.Time
	span         float64 // training span in seconds
	step         time.Duration
	yScale       float64
	sigma        float64
	z            float64
	residuals    []float64
}

// Fit fits the model to a training series sorted by timestamp.
// Every call allocates its own state; Additive holds no mutable state.
func (a *Additive) Fit(train *timeseries.Series) (Fitted, error) {
	n := train.Len()
	if n < 2 {
		return nil, &timeseries.InsufficientDataError{Op: "model fit", Need: 2, Got: n}
	}

	start, end := train.Start(), train.End()
	spanDur := end.Sub(start)
	if spanDur <= 0 {
		return nil, &ConvergenceError{Reason: "all training timestamps are identical"}
	}

	step := modalStep(train.Timestamps)
	if spanDur+step < 7*24*time.Hour {
		return nil, &ConvergenceError{Reason: "training data covers less than one full weekly cycle"}
	}

	f := &AdditiveFit{
		start: start,
		end:   end,
		span:  spanDur.Seconds(),
		step:  step,
	}

	f.yScale = floats.Norm(train.Values, math.Inf(1))
	if f.yScale == 0 {
		f.yScale = 1
	}

	f.changepoints = a.placeChangepoints(f, train.Timestamps)
	coverage := spanDur + step
	f.layout = newLayout(len(f.changepoints),
		WeeklySeasonality.identifiable(coverage),
		YearlySeasonality.identifiable(coverage))
	p := f.layout.width

	// Design matrix and scaled target.
	x := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	for i, ts := range train.Timestamps {
		f.layout.fillRow(x.RawRowView(i), ts, f.scaledTime(ts), f.changepoints)
		y.SetVec(i, train.Values[i]/f.yScale)
	}

	// Normal equations with ridge penalties. Intercept and slope are free.
	var normal mat.SymDense
	normal.SymOuterK(1, x.T())
	cpPenalty := 1 / (a.opts.ChangepointPriorScale * a.opts.ChangepointPriorScale)
	seasonPenalty := 1 / (a.opts.SeasonalityPriorScale * a.opts.SeasonalityPriorScale)
	for j := 2; j < p; j++ {
		penalty := seasonPenalty
		if j < f.layout.weeklyStart {
			penalty = cpPenalty
		}
		normal.SetSym(j, j, normal.At(j, j)+penalty)
	}

	var rhs mat.VecDense
	rhs.MulVec(x.T(), y)

	var chol mat.Cholesky
	if ok := chol.Factorize(&normal); !ok {
		return nil, &ConvergenceError{Reason: "normal equations are not positive definite"}
	}
	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, &rhs); err != nil {
		return nil, &ConvergenceError{Reason: err.Error()}
	}

	f.coeffs = make([]float64, p)
	for j := range f.coeffs {
		c := beta.AtVec(j)
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, &ConvergenceError{Reason: "non-finite model coefficient"}
		}
		f.coeffs[j] = c
	}

	var fitted mat.VecDense
	fitted.MulVec(x, &beta)
	f.residuals = make([]float64, n)
	for i := range f.residuals {
		f.residuals[i] = train.Values[i] - fitted.AtVec(i)*f.yScale
	}

	f.sigma = math.Sqrt(stat.PopVariance(f.residuals, nil))
	if math.IsNaN(f.sigma) {
		f.sigma = 0
	}
	f.z = distuv.UnitNormal.Quantile(0.5 + a.opts.IntervalWidth/2)

	return f, nil
}

// placeChangepoints spreads changepoints uniformly over the first
// ChangepointRange share of training rows, skipping the first row.
func (a *Additive) placeChangepoints(f *AdditiveFit, timestamps []time.Time) []float64 {
	histSize := int(math.Floor(float64(len(timestamps)) * a.opts.ChangepointRange))
	count := min(a.opts.MaxChangepoints, histSize-1)
	if count <= 0 {
		return nil
	}

	cps := make([]float64, count)
	for j := 1; j <= count; j++ {
		idx := int(math.Round(float64(j) * float64(histSize-1) / float64(count)))
		cps[j-1] = f.scaledTime(timestamps[idx])
	}
	return cps
}

// scaledTime maps ts onto the training clock, where start is 0 and end is 1.
func (f *AdditiveFit) scaledTime(ts time.Time) float64 {
	return ts.Sub(f.start).Seconds() / f.span
}

// horizonSteps returns how many sampling steps ts lies past the end of
// training, or 0 for in-sample timestamps.
func (f *AdditiveFit) horizonSteps(ts time.Time) float64 {
	d := ts.Sub(f.end)
	if d <= 0 {
		return 0
	}
	return d.Seconds() / f.step.Seconds()
}

// Predict evaluates the fitted model at the given timestamps.
func (f *AdditiveFit) Predict(timestamps []time.Time) (*Forecast, error) {
	out := newForecast(len(timestamps))
	row := make([]float64, f.layout.width)
	l := f.layout

	for i, ts := range timestamps {
		l.fillRow(row, ts, f.scaledTime(ts), f.changepoints)

		trend := floats.Dot(row[:l.weeklyStart], f.coeffs[:l.weeklyStart]) * f.yScale
		weekly := floats.Dot(row[l.weeklyStart:l.yearlyStart], f.coeffs[l.weeklyStart:l.yearlyStart]) * f.yScale
		yearly := floats.Dot(row[l.yearlyStart:], f.coeffs[l.yearlyStart:]) * f.yScale
		point := trend + weekly + yearly
		if math.IsNaN(point) || math.IsInf(point, 0) {
			return nil, &ConvergenceError{Reason: "non-finite prediction"}
		}

		half := f.z * f.sigma * math.Sqrt(1+f.horizonSteps(ts))

		out.Timestamps[i] = ts
		out.Point[i] = point
		out.Lower[i] = point - half
		out.Upper[i] = point + half
		out.Trend[i] = trend
		out.Weekly[i] = weekly
		out.Yearly[i] = yearly
	}

	return out, nil
}

// Horizon returns periods timestamps after the end of training.
func (f *AdditiveFit) Horizon(periods int) []time.Time {
	if periods <= 0 {
		return []time.Time{}
	}
	out := make([]time.Time, periods)
	for i := range out {
		out[i] = f.end.Add(time.Duration(i+1) * f.step)
	}
	return out
}

// Residuals returns a copy of the in-sample residuals.
func (f *AdditiveFit) Residuals() []float64 {
	out := make([]float64, len(f.residuals))
	copy(out, f.residuals)
	return out
}
