package forecast

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/goseason/stats"
	"github.com/sartorproj/goseason/timeseries"
)

func dailySeries(t *testing.T, start time.Time, values []float64) *timeseries.Series {
	t.Helper()
	timestamps := make([]time.Time, len(values))
	for i := range values {
		timestamps[i] = start.AddDate(0, 0, i)
	}
	s, err := timeseries.NewWithTimestamps(timestamps, values)
	if err != nil {
		t.Fatalf("Failed to build series: %v", err)
	}
	return s
}

var start2021 = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAdditiveConstantSeries(t *testing.T) {
	values := make([]float64, 70)
	for i := range values {
		values[i] = 10
	}
	train := dailySeries(t, start2021, values)

	fitted, err := NewAdditive(nil).Fit(train)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	fc, err := fitted.Predict(fitted.Horizon(30))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	for i := 0; i < fc.Len(); i++ {
		if math.Abs(fc.Point[i]-10) > 1e-3 {
			t.Errorf("Row %d: expected ~10, got %f", i, fc.Point[i])
		}
		if math.Abs(fc.Weekly[i]) > 1e-3 {
			t.Errorf("Row %d: expected weekly ~0, got %f", i, fc.Weekly[i])
		}
	}
}

func TestAdditiveLinearTrendExtrapolates(t *testing.T) {
	values := make([]float64, 60)
	for i := range values {
		values[i] = 50 + 2*float64(i)
	}
	train := dailySeries(t, start2021, values)

	fitted, err := NewAdditive(nil).Fit(train)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	fc, err := fitted.Predict(fitted.Horizon(10))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	for i := 0; i < fc.Len(); i++ {
		expected := 50 + 2*float64(60+i)
		if math.Abs(fc.Point[i]-expected) > 0.5 {
			t.Errorf("Step %d: expected %f, got %f", i+1, expected, fc.Point[i])
		}
	}
}

func TestAdditiveRecoversWeeklyPattern(t *testing.T) {
	pattern := map[time.Weekday]float64{
		time.Sunday: -3, time.Monday: -2, time.Tuesday: -1, time.Wednesday: 0,
		time.Thursday: 1, time.Friday: 2, time.Saturday: 3,
	}

	values := make([]float64, 140)
	for i := range values {
		values[i] = 100 + pattern[start2021.AddDate(0, 0, i).Weekday()]
	}
	train := dailySeries(t, start2021, values)

	fitted, err := NewAdditive(nil).Fit(train)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	fc, err := fitted.Predict(train.Timestamps[:7])
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	for i, ts := range fc.Timestamps {
		if math.Abs(fc.Weekly[i]-pattern[ts.Weekday()]) > 0.5 {
			t.Errorf("%s: expected weekly %f, got %f", ts.Weekday(), pattern[ts.Weekday()], fc.Weekly[i])
		}
		sum := fc.Trend[i] + fc.Weekly[i] + fc.Yearly[i]
		if math.Abs(sum-fc.Point[i]) > 1e-9 {
			t.Errorf("Components do not add up to the point estimate: %f vs %f", sum, fc.Point[i])
		}
	}
}

func TestAdditiveBoundsOrderedAndWidening(t *testing.T) {
	values := make([]float64, 120)
	for i := range values {
		values[i] = 20 + float64(i)/10 + float64(i%5-2) + 3*math.Sin(float64(i)/4)
	}
	train := dailySeries(t, start2021, values)

	fitted, err := NewAdditive(nil).Fit(train)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	timestamps := append(append([]time.Time{}, train.Timestamps...), fitted.Horizon(40)...)
	fc, err := fitted.Predict(timestamps)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	prevWidth := 0.0
	for i := 0; i < fc.Len(); i++ {
		if !(fc.Lower[i] <= fc.Point[i] && fc.Point[i] <= fc.Upper[i]) {
			t.Fatalf("Row %d: bounds out of order: %f <= %f <= %f", i, fc.Lower[i], fc.Point[i], fc.Upper[i])
		}
		width := fc.Upper[i] - fc.Lower[i]
		if i >= train.Len() && width < prevWidth-1e-12 {
			t.Fatalf("Row %d: band narrowed from %f to %f", i, prevWidth, width)
		}
		prevWidth = width
	}

	inSample := fc.Upper[0] - fc.Lower[0]
	last := fc.Upper[fc.Len()-1] - fc.Lower[fc.Len()-1]
	if inSample <= 0 || last <= inSample {
		t.Errorf("Expected positive band widening with horizon, got %f then %f", inSample, last)
	}
}

func TestAdditiveDeterministic(t *testing.T) {
	values := make([]float64, 90)
	for i := range values {
		values[i] = 5 + math.Cos(float64(i)) + float64(i%3)
	}
	train := dailySeries(t, start2021, values)

	var previous *Forecast
	for run := 0; run < 3; run++ {
		fitted, err := NewAdditive(nil).Fit(train)
		if err != nil {
			t.Fatalf("Fit failed: %v", err)
		}
		fc, err := fitted.Predict(fitted.Horizon(20))
		if err != nil {
			t.Fatalf("Predict failed: %v", err)
		}
		if previous != nil {
			for i := range fc.Point {
				if fc.Point[i] != previous.Point[i] || fc.Upper[i] != previous.Upper[i] {
					t.Fatalf("Run %d row %d differs", run, i)
				}
			}
		}
		previous = fc
	}
}

func TestAdditiveHorizon(t *testing.T) {
	timestamps := make([]time.Time, 48*8)
	values := make([]float64, len(timestamps))
	for i := range timestamps {
		timestamps[i] = start2021.Add(time.Duration(i) * time.Hour)
		values[i] = float64(i % 24)
	}
	train, _ := timeseries.NewWithTimestamps(timestamps, values)

	fitted, err := NewAdditive(nil).Fit(train)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	horizon := fitted.Horizon(3)
	if len(horizon) != 3 {
		t.Fatalf("Expected 3 timestamps, got %d", len(horizon))
	}
	for i, ts := range horizon {
		expected := train.End().Add(time.Duration(i+1) * time.Hour)
		if !ts.Equal(expected) {
			t.Errorf("Step %d: expected %v, got %v", i+1, expected, ts)
		}
	}

	if got := fitted.Horizon(0); len(got) != 0 {
		t.Errorf("Expected empty horizon, got %d", len(got))
	}
}

func TestAdditiveResiduals(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = float64(i % 7)
	}
	train := dailySeries(t, start2021, values)

	fitted, err := NewAdditive(nil).Fit(train)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	residuals := fitted.Residuals()
	if len(residuals) != train.Len() {
		t.Fatalf("Expected %d residuals, got %d", train.Len(), len(residuals))
	}

	residuals[0] = 1e9
	if fitted.Residuals()[0] == 1e9 {
		t.Error("Residuals should return a copy")
	}
}

func TestAdditiveFitErrors(t *testing.T) {
	same := []time.Time{start2021, start2021, start2021}
	sameSeries, _ := timeseries.NewWithTimestamps(same, []float64{1, 2, 3})

	tests := []struct {
		name        string
		series      *timeseries.Series
		convergence bool
	}{
		{"single row", dailySeries(t, start2021, []float64{1}), false},
		{"identical timestamps", sameSeries, true},
		{"less than a week", dailySeries(t, start2021, []float64{1, 2, 3}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAdditive(nil).Fit(tt.series)
			if err == nil {
				t.Fatal("Expected error")
			}

			var convErr *ConvergenceError
			var insufficient *timeseries.InsufficientDataError
			if tt.convergence && !errors.As(err, &convErr) {
				t.Errorf("Expected ConvergenceError, got %v", err)
			}
			if !tt.convergence && !errors.As(err, &insufficient) {
				t.Errorf("Expected InsufficientDataError, got %v", err)
			}
		})
	}
}

func TestAdditiveOneWeekIsEnough(t *testing.T) {
	train := dailySeries(t, start2021, []float64{1, 2, 3, 4, 5, 6, 7})

	fitted, err := NewAdditive(nil).Fit(train)
	if err != nil {
		t.Fatalf("Seven daily rows should cover a weekly cycle: %v", err)
	}

	fc, err := fitted.Predict(fitted.Horizon(3))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i := 0; i < fc.Len(); i++ {
		if math.IsNaN(fc.Point[i]) {
			t.Errorf("Row %d: NaN prediction", i)
		}
	}
}

func TestAdditiveYearlyCycleNeedsOneYear(t *testing.T) {
	tests := []struct {
		name  string
		days  int
		order int
	}{
		{"ten weeks", 70, 0},
		{"just under a year", 365, 0},
		{"one year", 366, YearlySeasonality.FourierOrder},
		{"two years", 730, YearlySeasonality.FourierOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := make([]float64, tt.days)
			for i := range values {
				values[i] = 50 + 10*math.Sin(2*math.Pi*float64(i)/365.25) + float64(i%7)
			}
			train := dailySeries(t, start2021, values)

			fitted, err := NewAdditive(nil).Fit(train)
			if err != nil {
				t.Fatalf("Fit failed: %v", err)
			}

			fit := fitted.(*AdditiveFit)
			if got := fit.layout.yearly.FourierOrder; got != tt.order {
				t.Errorf("Expected yearly order %d, got %d", tt.order, got)
			}
			if got := fit.layout.weekly.FourierOrder; got != WeeklySeasonality.FourierOrder {
				t.Errorf("Weekly cycle should always be fitted, got order %d", got)
			}

			if tt.order == 0 {
				fc, err := fitted.Predict(fitted.Horizon(30))
				if err != nil {
					t.Fatalf("Predict failed: %v", err)
				}
				for i, v := range fc.Yearly {
					if v != 0 {
						t.Fatalf("Row %d: expected zero yearly component, got %f", i, v)
					}
				}
			}
		})
	}
}

func TestAdditiveNoisyWeeklySeriesIsCalibrated(t *testing.T) {
	const (
		n     = 100
		split = 70
		sigma = 3.0
	)

	for seed := uint64(1); seed <= 8; seed++ {
		noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: rand.NewPCG(seed, seed)}
		values := make([]float64, n)
		for i := range values {
			values[i] = 100 + 5*math.Sin(2*math.Pi*float64(i)/7) + noise.Rand()
		}
		series := dailySeries(t, start2021, values)
		train, eval := series.Slice(0, split), series.Slice(split, n)

		fitted, err := NewAdditive(nil).Fit(train)
		if err != nil {
			t.Fatalf("seed %d: Fit failed: %v", seed, err)
		}
		fc, err := fitted.Predict(fitted.Horizon(eval.Len()))
		if err != nil {
			t.Fatalf("seed %d: Predict failed: %v", seed, err)
		}

		rmse, err := stats.RMSE(eval.Values, fc.Point)
		if err != nil {
			t.Fatalf("seed %d: RMSE failed: %v", seed, err)
		}

		covered := 0
		for i, v := range eval.Values {
			if fc.Lower[i] <= v && v <= fc.Upper[i] {
				covered++
			}
		}

		t.Logf("seed %d: RMSE=%.3f coverage=%d/%d", seed, rmse, covered, eval.Len())

		if rmse > 2*sigma {
			t.Errorf("seed %d: RMSE %.3f exceeds twice the noise level", seed, rmse)
		}
		if covered < eval.Len()*6/10 {
			t.Errorf("seed %d: 80%% band covers only %d of %d evaluation points", seed, covered, eval.Len())
		}
	}
}

func TestModalStep(t *testing.T) {
	day := 24 * time.Hour
	tests := []struct {
		name     string
		gaps     []time.Duration
		expected time.Duration
	}{
		{"daily", []time.Duration{day, day, day}, day},
		{"mostly daily", []time.Duration{day, 2 * day, day}, day},
		{"tie picks smaller", []time.Duration{2 * day, day}, day},
		{"no gaps", nil, day},
		{"hourly", []time.Duration{time.Hour, time.Hour}, time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timestamps := []time.Time{start2021}
			for _, g := range tt.gaps {
				timestamps = append(timestamps, timestamps[len(timestamps)-1].Add(g))
			}
			if got := modalStep(timestamps); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestForecastTail(t *testing.T) {
	fc := newForecast(5)
	for i := range fc.Point {
		fc.Point[i] = float64(i)
	}

	tail := fc.Tail(2)
	if tail.Len() != 2 || tail.Point[0] != 3 || tail.Point[1] != 4 {
		t.Errorf("Unexpected tail: %v", tail.Point)
	}
	if fc.Tail(10).Len() != 5 {
		t.Error("Tail longer than forecast should return all rows")
	}
}
