package seasonality

import (
	"math"
	"testing"
	"time"

	"github.com/sartorproj/goseason/forecast"
)

func buildForecast(timestamps []time.Time, weekly, yearly []float64) *forecast.Forecast {
	return &forecast.Forecast{
		Timestamps: timestamps,
		Point:      make([]float64, len(timestamps)),
		Lower:      make([]float64, len(timestamps)),
		Upper:      make([]float64, len(timestamps)),
		Trend:      make([]float64, len(timestamps)),
		Weekly:     weekly,
		Yearly:     yearly,
	}
}

func TestAggregateWeekly(t *testing.T) {
	start := time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC) // Monday
	var timestamps []time.Time
	var weekly, yearly []float64
	for i := 0; i < 14; i++ {
		timestamps = append(timestamps, start.AddDate(0, 0, i))
		weekly = append(weekly, float64(i%7)+float64(i/7)) // second week is +1
		yearly = append(yearly, 0)
	}

	r := Aggregate(buildForecast(timestamps, weekly, yearly))

	if len(r.Weekly) != 7 {
		t.Fatalf("Expected 7 weekdays, got %d", len(r.Weekly))
	}
	if got := r.Weekly[time.Monday]; math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Monday: expected 0.5, got %f", got)
	}
	if got := r.Weekly[time.Sunday]; math.Abs(got-6.5) > 1e-12 {
		t.Errorf("Sunday: expected 6.5, got %f", got)
	}

	names := r.WeeklyByName()
	if _, ok := names["Wednesday"]; !ok {
		t.Errorf("Expected weekday names as keys, got %v", names)
	}
}

func TestAggregateMonthlyOnlyPresentMonths(t *testing.T) {
	timestamps := []time.Time{
		time.Date(2021, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 1, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	r := Aggregate(buildForecast(timestamps, []float64{0, 0, 0}, []float64{1, 3, 7}))

	if len(r.Monthly) != 2 {
		t.Fatalf("Expected 2 months, got %d: %v", len(r.Monthly), r.Monthly)
	}
	if got := r.Monthly[time.January]; math.Abs(got-2) > 1e-12 {
		t.Errorf("January: expected 2, got %f", got)
	}
	if got := r.Monthly[time.March]; math.Abs(got-7) > 1e-12 {
		t.Errorf("March: expected 7, got %f", got)
	}

	numbers := r.MonthlyByNumber()
	if _, ok := numbers["3"]; !ok {
		t.Errorf("Expected month numbers as keys, got %v", numbers)
	}

	months := r.Months()
	if len(months) != 2 || months[0] != time.January || months[1] != time.March {
		t.Errorf("Unexpected month order: %v", months)
	}
}

func TestAggregateCollapsesDuplicates(t *testing.T) {
	day := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	timestamps := []time.Time{day, day, day.AddDate(0, 0, 7)}
	r := Aggregate(buildForecast(timestamps, []float64{1, 100, 3}, []float64{1, 100, 3}))

	if got := r.Weekly[day.Weekday()]; math.Abs(got-2) > 1e-12 {
		t.Errorf("Expected duplicate instant to be counted once (mean 2), got %f", got)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	var timestamps []time.Time
	var values []float64
	for i := 0; i < 60; i++ {
		timestamps = append(timestamps, start.AddDate(0, 0, i))
		values = append(values, math.Sin(float64(i)))
	}

	forward := Aggregate(buildForecast(timestamps, values, values))

	revTS := make([]time.Time, len(timestamps))
	revVals := make([]float64, len(values))
	for i := range timestamps {
		revTS[len(timestamps)-1-i] = timestamps[i]
		revVals[len(values)-1-i] = values[i]
	}
	reverse := Aggregate(buildForecast(revTS, revVals, revVals))

	for wd, v := range forward.Weekly {
		if math.Abs(reverse.Weekly[wd]-v) > 1e-12 {
			t.Errorf("%s differs: %f vs %f", wd, v, reverse.Weekly[wd])
		}
	}
	for m, v := range forward.Monthly {
		if math.Abs(reverse.Monthly[m]-v) > 1e-12 {
			t.Errorf("%s differs: %f vs %f", m, v, reverse.Monthly[m])
		}
	}

	if days := forward.Weekdays(); len(days) != 7 || days[0] != time.Sunday {
		t.Errorf("Unexpected weekday order: %v", days)
	}
}
