// Package seasonality aggregates model seasonal components by calendar unit.
//
// Weekly contributions are averaged per weekday and yearly contributions per
// calendar month. Keys are time.Weekday and time.Month, so grouping never
// depends on locale-specific formatting; only units present in the input
// appear in the result.
package seasonality

import (
	"slices"
	"strconv"
	"time"

	"github.com/sartorproj/goseason/forecast"
)

// Report holds the averaged seasonal contributions.
type Report struct {
	Weekly  map[time.Weekday]float64
	Monthly map[time.Month]float64
}

type accumulator struct {
	sum   float64
	count int
}

func (a *accumulator) add(v float64) {
	a.sum += v
	a.count++
}

func (a accumulator) mean() float64 {
	return a.sum / float64(a.count)
}

// Aggregate groups the forecast's weekly component by weekday and yearly
// component by month and returns the arithmetic mean of each group.
// Rows sharing the same instant are counted once.
func Aggregate(fc *forecast.Forecast) *Report {
	weekly := make(map[time.Weekday]*accumulator)
	monthly := make(map[time.Month]*accumulator)
	seen := make(map[time.Time]struct{}, fc.Len())

	for i, ts := range fc.Timestamps {
		key := ts.UTC()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		wd := ts.Weekday()
		if weekly[wd] == nil {
			weekly[wd] = &accumulator{}
		}
		weekly[wd].add(fc.Weekly[i])

		m := ts.Month()
		if monthly[m] == nil {
			monthly[m] = &accumulator{}
		}
		monthly[m].add(fc.Yearly[i])
	}

	r := &Report{
		Weekly:  make(map[time.Weekday]float64, len(weekly)),
		Monthly: make(map[time.Month]float64, len(monthly)),
	}
	for wd, acc := range weekly {
		r.Weekly[wd] = acc.mean()
	}
	for m, acc := range monthly {
		r.Monthly[m] = acc.mean()
	}
	return r
}

// WeeklyByName returns the weekly pattern keyed by English weekday name.
func (r *Report) WeeklyByName() map[string]float64 {
	out := make(map[string]float64, len(r.Weekly))
	for _, wd := range r.Weekdays() {
		out[wd.String()] = r.Weekly[wd]
	}
	return out
}

// MonthlyByNumber returns the monthly pattern keyed by month number ("1".."12").
func (r *Report) MonthlyByNumber() map[string]float64 {
	out := make(map[string]float64, len(r.Monthly))
	for _, m := range r.Months() {
		out[strconv.Itoa(int(m))] = r.Monthly[m]
	}
	return out
}

// Weekdays returns the weekdays present, Sunday first.
func (r *Report) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 0, len(r.Weekly))
	for wd := range r.Weekly {
		days = append(days, wd)
	}
	slices.Sort(days)
	return days
}

// Months returns the months present in calendar order.
func (r *Report) Months() []time.Month {
	months := make([]time.Month, 0, len(r.Monthly))
	for m := range r.Monthly {
		months = append(months, m)
	}
	slices.Sort(months)
	return months
}
