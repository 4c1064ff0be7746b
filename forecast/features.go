package forecast

import (
	"math"
	"time"
)

// Seasonality describes one additive Fourier seasonal cycle.
type Seasonality struct {
	Name         string
	Period       float64 // Period in days
	FourierOrder int     // Number of sine/cosine pairs
}

// Weekly and yearly cycles. Daily seasonality is never modelled.
var (
	WeeklySeasonality = Seasonality{Name: "weekly", Period: 7, FourierOrder: 3}
	YearlySeasonality = Seasonality{Name: "yearly", Period: 365.25, FourierOrder: 10}
)

// columns returns the number of design matrix columns for the cycle.
func (s Seasonality) columns() int {
	return 2 * s.FourierOrder
}

// period returns the cycle length as a duration.
func (s Seasonality) period() time.Duration {
	return time.Duration(s.Period * 24 * float64(time.Hour))
}

// identifiable returns s unchanged when coverage spans at least one full
// period, and a cycle without Fourier terms otherwise. A cycle longer than
// the training window cannot be separated from the trend.
func (s Seasonality) identifiable(coverage time.Duration) Seasonality {
	if coverage < s.period() {
		s.FourierOrder = 0
	}
	return s
}

// fill writes the Fourier terms for ts into dst, which must have
// s.columns() elements. Terms use absolute time, so a timestamp always gets
// the same basis regardless of the training window.
func (s Seasonality) fill(dst []float64, ts time.Time) {
	days := epochDays(ts)
	for k := 1; k <= s.FourierOrder; k++ {
		angle := 2 * math.Pi * float64(k) * days / s.Period
		dst[2*(k-1)] = math.Sin(angle)
		dst[2*(k-1)+1] = math.Cos(angle)
	}
}

// epochDays returns fractional days since the Unix epoch.
func epochDays(ts time.Time) float64 {
	const secondsPerDay = 86400
	return float64(ts.Unix())/secondsPerDay + float64(ts.Nanosecond())/(secondsPerDay*1e9)
}

// layout records where each block of the design matrix starts and which
// seasonal cycles it carries.
type layout struct {
	changepoints int
	weekly       Seasonality
	yearly       Seasonality
	weeklyStart  int
	yearlyStart  int
	width        int
}

func newLayout(changepoints int, weekly, yearly Seasonality) layout {
	l := layout{changepoints: changepoints, weekly: weekly, yearly: yearly}
	l.weeklyStart = 2 + changepoints
	l.yearlyStart = l.weeklyStart + weekly.columns()
	l.width = l.yearlyStart + yearly.columns()
	return l
}

// fillRow writes the design row for ts into dst. t is ts on the scaled
// training clock and cps are changepoint locations on the same clock.
func (l layout) fillRow(dst []float64, ts time.Time, t float64, cps []float64) {
	dst[0] = 1
	dst[1] = t
	for j, s := range cps {
		dst[2+j] = math.Max(0, t-s)
	}
	l.weekly.fill(dst[l.weeklyStart:l.yearlyStart], ts)
	l.yearly.fill(dst[l.yearlyStart:l.width], ts)
}

// modalStep returns the most frequent positive gap between consecutive
// timestamps. Ties resolve to the smaller gap. Without any positive gap it
// falls back to one day.
func modalStep(timestamps []time.Time) time.Duration {
	counts := make(map[time.Duration]int)
	for i := 1; i < len(timestamps); i++ {
		if d := timestamps[i].Sub(timestamps[i-1]); d > 0 {
			counts[d]++
		}
	}

	best, bestCount := time.Duration(0), 0
	for d, c := range counts {
		if c > bestCount || (c == bestCount && d < best) {
			best, bestCount = d, c
		}
	}
	if best == 0 {
		return 24 * time.Hour
	}
	return best
}
