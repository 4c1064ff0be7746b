package analysis

import (
	"time"

	"github.com/sartorproj/goseason/forecast"
	"github.com/sartorproj/goseason/seasonality"
	"github.com/sartorproj/goseason/stats"
	"github.com/sartorproj/goseason/timeseries"
)

// PreviewSize is the number of most recent rows shown in the preview.
const PreviewSize = 30

const dateLayout = "2006-01-02"

// Report is the result of one analysis. It is built once and never mutated.
type Report struct {
	TotalRecords    int              `json:"total_records"`
	TrainingRecords int              `json:"training_records"`
	TestingRecords  int              `json:"testing_records"`
	DateRange       DateRange        `json:"date_range"`
	ModelMetrics    ModelMetrics     `json:"model_metrics"`
	Seasonality     SeasonalityShape `json:"seasonality"`
	BasicStats      BasicStats       `json:"basic_stats"`
	Diagnostics     *Diagnostics     `json:"diagnostics,omitempty"`
	Preview         Preview          `json:"preview"`
}

// DateRange is the first and last date of the full series.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ModelMetrics holds accuracy over the evaluation segment.
type ModelMetrics struct {
	MAPE float64 `json:"mape"`
	RMSE float64 `json:"rmse"`
}

// SeasonalityShape holds the averaged seasonal contributions, keyed by
// weekday name and month number.
type SeasonalityShape struct {
	Weekly  map[string]float64 `json:"weekly"`
	Monthly map[string]float64 `json:"monthly"`
}

// BasicStats summarises the observed values.
type BasicStats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Diagnostics describes the in-sample residuals of the fitted model.
// SignificantLags lists the lags whose residual autocorrelation falls
// outside the 95% bound; it is empty, never null.
type Diagnostics struct {
	LjungBoxStatistic float64 `json:"ljung_box_statistic"`
	LjungBoxPValue    float64 `json:"ljung_box_p_value"`
	Lags              int     `json:"lags"`
	DurbinWatson      float64 `json:"durbin_watson"`
	SignificantLags   []int   `json:"significant_lags"`
}

// Preview shows the most recent actual values next to the forecast.
// All slices have the same length.
type Preview struct {
	Dates      []string  `json:"dates"`
	Actual     []float64 `json:"actual"`
	Predicted  []float64 `json:"predicted"`
	LowerBound []float64 `json:"lower_bound"`
	UpperBound []float64 `json:"upper_bound"`
}

// assembly collects the pipeline outputs the report is shaped from.
type assembly struct {
	series      *timeseries.Series
	split       *timeseries.Split
	accuracy    *stats.Accuracy
	seasonality *seasonality.Report
	frame       *forecast.Forecast
	diagnostics *Diagnostics
}

// assemble shapes pipeline outputs into a Report. It performs no
// computation beyond formatting and truncation.
func assemble(a assembly) *Report {
	return &Report{
		TotalRecords:    a.series.Len(),
		TrainingRecords: a.split.Training.Len(),
		TestingRecords:  a.split.Evaluation.Len(),
		DateRange: DateRange{
			Start: formatDate(a.series.Start()),
			End:   formatDate(a.series.End()),
		},
		ModelMetrics: ModelMetrics{
			MAPE: a.accuracy.MAPE,
			RMSE: a.accuracy.RMSE,
		},
		Seasonality: SeasonalityShape{
			Weekly:  a.seasonality.WeeklyByName(),
			Monthly: a.seasonality.MonthlyByNumber(),
		},
		BasicStats: BasicStats{
			Mean: a.series.Mean(),
			Std:  a.series.Std(),
			Min:  a.series.Min(),
			Max:  a.series.Max(),
		},
		Diagnostics: a.diagnostics,
		Preview:     buildPreview(a.series, a.frame),
	}
}

// buildPreview pairs the last rows of the observed series with the last
// rows of the forecast frame, which covers training history followed by the
// evaluation horizon. It is truncated to the shorter of the two and to
// PreviewSize.
func buildPreview(series *timeseries.Series, frame *forecast.Forecast) Preview {
	n := min(PreviewSize, series.Len(), frame.Len())
	observed := series.Tail(n)
	fc := frame.Tail(n)

	p := Preview{
		Dates:      make([]string, n),
		Actual:     make([]float64, n),
		Predicted:  make([]float64, n),
		LowerBound: make([]float64, n),
		UpperBound: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		p.Dates[i] = formatDate(observed.Timestamps[i])
		p.Actual[i] = observed.Values[i]
		p.Predicted[i] = fc.Point[i]
		p.LowerBound[i] = fc.Lower[i]
		p.UpperBound[i] = fc.Upper[i]
	}
	return p
}

func formatDate(ts time.Time) string {
	return ts.Format(dateLayout)
}
