package analysis

import (
	"context"
	"io"
	"math"
	"slices"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/goseason/forecast"
	"github.com/sartorproj/goseason/seasonality"
	"github.com/sartorproj/goseason/stats"
	"github.com/sartorproj/goseason/timeseries"
)

const tracerName = "github.com/sartorproj/goseason/analysis"

// diagnosticLags is the maximum lag tested on training residuals.
const diagnosticLags = 10

// Analyzer runs the pipeline. It holds no per-request state and is safe for
// concurrent use; every call fits a fresh model.
type Analyzer struct {
	model  forecast.Model
	logger *logrus.Logger
	tracer trace.Tracer
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithModel replaces the forecasting model.
func WithModel(m forecast.Model) Option {
	return func(a *Analyzer) { a.model = m }
}

// WithLogger sets the logger used for stage diagnostics.
func WithLogger(l *logrus.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithTracerProvider sets the tracer provider used for stage spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(a *Analyzer) { a.tracer = tp.Tracer(tracerName) }
}

// New creates an Analyzer using the additive model by default.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		model:  forecast.NewAdditive(nil),
		tracer: noop.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logrus.New()
		a.logger.SetOutput(io.Discard)
	}
	return a
}

// Analyze reads a ds,y CSV table from r and analyzes it.
func (a *Analyzer) Analyze(ctx context.Context, r io.Reader) (*Report, error) {
	ctx, span := a.tracer.Start(ctx, "analysis.Analyze")
	defer span.End()

	table, err := timeseries.ReadTable(r)
	if err != nil {
		return nil, fail(span, err)
	}
	return a.run(ctx, span, table)
}

// AnalyzeTable analyzes an already-parsed table.
func (a *Analyzer) AnalyzeTable(ctx context.Context, table *timeseries.Table) (*Report, error) {
	ctx, span := a.tracer.Start(ctx, "analysis.AnalyzeTable")
	defer span.End()

	return a.run(ctx, span, table)
}

func (a *Analyzer) run(ctx context.Context, span trace.Span, table *timeseries.Table) (*Report, error) {
	series, err := timeseries.Validate(table)
	if err != nil {
		return nil, fail(span, err)
	}

	split, err := timeseries.SplitChronological(series)
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(
		attribute.Int("series.total", series.Len()),
		attribute.Int("series.training", split.Training.Len()),
		attribute.Int("series.evaluation", split.Evaluation.Len()),
	)
	a.logger.WithFields(logrus.Fields{
		"total":      series.Len(),
		"training":   split.Training.Len(),
		"evaluation": split.Evaluation.Len(),
	}).Debug("Series validated and split")

	_, fitSpan := a.tracer.Start(ctx, "forecast.Fit")
	fitted, err := a.model.Fit(split.Training)
	if err != nil {
		fitSpan.End()
		return nil, fail(span, fail(fitSpan, err))
	}
	fitSpan.End()

	_, predictSpan := a.tracer.Start(ctx, "forecast.Predict")
	frame, err := fitted.Predict(slices.Concat(split.Training.Timestamps, fitted.Horizon(split.Evaluation.Len())))
	if err != nil {
		predictSpan.End()
		return nil, fail(span, fail(predictSpan, err))
	}
	components, err := fitted.Predict(series.DistinctTimestamps())
	if err != nil {
		predictSpan.End()
		return nil, fail(span, fail(predictSpan, err))
	}
	predictSpan.End()

	predicted := frame.Tail(split.Evaluation.Len()).Point
	accuracy, err := stats.Score(split.Evaluation.Values, predicted)
	if err != nil {
		return nil, fail(span, err)
	}
	a.logger.WithFields(logrus.Fields{
		"mape": accuracy.MAPE,
		"rmse": accuracy.RMSE,
	}).Debug("Model scored on evaluation segment")

	report := assemble(assembly{
		series:      series,
		split:       split,
		accuracy:    accuracy,
		seasonality: seasonality.Aggregate(components),
		frame:       frame,
		diagnostics: diagnose(split.Training, fitted.Residuals()),
	})

	span.SetAttributes(
		attribute.Float64("metrics.mape", accuracy.MAPE),
		attribute.Float64("metrics.rmse", accuracy.RMSE),
	)
	return report, nil
}

// diagnose tests the training residuals for autocorrelation. It returns nil
// when the test is not meaningful: too few rows or residuals that are zero
// up to rounding.
func diagnose(train *timeseries.Series, residuals []float64) *Diagnostics {
	if len(residuals) < stats.MinResidualRows {
		return nil
	}
	scale := math.Max(1, math.Abs(train.Mean()))
	if math.Sqrt(stat.Variance(residuals, nil)) <= 1e-9*scale {
		return nil
	}

	lb, err := stats.LjungBox(residuals, diagnosticLags, 0)
	if err != nil {
		return nil
	}
	dw, ok := stats.DurbinWatson(residuals)
	if !ok {
		return nil
	}

	acf := stats.ACF(timeseries.New(residuals), lb.Lags)
	significant := stats.SignificantLags(acf, stats.ConfidenceBound(len(residuals)))

	return &Diagnostics{
		LjungBoxStatistic: lb.Statistic,
		LjungBoxPValue:    lb.PValue,
		Lags:              lb.Lags,
		DurbinWatson:      dw,
		SignificantLags:   significant,
	}
}

// fail marks span as failed and returns err unchanged.
func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
