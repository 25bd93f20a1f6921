package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// AnalysisMetrics records per-analysis counters and score distribution.
// It satisfies the application layer's recorder interface.
type AnalysisMetrics struct {
	analyses metric.Int64Counter
	scores   metric.Int64Histogram
}

// NewAnalysisMetrics registers the instruments on the given provider.
func NewAnalysisMetrics(provider *sdkmetric.MeterProvider, serviceName string) (*AnalysisMetrics, error) {
	meter := provider.Meter(serviceName)

	analyses, err := meter.Int64Counter(
		"credit_analyses_total",
		metric.WithDescription("Completed credit analyses by recommendation"),
	)
	if err != nil {
		return nil, err
	}

	scores, err := meter.Int64Histogram(
		"credit_underwriting_score",
		metric.WithDescription("Distribution of underwriting scores"),
		metric.WithExplicitBucketBoundaries(10, 20, 30, 40, 50, 60, 70, 80, 90, 100),
	)
	if err != nil {
		return nil, err
	}

	return &AnalysisMetrics{analyses: analyses, scores: scores}, nil
}

// RecordAnalysis records one completed analysis.
func (m *AnalysisMetrics) RecordAnalysis(ctx context.Context, recommendation string, score int) {
	attrs := metric.WithAttributes(attribute.String("recommendation", recommendation))
	m.analyses.Add(ctx, 1, attrs)
	m.scores.Record(ctx, int64(score), attrs)
}
