package client

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names recorded by the client.
const (
	meterName = "closurec/client"

	metricRequests      = "closurec.compile.requests"
	metricDuration      = "closurec.compile.duration"
	metricRequestBytes  = "closurec.compile.request.bytes"
	metricResponseBytes = "closurec.compile.response.bytes"
)

// Request outcomes used as the "outcome" attribute.
const (
	outcomeSuccess     = "success"
	outcomeNetwork     = "network_error"
	outcomeParse       = "parse_error"
	outcomeUnavailable = "status_error"
)

// clientMetrics holds the OpenTelemetry instruments for compile requests.
type clientMetrics struct {
	requests      metric.Int64Counter
	duration      metric.Float64Histogram
	requestBytes  metric.Int64Counter
	responseBytes metric.Int64Counter
}

// newClientMetrics creates the instruments on provider, or on the global
// provider when provider is nil.
func newClientMetrics(provider metric.MeterProvider) (*clientMetrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	requests, err := meter.Int64Counter(
		metricRequests,
		metric.WithDescription("Number of compilation requests sent"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		metricDuration,
		metric.WithDescription("Duration of compilation requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestBytes, err := meter.Int64Counter(
		metricRequestBytes,
		metric.WithDescription("Source bytes submitted for compilation"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	responseBytes, err := meter.Int64Counter(
		metricResponseBytes,
		metric.WithDescription("Response bytes received from the compilation service"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &clientMetrics{
		requests:      requests,
		duration:      duration,
		requestBytes:  requestBytes,
		responseBytes: responseBytes,
	}, nil
}

// record records a finished request.
func (m *clientMetrics) record(ctx context.Context, level, outcome string, elapsed time.Duration, sent, received int) {
	attrs := metric.WithAttributes(
		attribute.String("compilation_level", level),
		attribute.String("outcome", outcome),
	)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
	m.requestBytes.Add(ctx, int64(sent), attrs)
	if received > 0 {
		m.responseBytes.Add(ctx, int64(received), attrs)
	}
}
