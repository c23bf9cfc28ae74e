// Package telemetry sets up the in-process OpenTelemetry meter provider.
// Metrics are collected on demand and written to the debug log at the end of
// a run; nothing is exported over the network.
package telemetry

import (
	"closurec/internal/application/common/slogger"
	"closurec/internal/version"
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/instrumentation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
)

// ServiceName is reported as the service.name resource attribute.
const ServiceName = "closurec"

// Metrics owns a meter provider and the reader it is collected through.
type Metrics struct {
	provider *sdkmetric.MeterProvider
	reader   *sdkmetric.ManualReader
}

// New creates a meter provider with a manual reader.
func New() *Metrics {
	reader := sdkmetric.NewManualReader()
	res := resource.NewSchemaless(
		attribute.String("service.name", ServiceName),
		attribute.String("service.version", version.GetVersion().Version),
	)
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)
	return &Metrics{provider: provider, reader: reader}
}

// MeterProvider returns the provider instruments should be created on.
func (m *Metrics) MeterProvider() metric.MeterProvider {
	return m.provider
}

// Snapshot returns every recorded data point keyed by
// "<scope>/<instrument>" with its value flattened to a float.
func (m *Metrics) Snapshot(ctx context.Context) (map[string]float64, error) {
	var rm metricdata.ResourceMetrics
	if err := m.reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("failed to collect metrics: %w", err)
	}

	out := make(map[string]float64)
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			key := metricKey(sm.Scope, md.Name)
			switch data := md.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					out[key] += float64(dp.Value)
				}
			case metricdata.Sum[float64]:
				for _, dp := range data.DataPoints {
					out[key] += dp.Value
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					out[key+".sum"] += dp.Sum
					out[key+".count"] += float64(dp.Count)
				}
			}
		}
	}
	return out, nil
}

// LogSnapshot writes the current metrics to the debug log.
func (m *Metrics) LogSnapshot(ctx context.Context) {
	snapshot, err := m.Snapshot(ctx)
	if err != nil {
		slogger.ErrorWithError(ctx, err, "failed to collect metrics", nil)
		return
	}
	fields := make(slogger.Fields, len(snapshot))
	for k, v := range snapshot {
		fields[k] = v
	}
	slogger.Debug(ctx, "run metrics", fields)
}

// Shutdown flushes and releases the provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}

func metricKey(scope instrumentation.Scope, name string) string {
	return scope.Name + "/" + name
}
