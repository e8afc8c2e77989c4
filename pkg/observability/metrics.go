package observability

import (
	"context"
	"fmt"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics wires an OpenTelemetry meter provider to a Prometheus registry so
// that recorded measurements are exposed on the standard /metrics endpoint.
type Metrics struct {
	registry *promclient.Registry
	provider *sdkmetric.MeterProvider
	meter    metric.Meter
}

// NewMetrics creates a Metrics instance for the given service.
func NewMetrics(serviceName string) (*Metrics, error) {
	registry := promclient.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("observability: create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	return &Metrics{
		registry: registry,
		provider: provider,
		meter:    provider.Meter(serviceName),
	}, nil
}

// Meter returns the meter for recording measurements.
func (m *Metrics) Meter() metric.Meter {
	return m.meter
}

// Handler returns the HTTP handler serving the Prometheus scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Shutdown flushes and stops the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}
