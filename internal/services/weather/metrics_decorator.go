package weather

import (
	"context"
	"time"

	"github.com/Nazarious-ucu/weather-cli/internal/models"
)

const (
	fetchOperation = "fetch"
	resultOK       = "ok"
)

type metricsCollector interface {
	ObserveLatency(operation string, duration time.Duration)
	IncrementCounter(operation string, labels ...string)
}

// MetricsClient records latency and outcome of every lookup made through the wrapped client.
type MetricsClient struct {
	next      client
	collector metricsCollector
}

func NewMetricsClient(next client, collector metricsCollector) *MetricsClient {
	return &MetricsClient{next: next, collector: collector}
}

func (m *MetricsClient) Fetch(ctx context.Context, city string) (models.WeatherReport, error) {
	start := time.Now()
	report, err := m.next.Fetch(ctx, city)
	m.collector.ObserveLatency(fetchOperation, time.Since(start))

	if err != nil {
		m.collector.IncrementCounter(fetchOperation, KindOf(err).String())
		return report, err
	}
	m.collector.IncrementCounter(fetchOperation, resultOK)
	return report, nil
}
