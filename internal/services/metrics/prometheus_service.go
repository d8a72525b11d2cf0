package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "weather_cli"

// PromCollector keeps lookup metrics for one CLI session in its own registry.
// A short-lived process cannot be scraped, so the registry is pushed on exit.
type PromCollector struct {
	reg  *prometheus.Registry
	hist *prometheus.HistogramVec
	cnt  *prometheus.CounterVec
}

func NewPromCollector() *PromCollector {
	hist := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_duration_seconds",
			Help:      "Weather lookup latencies",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	cnt := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Weather lookups by outcome",
		},
		[]string{"operation", "result"},
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(hist, cnt)

	return &PromCollector{reg: reg, hist: hist, cnt: cnt}
}

func (p *PromCollector) ObserveLatency(op string, d time.Duration) {
	p.hist.WithLabelValues(op).Observe(d.Seconds())
}

func (p *PromCollector) IncrementCounter(op string, labels ...string) {
	p.cnt.WithLabelValues(append([]string{op}, labels...)...).Inc()
}

func (p *PromCollector) Registry() *prometheus.Registry {
	return p.reg
}

// Push sends the session metrics to a Prometheus Pushgateway.
func (p *PromCollector) Push(ctx context.Context, gatewayURL, job string) error {
	if err := push.New(gatewayURL, job).Gatherer(p.reg).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", gatewayURL, err)
	}
	return nil
}
