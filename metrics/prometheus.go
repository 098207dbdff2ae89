package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type PrometheusRecorder struct {
	counters  *prometheus.CounterVec
	histogram *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the checkout collectors with the default
// registry. Recorders built more than once in a process share the collectors.
func NewPrometheusRecorder() Recorder {
	return NewPrometheusRecorderWith(prometheus.DefaultRegisterer)
}

// NewPrometheusRecorderWith registers the collectors with reg, reusing any
// already registered under the same names.
func NewPrometheusRecorderWith(reg prometheus.Registerer) *PrometheusRecorder {
	counters := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cartcheckout",
			Name:      "events_total",
			Help:      "checkout controller event counters",
		},
		[]string{"type", "phase"},
	)

	histogram := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cartcheckout",
			Name:      "latency_seconds",
			Help:      "checkout controller operation latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "phase"},
	)

	return &PrometheusRecorder{
		counters:  register(reg, counters),
		histogram: register(reg, histogram),
	}
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (p *PrometheusRecorder) IncCounter(name string, labels map[string]string) {
	p.counters.With(prometheus.Labels{
		"type":  name,
		"phase": labels["phase"],
	}).Inc()
}

func (p *PrometheusRecorder) ObserveLatency(name string, d time.Duration, labels map[string]string) {
	p.histogram.With(prometheus.Labels{
		"operation": name,
		"phase":     labels["phase"],
	}).Observe(d.Seconds())
}
