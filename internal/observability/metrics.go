package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CalculatorCollector bundles the Prometheus metrics for the calculator
// surface: per-operation request counts and latencies.
type CalculatorCollector struct {
	gatherer prometheus.Gatherer

	Calculations         *prometheus.CounterVec
	CalculationDurations *prometheus.HistogramVec
}

// NewCalculatorCollector registers the calculator metrics against the
// provided registerer, defaulting to the global Prometheus registry
// when nil.
func NewCalculatorCollector(reg prometheus.Registerer) (*CalculatorCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	calculations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "calculator_requests_total",
		Help: "Total number of calculator invocations, labeled by solved quantity and error code.",
	}, []string{"operation", "code"})
	calculations, err := registerCounterVec(reg, calculations, "calculator_requests_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "calculator_request_duration_seconds",
		Help:    "Calculator invocation latency in seconds.",
		Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	}, []string{"operation"})
	durations, err = registerHistogramVec(reg, durations, "calculator_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &CalculatorCollector{
		gatherer:             gatherer,
		Calculations:         calculations,
		CalculationDurations: durations,
	}, nil
}

// Observe records one calculator invocation. code is "ok" on success,
// otherwise the application error code.
func (c *CalculatorCollector) Observe(operation, code string, start time.Time) {
	if c == nil {
		return
	}
	if c.Calculations != nil {
		c.Calculations.WithLabelValues(operation, code).Inc()
	}
	if c.CalculationDurations != nil {
		c.CalculationDurations.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *CalculatorCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
