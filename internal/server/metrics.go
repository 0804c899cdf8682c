package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Estimate outcomes recorded in potency_estimates_total.
const (
	outcomeSuccess = "success"
)

type metrics struct {
	estimates       *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	predictions     *prometheus.CounterVec
}

func newMetrics(reg *prometheus.Registry) *metrics {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &metrics{
		// Labels: outcome (success, validation, computation, internal)
		estimates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "potency",
			Name:      "estimates_total",
			Help:      "Relative potency estimates by outcome",
		}, []string{"outcome"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "potency",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route", "method", "status"}),

		// Labels: model (doe, cytokine, stability)
		predictions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "potency",
			Name:      "predictions_total",
			Help:      "Formula predictions served by model",
		}, []string{"model"}),
	}
}
