package tts

import (
	appmetrics "app/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	QueryTime *prometheus.HistogramVec
	Errors    *prometheus.CounterVec
	Fallbacks *prometheus.CounterVec
}

var metrics = &Metrics{
	QueryTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "tts",
		Name:      "request_seconds",
		Buckets:   appmetrics.RequestSecondsBuckets,
	}, []string{"provider"}),
	Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "tts",
		Name:      "errors_total",
	}, []string{"provider", "err_code"}),
	Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "tts",
		Name:      "fallbacks_total",
	}, []string{"provider"}),
}

func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(metrics.QueryTime)
	reg.MustRegister(metrics.Errors)
	reg.MustRegister(metrics.Fallbacks)
}
