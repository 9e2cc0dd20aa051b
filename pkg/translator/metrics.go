package translator

import (
	appmetrics "app/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	QueryTime prometheus.Histogram
	Errors    *prometheus.CounterVec
}

var metrics = &Metrics{
	QueryTime: prometheus.NewHistogram(prometheus.HistogramOpts{
		Subsystem: "translator",
		Name:      "request_seconds",
		Buckets:   appmetrics.RequestSecondsBuckets,
	}),
	Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "translator",
		Name:      "errors_total",
	}, []string{"err_code"}),
}

func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(metrics.QueryTime)
	reg.MustRegister(metrics.Errors)
}
