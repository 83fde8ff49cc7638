package apiclient

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	endpointList       = "list"
	endpointSignup     = "signup"
	endpointUnregister = "unregister"

	outcomeOK        = "ok"
	outcomeRejected  = "rejected"
	outcomeTransport = "transport_error"
	outcomeDecode    = "decode_error"
)

var (
	requestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activities_ui",
		Subsystem: "backend",
		Name:      "requests_total",
		Help:      "Number of backend calls grouped by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "activities_ui",
		Subsystem: "backend",
		Name:      "request_duration_seconds",
		Help:      "Latency of backend calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})
)

func init() {
	prometheus.MustRegister(requestCounter, requestDuration)
}

func recordRequest(endpoint, outcome string, seconds float64) {
	requestCounter.WithLabelValues(endpoint, outcome).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(seconds)
}
