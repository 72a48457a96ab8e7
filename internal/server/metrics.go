package server

import "github.com/prometheus/client_golang/prometheus"

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfoliomgmt_http_requests_total",
		Help: "HTTP requests served, by method and status code.",
	}, []string{"method", "code"})

	directoryOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfoliomgmt_directory_operations_total",
		Help: "Directory operations, by operation and outcome.",
	}, []string{"op", "outcome"})
)

func init() {
	prometheus.MustRegister(httpRequests, directoryOps)
}

func countOp(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	directoryOps.WithLabelValues(op, outcome).Inc()
}
