package triage

import "github.com/prometheus/client_golang/prometheus"

var (
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_runs_total",
			Help: "Total number of triage runs by the diagnosis rule that fired",
		},
		[]string{"rule"},
	)
	modalityRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_modality_runs_total",
			Help: "Total number of modality analyzer invocations",
		},
		[]string{"modality"},
	)
	runDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triage_run_duration_seconds",
			Help:    "Duration of one orchestration run",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	)
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_http_requests_total",
			Help: "Total number of triage HTTP requests by status code",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(runsTotal)
	prometheus.MustRegister(modalityRunsTotal)
	prometheus.MustRegister(runDuration)
	prometheus.MustRegister(httpRequestsTotal)
}
