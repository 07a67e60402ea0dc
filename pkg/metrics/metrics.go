package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	jobMatcher = "job_matcher"

	executionsTotal = "executions_total"
	jobsFetched     = "jobs_fetched_total"
	emailsSent      = "emails_sent_total"

	statusLabel = "status"
	sourceLabel = "source"
)

/**
* Metrics definition
**/
var executionsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: jobMatcher,
		Name:      executionsTotal,
		Help:      "number of pipeline executions by terminal status",
	},
	[]string{statusLabel},
)

var jobsFetchedTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: jobMatcher,
		Name:      jobsFetched,
		Help:      "number of jobs fetched by source",
	},
	[]string{sourceLabel},
)

var emailsSentTotalMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: jobMatcher,
		Name:      emailsSent,
		Help:      "number of match digest emails sent",
	},
)

func IncreaseExecutionsTotalMetric(status string) {
	executionsTotalMetric.With(prometheus.Labels{statusLabel: status}).Inc()
}

func AddJobsFetchedMetric(source string, count int) {
	jobsFetchedTotalMetric.With(prometheus.Labels{sourceLabel: source}).Add(float64(count))
}

func IncreaseEmailsSentMetric() {
	emailsSentTotalMetric.Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(executionsTotalMetric)
	prometheus.MustRegister(jobsFetchedTotalMetric)
	prometheus.MustRegister(emailsSentTotalMetric)
}

type PrometheusMetricsHandler struct{}

func NewPrometheusMetricsHandler() *PrometheusMetricsHandler {
	return &PrometheusMetricsHandler{}
}

func (h *PrometheusMetricsHandler) Handler() http.Handler {
	return promhttp.Handler()
}
