// Package metrics exposes Prometheus collectors for the daily job, mail delivery
// and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records application metrics. A nil *Collector is valid and records nothing.
type Collector struct {
	jobRuns      *prometheus.CounterVec
	jobDuration  prometheus.Histogram
	emailsSent   prometheus.Counter
	emailsFailed prometheus.Counter
	httpRequests *prometheus.CounterVec
}

// NewCollector creates a Collector and registers it with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wordofday_job_runs_total",
			Help: "Daily word job runs by outcome",
		}, []string{"outcome"}),
		jobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wordofday_job_duration_seconds",
			Help:    "Duration of daily word job runs",
			Buckets: prometheus.DefBuckets,
		}),
		emailsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wordofday_emails_sent_total",
			Help: "Emails accepted by the SMTP server",
		}),
		emailsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wordofday_emails_failed_total",
			Help: "Email batches abandoned because of a transport error",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wordofday_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		c.jobRuns,
		c.jobDuration,
		c.emailsSent,
		c.emailsFailed,
		c.httpRequests,
	)

	return c
}

// RecordJobRun records a finished job run
func (c *Collector) RecordJobRun(outcome string, duration time.Duration) {
	if c == nil {
		return
	}
	c.jobRuns.WithLabelValues(outcome).Inc()
	c.jobDuration.Observe(duration.Seconds())
}

// RecordEmailSent records one delivered message
func (c *Collector) RecordEmailSent() {
	if c == nil {
		return
	}
	c.emailsSent.Inc()
}

// RecordEmailFailure records an abandoned batch
func (c *Collector) RecordEmailFailure() {
	if c == nil {
		return
	}
	c.emailsFailed.Inc()
}

// RecordHTTPRequest records a served request
func (c *Collector) RecordHTTPRequest(method, route string, status int) {
	if c == nil {
		return
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler returns the Prometheus scrape handler for gatherer
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
