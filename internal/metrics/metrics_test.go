package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordJobRun("sent", 2*time.Second)
	c.RecordJobRun("sent", time.Second)
	c.RecordJobRun("aborted_no_word", time.Millisecond)
	c.RecordEmailSent()
	c.RecordEmailSent()
	c.RecordEmailFailure()
	c.RecordHTTPRequest("POST", "/users/", 201)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.jobRuns.WithLabelValues("sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.jobRuns.WithLabelValues("aborted_no_word")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.emailsSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.emailsFailed))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("POST", "/users/", "201")))
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.RecordJobRun("sent", time.Second)
		c.RecordEmailSent()
		c.RecordEmailFailure()
		c.RecordHTTPRequest("GET", "/", 200)
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordEmailSent()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wordofday_emails_sent_total 1")
}
