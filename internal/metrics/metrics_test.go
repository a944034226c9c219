package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNew_CountersIncrement(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.UploadsTotal.WithLabelValues("PICGO", OutcomeSuccess).Inc()
	m.UploadsTotal.WithLabelValues("PICGO", OutcomeSuccess).Inc()
	m.BatchPending.Set(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.UploadsTotal.WithLabelValues("PICGO", OutcomeSuccess)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.BatchPending))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.CatalogMerges.WithLabelValues("single", OutcomeSuccess).Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `forward_catalog_merge_total{outcome="success",path="single"} 1`)
}
