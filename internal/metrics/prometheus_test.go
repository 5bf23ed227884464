package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorderCounts(t *testing.T) {
	r := NewPrometheusRecorder()

	r.ObserveSearch("success")
	r.ObserveSearch("success")
	r.ObserveSearch("failed")
	r.ObserveSuggestions("local_fallback")
	r.ObserveProvider("weather", 120*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.searchTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.searchTotal.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.suggestionTotal.WithLabelValues("local_fallback")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.providerDuration))
}

func TestPrometheusRecorderHandler(t *testing.T) {
	r := NewPrometheusRecorder()
	r.ObserveSearch("partial")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `weather_search_total{outcome="partial"} 1`)
}
