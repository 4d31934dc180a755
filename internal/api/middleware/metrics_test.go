package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmeenKassem/EasyPark/pkg/metrics"
)

func TestMetrics_RecordsHandledRequests(t *testing.T) {
	m := metrics.New("easypark-test")

	r := mux.NewRouter()
	r.Use(Metrics(m))
	r.HandleFunc("/spots/{spotId:[0-9]+}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)
	r.HandleFunc("/spots/search", func(w http.ResponseWriter, _ *http.Request) {
		// No explicit WriteHeader; the recorder must report 200.
		_, _ = w.Write([]byte("[]"))
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/spots/7", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/spots/search", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	count, err := testutil.GatherAndCount(prometheus.DefaultGatherer, "http_requests_total")
	require.NoError(t, err)
	// One series per (method, route template, status) combination.
	assert.Equal(t, 2, count)
}
