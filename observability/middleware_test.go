package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_RecordsRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(Middleware)
	r.HandleFunc("/venues/{id:[0-9]+}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods("DELETE")

	before := testutil.ToFloat64(requestsTotal.WithLabelValues("DELETE", "/venues/{id:[0-9]+}", "204"))

	req := httptest.NewRequest("DELETE", "/venues/12", nil)
	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	after := testutil.ToFloat64(requestsTotal.WithLabelValues("DELETE", "/venues/{id:[0-9]+}", "204"))
	assert.Equal(t, before+1, after)
}

func TestMetricsHandler_ExposesCounters(t *testing.T) {
	requestsTotal.WithLabelValues("GET", "/health", "200").Inc()

	recorder := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, strings.Contains(recorder.Body.String(), "http_requests_total"))
}
