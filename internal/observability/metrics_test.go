package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/superbiz-erp/superbiz-erp/internal/observability"
	_ "github.com/superbiz-erp/superbiz-erp/testing"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	metrics := observability.NewMetrics()

	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/dashboard", "/dashboard", "/missing"} {
		res := httptest.NewRecorder()
		r.ServeHTTP(res, httptest.NewRequest(http.MethodGet, path, nil))
	}

	res := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics endpoint, got %d", res.Code)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	output := string(body)

	if !strings.Contains(output, `superbiz_http_requests_total{code="200",route="/dashboard"} 2`) {
		t.Fatalf("expected dashboard request count in output:\n%s", output)
	}
	if !strings.Contains(output, `superbiz_http_requests_total{code="404",route="/missing"} 1`) {
		t.Fatalf("expected missing route count in output:\n%s", output)
	}
	if !strings.Contains(output, "superbiz_http_request_duration_seconds") {
		t.Fatalf("expected duration histogram in output")
	}
}

func TestNilMetricsIsInert(t *testing.T) {
	var metrics *observability.Metrics

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	res := httptest.NewRecorder()
	metrics.Middleware(next).ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))
	if res.Code != http.StatusOK {
		t.Fatalf("expected passthrough, got %d", res.Code)
	}

	res = httptest.NewRecorder()
	metrics.Handler().ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 from nil metrics handler, got %d", res.Code)
	}
}
