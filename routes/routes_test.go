package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"nichehotel-backend/services"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	registry := prometheus.NewRegistry()
	return SetupRouter(Deps{
		Metrics:  services.NewMetrics(registry),
		Registry: registry,
	})
}

func TestHealthEndpoint(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %s, want ok status", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := testRouter()

	// A request through the middleware chain so the histogram has a sample.
	warm := httptest.NewRecorder()
	r.ServeHTTP(warm, httptest.NewRequest(http.MethodGet, "/health", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("GET /metrics = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "nichehotel_http_request_duration_seconds") {
		t.Error("metrics output is missing the request duration histogram")
	}
}

func TestUnauthenticatedRequestRejected(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("GET /api/bookings without token = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
