package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(fallbacks.WithLabelValues("chart_data"))
	IncFallback("chart_data")
	IncFallback("chart_data")
	if got := testutil.ToFloat64(fallbacks.WithLabelValues("chart_data")) - before; got != 2 {
		t.Fatalf("expected 2 fallbacks, got %v", got)
	}

	beforeFail := testutil.ToFloat64(analyzerInvocations.WithLabelValues("json", "failure"))
	IncInvocation("json", false)
	if got := testutil.ToFloat64(analyzerInvocations.WithLabelValues("json", "failure")) - beforeFail; got != 1 {
		t.Fatalf("expected 1 failed invocation, got %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncAttempt("python3", "spawn_error")
	ObserveAnalyzerDuration("transcript", 1500*time.Millisecond)
	ObserveHTTPRequest(http.MethodGet, "/api/run", http.StatusOK, 20*time.Millisecond)

	r := gin.New()
	r.GET("/metrics", Handler())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{
		`analyzer_candidate_attempts_total{command="python3",outcome="spawn_error"}`,
		`analyzer_duration_seconds_bucket{mode="transcript",le="2"}`,
		`http_requests_total{method="GET",route="/api/run",status="200"}`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected metrics output to contain %q", want)
		}
	}
}
