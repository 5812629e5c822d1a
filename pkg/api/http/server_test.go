package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	metricsprom "github.com/opsbench/devops-api/pkg/adapters/metrics/prometheus"
)

const testVersion = "1.0.0"

func newTestServer(t *testing.T) *Server {
	t.Helper()

	registry := prometheus.NewRegistry()

	return NewServer(&Config{
		Addr:     ":0",
		Version:  testVersion,
		Registry: registry,
		Metrics:  metricsprom.NewCollector(registry),
		Logger:   zap.NewNop(),
	})
}

func doRequest(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, http.NoBody)
	s.Handler().ServeHTTP(w, req)

	return w
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	// A prior request so the scrape has at least one sample.
	doRequest(t, s, http.MethodGet, "/health")

	w := doRequest(t, s, http.MethodGet, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	contentType := w.Header().Get("Content-Type")
	if !strings.HasPrefix(contentType, "text/plain") {
		t.Fatalf("expected Prometheus text exposition Content-Type, got %q", contentType)
	}

	body, err := io.ReadAll(w.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !strings.Contains(string(body), "devopsapi_http_requests_total") {
		t.Fatalf("expected at least one request counter sample, got:\n%s", body)
	}
}

func TestMetricsCountRequestsExactly(t *testing.T) {
	s := newTestServer(t)

	const n = 5
	for i := 0; i < n; i++ {
		doRequest(t, s, http.MethodGet, "/health")
	}

	sample := `devopsapi_http_requests_total{method="GET",path="/health",status="200"} 5`

	w := doRequest(t, s, http.MethodGet, "/metrics")
	if !strings.Contains(w.Body.String(), sample) {
		t.Fatalf("expected sample %q in exposition:\n%s", sample, w.Body.String())
	}

	// Scraping must not mutate other routes' counters.
	w = doRequest(t, s, http.MethodGet, "/metrics")
	if !strings.Contains(w.Body.String(), sample) {
		t.Fatalf("scrape mutated /health counter:\n%s", w.Body.String())
	}
}

func TestUnmatchedRouteReturns404(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/no/such/route")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	sample := `devopsapi_http_requests_total{method="GET",path="unmatched",status="404"} 1`

	w = doRequest(t, s, http.MethodGet, "/metrics")
	if !strings.Contains(w.Body.String(), sample) {
		t.Fatalf("expected unmatched sample %q in exposition:\n%s", sample, w.Body.String())
	}
}

func TestConcurrentHealthRequests(t *testing.T) {
	s := newTestServer(t)

	const workers = 50

	var wg sync.WaitGroup
	codes := make([]int, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
			s.Handler().ServeHTTP(w, req)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		if code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, code)
		}
	}
}

func TestRequestIDAssigned(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/health")
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
}

func TestRequestIDPreserved(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	req.Header.Set("X-Request-ID", "req-123")
	s.Handler().ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("expected client request ID to be preserved, got %q", got)
	}
}
