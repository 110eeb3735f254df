package stack

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/voxlab/voxstack/internal/config"
)

func reportConfig() *config.Config {
	return &config.Config{
		ProjectName:    "voxstack",
		MonitoringDir:  "monitoring",
		AppPort:        8000,
		PrometheusPort: 9090,
		GrafanaPort:    3000,
	}
}

func TestBuildReportAppOnly(t *testing.T) {
	report := BuildReport(reportConfig(), false, 15*time.Second)

	if len(report.Endpoints) != 3 {
		t.Fatalf("Expected exactly 3 endpoints, got %d", len(report.Endpoints))
	}

	wantURLs := []string{
		"http://localhost:8000",
		"http://localhost:8000/docs",
		"http://localhost:8000/metrics",
	}
	for i, want := range wantURLs {
		if report.Endpoints[i].URL != want {
			t.Errorf("Endpoint %d: expected %s, got %s", i, want, report.Endpoints[i].URL)
		}
	}

	if report.Monitoring {
		t.Error("Expected Monitoring false")
	}

	if report.RunID == "" {
		t.Error("Expected a run ID")
	}

	// Must point at the monitoring variant but not at its URLs
	hints := strings.Join(report.Hints, "\n")
	if !strings.Contains(hints, "monitoring") {
		t.Error("Expected pointer to the monitoring variant in hints")
	}
}

func TestBuildReportMonitoring(t *testing.T) {
	report := BuildReport(reportConfig(), true, 30*time.Second)

	if len(report.Endpoints) != 5 {
		t.Fatalf("Expected exactly 5 endpoints, got %d", len(report.Endpoints))
	}

	urls := make([]string, 0, len(report.Endpoints))
	for _, ep := range report.Endpoints {
		urls = append(urls, ep.URL)
	}
	joined := strings.Join(urls, "\n")

	if !strings.Contains(joined, "http://localhost:9090") {
		t.Error("Expected Prometheus endpoint")
	}
	if !strings.Contains(joined, "http://localhost:3000") {
		t.Error("Expected Grafana endpoint")
	}

	// Grafana carries the default credential hint
	if report.Endpoints[4].Note == "" || !strings.Contains(report.Endpoints[4].Note, "admin/admin") {
		t.Errorf("Expected default credential note on Grafana endpoint, got %q", report.Endpoints[4].Note)
	}
}

func TestPrintReportAppOnly(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, BuildReport(reportConfig(), false, 15*time.Second))
	out := buf.String()

	for _, want := range []string{
		"http://localhost:8000",
		"http://localhost:8000/docs",
		"http://localhost:8000/metrics",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %s", want)
		}
	}

	if strings.Contains(out, "http://localhost:9090") {
		t.Error("App-only report must not contain a Prometheus URL")
	}
	if strings.Contains(out, "http://localhost:3000") {
		t.Error("App-only report must not contain a Grafana URL")
	}
}

func TestPrintReportMonitoring(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, BuildReport(reportConfig(), true, 30*time.Second))
	out := buf.String()

	if !strings.Contains(out, "http://localhost:9090") || !strings.Contains(out, "http://localhost:3000") {
		t.Error("Monitoring report must contain Prometheus and Grafana URLs")
	}
}

func TestWaitBlocksForDuration(t *testing.T) {
	const d = 50 * time.Millisecond

	start := time.Now()
	if err := Wait(context.Background(), d); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	if elapsed := time.Since(start); elapsed < d {
		t.Errorf("Wait returned after %v, expected at least %v", elapsed, d)
	}
}

func TestWaitCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Wait(ctx, time.Minute); err == nil {
		t.Error("Expected context error from cancelled Wait")
	}
}

func TestWaitZeroDuration(t *testing.T) {
	if err := Wait(context.Background(), 0); err != nil {
		t.Errorf("Wait(0) should return immediately, got %v", err)
	}
}

func TestProbe(t *testing.T) {
	t.Run("ready service", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		if err := Probe(context.Background(), srv.URL, 5*time.Second); err != nil {
			t.Errorf("Probe failed against ready service: %v", err)
		}
	})

	t.Run("unreachable service", func(t *testing.T) {
		err := Probe(context.Background(), "http://127.0.0.1:1", 1500*time.Millisecond)
		if err == nil {
			t.Error("Expected error probing unreachable service")
		}
	})
}
