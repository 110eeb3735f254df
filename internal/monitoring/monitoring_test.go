package monitoring

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestNewPrometheusConfig(t *testing.T) {
	cfg := NewPrometheusConfig("whisper-api", 8000)

	if cfg.Global.ScrapeInterval != "15s" {
		t.Errorf("Expected global scrape interval 15s, got %s", cfg.Global.ScrapeInterval)
	}

	if len(cfg.ScrapeConfigs) != 2 {
		t.Fatalf("Expected 2 scrape configs, got %d", len(cfg.ScrapeConfigs))
	}

	app := cfg.ScrapeConfigs[0]
	if app.JobName != "whisper-api" {
		t.Errorf("Expected job whisper-api, got %s", app.JobName)
	}
	if app.ScrapeInterval != "5s" {
		t.Errorf("Expected app scrape interval 5s, got %s", app.ScrapeInterval)
	}
	if app.MetricsPath != "/metrics" {
		t.Errorf("Expected metrics path /metrics, got %s", app.MetricsPath)
	}
	if len(app.StaticConfigs) != 1 || app.StaticConfigs[0].Targets[0] != "whisper-api:8000" {
		t.Errorf("Unexpected app targets: %+v", app.StaticConfigs)
	}

	self := cfg.ScrapeConfigs[1]
	if self.JobName != "prometheus" {
		t.Errorf("Expected prometheus self-scrape job, got %s", self.JobName)
	}
}

func TestWritePrometheusConfig(t *testing.T) {
	dir := t.TempDir()

	path, err := WritePrometheusConfig(dir, NewPrometheusConfig("whisper-api", 8000))
	if err != nil {
		t.Fatalf("WritePrometheusConfig failed: %v", err)
	}

	if filepath.Base(path) != "prometheus.yml" {
		t.Errorf("Unexpected file name: %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read rendered config: %v", err)
	}

	// The document must round-trip through a YAML parser
	var parsed PrometheusConfig
	if err := yaml.Unmarshal(content, &parsed); err != nil {
		t.Fatalf("Rendered config is not valid YAML: %v", err)
	}

	if !strings.Contains(string(content), "scrape_interval: 15s") {
		t.Error("Expected global scrape_interval in rendered config")
	}
	if !strings.Contains(string(content), "whisper-api:8000") {
		t.Error("Expected app target in rendered config")
	}
}

func TestWritePrometheusConfigIsRerunnable(t *testing.T) {
	dir := t.TempDir()
	cfg := NewPrometheusConfig("whisper-api", 8000)

	first, err := WritePrometheusConfig(dir, cfg)
	if err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	firstContent, _ := os.ReadFile(first)

	second, err := WritePrometheusConfig(dir, cfg)
	if err != nil {
		t.Fatalf("Second write failed: %v", err)
	}
	secondContent, _ := os.ReadFile(second)

	if string(firstContent) != string(secondContent) {
		t.Error("Expected deterministic output across runs")
	}
}

func TestWriteGrafanaProvisioning(t *testing.T) {
	dir := t.TempDir()

	written, err := WriteGrafanaProvisioning(dir, "http://prometheus:9090")
	if err != nil {
		t.Fatalf("WriteGrafanaProvisioning failed: %v", err)
	}

	if len(written) != 3 {
		t.Fatalf("Expected 3 provisioning files, got %d", len(written))
	}

	for _, path := range written {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected %s to exist: %v", path, err)
		}
	}

	t.Run("datasource", func(t *testing.T) {
		content, err := os.ReadFile(filepath.Join(dir, "grafana", "provisioning", "datasources", "datasource.yml"))
		if err != nil {
			t.Fatalf("Failed to read datasource: %v", err)
		}

		var ds DatasourceFile
		if err := yaml.Unmarshal(content, &ds); err != nil {
			t.Fatalf("Datasource is not valid YAML: %v", err)
		}

		if len(ds.Datasources) != 1 || ds.Datasources[0].URL != "http://prometheus:9090" {
			t.Errorf("Unexpected datasource: %+v", ds.Datasources)
		}
		if !ds.Datasources[0].IsDefault {
			t.Error("Expected Prometheus datasource to be the default")
		}
	})

	t.Run("dashboard", func(t *testing.T) {
		content, err := os.ReadFile(filepath.Join(dir, "grafana", "dashboards", "whisper.json"))
		if err != nil {
			t.Fatalf("Failed to read dashboard: %v", err)
		}

		var dash Dashboard
		if err := json.Unmarshal(content, &dash); err != nil {
			t.Fatalf("Dashboard is not valid JSON: %v", err)
		}

		if dash.Title != "Whisper Transcription Service" {
			t.Errorf("Unexpected dashboard title: %s", dash.Title)
		}
		if len(dash.Panels) != 5 {
			t.Errorf("Expected 5 panels, got %d", len(dash.Panels))
		}

		found := false
		for _, panel := range dash.Panels {
			for _, target := range panel.Targets {
				if strings.Contains(target.Expr, "whisper_transcription_requests_total") {
					found = true
				}
			}
		}
		if !found {
			t.Error("Expected a panel querying the request counter")
		}
	})
}
