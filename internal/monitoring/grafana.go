package monitoring

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Grafana loads everything below from its provisioning directory; the
// structures mirror the documents it expects, nothing more.

type DatasourceFile struct {
	APIVersion  int          `yaml:"apiVersion"`
	Datasources []Datasource `yaml:"datasources"`
}

type Datasource struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Access    string `yaml:"access"`
	URL       string `yaml:"url"`
	IsDefault bool   `yaml:"isDefault"`
}

type DashboardProviderFile struct {
	APIVersion int                 `yaml:"apiVersion"`
	Providers  []DashboardProvider `yaml:"providers"`
}

type DashboardProvider struct {
	Name    string            `yaml:"name"`
	OrgID   int               `yaml:"orgId"`
	Type    string            `yaml:"type"`
	Options map[string]string `yaml:"options"`
}

type Dashboard struct {
	Title    string  `json:"title"`
	UID      string  `json:"uid"`
	Refresh  string  `json:"refresh"`
	Time     Range   `json:"time"`
	Panels   []Panel `json:"panels"`
	Editable bool    `json:"editable"`
}

type Range struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Panel struct {
	ID      int      `json:"id"`
	Title   string   `json:"title"`
	Type    string   `json:"type"`
	Targets []Target `json:"targets"`
}

type Target struct {
	Expr         string `json:"expr"`
	LegendFormat string `json:"legendFormat,omitempty"`
}

// NewDatasource points Grafana at the Prometheus container over the
// compose network.
func NewDatasource(prometheusURL string) DatasourceFile {
	return DatasourceFile{
		APIVersion: 1,
		Datasources: []Datasource{
			{
				Name:      "Prometheus",
				Type:      "prometheus",
				Access:    "proxy",
				URL:       prometheusURL,
				IsDefault: true,
			},
		},
	}
}

func NewDashboardProvider() DashboardProviderFile {
	return DashboardProviderFile{
		APIVersion: 1,
		Providers: []DashboardProvider{
			{
				Name:  "voxstack",
				OrgID: 1,
				Type:  "file",
				Options: map[string]string{
					"path": "/var/lib/grafana/dashboards",
				},
			},
		},
	}
}

// NewTranscriptionDashboard builds the default dashboard over the
// transcription service's exported series.
func NewTranscriptionDashboard() Dashboard {
	return Dashboard{
		Title:    "Whisper Transcription Service",
		UID:      "voxstack-whisper",
		Refresh:  "5s",
		Time:     Range{From: "now-15m", To: "now"},
		Editable: true,
		Panels: []Panel{
			{
				ID:    1,
				Title: "Transcription requests",
				Type:  "timeseries",
				Targets: []Target{
					{Expr: "rate(whisper_transcription_requests_total[5m])", LegendFormat: "requests/s"},
				},
			},
			{
				ID:    2,
				Title: "Transcription errors",
				Type:  "timeseries",
				Targets: []Target{
					{Expr: "rate(whisper_transcription_errors_total[5m])", LegendFormat: "errors/s"},
				},
			},
			{
				ID:    3,
				Title: "Transcription duration (p95)",
				Type:  "timeseries",
				Targets: []Target{
					{Expr: "histogram_quantile(0.95, rate(whisper_transcription_duration_seconds_bucket[5m]))", LegendFormat: "p95"},
				},
			},
			{
				ID:    4,
				Title: "Inference duration (p95)",
				Type:  "timeseries",
				Targets: []Target{
					{Expr: "histogram_quantile(0.95, rate(whisper_inference_duration_seconds_bucket[5m]))", LegendFormat: "p95"},
				},
			},
			{
				ID:    5,
				Title: "Model loaded",
				Type:  "stat",
				Targets: []Target{
					{Expr: "whisper_model_loaded"},
				},
			},
		},
	}
}

// WriteGrafanaProvisioning renders the datasource, dashboard provider
// and dashboard documents under <dir>/grafana. Safe to re-run; output
// is deterministic.
func WriteGrafanaProvisioning(dir, prometheusURL string) ([]string, error) {
	var written []string

	datasource, err := yaml.Marshal(NewDatasource(prometheusURL))
	if err != nil {
		return nil, fmt.Errorf("failed to render datasource: %w", err)
	}
	path := filepath.Join(dir, "grafana", "provisioning", "datasources", "datasource.yml")
	if err := writeFile(path, datasource); err != nil {
		return nil, err
	}
	written = append(written, path)

	provider, err := yaml.Marshal(NewDashboardProvider())
	if err != nil {
		return nil, fmt.Errorf("failed to render dashboard provider: %w", err)
	}
	path = filepath.Join(dir, "grafana", "provisioning", "dashboards", "provider.yml")
	if err := writeFile(path, provider); err != nil {
		return nil, err
	}
	written = append(written, path)

	dashboard, err := json.MarshalIndent(NewTranscriptionDashboard(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render dashboard: %w", err)
	}
	path = filepath.Join(dir, "grafana", "dashboards", "whisper.json")
	if err := writeFile(path, dashboard); err != nil {
		return nil, err
	}
	written = append(written, path)

	return written, nil
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
