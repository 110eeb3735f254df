package monitoring

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultRetention is the TSDB retention window the stack descriptor
// passes to Prometheus via --storage.tsdb.retention.time.
const DefaultRetention = "200h"

type PrometheusConfig struct {
	Global        GlobalConfig   `yaml:"global"`
	ScrapeConfigs []ScrapeConfig `yaml:"scrape_configs"`
}

type GlobalConfig struct {
	ScrapeInterval     string `yaml:"scrape_interval"`
	EvaluationInterval string `yaml:"evaluation_interval"`
}

type ScrapeConfig struct {
	JobName        string         `yaml:"job_name"`
	ScrapeInterval string         `yaml:"scrape_interval,omitempty"`
	MetricsPath    string         `yaml:"metrics_path,omitempty"`
	StaticConfigs  []StaticConfig `yaml:"static_configs"`
}

type StaticConfig struct {
	Targets []string          `yaml:"targets"`
	Labels  map[string]string `yaml:"labels,omitempty"`
}

// NewPrometheusConfig builds the scrape configuration for the stack:
// the application is scraped every 5s, Prometheus scrapes itself at
// the 15s global interval.
func NewPrometheusConfig(appService string, appPort int) PrometheusConfig {
	return PrometheusConfig{
		Global: GlobalConfig{
			ScrapeInterval:     "15s",
			EvaluationInterval: "15s",
		},
		ScrapeConfigs: []ScrapeConfig{
			{
				JobName:        appService,
				ScrapeInterval: "5s",
				MetricsPath:    "/metrics",
				StaticConfigs: []StaticConfig{
					{Targets: []string{fmt.Sprintf("%s:%d", appService, appPort)}},
				},
			},
			{
				JobName: "prometheus",
				StaticConfigs: []StaticConfig{
					{Targets: []string{"localhost:9090"}},
				},
			},
		},
	}
}

// WritePrometheusConfig renders the scrape config to
// <dir>/prometheus/prometheus.yml.
func WritePrometheusConfig(dir string, cfg PrometheusConfig) (string, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to render prometheus config: %w", err)
	}

	target := filepath.Join(dir, "prometheus", "prometheus.yml")
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("failed to create prometheus config directory: %w", err)
	}
	if err := os.WriteFile(target, out, 0644); err != nil {
		return "", fmt.Errorf("failed to write prometheus config: %w", err)
	}

	return target, nil
}
