package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/voxlab/voxstack/internal/version"
)

// Config holds everything the bootstrapper needs to drive the stack.
// Values come from an optional YAML file, overridden by environment
// variables, overridden by flags at the command layer.
type Config struct {
	Version string `yaml:"-" json:"version"`

	// Compose project
	ProjectName string `yaml:"project_name" json:"project_name"`
	ComposeFile string `yaml:"compose_file" json:"compose_file"`
	WorkDir     string `yaml:"work_dir" json:"work_dir"`

	// Monitoring profile
	MonitoringProfile string `yaml:"monitoring_profile" json:"monitoring_profile"`
	MonitoringDir     string `yaml:"monitoring_dir" json:"monitoring_dir"`

	// Grace periods between "up" returning and the endpoint report
	AppGracePeriod  time.Duration `yaml:"app_grace_period" json:"app_grace_period"`
	FullGracePeriod time.Duration `yaml:"full_grace_period" json:"full_grace_period"`

	// Published endpoints (owned by external processes, reported only)
	AppPort        int `yaml:"app_port" json:"app_port"`
	PrometheusPort int `yaml:"prometheus_port" json:"prometheus_port"`
	GrafanaPort    int `yaml:"grafana_port" json:"grafana_port"`

	// Local status API (voxstack serve)
	ListenAddress string `yaml:"listen_address" json:"listen_address"`
	ListenPort    int    `yaml:"listen_port" json:"listen_port"`
	APIKey        string `yaml:"api_key" json:"api_key"`
}

// Load builds the effective configuration. A missing config file is not
// an error; env vars always win over file values.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if err := loadFile(cfg, path); err != nil {
		return nil, err
	}

	cfg.ProjectName = getEnv("VOXSTACK_PROJECT", cfg.ProjectName)
	cfg.ComposeFile = getEnv("VOXSTACK_COMPOSE_FILE", cfg.ComposeFile)
	cfg.WorkDir = getEnv("VOXSTACK_WORK_DIR", cfg.WorkDir)
	cfg.MonitoringProfile = getEnv("VOXSTACK_MONITORING_PROFILE", cfg.MonitoringProfile)
	cfg.MonitoringDir = getEnv("VOXSTACK_MONITORING_DIR", cfg.MonitoringDir)
	cfg.AppGracePeriod = getEnvDuration("VOXSTACK_APP_GRACE", cfg.AppGracePeriod)
	cfg.FullGracePeriod = getEnvDuration("VOXSTACK_FULL_GRACE", cfg.FullGracePeriod)
	cfg.AppPort = getEnvInt("VOXSTACK_APP_PORT", cfg.AppPort)
	cfg.PrometheusPort = getEnvInt("VOXSTACK_PROMETHEUS_PORT", cfg.PrometheusPort)
	cfg.GrafanaPort = getEnvInt("VOXSTACK_GRAFANA_PORT", cfg.GrafanaPort)
	cfg.ListenAddress = getEnv("VOXSTACK_LISTEN_ADDRESS", cfg.ListenAddress)
	cfg.ListenPort = getEnvInt("VOXSTACK_LISTEN_PORT", cfg.ListenPort)
	cfg.APIKey = getEnv("VOXSTACK_API_KEY", cfg.APIKey)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Version:           version.Get(),
		ProjectName:       "voxstack",
		ComposeFile:       "",
		WorkDir:           ".",
		MonitoringProfile: "monitoring",
		MonitoringDir:     "monitoring",
		AppGracePeriod:    15 * time.Second,
		FullGracePeriod:   30 * time.Second,
		AppPort:           8000,
		PrometheusPort:    9090,
		GrafanaPort:       3000,
		ListenAddress:     "127.0.0.1",
		ListenPort:        3552,
	}
}

// loadFile merges a YAML config file into cfg. If path is empty it
// resolves $XDG_CONFIG_HOME/voxstack/config.yaml and treats a missing
// file as "use defaults".
func loadFile(cfg *Config, path string) error {
	explicit := path != ""
	if path == "" {
		base := os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil
			}
			base = filepath.Join(home, ".config")
		}
		path = filepath.Join(base, "voxstack", "config.yaml")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.ProjectName == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	for name, port := range map[string]int{
		"app port":        c.AppPort,
		"prometheus port": c.PrometheusPort,
		"grafana port":    c.GrafanaPort,
		"listen port":     c.ListenPort,
	} {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid %s: %d", name, port)
		}
	}
	if c.AppGracePeriod < 0 || c.FullGracePeriod < 0 {
		return fmt.Errorf("grace periods must not be negative")
	}
	return nil
}

// GracePeriod returns the blind wait to use for the given variant.
func (c *Config) GracePeriod(monitoring bool) time.Duration {
	if monitoring {
		return c.FullGracePeriod
	}
	return c.AppGracePeriod
}

func (c *Config) AppURL() string {
	return fmt.Sprintf("http://localhost:%d", c.AppPort)
}

func (c *Config) PrometheusURL() string {
	return fmt.Sprintf("http://localhost:%d", c.PrometheusPort)
}

func (c *Config) GrafanaURL() string {
	return fmt.Sprintf("http://localhost:%d", c.GrafanaPort)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
