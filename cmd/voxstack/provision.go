package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/voxlab/voxstack/internal/config"
	"github.com/voxlab/voxstack/internal/monitoring"
)

func newProvisionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Write the Prometheus and Grafana configuration files",
		Long: "Renders the Prometheus scrape configuration and the Grafana\n" +
			"datasource, dashboard provider and dashboard documents into the\n" +
			"monitoring directory. Output is deterministic; re-running is safe.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			written, err := provisionMonitoring(cfg)
			if err != nil {
				return err
			}

			for _, path := range written {
				fmt.Printf("wrote %s\n", path)
			}
			fmt.Printf("prometheus retention: pass --storage.tsdb.retention.time=%s in the stack descriptor\n",
				monitoring.DefaultRetention)
			return nil
		},
	}
}

func provisionMonitoring(cfg *config.Config) ([]string, error) {
	promCfg := monitoring.NewPrometheusConfig("whisper-api", cfg.AppPort)
	promPath, err := monitoring.WritePrometheusConfig(cfg.MonitoringDir, promCfg)
	if err != nil {
		return nil, err
	}

	// Grafana reaches Prometheus over the compose network, not localhost
	grafanaPaths, err := monitoring.WriteGrafanaProvisioning(cfg.MonitoringDir,
		fmt.Sprintf("http://prometheus:%d", cfg.PrometheusPort))
	if err != nil {
		return nil, err
	}

	written := append([]string{promPath}, grafanaPaths...)
	log.Debug().Strs("files", written).Msg("monitoring configuration provisioned")
	return written, nil
}
