package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/voxlab/voxstack/internal/stack"
)

func newUpCmd() *cobra.Command {
	var (
		monitoring bool
		probe      bool
	)

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Build and start the stack, then report its endpoints",
		Long: "Issues a single build-and-start invocation against the compose file,\n" +
			"waits a grace period for services to come up, and prints the endpoint\n" +
			"summary. With --monitoring, Prometheus and Grafana start too and their\n" +
			"configuration is provisioned first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			runner, err := stack.NewRunner(cfg)
			if err != nil {
				return err
			}

			if monitoring {
				if _, err := provisionMonitoring(cfg); err != nil {
					return err
				}
			}

			log.Info().Str("compose_file", runner.ComposeFile()).Bool("monitoring", monitoring).Msg("starting stack")

			if err := runner.Up(cmd.Context(), stack.UpOptions{Monitoring: monitoring}); err != nil {
				return err
			}

			grace := cfg.GracePeriod(monitoring)
			if probe {
				// Active polling instead of the blind wait
				if err := stack.Probe(cmd.Context(), cfg.AppURL()+"/health", 2*grace); err != nil {
					return err
				}
				grace = 0
			} else if err := stack.Wait(cmd.Context(), grace); err != nil {
				return err
			}

			report := stack.BuildReport(cfg, monitoring, grace)
			fmt.Fprintln(os.Stdout)
			stack.PrintReport(os.Stdout, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&monitoring, "monitoring", false, "also start Prometheus and Grafana")
	cmd.Flags().BoolVar(&probe, "probe", false, "poll the service health endpoint instead of sleeping")
	return cmd
}
