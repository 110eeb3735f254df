package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/voxlab/voxstack/internal/api"
	"github.com/voxlab/voxstack/internal/docker"
	"github.com/voxlab/voxstack/internal/stack"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local stack status API",
		Long: "Serves stack status, service listings, the endpoint report and the\n" +
			"bootstrapper's own Prometheus metrics over HTTP until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			runner, err := stack.NewRunner(cfg)
			if err != nil {
				return err
			}

			router := api.NewRouter(cfg, runner, docker.NewClient())
			addr := fmt.Sprintf("%s:%d", cfg.ListenAddress, cfg.ListenPort)
			server := &http.Server{
				Addr:    addr,
				Handler: router,
			}

			errChan := make(chan error, 1)
			go func() {
				log.Info().Str("addr", addr).Msg("status API listening")
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errChan <- err
				}
			}()

			select {
			case err := <-errChan:
				return err
			case <-cmd.Context().Done():
			}

			log.Info().Msg("shutting down status API")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}
