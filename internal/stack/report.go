package stack

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/voxlab/voxstack/internal/config"
	"github.com/voxlab/voxstack/pkg/types"
)

// Wait blocks for the variant's grace period. This is a heuristic, not
// a readiness check: services slow to start will still be reported.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	log.Info().Dur("grace_period", d).Msg("waiting for services to come up")

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Probe polls the application's health endpoint until it answers or
// the deadline passes. Opt-in replacement for the blind wait.
func Probe(ctx context.Context, url string, deadline time.Duration) error {
	probeCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	client := &http.Client{Timeout: 2 * time.Second}
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode < 500 {
				log.Info().Int("attempts", attempt).Str("url", url).Msg("service answered")
				return nil
			}
		}

		select {
		case <-probeCtx.Done():
			return fmt.Errorf("service at %s not ready after %s: %w", url, deadline, probeCtx.Err())
		case <-ticker.C:
		}
	}
}

// BuildReport assembles the endpoint summary for the chosen variant.
// Nothing here is verified against live services.
func BuildReport(cfg *config.Config, monitoring bool, waited time.Duration) types.Report {
	report := types.Report{
		RunID:      uuid.New().String(),
		Stack:      cfg.ProjectName,
		Monitoring: monitoring,
		StartedAt:  time.Now().UTC(),
		WaitedFor:  waited.String(),
		Endpoints: []types.Endpoint{
			{Name: "API", URL: cfg.AppURL()},
			{Name: "API docs", URL: cfg.AppURL() + "/docs"},
			{Name: "Metrics", URL: cfg.AppURL() + "/metrics"},
		},
	}

	if monitoring {
		report.Endpoints = append(report.Endpoints,
			types.Endpoint{Name: "Prometheus", URL: cfg.PrometheusURL()},
			types.Endpoint{Name: "Grafana", URL: cfg.GrafanaURL(), Note: "login admin/admin"},
		)
	}

	report.Hints = []string{
		"View logs:  voxstack logs [SERVICE]",
		"Stop stack: voxstack down",
	}
	if !monitoring {
		report.Hints = append(report.Hints,
			fmt.Sprintf("Monitoring configs live in ./%s; start them with: voxstack up --monitoring", cfg.MonitoringDir))
	}

	return report
}

// PrintReport writes the operator-facing summary.
func PrintReport(w io.Writer, report types.Report) {
	header := color.New(color.FgGreen, color.Bold)
	name := color.New(color.FgCyan)

	header.Fprintf(w, "Stack %q is up\n", report.Stack)
	fmt.Fprintln(w)
	for _, ep := range report.Endpoints {
		line := fmt.Sprintf("  %-12s %s", ep.Name, ep.URL)
		if ep.Note != "" {
			line += "  (" + ep.Note + ")"
		}
		name.Fprintln(w, line)
	}
	fmt.Fprintln(w)
	for _, hint := range report.Hints {
		fmt.Fprintf(w, "  %s\n", hint)
	}
}
