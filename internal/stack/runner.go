package stack

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/voxlab/voxstack/internal/compose"
	"github.com/voxlab/voxstack/internal/config"
	"github.com/voxlab/voxstack/internal/metrics"
)

// Runner drives the compose stack. All lifecycle operations shell out
// to `docker compose`; the orchestrator owns error recovery, rollback
// and idempotence, the runner only relays its exit status.
type Runner struct {
	cfg         *config.Config
	composeFile string

	// run executes one compose invocation and returns its combined
	// output. Swappable in tests.
	run func(ctx context.Context, dir string, env []string, args ...string) ([]byte, error)
}

type UpOptions struct {
	Monitoring bool
}

func NewRunner(cfg *config.Config) (*Runner, error) {
	composeFile, err := compose.Resolve(cfg.WorkDir, cfg.ComposeFile)
	if err != nil {
		return nil, err
	}

	return &Runner{
		cfg:         cfg,
		composeFile: composeFile,
		run:         runCompose,
	}, nil
}

// ComposeFile returns the resolved stack descriptor path.
func (r *Runner) ComposeFile() string {
	return r.composeFile
}

// Up issues a single build-and-start invocation for the whole stack.
// The runner's responsibility ends once the orchestration request has
// been issued; readiness is handled separately.
func (r *Runner) Up(ctx context.Context, opts UpOptions) error {
	profile := ""
	if opts.Monitoring {
		profile = r.cfg.MonitoringProfile
		if profile == "" {
			profile = "monitoring"
		}
	}
	return r.invoke(ctx, "up", upArgs(r.composeFile, profile))
}

// Stop halts containers without removing them.
func (r *Runner) Stop(ctx context.Context) error {
	return r.invoke(ctx, "stop", composeArgs(r.composeFile, "stop"))
}

// Down tears the stack down. Compose treats a missing stack as a
// no-op, so Down without a prior Up succeeds.
func (r *Runner) Down(ctx context.Context) error {
	return r.invoke(ctx, "down", composeArgs(r.composeFile, "down"))
}

func (r *Runner) invoke(ctx context.Context, operation string, args []string) error {
	log.Debug().Str("operation", operation).Strs("args", args).Msg("issuing compose invocation")

	metrics.OrchestrationsTotal.WithLabelValues(operation).Inc()
	start := time.Now()

	output, err := r.run(ctx, r.workDir(), r.env(), args...)
	metrics.OrchestrationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.OrchestrationErrors.WithLabelValues(operation).Inc()
		return fmt.Errorf("compose %s failed: %w\nOutput: %s", operation, err, string(output))
	}

	return nil
}

// Logs streams compose log output for one service (or the whole stack)
// to w until the command exits or ctx is cancelled.
func (r *Runner) Logs(ctx context.Context, w io.Writer, opts LogsOptions) error {
	args := logsArgs(r.composeFile, opts)

	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Dir = r.workDir()
	cmd.Env = r.env()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start compose logs: %w", err)
	}

	done := make(chan error, 2)
	go func() { done <- copyLines(ctx, w, stdout) }()
	go func() { done <- copyLines(ctx, w, stderr) }()
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
		return ctx.Err()
	case err := <-done:
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
		if err != nil && err != io.EOF {
			return err
		}
		return nil
	}
}

type LogsOptions struct {
	Service    string
	Follow     bool
	Tail       string
	Since      string
	Timestamps bool
}

func (r *Runner) workDir() string {
	return filepath.Dir(r.composeFile)
}

func (r *Runner) env() []string {
	return append(os.Environ(),
		fmt.Sprintf("COMPOSE_PROJECT_NAME=%s", r.cfg.ProjectName),
	)
}

// upArgs builds the single orchestration invocation: build flag set,
// detached mode set, monitoring profile only when asked for.
func upArgs(composeFile string, profile string) []string {
	args := []string{"compose", "-f", composeFile}
	if profile != "" {
		args = append(args, "--profile", profile)
	}
	return append(args, "up", "--build", "-d")
}

func composeArgs(composeFile string, subcommand string, extra ...string) []string {
	args := []string{"compose", "-f", composeFile, subcommand}
	return append(args, extra...)
}

func logsArgs(composeFile string, opts LogsOptions) []string {
	args := []string{"compose", "-f", composeFile, "logs"}
	if opts.Tail != "" {
		args = append(args, "--tail", opts.Tail)
	}
	if opts.Since != "" {
		args = append(args, "--since", opts.Since)
	}
	if opts.Timestamps {
		args = append(args, "--timestamps")
	}
	if opts.Follow {
		args = append(args, "--follow")
	}
	if opts.Service != "" {
		args = append(args, opts.Service)
	}
	return args
}

func runCompose(ctx context.Context, dir string, env []string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Dir = dir
	cmd.Env = env
	return cmd.CombinedOutput()
}

func copyLines(ctx context.Context, w io.Writer, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := fmt.Fprintln(w, scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

