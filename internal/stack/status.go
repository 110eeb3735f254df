package stack

import (
	"context"
	"strings"

	"github.com/voxlab/voxstack/internal/compose"
	"github.com/voxlab/voxstack/internal/docker"
	"github.com/voxlab/voxstack/pkg/types"
)

const (
	StatusRunning          = "running"
	StatusStopped          = "stopped"
	StatusPartiallyRunning = "partially running"
)

// Status reports the stack's services. Live container state comes from
// the docker CLI; when nothing has been created yet the declared
// services are read from the compose file instead.
func (r *Runner) Status(ctx context.Context, client *docker.Client) (*types.StackStatus, error) {
	services, err := r.liveServices(ctx, client)
	if err != nil || len(services) == 0 {
		declared, derr := compose.Services(ctx, r.composeFile, r.cfg.ProjectName)
		if derr != nil {
			if err != nil {
				return nil, err
			}
			return nil, derr
		}
		services = declared
	}

	status := &types.StackStatus{
		Name:         r.cfg.ProjectName,
		Services:     services,
		ServiceCount: len(services),
	}

	for _, svc := range services {
		if svc.Status == StatusRunning {
			status.RunningCount++
		}
	}

	switch {
	case status.ServiceCount == 0 || status.RunningCount == 0:
		status.Status = StatusStopped
	case status.RunningCount == status.ServiceCount:
		status.Status = StatusRunning
	default:
		status.Status = StatusPartiallyRunning
	}

	return status, nil
}

func (r *Runner) liveServices(ctx context.Context, client *docker.Client) ([]types.ServiceInfo, error) {
	entries, err := client.ListProjectContainers(ctx, r.cfg.ProjectName)
	if err != nil {
		return nil, err
	}

	services := make([]types.ServiceInfo, 0, len(entries))
	for _, entry := range entries {
		info := types.ServiceInfo{
			Name:        entry.Names,
			Image:       entry.Image,
			Status:      serviceStatus(entry.State),
			ContainerID: entry.ID,
		}
		if entry.Ports != "" {
			info.Ports = splitPorts(entry.Ports)
		}
		services = append(services, info)
	}

	return services, nil
}

// serviceStatus maps a docker state string to the report vocabulary.
func serviceStatus(state string) string {
	switch strings.ToLower(state) {
	case "running", "up":
		return StatusRunning
	case "":
		return "unknown"
	default:
		return strings.ToLower(state)
	}
}

func splitPorts(ports string) []string {
	parts := strings.Split(ports, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
