package compose

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/compose-spec/compose-go/v2/cli"

	"github.com/voxlab/voxstack/pkg/types"
)

var defaultFilenames = []string{
	"compose.yaml",
	"compose.yml",
	"docker-compose.yml",
	"docker-compose.yaml",
}

// Resolve returns the compose file to use. An explicit path is
// validated; otherwise the working directory is searched for the
// standard filenames.
func Resolve(workDir, explicit string) (string, error) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("compose file %s: %w", explicit, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("compose file %s is a directory", explicit)
		}
		return abs, nil
	}

	for _, candidate := range defaultFilenames {
		path := filepath.Join(workDir, candidate)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", err
		}
		if info.IsDir() {
			continue
		}
		return filepath.Abs(path)
	}

	return "", errors.New("no compose file found in " + workDir)
}

// Services loads the compose project and returns its declared services
// in name order. Containers may not exist yet; everything is reported
// as "not created".
func Services(ctx context.Context, composeFile, projectName string) ([]types.ServiceInfo, error) {
	options, err := cli.NewProjectOptions(
		[]string{composeFile},
		cli.WithOsEnv,
		cli.WithDotEnv,
		cli.WithName(projectName),
		cli.WithWorkingDirectory(filepath.Dir(composeFile)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create project options: %w", err)
	}

	project, err := options.LoadProject(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load compose project: %w", err)
	}

	var services []types.ServiceInfo
	for _, service := range project.Services {
		info := types.ServiceInfo{
			Name:   service.Name,
			Image:  service.Image,
			Status: "not created",
		}

		for _, port := range service.Ports {
			if port.Published == "" || port.Target == 0 {
				continue
			}
			portStr := fmt.Sprintf("%s:%d", port.Published, port.Target)
			if port.Protocol != "" {
				portStr += "/" + port.Protocol
			}
			info.Ports = append(info.Ports, portStr)
		}

		services = append(services, info)
	}

	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services, nil
}
