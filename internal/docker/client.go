package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/docker/docker/api/types/container"
)

// Client drives the docker CLI. The daemon API is never spoken
// directly; everything the bootstrapper needs is available through the
// binary the operator already has.
type Client struct {
	bin string
}

func NewClient() *Client {
	return &Client{bin: "docker"}
}

// PSEntry is one line of `docker ps --format json` output.
type PSEntry struct {
	ID     string `json:"ID"`
	Names  string `json:"Names"`
	Image  string `json:"Image"`
	State  string `json:"State"`
	Status string `json:"Status"`
	Ports  string `json:"Ports"`
}

// ExecuteCommand runs any docker command with args.
func (c *Client) ExecuteCommand(ctx context.Context, command string, args ...string) (string, error) {
	cmdArgs := append([]string{command}, args...)
	cmd := exec.CommandContext(ctx, c.bin, cmdArgs...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("docker %s failed: %s", command, string(output))
	}

	return strings.TrimSpace(string(output)), nil
}

// IsAvailable checks that the docker binary exists and can reach a daemon.
func (c *Client) IsAvailable() bool {
	cmd := exec.Command(c.bin, "version")
	return cmd.Run() == nil
}

// ListProjectContainers returns all containers labelled as members of
// the given compose project, running or not.
func (c *Client) ListProjectContainers(ctx context.Context, project string) ([]PSEntry, error) {
	output, err := c.ExecuteCommand(ctx, "ps",
		"-a",
		"--filter", "label=com.docker.compose.project="+project,
		"--format", "json",
	)
	if err != nil {
		return nil, err
	}

	return parsePSOutput(output)
}

// InspectContainer returns the full daemon-side view of one container.
// `docker inspect` prints the engine API's inspect document, so the SDK
// type decodes it directly.
func (c *Client) InspectContainer(ctx context.Context, id string) (*container.InspectResponse, error) {
	output, err := c.ExecuteCommand(ctx, "container", "inspect", id)
	if err != nil {
		return nil, err
	}

	var inspected []container.InspectResponse
	if err := json.Unmarshal([]byte(output), &inspected); err != nil {
		return nil, fmt.Errorf("failed to parse inspect output: %w", err)
	}
	if len(inspected) == 0 {
		return nil, fmt.Errorf("container %s not found", id)
	}

	return &inspected[0], nil
}

// parsePSOutput handles both JSON-lines output (current docker) and a
// single JSON array (older releases).
func parsePSOutput(output string) ([]PSEntry, error) {
	trimmed := strings.TrimSpace(output)
	entries := make([]PSEntry, 0)
	if trimmed == "" {
		return entries, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &entries); err != nil {
			return nil, fmt.Errorf("failed to parse ps output: %w", err)
		}
		return entries, nil
	}

	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var entry PSEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, fmt.Errorf("failed to parse ps line: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
