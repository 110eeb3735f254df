package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/voxlab/voxstack/internal/docker"
	"github.com/voxlab/voxstack/internal/stack"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show stack and service status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			runner, err := stack.NewRunner(cfg)
			if err != nil {
				return err
			}

			status, err := runner.Status(cmd.Context(), docker.NewClient())
			if err != nil {
				return err
			}

			header := color.New(color.Bold)
			header.Fprintf(os.Stdout, "Stack %s: %s (%d/%d services running)\n\n",
				status.Name, status.Status, status.RunningCount, status.ServiceCount)

			for _, svc := range status.Services {
				line := fmt.Sprintf("  %-28s %-12s %s", svc.Name, svc.Status, svc.Image)
				if len(svc.Ports) > 0 {
					line += "  " + strings.Join(svc.Ports, ", ")
				}
				fmt.Fprintln(os.Stdout, line)
			}

			return nil
		},
	}
}
