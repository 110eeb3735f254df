package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voxlab/voxstack/internal/stack"
)

func newDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Tear the stack down",
		Long: "Removes the stack's containers and networks. Running down with\n" +
			"nothing up is not an error; compose treats it as a no-op.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			runner, err := stack.NewRunner(cfg)
			if err != nil {
				return err
			}

			if err := runner.Down(cmd.Context()); err != nil {
				return err
			}

			fmt.Printf("Stack %q is down\n", cfg.ProjectName)
			return nil
		},
	}
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the stack's containers without removing them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			runner, err := stack.NewRunner(cfg)
			if err != nil {
				return err
			}

			if err := runner.Stop(cmd.Context()); err != nil {
				return err
			}

			fmt.Printf("Stack %q stopped\n", cfg.ProjectName)
			return nil
		},
	}
}
