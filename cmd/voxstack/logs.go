package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/voxlab/voxstack/internal/stack"
)

func newLogsCmd() *cobra.Command {
	var (
		follow     bool
		tail       string
		since      string
		timestamps bool
	)

	cmd := &cobra.Command{
		Use:   "logs [SERVICE]",
		Short: "Stream log output from the stack or one named service",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			runner, err := stack.NewRunner(cfg)
			if err != nil {
				return err
			}

			opts := stack.LogsOptions{
				Follow:     follow,
				Tail:       tail,
				Since:      since,
				Timestamps: timestamps,
			}
			if len(args) == 1 {
				opts.Service = args[0]
			}

			return runner.Logs(cmd.Context(), os.Stdout, opts)
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", true, "follow log output")
	cmd.Flags().StringVar(&tail, "tail", "", "number of lines to show from the end of the logs")
	cmd.Flags().StringVar(&since, "since", "", "show logs since timestamp or relative duration")
	cmd.Flags().BoolVarP(&timestamps, "timestamps", "t", false, "show timestamps")
	return cmd
}
