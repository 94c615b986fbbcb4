package commands

import (
	"github.com/rsnakamura/theape/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [config...]",
		Short: "Run the operations of one or more run files",
		Long:  "Run loads the run files (ape.yaml by default), merges them in order and runs their operations until the countdown is exhausted.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
			outputMode, _ := cmd.Flags().GetString("output-mode")

			return c.app.Run(cmd.Context(), configPaths(args), app.RunOptions{
				MetricsAddr: metricsAddr,
				OutputMode:  outputMode,
			})
		},
	}
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address while running (e.g. :9090)")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, pretty, or plain")
	return cmd
}

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [config...]",
		Short: "Validate run files without running them",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Check(cmd.Context(), configPaths(args))
		},
	}
}
