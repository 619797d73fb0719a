package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/scrwatch/internal/app"
)

func (c *CLI) newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print a stable snapshot of the browser cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outputMode, _ := cmd.Flags().GetString("output-mode")
			return c.app.Snapshot(cmd.Context(), app.SnapshotOptions{
				ConfigOptions: configOptions(cmd),
				OutputMode:    outputMode,
			})
		},
	}
	addConfigFlags(cmd)
	return cmd
}
