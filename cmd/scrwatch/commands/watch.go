package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/scrwatch/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the game and print events until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outputMode, _ := cmd.Flags().GetString("output-mode")
			requests, _ := cmd.Flags().GetBool("requests")
			trace, _ := cmd.Flags().GetBool("trace")

			return c.app.Watch(cmd.Context(), app.WatchOptions{
				ConfigOptions: configOptions(cmd),
				OutputMode:    outputMode,
				Requests:      requests,
				Trace:         trace,
			})
		},
	}
	addConfigFlags(cmd)
	cmd.Flags().Bool("requests", false, "Also print every classified request")
	cmd.Flags().Bool("trace", false, "Log cache sync spans")
	return cmd
}
