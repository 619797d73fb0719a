package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/scrwatch/internal/app"
)

func (c *CLI) newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [urls...]",
		Short: "Classify request URLs",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			outputMode, _ := cmd.Flags().GetString("output-mode")
			return c.app.Classify(cmd.Context(), args, app.ClassifyOptions{
				OutputMode: outputMode,
			})
		},
	}
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, pretty, or json")
	return cmd
}
