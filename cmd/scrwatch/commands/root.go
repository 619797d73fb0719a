// Package commands implements the CLI commands for scrwatch.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/scrwatch/internal/app"
	"go.trai.ch/scrwatch/internal/build"
	"go.trai.ch/scrwatch/internal/core/domain"
)

// CLI represents the command line interface for scrwatch.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Watch(ctx context.Context, opts app.WatchOptions) error
	Classify(ctx context.Context, urls []string, opts app.ClassifyOptions) error
	Snapshot(ctx context.Context, opts app.SnapshotOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "scrwatch",
		Short:         "Turn StarCraft Remastered web traffic into match events",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newClassifyCmd())
	rootCmd.AddCommand(c.newSnapshotCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// addConfigFlags registers the flags shared by commands that read the cache.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", domain.DefaultConfigFileName, "Path to the YAML config file (optional)")
	cmd.Flags().String("cache-dir", "", "Override the browser cache directory")
	cmd.Flags().String("process", "", "Override the game process name")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, pretty, or json")
}

func configOptions(cmd *cobra.Command) app.ConfigOptions {
	path, _ := cmd.Flags().GetString("config")
	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	process, _ := cmd.Flags().GetString("process")
	return app.ConfigOptions{
		ConfigPath: path,
		CacheDir:   cacheDir,
		Process:    process,
	}
}
