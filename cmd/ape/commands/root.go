// Package commands implements the CLI commands for ape.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/rsnakamura/theape/internal/app"
	"github.com/rsnakamura/theape/internal/build"
	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for ape.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, paths []string, opts app.RunOptions) error
	Check(ctx context.Context, paths []string) error
	List() error
	Fetch(names []string) error
	Help(name string, width int) error
	ConfigureLogging(opts app.LogOptions)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "ape",
		Short:         "Runs operations built from plugins",
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

	rootCmd.PersistentFlags().Bool("debug", false, "Log debug messages")
	rootCmd.PersistentFlags().Bool("silent", false, "Log errors only")
	rootCmd.PersistentFlags().Bool("json", false, "Log in JSON format")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		silent, _ := cmd.Flags().GetBool("silent")
		jsonLogs, _ := cmd.Flags().GetBool("json")
		c.app.ConfigureLogging(app.LogOptions{Debug: debug, Silent: silent, JSON: jsonLogs})
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newFetchCmd())
	rootCmd.AddCommand(c.newVersionCmd())
	rootCmd.SetHelpCommand(c.newHelpCmd())

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

// configPaths returns the run files named on the command line, or the default one.
func configPaths(args []string) []string {
	if len(args) == 0 {
		return []string{domain.DefaultConfigFile}
	}
	return args
}
