// Package commands implements the CLI commands for nest.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/nest/internal/app"
	"go.trai.ch/nest/internal/build"
)

// CLI represents the command line interface for nest.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Configure(flags *pflag.FlagSet) error
	Show(ctx context.Context, out io.Writer, opts app.ShowOptions) error
	Paths(ctx context.Context, out io.Writer) error
	Prepare(ctx context.Context) error
	Apps(ctx context.Context, out io.Writer) error
	Watch(ctx context.Context, out io.Writer, opts app.WatchOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "nest",
		Short:         "Resolve project definitions and their build layout",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Configure(cmd.Flags())
		},
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

	flags := rootCmd.PersistentFlags()
	flags.StringP("env", "e", "", "Build environment selecting env-specific overrides (default \"dev\")")
	flags.StringP("dir", "C", "", "Run as if nest was started in this directory")
	flags.Bool("json", false, "Log as JSON (shorthand for --log-format=json)")
	flags.String("log-format", "auto", "Log format: auto, pretty, or json")
	flags.Bool("verbose", false, "Log debug messages and trace spans")

	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newPathsCmd())
	rootCmd.AddCommand(c.newPrepareCmd())
	rootCmd.AddCommand(c.newAppsCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	c.rootCmd = rootCmd
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
