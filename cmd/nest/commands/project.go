package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/nest/internal/app"
)

func (c *CLI) newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration of the current project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")
			return c.app.Show(cmd.Context(), cmd.OutOrStdout(), app.ShowOptions{Format: format})
		},
	}
	cmd.Flags().StringP("format", "f", app.FormatText, "Output format: text or yaml")
	return cmd
}

func (c *CLI) newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the build, deps, app and compile paths of the current project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Paths(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func (c *CLI) newPrepareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prepare",
		Short: "Create the build directory layout of the current project",
		Long: "Create the compile directory of the current project and link its priv directory\n" +
			"into the build. In an umbrella project every application is prepared.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Prepare(cmd.Context())
		},
	}
}

func (c *CLI) newAppsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apps",
		Short: "List the applications of the current umbrella project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Apps(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the configuration again whenever a definition file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")
			return c.app.Watch(cmd.Context(), cmd.OutOrStdout(), app.WatchOptions{Format: format})
		},
	}
	cmd.Flags().StringP("format", "f", app.FormatText, "Output format: text or yaml")
	return cmd
}
