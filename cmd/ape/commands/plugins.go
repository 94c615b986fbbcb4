package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available plugins",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.app.List()
		},
	}
}

func (c *CLI) newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [plugin...]",
		Short: "Print a sample run file for the named plugins",
		Args:  cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return c.app.Fetch(args)
		},
	}
}

func (c *CLI) newHelpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "help [plugin|command]",
		Short: "Show help for a plugin or a command",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, _ := cmd.Flags().GetInt("width")
			if len(args) == 0 {
				if err := c.rootCmd.Help(); err != nil {
					return err
				}
				return c.app.Help("", width)
			}
			if sub, _, err := c.rootCmd.Find(args); err == nil && sub != c.rootCmd {
				return sub.Help()
			}
			return c.app.Help(args[0], width)
		},
	}
	cmd.Flags().IntP("width", "w", 80, "Wrap plugin help at this width")
	return cmd
}
