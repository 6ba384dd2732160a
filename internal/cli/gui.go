package cli

import (
	"github.com/spf13/cobra"
)

func (c *CLI) guiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gui [layout]",
		Short: "Open the desktop editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGUI(cmd, args)
		},
	}
}

func (c *CLI) runGUI(cmd *cobra.Command, args []string) error {
	if c.gui == nil {
		return errNoGUI
	}
	opts := GUIOptions{
		Config:     c.Config,
		ConfigPath: c.configPath,
		Logger:     loggerFromContext(cmd.Context()),
	}
	if len(args) == 1 {
		opts.LayoutPath = args[0]
	}
	return c.gui(cmd.Context(), opts)
}
