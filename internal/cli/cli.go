// Package cli implements the socketplan command-line interface.
//
// Without a subcommand socketplan opens the desktop editor. The other
// commands work on layout files and plate lists without a window:
//
//   - check: audit a layout file against the placement rules
//   - export: render a layout as PDF, DXF, cut list, labels or a layout file
//   - import: turn a CSV, Excel or DXF plate list into a layout document
//   - bbox: print the bounding box of a socket group
//   - serve: run the JSON HTTP API
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels through context.Context.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/SocketPlan/internal/model"
	"github.com/piwi3910/SocketPlan/internal/project"
)

const appName = "socketplan"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the version information displayed by --version.
// main calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// GUIOptions is what the desktop editor needs to start.
type GUIOptions struct {
	Config     model.AppConfig
	ConfigPath string
	LayoutPath string // optional layout file to open
	Logger     *log.Logger
}

// GUIFunc starts the desktop editor and blocks until its window closes.
type GUIFunc func(ctx context.Context, opts GUIOptions) error

// errNoGUI is returned when the binary was built without a desktop editor.
var errNoGUI = errors.New("desktop editor is not available in this build")

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config model.AppConfig

	configPath string
	verbose    bool
	gui        GUIFunc
}

// New creates a CLI that logs to w. gui may be nil.
func New(w io.Writer, gui GUIFunc) *CLI {
	return &CLI{
		Logger:     newLogger(w, log.InfoLevel),
		Config:     model.DefaultAppConfig(),
		configPath: project.DefaultConfigPath(),
		gui:        gui,
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName + " [layout]",
		Short:        "SocketPlan places socket groups on mounting plates",
		Long:         `SocketPlan is an editor for mounting plates with socket cut-outs. It keeps every socket group clear of the plate edges and of each other, and exports fabrication drawings, cut lists and labels.`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.Logger.SetLevel(log.DebugLevel)
			}
			cfg, err := project.LoadAppConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			c.Logger.Debug("config loaded", "path", c.configPath)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGUI(cmd, args)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", c.configPath, "path to the config file")

	root.AddCommand(c.guiCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.bboxCommand())
	root.AddCommand(c.serveCommand())

	return root
}

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context, gui GUIFunc) error {
	return New(os.Stderr, gui).RootCommand().ExecuteContext(ctx)
}

// saveConfig writes the config back. A failure is logged, not returned:
// the command itself already succeeded.
func (c *CLI) saveConfig() {
	if err := project.SaveAppConfig(c.configPath, c.Config); err != nil {
		c.Logger.Warn("could not save config", "path", c.configPath, "err", err)
	}
}
