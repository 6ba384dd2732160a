package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SocketPlan/internal/export"
	"github.com/piwi3910/SocketPlan/internal/model"
	"github.com/piwi3910/SocketPlan/internal/project"
)

// exporter writes a layout to path.
type exporter struct {
	suffix string
	write  func(path string, l model.Layout) error
}

var exporters = map[string]exporter{
	"pdf":    {".pdf", export.ExportPDF},
	"labels": {"-labels.pdf", export.ExportLabels},
	"dxf":    {".dxf", export.ExportDXF},
	"xlsx":   {".xlsx", export.ExportCutList},
	"json":   {".json", project.ExportLayout},
	"yaml":   {".yaml", project.ExportLayout},
}

type exportOpts struct {
	formats []string
	output  string
}

func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOpts{formats: []string{"pdf"}}

	cmd := &cobra.Command{
		Use:   "export <layout>",
		Short: "Export a layout as PDF plan, DXF drawing, cut list or labels",
		Long: `Export loads a layout file, drops socket groups that break the placement
rules, and writes one file per requested format next to --output.

Formats: pdf, labels, dxf, xlsx, json, yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", opts.formats, "output formats (comma separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: layout path without extension)")
	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, path string, opts exportOpts) error {
	logger := loggerFromContext(cmd.Context())

	var selected []string
	for _, f := range opts.formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if _, ok := exporters[f]; !ok {
			return fmt.Errorf("unknown format %q", f)
		}
		selected = append(selected, f)
	}

	state, rejected, err := project.LoadLayout(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, r := range rejected {
		logger.Warn("socket group dropped", "err", r)
		printWarning(out, "%v", r)
	}

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(path, filepath.Ext(path))
	}

	layout := state.Layout
	printTitle(out, "Export")
	printStats(out, len(layout.Plates), len(layout.SocketGroups), layout.SocketCount())
	for _, f := range selected {
		e := exporters[f]
		target := base + e.suffix
		if target == path {
			target = base + ".export" + e.suffix
		}
		if err := e.write(target, layout); err != nil {
			return fmt.Errorf("%s export: %w", f, err)
		}
		logger.Debug("exported", "format", f, "path", target)
		printFile(out, target)
		c.Config.AddRecentExport(target)
	}

	c.Config.LastExportDir = filepath.Dir(base)
	c.saveConfig()
	printSuccess(out, "%d files written", len(selected))
	return nil
}
