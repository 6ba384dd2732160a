package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SocketPlan/internal/importer"
	"github.com/piwi3910/SocketPlan/internal/project"
)

func (c *CLI) importCommand() *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "import <plates.csv|plates.xlsx|plates.dxf>",
		Short: "Build a layout from a plate list",
		Long: `Import reads plate sizes from a CSV or Excel sheet (columns width, height
and an optional quantity, English or German headers) or from a DXF drawing in
millimeters, and writes a layout document with sockets disabled.

Without --output the document is printed to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			result, err := importer.ImportFile(args[0])
			if err != nil {
				return err
			}
			for _, w := range result.Warnings {
				logger.Warn(w, "file", args[0])
			}
			status := cmd.ErrOrStderr()
			for _, e := range result.Errors {
				printError(status, "%s", e)
			}
			if len(result.Plates) == 0 {
				return fmt.Errorf("no plates imported from %s", args[0])
			}

			layout := result.Layout()
			if output != "" {
				if err := project.ExportLayout(output, layout); err != nil {
					return err
				}
				printFile(status, output)
			} else {
				f := project.FormatYAML
				if strings.EqualFold(format, "json") {
					f = project.FormatJSON
				}
				if err := project.EncodeLayout(cmd.OutOrStdout(), layout, f); err != nil {
					return err
				}
			}
			printSuccess(status, "%d plates imported", len(result.Plates))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "layout file to write (.json, .yaml)")
	cmd.Flags().StringVar(&format, "format", "yaml", "stdout format: yaml or json")
	return cmd
}
