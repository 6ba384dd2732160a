package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SocketPlan/internal/engine"
	"github.com/piwi3910/SocketPlan/internal/model"
	"github.com/piwi3910/SocketPlan/internal/project"
)

// errLayoutInvalid is returned by check when the layout breaks a rule.
var errLayoutInvalid = errors.New("layout is invalid")

func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <layout>",
		Short: "Check a layout file against the placement rules",
		Long: `Check reports every socket group that is too close to a plate edge or to
another group, sits on a plate that is too small or missing, or has a socket
count outside 1-5. It also flags plate sizes outside the allowed range.
The exit status is non-zero when anything is wrong.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			doc, err := project.ImportLayout(args[0])
			if err != nil {
				return err
			}
			logger.Debug("layout loaded", "path", args[0], "version", doc.Version)

			out := cmd.OutOrStdout()
			l := doc.Layout
			printTitle(out, filepath.Base(args[0]))
			printStats(out, len(l.Plates), len(l.SocketGroups), l.SocketCount())

			problems := plateProblems(l)
			if !l.SocketsEnabled && len(l.SocketGroups) > 0 {
				problems = append(problems, fmt.Sprintf("sockets are disabled but %d groups are present", len(l.SocketGroups)))
			}
			for _, v := range engine.AuditLayout(l) {
				problems = append(problems, v.String())
			}

			if len(problems) == 0 {
				printSuccess(out, "layout is valid")
				return nil
			}
			for _, p := range problems {
				printError(out, "%s", p)
			}
			return fmt.Errorf("%w: %d problems", errLayoutInvalid, len(problems))
		},
	}
}

// plateProblems lists plates whose size lies outside the allowed range.
func plateProblems(l model.Layout) []string {
	var out []string
	for i, p := range l.Plates {
		if model.ClampWidth(p.Width) != p.Width {
			out = append(out, fmt.Sprintf("plate %d: width %.1f cm outside %.0f to %.0f cm", i+1, p.Width, model.PlateMinWidth, model.PlateMaxWidth))
		}
		if model.ClampHeight(p.Height) != p.Height {
			out = append(out, fmt.Sprintf("plate %d: height %.1f cm outside %.0f to %.0f cm", i+1, p.Height, model.PlateMinHeight, model.PlateMaxHeight))
		}
	}
	return out
}
