package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SocketPlan/internal/engine"
	"github.com/piwi3910/SocketPlan/internal/model"
)

type bboxOpts struct {
	count     int
	direction string
	x, y      float64
	plate     string
}

func (c *CLI) bboxCommand() *cobra.Command {
	opts := bboxOpts{
		count:     model.SocketCountMin,
		direction: "horizontal",
		x:         model.DefaultGroupX,
		y:         model.DefaultGroupY,
	}

	cmd := &cobra.Command{
		Use:   "bbox",
		Short: "Print the bounding box of a socket group",
		Long: `Bbox prints the footprint of a socket group. With --plate WxH it also
checks the group against the edge clearance of that plate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBBox(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", opts.count, "number of sockets (1-5)")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", opts.direction, "horizontal or vertical")
	cmd.Flags().Float64Var(&opts.x, "x", opts.x, "anchor distance from the left edge in cm")
	cmd.Flags().Float64Var(&opts.y, "y", opts.y, "anchor distance from the bottom edge in cm")
	cmd.Flags().StringVar(&opts.plate, "plate", "", "plate size to check against, e.g. 100x50")
	return cmd
}

func runBBox(cmd *cobra.Command, opts bboxOpts) error {
	if !model.ValidCount(opts.count) {
		return fmt.Errorf("count must be between %d and %d, got %d", model.SocketCountMin, model.SocketCountMax, opts.count)
	}
	dir, ok := model.ParseDirection(opts.direction)
	if !ok {
		return fmt.Errorf("unknown direction %q", opts.direction)
	}

	g := model.SocketGroup{ID: "group", Count: opts.count, Direction: dir, X: opts.x, Y: opts.y}
	box := engine.BoundingBox(g)

	out := cmd.OutOrStdout()
	printTitle(out, fmt.Sprintf("%d socket(s), %s", g.Count, dir))
	printKeyValue(out, "x1, y1", fmt.Sprintf("%.1f, %.1f cm", box.X1, box.Y1))
	printKeyValue(out, "x2, y2", fmt.Sprintf("%.1f, %.1f cm", box.X2, box.Y2))
	printKeyValue(out, "size", fmt.Sprintf("%.1f x %.1f cm", box.Width(), box.Height()))

	if opts.plate == "" {
		return nil
	}
	plate, err := parsePlateSize(opts.plate)
	if err != nil {
		return err
	}
	violations := engine.Diagnose(g, plate, nil)
	if len(violations) == 0 {
		printSuccess(out, "fits a %.1f x %.1f cm plate", plate.Width, plate.Height)
		return nil
	}
	for _, v := range violations {
		printError(out, "%s", v)
	}
	return fmt.Errorf("%w: group does not fit the plate", errLayoutInvalid)
}

// parsePlateSize parses "WxH" in cm, e.g. "100x50" or "151,5x36,8".
func parsePlateSize(s string) (model.Plate, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return model.Plate{}, fmt.Errorf("plate size %q: want WIDTHxHEIGHT", s)
	}
	w, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(ws), ",", ".", 1), 64)
	if err != nil {
		return model.Plate{}, fmt.Errorf("plate width %q: %w", ws, err)
	}
	h, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(hs), ",", ".", 1), 64)
	if err != nil {
		return model.Plate{}, fmt.Errorf("plate height %q: %w", hs, err)
	}
	return model.Plate{ID: "plate", Width: model.ClampWidth(w), Height: model.ClampHeight(h)}, nil
}
