package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tooltip/pkg/placement"
	"github.com/matzehuels/tooltip/pkg/render/flipgraph"
)

// flipsCommand creates the flips command, which draws auto-flip decisions
// as a Graphviz diagram.
func (c *CLI) flipsCommand() *cobra.Command {
	var opts geometryOpts
	var format, output string
	var coords bool

	cmd := &cobra.Command{
		Use:   "flips",
		Short: "Draw which placements auto-flip resolves to",
		Long: `Build a directed graph over the twelve placements with an edge from every
placement that would overflow the viewport to the placement auto-flip picks
instead. Green nodes fit as requested, red nodes do not.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format, formatSVG, formatDOT); err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())

			req, err := opts.request(cmd, logger)
			if err != nil {
				return err
			}
			requested := placement.MustParse(req.Place)
			dot := flipgraph.ToDOT(flipgraph.Geometry{
				Target:   req.TargetRect(),
				Viewport: req.Viewport,
				Size:     req.Size,
				Spacing:  req.Spacing,
			}, flipgraph.Options{Coordinates: coords, Highlight: &requested})

			if format == formatDOT {
				return c.emit([]byte(dot), output)
			}

			prog := newProgress(logger)
			svg, err := flipgraph.RenderSVG(cmd.Context(), dot)
			if err != nil {
				return err
			}
			prog.done("Rendered flip graph")
			return c.emit(svg, output)
		},
	}

	addGeometryFlags(cmd, &opts)
	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg (default), dot")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats(formatSVG, formatDOT))
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&coords, "coords", false, "show each placement's coordinates")

	return cmd
}
