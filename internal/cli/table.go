package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tooltip/pkg/placement"
	"github.com/matzehuels/tooltip/pkg/render/report"
)

// tableCommand creates the table command, which compares all placements.
func (c *CLI) tableCommand() *cobra.Command {
	var opts geometryOpts
	var format string

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Compare all twelve placements for one geometry",
		Long: `Evaluate every placement against the same target, tooltip size and
viewport. Each row shows where the placement lands as requested, whether the
box fits the viewport, and what auto-flip would resolve it to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format, formatText, formatJSON); err != nil {
				return err
			}
			req, err := opts.request(cmd, loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			survey, err := req.Survey()
			if err != nil {
				return err
			}
			if format == formatJSON {
				return report.Write(c.out, survey)
			}
			writeSurveyTable(c.out, req, survey)
			return nil
		},
	}

	addGeometryFlags(cmd, &opts)
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text (default), json")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats(formatText, formatJSON))

	return cmd
}

func writeSurveyTable(w io.Writer, req report.Request, s report.Survey) {
	target, viewport := req.TargetRect(), req.Viewport

	rows := make([][]string, 0, len(s.Entries))
	for _, p := range placement.All() {
		e := s.Entries[len(rows)]
		auto := placement.Resolve(p, target, viewport, req.Size, req.Spacing, true)
		flip := StyleDim.Render("-")
		if auto != p {
			flip = StyleWarning.Render(iconArrow + " " + auto.String())
		}
		rows = append(rows, []string{
			e.Requested,
			strconv.Itoa(e.X),
			strconv.Itoa(e.Y),
			fitMark(e.Fits),
			flip,
		})
	}

	requested := req.Place
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Placement", "Left", "Top", "Fits", "Auto").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == -1 {
				return base.Inherit(styleHeader)
			}
			if col == 1 || col == 2 {
				base = base.Align(lipgloss.Right)
			}
			if row >= 0 && row < len(rows) && rows[row][0] == requested {
				return base.Bold(true).Foreground(colorCyan)
			}
			return base
		})

	fmt.Fprintln(w, StyleTitle.Render("Placements"))
	printDetail(w, "target %s  size %gx%g  spacing %g  viewport %s",
		describeRect(target), req.Size.Width, req.Size.Height, req.Spacing, describeRect(viewport))
	fmt.Fprintln(w, t.Render())
	if s.Resolved != requested {
		printWarning(w, "%s resolves to %s with auto-flip", requested, s.Resolved)
	} else {
		printInfo(w, "%s needs no flip", requested)
	}
}
