package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tooltip/pkg/errors"
	"github.com/matzehuels/tooltip/pkg/placement"
	"github.com/matzehuels/tooltip/pkg/render/preview"
	"github.com/matzehuels/tooltip/pkg/render/report"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatSVG  = "svg"
	formatDOT  = "dot"
)

// placeOpts holds the command-line flags for the place command.
type placeOpts struct {
	geometryOpts
	format       string // output format: text, json, svg
	output       string // output file; empty means stdout
	content      string // tooltip text drawn in SVG output
	alternatives bool   // outline the other placements in SVG output
}

// placeCommand creates the place command, which computes a single placement.
func (c *CLI) placeCommand() *cobra.Command {
	opts := placeOpts{format: formatText}

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Compute where a tooltip goes next to a target",
		Example: `  tooltip place --target 100,50,100,30 --size 60x20 --spacing 8
  tooltip place -t 100,50,100,30 --viewport 0,40,400,260 --auto --format json
  tooltip place -t 100,50,100,30 --auto --format svg --alternatives -o preview.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format, formatText, formatJSON, formatSVG); err != nil {
				return err
			}
			return c.runPlace(cmd, &opts)
		},
	}

	addGeometryFlags(cmd, &opts.geometryOpts)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text (default), json, svg")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats(formatText, formatJSON, formatSVG))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.content, "content", "", "tooltip text drawn in SVG output")
	cmd.Flags().BoolVar(&opts.alternatives, "alternatives", false, "outline the other placements in SVG output")

	return cmd
}

func (c *CLI) runPlace(cmd *cobra.Command, opts *placeOpts) error {
	logger := loggerFromContext(cmd.Context())

	req, err := opts.request(cmd, logger)
	if err != nil {
		return err
	}
	res, err := req.Compute()
	if err != nil {
		return err
	}
	if res.Flipped() {
		logger.Debug("placement flipped", "requested", res.Requested, "resolved", res.Resolved)
	}

	var buf bytes.Buffer
	switch opts.format {
	case formatJSON:
		err = report.Write(&buf, report.FromResult(res, req.Size, req.Viewport))
	case formatSVG:
		popts := []preview.Option{preview.WithCaption()}
		if opts.alternatives {
			popts = append(popts, preview.WithAlternatives())
		}
		buf.Write(preview.Render(preview.Scene{
			Viewport: req.Viewport,
			Target:   req.TargetRect(),
			Size:     req.Size,
			Spacing:  req.Spacing,
			Content:  opts.content,
			Result:   res,
		}, popts...))
	default:
		writePlacementText(&buf, req, res)
	}
	if err != nil {
		return err
	}

	return c.emit(buf.Bytes(), opts.output)
}

// emit writes data to path, or to the command output when path is empty.
func (c *CLI) emit(data []byte, path string) error {
	if path == "" {
		_, err := c.out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess(c.out, "Wrote %d bytes", len(data))
	printFile(c.out, path)
	return nil
}

func writePlacementText(w io.Writer, req report.Request, res placement.Result) {
	box := res.Box(req.Size)
	resolved := StyleHighlight.Render(res.Resolved.String())
	if res.Flipped() {
		resolved += StyleWarning.Render(fmt.Sprintf(" (flipped from %s)", res.Requested))
	}

	printKeyValue(w, "placement", resolved)
	printKeyValue(w, "position", fmt.Sprintf("left %d  top %d", res.X, res.Y))
	printKeyValue(w, "exact", fmt.Sprintf("left %g  top %g", res.Offset.Left, res.Offset.Top))
	printKeyValue(w, "target", describeRect(req.TargetRect()))
	printKeyValue(w, "viewport", describeRect(req.Viewport))
	printKeyValue(w, "fits", fitMark(req.Viewport.ContainsRect(box)))
}

func validateFormat(format string, allowed ...string) error {
	if !slices.Contains(allowed, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want one of %v)", format, allowed)
	}
	return nil
}
