package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tooltip/pkg/errors"
	"github.com/matzehuels/tooltip/pkg/geom"
	"github.com/matzehuels/tooltip/pkg/render/report"
)

const (
	defaultViewport = "0,0,800,600"
	defaultSize     = "120x32"
)

// geometryOpts holds the flags shared by every command that computes a
// placement from the command line.
type geometryOpts struct {
	config   string  // config file path; empty means the default location
	place    string  // requested placement; empty means the config value
	auto     bool    // enable auto-flip
	spacing  float64 // gap between target and tooltip
	target   string  // target rect as left,top,width,height
	point    string  // explicit coordinates as x,y
	size     string  // tooltip size as WIDTHxHEIGHT
	viewport string  // viewport rect as left,top,width,height
}

// addGeometryFlags registers the shared flags on cmd.
func addGeometryFlags(cmd *cobra.Command, opts *geometryOpts) {
	opts.viewport = defaultViewport
	opts.size = defaultSize

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (default $XDG_CONFIG_HOME/tooltip/config.toml)")
	cmd.Flags().StringVarP(&opts.place, "place", "p", "", "requested placement, e.g. top, left-bottom (default from config)")
	cmd.Flags().BoolVarP(&opts.auto, "auto", "a", false, "flip to stay inside the viewport (default from config)")
	cmd.Flags().Float64Var(&opts.spacing, "spacing", 0, "gap between target and tooltip (default from config, else 0)")
	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "target rect: left,top,width,height")
	cmd.Flags().StringVar(&opts.point, "point", "", "explicit coordinates x,y (used when no target is given)")
	cmd.Flags().StringVarP(&opts.size, "size", "s", opts.size, "tooltip size: WIDTHxHEIGHT")
	cmd.Flags().StringVar(&opts.viewport, "viewport", opts.viewport, "viewport rect: left,top,width,height")

	_ = cmd.RegisterFlagCompletionFunc("place", completePlacements)
}

// request merges config file values with the flags that were set on cmd
// and builds a validated placement request.
func (o *geometryOpts) request(cmd *cobra.Command, logger *log.Logger) (report.Request, error) {
	cfg, err := loadConfig(o.config, logger)
	if err != nil {
		return report.Request{}, err
	}

	req := report.Request{Place: cfg.Place, Auto: cfg.Auto}
	if cfg.Spacing != nil {
		req.Spacing = *cfg.Spacing
	}
	if o.place != "" {
		req.Place = o.place
	}
	if cmd.Flags().Changed("auto") {
		req.Auto = o.auto
	}
	if cmd.Flags().Changed("spacing") {
		req.Spacing = o.spacing
	}

	if req.Viewport, err = parseRect("viewport", o.viewport); err != nil {
		return report.Request{}, err
	}
	if req.Size, err = parseSize(o.size); err != nil {
		return report.Request{}, err
	}
	switch {
	case o.target != "":
		r, err := parseRect("target", o.target)
		if err != nil {
			return report.Request{}, err
		}
		req.Target = &r
	case o.point != "":
		p, err := parsePoint(o.point)
		if err != nil {
			return report.Request{}, err
		}
		req.Point = &p
	default:
		return report.Request{}, errors.New(errors.ErrCodeInvalidInput, "either --target or --point is required")
	}

	if err := req.Validate(); err != nil {
		return report.Request{}, err
	}
	logger.Debug("placement request", "place", req.Place, "auto", req.Auto, "spacing", req.Spacing)
	return req, nil
}

// parseRect parses "left,top,width,height".
func parseRect(name, s string) (geom.Rect, error) {
	v, err := parseFloats(name, s, ",", 4)
	if err != nil {
		return geom.Rect{}, err
	}
	if v[2] < 0 || v[3] < 0 {
		return geom.Rect{}, errors.New(errors.ErrCodeInvalidRect, "%s: width and height must not be negative", name)
	}
	return geom.NewRect(v[0], v[1], v[2], v[3]), nil
}

// parseSize parses "WIDTHxHEIGHT".
func parseSize(s string) (geom.Size, error) {
	v, err := parseFloats("size", strings.ToLower(s), "x", 2)
	if err != nil {
		return geom.Size{}, err
	}
	return geom.Size{Width: v[0], Height: v[1]}, nil
}

// parsePoint parses "x,y".
func parsePoint(s string) ([2]float64, error) {
	v, err := parseFloats("point", s, ",", 2)
	if err != nil {
		return [2]float64{}, err
	}
	return [2]float64{v[0], v[1]}, nil
}

func parseFloats(name, s, sep string, n int) ([]float64, error) {
	parts := strings.Split(s, sep)
	if len(parts) != n {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: want %d values separated by %q, got %q", name, n, sep, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s: bad number %q", name, p)
		}
		out[i] = f
	}
	if err := errors.ValidateFinite(name, out...); err != nil {
		return nil, err
	}
	return out, nil
}

func describeRect(r geom.Rect) string {
	return fmt.Sprintf("%g,%g %gx%g", r.Left, r.Top, r.Width, r.Height)
}
