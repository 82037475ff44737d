package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/tooltip/pkg/errors"
	"github.com/matzehuels/tooltip/pkg/geom"
	"github.com/matzehuels/tooltip/pkg/placement"
)

// Request describes one placement computation.
//
// Target is optional when Point is set; a point is turned into a zero-size
// target like explicit coordinates are.
type Request struct {
	Place    string      `json:"place"`
	Auto     bool        `json:"auto"`
	Spacing  float64     `json:"spacing"`
	Target   *geom.Rect  `json:"target,omitempty"`
	Point    *[2]float64 `json:"point,omitempty"`
	Viewport geom.Rect   `json:"viewport"`
	Size     geom.Size   `json:"size"`
}

// Box is a rectangle in the document.
type Box struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Document is the outcome of one placement computation.
type Document struct {
	Requested string  `json:"requested"`
	Resolved  string  `json:"resolved"`
	Flipped   bool    `json:"flipped"`
	Class     string  `json:"class"`
	Top       float64 `json:"top"`
	Left      float64 `json:"left"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Box       Box     `json:"box"`
	Fits      bool    `json:"fits"`
}

// Survey lists every placement for one geometry, in the fixed placement
// order, together with what the requested one resolved to.
type Survey struct {
	Request  Request    `json:"request"`
	Resolved string     `json:"resolved"`
	Entries  []Document `json:"placements"`
}

// TargetRect returns the rectangle the tooltip is positioned against.
func (r Request) TargetRect() geom.Rect {
	if r.Target != nil {
		return r.Target.Normalize()
	}
	if r.Point != nil {
		return geom.Point(r.Point[0], r.Point[1])
	}
	return geom.Rect{}
}

// Validate checks the request. Errors carry INVALID_* codes.
func (r Request) Validate() error {
	if _, err := placement.Parse(r.Place); err != nil {
		return err
	}
	if err := errors.ValidateSpacing(r.Spacing); err != nil {
		return err
	}
	if r.Target == nil && r.Point == nil {
		return errors.New(errors.ErrCodeInvalidInput, "request needs a target or a point")
	}
	if r.Target != nil {
		if err := r.Target.Normalize().Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRect, err, "target")
		}
	}
	if r.Point != nil {
		if err := errors.ValidateFinite("point", r.Point[0], r.Point[1]); err != nil {
			return err
		}
	}
	if err := r.Viewport.Normalize().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRect, err, "viewport")
	}
	if err := errors.ValidateFinite("size", r.Size.Width, r.Size.Height); err != nil {
		return err
	}
	if r.Size.Width < 0 || r.Size.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "size must not be negative, got %vx%v", r.Size.Width, r.Size.Height)
	}
	return nil
}

// Compute validates the request and runs the placement core.
func (r Request) Compute() (placement.Result, error) {
	if err := r.Validate(); err != nil {
		return placement.Result{}, err
	}
	req, _ := placement.Parse(r.Place)
	return placement.Compute(req, r.TargetRect(), r.Viewport.Normalize(), r.Size, r.Spacing, r.Auto), nil
}

// Survey validates the request and evaluates every placement with auto-flip
// off, so each entry shows where that placement would land as requested.
func (r Request) Survey() (Survey, error) {
	res, err := r.Compute()
	if err != nil {
		return Survey{}, err
	}
	target, viewport := r.TargetRect(), r.Viewport.Normalize()

	s := Survey{Request: r, Resolved: res.Resolved.String()}
	for _, p := range placement.All() {
		alt := placement.Compute(p, target, viewport, r.Size, r.Spacing, false)
		s.Entries = append(s.Entries, FromResult(alt, r.Size, viewport))
	}
	return s, nil
}

// FromResult converts a result into its document form. Fits reports whether
// the tooltip box lies inside the viewport.
func FromResult(res placement.Result, size geom.Size, viewport geom.Rect) Document {
	box := res.Box(size)
	return Document{
		Requested: res.Requested.String(),
		Resolved:  res.Resolved.String(),
		Flipped:   res.Flipped(),
		Class:     res.Resolved.Class(),
		Top:       res.Offset.Top,
		Left:      res.Offset.Left,
		X:         res.X,
		Y:         res.Y,
		Box:       Box{Left: box.Left, Top: box.Top, Width: box.Width, Height: box.Height},
		Fits:      viewport.ContainsRect(box),
	}
}

// Marshal serializes v as pretty-printed JSON.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes v as pretty-printed JSON to w.
func Write(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadRequest decodes a request from r. Unknown fields are rejected.
func ReadRequest(r io.Reader) (Request, error) {
	var req Request
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return Request{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	if req.Place == "" {
		req.Place = placement.Default.String()
	}
	return req, nil
}
