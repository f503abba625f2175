/*
Package ggraster implements a raster device context on top of gogpu/gg.

Drawing units are converted to pixels (dimen.PX drawing units per pixel at
scale 1) and the y-axis is flipped: a Device shows the rectangle of drawing
space whose top-left corner is its origin.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package ggraster

import (
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/hashicorp/go-multierror"
	"github.com/npillmayer/engrave/backend/gfx"
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/percent"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'engrave.gfx'.
func tracer() tracing.Trace {
	return tracing.Select("engrave.gfx")
}

// Device is a device context rendering to a gg raster context.
type Device struct {
	ctx       *gg.Context
	origin    dimen.Point // drawing-space point shown at pixel (0,0)
	scale     float64     // pixels per drawing-unit pixel
	Estimator gfx.TextMeasurer
	graphics  []string
	errs      *multierror.Error
}

var _ gfx.DeviceContext = &Device{}

// Option configures a device.
type Option func(*Device)

// WithScale sets the zoom factor of a device.
func WithScale(scale float64) Option {
	return func(d *Device) {
		if scale > 0 {
			d.scale = scale
		}
	}
}

// WithTextMeasurer sets the measurer for lyric syllables.
func WithTextMeasurer(m gfx.TextMeasurer) Option {
	return func(d *Device) {
		if m != nil {
			d.Estimator = m
		}
	}
}

// WithBackground clears the device to a background color.
func WithBackground(col gg.RGBA) Option {
	return func(d *Device) {
		d.ctx.ClearWithColor(col)
	}
}

// New creates a device of width × height pixels, showing drawing space
// from origin to the right and downwards.
func New(width, height int, origin dimen.Point, opts ...Option) *Device {
	d := &Device{
		ctx:       gg.NewContext(width, height),
		origin:    origin,
		scale:     1,
		Estimator: gfx.DefaultTextEstimator,
	}
	d.ctx.ClearWithColor(gg.White)
	for _, opt := range opts {
		opt(d)
	}
	d.ctx.SetColor(gg.Black.Color())
	return d
}

// Context returns the underlying gg context.
func (d *Device) Context() *gg.Context {
	return d.ctx
}

// Pixel converts a point in drawing space to device pixels.
func (d *Device) Pixel(pt dimen.Point) (x, y float64) {
	x = (pt.X - d.origin.X).Pixels() * d.scale
	y = (d.origin.Y - pt.Y).Pixels() * d.scale
	return
}

func (d *Device) StartGraphic(class, id string) {
	tracer().Debugf("graphic %s %q", class, id)
	d.graphics = append(d.graphics, id)
}

func (d *Device) EndGraphic(id string) {
	if n := len(d.graphics); n > 0 && d.graphics[n-1] == id {
		d.graphics = d.graphics[:n-1]
		return
	}
	tracer().Errorf("end of graphic %q without start", id)
}

// DrawThickBezier fills the lens between the curve through the given
// control points and a second curve with control points moved towards the
// chord by thickness.
func (d *Device) DrawThickBezier(p1, p2, c1, c2 dimen.Point, thickness dimen.Dimen, staffSize percent.Percent) {
	dx, dy := float64(p2.X-p1.X), float64(p2.Y-p1.Y)
	length := math.Hypot(dx, dy)
	var nx, ny float64
	if length > 0 {
		nx, ny = -dy/length, dx/length
	}
	// the normal has to point from the control points towards the chord
	side := float64(c1.X-p1.X)*nx + float64(c1.Y-p1.Y)*ny
	if side > 0 {
		nx, ny = -nx, -ny
	}
	t := float64(thickness)
	inner := func(c dimen.Point) dimen.Point {
		return dimen.P(c.X+dimen.Dimen(nx*t), c.Y+dimen.Dimen(ny*t))
	}
	x1, y1 := d.Pixel(p1)
	x2, y2 := d.Pixel(p2)
	cx1, cy1 := d.Pixel(c1)
	cx2, cy2 := d.Pixel(c2)
	ix1, iy1 := d.Pixel(inner(c1))
	ix2, iy2 := d.Pixel(inner(c2))
	d.ctx.MoveTo(x1, y1)
	d.ctx.CubicTo(cx1, cy1, cx2, cy2, x2, y2)
	d.ctx.CubicTo(ix2, iy2, ix1, iy1, x1, y1)
	d.ctx.ClosePath()
	d.fill()
}

func (d *Device) DrawFullRectangle(x1, y1, x2, y2 dimen.Dimen) {
	r := dimen.Rect{
		TopL: dimen.P(dimen.Min(x1, x2), dimen.Max(y1, y2)),
		BotR: dimen.P(dimen.Max(x1, x2), dimen.Min(y1, y2)),
	}
	x, y := d.Pixel(r.TopL)
	w, h := r.Width().Pixels()*d.scale, r.Height().Pixels()*d.scale
	d.ctx.DrawRectangle(x, y, w, h)
	d.fill()
}

// FillEllipse draws a filled ellipse, e.g. a notehead.
func (d *Device) FillEllipse(center dimen.Point, rx, ry dimen.Dimen) {
	x, y := d.Pixel(center)
	d.ctx.DrawEllipse(x, y, rx.Pixels()*d.scale, ry.Pixels()*d.scale)
	d.fill()
}

func (d *Device) TextExtent(text string, staffSize percent.Percent) (w, h dimen.Dimen) {
	return d.Estimator.Extent(text, staffSize)
}

func (d *Device) fill() {
	if err := d.ctx.Fill(); err != nil {
		d.errs = multierror.Append(d.errs, err)
	}
}

// Err returns the errors collected while drawing, or nil.
func (d *Device) Err() error {
	return d.errs.ErrorOrNil()
}

// EncodePNG writes the device contents as PNG.
func (d *Device) EncodePNG(w io.Writer) error {
	if err := d.Err(); err != nil {
		return err
	}
	return d.ctx.EncodePNG(w)
}

// Close releases the resources of the device.
func (d *Device) Close() error {
	return d.ctx.Close()
}
