package fretboard

import (
	"strconv"

	"github.com/matzehuels/fretboard/pkg/core/fretboard/layout"
	"github.com/matzehuels/fretboard/pkg/core/fretboard/surface"
	"github.com/matzehuels/fretboard/pkg/errors"
)

const (
	neckColor         = "black"
	fretNumDropRatio  = 4.0 // fret height / downward shift of fret numbers
	labelHeightFactor = 0.5 // label baseline as a fraction of the top margin
)

// Diagram is a rendered fretboard bound to its surface.
// It is not safe for concurrent use.
type Diagram struct {
	opts    Options
	layout  layout.Layout
	surface surface.Surface

	hover  surface.Element
	unsubs []func()
	closed bool
}

// Render draws a diagram for opts on a new surface created by host.
//
// Errors with code CONFIGURATION are returned before host is asked for a
// surface. Errors creating the surface are returned with code
// SURFACE_UNAVAILABLE.
func Render(host surface.Host, opts Options) (*Diagram, error) {
	opts = opts.withFallbacks()

	if err := validateDots(opts.Dots); err != nil {
		return nil, err
	}
	l, err := layout.Derive(opts.Params())
	if err != nil {
		return nil, err
	}

	if host == nil {
		return nil, errors.New(errors.ErrCodeSurfaceUnavailable, "no host to attach the diagram to")
	}
	s, err := host.NewSurface(opts.Width, opts.Height)
	if err != nil {
		if errors.IsSurfaceUnavailable(err) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeSurfaceUnavailable, err,
			"create %vx%v surface", opts.Width, opts.Height)
	}

	d := &Diagram{opts: opts, layout: l, surface: s}
	d.draw()
	d.listen()
	return d, nil
}

// validateDots rejects dots with negative indices. Dots beyond the fret
// window or string count are drawn where the geometry puts them.
func validateDots(dots []layout.Dot) error {
	for i, dot := range dots {
		if dot.String < 0 || dot.Fret < 0 {
			return errors.New(errors.ErrCodeConfiguration,
				"dot %d has negative position (string %d, fret %d)", i, dot.String, dot.Fret)
		}
	}
	return nil
}

func (d *Diagram) draw() {
	d.drawStrings()
	d.drawFrets()
	if d.opts.Label != "" {
		d.drawLabel()
	}
	if d.opts.ShowFretNums {
		d.drawFretNums()
	}
	for _, dot := range d.opts.Dots {
		d.drawDot(dot)
	}
	if d.opts.ShowStringNames {
		d.drawStringNames()
	}
}

func (d *Diagram) drawStrings() {
	l := d.layout
	for i := 0; i < l.StringCount; i++ {
		x := l.StringX(i)
		d.surface.Line(surface.Point{X: x, Y: l.YMargin}, surface.Point{X: x, Y: l.NeckBottom()}, neckColor)
	}
}

func (d *Diagram) drawFrets() {
	l := d.layout
	for i := 0; i <= l.FretCount; i++ {
		y := l.FretY(i)
		d.surface.Line(surface.Point{X: l.XMargin, Y: y}, surface.Point{X: l.Width - l.XMargin, Y: y}, neckColor)
	}
}

func (d *Diagram) drawLabel() {
	l := d.layout
	at := surface.Point{X: l.Width / 2, Y: l.YMargin * labelHeightFactor}
	d.surface.Text(at, d.opts.Label, d.opts.FontSize)
}

func (d *Diagram) drawFretNums() {
	l := d.layout
	for fret := l.StartFret; fret <= l.EndFret; fret++ {
		p := l.Point(layout.FretCoord{String: l.StringCount, Fret: fret})
		at := surface.Point{X: p.X - l.FretNumOffset, Y: p.Y + l.FretHeight/fretNumDropRatio}
		d.surface.Text(at, strconv.Itoa(fret), d.opts.FontSize)
	}
}

// drawStringNames writes each name one row below the last fret, under its string.
func (d *Diagram) drawStringNames() {
	l := d.layout
	for i, name := range d.opts.StringNames {
		at := l.Point(layout.FretCoord{String: i + 1, Fret: l.EndFret + 1})
		d.surface.Text(at, name, d.opts.FontSize)
	}
}

func (d *Diagram) drawDot(dot layout.Dot, opts ...surface.ShapeOption) surface.Element {
	color := dot.Color
	if color == "" {
		color = d.opts.DotColor
	}
	center := d.layout.DotCenter(dot.FretCoord)
	return d.surface.Circle(center, d.layout.DotRadiusAt(dot.Fret), color, opts...)
}

// Layout returns the geometry the diagram was drawn with.
func (d *Diagram) Layout() layout.Layout { return d.layout }

// Surface returns the surface the diagram is drawn on.
func (d *Diagram) Surface() surface.Surface { return d.surface }

// Options returns the options the diagram was drawn with, fallbacks applied.
func (d *Diagram) Options() Options { return d.opts }
