package fretboard

import (
	"github.com/matzehuels/fretboard/pkg/core/fretboard/layout"
	"github.com/matzehuels/fretboard/pkg/core/fretboard/surface"
)

// Default option values: a six-string guitar in standard tuning, showing the
// first four frets.
const (
	DefaultWidth     = 200.0
	DefaultHeight    = 300.0
	DefaultStartFret = 1
	DefaultEndFret   = 4
	DefaultDotColor  = "white"
	DefaultFontSize  = 16.0
)

// DefaultStringNames lists guitar strings from the highest to the lowest.
var DefaultStringNames = []string{"E", "B", "G", "D", "A", "E"}

// ClickFunc is called with the position nearest to a click and the surface
// the diagram is drawn on.
type ClickFunc func(coord layout.FretCoord, s surface.Surface)

// Options configures a diagram. Start from [DefaultOptions] and override
// the fields you need.
type Options struct {
	Width, Height float64

	// StartFret is the first fret shown; 0 includes the nut.
	StartFret int
	EndFret   int

	// StringNames holds one name per string; its length is the string count.
	StringNames     []string
	ShowStringNames bool
	ShowFretNums    bool

	Dots     []layout.Dot
	DotColor string

	// DrawDotOnHover draws a dot at the position under the pointer.
	DrawDotOnHover bool
	HoverDotColor  string

	// Label is a title drawn above the neck; empty means none.
	Label    string
	FontSize float64

	OnClick ClickFunc
}

// DefaultOptions returns the options of a plain six-string diagram.
func DefaultOptions() Options {
	return Options{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		StartFret:     DefaultStartFret,
		EndFret:       DefaultEndFret,
		StringNames:   append([]string(nil), DefaultStringNames...),
		DotColor:      DefaultDotColor,
		HoverDotColor: DefaultDotColor,
		FontSize:      DefaultFontSize,
		OnClick:       func(layout.FretCoord, surface.Surface) {},
	}
}

// Params returns the geometry inputs of o.
func (o Options) Params() layout.Params {
	return layout.Params{
		Width:       o.Width,
		Height:      o.Height,
		StartFret:   o.StartFret,
		EndFret:     o.EndFret,
		StringCount: len(o.StringNames),
		Labeled:     o.Label != "",
	}
}

// withFallbacks fills fields that have no meaningful zero value.
func (o Options) withFallbacks() Options {
	if o.DotColor == "" {
		o.DotColor = DefaultDotColor
	}
	if o.HoverDotColor == "" {
		o.HoverDotColor = DefaultDotColor
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.OnClick == nil {
		o.OnClick = func(layout.FretCoord, surface.Surface) {}
	}
	return o
}
