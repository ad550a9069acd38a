package layout

import (
	"math"

	"github.com/matzehuels/fretboard/pkg/errors"
)

const (
	xMarginRatio      = 6.0  // canvas width / horizontal margin
	yMarginRatio      = 8.0  // canvas height / vertical margin
	labelMarginFactor = 1.5  // vertical margin growth when a title is drawn
	fretNumRatio      = 6.0  // neck width / fret number offset
	dotRadiusRatio    = 6.0  // fret height / dot radius
	openDotShrink     = 0.75 // open-string dots are drawn smaller
	frettedLift       = 8.0  // fret height / upward nudge of fretted positions
)

// Upper bounds on the drawn grid. Render cost grows with both.
const (
	MaxFret    = 48 // highest fret number
	MaxStrings = 24
)

// Params is the geometry-relevant part of a diagram configuration.
type Params struct {
	Width, Height      float64
	StartFret, EndFret int
	StringCount        int
	Labeled            bool // a title is drawn above the neck
}

// Layout holds every metric derived from [Params].
// All coordinates are in canvas units with the origin at the top left.
type Layout struct {
	Width, Height      float64
	StartFret, EndFret int
	StringCount        int

	XMargin       float64 // canvas edge to the leftmost string
	YMargin       float64 // canvas edge to the nut line
	NeckWidth     float64 // distance between the outer strings
	NeckHeight    float64 // distance between the first and last fret line
	StringMargin  float64 // distance between adjacent strings
	FretCount     int     // rows between fret lines
	FretHeight    float64 // distance between adjacent fret lines
	FretNumOffset float64 // fret number to leftmost string
	DotRadius     float64
}

// Derive validates p and computes its layout.
//
// It returns an error with code CONFIGURATION when the width or height is not
// a positive finite number, when there are fewer than two strings, when
// StartFret is negative, when EndFret is below StartFret, when the window
// holds no fret at all (StartFret == EndFret == 0), when there are more than
// [MaxStrings] strings, or when EndFret is above [MaxFret].
func Derive(p Params) (Layout, error) {
	if err := validate(p); err != nil {
		return Layout{}, err
	}

	xMargin := p.Width / xMarginRatio
	yMargin := p.Height / yMarginRatio
	if p.Labeled {
		yMargin *= labelMarginFactor
	}

	neckWidth := p.Width - xMargin*2
	neckHeight := p.Height - yMargin*2

	fretCount := p.EndFret - p.StartFret
	if p.StartFret != 0 {
		fretCount++
	}
	fretHeight := neckHeight / float64(fretCount)

	return Layout{
		Width:         p.Width,
		Height:        p.Height,
		StartFret:     p.StartFret,
		EndFret:       p.EndFret,
		StringCount:   p.StringCount,
		XMargin:       xMargin,
		YMargin:       yMargin,
		NeckWidth:     neckWidth,
		NeckHeight:    neckHeight,
		StringMargin:  neckWidth / float64(p.StringCount-1),
		FretCount:     fretCount,
		FretHeight:    fretHeight,
		FretNumOffset: neckWidth / fretNumRatio,
		DotRadius:     fretHeight / dotRadiusRatio,
	}, nil
}

func validate(p Params) error {
	if !positive(p.Width) || !positive(p.Height) {
		return errors.New(errors.ErrCodeConfiguration,
			"width and height must be positive, got %vx%v", p.Width, p.Height)
	}
	if p.StringCount < 2 {
		return errors.New(errors.ErrCodeConfiguration,
			"at least 2 strings are required, got %d", p.StringCount)
	}
	if p.StringCount > MaxStrings {
		return errors.New(errors.ErrCodeConfiguration,
			"at most %d strings are supported, got %d", MaxStrings, p.StringCount)
	}
	if p.StartFret < 0 {
		return errors.New(errors.ErrCodeConfiguration,
			"start fret cannot be negative, got %d", p.StartFret)
	}
	if p.EndFret < p.StartFret {
		return errors.New(errors.ErrCodeConfiguration,
			"end fret %d is below start fret %d", p.EndFret, p.StartFret)
	}
	if p.StartFret == 0 && p.EndFret == 0 {
		return errors.New(errors.ErrCodeConfiguration,
			"fret window 0-0 contains no frets")
	}
	if p.EndFret > MaxFret {
		return errors.New(errors.ErrCodeConfiguration,
			"end fret %d is above the highest supported fret %d", p.EndFret, MaxFret)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// StringX returns the x position of the i-th string line, counted from the left.
func (l Layout) StringX(i int) float64 {
	return float64(i)*l.StringMargin + l.XMargin
}

// FretY returns the y position of the i-th fret line, counted from the top.
func (l Layout) FretY(i int) float64 {
	return float64(i)*l.FretHeight + l.YMargin
}

// NeckBottom returns the y position of the last fret line.
func (l Layout) NeckBottom() float64 {
	return l.YMargin + l.NeckHeight
}

// Point maps c onto the canvas.
func (l Layout) Point(c FretCoord) Point {
	stringNum := math.Abs(float64(c.String - l.StringCount))
	x := stringNum*l.StringMargin + l.XMargin

	var yOffset float64
	if c.Fret != 0 {
		yOffset = -l.FretHeight / frettedLift
	}
	y := float64(c.Fret)*l.FretHeight - l.FretHeight/2 + l.YMargin + yOffset

	return Point{X: x, Y: y}
}

// DotRadiusAt returns the radius of a dot drawn at fret.
func (l Layout) DotRadiusAt(fret int) float64 {
	if fret == 0 {
		return l.DotRadius * openDotShrink
	}
	return l.DotRadius
}

// DotCenter returns where the center of a dot at c is drawn.
// Dots sit half a radius below the point of their position.
func (l Layout) DotCenter(c FretCoord) Point {
	p := l.Point(c)
	p.Y += l.DotRadius / 2
	return p
}
