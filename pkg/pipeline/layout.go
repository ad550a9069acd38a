package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/fretboard/pkg/core/fretboard/layout"
)

// LayoutExport is the JSON form of a derived layout.
type LayoutExport struct {
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	StartFret     int     `json:"start_fret"`
	EndFret       int     `json:"end_fret"`
	StringCount   int     `json:"string_count"`
	XMargin       float64 `json:"x_margin"`
	YMargin       float64 `json:"y_margin"`
	NeckWidth     float64 `json:"neck_width"`
	NeckHeight    float64 `json:"neck_height"`
	StringMargin  float64 `json:"string_margin"`
	FretCount     int     `json:"fret_count"`
	FretHeight    float64 `json:"fret_height"`
	FretNumOffset float64 `json:"fret_num_offset"`
	DotRadius     float64 `json:"dot_radius"`

	// Positions lists every position a click can resolve to, in hit-test order.
	Positions []PositionExport `json:"positions"`
	Dots      []DotExport      `json:"dots,omitempty"`
}

// PositionExport is a fret position and its canvas point.
type PositionExport struct {
	layout.FretCoord
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Format implements fmt.Formatter: "string 3 fret 0 at (100, 37.5)".
func (p PositionExport) Format(f fmt.State, verb rune) {
	p.FretCoord.Format(f, verb)
	fmt.Fprintf(f, " at (%g, %g)", p.X, p.Y)
}

// DotExport is a drawn dot.
type DotExport struct {
	layout.FretCoord
	Color string  `json:"color"`
	X     float64 `json:"cx"`
	Y     float64 `json:"cy"`
	R     float64 `json:"r"`
}

// Format implements fmt.Formatter: "string 2 fret 1 (red) at (60, 90) r 9.375".
func (d DotExport) Format(f fmt.State, verb rune) {
	d.FretCoord.Format(f, verb)
	fmt.Fprintf(f, " (%s) at (%g, %g) r %g", d.Color, d.X, d.Y, d.R)
}

// ExportLayout converts l and the dots drawn on it into their JSON form.
// Dots without a color get dotColor.
func ExportLayout(l layout.Layout, dots []layout.Dot, dotColor string) LayoutExport {
	e := LayoutExport{
		Width:         l.Width,
		Height:        l.Height,
		StartFret:     l.StartFret,
		EndFret:       l.EndFret,
		StringCount:   l.StringCount,
		XMargin:       l.XMargin,
		YMargin:       l.YMargin,
		NeckWidth:     l.NeckWidth,
		NeckHeight:    l.NeckHeight,
		StringMargin:  l.StringMargin,
		FretCount:     l.FretCount,
		FretHeight:    l.FretHeight,
		FretNumOffset: l.FretNumOffset,
		DotRadius:     l.DotRadius,
	}
	for _, c := range l.Coords() {
		p := l.Point(c)
		e.Positions = append(e.Positions, PositionExport{FretCoord: c, X: p.X, Y: p.Y})
	}
	for _, d := range dots {
		color := d.Color
		if color == "" {
			color = dotColor
		}
		p := l.DotCenter(d.FretCoord)
		e.Dots = append(e.Dots, DotExport{
			FretCoord: d.FretCoord,
			Color:     color,
			X:         p.X,
			Y:         p.Y,
			R:         l.DotRadiusAt(d.Fret),
		})
	}
	return e
}

// MarshalLayout encodes an exported layout as indented JSON.
func MarshalLayout(e LayoutExport) ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// UnmarshalLayout decodes JSON produced by [MarshalLayout].
func UnmarshalLayout(data []byte) (LayoutExport, error) {
	var e LayoutExport
	err := json.Unmarshal(data, &e)
	return e, err
}
