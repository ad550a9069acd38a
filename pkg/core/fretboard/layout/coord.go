package layout

import (
	"fmt"
	"math"
)

// FretCoord identifies a position on the fretboard.
// String runs from 1 to the string count; Fret 0 is the open string.
type FretCoord struct {
	String int `json:"string" toml:"string"`
	Fret   int `json:"fret" toml:"fret"`
}

// Format implements fmt.Formatter. Every verb prints "string 3 fret 0".
func (c FretCoord) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "string %d fret %d", c.String, c.Fret)
}

// Dot is a marker drawn at a position. An empty Color means the diagram default.
type Dot struct {
	FretCoord
	Color string `json:"color,omitempty" toml:"color,omitempty"`
}

// Format implements fmt.Formatter, appending the color when one is set.
func (d Dot) Format(f fmt.State, verb rune) {
	d.FretCoord.Format(f, verb)
	if d.Color != "" {
		fmt.Fprintf(f, " (%s)", d.Color)
	}
}

// Point is a location in canvas space.
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Coords returns every position a pointer can resolve to, in scan order:
// strings ascending, and within each string frets StartFret..EndFret
// ascending. A diagram starting at fret 1 also offers the open string, placed
// just before fret 1.
func (l Layout) Coords() []FretCoord {
	perString := l.EndFret - l.StartFret + 1
	if l.StartFret == 1 {
		perString++
	}
	if perString <= 0 || l.StringCount <= 0 {
		return nil
	}
	coords := make([]FretCoord, 0, perString*l.StringCount)

	for s := 1; s <= l.StringCount; s++ {
		if l.StartFret == 1 {
			coords = append(coords, FretCoord{String: s, Fret: 0})
		}
		for f := l.StartFret; f <= l.EndFret; f++ {
			coords = append(coords, FretCoord{String: s, Fret: f})
		}
	}
	return coords
}

// Nearest returns the position whose point is closest to p.
// When two positions are equally close the one earlier in [Layout.Coords] wins.
// A layout with no positions, such as the zero Layout, returns the zero FretCoord.
func (l Layout) Nearest(p Point) FretCoord {
	coords := l.Coords()
	if len(coords) == 0 {
		return FretCoord{}
	}

	best := coords[0]
	bestDist := Distance(p, l.Point(best))
	for _, c := range coords[1:] {
		if d := Distance(p, l.Point(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
