// Package fretboard draws fretboard diagrams onto a drawing surface.
//
// # Overview
//
// [Render] takes [Options], derives the geometry once with the layout
// package, creates a surface from a [surface.Host] and draws, in order:
//
//  1. one vertical line per string
//  2. one horizontal line per fret boundary (FretCount+1 lines)
//  3. the title label, if any
//  4. fret numbers, if ShowFretNums is set
//  5. the dots
//  6. string names, if ShowStringNames is set
//
// Later primitives are layered on top of earlier ones.
//
// Configuration errors are reported before the surface is created, so a bad
// diagram never leaves a half-drawn canvas attached to its host.
//
// # Interaction
//
// The returned [Diagram] listens to the surface's pointer events. A click is
// resolved to the nearest fret position and passed to Options.OnClick. With
// DrawDotOnHover, a non-interactive dot follows the pointer and disappears
// when the pointer leaves the surface. [Diagram.Destroy] removes every
// listener and closes the surface.
//
// # Example
//
//	opts := fretboard.DefaultOptions()
//	opts.Label = "C"
//	opts.Dots = []layout.Dot{
//	    {FretCoord: layout.FretCoord{String: 2, Fret: 1}},
//	    {FretCoord: layout.FretCoord{String: 4, Fret: 2}},
//	    {FretCoord: layout.FretCoord{String: 5, Fret: 3}},
//	}
//	d, err := fretboard.Render(sink.SVGHost(), opts)
//	if err != nil {
//	    return err
//	}
//	svg := d.Surface().(*sink.SVGSurface).Bytes()
package fretboard
