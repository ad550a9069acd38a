// Package layout computes the geometry of a fretboard diagram.
//
// # Overview
//
// Given the canvas size, the fret window and the number of strings, [Derive]
// produces a [Layout]: margins, neck size, string and fret spacing, and the
// dot radius. A Layout is a plain value. It is computed once per render and
// never mutated, so identical [Params] always yield identical layouts.
//
// # Coordinates
//
// A [FretCoord] names a position on the instrument: a 1-based string index
// and a fret number, where fret 0 is the open string. [Layout.Point] maps it
// onto the canvas:
//
//	stringNum := |string - StringCount|
//	x := stringNum*StringMargin + XMargin
//	y := fret*FretHeight - FretHeight/2 + YMargin + yOffset
//
// where yOffset is 0 for the open string and -FretHeight/8 otherwise. String
// indices are mirrored: string 1 is drawn on the right-hand side and string
// StringCount on the left, matching the usual "high string first" ordering of
// string names. The mirroring is kept for compatibility with existing diagram
// definitions.
//
// # Hit Testing
//
// [Layout.Nearest] resolves a canvas point to the closest position by a
// brute-force scan of [Layout.Coords]. Ties go to the position enumerated
// first.
package layout
