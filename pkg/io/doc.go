// Package io reads diagram files and writes diagrams and layouts back out.
//
// # Diagram Files
//
// A diagram file holds [pipeline.Options] in TOML or JSON. Fields that are
// left out keep their defaults (a six-string guitar showing frets 1 to 4),
// so a file only lists what differs:
//
//	label = "C"
//	show_fret_nums = true
//	formats = ["svg", "png"]
//
//	[[dots]]
//	string = 2
//	fret = 1
//
//	[[dots]]
//	string = 4
//	fret = 2
//	color = "red"
//
// The JSON form uses the same keys:
//
//	{"label": "C", "dots": [{"string": 2, "fret": 1}]}
//
// Unknown keys are rejected, so a misspelt option does not silently fall
// back to its default.
//
// # Keys
//
//   - width, height: canvas size (default 200 × 300)
//   - start_fret, end_fret: fret window (default 1 to 4; 0 includes the nut)
//   - string_names: one name per string, highest string first
//   - show_string_names, show_fret_nums: optional annotations
//   - dots: positions to mark, each with string, fret and optional color
//   - dot_color: color of dots without their own (default white)
//   - label: title above the neck
//   - font_size: text size (default 16)
//   - formats: any of svg, png, pdf, json (default svg)
//   - scale: PNG pixels per canvas unit (default 2)
//
// # Layout Export
//
// [WriteLayout] writes the derived geometry of a diagram as JSON, including
// the canvas point of every position a click can resolve to. It is the same
// document the pipeline produces for the json format.
package io
