package fretboard_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/fretboard/pkg/core/fretboard"
	"github.com/matzehuels/fretboard/pkg/core/fretboard/layout"
	"github.com/matzehuels/fretboard/pkg/core/fretboard/sink"
	"github.com/matzehuels/fretboard/pkg/core/fretboard/surface"
)

func ExampleRender() {
	opts := fretboard.DefaultOptions()
	opts.Label = "C"
	opts.Dots = []layout.Dot{
		{FretCoord: layout.FretCoord{String: 2, Fret: 1}},
		{FretCoord: layout.FretCoord{String: 4, Fret: 2}},
		{FretCoord: layout.FretCoord{String: 5, Fret: 3}},
	}

	d, err := fretboard.Render(sink.SVGHost(), opts)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer d.Destroy()

	svg := string(d.Surface().(*sink.SVGSurface).Bytes())
	fmt.Println("lines:", strings.Count(svg, "<line"))
	fmt.Println("dots:", strings.Count(svg, "<circle"))
	fmt.Println("texts:", strings.Count(svg, "<text"))
	// Output:
	// lines: 11
	// dots: 3
	// texts: 1
}

func ExampleRender_click() {
	opts := fretboard.DefaultOptions()
	opts.OnClick = func(c layout.FretCoord, _ surface.Surface) {
		fmt.Println("clicked", c)
	}

	d, err := fretboard.Render(sink.SVGHost(), opts)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer d.Destroy()

	s := d.Surface().(*sink.SVGSurface)
	s.Dispatch(surface.Click, d.Layout().Point(layout.FretCoord{String: 6, Fret: 0}))
	// Output:
	// clicked string 6 fret 0
}

func ExampleRender_invalid() {
	opts := fretboard.DefaultOptions()
	opts.StartFret, opts.EndFret = 5, 3

	_, err := fretboard.Render(sink.SVGHost(), opts)
	fmt.Println(err)
	// Output:
	// CONFIGURATION: end fret 3 is below start fret 5
}
