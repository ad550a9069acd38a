// Package sink provides drawing surfaces a fretboard diagram can be rendered to.
//
// Two surfaces are available:
//
//   - [SVGSurface]: a retained SVG document. Elements keep stable ids so they
//     can be removed again, and pointer events are fed in with
//     [SVGSurface.Dispatch], which translates client coordinates into canvas
//     space.
//   - [PNGSurface]: a retained raster canvas that rasterizes its elements with
//     golang.org/x/image when encoded. Text uses the embedded Go Regular font,
//     so no system fonts are needed.
//
// Both satisfy surface.Surface and are created through a surface.Host:
//
//	d, err := fretboard.Render(sink.SVGHost(), opts)
//	if err != nil {
//	    return err
//	}
//	defer d.Destroy()
//	svg := d.Surface().(*sink.SVGSurface).Bytes()
//
// Surfaces are not safe for concurrent use.
package sink
