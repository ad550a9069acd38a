package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/fretboard/pkg/core/fretboard"
	"github.com/matzehuels/fretboard/pkg/core/fretboard/sink"
	"github.com/matzehuels/fretboard/pkg/core/render"
	"github.com/matzehuels/fretboard/pkg/errors"
	"github.com/matzehuels/fretboard/pkg/observability"
)

// Render draws the diagram once per requested format and returns the
// artifacts keyed by format. opts must already be validated.
func Render(ctx context.Context, opts Options, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	var svg []byte

	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		hooks := observability.Render()
		hooks.OnRenderStart(ctx, format)
		start := time.Now()

		var data []byte
		var err error
		switch format {
		case FormatSVG:
			data, err = renderSVG(opts)
			svg = data
		case FormatPNG:
			data, err = renderPNG(opts)
		case FormatPDF:
			if svg == nil {
				if svg, err = renderSVG(opts); err != nil {
					break
				}
			}
			data, err = render.ToPDF(ctx, svg)
		case FormatJSON:
			data, err = renderJSON(opts)
		default:
			err = ValidateFormat(format)
		}

		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			if errors.GetCode(err) != "" {
				return nil, err
			}
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// svgIDPrefix derives element ids from the diagram, so identical diagrams
// produce identical documents.
func svgIDPrefix(opts Options) string {
	return "fb-" + opts.Hash()[:12]
}

func renderSVG(opts Options) ([]byte, error) {
	d, err := fretboard.Render(sink.SVGHost(sink.WithIDPrefix(svgIDPrefix(opts))), opts.Diagram())
	if err != nil {
		return nil, err
	}
	defer d.Destroy()
	return d.Surface().(*sink.SVGSurface).Bytes(), nil
}

func renderPNG(opts Options) ([]byte, error) {
	d, err := fretboard.Render(sink.PNGHost(sink.WithScale(opts.Scale)), opts.Diagram())
	if err != nil {
		return nil, err
	}
	defer d.Destroy()
	return d.Surface().(*sink.PNGSurface).Bytes()
}

// renderJSON draws the diagram to validate it like the other formats, then
// exports the geometry it was drawn with.
func renderJSON(opts Options) ([]byte, error) {
	d, err := fretboard.Render(sink.SVGHost(sink.WithIDPrefix(svgIDPrefix(opts))), opts.Diagram())
	if err != nil {
		return nil, err
	}
	defer d.Destroy()
	drawn := d.Options()
	return MarshalLayout(ExportLayout(d.Layout(), drawn.Dots, drawn.DotColor))
}
