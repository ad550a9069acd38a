package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/fretboard/pkg/core/fretboard/surface"
	"github.com/matzehuels/fretboard/pkg/errors"
)

const svgNS = "http://www.w3.org/2000/svg"

// SVGOption configures an [SVGSurface].
type SVGOption func(*SVGSurface)

// WithOffset sets the client position of the canvas origin, as reported by
// the bounding box of the embedding element.
func WithOffset(x, y float64) SVGOption {
	return func(s *SVGSurface) { s.offset = surface.Point{X: x, Y: y} }
}

// WithClientScale sets how many client pixels one canvas unit covers.
// Values that are not positive are ignored.
func WithClientScale(scale float64) SVGOption {
	return func(s *SVGSurface) {
		if scale > 0 {
			s.scale = scale
		}
	}
}

// WithIDPrefix sets the prefix of element ids. By default every surface gets
// a random prefix so several diagrams can share one document.
func WithIDPrefix(prefix string) SVGOption {
	return func(s *SVGSurface) { s.prefix = prefix }
}

// SVGHost returns a host creating SVG surfaces configured with opts.
func SVGHost(opts ...SVGOption) surface.Host {
	return surface.HostFunc(func(width, height float64) (surface.Surface, error) {
		return NewSVGSurface(width, height, opts...)
	})
}

// SVGSurface is a retained SVG canvas.
type SVGSurface struct {
	retained

	width, height float64
	offset        surface.Point
	scale         float64
}

// NewSVGSurface creates a width × height SVG canvas.
func NewSVGSurface(width, height float64, opts ...SVGOption) (*SVGSurface, error) {
	if !(width > 0) || !(height > 0) {
		return nil, errors.New(errors.ErrCodeSurfaceUnavailable,
			"svg canvas needs a positive size, got %vx%v", width, height)
	}
	s := &SVGSurface{
		retained: newRetained(""),
		width:    width,
		height:   height,
		scale:    1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.prefix == "" {
		s.prefix = "fb-" + uuid.NewString()
	}
	return s, nil
}

// Dispatch delivers a pointer event at the client position p.
// The position is translated into canvas space first.
func (s *SVGSurface) Dispatch(kind surface.EventKind, p surface.Point) {
	if s.closed {
		return
	}
	s.events.Dispatch(surface.Event{Kind: kind, Point: s.ToCanvas(p)})
}

// ToCanvas translates a client position into canvas space.
func (s *SVGSurface) ToCanvas(p surface.Point) surface.Point {
	return surface.Point{
		X: (p.X - s.offset.X) / s.scale,
		Y: (p.Y - s.offset.Y) / s.scale,
	}
}

// Size returns the canvas dimensions.
func (s *SVGSurface) Size() (width, height float64) { return s.width, s.height }

// Bytes returns the document in its current state.
func (s *SVGSurface) Bytes() []byte {
	var buf bytes.Buffer
	w, h := num(s.width), num(s.height)
	fmt.Fprintf(&buf, `<svg xmlns="%s" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n", svgNS, w, h, w, h)
	for _, e := range s.visible() {
		writeSVGElement(&buf, e)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeSVGElement(buf *bytes.Buffer, e *element) {
	switch e.kind {
	case lineElement:
		fmt.Fprintf(buf, `  <line id="%s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
			attr(e.id), num(e.a.X), num(e.a.Y), num(e.b.X), num(e.b.Y), attr(e.color))
	case circleElement:
		events := ""
		if e.passive {
			events = ` pointer-events="none"`
		}
		fmt.Fprintf(buf, `  <circle id="%s" cx="%s" cy="%s" r="%s" stroke="black" fill="%s"%s/>`+"\n",
			attr(e.id), num(e.a.X), num(e.a.Y), num(e.r), attr(e.color), events)
	case textElement:
		fmt.Fprintf(buf, `  <text id="%s" x="%s" y="%s" text-anchor="middle" font-size="%s">`,
			attr(e.id), num(e.a.X), num(e.a.Y), num(e.size))
		xml.EscapeText(buf, []byte(e.text))
		buf.WriteString("</text>\n")
	}
}

// num formats v with the shortest representation that round-trips.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func attr(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
