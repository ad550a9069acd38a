package fretboard

import (
	"fmt"

	"github.com/matzehuels/fretboard/pkg/core/fretboard/surface"
)

// call records one primitive issued against a spySurface.
type call struct {
	Op       string // line, circle, text, remove
	ID       string
	From, To surface.Point
	R        float64
	Color    string
	Text     string
	FontSize float64
	Passive  bool
}

type spyElement string

func (e spyElement) ID() string { return string(e) }

type spySurface struct {
	width, height float64

	calls  []call
	live   map[string]bool
	events surface.Dispatcher
	closed int
	next   int
}

func newSpySurface(width, height float64) *spySurface {
	return &spySurface{width: width, height: height, live: make(map[string]bool)}
}

func (s *spySurface) add(c call) surface.Element {
	s.next++
	c.ID = fmt.Sprintf("e%d", s.next)
	s.calls = append(s.calls, c)
	s.live[c.ID] = true
	return spyElement(c.ID)
}

func (s *spySurface) Line(from, to surface.Point, stroke string) surface.Element {
	return s.add(call{Op: "line", From: from, To: to, Color: stroke})
}

func (s *spySurface) Circle(center surface.Point, r float64, fill string, opts ...surface.ShapeOption) surface.Element {
	style := surface.ApplyShapeOptions(opts...)
	return s.add(call{Op: "circle", From: center, R: r, Color: fill, Passive: style.NonInteractive})
}

func (s *spySurface) Text(at surface.Point, text string, fontSize float64) surface.Element {
	return s.add(call{Op: "text", From: at, Text: text, FontSize: fontSize})
}

func (s *spySurface) Remove(e surface.Element) {
	if !s.live[e.ID()] {
		return
	}
	delete(s.live, e.ID())
	s.calls = append(s.calls, call{Op: "remove", ID: e.ID()})
}

func (s *spySurface) Subscribe(kind surface.EventKind, h surface.Handler) func() {
	return s.events.Subscribe(kind, h)
}

func (s *spySurface) Close() error {
	s.closed++
	return nil
}

func (s *spySurface) fire(kind surface.EventKind, p surface.Point) {
	s.events.Dispatch(surface.Event{Kind: kind, Point: p})
}

func (s *spySurface) ops(op string) []call {
	var out []call
	for _, c := range s.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// liveCircles returns the circles that have not been removed.
func (s *spySurface) liveCircles() []call {
	var out []call
	for _, c := range s.ops("circle") {
		if s.live[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

// spyHost hands out spy surfaces and remembers them.
type spyHost struct {
	surfaces []*spySurface
	err      error
}

func (h *spyHost) NewSurface(width, height float64) (surface.Surface, error) {
	if h.err != nil {
		return nil, h.err
	}
	s := newSpySurface(width, height)
	h.surfaces = append(h.surfaces, s)
	return s, nil
}

func (h *spyHost) last() *spySurface {
	if len(h.surfaces) == 0 {
		return nil
	}
	return h.surfaces[len(h.surfaces)-1]
}
