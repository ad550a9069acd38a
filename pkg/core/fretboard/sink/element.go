package sink

import (
	"strconv"

	"github.com/matzehuels/fretboard/pkg/core/fretboard/surface"
)

type elementKind int

const (
	lineElement elementKind = iota
	circleElement
	textElement
)

type element struct {
	id      string
	kind    elementKind
	a, b    surface.Point // line endpoints; a is also the circle center and text anchor
	r       float64
	color   string
	text    string
	size    float64
	passive bool // ignores pointer events
	removed bool
}

func (e *element) ID() string { return e.id }

// retained is the element list and event plumbing shared by all surfaces.
type retained struct {
	prefix string
	elems  []*element
	byID   map[string]*element
	next   int
	events surface.Dispatcher
	closed bool
}

func newRetained(prefix string) retained {
	return retained{prefix: prefix, byID: make(map[string]*element)}
}

func (s *retained) add(e *element) surface.Element {
	s.next++
	e.id = s.prefix + "-" + strconv.Itoa(s.next)
	s.elems = append(s.elems, e)
	s.byID[e.id] = e
	return e
}

// Line implements surface.Surface.
func (s *retained) Line(from, to surface.Point, stroke string) surface.Element {
	return s.add(&element{kind: lineElement, a: from, b: to, color: stroke})
}

// Circle implements surface.Surface.
func (s *retained) Circle(center surface.Point, r float64, fill string, opts ...surface.ShapeOption) surface.Element {
	style := surface.ApplyShapeOptions(opts...)
	return s.add(&element{kind: circleElement, a: center, r: r, color: fill, passive: style.NonInteractive})
}

// Text implements surface.Surface.
func (s *retained) Text(at surface.Point, text string, fontSize float64) surface.Element {
	return s.add(&element{kind: textElement, a: at, text: text, size: fontSize})
}

// Remove implements surface.Surface.
func (s *retained) Remove(e surface.Element) {
	if e == nil {
		return
	}
	el, ok := s.byID[e.ID()]
	if !ok {
		return
	}
	el.removed = true
	delete(s.byID, el.id)
}

// Subscribe implements surface.Surface.
func (s *retained) Subscribe(kind surface.EventKind, h surface.Handler) func() {
	return s.events.Subscribe(kind, h)
}

// Close detaches the surface. Later events are ignored; the drawing stays
// readable.
func (s *retained) Close() error {
	s.closed = true
	return nil
}

// Len returns the number of elements currently drawn.
func (s *retained) Len() int { return len(s.byID) }

// visible returns the elements that have not been removed, in drawing order.
func (s *retained) visible() []*element {
	out := make([]*element, 0, len(s.byID))
	for _, e := range s.elems {
		if !e.removed {
			out = append(out, e)
		}
	}
	return out
}
