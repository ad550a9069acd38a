// Package surface defines the drawing surface a fretboard diagram is drawn on.
//
// The diagram composer never creates graphics itself: it asks a [Host] for a
// [Surface] of the right size and issues line, circle and text primitives
// against it. Implementations live in the sink package (SVG and PNG) and in
// tests (recording spies).
//
// Surfaces are retained: every primitive returns an [Element] that can later
// be removed, which is how transient hover markers are replaced.
//
// Pointer input flows the other way. A surface reports click, move and leave
// events to subscribers with the pointer position already translated into
// canvas coordinates. Handlers run synchronously, one event at a time.
// Surfaces are not safe for concurrent use.
package surface

import "github.com/matzehuels/fretboard/pkg/core/fretboard/layout"

// Point is a location in canvas space.
type Point = layout.Point

// Host creates surfaces and attaches them to a container it owns.
type Host interface {
	// NewSurface creates a width × height canvas attached to the host.
	NewSurface(width, height float64) (Surface, error)
}

// HostFunc adapts a function to the [Host] interface.
type HostFunc func(width, height float64) (Surface, error)

// NewSurface calls f(width, height).
func (f HostFunc) NewSurface(width, height float64) (Surface, error) { return f(width, height) }

// Element is a handle to a drawn primitive.
type Element interface {
	ID() string
}

// Surface is a vector canvas accepting drawing primitives.
type Surface interface {
	// Line draws a straight line from one point to another.
	Line(from, to Point, stroke string) Element
	// Circle draws a filled circle with a black outline.
	Circle(center Point, r float64, fill string, opts ...ShapeOption) Element
	// Text draws text horizontally centered on at, which lies on the baseline.
	Text(at Point, text string, fontSize float64) Element
	// Remove deletes a previously drawn element. Removing twice is a no-op.
	Remove(e Element)
	// Subscribe registers h for events of the given kind and returns a
	// function that removes the subscription.
	Subscribe(kind EventKind, h Handler) (unsubscribe func())
	// Close detaches the surface from its host.
	Close() error
}

// ShapeOption configures a circle.
type ShapeOption func(*ShapeStyle)

// ShapeStyle is the resolved set of shape options.
type ShapeStyle struct {
	NonInteractive bool // shape ignores pointer events
}

// NonInteractive makes a shape transparent to pointer events.
func NonInteractive() ShapeOption {
	return func(s *ShapeStyle) { s.NonInteractive = true }
}

// ApplyShapeOptions resolves opts into a ShapeStyle.
func ApplyShapeOptions(opts ...ShapeOption) ShapeStyle {
	var s ShapeStyle
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
