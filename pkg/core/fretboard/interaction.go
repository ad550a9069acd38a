package fretboard

import (
	"github.com/matzehuels/fretboard/pkg/core/fretboard/layout"
	"github.com/matzehuels/fretboard/pkg/core/fretboard/surface"
)

func (d *Diagram) listen() {
	d.unsubs = append(d.unsubs, d.surface.Subscribe(surface.Click, d.handleClick))
	if d.opts.DrawDotOnHover {
		d.unsubs = append(d.unsubs,
			d.surface.Subscribe(surface.Move, d.handleMove),
			d.surface.Subscribe(surface.Leave, d.handleLeave),
		)
	}
}

func (d *Diagram) handleClick(e surface.Event) {
	d.opts.OnClick(d.layout.Nearest(e.Point), d.surface)
}

func (d *Diagram) handleMove(e surface.Event) {
	coord := d.layout.Nearest(e.Point)
	d.clearHover()
	d.hover = d.drawDot(layout.Dot{FretCoord: coord, Color: d.opts.HoverDotColor}, surface.NonInteractive())
}

func (d *Diagram) handleLeave(surface.Event) {
	d.clearHover()
}

func (d *Diagram) clearHover() {
	if d.hover != nil {
		d.surface.Remove(d.hover)
		d.hover = nil
	}
}

// Hover returns the hover dot currently shown, or nil.
func (d *Diagram) Hover() surface.Element { return d.hover }

// Destroy detaches every event listener, removes the hover dot and closes
// the surface. Calling it again does nothing.
func (d *Diagram) Destroy() error {
	if d.closed {
		return nil
	}
	d.closed = true

	for _, unsub := range d.unsubs {
		unsub()
	}
	d.unsubs = nil
	d.clearHover()
	return d.surface.Close()
}
