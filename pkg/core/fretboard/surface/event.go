package surface

// EventKind identifies a pointer event.
type EventKind int

const (
	Click EventKind = iota
	Move
	Leave
)

var eventKindNames = [...]string{Click: "click", Move: "move", Leave: "leave"}

// String implements fmt.Stringer.
func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return "unknown"
	}
	return eventKindNames[k]
}

// Event is a pointer event in canvas coordinates.
type Event struct {
	Kind  EventKind
	Point Point
}

// Handler receives events from a surface.
type Handler func(Event)

// Dispatcher keeps per-kind subscriber lists for surface implementations.
// The zero value is ready to use.
type Dispatcher struct {
	next     int
	handlers map[EventKind]map[int]Handler
	order    map[EventKind][]int
}

// Subscribe registers h and returns its unsubscribe function.
func (d *Dispatcher) Subscribe(kind EventKind, h Handler) func() {
	if d.handlers == nil {
		d.handlers = make(map[EventKind]map[int]Handler)
		d.order = make(map[EventKind][]int)
	}
	if d.handlers[kind] == nil {
		d.handlers[kind] = make(map[int]Handler)
	}

	id := d.next
	d.next++
	d.handlers[kind][id] = h
	d.order[kind] = append(d.order[kind], id)

	return func() { delete(d.handlers[kind], id) }
}

// Dispatch delivers e to every handler subscribed to its kind, in
// subscription order.
func (d *Dispatcher) Dispatch(e Event) {
	for _, id := range d.order[e.Kind] {
		if h, ok := d.handlers[e.Kind][id]; ok {
			h(e)
		}
	}
}

// Len returns the number of live subscriptions.
func (d *Dispatcher) Len() int {
	n := 0
	for _, hs := range d.handlers {
		n += len(hs)
	}
	return n
}
