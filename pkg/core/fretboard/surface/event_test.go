package surface

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDispatcherOrderAndKinds(t *testing.T) {
	var d Dispatcher
	var got []string

	d.Subscribe(Click, func(e Event) { got = append(got, "click-a") })
	d.Subscribe(Move, func(e Event) { got = append(got, "move") })
	d.Subscribe(Click, func(e Event) { got = append(got, "click-b") })

	d.Dispatch(Event{Kind: Click})
	d.Dispatch(Event{Kind: Leave})
	d.Dispatch(Event{Kind: Move})

	want := []string{"click-a", "click-b", "move"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dispatch order mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatcherUnsubscribe(t *testing.T) {
	var d Dispatcher
	calls := 0

	unsub := d.Subscribe(Click, func(Event) { calls++ })
	if d.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", d.Len())
	}

	d.Dispatch(Event{Kind: Click})
	unsub()
	unsub() // idempotent
	d.Dispatch(Event{Kind: Click})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if d.Len() != 0 {
		t.Errorf("Len() = %d, want 0", d.Len())
	}
}

func TestDispatcherPassesPoint(t *testing.T) {
	var d Dispatcher
	var got Point
	d.Subscribe(Move, func(e Event) { got = e.Point })

	d.Dispatch(Event{Kind: Move, Point: Point{X: 3, Y: 4}})
	if got != (Point{X: 3, Y: 4}) {
		t.Errorf("point = %v, want {3 4}", got)
	}
}

func TestEventKindString(t *testing.T) {
	tests := map[EventKind]string{Click: "click", Move: "move", Leave: "leave", EventKind(42): "unknown"}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("EventKind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}

func TestApplyShapeOptions(t *testing.T) {
	if ApplyShapeOptions().NonInteractive {
		t.Error("default shape should be interactive")
	}
	if !ApplyShapeOptions(NonInteractive()).NonInteractive {
		t.Error("NonInteractive() should be applied")
	}
}
