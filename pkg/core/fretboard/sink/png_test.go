package sink

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/matzehuels/fretboard/pkg/core/fretboard"
	"github.com/matzehuels/fretboard/pkg/core/fretboard/layout"
	"github.com/matzehuels/fretboard/pkg/core/fretboard/surface"
	"github.com/matzehuels/fretboard/pkg/errors"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"white", color.RGBA{255, 255, 255, 255}, true},
		{"Red", color.RGBA{255, 0, 0, 255}, true},
		{"#00ff80", color.RGBA{0, 255, 128, 255}, true},
		{"#f80", color.RGBA{255, 136, 0, 255}, true},
		{"#ggg", color.RGBA{}, false},
		{"#12345", color.RGBA{}, false},
		{"notacolor", color.RGBA{}, false},
		{" red", color.RGBA{}, false},
		{"#fff ", color.RGBA{}, false},
		{"", color.RGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
		if valid := errors.ValidateColor(tt.in) == nil; valid != ok {
			t.Errorf("ParseColor(%q) ok = %v but ValidateColor accepts it: %v", tt.in, ok, valid)
		}
	}
}

func TestPNGSurfaceSizeAndPixels(t *testing.T) {
	s, err := NewPNGSurface(40, 30, WithScale(1))
	if err != nil {
		t.Fatal(err)
	}
	s.Circle(surface.Point{X: 20, Y: 15}, 10, "red")

	img, err := s.Image()
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("bounds = %v, want 40x30", b)
	}

	if got := img.RGBAAt(20, 15); got.R < 200 || got.G > 60 || got.B > 60 {
		t.Errorf("center pixel = %v, want red", got)
	}
	if got := img.RGBAAt(1, 1); got.R < 250 || got.G < 250 || got.B < 250 {
		t.Errorf("corner pixel = %v, want white background", got)
	}
}

func TestPNGTransparentBackground(t *testing.T) {
	s, _ := NewPNGSurface(10, 10, WithScale(1), WithBackground(""))
	img, err := s.Image()
	if err != nil {
		t.Fatal(err)
	}
	if a := img.RGBAAt(5, 5).A; a != 0 {
		t.Errorf("alpha = %d, want 0", a)
	}
}

func TestPNGRemove(t *testing.T) {
	s, _ := NewPNGSurface(20, 20, WithScale(1))
	e := s.Circle(surface.Point{X: 10, Y: 10}, 8, "black")
	s.Remove(e)

	img, err := s.Image()
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(10, 10); got.R < 250 {
		t.Errorf("removed circle still drawn: %v", got)
	}
}

func TestPNGInvalidSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		opts          []PNGOption
	}{
		{"zero", 0, 10, nil},
		{"too large", 100000, 100000, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPNGSurface(tt.width, tt.height, tt.opts...)
			if !errors.IsSurfaceUnavailable(err) {
				t.Errorf("code = %s, want SURFACE_UNAVAILABLE", errors.GetCode(err))
			}
		})
	}
}

func TestPNGDiagram(t *testing.T) {
	opts := fretboard.DefaultOptions()
	opts.Label = "G"
	opts.ShowFretNums = true
	opts.ShowStringNames = true
	opts.Dots = []layout.Dot{{FretCoord: layout.FretCoord{String: 6, Fret: 3}}}

	d, err := fretboard.Render(PNGHost(), opts)
	if err != nil {
		t.Fatal(err)
	}
	data, err := d.Surface().(*PNGSurface).Bytes()
	if err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 600 {
		t.Errorf("bounds = %v, want 400x600 at the default 2x scale", b)
	}
}
