package layout

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/fretboard/pkg/errors"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func guitar() Params {
	return Params{Width: 200, Height: 300, StartFret: 1, EndFret: 4, StringCount: 6}
}

func mustDerive(t *testing.T, p Params) Layout {
	t.Helper()
	l, err := Derive(p)
	if err != nil {
		t.Fatalf("Derive(%+v) error: %v", p, err)
	}
	return l
}

func TestDeriveDefaultGuitar(t *testing.T) {
	got := mustDerive(t, guitar())

	want := Layout{
		Width: 200, Height: 300,
		StartFret: 1, EndFret: 4,
		StringCount:   6,
		XMargin:       200.0 / 6,
		YMargin:       37.5,
		NeckWidth:     200 - 2*(200.0/6),
		NeckHeight:    225,
		StringMargin:  (200 - 2*(200.0/6)) / 5,
		FretCount:     4,
		FretHeight:    56.25,
		FretNumOffset: (200 - 2*(200.0/6)) / 6,
		DotRadius:     56.25 / 6,
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Derive() mismatch (-want +got):\n%s", diff)
	}

	// Rounded values as they appear in diagrams
	if r := math.Round(got.XMargin*100) / 100; r != 33.33 {
		t.Errorf("XMargin ≈ %v, want 33.33", r)
	}
	if r := math.Round(got.NeckWidth*100) / 100; r != 133.33 {
		t.Errorf("NeckWidth ≈ %v, want 133.33", r)
	}
	if r := math.Round(got.StringMargin*100) / 100; r != 26.67 {
		t.Errorf("StringMargin ≈ %v, want 26.67", r)
	}
}

func TestDeriveLabelGrowsVerticalMargin(t *testing.T) {
	p := guitar()
	p.Labeled = true
	got := mustDerive(t, p)

	if got.YMargin != 56.25 {
		t.Errorf("YMargin = %v, want 56.25", got.YMargin)
	}
	if got.NeckHeight != 187.5 {
		t.Errorf("NeckHeight = %v, want 187.5", got.NeckHeight)
	}
	if got.FretHeight != 187.5/4 {
		t.Errorf("FretHeight = %v, want %v", got.FretHeight, 187.5/4)
	}
	if got.DotRadius != got.FretHeight/6 {
		t.Errorf("DotRadius = %v, want %v", got.DotRadius, got.FretHeight/6)
	}

	// Horizontal metrics do not depend on the label
	plain := mustDerive(t, guitar())
	if got.XMargin != plain.XMargin || got.StringMargin != plain.StringMargin {
		t.Error("label should not change horizontal metrics")
	}
}

func TestDeriveFretCount(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       int
	}{
		{"first position", 1, 4, 4},
		{"open window", 0, 4, 4},
		{"open window of three", 0, 3, 3},
		{"single fret", 5, 5, 1},
		{"open and first fret", 0, 1, 1},
		{"high window", 7, 10, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := guitar()
			p.StartFret, p.EndFret = tt.start, tt.end
			got := mustDerive(t, p)
			if got.FretCount != tt.want {
				t.Errorf("FretCount = %d, want %d", got.FretCount, tt.want)
			}
			if got.FretHeight != got.NeckHeight/float64(tt.want) {
				t.Errorf("FretHeight = %v, want %v", got.FretHeight, got.NeckHeight/float64(tt.want))
			}
		})
	}
}

func TestDeriveInvalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"zero width", func(p *Params) { p.Width = 0 }},
		{"negative height", func(p *Params) { p.Height = -1 }},
		{"NaN width", func(p *Params) { p.Width = math.NaN() }},
		{"infinite height", func(p *Params) { p.Height = math.Inf(1) }},
		{"one string", func(p *Params) { p.StringCount = 1 }},
		{"no strings", func(p *Params) { p.StringCount = 0 }},
		{"negative start fret", func(p *Params) { p.StartFret = -1 }},
		{"inverted range", func(p *Params) { p.StartFret, p.EndFret = 5, 3 }},
		{"empty open window", func(p *Params) { p.StartFret, p.EndFret = 0, 0 }},
		{"too many strings", func(p *Params) { p.StringCount = MaxStrings + 1 }},
		{"end fret too high", func(p *Params) { p.EndFret = MaxFret + 1 }},
		{"huge end fret", func(p *Params) { p.EndFret = math.MaxInt }},
		{"huge start fret", func(p *Params) { p.StartFret, p.EndFret = math.MaxInt-3, math.MaxInt }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := guitar()
			tt.modify(&p)
			_, err := Derive(p)
			if err == nil {
				t.Fatalf("Derive(%+v) should fail", p)
			}
			if !errors.IsConfiguration(err) {
				t.Errorf("Derive(%+v) code = %v, want %v", p, errors.GetCode(err), errors.ErrCodeConfiguration)
			}
		})
	}
}

func TestDeriveLimits(t *testing.T) {
	p := guitar()
	p.StringCount = MaxStrings
	p.StartFret, p.EndFret = 0, MaxFret
	l, err := Derive(p)
	if err != nil {
		t.Fatalf("Derive at the limits: %v", err)
	}
	if l.FretCount != MaxFret {
		t.Errorf("FretCount = %d, want %d", l.FretCount, MaxFret)
	}
	if got, want := len(l.Coords()), MaxStrings*(MaxFret+1); got != want {
		t.Errorf("len(Coords()) = %d, want %d", got, want)
	}

	p.StartFret = MaxFret
	if _, err := Derive(p); err != nil {
		t.Errorf("window %d-%d: %v", MaxFret, MaxFret, err)
	}
}

func TestDeriveIsPure(t *testing.T) {
	p := Params{Width: 317, Height: 911, StartFret: 0, EndFret: 7, StringCount: 7, Labeled: true}
	first := mustDerive(t, p)
	for i := 0; i < 10; i++ {
		if got := mustDerive(t, p); got != first {
			t.Fatalf("Derive() run %d = %+v, want %+v", i, got, first)
		}
	}
}

func TestStringAndFretLines(t *testing.T) {
	l := mustDerive(t, guitar())

	if l.StringX(0) != l.XMargin {
		t.Errorf("StringX(0) = %v, want %v", l.StringX(0), l.XMargin)
	}
	if got, want := l.StringX(l.StringCount-1), l.Width-l.XMargin; math.Abs(got-want) > 1e-9 {
		t.Errorf("last StringX = %v, want %v", got, want)
	}
	if l.FretY(0) != l.YMargin {
		t.Errorf("FretY(0) = %v, want %v", l.FretY(0), l.YMargin)
	}
	if l.FretY(l.FretCount) != l.NeckBottom() {
		t.Errorf("FretY(FretCount) = %v, want %v", l.FretY(l.FretCount), l.NeckBottom())
	}
}

func TestPoint(t *testing.T) {
	l := mustDerive(t, guitar())
	fh := l.FretHeight

	tests := []struct {
		name  string
		coord FretCoord
		want  Point
	}{
		{"first string is rightmost", FretCoord{String: 1, Fret: 1},
			Point{X: 5*l.StringMargin + l.XMargin, Y: fh - fh/2 + l.YMargin - fh/8}},
		{"last string is leftmost", FretCoord{String: 6, Fret: 1},
			Point{X: l.XMargin, Y: fh/2 + l.YMargin - fh/8}},
		{"open string has no lift", FretCoord{String: 6, Fret: 0},
			Point{X: l.XMargin, Y: -fh/2 + l.YMargin}},
		{"third fret", FretCoord{String: 3, Fret: 3},
			Point{X: 3*l.StringMargin + l.XMargin, Y: 3*fh - fh/2 + l.YMargin - fh/8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.Point(tt.coord)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("Point(%v) mismatch (-want +got):\n%s", tt.coord, diff)
			}
			if again := l.Point(tt.coord); again != got {
				t.Errorf("Point(%v) not repeatable: %v then %v", tt.coord, got, again)
			}
		})
	}
}

func TestOpenStringAboveFirstFret(t *testing.T) {
	p := guitar()
	p.StartFret = 0
	l := mustDerive(t, p)

	for s := 1; s <= l.StringCount; s++ {
		open := l.Point(FretCoord{String: s, Fret: 0})
		first := l.Point(FretCoord{String: s, Fret: 1})
		if open.Y >= first.Y {
			t.Errorf("string %d: open y %v should be above fret 1 y %v", s, open.Y, first.Y)
		}
		if open.X != first.X {
			t.Errorf("string %d: open x %v != fret 1 x %v", s, open.X, first.X)
		}
	}
}

func TestDotRadiusAt(t *testing.T) {
	l := Layout{DotRadius: 12}

	if got := l.DotRadiusAt(0); got != 9 {
		t.Errorf("DotRadiusAt(0) = %v, want 9", got)
	}
	for _, fret := range []int{1, 2, 12} {
		if got := l.DotRadiusAt(fret); got != 12 {
			t.Errorf("DotRadiusAt(%d) = %v, want 12", fret, got)
		}
	}
}

func TestDotCenter(t *testing.T) {
	l := mustDerive(t, guitar())

	for _, c := range []FretCoord{{String: 1, Fret: 0}, {String: 4, Fret: 2}} {
		p := l.Point(c)
		got := l.DotCenter(c)
		if got.X != p.X {
			t.Errorf("DotCenter(%v).X = %v, want %v", c, got.X, p.X)
		}
		if got.Y != p.Y+l.DotRadius/2 {
			t.Errorf("DotCenter(%v).Y = %v, want %v", c, got.Y, p.Y+l.DotRadius/2)
		}
	}
}
