package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/fretboard/pkg/core/fretboard/layout"
	"github.com/matzehuels/fretboard/pkg/errors"
)

func TestParseDots(t *testing.T) {
	tests := []struct {
		in   string
		want []layout.Dot
	}{
		{"", nil},
		{"2:1", []layout.Dot{{FretCoord: layout.FretCoord{String: 2, Fret: 1}}}},
		{"6:0, 1:3:red", []layout.Dot{
			{FretCoord: layout.FretCoord{String: 6, Fret: 0}},
			{FretCoord: layout.FretCoord{String: 1, Fret: 3}, Color: "red"},
		}},
		{"3:2:#ff0000,", []layout.Dot{{FretCoord: layout.FretCoord{String: 3, Fret: 2}, Color: "#ff0000"}}},
	}
	for _, tt := range tests {
		got, err := ParseDots(tt.in)
		if err != nil {
			t.Errorf("ParseDots(%q): %v", tt.in, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseDots(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
		if tt.want != nil {
			if back := FormatDots(got); back == "" {
				t.Errorf("FormatDots(%v) is empty", got)
			}
		}
	}

	for _, bad := range []string{"2", "x:1", "2:y"} {
		if _, err := ParseDots(bad); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ParseDots(%q) err = %v, want INVALID_INPUT", bad, err)
		}
	}
}

func TestFormatDots(t *testing.T) {
	dots := []layout.Dot{
		{FretCoord: layout.FretCoord{String: 6, Fret: 0}},
		{FretCoord: layout.FretCoord{String: 1, Fret: 3}, Color: "red"},
	}
	if got, want := FormatDots(dots), "6:0,1:3:red"; got != want {
		t.Errorf("FormatDots = %q, want %q", got, want)
	}
}
