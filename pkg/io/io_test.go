package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/fretboard/pkg/core/fretboard/layout"
	"github.com/matzehuels/fretboard/pkg/errors"
	"github.com/matzehuels/fretboard/pkg/pipeline"
)

var ignoreRuntime = cmpopts.IgnoreUnexported(pipeline.Options{})

const chordTOML = `
label = "C"
show_fret_nums = true
formats = ["svg", "png"]

[[dots]]
string = 2
fret = 1

[[dots]]
string = 4
fret = 2
color = "red"
`

func TestReadTOML(t *testing.T) {
	got, err := ReadTOML(strings.NewReader(chordTOML))
	if err != nil {
		t.Fatal(err)
	}

	want := pipeline.DefaultOptions()
	want.Label = "C"
	want.ShowFretNums = true
	want.Formats = []string{"svg", "png"}
	want.Dots = []layout.Dot{
		{FretCoord: layout.FretCoord{String: 2, Fret: 1}},
		{FretCoord: layout.FretCoord{String: 4, Fret: 2}, Color: "red"},
	}
	if diff := cmp.Diff(want, got, ignoreRuntime); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestReadTOMLReplacesStringNames(t *testing.T) {
	got, err := ReadTOML(strings.NewReader(`string_names = ["A", "E", "C", "G"]`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"A", "E", "C", "G"}, got.StringNames); diff != "" {
		t.Errorf("string names mismatch (-want +got):\n%s", diff)
	}
}

func TestReadTOMLErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax", `label = `},
		{"unknown key", `lable = "C"`},
		{"wrong type", `width = "wide"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTOML(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestReadJSON(t *testing.T) {
	got, err := ReadJSON(strings.NewReader(`{"label": "Am", "start_fret": 0, "dots": [{"string": 2, "fret": 1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if got.Label != "Am" || got.StartFret != 0 || got.EndFret != 4 {
		t.Errorf("unexpected options %+v", got)
	}
	if len(got.Dots) != 1 || got.Dots[0].FretCoord != (layout.FretCoord{String: 2, Fret: 1}) {
		t.Errorf("dots = %+v", got.Dots)
	}

	if _, err := ReadJSON(strings.NewReader(`{"colour": "red"}`)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown field: err = %v, want INVALID_INPUT", err)
	}
}

func TestWriteTOMLRoundTrip(t *testing.T) {
	opts := pipeline.DefaultOptions()
	opts.Label = "G"
	opts.StartFret = 0
	opts.EndFret = 3
	opts.Scale = 3
	opts.Dots = []layout.Dot{
		{FretCoord: layout.FretCoord{String: 1, Fret: 3}, Color: "#ff0000"},
		{FretCoord: layout.FretCoord{String: 5, Fret: 2}},
	}

	var buf bytes.Buffer
	if err := WriteTOML(opts, &buf); err != nil {
		t.Fatal(err)
	}
	got, err := ReadTOML(&buf)
	if err != nil {
		t.Fatalf("reading back:\n%s\nerr: %v", buf.String(), err)
	}
	if diff := cmp.Diff(opts, got, ignoreRuntime); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "c.toml")
	if err := os.WriteFile(tomlPath, []byte(chordTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := ImportFile(tomlPath)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Label != "C" || len(opts.Dots) != 2 {
		t.Errorf("unexpected options %+v", opts)
	}

	jsonPath := filepath.Join(dir, "am.JSON")
	if err := os.WriteFile(jsonPath, []byte(`{"label": "Am"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if opts, err := ImportFile(jsonPath); err != nil || opts.Label != "Am" {
		t.Errorf("ImportFile(json) = %+v, %v", opts, err)
	}

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing", filepath.Join(dir, "nope.toml"), errors.ErrCodeFileNotFound},
		{"extension", filepath.Join(dir, "c.yaml"), errors.ErrCodeInvalidFormat},
		{"empty", "", errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportFile(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestWriteLayout(t *testing.T) {
	l, err := layout.Derive(layout.Params{Width: 200, Height: 300, StartFret: 1, EndFret: 4, StringCount: 6})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	dots := []layout.Dot{{FretCoord: layout.FretCoord{String: 3, Fret: 2}}}
	if err := WriteLayout(l, dots, "white", &buf); err != nil {
		t.Fatal(err)
	}

	e, err := pipeline.UnmarshalLayout(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if e.FretHeight != 56.25 || e.DotRadius != l.DotRadius {
		t.Errorf("exported metrics = %+v", e)
	}
	if len(e.Dots) != 1 || e.Dots[0].Color != "white" {
		t.Errorf("exported dots = %+v", e.Dots)
	}
}

func TestExampleDiagrams(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example diagrams")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			opts, err := ImportFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				t.Fatal(err)
			}
			if _, err := opts.Layout(); err != nil {
				t.Fatal(err)
			}
			if len(opts.Dots) == 0 {
				t.Error("example has no dots")
			}
		})
	}
}
