package io

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/fretboard/pkg/core/fretboard/layout"
	"github.com/matzehuels/fretboard/pkg/pipeline"
)

// WriteTOML encodes opts as a diagram file that [ReadTOML] reads back.
func WriteTOML(opts pipeline.Options, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(opts); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportTOML writes opts to a TOML file at path.
func ExportTOML(opts pipeline.Options, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteTOML(opts, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteLayout writes the geometry of l and its dots as indented JSON.
func WriteLayout(l layout.Layout, dots []layout.Dot, dotColor string, w io.Writer) error {
	data, err := pipeline.MarshalLayout(pipeline.ExportLayout(l, dots, dotColor))
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}
