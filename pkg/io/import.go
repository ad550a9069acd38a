package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/fretboard/pkg/errors"
	"github.com/matzehuels/fretboard/pkg/pipeline"
)

// ReadTOML decodes a TOML diagram from r over [pipeline.DefaultOptions].
func ReadTOML(r io.Reader) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	md, err := toml.NewDecoder(r).Decode(&opts)
	if err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput,
			"unknown keys: %s", strings.Join(keys, ", "))
	}
	return opts, nil
}

// ReadJSON decodes a JSON diagram from r over [pipeline.DefaultOptions].
func ReadJSON(r io.Reader) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	return opts, nil
}

// ImportFile reads the diagram file at path. The format follows the
// extension: .toml or .json.
func ImportFile(path string) (pipeline.Options, error) {
	if err := errors.ValidatePath(path); err != nil {
		return pipeline.Options{}, err
	}

	var read func(io.Reader) (pipeline.Options, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		read = ReadTOML
	case ".json":
		read = ReadJSON
	default:
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported diagram file %q (use .toml or .json)", filepath.Base(path))
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	opts, err := read(f)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}
