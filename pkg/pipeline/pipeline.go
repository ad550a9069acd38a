// Package pipeline turns serializable diagram options into rendered artifacts.
//
// The CLI and the HTTP service both go through this package, so options are
// defaulted, validated, cached and rendered the same way everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Label = "Am"
//	opts.Dots = []layout.Dot{{FretCoord: layout.FretCoord{String: 2, Fret: 1}}}
//	opts.Formats = []string{pipeline.FormatSVG, pipeline.FormatPNG}
//
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// # Formats
//
//   - svg: the diagram as an SVG document
//   - png: a native raster rendering, Scale pixels per canvas unit
//   - pdf: the SVG converted with rsvg-convert
//   - json: every derived layout metric plus the canvas point of each position
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fretboard/pkg/cache"
	"github.com/matzehuels/fretboard/pkg/core/fretboard"
	"github.com/matzehuels/fretboard/pkg/core/fretboard/layout"
	"github.com/matzehuels/fretboard/pkg/errors"
)

// DefaultScale is the PNG resolution in pixels per canvas unit.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options describes one diagram and the artifacts to render from it.
// It is the serialized form used by diagram files and HTTP requests.
type Options struct {
	// Diagram
	Width           float64      `json:"width" toml:"width"`
	Height          float64      `json:"height" toml:"height"`
	StartFret       int          `json:"start_fret" toml:"start_fret"`
	EndFret         int          `json:"end_fret" toml:"end_fret"`
	StringNames     []string     `json:"string_names" toml:"string_names"`
	ShowStringNames bool         `json:"show_string_names,omitempty" toml:"show_string_names"`
	ShowFretNums    bool         `json:"show_fret_nums,omitempty" toml:"show_fret_nums"`
	Dots            []layout.Dot `json:"dots,omitempty" toml:"dots"`
	DotColor        string       `json:"dot_color,omitempty" toml:"dot_color"`
	Label           string       `json:"label,omitempty" toml:"label"`
	FontSize        float64      `json:"font_size,omitempty" toml:"font_size"`

	// Render
	Formats []string `json:"formats,omitempty" toml:"formats"`
	Scale   float64  `json:"scale,omitempty" toml:"scale"`
	Refresh bool     `json:"refresh,omitempty" toml:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	validated bool
}

// DefaultOptions returns the options of a plain six-string diagram rendered
// as SVG.
func DefaultOptions() Options {
	d := fretboard.DefaultOptions()
	return Options{
		Width:       d.Width,
		Height:      d.Height,
		StartFret:   d.StartFret,
		EndFret:     d.EndFret,
		StringNames: d.StringNames,
		DotColor:    d.DotColor,
		FontSize:    d.FontSize,
		Formats:     []string{FormatSVG},
		Scale:       DefaultScale,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// OptionsHash identifies the diagram; equal diagrams share a hash.
	OptionsHash string

	// Layout is the geometry the diagram was drawn with.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing information.
type Stats struct {
	RenderTime time.Duration
	// Rendered lists the formats that were rendered rather than read from cache.
	Rendered []string
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	Hits      []string // formats served from cache
	RenderHit bool     // every artifact came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks user-supplied fields and fills render
// defaults. Geometry is checked by [layout.Derive] when the diagram is drawn.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetRenderDefaults()

	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if err := errors.ValidateLabel(o.Label); err != nil {
		return err
	}
	for _, name := range o.StringNames {
		if err := errors.ValidateLabel(name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "string name %q", name)
		}
	}
	if o.DotColor != "" {
		if err := errors.ValidateColor(o.DotColor); err != nil {
			return err
		}
	}
	for i, d := range o.Dots {
		if d.Color == "" {
			continue
		}
		if err := errors.ValidateColor(d.Color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "dot %d", i)
		}
	}

	o.validated = true
	return nil
}

// SetRenderDefaults fills unset render options.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Diagram returns the composer options for o.
func (o Options) Diagram() fretboard.Options {
	d := fretboard.DefaultOptions()
	d.Width = o.Width
	d.Height = o.Height
	d.StartFret = o.StartFret
	d.EndFret = o.EndFret
	d.StringNames = append([]string(nil), o.StringNames...)
	d.ShowStringNames = o.ShowStringNames
	d.ShowFretNums = o.ShowFretNums
	d.Dots = append([]layout.Dot(nil), o.Dots...)
	d.DotColor = o.DotColor
	d.Label = o.Label
	d.FontSize = o.FontSize
	return d
}

// Layout derives the geometry of the diagram.
func (o Options) Layout() (layout.Layout, error) {
	return layout.Derive(o.Diagram().Params())
}

// Hash returns a stable hash of the diagram fields. Render options are
// excluded so every format of one diagram shares the hash.
func (o Options) Hash() string {
	key := o
	key.Formats = nil
	key.Scale = 0
	key.Refresh = false
	key.Logger = nil
	data, err := json.Marshal(key)
	if err != nil {
		// NaN and Inf sizes do not marshal.
		data = []byte(fmt.Sprintf("%+v", key))
	}
	return cache.Hash(data)
}

// ArtifactKeyOpts returns the cache key options of one format.
func (o Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
