package server

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/fretboard/pkg/core/fretboard/layout"
	"github.com/matzehuels/fretboard/pkg/errors"
	"github.com/matzehuels/fretboard/pkg/pipeline"
)

// ParseQuery reads diagram options from query parameters over
// [pipeline.DefaultOptions]. Keys match the diagram file keys:
//
//	width, height, start_fret, end_fret, font_size, scale   numbers
//	show_string_names, show_fret_nums, refresh              booleans
//	label, dot_color                                        strings
//	string_names                                            comma-separated, e.g. E,A,D,G
//	dots                                                    string:fret[:color] list, e.g. 2:1,4:2:red
//
// Unknown keys are ignored so other parameters (x, y) can share the query.
func ParseQuery(q url.Values) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	p := queryParser{q: q}

	p.floatVar("width", &opts.Width)
	p.floatVar("height", &opts.Height)
	p.intVar("start_fret", &opts.StartFret)
	p.intVar("end_fret", &opts.EndFret)
	p.floatVar("font_size", &opts.FontSize)
	p.floatVar("scale", &opts.Scale)
	p.boolVar("show_string_names", &opts.ShowStringNames)
	p.boolVar("show_fret_nums", &opts.ShowFretNums)
	p.boolVar("refresh", &opts.Refresh)

	if q.Has("label") {
		opts.Label = q.Get("label")
	}
	if q.Has("dot_color") {
		opts.DotColor = q.Get("dot_color")
	}
	if v := q.Get("string_names"); v != "" {
		opts.StringNames = strings.Split(v, ",")
	}
	if v := q.Get("dots"); v != "" && p.err == nil {
		opts.Dots, p.err = pipeline.ParseDots(v)
	}

	if p.err != nil {
		return pipeline.Options{}, p.err
	}
	return opts, nil
}

func parsePoint(q url.Values) (layout.Point, error) {
	var pt layout.Point
	p := queryParser{q: q}
	p.floatVar("x", &pt.X)
	p.floatVar("y", &pt.Y)
	if p.err == nil && (!q.Has("x") || !q.Has("y")) {
		p.err = errors.New(errors.ErrCodeInvalidInput, "x and y are required")
	}
	return pt, p.err
}

// queryParser keeps the first error so fields can be read without checks in
// between.
type queryParser struct {
	q   url.Values
	err error
}

func (p *queryParser) floatVar(key string, dst *float64) {
	if p.err != nil || !p.q.Has(key) {
		return
	}
	v, err := strconv.ParseFloat(p.q.Get(key), 64)
	if err != nil {
		p.err = errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", key)
		return
	}
	*dst = v
}

func (p *queryParser) intVar(key string, dst *int) {
	if p.err != nil || !p.q.Has(key) {
		return
	}
	v, err := strconv.Atoi(p.q.Get(key))
	if err != nil {
		p.err = errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", key)
		return
	}
	*dst = v
}

func (p *queryParser) boolVar(key string, dst *bool) {
	if p.err != nil || !p.q.Has(key) {
		return
	}
	v := p.q.Get(key)
	if v == "" {
		*dst = true
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.err = errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", key)
		return
	}
	*dst = b
}
