package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fretboard/pkg/io"
	"github.com/matzehuels/fretboard/pkg/pipeline"
)

// diagramFlags binds the diagram options shared by render, layout and pick.
// Flags that were set override the diagram file.
type diagramFlags struct {
	values      pipeline.Options
	stringNames string
	dots        string
}

func (f *diagramFlags) register(cmd *cobra.Command) {
	f.values = pipeline.DefaultOptions()
	fs := cmd.Flags()
	fs.Float64Var(&f.values.Width, "width", f.values.Width, "canvas width")
	fs.Float64Var(&f.values.Height, "height", f.values.Height, "canvas height")
	fs.IntVar(&f.values.StartFret, "start", f.values.StartFret, "first fret shown (0 includes the nut)")
	fs.IntVar(&f.values.EndFret, "end", f.values.EndFret, "last fret shown")
	fs.StringVar(&f.stringNames, "strings", strings.Join(f.values.StringNames, ","), "string names, highest string first (comma-separated)")
	fs.BoolVar(&f.values.ShowStringNames, "string-names", false, "show string names below the neck")
	fs.BoolVar(&f.values.ShowFretNums, "fret-nums", false, "show fret numbers beside the neck")
	fs.StringVarP(&f.dots, "dots", "d", "", "dots as string:fret[:color] (comma-separated)")
	fs.StringVar(&f.values.DotColor, "dot-color", f.values.DotColor, "default dot color")
	fs.StringVarP(&f.values.Label, "label", "l", "", "title above the neck")
	fs.Float64Var(&f.values.FontSize, "font-size", f.values.FontSize, "text size")
}

// options loads file (if any) and applies the flags that were set.
func (f *diagramFlags) options(cmd *cobra.Command, file string) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if file != "" {
		var err error
		if opts, err = io.ImportFile(file); err != nil {
			return pipeline.Options{}, err
		}
	}

	fs := cmd.Flags()
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("width", func() { opts.Width = f.values.Width })
	set("height", func() { opts.Height = f.values.Height })
	set("start", func() { opts.StartFret = f.values.StartFret })
	set("end", func() { opts.EndFret = f.values.EndFret })
	set("strings", func() { opts.StringNames = strings.Split(f.stringNames, ",") })
	set("string-names", func() { opts.ShowStringNames = f.values.ShowStringNames })
	set("fret-nums", func() { opts.ShowFretNums = f.values.ShowFretNums })
	set("dot-color", func() { opts.DotColor = f.values.DotColor })
	set("label", func() { opts.Label = f.values.Label })
	set("font-size", func() { opts.FontSize = f.values.FontSize })

	if fs.Changed("dots") {
		dots, err := pipeline.ParseDots(f.dots)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Dots = dots
	}
	return opts, nil
}

// fileArg returns the optional diagram file argument.
func fileArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
