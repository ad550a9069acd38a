package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fretboard/pkg/core/fretboard"
	"github.com/matzehuels/fretboard/pkg/core/fretboard/layout"
	"github.com/matzehuels/fretboard/pkg/core/fretboard/sink"
	"github.com/matzehuels/fretboard/pkg/io"
	"github.com/matzehuels/fretboard/pkg/pipeline"
)

// layoutCommand creates the layout command for inspecting derived geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags     diagramFlags
		output    string
		positions bool
	)

	cmd := &cobra.Command{
		Use:   "layout [diagram.toml]",
		Short: "Print the geometry derived for a diagram",
		Long: `Print the geometry derived for a diagram.

The layout command derives margins, fret spacing and dot size for a diagram
and prints them. With --positions it also lists the canvas point of every
position a click can resolve to. With -o the layout is written as JSON, the
same document 'render -f json' produces.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, fileArg(args))
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), opts, output, positions)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout as JSON to this file")
	cmd.Flags().BoolVar(&positions, "positions", false, "list every clickable position")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, positions bool) error {
	logger := loggerFromContext(ctx)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	// Drawing validates the dots as well as the geometry.
	d, err := fretboard.Render(sink.SVGHost(), opts.Diagram())
	if err != nil {
		return err
	}
	defer d.Destroy()
	l := d.Layout()
	drawn := d.Options()
	logger.Debug("derived layout", "strings", l.StringCount, "frets", l.FretCount)

	printLayout(l)
	if positions {
		printNewline()
		fmt.Fprintln(stdout, positionTable(l, drawn.Dots))
	}

	if output == "" {
		return nil
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := io.WriteLayout(l, drawn.Dots, drawn.DotColor, f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	printNewline()
	printSuccess("Layout written")
	printFile(output)
	printNextStep("Render", "fretboard render -f svg,png")
	return nil
}

func printLayout(l layout.Layout) {
	fmt.Fprintln(stdout, StyleTitle.Render("Layout"))
	printKeyValue("canvas", fmt.Sprintf("%s × %s", num(l.Width), num(l.Height)))
	printKeyValue("frets", fmt.Sprintf("%d to %d (%d spaces)", l.StartFret, l.EndFret, l.FretCount))
	printKeyValue("strings", strconv.Itoa(l.StringCount))
	printKeyValue("margins", fmt.Sprintf("x %s, y %s", num(l.XMargin), num(l.YMargin)))
	printKeyValue("neck", fmt.Sprintf("%s × %s", num(l.NeckWidth), num(l.NeckHeight)))
	printKeyValue("string margin", num(l.StringMargin))
	printKeyValue("fret height", num(l.FretHeight))
	printKeyValue("fret num offset", num(l.FretNumOffset))
	printKeyValue("dot radius", num(l.DotRadius))
}

// positionTable renders the clickable positions, one row per fret and one
// column per string, leftmost string first. Cells hold canvas points; dotted
// positions are highlighted.
func positionTable(l layout.Layout, dots []layout.Dot) string {
	dotted := make(map[layout.FretCoord]bool, len(dots))
	for _, d := range dots {
		dotted[d.FretCoord] = true
	}

	headers := []string{"fret"}
	for s := l.StringCount; s >= 1; s-- {
		headers = append(headers, "string "+strconv.Itoa(s))
	}

	var (
		rows  [][]string
		coord [][]layout.FretCoord
	)
	for _, fret := range fretRows(l) {
		row := []string{strconv.Itoa(fret)}
		var cs []layout.FretCoord
		for s := l.StringCount; s >= 1; s-- {
			c := layout.FretCoord{String: s, Fret: fret}
			p := l.Point(c)
			row = append(row, num(p.X)+", "+num(p.Y))
			cs = append(cs, c)
		}
		rows = append(rows, row)
		coord = append(coord, cs)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 {
				return base.Foreground(colorGray)
			}
			if row < len(coord) && dotted[coord[row][col-1]] {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base.Foreground(colorWhite)
		}).
		String()
}

// fretRows lists the frets of l in the order they appear from the top.
func fretRows(l layout.Layout) []int {
	var frets []int
	if l.StartFret == 1 {
		frets = append(frets, 0)
	}
	for f := l.StartFret; f <= l.EndFret; f++ {
		frets = append(frets, f)
	}
	return frets
}

// num formats a metric with at most three decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
