package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fretboard/pkg/core/fretboard"
	"github.com/matzehuels/fretboard/pkg/core/fretboard/layout"
	"github.com/matzehuels/fretboard/pkg/core/fretboard/sink"
	"github.com/matzehuels/fretboard/pkg/core/fretboard/surface"
	"github.com/matzehuels/fretboard/pkg/io"
	"github.com/matzehuels/fretboard/pkg/pipeline"
)

var (
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	dotStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	gridStyle   = lipgloss.NewStyle().Foreground(colorDim)
	helpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// pickCommand creates the interactive dot editor.
func (c *CLI) pickCommand() *cobra.Command {
	var (
		flags  diagramFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "pick [diagram.toml]",
		Short: "Place dots on a diagram interactively",
		Long: `Place dots on a diagram interactively.

Move the cursor with the arrow keys (or h/j/k/l), toggle a dot with enter or
space, and press w to write the diagram as TOML. Each toggle is delivered as a
click to the rendered diagram, so the dot lands where a click at the cursor
would resolve.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, fileArg(args))
			if err != nil {
				return err
			}
			if output == "" {
				output = defaultPickOutput(fileArg(args))
			}
			return c.runPick(cmd.Context(), opts, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "diagram file to write (default: the input .toml or fretboard.toml)")

	return cmd
}

func defaultPickOutput(input string) string {
	if strings.EqualFold(filepath.Ext(input), ".toml") {
		return input
	}
	return defaultBase + ".toml"
}

func (c *CLI) runPick(ctx context.Context, opts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	m, err := newPickModel(opts, output)
	if err != nil {
		return err
	}
	defer m.close()

	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	m = final.(*pickModel)
	if m.err != nil {
		return m.err
	}
	logger.Debug("editor closed", "dots", len(m.opts.Dots), "saved", m.saved)

	if !m.saved {
		printWarning("Diagram not written")
		printDetail("dots: %s", pipeline.FormatDots(m.opts.Dots))
		return nil
	}
	printSuccess("Diagram written")
	printFile(output)
	printNewline()
	printNextStep("Render", "fretboard render "+output)
	return nil
}

// pickModel is the bubbletea model of the dot editor. Toggles go through the
// rendered diagram: the cursor position is dispatched as a click and the
// position the diagram reports is toggled.
type pickModel struct {
	opts    pipeline.Options
	output  string
	diagram *fretboard.Diagram
	layout  layout.Layout
	cursor  layout.FretCoord
	clicked []layout.FretCoord
	saved   bool
	status  string
	err     error
}

func newPickModel(opts pipeline.Options, output string) (*pickModel, error) {
	m := &pickModel{opts: opts, output: output}
	if err := m.redraw(); err != nil {
		return nil, err
	}
	m.cursor = layout.FretCoord{String: m.layout.StringCount, Fret: fretRows(m.layout)[0]}
	return m, nil
}

// redraw renders the diagram with the current dots.
func (m *pickModel) redraw() error {
	m.close()
	d := m.opts.Diagram()
	d.OnClick = func(c layout.FretCoord, _ surface.Surface) {
		m.clicked = append(m.clicked, c)
	}
	diagram, err := fretboard.Render(sink.SVGHost(), d)
	if err != nil {
		return err
	}
	m.diagram = diagram
	m.layout = diagram.Layout()
	return nil
}

func (m *pickModel) close() {
	if m.diagram != nil {
		m.diagram.Destroy()
		m.diagram = nil
	}
}

// click delivers a click at the cursor and toggles every position the
// diagram reported.
func (m *pickModel) click() {
	svg := m.diagram.Surface().(*sink.SVGSurface)
	svg.Dispatch(surface.Click, m.layout.Point(m.cursor))

	clicked := m.clicked
	m.clicked = nil
	for _, c := range clicked {
		m.toggle(c)
	}
	if len(clicked) > 0 {
		if err := m.redraw(); err != nil {
			m.err = err
		}
	}
}

func (m *pickModel) toggle(c layout.FretCoord) {
	for i, d := range m.opts.Dots {
		if d.FretCoord == c {
			m.opts.Dots = append(m.opts.Dots[:i:i], m.opts.Dots[i+1:]...)
			m.status = fmt.Sprintf("removed %v", c)
			return
		}
	}
	m.opts.Dots = append(m.opts.Dots, layout.Dot{FretCoord: c})
	m.status = fmt.Sprintf("added %v", c)
}

func (m *pickModel) move(dString, dFret int) {
	frets := fretRows(m.layout)
	s := m.cursor.String + dString
	f := m.cursor.Fret + dFret
	if s >= 1 && s <= m.layout.StringCount {
		m.cursor.String = s
	}
	if f >= frets[0] && f <= frets[len(frets)-1] {
		m.cursor.Fret = f
	}
}

func (m *pickModel) Init() tea.Cmd {
	return nil
}

func (m *pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.move(0, -1)
	case "down", "j":
		m.move(0, 1)
	case "left", "h":
		m.move(1, 0)
	case "right", "l":
		m.move(-1, 0)
	case "enter", " ":
		m.click()
		if m.err != nil {
			return m, tea.Quit
		}
	case "c":
		if len(m.opts.Dots) > 0 {
			m.opts.Dots = nil
			m.status = "cleared"
			if err := m.redraw(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
	case "w":
		if err := io.ExportTOML(m.opts, m.output); err != nil {
			m.status = "write failed: " + err.Error()
			return m, nil
		}
		m.saved = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *pickModel) View() string {
	var b strings.Builder

	title := m.opts.Label
	if title == "" {
		title = "Pick dots"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←↑↓→ move  ⏎ toggle  c clear  w write  q quit"))
	b.WriteString("\n\n")

	dotted := make(map[layout.FretCoord]bool, len(m.opts.Dots))
	for _, d := range m.opts.Dots {
		dotted[d.FretCoord] = true
	}

	b.WriteString("     ")
	for s := m.layout.StringCount; s >= 1; s-- {
		name := ""
		if s-1 < len(m.opts.StringNames) {
			name = m.opts.StringNames[s-1]
		}
		b.WriteString(fmt.Sprintf(" %-2s", truncate(name, 2)))
	}
	b.WriteString("\n")

	for _, fret := range fretRows(m.layout) {
		b.WriteString(gridStyle.Render(fmt.Sprintf("%3d  ", fret)))
		for s := m.layout.StringCount; s >= 1; s-- {
			c := layout.FretCoord{String: s, Fret: fret}
			cell := gridStyle.Render("┼")
			if fret == 0 {
				cell = gridStyle.Render("·")
			}
			if dotted[c] {
				cell = dotStyle.Render("●")
			}
			if c == m.cursor {
				cell = cursorStyle.Render("[") + cell + cursorStyle.Render("]")
			} else {
				cell = " " + cell + " "
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("  cursor %s", m.cursor)))
	if m.status != "" {
		b.WriteString(helpStyle.Render("  ·  " + m.status))
	}
	b.WriteString("\n")
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
