package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/texbox/pkg/tex"
	"github.com/matzehuels/texbox/pkg/tex/atom"
	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/style"
)

// Editor styles
var (
	editPromptStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	editCursorStyle = lipgloss.NewStyle().Reverse(true)
	editPaneStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// editCommand creates the interactive editor.
func (c *CLI) editCommand() *cobra.Command {
	var styleName string

	cmd := &cobra.Command{
		Use:   "edit [formula]",
		Short: "Edit a formula with a live atom tree and metrics",
		Long: `Open an interactive editor. Every keystroke re-parses the formula in
partial mode and shows the atom tree, the box extents and any errors.

Keys: ←/→ move, home/end jump, backspace/delete erase, enter accepts and
prints the formula, esc or ctrl+c quits without printing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := style.Parse(styleName)
			if err != nil {
				return err
			}
			e, err := c.newEngine()
			if err != nil {
				return err
			}
			m := newEditModel(e, tex.Options{Style: st}, strings.Join(args, " "))
			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(editModel); ok && fm.accepted {
				_, err = fmt.Fprintln(c.Out, fm.source())
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&styleName, "style", "s", "display", "math style: display, text, script, scriptscript")
	return cmd
}

// =============================================================================
// editModel - Live formula editor
// =============================================================================

// editModel is the bubbletea model for the live editor.
type editModel struct {
	engine *tex.Engine
	opts   tex.Options

	input  []rune
	cursor int

	tree string
	box  *box.Box
	errs []error

	height   int
	accepted bool
}

func newEditModel(e *tex.Engine, opts tex.Options, initial string) editModel {
	m := editModel{
		engine: e,
		opts:   opts,
		input:  []rune(initial),
		cursor: len([]rune(initial)),
		height: 24,
	}
	m.refresh()
	return m
}

func (m editModel) source() string { return string(m.input) }

// refresh re-parses and lays out the current input.
func (m *editModel) refresh() {
	m.tree, m.box, m.errs = "", nil, nil
	src := m.source()
	if strings.TrimSpace(src) == "" {
		return
	}
	a, errs := m.engine.ParsePartial(src)
	m.tree = atom.Dump(a)
	m.box = m.engine.Layout(a, m.opts)
	m.errs = errs
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		changed := false
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.accepted = true
			return m, tea.Quit
		case tea.KeyLeft:
			if m.cursor > 0 {
				m.cursor--
			}
		case tea.KeyRight:
			if m.cursor < len(m.input) {
				m.cursor++
			}
		case tea.KeyHome, tea.KeyCtrlA:
			m.cursor = 0
		case tea.KeyEnd, tea.KeyCtrlE:
			m.cursor = len(m.input)
		case tea.KeyBackspace:
			if m.cursor > 0 {
				m.input = append(m.input[:m.cursor-1], m.input[m.cursor:]...)
				m.cursor--
				changed = true
			}
		case tea.KeyDelete:
			if m.cursor < len(m.input) {
				m.input = append(m.input[:m.cursor], m.input[m.cursor+1:]...)
				changed = true
			}
		case tea.KeySpace:
			m.insert([]rune{' '})
			changed = true
		case tea.KeyRunes:
			m.insert(msg.Runes)
			changed = true
		}
		if changed {
			m.refresh()
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height, 8)
	}
	return m, nil
}

// insert places rs at the cursor without aliasing the previous input.
func (m *editModel) insert(rs []rune) {
	next := make([]rune, 0, len(m.input)+len(rs))
	next = append(next, m.input[:m.cursor]...)
	next = append(next, rs...)
	next = append(next, m.input[m.cursor:]...)
	m.input = next
	m.cursor += len(rs)
}

func (m editModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("texbox"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render("⏎ accept  esc quit"))
	b.WriteString("\n\n")

	b.WriteString(editPromptStyle.Render("› "))
	b.WriteString(string(m.input[:m.cursor]))
	cur := " "
	if m.cursor < len(m.input) {
		cur = string(m.input[m.cursor])
	}
	b.WriteString(editCursorStyle.Render(cur))
	if m.cursor < len(m.input) {
		b.WriteString(string(m.input[m.cursor+1:]))
	}
	b.WriteString("\n\n")

	if m.box != nil {
		b.WriteString(formatStats(m.box.Width, m.box.Height, m.box.Depth, false))
		b.WriteString("\n")
	}
	for _, err := range m.errs {
		b.WriteString(StyleError.Render("  " + err.Error()))
		b.WriteString("\n")
	}

	if m.tree != "" {
		lines := strings.Split(strings.TrimRight(m.tree, "\n"), "\n")
		// Header, prompt, stats and the pane border take about eight rows.
		if limit := m.height - 8 - len(m.errs); limit > 0 && len(lines) > limit {
			lines = append(lines[:limit], StyleDim.Render(fmt.Sprintf("… %d more", len(lines)-limit)))
		}
		b.WriteString(editPaneStyle.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}
