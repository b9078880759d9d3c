// Package tui implements the interactive result viewer: a scrollable
// terminal view over the tables and bar charts of a finished comparison.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abawan7/quantum-entanglement-and-decoherence-simulator/internal/backend"
	"github.com/abawan7/quantum-entanglement-and-decoherence-simulator/internal/render"
)

// tab identifies which pane of the viewer is shown.
type tab int

const (
	tabTable tab = iota
	tabChart
	tabCount
)

var tabNames = [tabCount]string{"table", "chart"}

// Model is the viewer state: the finished comparison plus a viewport
// scrolled over its rendered form.
type Model struct {
	cmp      *backend.Comparison
	title    string
	active   tab
	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

// NewModel builds a viewer over a finished comparison.
func NewModel(title string, cmp *backend.Comparison) Model {
	return Model{cmp: cmp, title: title, active: tabTable}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m.active = (m.active + 1) % tabCount
			m.viewport.SetContent(m.content())
			m.viewport.GotoTop()
			return m, nil
		case "shift+tab", "left", "h":
			m.active = (m.active + tabCount - 1) % tabCount
			m.viewport.SetContent(m.content())
			m.viewport.GotoTop()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		headerH := lipgloss.Height(m.header())
		footerH := lipgloss.Height(m.footer())
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerH-footerH)
			m.viewport.SetContent(m.content())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerH - footerH
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.header() + "\n" + m.viewport.View() + "\n" + m.footer()
}

// content renders the active pane for the viewport.
func (m Model) content() string {
	var buf strings.Builder

	if m.cmp.RemoteGap != nil {
		buf.WriteString(render.GapStyle.Render(fmt.Sprintf("remote leg unavailable: %v", m.cmp.RemoteGap)))
		buf.WriteString("\n\n")
	}

	// A failed remote leg renders like a simulated-only run: comparing
	// against its empty mapping would be meaningless.
	remote := m.cmp.Remote
	if m.cmp.RemoteGap != nil {
		remote = nil
	}

	switch m.active {
	case tabChart:
		buf.WriteString(render.TitleStyle.Render("Simulated"))
		buf.WriteString("\n")
		buf.WriteString(render.BarChart(m.cmp.Simulated))
		if remote != nil {
			buf.WriteString("\n")
			buf.WriteString(render.TitleStyle.Render("Remote"))
			buf.WriteString("\n")
			buf.WriteString(render.BarChart(remote))
		}
	default:
		if remote != nil {
			buf.WriteString(render.ComparisonTable(m.cmp.Simulated, remote))
			buf.WriteString(fmt.Sprintf("\ntotal variation distance: %.4f\n",
				render.TotalVariation(m.cmp.Simulated, remote)))
		} else {
			buf.WriteString(render.CountsTable(m.cmp.Simulated))
		}
	}

	return render.PanelStyle.Width(m.width - 4).Render(buf.String())
}

func (m Model) header() string {
	names := make([]string, tabCount)
	for i, name := range tabNames {
		if tab(i) == m.active {
			names[i] = activeTabStyle.Render("[" + name + "]")
		} else {
			names[i] = inactiveTabStyle.Render(" " + name + " ")
		}
	}
	return render.TitleStyle.Render(m.title) + "  " + strings.Join(names, " ")
}

func (m Model) footer() string {
	return helpStyle.Render("tab: switch view • ↑/↓: scroll • q: quit")
}

// Show runs the viewer until the user quits.
func Show(title string, cmp *backend.Comparison) error {
	p := tea.NewProgram(NewModel(title, cmp), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
