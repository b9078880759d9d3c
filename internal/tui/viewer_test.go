package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abawan7/quantum-entanglement-and-decoherence-simulator/internal/backend"
	"github.com/abawan7/quantum-entanglement-and-decoherence-simulator/internal/sim"
)

func comparisonFixture() *backend.Comparison {
	return &backend.Comparison{
		Simulated: sim.Counts{"00": 510, "11": 490},
		Remote:    sim.Counts{"00": 500, "01": 20, "11": 480},
	}
}

func sized(m Model) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func TestViewerShowsComparisonTable(t *testing.T) {
	m := sized(NewModel("bell", comparisonFixture()))

	view := m.View()
	assert.Contains(t, view, "bell")
	assert.Contains(t, view, "00")
	assert.Contains(t, view, "510")
	assert.Contains(t, view, "total variation")
}

func TestViewerTabSwitchesToChart(t *testing.T) {
	m := sized(NewModel("bell", comparisonFixture()))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)

	view := m.View()
	assert.Contains(t, view, "Simulated")
	assert.Contains(t, view, "Remote")
	assert.Contains(t, view, "█")
}

func TestViewerQuitKeys(t *testing.T) {
	m := sized(NewModel("bell", comparisonFixture()))

	for _, key := range []string{"q", "esc", "ctrl+c"} {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		if key == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		}
		if key == "ctrl+c" {
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd, "key %q should quit", key)
	}
}

func TestViewerRendersRemoteGap(t *testing.T) {
	cmp := &backend.Comparison{
		Simulated: sim.Counts{"0": 100},
		Remote:    sim.Counts{},
		RemoteGap: assert.AnError,
	}
	m := sized(NewModel("gap", cmp))

	view := m.View()
	assert.Contains(t, view, "remote leg unavailable")
	// The empty remote mapping must not be compared against.
	assert.NotContains(t, view, "total variation")
	assert.NotContains(t, view, "Remote")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	chart := next.(Model).View()
	assert.Contains(t, chart, "Simulated")
	assert.NotContains(t, chart, "Remote")
}
