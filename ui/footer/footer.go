package footer

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model holds the footer's state
type Model struct {
	width    int
	zoom     float64
	height   float64
	grid     bool
	snapshot string
}

// New creates a new footer model
func New() Model {
	return Model{width: 80, zoom: 1, grid: true}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetZoom sets the zoom level and camera height in meters
func (m *Model) SetZoom(zoom, height float64) {
	m.zoom = zoom
	m.height = height
}

// SetGrid records whether the grid is shown
func (m *Model) SetGrid(visible bool) { m.grid = visible }

// SetSnapshot records the last snapshot path
func (m *Model) SetSnapshot(path string) { m.snapshot = path }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
	}
	return m, nil
}

// formatHeight prints meters, switching to km at altitude
func formatHeight(h float64) string {
	if h >= 10000 {
		return fmt.Sprintf("%.0f km", h/1000)
	}
	return fmt.Sprintf("%.0f m", h)
}

func (m Model) View() string {
	grid := "off"
	if m.grid {
		grid = "on"
	}
	text := fmt.Sprintf(" zoom %.1fx  height %s  grid %s", m.zoom, formatHeight(m.height), grid)
	if m.snapshot != "" {
		text += "  saved " + m.snapshot
	}
	text += "  | hjkl/arrows pan  K/L zoom  g grid  p png  r reset  q quit"

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Width(m.width).
		MaxWidth(m.width).
		MaxHeight(1)

	return style.Render(text)
}
