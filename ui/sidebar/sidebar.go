package sidebar

import (
	"fmt"
	"strings"

	"globegrid/geomath"
	"globegrid/graticule"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/s1"
)

// Stats is what the sidebar shows about the grid
type Stats struct {
	Visible    bool
	Extent     graticule.GeoExtent
	Spacing    graticule.Spacing
	Lines      int
	Labels     int
	Skips      map[graticule.SkipReason]int
	Reanchored int
}

// Model holds the sidebar's state
type Model struct {
	width  int
	height int
	stats  Stats
}

// New creates a new sidebar model
func New() Model {
	return Model{
		width:  20, // Default
		height: 24, // Default
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetStats replaces the grid figures
func (m *Model) SetStats(s Stats) {
	m.stats = s
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// angle formats a grid angle the way the labels do
func angle(a s1.Angle, isLat bool, spacing s1.Angle) string {
	p := geomath.Precision(spacing)
	return geomath.DMS(geomath.RoundTo(a.Degrees(), p), isLat, p)
}

// lines lays the stats out one item per line
func (m Model) lines() []string {
	s := m.stats
	if !s.Visible {
		return []string{"grid hidden", "", "g to show"}
	}
	ext, sp := s.Extent, s.Spacing
	out := []string{
		"N " + angle(ext.North, true, sp.Lat),
		"S " + angle(ext.South, true, sp.Lat),
		"W " + angle(ext.West, false, sp.Lng),
		"E " + angle(ext.East, false, sp.Lng),
		"",
		fmt.Sprintf("dlat %g°", sp.Lat.Degrees()),
		fmt.Sprintf("dlng %g°", sp.Lng.Degrees()),
		fmt.Sprintf("lines %d", s.Lines),
		fmt.Sprintf("labels %d", s.Labels),
	}
	if ext.Wraps() {
		out = append(out, "across 180°")
	}
	out = append(out,
		"",
		fmt.Sprintf("debounced %d", s.Skips[graticule.SkipDebounced]),
		fmt.Sprintf("unchanged %d", s.Skips[graticule.SkipUnchanged]),
		fmt.Sprintf("moved %d", s.Reanchored),
	)
	return out
}

func (m Model) View() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(m.width - 2).   // -2 for border
		Height(m.height - 2). // -2 for border
		Padding(0, 1)

	header := lipgloss.NewStyle().
		Bold(true).
		Underline(true).
		Width(m.width - 2 - 2). // -2 border, -2 padding
		Render("Graticule")

	// Keep the content to the inner height so the box does not grow
	contentHeight := (m.height - 2) - 1
	lines := m.lines()
	if contentHeight < len(lines) {
		lines = lines[:max(0, contentHeight)]
	}

	var b strings.Builder
	b.WriteString(header)
	for _, line := range lines {
		b.WriteRune('\n')
		b.WriteString(fmt.Sprintf("%.*s", max(0, m.width-2-2), line))
	}
	return style.Render(b.String())
}
