package header

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const title = "globegrid"

// Model holds the header's state
type Model struct {
	width int
	place string
}

// New creates a new header model
func New() Model {
	return Model{width: 80}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetPlace sets the text shown after the title, usually the view center
func (m *Model) SetPlace(place string) {
	m.place = place
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
	}
	return m, nil
}

func (m Model) View() string {
	text := title
	if m.place != "" {
		text += " - " + m.place
	}

	// Purple bar across the terminal, same color as the map border
	style := lipgloss.NewStyle().
		Bold(true).
		Background(lipgloss.Color("63")).
		Foreground(lipgloss.Color("255")).
		Width(m.width).
		Align(lipgloss.Center)

	return style.Render(text)
}
