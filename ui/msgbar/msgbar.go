package msgbar

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	barHeight = 7 // Total height of the component (including border)
)

// Model holds the message bar's state
type Model struct {
	width    int
	height   int
	messages []string // Newest first
}

// New creates a new message bar model
func New() Model {
	return Model{
		width:  80,
		height: barHeight,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Add puts event lines on the bar, keeping only as many as fit
func (m *Model) Add(lines ...string) {
	for _, line := range lines {
		m.messages = append([]string{line}, m.messages...)
	}
	maxMessages := max(1, barHeight-2)
	if len(m.messages) > maxMessages {
		m.messages = m.messages[:maxMessages]
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		// Height is fixed, but we store it for consistency
		m.height = barHeight
	}
	return m, nil
}

func (m Model) View() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")). // Purple
		Width(m.width - 2).   // -2 for border
		Height(m.height - 2). // -2 for border
		Padding(0, 1)

	contentWidth := max(0, m.width-2-2) // -border, -padding
	numMessages := max(0, m.height-2)

	// Oldest first, so the bar reads top to bottom in arrival order
	var b strings.Builder
	for i := 0; i < numMessages; i++ {
		if i < len(m.messages) {
			msg := []rune(m.messages[len(m.messages)-1-i])
			if len(msg) > contentWidth {
				msg = msg[:contentWidth]
			}
			b.WriteString(string(msg))
		}
		if i < numMessages-1 {
			b.WriteRune('\n')
		}
	}

	return style.Render(b.String())
}
