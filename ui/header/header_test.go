package header

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestView(t *testing.T) {
	m := New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 50, Height: 1})
	m.SetPlace("0°N 0°E")
	v := m.View()
	if !strings.Contains(v, "globegrid - 0°N 0°E") {
		t.Errorf("View() = %q", v)
	}
}
