package mapview

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gogpu/gg"
)

// Runes used on the map
const (
	runeGlobe    = ' '
	runeLimb     = '·'
	runeLand     = '.'
	runeMeridian = '|'
	runeParallel = '-'
	runeCross    = '+'
)

// canvas is a rune grid with one foreground color per cell
type canvas struct {
	width, height int
	cells         []rune
	colors        []string
}

func newCanvas(width, height int) *canvas {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	c := &canvas{
		width:  width,
		height: height,
		cells:  make([]rune, width*height),
		colors: make([]string, width*height),
	}
	for i := range c.cells {
		c.cells[i] = ' '
	}
	return c
}

func (c *canvas) inside(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

func (c *canvas) at(x, y int) rune {
	if !c.inside(x, y) {
		return 0
	}
	return c.cells[y*c.width+x]
}

func (c *canvas) set(x, y int, r rune, color string) {
	if !c.inside(x, y) {
		return
	}
	c.cells[y*c.width+x] = r
	c.colors[y*c.width+x] = color
}

// line rasterizes a segment. Mostly horizontal segments use '-', mostly
// vertical ones '|', and a cell crossed both ways becomes '+'.
func (c *canvas) line(x0, y0, x1, y1 float64, color string) {
	dx, dy := x1-x0, y1-y0
	r := runeMeridian
	if math.Abs(dx) > math.Abs(dy) {
		r = runeParallel
	}
	n := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if n > 4*(c.width+c.height) {
		return
	}
	for i := 0; i <= n; i++ {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		x := int(math.Floor(x0 + dx*t))
		y := int(math.Floor(y0 + dy*t))
		switch prev := c.at(x, y); {
		case prev == runeCross:
		case (prev == runeMeridian || prev == runeParallel) && prev != r:
			c.set(x, y, runeCross, color)
		default:
			c.set(x, y, r, color)
		}
	}
}

// text writes s starting at (x, y), clipped to the canvas
func (c *canvas) text(x, y int, s string, color string) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, color)
	}
}

// String renders the grid, one lipgloss style per run of equal color
func (c *canvas) String() string {
	styles := make(map[string]lipgloss.Style)
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		row := y * c.width
		for x := 0; x < c.width; {
			color := c.colors[row+x]
			end := x
			for end < c.width && c.colors[row+end] == color {
				end++
			}
			run := string(c.cells[row+x : row+end])
			if color == "" {
				b.WriteString(run)
			} else {
				st, ok := styles[color]
				if !ok {
					st = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
					styles[color] = st
				}
				b.WriteString(st.Render(run))
			}
			x = end
		}
		if y < c.height-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// plain returns the runes without styling, for tests
func (c *canvas) plain() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		b.WriteString(string(c.cells[y*c.width : (y+1)*c.width]))
		b.WriteRune('\n')
	}
	return b.String()
}

// termColor converts a gg color to a lipgloss hex color, dropping alpha
func termColor(c gg.RGBA) string {
	to8 := func(v float64) int { return int(math.Round(math.Max(0, math.Min(1, v)) * 255)) }
	return fmt.Sprintf("#%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B))
}
