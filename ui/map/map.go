package mapview

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"globegrid/config"
	"globegrid/globe"
	"globegrid/graticule"
	"globegrid/snapshot"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/jonas-p/go-shp"
)

// Constants for Panning and Zooming
const (
	panFactor  = 0.1
	zoomFactor = 1.2
)

// tickInterval is how often the grid gets a chance to catch up with the camera
const tickInterval = 250 * time.Millisecond

// Colors for the globe itself
const (
	limbColor = "63"
	landColor = "#5f875f"
)

// terminalMargins are the edge probe margins in terminal cells
var terminalMargins = graticule.Margins{X: 2, Y: 1, NearX: 3, NearHeight: 36000}

// TickMsg drives Engine.Refresh
type TickMsg time.Time

// SnapshotMsg reports a finished PNG snapshot
type SnapshotMsg struct {
	Path string
	Err  error
}

// Model holds the map's state
type Model struct {
	width  int
	height int

	scene  *globe.Scene
	engine *graticule.Engine
	events *eventLog
	log    *slog.Logger

	land [][]r3.Vector

	start       s2.LatLng
	startHeight float64
	snapshotDir string
}

// loadMapData reads the shapefile
func loadMapData(path string) ([]*shp.Polygon, error) {
	shapeFile, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shapefile: %w", err)
	}
	defer shapeFile.Close()

	var polygons []*shp.Polygon
	for shapeFile.Next() {
		_, shape := shapeFile.Shape()
		polygon, ok := shape.(*shp.Polygon)
		if !ok {
			continue
		}
		polygons = append(polygons, polygon)
	}

	if len(polygons) == 0 {
		return nil, fmt.Errorf("no polygons found in shapefile")
	}
	return polygons, nil
}

// landPositions converts polygon points (lon/lat degrees) to world positions
func landPositions(polygons []*shp.Polygon, e *globe.Ellipsoid) [][]r3.Vector {
	out := make([][]r3.Vector, 0, len(polygons))
	for _, polygon := range polygons {
		pts := make([]r3.Vector, 0, len(polygon.Points))
		for _, p := range polygon.Points {
			pts = append(pts, e.CartographicToCartesian(globe.FromDegrees(p.X, p.Y)))
		}
		out = append(out, pts)
	}
	return out
}

// New creates a new map model with the grid shown. Engine outcomes are
// forwarded to next, which may be nil.
func New(conf config.Config, next graticule.Recorder, log *slog.Logger) (Model, error) {
	if log == nil {
		log = slog.Default()
	}
	scene := globe.NewScene(78, 21, nil)
	scene.SetPixelAspect(conf.Map.CellAspect)

	start, err := conf.Map.Start()
	if err != nil {
		log.Warn("using start coordinates instead of gridsquare", "err", err)
	}
	scene.Camera().SetView(start, conf.Map.Height())

	m := Model{
		width:       80,
		height:      23,
		scene:       scene,
		events:      newEventLog(next),
		log:         log,
		start:       start,
		startHeight: conf.Map.Height(),
		snapshotDir: conf.Map.SnapshotDir,
	}

	if conf.Map.Shapefile != "" {
		polygons, err := loadMapData(conf.Map.Shapefile)
		if err != nil {
			log.Warn("drawing without a base map", "shapefile", conf.Map.Shapefile, "err", err)
		} else {
			m.land = landPositions(polygons, scene.Ellipsoid())
		}
	}

	opts := append([]graticule.Option{graticule.WithEdgeMargins(terminalMargins)}, conf.GraticuleOptions()...)
	opts = append(opts, graticule.WithRecorder(m.events), graticule.WithLogger(log))
	m.engine, err = graticule.New(graticule.SceneHost(scene), opts...)
	if err != nil {
		return Model{}, err
	}
	if err := m.engine.Show(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

// Scene returns the globe scene the map draws
func (m Model) Scene() *globe.Scene { return m.scene }

// Engine returns the graticule engine
func (m Model) Engine() *graticule.Engine { return m.engine }

// TakeEvents returns the engine events since the last call
func (m Model) TakeEvents() []string { return m.events.take() }

// Skips returns how many refreshes were skipped, by reason
func (m Model) Skips() map[graticule.SkipReason]int { return m.events.skips }

// Reanchored returns how many label moves the engine has made
func (m Model) Reanchored() int { return m.events.reanchored }

// Height returns the camera height in meters
func (m Model) Height() float64 { return m.scene.Camera().Height() }

func (m Model) GetZoomLevel() float64 {
	return config.FullGlobeHeight / m.scene.Camera().Height()
}

// Update function
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if err := m.engine.Refresh(); err != nil {
			m.log.Error("grid refresh failed", "err", err)
			return m, nil
		}
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scene.Resize(max(1, m.width-2), max(1, m.height-2))

	case tea.KeyMsg:
		cam := m.scene.Camera()
		switch msg.String() {
		case "k", "up":
			cam.Pan(0, panFactor)
		case "l", "down":
			cam.Pan(0, -panFactor)
		case "j", "left":
			cam.Pan(-panFactor, 0)
		case ";", "right":
			cam.Pan(panFactor, 0)
		case "K":
			cam.Zoom(1 / zoomFactor)
		case "L":
			cam.Zoom(zoomFactor)
		case "r":
			cam.SetView(m.start, m.startHeight)
		case "g":
			if err := m.engine.SetVisible(!m.engine.Visible()); err != nil {
				m.log.Error("toggling grid failed", "err", err)
			}
			m.events.add(fmt.Sprintf("grid visible: %t", m.engine.Visible()))
		case "p":
			return m, m.takeSnapshot()
		}
	}
	return m, nil
}

// takeSnapshot renders the scene now, since the scene is not safe to read
// from a command goroutine
func (m Model) takeSnapshot() tea.Cmd {
	name := fmt.Sprintf("globegrid-%s.png", time.Now().Format("20060102-150405"))
	path := filepath.Join(m.snapshotDir, name)
	err := snapshot.Render(m.scene, path)
	if err != nil {
		m.log.Error("snapshot failed", "path", path, "err", err)
		m.events.add("snapshot failed: " + err.Error())
	} else {
		m.events.add("saved " + path)
	}
	return func() tea.Msg { return SnapshotMsg{Path: path, Err: err} }
}

// renderMapViewport draws the globe, the base map and the grid
func (m Model) renderMapViewport() *canvas {
	w, h := m.scene.CanvasSize()
	c := newCanvas(w, h)
	cam := m.scene.Camera()

	// 1. Draw the globe outline
	hit := make([]bool, c.width*c.height)
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			_, hit[y*c.width+x] = cam.PickEllipsoid(float64(x)+0.5, float64(y)+0.5)
		}
	}
	on := func(x, y int) bool { return c.inside(x, y) && hit[y*c.width+x] }
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			if !on(x, y) {
				continue
			}
			if !on(x-1, y) || !on(x+1, y) || !on(x, y-1) || !on(x, y+1) {
				c.set(x, y, runeLimb, limbColor)
			} else {
				c.set(x, y, runeGlobe, "")
			}
		}
	}

	// 2. Draw the map
	for _, polygon := range m.land {
		for _, p := range polygon {
			if x, y, ok := cam.Project(p); ok {
				c.set(int(x), int(y), runeLand, landColor)
			}
		}
	}

	// 3. Draw the grid lines, lifting the pen behind the globe
	for _, pl := range m.scene.Polylines().All() {
		color := termColor(pl.Color)
		var px, py float64
		pen := false
		for _, p := range pl.Positions {
			x, y, ok := cam.Project(p)
			if !ok {
				pen = false
				continue
			}
			if pen {
				c.line(px, py, x, y, color)
			}
			px, py, pen = x, y, true
		}
	}

	// 4. Draw the labels over everything
	for _, l := range m.scene.Labels().All() {
		x, y, ok := cam.Project(l.Position())
		if !ok {
			continue
		}
		row := int(y)
		if l.VerticalOrigin == globe.VerticalBottom {
			row--
		}
		col := int(x) + 1
		if n := len([]rune(l.Text)); col+n > c.width {
			col = c.width - n
		}
		c.text(col, row, l.Text, termColor(l.FillColor))
	}
	return c
}

// View function
func (m Model) View() string {
	mapStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(m.width - 2).
		Height(m.height - 2)

	return mapStyle.Render(m.renderMapViewport().String())
}
