// Package graticule draws an adaptive latitude/longitude grid over a globe
// view. The grid spacing follows the zoom level so that roughly the same
// number of lines stays on screen, and labels follow the screen edges as
// the camera moves.
package graticule

import (
	"errors"
	"log/slog"
	"time"

	"globegrid/globe"

	"github.com/gogpu/gg"
)

// extentTolerance is the largest per-edge extent change, in radians, that
// still counts as the same view.
const extentTolerance = 1e-4

var (
	// ErrNoHost is returned by New when no host is given.
	ErrNoHost = errors.New("graticule: host viewport is required")
	// ErrDestroyed is returned by every lifecycle call after Destroy.
	ErrDestroyed = errors.New("graticule: engine is destroyed")
)

// State is the refresh bookkeeping of an engine.
type State struct {
	LastExtent  GeoExtent
	HasExtent   bool
	LastRefresh time.Time
	Visible     bool
	Destroyed   bool
}

// Engine keeps a graticule up to date on a host. It is driven entirely by
// host callbacks and must be used from the goroutine that delivers them.
type Engine struct {
	host  Host
	cfg   config
	log   *slog.Logger
	state State

	tags        map[LabelHandle]Tag
	grid        Grid
	unsubscribe []func()
}

// New creates a hidden engine for host. Call Show to start drawing.
func New(host Host, opts ...Option) (*Engine, error) {
	if host == nil {
		return nil, ErrNoHost
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.logger
	if log == nil {
		log = Logger()
	}
	return &Engine{
		host: host,
		cfg:  cfg,
		log:  log,
		tags: make(map[LabelHandle]Tag),
	}, nil
}

// Visible reports whether the grid is shown.
func (e *Engine) Visible() bool { return e.state.Visible }

// IsDestroyed reports whether Destroy has been called.
func (e *Engine) IsDestroyed() bool { return e.state.Destroyed }

// State returns a copy of the refresh bookkeeping.
func (e *Engine) State() State { return e.state }

// Grid returns the most recent build. It is empty while hidden.
func (e *Engine) Grid() Grid { return e.grid }

// SetVisible shows or hides the grid.
func (e *Engine) SetVisible(v bool) error {
	if v {
		return e.Show()
	}
	return e.Hide()
}

// Show subscribes to camera and resize notifications and draws the grid
// immediately.
func (e *Engine) Show() error {
	if e.state.Destroyed {
		return ErrDestroyed
	}
	if e.state.Visible {
		return nil
	}
	cam := e.host.Camera()
	cam.SetPercentageChanged(e.cfg.percentageChanged)
	e.unsubscribe = append(e.unsubscribe,
		cam.OnChanged(e.onChange),
		e.host.OnResize(e.onChange),
	)
	e.state.Visible = true
	e.log.Info("graticule shown", "grid_count", e.cfg.gridCount, "debounce", e.cfg.debounce)
	e.refresh(true)
	return nil
}

// Hide removes the grid and stops listening. It is safe to call after the
// host has been torn down.
func (e *Engine) Hide() error {
	if e.state.Destroyed {
		return ErrDestroyed
	}
	for _, remove := range e.unsubscribe {
		remove()
	}
	e.unsubscribe = nil

	if !e.host.IsDestroyed() {
		e.host.Lines().RemoveAll()
		e.host.Labels().RemoveAll()
	}
	clear(e.tags)
	e.grid = Grid{}
	e.state.HasExtent = false
	e.state.LastExtent = GeoExtent{}
	if e.state.Visible {
		e.log.Info("graticule hidden")
	}
	e.state.Visible = false
	return nil
}

// Destroy hides the grid and retires the engine. Every later lifecycle
// call returns ErrDestroyed.
func (e *Engine) Destroy() error {
	if err := e.Hide(); err != nil {
		return err
	}
	e.state.Destroyed = true
	e.log.Info("graticule destroyed")
	return nil
}

// Refresh runs the same debounced refresh a camera notification does. Hosts
// can call it from a tick so the final pose after a burst of motion gets
// drawn. A hidden engine ignores it.
func (e *Engine) Refresh() error {
	if e.state.Destroyed {
		return ErrDestroyed
	}
	if e.state.Visible {
		e.refresh(false)
	}
	return nil
}

func (e *Engine) onChange() { e.refresh(false) }

// refresh reanchors labels and rebuilds the grid when the view changed.
// force skips the debounce and the unchanged-view check.
func (e *Engine) refresh(force bool) {
	now := e.cfg.now()
	if !force && !e.state.LastRefresh.IsZero() && now.Sub(e.state.LastRefresh) < e.cfg.debounce {
		e.cfg.recorder.RefreshSkipped(SkipDebounced)
		return
	}
	e.state.LastRefresh = now

	cam := e.host.Camera()
	ell := e.host.Ellipsoid()
	w, h := e.host.CanvasSize()

	edges := ProbeScreenEdges(cam, w, h, e.cfg.margins, ell)
	center, centerOK := ViewCenter(cam, w, h, ell)
	moved := Reanchor(e.tags, edges, center, centerOK, ell)
	e.cfg.recorder.Reanchored(moved)

	extent, hit := ResolveExtent(cam, w, h, ell)
	if !hit {
		e.log.Debug("view reaches past the horizon, using whole globe")
	}

	drawn := e.host.Lines().Len() > 0 || e.host.Labels().Len() > 0
	if !force && e.state.HasExtent && drawn && extent.MaxDelta(e.state.LastExtent) < extentTolerance {
		e.cfg.recorder.RefreshSkipped(SkipUnchanged)
		e.log.Debug("view unchanged, keeping grid", "reanchored", moved)
		return
	}

	e.rebuild(extent, Placement{Edges: edges, Center: center, CenterOK: centerOK})
	e.state.LastExtent = extent
	e.state.HasExtent = true
}

func (e *Engine) rebuild(extent GeoExtent, pl Placement) {
	start := time.Now()
	ext := Disambiguate(extent, pl.Center.Lng)
	sp := SelectSpacing(ext, e.cfg.gridCount, pl.Center.Lat)
	grid := Build(ext, sp, pl, e.cfg.meridians)

	lines, labels := e.host.Lines(), e.host.Labels()
	lines.RemoveAll()
	labels.RemoveAll()
	clear(e.tags)

	ell := e.host.Ellipsoid()
	for _, l := range grid.Lines {
		lines.Add(globe.Polyline{
			Positions: ell.CartographicArrayToCartesian(l.Path),
			Width:     e.cfg.lineWidth,
			Color:     e.lineColor(l.Role),
		})
	}
	for _, spec := range grid.Labels {
		h := labels.Add(e.labelOptions(spec, ell))
		e.tags[h] = spec.Tag
	}
	e.grid = grid

	took := time.Since(start)
	e.cfg.recorder.Rebuilt(len(grid.Lines), len(grid.Labels), took)
	e.log.Debug("graticule rebuilt",
		"lines", len(grid.Lines),
		"labels", len(grid.Labels),
		"dlat", sp.Lat.Degrees(),
		"dlng", sp.Lng.Degrees(),
		"wraps", ext.Wraps(),
		"took", took,
	)
}

func (e *Engine) lineColor(r ColorRole) gg.RGBA {
	if r.Highlighted() {
		return e.cfg.meridianColor
	}
	return e.cfg.lineColor
}

func (e *Engine) labelOptions(spec LabelSpec, ell *globe.Ellipsoid) globe.LabelOptions {
	st := e.cfg.labelStyle
	o := globe.LabelOptions{
		Position:       ell.CartographicToCartesian(spec.Position),
		Text:           spec.Text,
		Font:           st.Font,
		FillColor:      st.FillColor,
		OutlineColor:   st.OutlineColor,
		OutlineWidth:   st.OutlineWidth,
		Style:          st.Style,
		PixelOffset:    [2]float64{4, 0},
		VerticalOrigin: globe.VerticalTop,
	}
	if spec.Tag.IsLatitude {
		o.PixelOffset = [2]float64{0, -6}
		o.VerticalOrigin = globe.VerticalBottom
	}
	return o
}
