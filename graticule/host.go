package graticule

import (
	"globegrid/globe"

	"github.com/golang/geo/r3"
)

// Camera is the part of the host camera the engine reads.
type Camera interface {
	// Position returns the camera position; only Height is used.
	Position() globe.Cartographic
	// PickEllipsoid unprojects a canvas point onto the globe surface.
	PickEllipsoid(x, y float64) (r3.Vector, bool)
	// SetPercentageChanged sets the camera-changed sensitivity.
	SetPercentageChanged(p float64)
	// OnChanged subscribes to camera movement.
	OnChanged(fn func()) (remove func())
}

// LineCollection receives the grid polylines.
type LineCollection interface {
	Add(p globe.Polyline)
	RemoveAll()
	Len() int
}

// LabelHandle is a label owned by the host. Handles must be comparable; the
// engine keys its anchor table by them.
type LabelHandle interface {
	Position() r3.Vector
	SetPosition(p r3.Vector)
}

// LabelCollection receives the grid labels.
type LabelCollection interface {
	Add(o globe.LabelOptions) LabelHandle
	RemoveAll()
	Len() int
}

// Host is the rendering host an engine draws into.
type Host interface {
	Camera() Camera
	CanvasSize() (width, height int)
	OnResize(fn func()) (remove func())
	Ellipsoid() *globe.Ellipsoid
	Lines() LineCollection
	Labels() LabelCollection
	// IsDestroyed reports whether the host has been torn down.
	IsDestroyed() bool
}

// SceneHost adapts a globe.Scene to Host.
func SceneHost(s *globe.Scene) Host {
	if s == nil {
		return nil
	}
	return sceneHost{s: s}
}

type sceneHost struct {
	s *globe.Scene
}

func (h sceneHost) Camera() Camera                     { return h.s.Camera() }
func (h sceneHost) CanvasSize() (int, int)             { return h.s.CanvasSize() }
func (h sceneHost) OnResize(fn func()) (remove func()) { return h.s.OnResize(fn) }
func (h sceneHost) Ellipsoid() *globe.Ellipsoid        { return h.s.Ellipsoid() }
func (h sceneHost) Lines() LineCollection              { return h.s.Polylines() }
func (h sceneHost) Labels() LabelCollection            { return sceneLabels{c: h.s.Labels()} }
func (h sceneHost) IsDestroyed() bool                  { return h.s.IsDestroyed() }

type sceneLabels struct {
	c *globe.LabelCollection
}

func (l sceneLabels) Add(o globe.LabelOptions) LabelHandle { return l.c.Add(o) }
func (l sceneLabels) RemoveAll()                           { l.c.RemoveAll() }
func (l sceneLabels) Len() int                             { return l.c.Len() }
