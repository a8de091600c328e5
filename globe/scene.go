package globe

// Scene ties an ellipsoid, a camera and the drawable collections to a canvas.
type Scene struct {
	ellipsoid *Ellipsoid
	camera    *Camera
	width     int
	height    int
	resized   Event
	polylines PolylineCollection
	labels    LabelCollection
	destroyed bool
}

// NewScene creates a scene with a canvas of the given size. A nil ellipsoid
// means WGS84.
func NewScene(width, height int, e *Ellipsoid) *Scene {
	if e == nil {
		e = WGS84
	}
	return &Scene{
		ellipsoid: e,
		camera:    newCamera(e, width, height),
		width:     width,
		height:    height,
	}
}

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Ellipsoid returns the globe model.
func (s *Scene) Ellipsoid() *Ellipsoid { return s.ellipsoid }

// CanvasSize returns the canvas width and height.
func (s *Scene) CanvasSize() (int, int) { return s.width, s.height }

// SetPixelAspect sets the width/height ratio of one canvas unit. Terminal
// cells are roughly twice as tall as they are wide, so 0.5 suits them.
func (s *Scene) SetPixelAspect(a float64) {
	if a > 0 {
		s.camera.pixelAspect = a
	}
}

// PixelAspect returns the width/height ratio of one canvas unit.
func (s *Scene) PixelAspect() float64 { return s.camera.pixelAspect }

// Resize changes the canvas size and notifies resize listeners.
func (s *Scene) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.camera.resize(width, height)
	s.resized.Raise()
}

// OnResize registers a listener for canvas resizes.
func (s *Scene) OnResize(fn func()) (remove func()) { return s.resized.Add(fn) }

// Polylines returns the polyline collection.
func (s *Scene) Polylines() *PolylineCollection { return &s.polylines }

// Labels returns the label collection.
func (s *Scene) Labels() *LabelCollection { return &s.labels }

// Destroy tears the scene down. Collections are emptied and listeners are
// dropped.
func (s *Scene) Destroy() {
	s.polylines.RemoveAll()
	s.labels.RemoveAll()
	s.resized = Event{}
	s.camera.changed = Event{}
	s.destroyed = true
}

// IsDestroyed reports whether Destroy has been called.
func (s *Scene) IsDestroyed() bool { return s.destroyed }
