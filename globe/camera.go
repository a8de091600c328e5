package globe

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Camera limits.
const (
	MinHeight   = 10.0
	MaxHeight   = 1e8
	maxLookLat  = 89.9
	defaultFovy = 60 * math.Pi / 180
)

// Camera is a north-up camera looking straight down at a target point on
// the ellipsoid from some height above it.
type Camera struct {
	ellipsoid *Ellipsoid
	target    s2.LatLng
	height    float64
	fovy      float64

	// canvas size and width/height ratio of one canvas unit
	width, canvasHeight int
	pixelAspect         float64

	percentageChanged float64
	notifiedTarget    s2.LatLng
	notifiedHeight    float64
	changed           Event
}

func newCamera(e *Ellipsoid, width, height int) *Camera {
	c := &Camera{
		ellipsoid:         e,
		height:            2e7,
		fovy:              defaultFovy,
		width:             width,
		canvasHeight:      height,
		pixelAspect:       1,
		percentageChanged: 0.5,
	}
	c.notifiedTarget = c.target
	c.notifiedHeight = c.height
	return c
}

// Position returns the camera position as a geodetic point.
func (c *Camera) Position() Cartographic {
	return Cartographic{Lng: c.target.Lng, Lat: c.target.Lat, Height: c.height}
}

// LookAt returns the surface point under the camera.
func (c *Camera) LookAt() s2.LatLng { return c.target }

// Height returns the camera height above the ellipsoid in meters.
func (c *Camera) Height() float64 { return c.height }

// SetPercentageChanged sets how far the camera must move, as a fraction of
// the view, before changed listeners fire.
func (c *Camera) SetPercentageChanged(p float64) {
	if p < 0 {
		p = 0
	}
	c.percentageChanged = p
}

// OnChanged registers a listener for camera movement.
func (c *Camera) OnChanged(fn func()) (remove func()) { return c.changed.Add(fn) }

// SetView moves the camera over target at the given height.
func (c *Camera) SetView(target s2.LatLng, height float64) {
	c.target = clampTarget(target)
	c.height = clampHeight(height)
	c.update()
}

// Pan moves the target by a fraction of the visible span. Positive dx moves
// east, positive dy moves north.
func (c *Camera) Pan(dx, dy float64) {
	span := c.ViewSpan()
	lat := c.target.Lat + s1.Angle(dy*float64(span))
	lng := c.target.Lng + s1.Angle(dx*float64(span))
	c.target = clampTarget(s2.LatLng{Lat: lat, Lng: lng})
	c.update()
}

// Zoom multiplies the height by factor. Factors below one move closer.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.height = clampHeight(c.height * factor)
	c.update()
}

// ViewSpan approximates the surface angle covered by the vertical field of
// view.
func (c *Camera) ViewSpan() s1.Angle {
	s := 2 * math.Tan(c.fovy/2) * c.height / c.ellipsoid.MaximumRadius()
	return s1.Angle(math.Min(s, math.Pi))
}

// DiscRadius returns the radius of the globe outline as a fraction of half
// the canvas height, treating the globe as a sphere of its maximum radius.
func (c *Camera) DiscRadius() float64 {
	r := c.ellipsoid.MaximumRadius()
	d := r + c.height
	return r / math.Sqrt(d*d-r*r) / math.Tan(c.fovy/2)
}

func (c *Camera) update() {
	span := float64(c.ViewSpan())
	if span <= 0 {
		return
	}
	moved := float64(c.target.Distance(c.notifiedTarget)) / span
	zoomed := math.Abs(c.height-c.notifiedHeight) / c.notifiedHeight
	if math.Max(moved, zoomed) <= c.percentageChanged {
		return
	}
	c.notifiedTarget = c.target
	c.notifiedHeight = c.height
	c.changed.Raise()
}

func (c *Camera) resize(width, height int) {
	c.width = width
	c.canvasHeight = height
}

type frame struct {
	eye, dir, up, right r3.Vector
	tanHalf, aspect     float64
}

func (c *Camera) frame() frame {
	eye := c.ellipsoid.CartographicToCartesian(c.Position())
	lng, lat := float64(c.target.Lng), float64(c.target.Lat)
	n := GeodeticSurfaceNormal(c.target.Lng, c.target.Lat)
	up := r3.Vector{X: -math.Sin(lat) * math.Cos(lng), Y: -math.Sin(lat) * math.Sin(lng), Z: math.Cos(lat)}
	right := r3.Vector{X: -math.Sin(lng), Y: math.Cos(lng), Z: 0}
	aspect := 1.0
	if c.canvasHeight > 0 {
		aspect = float64(c.width) * c.pixelAspect / float64(c.canvasHeight)
	}
	return frame{eye: eye, dir: n.Mul(-1), up: up, right: right, tanHalf: math.Tan(c.fovy / 2), aspect: aspect}
}

// PickEllipsoid unprojects a canvas point onto the ellipsoid surface. It
// reports false when the ray through the point misses the globe.
func (c *Camera) PickEllipsoid(x, y float64) (r3.Vector, bool) {
	if c.width <= 0 || c.canvasHeight <= 0 {
		return r3.Vector{}, false
	}
	f := c.frame()
	nx := 2*x/float64(c.width) - 1
	ny := 1 - 2*y/float64(c.canvasHeight)
	ray := f.dir.
		Add(f.right.Mul(nx * f.tanHalf * f.aspect)).
		Add(f.up.Mul(ny * f.tanHalf)).
		Normalize()
	return c.ellipsoid.IntersectRay(f.eye, ray)
}

// Project maps a world position to canvas coordinates. It reports false for
// points behind the camera or on the far side of the globe.
func (c *Camera) Project(p r3.Vector) (x, y float64, ok bool) {
	f := c.frame()
	v := p.Sub(f.eye)
	z := v.Dot(f.dir)
	if z <= 0 {
		return 0, 0, false
	}
	r := c.ellipsoid.radiiSquared
	normal := r3.Vector{X: p.X / r.X, Y: p.Y / r.Y, Z: p.Z / r.Z}
	if v.Dot(normal) > 0 {
		return 0, 0, false
	}
	nx := v.Dot(f.right) / (z * f.tanHalf * f.aspect)
	ny := v.Dot(f.up) / (z * f.tanHalf)
	x = (nx + 1) / 2 * float64(c.width)
	y = (1 - ny) / 2 * float64(c.canvasHeight)
	return x, y, true
}

func clampTarget(ll s2.LatLng) s2.LatLng {
	limit := s1.Angle(maxLookLat) * s1.Degree
	if ll.Lat > limit {
		ll.Lat = limit
	}
	if ll.Lat < -limit {
		ll.Lat = -limit
	}
	ll.Lng = ll.Lng.Normalized()
	return ll
}

func clampHeight(h float64) float64 {
	return math.Max(MinHeight, math.Min(MaxHeight, h))
}
