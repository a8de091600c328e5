package graticule

import (
	"math"

	"globegrid/geomath"
	"globegrid/globe"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// GeoExtent is a geographic rectangle in radians. East < West means the
// rectangle crosses the antimeridian.
type GeoExtent struct {
	West, South, East, North s1.Angle
}

// MaxExtent is the whole globe. It stands in for the visible extent when
// the view reaches past the horizon.
var MaxExtent = GeoExtent{
	West:  -geomath.MaxLng,
	South: -geomath.MaxLat,
	East:  geomath.MaxLng,
	North: geomath.MaxLat,
}

// Wraps reports whether the extent crosses the antimeridian.
func (e GeoExtent) Wraps() bool { return e.East < e.West }

// UnwrappedEast returns East, shifted by a full turn when the extent wraps.
func (e GeoExtent) UnwrappedEast() s1.Angle { return geomath.Unwrap(e.West, e.East) }

// Width returns the eastward span from West to East.
func (e GeoExtent) Width() s1.Angle { return e.UnwrappedEast() - e.West }

// Height returns the span from South to North.
func (e GeoExtent) Height() s1.Angle { return e.North - e.South }

// Contains reports whether lng lies inside the longitude range.
func (e GeoExtent) Contains(lng s1.Angle) bool {
	if e.Wraps() {
		return lng >= e.West || lng <= e.East
	}
	return lng >= e.West && lng <= e.East
}

// MaxDelta returns the largest absolute difference between matching edges.
func (e GeoExtent) MaxDelta(o GeoExtent) s1.Angle {
	d := (e.West - o.West).Abs()
	d = max(d, (e.South - o.South).Abs())
	d = max(d, (e.East - o.East).Abs())
	return max(d, (e.North - o.North).Abs())
}

// ExtentFromPoints returns the smallest rectangle holding every point. When
// the points are closer together across the antimeridian than across the
// prime meridian, the result wraps.
func ExtentFromPoints(points []globe.Cartographic) GeoExtent {
	if len(points) == 0 {
		return MaxExtent
	}
	west, east := s1.Angle(math.Inf(1)), s1.Angle(math.Inf(-1))
	westIDL, eastIDL := west, east
	south, north := west, east

	for _, p := range points {
		west = min(west, p.Lng)
		east = max(east, p.Lng)
		adjusted := p.Lng
		if adjusted < 0 {
			adjusted += 2 * geomath.MaxLng
		}
		westIDL = min(westIDL, adjusted)
		eastIDL = max(eastIDL, adjusted)
		south = min(south, p.Lat)
		north = max(north, p.Lat)
	}

	if east-west > eastIDL-westIDL {
		west, east = westIDL, eastIDL
		if east > geomath.MaxLng {
			east -= 2 * geomath.MaxLng
		}
		if west > geomath.MaxLng {
			west -= 2 * geomath.MaxLng
		}
	}
	return GeoExtent{West: west, South: south, East: east, North: north}
}

// ResolveExtent returns the rectangle spanned by the four canvas corners on
// the globe. If any corner misses, it returns MaxExtent and false. A pole
// in view widens the rectangle to every longitude up to that pole.
func ResolveExtent(cam Camera, width, height int, e *globe.Ellipsoid) (GeoExtent, bool) {
	w, h := float64(width), float64(height)
	corners := [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}}

	points := make([]globe.Cartographic, 0, len(corners))
	for _, c := range corners {
		carto, ok := pick(cam, e, c[0], c[1])
		if !ok {
			return MaxExtent, false
		}
		points = append(points, carto)
	}
	return coverPoles(cam, w, h, e, ExtentFromPoints(points)), true
}

// coverPoles extends ext over a visible pole. In a north-up view a pole sits
// on the center column, so the column then ends on the far side of the pole
// from the view center.
func coverPoles(cam Camera, w, h float64, e *globe.Ellipsoid, ext GeoExtent) GeoExtent {
	mid, ok := pick(cam, e, w/2, h/2)
	if !ok {
		return ext
	}
	if top, ok := pick(cam, e, w/2, 0); ok && acrossPole(mid.Lng, top.Lng) {
		ext.North = geomath.MaxLat
		ext.West, ext.East = -geomath.MaxLng, geomath.MaxLng
	}
	if bottom, ok := pick(cam, e, w/2, h); ok && acrossPole(mid.Lng, bottom.Lng) {
		ext.South = -geomath.MaxLat
		ext.West, ext.East = -geomath.MaxLng, geomath.MaxLng
	}
	return ext
}

func acrossPole(a, b s1.Angle) bool {
	return geomath.Normalize(b-a).Abs() > geomath.MaxLng/2
}

func pick(cam Camera, e *globe.Ellipsoid, x, y float64) (globe.Cartographic, bool) {
	p, ok := cam.PickEllipsoid(x, y)
	if !ok {
		return globe.Cartographic{}, false
	}
	return e.CartesianToCartographic(p)
}

// Edge is a probed screen edge coordinate. OK is false when the probe
// missed the globe.
type Edge struct {
	Angle s1.Angle
	OK    bool
}

// ScreenEdges holds the latitude at the top and bottom of the view and the
// longitude at its left and right.
type ScreenEdges struct {
	North, South, East, West Edge
}

// Edge returns the edge named by a. The center anchor has no edge.
func (s ScreenEdges) Edge(a Anchor) Edge {
	switch a {
	case AnchorNorth:
		return s.North
	case AnchorSouth:
		return s.South
	case AnchorEast:
		return s.East
	case AnchorWest:
		return s.West
	}
	return Edge{}
}

// ProbeScreenEdges picks points just inside the middle of each canvas edge.
func ProbeScreenEdges(cam Camera, width, height int, m Margins, e *globe.Ellipsoid) ScreenEdges {
	w, h := float64(width), float64(height)
	mx, my := m.X, m.Y
	if cam.Position().Height < m.NearHeight {
		mx = m.NearX
	}

	probe := func(x, y float64) (globe.Cartographic, bool) { return pick(cam, e, x, y) }

	var edges ScreenEdges
	if c, ok := probe(w/2, my); ok {
		edges.North = Edge{Angle: c.Lat, OK: true}
	}
	if c, ok := probe(w/2, h-my); ok {
		edges.South = Edge{Angle: c.Lat, OK: true}
	}
	if c, ok := probe(mx, h/2); ok {
		edges.West = Edge{Angle: c.Lng, OK: true}
	}
	if c, ok := probe(w-mx, h/2); ok {
		edges.East = Edge{Angle: c.Lng, OK: true}
	}
	return edges
}

// ViewCenter picks the canvas center. When it misses, it returns (0°, 0°)
// and false.
func ViewCenter(cam Camera, width, height int, e *globe.Ellipsoid) (s2.LatLng, bool) {
	x := math.Round(float64(width) / 2)
	y := math.Round(float64(height) / 2)
	c, ok := pick(cam, e, x, y)
	if !ok {
		return s2.LatLng{}, false
	}
	return c.LatLng(), true
}
