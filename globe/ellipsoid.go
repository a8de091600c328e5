// Package globe is a small ellipsoidal globe scene: an ellipsoid model, a
// nadir orbit camera that can unproject canvas points onto the surface, and
// the polyline and label collections a renderer draws.
package globe

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Cartographic is a geodetic position. Angles are radians, height is meters
// above the ellipsoid.
type Cartographic struct {
	Lng    s1.Angle
	Lat    s1.Angle
	Height float64
}

// FromDegrees builds a surface Cartographic from degree values.
func FromDegrees(lng, lat float64) Cartographic {
	return Cartographic{Lng: s1.Angle(lng) * s1.Degree, Lat: s1.Angle(lat) * s1.Degree}
}

// LatLng drops the height.
func (c Cartographic) LatLng() s2.LatLng {
	return s2.LatLng{Lat: c.Lat, Lng: c.Lng}
}

// Ellipsoid is an ellipsoid of revolution centered at the origin, with the
// polar axis along Z.
type Ellipsoid struct {
	radii        r3.Vector
	radiiSquared r3.Vector
	invRadii     r3.Vector
}

// NewEllipsoid creates an ellipsoid with the given equatorial and polar radii.
func NewEllipsoid(equatorial, polar float64) *Ellipsoid {
	r := r3.Vector{X: equatorial, Y: equatorial, Z: polar}
	return &Ellipsoid{
		radii:        r,
		radiiSquared: r3.Vector{X: r.X * r.X, Y: r.Y * r.Y, Z: r.Z * r.Z},
		invRadii:     r3.Vector{X: 1 / r.X, Y: 1 / r.Y, Z: 1 / r.Z},
	}
}

// WGS84 is the standard Earth ellipsoid.
var WGS84 = NewEllipsoid(6378137.0, 6356752.3142451793)

// UnitSphere is a sphere of radius one.
var UnitSphere = NewEllipsoid(1, 1)

// Radii returns the ellipsoid radii along each axis.
func (e *Ellipsoid) Radii() r3.Vector { return e.radii }

// MaximumRadius returns the equatorial or polar radius, whichever is larger.
func (e *Ellipsoid) MaximumRadius() float64 { return math.Max(e.radii.X, e.radii.Z) }

// GeodeticSurfaceNormal returns the unit normal at the given geodetic angles.
func GeodeticSurfaceNormal(lng, lat s1.Angle) r3.Vector {
	cosLat := math.Cos(float64(lat))
	return r3.Vector{
		X: cosLat * math.Cos(float64(lng)),
		Y: cosLat * math.Sin(float64(lng)),
		Z: math.Sin(float64(lat)),
	}
}

// CartographicToCartesian converts a geodetic position to Earth-fixed XYZ.
func (e *Ellipsoid) CartographicToCartesian(c Cartographic) r3.Vector {
	n := GeodeticSurfaceNormal(c.Lng, c.Lat)
	k := r3.Vector{X: e.radiiSquared.X * n.X, Y: e.radiiSquared.Y * n.Y, Z: e.radiiSquared.Z * n.Z}
	gamma := math.Sqrt(n.Dot(k))
	return k.Mul(1 / gamma).Add(n.Mul(c.Height))
}

// CartographicArrayToCartesian converts a path of positions.
func (e *Ellipsoid) CartographicArrayToCartesian(path []Cartographic) []r3.Vector {
	out := make([]r3.Vector, len(path))
	for i, c := range path {
		out[i] = e.CartographicToCartesian(c)
	}
	return out
}

// CartesianToCartographic converts Earth-fixed XYZ to a geodetic position.
// It reports false for the origin, which has no defined position.
func (e *Ellipsoid) CartesianToCartographic(p r3.Vector) (Cartographic, bool) {
	if p.Norm2() == 0 {
		return Cartographic{}, false
	}
	a, b := e.radii.X, e.radii.Z
	rho := math.Hypot(p.X, p.Y)
	lng := math.Atan2(p.Y, p.X)

	if rho < 1e-9*a {
		lat := math.Pi / 2
		if p.Z < 0 {
			lat = -lat
		}
		return Cartographic{Lng: s1.Angle(lng), Lat: s1.Angle(lat), Height: math.Abs(p.Z) - b}, true
	}

	e2 := 1 - (b*b)/(a*a)
	lat := math.Atan2(p.Z, rho*(1-e2))
	var h float64
	for i := 0; i < 8; i++ {
		sin := math.Sin(lat)
		n := a / math.Sqrt(1-e2*sin*sin)
		h = rho/math.Cos(lat) - n
		next := math.Atan2(p.Z, rho*(1-e2*n/(n+h)))
		if math.Abs(next-lat) < 1e-14 {
			lat = next
			break
		}
		lat = next
	}
	return Cartographic{Lng: s1.Angle(lng), Lat: s1.Angle(lat), Height: h}, true
}

// IntersectRay returns the nearest point where the ray from origin along dir
// enters the ellipsoid. It reports false when the ray misses or starts inside.
func (e *Ellipsoid) IntersectRay(origin, dir r3.Vector) (r3.Vector, bool) {
	q := r3.Vector{X: origin.X * e.invRadii.X, Y: origin.Y * e.invRadii.Y, Z: origin.Z * e.invRadii.Z}
	d := r3.Vector{X: dir.X * e.invRadii.X, Y: dir.Y * e.invRadii.Y, Z: dir.Z * e.invRadii.Z}

	qa := d.Dot(d)
	qb := 2 * q.Dot(d)
	qc := q.Dot(q) - 1
	if qc < 0 {
		return r3.Vector{}, false
	}
	disc := qb*qb - 4*qa*qc
	if disc < 0 || qa == 0 {
		return r3.Vector{}, false
	}
	t := (-qb - math.Sqrt(disc)) / (2 * qa)
	if t < 0 {
		return r3.Vector{}, false
	}
	return origin.Add(dir.Mul(t)), true
}
