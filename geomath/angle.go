package geomath

import (
	"math"

	"github.com/golang/geo/s1"
)

// Limits of the geographic coordinate ranges.
const (
	MaxLng = s1.Angle(math.Pi)
	MaxLat = s1.Angle(math.Pi / 2)
)

// Normalize wraps a longitude into [-π, π). Exactly +π is kept as is so an
// antimeridian line keeps its sign.
func Normalize(lng s1.Angle) s1.Angle {
	if lng >= -MaxLng && lng <= MaxLng {
		return lng
	}
	r := math.Mod(float64(lng)+math.Pi, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return s1.Angle(r - math.Pi)
}

// Unwrap returns east shifted past the antimeridian when east < west, so
// that east-west is the positive eastward span.
func Unwrap(west, east s1.Angle) s1.Angle {
	if east < west {
		return east + 2*MaxLng
	}
	return east
}

// Clamp limits a to [lo, hi].
func Clamp(a, lo, hi s1.Angle) s1.Angle {
	if a < lo {
		return lo
	}
	if a > hi {
		return hi
	}
	return a
}
