package graticule

import (
	"globegrid/geomath"

	"github.com/golang/geo/s1"
)

// poleLatitude is the view latitude beyond which the two spacings are left
// independent.
const poleLatitude = 75 * s1.Degree

// Spacing is the angular distance between neighbouring parallels (Lat) and
// meridians (Lng).
type Spacing struct {
	Lat, Lng s1.Angle
}

// SelectSpacing picks ladder increments so that about gridCount lines cross
// the extent on each axis. Away from the poles both axes use the finer of
// the two.
func SelectSpacing(ext GeoExtent, gridCount int, centerLat s1.Angle) Spacing {
	if gridCount <= 0 {
		gridCount = DefaultGridCount
	}
	n := s1.Angle(gridCount)
	sp := Spacing{
		Lat: geomath.Ladder[geomath.LadderIndex(ext.Height()/n)],
		Lng: geomath.Ladder[geomath.LadderIndex(ext.Width()/n)],
	}
	if centerLat.Abs() > poleLatitude {
		return sp
	}
	if sp.Lat != sp.Lng {
		m := min(sp.Lat, sp.Lng)
		sp.Lat, sp.Lng = m, m
	}
	return sp
}
