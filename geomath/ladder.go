// Package geomath holds the angle helpers shared by the graticule engine:
// the spacing ladder, DMS text and longitude wrapping.
package geomath

import (
	"math"

	"github.com/golang/geo/s1"
)

// ladderDegrees are the candidate grid increments, smallest first.
var ladderDegrees = [...]float64{
	0.00675,
	0.0125,
	0.025,
	0.05,
	0.1,
	0.2,
	0.5,
	1.0,
	2.0,
	5.0,
	10.0,
}

// Ladder is the spacing ladder in radians. Treat it as read-only.
var Ladder = func() []s1.Angle {
	out := make([]s1.Angle, len(ladderDegrees))
	for i, d := range ladderDegrees {
		out[i] = s1.Angle(d) * s1.Degree
	}
	return out
}()

// LadderIndex returns the index of the first ladder entry >= target,
// or the last index when target is larger than every entry.
func LadderIndex(target s1.Angle) int {
	for i, step := range Ladder {
		if step >= target {
			return i
		}
	}
	return len(Ladder) - 1
}

// Precision returns the number of fractional digits used when labelling
// lines that are spacing apart.
func Precision(spacing s1.Angle) int {
	d := spacing.Degrees()
	switch {
	case d < 0.01:
		return 3
	case d < 0.1:
		return 2
	case d < 1:
		return 1
	}
	return 0
}

// RoundTo rounds deg to the given number of decimal places.
func RoundTo(deg float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(deg*p) / p
}
