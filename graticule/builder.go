package graticule

import (
	"math"

	"globegrid/geomath"
	"globegrid/globe"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// granularity is the distance between points along a grid line.
const granularity = 3 * s1.Degree

// padSteps is how many extra lines are drawn beyond each side of the extent.
const padSteps = 2

// Sentinel texts of the highlighted lines.
const (
	equatorText       = "0°N"
	primeMeridianText = "0°E"
	antimeridianText  = "180°"
)

// LineKind tells meridians from parallels.
type LineKind int

const (
	Meridian LineKind = iota
	Parallel
)

// ColorRole selects the color a line is drawn with.
type ColorRole int

const (
	RoleNormal ColorRole = iota
	RoleEquator
	RolePrimeMeridian
	RoleAntimeridian
)

// Highlighted reports whether the role uses the meridian color.
func (r ColorRole) Highlighted() bool { return r != RoleNormal }

// GridLine is one meridian or parallel.
type GridLine struct {
	Kind  LineKind
	Angle s1.Angle
	Role  ColorRole
	Text  string
	Path  []globe.Cartographic
}

// LabelSpec is a label to place on the globe.
type LabelSpec struct {
	Text     string
	Position globe.Cartographic
	Tag      Tag
}

// Placement is the screen state labels are placed against.
type Placement struct {
	Edges    ScreenEdges
	Center   s2.LatLng
	CenterOK bool
}

// Grid is the output of one build.
type Grid struct {
	Extent  GeoExtent
	Spacing Spacing
	Lines   []GridLine
	Labels  []LabelSpec
}

// Disambiguate fixes extents whose bounds came out in the wrong order,
// using the view center longitude. The center must end up inside.
func Disambiguate(ext GeoExtent, centerLng s1.Angle) GeoExtent {
	w, e := ext.West, ext.East
	if centerLng > e && centerLng < w && e < w {
		w, e = e, w
	}
	if w < e && ((centerLng > e && centerLng > w) || (centerLng < e && centerLng < w)) {
		w, e = e, w
	}
	ext.West, ext.East = w, e
	return ext
}

// bounds are the iteration limits of a build. maxLng is unwrapped and may
// exceed π when the extent crosses the antimeridian.
type bounds struct {
	minLng, maxLng s1.Angle
	minLat, maxLat s1.Angle
}

// snap rounds a toward zero onto the step grid. An edge within rounding
// error of a grid line stays on it.
func snap(a, step s1.Angle) s1.Angle {
	q := float64(a / step)
	return s1.Angle(math.Trunc(q+math.Copysign(1e-9, q))) * step
}

func iterationBounds(ext GeoExtent, sp Spacing) bounds {
	var b bounds
	b.minLng = max(snap(ext.West, sp.Lng)-padSteps*sp.Lng, -geomath.MaxLng)
	if ext.Wraps() {
		b.maxLng = snap(ext.UnwrappedEast(), sp.Lng) + padSteps*sp.Lng
		b.maxLng = min(b.maxLng, b.minLng+2*geomath.MaxLng)
	} else {
		b.maxLng = min(snap(ext.East, sp.Lng)+padSteps*sp.Lng, geomath.MaxLng)
	}
	b.minLat = max(snap(ext.South, sp.Lat)-padSteps*sp.Lat, -geomath.MaxLat)
	b.maxLat = min(snap(ext.North, sp.Lat)+padSteps*sp.Lat, geomath.MaxLat)
	return b
}

// steps returns how many whole steps fit between lo and hi.
func steps(lo, hi, step s1.Angle) int {
	if hi < lo || step <= 0 {
		return 0
	}
	return int(math.Floor(float64((hi-lo)/step) + 1e-9))
}

// Build lays out the meridians, parallels and labels for ext at the given
// spacing. With highlight set, the equator, prime meridian and antimeridian
// get the highlight role and named labels.
func Build(ext GeoExtent, sp Spacing, pl Placement, highlight bool) Grid {
	g := Grid{Extent: ext, Spacing: sp}
	b := iterationBounds(ext, sp)

	midLat := b.minLat + s1.Angle(steps(b.minLat, b.maxLat, sp.Lat)/2)*sp.Lat
	midLng := geomath.Normalize(b.minLng + s1.Angle(steps(b.minLng, b.maxLng, sp.Lng)/2)*sp.Lng)

	precLng := geomath.Precision(sp.Lng)
	seen := make(map[string]bool)
	count := 0
	for i := 0; i <= steps(b.minLng, b.maxLng, sp.Lng); i++ {
		lng := geomath.Normalize(b.minLng + s1.Angle(i)*sp.Lng)
		text := geomath.DMS(geomath.RoundTo(lng.Degrees(), precLng), false, precLng)
		if seen[text] {
			continue
		}
		seen[text] = true

		role := RoleNormal
		if highlight {
			switch text {
			case primeMeridianText:
				role = RolePrimeMeridian
			case antimeridianText:
				role = RoleAntimeridian
			}
		}
		g.Lines = append(g.Lines, GridLine{
			Kind:  Meridian,
			Angle: lng,
			Role:  role,
			Text:  text,
			Path:  meridianPath(lng, b.minLat, b.maxLat),
		})
		if count%2 == 1 {
			g.Labels = append(g.Labels, meridianLabels(labelText(text, role), lng, midLat, pl)...)
		}
		count++
	}

	precLat := geomath.Precision(sp.Lat)
	count = 0
	for i := 0; i <= steps(b.minLat, b.maxLat, sp.Lat); i++ {
		lat := b.minLat + s1.Angle(i)*sp.Lat
		if lat.Abs() >= geomath.MaxLat-1e-12 {
			continue
		}
		text := geomath.DMS(geomath.RoundTo(lat.Degrees(), precLat), true, precLat)
		role := RoleNormal
		if highlight && text == equatorText {
			role = RoleEquator
		}
		g.Lines = append(g.Lines, GridLine{
			Kind:  Parallel,
			Angle: lat,
			Role:  role,
			Text:  text,
			Path:  parallelPath(lat, b.minLng, b.maxLng),
		})
		if count%2 == 1 {
			g.Labels = append(g.Labels, parallelLabels(labelText(text, role), lat, midLng, pl)...)
		}
		count++
	}
	return g
}

func labelText(text string, role ColorRole) string {
	switch role {
	case RoleEquator:
		return "Equator"
	case RolePrimeMeridian:
		return "Prime Meridian"
	case RoleAntimeridian:
		return "Antimeridian"
	}
	return text
}

func meridianPath(lng, minLat, maxLat s1.Angle) []globe.Cartographic {
	n := steps(minLat, maxLat, granularity)
	path := make([]globe.Cartographic, 0, n+2)
	for i := 0; i <= n; i++ {
		lat := minLat + s1.Angle(i)*granularity
		if lat >= maxLat {
			break
		}
		path = append(path, globe.Cartographic{Lng: lng, Lat: lat})
	}
	return append(path, globe.Cartographic{Lng: lng, Lat: maxLat})
}

func parallelPath(lat, minLng, maxLng s1.Angle) []globe.Cartographic {
	n := steps(minLng, maxLng, granularity)
	path := make([]globe.Cartographic, 0, n+2)
	for i := 0; i <= n; i++ {
		lng := minLng + s1.Angle(i)*granularity
		if lng >= maxLng {
			break
		}
		path = append(path, globe.Cartographic{Lng: lng, Lat: lat})
	}
	return append(path, globe.Cartographic{Lng: maxLng, Lat: lat})
}

// meridianLabels places a meridian's label at the top and bottom screen
// edges, or at the view center when neither resolves.
func meridianLabels(text string, lng, midLat s1.Angle, pl Placement) []LabelSpec {
	north, south := pl.Edges.North, pl.Edges.South
	if !north.OK && !south.OK {
		lat := midLat
		if pl.CenterOK {
			lat = pl.Center.Lat
		}
		return []LabelSpec{{
			Text:     text,
			Position: globe.Cartographic{Lng: lng, Lat: lat},
			Tag:      Tag{Anchor: AnchorCenter},
		}}
	}
	var out []LabelSpec
	for _, a := range [...]Anchor{AnchorSouth, AnchorNorth} {
		if edge := pl.Edges.Edge(a); edge.OK {
			out = append(out, LabelSpec{
				Text:     text,
				Position: globe.Cartographic{Lng: lng, Lat: edge.Angle},
				Tag:      Tag{Anchor: a},
			})
		}
	}
	return out
}

// parallelLabels places a parallel's label at the left and right screen
// edges, or at the view center when neither resolves.
func parallelLabels(text string, lat, midLng s1.Angle, pl Placement) []LabelSpec {
	east, west := pl.Edges.East, pl.Edges.West
	if !east.OK && !west.OK {
		lng := midLng
		if pl.CenterOK {
			lng = pl.Center.Lng
		}
		return []LabelSpec{{
			Text:     text,
			Position: globe.Cartographic{Lng: lng, Lat: lat},
			Tag:      Tag{IsLatitude: true, Anchor: AnchorCenter},
		}}
	}
	var out []LabelSpec
	for _, a := range [...]Anchor{AnchorEast, AnchorWest} {
		if edge := pl.Edges.Edge(a); edge.OK {
			out = append(out, LabelSpec{
				Text:     text,
				Position: globe.Cartographic{Lng: edge.Angle, Lat: lat},
				Tag:      Tag{IsLatitude: true, Anchor: a},
			})
		}
	}
	return out
}
