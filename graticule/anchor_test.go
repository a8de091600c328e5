package graticule

import (
	"testing"

	"globegrid/globe"

	"github.com/golang/geo/s2"
)

func TestReanchor(t *testing.T) {
	ell := globe.WGS84
	var labels globe.LabelCollection
	add := func(lng, lat float64) *globe.Label {
		return labels.Add(globe.LabelOptions{Position: ell.CartographicToCartesian(globe.FromDegrees(lng, lat))})
	}
	meridian := add(2, 4)
	parallel := add(-3, 1)
	lost := add(5, -2)
	centered := add(-1, 3)

	tags := map[LabelHandle]Tag{
		meridian: {Anchor: AnchorNorth},
		parallel: {IsLatitude: true, Anchor: AnchorWest},
		lost:     {Anchor: AnchorSouth},
		centered: {IsLatitude: true, Anchor: AnchorCenter},
	}
	edges := ScreenEdges{
		North: Edge{Angle: deg(6), OK: true},
		West:  Edge{Angle: deg(-4), OK: true},
	}
	center := s2.LatLngFromDegrees(0.5, 0.25)

	if n := Reanchor(tags, edges, center, true, ell); n != 4 {
		t.Fatalf("Reanchor moved %d labels, want 4", n)
	}

	at := func(l *globe.Label) globe.Cartographic {
		c, ok := ell.CartesianToCartographic(l.Position())
		if !ok {
			t.Fatalf("label position %v does not invert", l.Position())
		}
		return c
	}
	if c := at(meridian); !near(c.Lat, deg(6), 1e-6) || !near(c.Lng, deg(2), 1e-6) {
		t.Errorf("meridian label at %v, want lat 6° on lng 2°", c.LatLng())
	}
	if c := at(parallel); !near(c.Lng, deg(-4), 1e-6) || !near(c.Lat, deg(1), 1e-6) {
		t.Errorf("parallel label at %v, want lng -4° on lat 1°", c.LatLng())
	}
	if c := at(lost); !near(c.Lat, deg(0.5), 1e-6) || !near(c.Lng, deg(5), 1e-6) {
		t.Errorf("label with a missing edge at %v, want the center latitude", c.LatLng())
	}
	if c := at(centered); !near(c.Lng, deg(0.25), 1e-6) {
		t.Errorf("centered label at %v, want the center longitude", c.LatLng())
	}
}

func TestReanchorWithoutCenter(t *testing.T) {
	ell := globe.WGS84
	var labels globe.LabelCollection
	orig := ell.CartographicToCartesian(globe.FromDegrees(5, -2))
	l := labels.Add(globe.LabelOptions{Position: orig})

	tags := map[LabelHandle]Tag{l: {Anchor: AnchorSouth}}
	if n := Reanchor(tags, ScreenEdges{}, s2.LatLng{}, false, ell); n != 0 {
		t.Errorf("Reanchor moved %d labels with nothing resolved", n)
	}
	if l.Position() != orig {
		t.Errorf("label moved to %v", l.Position())
	}
}

func TestAnchorString(t *testing.T) {
	for a, want := range map[Anchor]string{
		AnchorCenter: "center",
		AnchorNorth:  "north",
		AnchorSouth:  "south",
		AnchorEast:   "east",
		AnchorWest:   "west",
	} {
		if got := a.String(); got != want {
			t.Errorf("Anchor(%d).String() = %q, want %q", a, got, want)
		}
	}
}
