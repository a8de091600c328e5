package graticule

import (
	"globegrid/globe"

	"github.com/golang/geo/s2"
)

// Anchor says which screen edge a label follows.
type Anchor int

const (
	AnchorCenter Anchor = iota
	AnchorNorth
	AnchorSouth
	AnchorEast
	AnchorWest
)

func (a Anchor) String() string {
	switch a {
	case AnchorNorth:
		return "north"
	case AnchorSouth:
		return "south"
	case AnchorEast:
		return "east"
	case AnchorWest:
		return "west"
	}
	return "center"
}

// Tag is what the engine remembers about each label it placed. Latitude
// labels sit on parallels and slide east-west; the others sit on meridians
// and slide north-south.
type Tag struct {
	IsLatitude bool
	Anchor     Anchor
}

// Reanchor moves tracked labels to the current screen edges. A label whose
// edge no longer resolves moves to the view center; if the center did not
// resolve either, it stays put. It returns the number of labels moved.
func Reanchor(labels map[LabelHandle]Tag, edges ScreenEdges, center s2.LatLng, centerOK bool, e *globe.Ellipsoid) int {
	moved := 0
	for h, tag := range labels {
		carto, ok := e.CartesianToCartographic(h.Position())
		if !ok {
			continue
		}
		edge := edges.Edge(tag.Anchor)
		switch {
		case tag.IsLatitude && edge.OK:
			carto.Lng = edge.Angle
		case tag.IsLatitude && centerOK:
			carto.Lng = center.Lng
		case !tag.IsLatitude && edge.OK:
			carto.Lat = edge.Angle
		case !tag.IsLatitude && centerOK:
			carto.Lat = center.Lat
		default:
			continue
		}
		h.SetPosition(e.CartographicToCartesian(carto))
		moved++
	}
	return moved
}
