package globe

import (
	"github.com/gogpu/gg"
	"github.com/golang/geo/r3"
)

// Polyline is a stroked path through world positions.
type Polyline struct {
	Positions []r3.Vector
	Width     float64
	Color     gg.RGBA
}

// PolylineCollection holds the polylines drawn by the scene.
type PolylineCollection struct {
	lines []Polyline
}

// Add appends a polyline.
func (c *PolylineCollection) Add(p Polyline) { c.lines = append(c.lines, p) }

// RemoveAll empties the collection.
func (c *PolylineCollection) RemoveAll() { c.lines = c.lines[:0] }

// Len returns the number of polylines.
func (c *PolylineCollection) Len() int { return len(c.lines) }

// All returns the polylines in insertion order.
func (c *PolylineCollection) All() []Polyline { return c.lines }

// LabelStyle selects how label glyphs are painted.
type LabelStyle int

const (
	StyleFillAndOutline LabelStyle = iota
	StyleFill
	StyleOutline
)

// VerticalOrigin is the label edge placed at its position.
type VerticalOrigin int

const (
	VerticalCenter VerticalOrigin = iota
	VerticalBottom
	VerticalTop
)

// LabelOptions describes a label when it is added.
type LabelOptions struct {
	Position       r3.Vector
	Text           string
	Font           string
	FillColor      gg.RGBA
	OutlineColor   gg.RGBA
	OutlineWidth   float64
	Style          LabelStyle
	PixelOffset    [2]float64
	VerticalOrigin VerticalOrigin
}

// Label is a text label owned by a LabelCollection.
type Label struct {
	LabelOptions
}

// Position returns the label's world position.
func (l *Label) Position() r3.Vector { return l.LabelOptions.Position }

// SetPosition moves the label.
func (l *Label) SetPosition(p r3.Vector) { l.LabelOptions.Position = p }

// LabelCollection holds the labels drawn by the scene.
type LabelCollection struct {
	labels []*Label
}

// Add creates a label and returns its handle.
func (c *LabelCollection) Add(o LabelOptions) *Label {
	l := &Label{LabelOptions: o}
	c.labels = append(c.labels, l)
	return l
}

// RemoveAll empties the collection.
func (c *LabelCollection) RemoveAll() { c.labels = nil }

// Len returns the number of labels.
func (c *LabelCollection) Len() int { return len(c.labels) }

// All returns the labels in insertion order.
func (c *LabelCollection) All() []*Label { return c.labels }
