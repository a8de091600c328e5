// Package snapshot renders a globe scene to a PNG image.
package snapshot

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"globegrid/globe"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrEmptyCanvas is returned for a scene with no visible area.
var ErrEmptyCanvas = errors.New("snapshot: scene canvas is empty")

// Options control the rendered image.
type Options struct {
	// Scale is the number of pixels per canvas row.
	Scale      float64
	Background gg.RGBA
	Globe      gg.RGBA
	FontSize   float64
}

// DefaultOptions render a terminal-sized scene at a readable size.
var DefaultOptions = Options{
	Scale:      16,
	Background: gg.Hex("#000010"),
	Globe:      gg.Hex("#1d3557"),
	FontSize:   12,
}

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

func face(size float64) (text.Face, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("snapshot: load font: %w", fontErr)
	}
	return fontSource.Face(size), nil
}

// Render writes scene to path as a PNG with DefaultOptions.
func Render(scene *globe.Scene, path string) error {
	return RenderWith(scene, path, DefaultOptions)
}

// RenderWith writes scene to path as a PNG.
func RenderWith(scene *globe.Scene, path string, o Options) error {
	dc, err := Draw(scene, o)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("snapshot: save %s: %w", path, err)
	}
	return nil
}

// Draw paints the globe outline, the polylines and the labels of scene into
// a new context. The caller closes it.
func Draw(scene *globe.Scene, o Options) (*gg.Context, error) {
	if o.Scale <= 0 {
		o.Scale = DefaultOptions.Scale
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultOptions.FontSize
	}
	w, h := scene.CanvasSize()
	sx, sy := o.Scale*scene.PixelAspect(), o.Scale
	pw, ph := int(math.Ceil(float64(w)*sx)), int(math.Ceil(float64(h)*sy))
	if pw <= 0 || ph <= 0 {
		return nil, ErrEmptyCanvas
	}

	dc := gg.NewContext(pw, ph)
	dc.ClearWithColor(o.Background)

	cam := scene.Camera()
	setColor(dc, o.Globe)
	dc.DrawCircle(float64(pw)/2, float64(ph)/2, cam.DiscRadius()*float64(ph)/2)
	if err := dc.Fill(); err != nil {
		dc.Close()
		return nil, fmt.Errorf("snapshot: fill globe: %w", err)
	}

	for _, line := range scene.Polylines().All() {
		if err := strokeLine(dc, cam, line, sx, sy); err != nil {
			dc.Close()
			return nil, err
		}
	}

	f, err := face(o.FontSize)
	if err != nil {
		dc.Close()
		return nil, err
	}
	dc.SetFont(f)
	for _, l := range scene.Labels().All() {
		drawLabel(dc, cam, l, sx, sy)
	}
	return dc, nil
}

func setColor(dc *gg.Context, c gg.RGBA) { dc.SetRGBA(c.R, c.G, c.B, c.A) }

// strokeLine draws the visible runs of a polyline. A point on the far side
// of the globe lifts the pen.
func strokeLine(dc *gg.Context, cam *globe.Camera, line globe.Polyline, sx, sy float64) error {
	setColor(dc, line.Color)
	dc.SetLineWidth(math.Max(1, line.Width*2))
	pen := false
	for _, p := range line.Positions {
		x, y, ok := cam.Project(p)
		if !ok {
			pen = false
			continue
		}
		if pen {
			dc.LineTo(x*sx, y*sy)
		} else {
			dc.MoveTo(x*sx, y*sy)
			pen = true
		}
	}
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("snapshot: stroke line: %w", err)
	}
	return nil
}

func drawLabel(dc *gg.Context, cam *globe.Camera, l *globe.Label, sx, sy float64) {
	x, y, ok := cam.Project(l.Position())
	if !ok {
		return
	}
	x = x*sx + l.PixelOffset[0]
	y = y*sy + l.PixelOffset[1]

	ay := 0.5
	switch l.VerticalOrigin {
	case globe.VerticalBottom:
		ay = 0
	case globe.VerticalTop:
		ay = 1
	}

	if l.Style != globe.StyleFill && l.OutlineWidth > 0 {
		setColor(dc, l.OutlineColor)
		d := math.Max(1, l.OutlineWidth/2)
		for _, off := range [...][2]float64{{-d, 0}, {d, 0}, {0, -d}, {0, d}} {
			dc.DrawStringAnchored(l.Text, x+off[0], y+off[1], 0, ay)
		}
	}
	if l.Style != globe.StyleOutline {
		setColor(dc, l.FillColor)
		dc.DrawStringAnchored(l.Text, x, y, 0, ay)
	}
}
