package graticule

import (
	"log/slog"
	"time"

	"globegrid/globe"

	"github.com/gogpu/gg"
)

// Defaults.
const (
	DefaultGridCount         = 15
	DefaultDebounce          = 500 * time.Millisecond
	DefaultPercentageChanged = 0.01
	DefaultLineWidth         = 0.5
)

// LabelStyle controls how labels are drawn. Zero fields keep the default.
type LabelStyle struct {
	Font         string
	FillColor    gg.RGBA
	OutlineColor gg.RGBA
	OutlineWidth float64
	Style        globe.LabelStyle
}

// DefaultLabelStyle is bold white text with a black outline.
var DefaultLabelStyle = LabelStyle{
	Font:         "bold 1rem Arial",
	FillColor:    gg.White,
	OutlineColor: gg.Black,
	OutlineWidth: 4,
	Style:        globe.StyleFillAndOutline,
}

// Margins are the inward offsets, in canvas units, of the screen-edge
// probes. X widens to NearX when the camera is below NearHeight meters.
type Margins struct {
	X, Y       float64
	NearX      float64
	NearHeight float64
}

// DefaultMargins suit a pixel canvas.
var DefaultMargins = Margins{X: 40, Y: 20, NearX: 60, NearHeight: 36000}

// Option configures an Engine.
type Option func(*config)

type config struct {
	lineColor         gg.RGBA
	meridianColor     gg.RGBA
	lineWidth         float64
	gridCount         int
	debounce          time.Duration
	meridians         bool
	labelStyle        LabelStyle
	margins           Margins
	percentageChanged float64
	now               func() time.Time
	logger            *slog.Logger
	recorder          Recorder
}

func defaultConfig() config {
	return config{
		lineColor:         gg.Hex("#ffffff80"),
		meridianColor:     gg.Yellow,
		lineWidth:         DefaultLineWidth,
		gridCount:         DefaultGridCount,
		debounce:          DefaultDebounce,
		meridians:         true,
		labelStyle:        DefaultLabelStyle,
		margins:           DefaultMargins,
		percentageChanged: DefaultPercentageChanged,
		now:               time.Now,
		recorder:          nopRecorder{},
	}
}

// WithLineColor sets the color of ordinary grid lines.
func WithLineColor(c gg.RGBA) Option {
	return func(o *config) { o.lineColor = c }
}

// WithMeridianColor sets the color of the equator, prime meridian and
// antimeridian.
func WithMeridianColor(c gg.RGBA) Option {
	return func(o *config) { o.meridianColor = c }
}

// WithLineWidth sets the polyline width.
func WithLineWidth(w float64) Option {
	return func(o *config) {
		if w > 0 {
			o.lineWidth = w
		}
	}
}

// WithGridCount sets the target number of lines across the view.
// Non-positive values keep the default.
func WithGridCount(n int) Option {
	return func(o *config) {
		if n > 0 {
			o.gridCount = n
		}
	}
}

// WithDebounce sets the minimum time between accepted refreshes.
func WithDebounce(d time.Duration) Option {
	return func(o *config) {
		if d >= 0 {
			o.debounce = d
		}
	}
}

// WithMeridians turns highlighting of the equator and the prime and
// antimeridian on or off, including their named labels.
func WithMeridians(on bool) Option {
	return func(o *config) { o.meridians = on }
}

// WithLabelStyle overrides label font and colors. Zero fields keep the
// default.
func WithLabelStyle(s LabelStyle) Option {
	return func(o *config) {
		if s.Font != "" {
			o.labelStyle.Font = s.Font
		}
		if s.FillColor != (gg.RGBA{}) {
			o.labelStyle.FillColor = s.FillColor
		}
		if s.OutlineColor != (gg.RGBA{}) {
			o.labelStyle.OutlineColor = s.OutlineColor
		}
		if s.OutlineWidth > 0 {
			o.labelStyle.OutlineWidth = s.OutlineWidth
		}
		if s.Style != globe.StyleFillAndOutline {
			o.labelStyle.Style = s.Style
		}
	}
}

// WithEdgeMargins sets the screen-edge probe margins.
func WithEdgeMargins(m Margins) Option {
	return func(o *config) { o.margins = m }
}

// WithPercentageChanged sets the camera sensitivity applied on Show.
func WithPercentageChanged(p float64) Option {
	return func(o *config) { o.percentageChanged = p }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *config) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the engine logger. Without it the package logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *config) { o.logger = l }
}

// WithRecorder sets the refresh recorder.
func WithRecorder(r Recorder) Option {
	return func(o *config) {
		if r != nil {
			o.recorder = r
		}
	}
}
