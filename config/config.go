package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"globegrid/geomath"
	"globegrid/graticule"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gg"
	"github.com/golang/geo/s2"
)

// DefaultPath is where LoadConfig looks when no path is given
const DefaultPath = "config.toml"

// FullGlobeHeight is the camera height at zoom level 1, in meters
const FullGlobeHeight = 2e7

// Config holds all application configuration
type Config struct {
	Map       MapConfig       `toml:"map"`
	Graticule GraticuleConfig `toml:"graticule"`
	Log       LogConfig       `toml:"log"`
	Metrics   MetricsConfig   `toml:"metrics"`
}

// MapConfig holds map-specific settings
type MapConfig struct {
	Shapefile   string  `toml:"shapefile"`
	DefaultZoom float64 `toml:"defaultzoom"`
	StartLon    float64 `toml:"start_lon"`
	StartLat    float64 `toml:"start_lat"`
	GridSquare  string  `toml:"gridsquare"`
	SnapshotDir string  `toml:"snapshot_dir"`
	// CellAspect is the width/height ratio of a terminal cell
	CellAspect  float64 `toml:"cell_aspect"`
}

// GraticuleConfig holds the grid settings. Colors are hex strings.
type GraticuleConfig struct {
	LineColor     string  `toml:"line_color"`
	MeridianColor string  `toml:"meridian_color"`
	GridCount     int     `toml:"grid_count"`
	DebounceMS    int     `toml:"debounce_ms"`
	Meridians     bool    `toml:"meridians"`
	Font          string  `toml:"font"`
	FillColor     string  `toml:"fill_color"`
	OutlineColor  string  `toml:"outline_color"`
	OutlineWidth  float64 `toml:"outline_width"`
}

// LogConfig holds logger settings. An empty File discards logs.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// MetricsConfig holds the Prometheus listener. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the settings used for anything config.toml leaves out
func Default() Config {
	return Config{
		Map: MapConfig{
			Shapefile:   "mapdata/ne_110m_land.shp",
			DefaultZoom: 1,
			CellAspect:  0.5,
			SnapshotDir: ".",
		},
		Graticule: GraticuleConfig{
			LineColor:     "#ffffff80",
			MeridianColor: "#ffff00",
			GridCount:     graticule.DefaultGridCount,
			DebounceMS:    int(graticule.DefaultDebounce / time.Millisecond),
			Meridians:     true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads the configuration from path. A missing file yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}
	conf := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return conf, nil
	}
	if err != nil {
		return conf, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, &conf); err != nil {
		return conf, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return conf, nil
}

// Height converts the zoom level to a camera height
func (m MapConfig) Height() float64 {
	if m.DefaultZoom <= 0 {
		return FullGlobeHeight
	}
	return FullGlobeHeight / m.DefaultZoom
}

// Start returns where the camera first looks. A grid square wins over the
// explicit coordinates.
func (m MapConfig) Start() (s2.LatLng, error) {
	if m.GridSquare != "" {
		ll, err := geomath.GridSquareToLatLng(m.GridSquare)
		if err != nil {
			return s2.LatLngFromDegrees(m.StartLat, m.StartLon), fmt.Errorf("could not parse gridsquare %q: %w", m.GridSquare, err)
		}
		return ll, nil
	}
	return s2.LatLngFromDegrees(m.StartLat, m.StartLon), nil
}

// GraticuleOptions converts the settings to engine options
func (c Config) GraticuleOptions() []graticule.Option {
	g := c.Graticule
	opts := []graticule.Option{
		graticule.WithGridCount(g.GridCount),
		graticule.WithDebounce(time.Duration(g.DebounceMS) * time.Millisecond),
		graticule.WithMeridians(g.Meridians),
		graticule.WithLabelStyle(graticule.LabelStyle{
			Font:         g.Font,
			FillColor:    hexOrZero(g.FillColor),
			OutlineColor: hexOrZero(g.OutlineColor),
			OutlineWidth: g.OutlineWidth,
		}),
	}
	if g.LineColor != "" {
		opts = append(opts, graticule.WithLineColor(gg.Hex(g.LineColor)))
	}
	if g.MeridianColor != "" {
		opts = append(opts, graticule.WithMeridianColor(gg.Hex(g.MeridianColor)))
	}
	return opts
}

func hexOrZero(s string) gg.RGBA {
	if s == "" {
		return gg.RGBA{}
	}
	return gg.Hex(s)
}
