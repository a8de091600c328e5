package config

import (
	"os"
	"path/filepath"
	"testing"

	"globegrid/globe"
	"globegrid/graticule"

	"github.com/gogpu/gg"
	"github.com/golang/geo/s2"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	conf, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if conf != Default() {
		t.Errorf("missing file = %+v, want defaults", conf)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[map]
defaultzoom = 4
start_lon = 12.5
start_lat = 41.9

[graticule]
grid_count = 8
debounce_ms = 250
meridians = false
line_color = "#80808080"

[log]
level = "debug"

[metrics]
addr = ":9100"
`)
	conf, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if conf.Map.DefaultZoom != 4 || conf.Map.StartLon != 12.5 || conf.Map.StartLat != 41.9 {
		t.Errorf("map = %+v", conf.Map)
	}
	if conf.Map.Shapefile != Default().Map.Shapefile || conf.Map.CellAspect != 0.5 {
		t.Errorf("map defaults lost: %+v", conf.Map)
	}
	g := conf.Graticule
	if g.GridCount != 8 || g.DebounceMS != 250 || g.Meridians || g.LineColor != "#80808080" {
		t.Errorf("graticule = %+v", g)
	}
	if g.MeridianColor != "#ffff00" {
		t.Errorf("meridian color default lost: %q", g.MeridianColor)
	}
	if conf.Log.Level != "debug" || conf.Log.Format != "text" {
		t.Errorf("log = %+v", conf.Log)
	}
	if conf.Metrics.Addr != ":9100" {
		t.Errorf("metrics = %+v", conf.Metrics)
	}
	if h := conf.Map.Height(); h != FullGlobeHeight/4 {
		t.Errorf("Height() = %v", h)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "[map\nshapefile = ")); err == nil {
		t.Error("malformed config loaded without error")
	}
}

func TestStart(t *testing.T) {
	m := MapConfig{StartLon: -3, StartLat: 40}
	ll, err := m.Start()
	if err != nil {
		t.Fatal(err)
	}
	if d := ll.Lat.Degrees(); d < 39.999 || d > 40.001 {
		t.Errorf("start lat = %v", d)
	}

	m.GridSquare = "FN31pr"
	ll, err = m.Start()
	if err != nil {
		t.Fatalf("Start() with grid square error = %v", err)
	}
	if lat, lng := ll.Lat.Degrees(), ll.Lng.Degrees(); lat < 41 || lat > 42 || lng > -72 || lng < -73 {
		t.Errorf("FN31pr = %v,%v", lat, lng)
	}

	m.GridSquare = "ZZ99"
	if _, err := m.Start(); err == nil {
		t.Error("invalid grid square accepted")
	}
}

func TestGraticuleOptions(t *testing.T) {
	conf := Default()
	conf.Graticule.Meridians = false
	conf.Graticule.LineColor = "#ff0000"
	conf.Graticule.Font = "10px mono"

	scene := globe.NewScene(100, 100, nil)
	scene.Camera().SetView(s2.LatLngFromDegrees(0, 0), 9.6e5)
	e, err := graticule.New(graticule.SceneHost(scene), conf.GraticuleOptions()...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := e.Show(); err != nil {
		t.Fatalf("Show() error = %v", err)
	}

	for _, l := range scene.Polylines().All() {
		if l.Color != gg.Hex("#ff0000") {
			t.Fatalf("line color = %v, want the configured red", l.Color)
		}
	}
	for _, l := range scene.Labels().All() {
		if l.Text == "Prime Meridian" || l.Text == "Equator" {
			t.Errorf("highlight label %q with meridians off", l.Text)
		}
		if l.Font != "10px mono" || l.FillColor != gg.White {
			t.Errorf("label style = %q %v", l.Font, l.FillColor)
		}
	}
}
