package graticule

import (
	"math"
	"testing"
	"time"

	"globegrid/globe"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// closeHeight puts a 100x100 canvas over roughly ±5.3° around the target.
const closeHeight = 9.6e5

func deg(d float64) s1.Angle { return s1.Angle(d) * s1.Degree }

func near(a, b s1.Angle, tolDeg float64) bool {
	return math.Abs(a.Degrees()-b.Degrees()) <= tolDeg
}

type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock { return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)} }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type countingRecorder struct {
	rebuilds   int
	reanchored int
	skipped    map[SkipReason]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{skipped: make(map[SkipReason]int)}
}

func (r *countingRecorder) RefreshSkipped(reason SkipReason) { r.skipped[reason]++ }
func (r *countingRecorder) Reanchored(n int)                 { r.reanchored += n }
func (r *countingRecorder) Rebuilt(int, int, time.Duration)  { r.rebuilds++ }

// missCamera never hits the globe.
type missCamera struct{}

func (missCamera) Position() globe.Cartographic                     { return globe.Cartographic{Height: 1e9} }
func (missCamera) PickEllipsoid(float64, float64) (r3.Vector, bool) { return r3.Vector{}, false }
func (missCamera) SetPercentageChanged(float64)                     {}
func (missCamera) OnChanged(func()) func()                          { return func() {} }

type testRig struct {
	scene  *globe.Scene
	clock  *fakeClock
	rec    *countingRecorder
	engine *Engine
}

func newRig(t *testing.T, target s2.LatLng, height float64, opts ...Option) *testRig {
	t.Helper()
	scene := globe.NewScene(100, 100, nil)
	scene.Camera().SetView(target, height)
	clock := newFakeClock()
	rec := newCountingRecorder()
	opts = append([]Option{WithClock(clock.Now), WithRecorder(rec)}, opts...)
	e, err := New(SceneHost(scene), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return &testRig{scene: scene, clock: clock, rec: rec, engine: e}
}

func (r *testRig) labelTexts() map[string]int {
	out := make(map[string]int)
	for _, l := range r.scene.Labels().All() {
		out[l.Text]++
	}
	return out
}
