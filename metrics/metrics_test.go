package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"globegrid/graticule"

	"github.com/prometheus/client_golang/prometheus"
)

var _ graticule.Recorder = (*Recorder)(nil)

func gather(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				key += "{" + lp.GetName() + "=" + lp.GetValue() + "}"
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				out[key] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.RefreshSkipped(graticule.SkipDebounced)
	r.RefreshSkipped(graticule.SkipDebounced)
	r.RefreshSkipped(graticule.SkipUnchanged)
	r.Reanchored(28)
	r.Reanchored(0)
	r.Rebuilt(30, 28, 2*time.Millisecond)
	r.Rebuilt(32, 30, time.Millisecond)

	got := gather(t, reg)
	want := map[string]float64{
		"globegrid_graticule_skips_total{reason=debounce}":  2,
		"globegrid_graticule_skips_total{reason=unchanged}": 1,
		"globegrid_graticule_reanchors_total":               28,
		"globegrid_graticule_rebuilds_total":                2,
		"globegrid_graticule_lines":                         32,
		"globegrid_graticule_labels":                        30,
		"globegrid_graticule_build_duration_seconds":        2,
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRecorder(reg).Rebuilt(10, 4, time.Millisecond)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "globegrid_graticule_rebuilds_total 1") {
		t.Errorf("metrics output missing rebuild counter:\n%s", body)
	}
}
