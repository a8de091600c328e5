// Package metrics exports graticule refresh outcomes to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"globegrid/graticule"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "globegrid"

// Recorder implements graticule.Recorder on top of Prometheus collectors.
type Recorder struct {
	skipped    *prometheus.CounterVec
	reanchored prometheus.Counter
	rebuilds   prometheus.Counter
	lines      prometheus.Gauge
	labels     prometheus.Gauge
	duration   prometheus.Histogram
}

// NewRecorder registers the graticule collectors with reg. A nil reg uses
// the default registerer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		skipped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graticule",
			Name:      "skips_total",
			Help:      "Camera notifications that did not lead to a rebuild",
		}, []string{"reason"}),
		reanchored: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graticule",
			Name:      "reanchors_total",
			Help:      "Labels moved to follow the screen edges",
		}),
		rebuilds: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graticule",
			Name:      "rebuilds_total",
			Help:      "Full grid rebuilds",
		}),
		lines: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "graticule",
			Name:      "lines",
			Help:      "Grid lines in the current build",
		}),
		labels: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "graticule",
			Name:      "labels",
			Help:      "Labels in the current build",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "graticule",
			Name:      "build_duration_seconds",
			Help:      "Time spent building and uploading the grid",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
	}
}

func (r *Recorder) RefreshSkipped(reason graticule.SkipReason) {
	r.skipped.WithLabelValues(string(reason)).Inc()
}

func (r *Recorder) Reanchored(labels int) {
	r.reanchored.Add(float64(labels))
}

func (r *Recorder) Rebuilt(lines, labels int, took time.Duration) {
	r.rebuilds.Inc()
	r.lines.Set(float64(lines))
	r.labels.Set(float64(labels))
	r.duration.Observe(took.Seconds())
}

// Handler serves the metrics gathered from g. A nil g uses the default
// gatherer.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
