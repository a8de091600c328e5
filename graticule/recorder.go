package graticule

import "time"

// SkipReason says why a notification did not lead to a rebuild.
type SkipReason string

const (
	SkipDebounced SkipReason = "debounce"
	SkipUnchanged SkipReason = "unchanged"
)

// Recorder receives refresh outcomes, typically to export them as metrics.
type Recorder interface {
	RefreshSkipped(reason SkipReason)
	Reanchored(labels int)
	Rebuilt(lines, labels int, took time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RefreshSkipped(SkipReason)       {}
func (nopRecorder) Reanchored(int)                  {}
func (nopRecorder) Rebuilt(int, int, time.Duration) {}
