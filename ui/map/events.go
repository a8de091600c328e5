package mapview

import (
	"fmt"
	"time"

	"globegrid/graticule"
)

// eventLog collects engine outcomes for the message bar and the sidebar,
// and forwards them to the next recorder.
type eventLog struct {
	next       graticule.Recorder
	lines      []string
	skips      map[graticule.SkipReason]int
	reanchored int
	rebuilds   int
}

func newEventLog(next graticule.Recorder) *eventLog {
	return &eventLog{next: next, skips: make(map[graticule.SkipReason]int)}
}

func (l *eventLog) RefreshSkipped(reason graticule.SkipReason) {
	l.skips[reason]++
	if l.next != nil {
		l.next.RefreshSkipped(reason)
	}
}

func (l *eventLog) Reanchored(labels int) {
	l.reanchored += labels
	if l.next != nil {
		l.next.Reanchored(labels)
	}
}

func (l *eventLog) Rebuilt(lines, labels int, took time.Duration) {
	l.rebuilds++
	l.add(fmt.Sprintf("rebuilt grid: %d lines, %d labels in %s", lines, labels, took.Round(time.Microsecond)))
	if l.next != nil {
		l.next.Rebuilt(lines, labels, took)
	}
}

func (l *eventLog) add(line string) { l.lines = append(l.lines, line) }

// take returns the lines added since the last call
func (l *eventLog) take() []string {
	out := l.lines
	l.lines = nil
	return out
}
