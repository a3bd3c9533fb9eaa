// Package bootstrap wires the native messaging host together.
package bootstrap

import (
	"context"
	"time"

	"github.com/bnema/dtabridge/internal/logging"
)

type phase struct {
	name string
	took time.Duration
}

// wiringTimer measures the gap between host start and the first frame read.
// The browser waits on that gap, so each phase is logged separately.
// Only the goroutine running RunHost touches it.
type wiringTimer struct {
	start  time.Time
	last   time.Time
	phases []phase
}

func newWiringTimer() *wiringTimer {
	now := time.Now()
	return &wiringTimer{start: now, last: now}
}

// mark closes the phase that began at the previous mark.
func (t *wiringTimer) mark(name string) {
	now := time.Now()
	t.phases = append(t.phases, phase{name: name, took: now.Sub(t.last)})
	t.last = now
}

func (t *wiringTimer) uptime() time.Duration {
	return time.Since(t.start)
}

func (t *wiringTimer) log(ctx context.Context) {
	event := logging.FromContext(ctx).Debug().Dur("total", t.last.Sub(t.start))
	for _, p := range t.phases {
		event = event.Dur(p.name, p.took)
	}
	event.Msg("host wired")
}
