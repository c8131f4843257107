package schedule

import (
	"sync"
	"time"
)

// Virtual is a Scheduler driven by a manually advanced clock.
//
// Callbacks run synchronously inside Advance or Drain, on the caller's
// goroutine, in deadline order; timers with the same deadline run in the
// order they were created. Callbacks may schedule further timers.
type Virtual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int64
	timers []*virtualTimer
}

type virtualTimer struct {
	v       *Virtual
	at      time.Duration
	seq     int64
	fn      func()
	stopped bool
	fired   bool
}

// NewVirtual creates a virtual scheduler at time zero.
func NewVirtual() *Virtual {
	return &Virtual{}
}

// AfterFunc implements Scheduler.
func (v *Virtual) AfterFunc(d time.Duration, f func()) Timer {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.seq++
	t := &virtualTimer{v: v, at: v.now + max(d, 0), seq: v.seq, fn: f}
	v.timers = append(v.timers, t)
	return t
}

// Now returns the elapsed virtual time.
func (v *Virtual) Now() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// Pending returns the number of timers that have neither fired nor stopped.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.timers)
}

// Advance moves the clock forward by d, running every timer that comes due.
func (v *Virtual) Advance(d time.Duration) {
	v.mu.Lock()
	target := v.now + d
	v.mu.Unlock()

	for {
		t := v.nextDue(target)
		if t == nil {
			break
		}
		t.fn()
	}

	v.mu.Lock()
	if target > v.now {
		v.now = target
	}
	v.mu.Unlock()
}

// Drain runs timers until none are pending, advancing the clock to each
// deadline in turn. Timers scheduled by callbacks are drained too, up to
// limit callbacks; Drain returns the number run.
func (v *Virtual) Drain(limit int) int {
	ran := 0
	for ran < limit {
		v.mu.Lock()
		if len(v.timers) == 0 {
			v.mu.Unlock()
			break
		}
		target := v.timers[v.earliest()].at
		v.mu.Unlock()

		t := v.nextDue(target)
		if t == nil {
			break
		}
		t.fn()
		ran++
	}
	return ran
}

// nextDue pops the earliest timer due at or before target and moves the
// clock to its deadline.
func (v *Virtual) nextDue(target time.Duration) *virtualTimer {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.timers) == 0 {
		return nil
	}
	i := v.earliest()
	t := v.timers[i]
	if t.at > target {
		return nil
	}

	v.timers = append(v.timers[:i], v.timers[i+1:]...)
	t.fired = true
	if t.at > v.now {
		v.now = t.at
	}
	return t
}

// earliest returns the index of the next timer. Caller holds mu and
// timers is non-empty.
func (v *Virtual) earliest() int {
	best := 0
	for i, t := range v.timers[1:] {
		b := v.timers[best]
		if t.at < b.at || (t.at == b.at && t.seq < b.seq) {
			best = i + 1
		}
	}
	return best
}

// Stop implements Timer.
func (t *virtualTimer) Stop() bool {
	t.v.mu.Lock()
	defer t.v.mu.Unlock()

	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	for i, other := range t.v.timers {
		if other == t {
			t.v.timers = append(t.v.timers[:i], t.v.timers[i+1:]...)
			break
		}
	}
	return true
}
