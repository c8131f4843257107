package schedule

import "time"

// Scheduler runs a callback once after a delay.
// Implemented by Loop (wall time) and Virtual (manual time).
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending callback created by a Scheduler.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or the timer was already stopped.
	Stop() bool
}
