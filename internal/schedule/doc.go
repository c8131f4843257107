// Package schedule provides the single logical event queue browsing sessions
// run on, and the deferred timers the reveal controller uses.
//
// ARCHITECTURE:
//
// Single-Writer Event Loop:
// Loop executes every posted task on one goroutine, in FIFO order. Session
// state is only touched from that goroutine, so no locks are needed around
// it. This ensures:
//   - Commands are atomic with respect to each other
//   - A timer completion never interleaves with a command
//   - Timer completions that lost a race with a newer command can be
//     recognised and dropped by the owner
//
// Timers:
// AfterFunc never runs its callback on the timer goroutine. When the delay
// elapses the callback is posted to the queue like any other task. Stopping
// a timer prevents the callback even if it is already queued.
//
// Virtual Time:
// Virtual implements the same Scheduler interface on a manually advanced
// clock. Tests and non-interactive rendering use it to step through
// loading delays deterministically and without sleeping.
//
// Sequence Numbers:
// Every event is stamped with a seq that increases in enqueue order, so log
// lines can be tied to the event that produced them without wall time.
package schedule
