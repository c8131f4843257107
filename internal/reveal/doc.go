// Package reveal implements incremental reveal of a derived product list.
//
// A Controller tracks how many entries of a list are visible. The list
// starts with one page showing; each load signal schedules a delayed
// reveal of the next page. Resetting the controller (on a filter change)
// invalidates any reveal still waiting on its timer, so a stale callback
// can never grow the window of a newer list.
//
// The controller is not safe for concurrent use. It expects a single owner
// and a Scheduler that delivers callbacks on that owner's goroutine, such
// as schedule.Loop or schedule.Virtual.
package reveal
