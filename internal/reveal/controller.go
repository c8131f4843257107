package reveal

import (
	"io"
	"log/slog"
	"time"

	"github.com/PraveshMalvi/buyora/internal/schedule"
)

const (
	// DefaultPageSize is the number of entries revealed per page.
	DefaultPageSize = 12
	// DefaultLoadDelay is the pause between a load signal and the reveal.
	DefaultLoadDelay = 300 * time.Millisecond
)

// State is the controller's loading state.
type State int

const (
	Idle State = iota
	LoadingMore
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case LoadingMore:
		return "loading_more"
	default:
		return "unknown"
	}
}

// Controller reveals a list page by page.
type Controller struct {
	sched    schedule.Scheduler
	logger   *slog.Logger
	pageSize int
	delay    time.Duration

	window int
	total  int
	state  State

	// gen identifies the current list. A scheduled reveal only applies if
	// gen has not moved since it was scheduled.
	gen     uint64
	pending schedule.Timer

	sentinelVisible bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithPageSize sets the page size. Values below 1 are ignored.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n >= 1 {
			c.pageSize = n
		}
	}
}

// WithLoadDelay sets the delay between a load signal and the reveal.
func WithLoadDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a controller for an empty list. Call Reset with the list
// length before use.
func New(sched schedule.Scheduler, opts ...Option) *Controller {
	c := &Controller{
		sched:    sched,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		pageSize: DefaultPageSize,
		delay:    DefaultLoadDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.window = c.pageSize
	return c
}

// Reset starts over for a new list of total entries: one page visible,
// Idle, and any pending reveal cancelled.
//
// The sentinel is considered hidden after a reset because the owner
// scrolls back to the top of the new list.
func (c *Controller) Reset(total int) {
	c.cancelPending()
	c.gen++
	c.window = c.pageSize
	c.total = max(total, 0)
	c.state = Idle
	c.sentinelVisible = false

	c.logger.Debug("reveal reset", "gen", c.gen, "total", c.total, "revealed", c.Revealed())
}

// SetTotal updates the list length without resetting the window. The
// owner calls it when the list changes under the same filter, such as a
// favorite being removed while only favorites are shown.
func (c *Controller) SetTotal(total int) {
	c.total = max(total, 0)
}

// LoadMore requests the next page. It returns true if a reveal was
// scheduled; signals while loading or with nothing left to show are
// ignored.
func (c *Controller) LoadMore() bool {
	if c.state != Idle {
		c.logger.Debug("load signal ignored", "reason", "loading")
		return false
	}
	if !c.HasMore() {
		c.logger.Debug("load signal ignored", "reason", "exhausted")
		return false
	}

	c.state = LoadingMore
	gen := c.gen
	c.pending = c.sched.AfterFunc(c.delay, func() { c.complete(gen) })

	c.logger.Debug("reveal scheduled", "gen", gen, "delay", c.delay)
	return true
}

// SetSentinelVisible reports whether the end-of-list marker is on screen.
// Becoming visible counts as a load signal. It returns true if a reveal
// was scheduled.
func (c *Controller) SetSentinelVisible(visible bool) bool {
	rising := visible && !c.sentinelVisible
	c.sentinelVisible = visible
	if !rising {
		return false
	}
	return c.LoadMore()
}

// Revealed returns the number of visible entries, never more than the
// list length.
func (c *Controller) Revealed() int {
	return min(c.window, c.total)
}

// Total returns the list length.
func (c *Controller) Total() int {
	return c.total
}

// HasMore reports whether entries remain hidden.
func (c *Controller) HasMore() bool {
	return c.Revealed() < c.total
}

// IsLoadingMore reports whether a reveal is waiting on its timer.
func (c *Controller) IsLoadingMore() bool {
	return c.state == LoadingMore
}

// State returns the loading state.
func (c *Controller) State() State {
	return c.state
}

// PageSize returns the configured page size.
func (c *Controller) PageSize() int {
	return c.pageSize
}

func (c *Controller) complete(gen uint64) {
	if gen != c.gen {
		c.logger.Debug("stale reveal dropped", "gen", gen, "current", c.gen)
		return
	}
	c.pending = nil

	if c.window < c.total {
		c.window = min(c.window+c.pageSize, c.total)
	}
	c.state = Idle
	c.logger.Debug("reveal complete", "gen", gen, "revealed", c.Revealed(), "total", c.total)

	// The marker is still on screen after the new rows appear; keep going.
	if c.sentinelVisible && c.HasMore() {
		c.LoadMore()
	}
}

func (c *Controller) cancelPending() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}
