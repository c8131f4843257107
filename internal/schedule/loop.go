package schedule

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// ErrLoopClosed is returned when work is submitted to a loop that has stopped.
var ErrLoopClosed = errors.New("schedule: loop closed")

// Loop is a single-writer event loop.
//
// Thread-safety model:
//   - Post(), Call(), AfterFunc(): safe from any goroutine
//   - Run(): must be called from exactly one goroutine
//   - Call() must not be used from inside a task; it would wait on itself
type Loop struct {
	queue  *eventQueue
	logger *slog.Logger

	// seq stamps events in enqueue order. Posts race, so it is atomic.
	seq atomic.Int64

	// afterEvent runs on the loop goroutine after every event.
	afterEvent func(Event)

	done     chan struct{}
	doneOnce sync.Once
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithLoopLogger sets the logger for loop lifecycle and task failures.
func WithLoopLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithAfterEvent registers a hook run on the loop goroutine after each
// event. Renderers use it to learn that state may have changed.
func WithAfterEvent(fn func(Event)) LoopOption {
	return func(l *Loop) {
		l.afterEvent = fn
	}
}

// NewLoop creates a loop. Nothing runs until Run is called.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		queue:  newEventQueue(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post enqueues fn to run on the loop. It returns false if the loop is closed.
func (l *Loop) Post(name string, fn func()) bool {
	return l.enqueue(EventTypeTask, name, fn)
}

// Call runs fn on the loop and waits for it to finish.
func (l *Loop) Call(ctx context.Context, name string, fn func()) error {
	finished := make(chan struct{})
	if !l.Post(name, func() {
		defer close(finished)
		fn()
	}) {
		return ErrLoopClosed
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		// Run may have executed fn just before exiting.
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopClosed
		}
	}
}

// AfterFunc implements Scheduler. When d elapses, f is posted to the loop
// as a timer event.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	lt := &loopTimer{}
	lt.t = time.AfterFunc(d, func() {
		l.enqueue(EventTypeTimer, "timer", func() {
			if lt.stopped.Load() {
				return
			}
			lt.fired.Store(true)
			f()
		})
	})
	return lt
}

// Run processes events until ctx is cancelled or Stop is called.
// Events queued before Stop are still processed.
func (l *Loop) Run(ctx context.Context) error {
	defer l.doneOnce.Do(func() { close(l.done) })
	l.logger.Debug("loop starting")

	for {
		if event, ok := l.queue.TryDequeue(); ok {
			l.process(event)
			continue
		}

		select {
		case <-ctx.Done():
			l.logger.Debug("loop stopping: context cancelled")
			l.queue.Close()
			return ctx.Err()

		case <-l.queue.Wait():
			// The signal channel closes when the queue is closed, which
			// makes this case fire immediately.
			if l.queue.Len() == 0 && l.isClosed() {
				l.logger.Debug("loop stopping: queue closed")
				return nil
			}
		}
	}
}

// Stop closes the queue. Run returns once queued events are drained.
func (l *Loop) Stop() {
	l.queue.Close()
}

// Pending returns the number of queued events.
func (l *Loop) Pending() int {
	return l.queue.Len()
}

func (l *Loop) enqueue(typ EventType, name string, fn func()) bool {
	return l.queue.Enqueue(Event{
		Type: typ,
		Seq:  l.seq.Add(1),
		Name: name,
		Fn:   fn,
	})
}

func (l *Loop) isClosed() bool {
	l.queue.mu.Lock()
	defer l.queue.mu.Unlock()
	return l.queue.closed
}

// process runs one event. A panicking task is logged and the loop continues.
func (l *Loop) process(event Event) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("task panicked",
				"type", event.Type.String(),
				"name", event.Name,
				"seq", event.Seq,
				"panic", r,
			)
		}
	}()

	l.logger.Debug("processing event", "type", event.Type.String(), "name", event.Name, "seq", event.Seq)
	event.Fn()
	if l.afterEvent != nil {
		l.afterEvent(event)
	}
}

type loopTimer struct {
	t       *time.Timer
	stopped atomic.Bool
	fired   atomic.Bool
}

// Stop implements Timer.
func (lt *loopTimer) Stop() bool {
	if lt.stopped.Swap(true) {
		return false
	}
	lt.t.Stop()
	return !lt.fired.Load()
}
