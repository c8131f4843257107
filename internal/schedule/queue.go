package schedule

import "sync"

// EventType distinguishes between event kinds.
type EventType int

const (
	// EventTypeTask is work posted directly with Post or Call.
	EventTypeTask EventType = iota + 1
	// EventTypeTimer is a timer callback whose delay has elapsed.
	EventTypeTimer
)

// String returns the event type name used in logs.
func (t EventType) String() string {
	switch t {
	case EventTypeTask:
		return "task"
	case EventTypeTimer:
		return "timer"
	default:
		return "unknown"
	}
}

// Event is a unit of work on the loop.
type Event struct {
	Type EventType
	Seq  int64
	Name string
	Fn   func()
}

// eventQueue is a thread-safe unbounded FIFO queue for events.
//
// Tasks are posted from UI goroutines and timer goroutines while the Loop's
// Run goroutine dequeues. The signal channel enables context-aware waiting
// in Run.
type eventQueue struct {
	mu     sync.Mutex
	events []Event
	closed bool
	signal chan struct{} // Signals event availability (buffered, size 1)
}

// newEventQueue creates an empty event queue.
func newEventQueue() *eventQueue {
	return &eventQueue{
		events: make([]Event, 0, 16),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue adds an event to the back of the queue.
// Returns false if the queue is closed.
func (q *eventQueue) Enqueue(e Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	q.events = append(q.events, e)

	// Non-blocking: the buffer of 1 coalesces multiple signals.
	select {
	case q.signal <- struct{}{}:
	default:
	}

	return true
}

// TryDequeue removes and returns the front event without blocking.
// Returns (Event{}, false) if the queue is empty.
func (q *eventQueue) TryDequeue() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return Event{}, false
	}

	e := q.events[0]

	// Nil out the slot so the closure can be collected.
	q.events[0] = Event{}

	if len(q.events) == 1 {
		q.events = q.events[:0]
	} else {
		q.events = q.events[1:]
	}

	return e, true
}

// Wait returns a channel that signals when events may be available.
// The channel is closed when the queue is closed.
func (q *eventQueue) Wait() <-chan struct{} {
	return q.signal
}

// Len returns the current queue length.
func (q *eventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Close signals that no more events will be enqueued.
// Events already queued can still be dequeued.
func (q *eventQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	close(q.signal)
}
