package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueue_FIFO(t *testing.T) {
	q := newEventQueue()

	for _, name := range []string{"A", "B", "C"} {
		require.True(t, q.Enqueue(Event{Type: EventTypeTask, Name: name}))
	}
	assert.Equal(t, 3, q.Len())

	for _, want := range []string{"A", "B", "C"} {
		e, ok := q.TryDequeue()
		require.True(t, ok)
		assert.Equal(t, want, e.Name)
	}

	_, ok := q.TryDequeue()
	assert.False(t, ok, "dequeue from empty queue should return false")
}

func TestEventQueue_SignalCoalesces(t *testing.T) {
	q := newEventQueue()
	q.Enqueue(Event{Name: "1"})
	q.Enqueue(Event{Name: "2"})

	select {
	case <-q.Wait():
	default:
		t.Fatal("expected a pending signal")
	}

	select {
	case <-q.Wait():
		t.Fatal("signals should coalesce into one")
	default:
	}
	assert.Equal(t, 2, q.Len())
}

func TestEventQueue_Close(t *testing.T) {
	q := newEventQueue()
	q.Enqueue(Event{Name: "before"})
	q.Close()
	q.Close() // idempotent

	assert.False(t, q.Enqueue(Event{Name: "after"}), "enqueue after close should fail")

	e, ok := q.TryDequeue()
	require.True(t, ok, "events queued before close remain")
	assert.Equal(t, "before", e.Name)

	// The enqueue before Close left one signal buffered.
	_, open := <-q.Wait()
	assert.True(t, open, "buffered signal is delivered first")
	_, open = <-q.Wait()
	assert.False(t, open, "wait channel closes with the queue")
}

func TestEventType_String(t *testing.T) {
	assert.Equal(t, "task", EventTypeTask.String())
	assert.Equal(t, "timer", EventTypeTimer.String())
	assert.Equal(t, "unknown", EventType(99).String())
}
