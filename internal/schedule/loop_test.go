package schedule

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startLoop runs l in the background and stops it at cleanup.
func startLoop(t *testing.T, l *Loop) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-errCh
	})
}

func TestLoop_CallRunsInOrder(t *testing.T) {
	l := NewLoop()
	startLoop(t, l)

	var order []int
	for i := 1; i <= 3; i++ {
		n := i
		require.True(t, l.Post("append", func() { order = append(order, n) }))
	}

	var got []int
	require.NoError(t, l.Call(context.Background(), "read", func() {
		got = append([]int(nil), order...)
	}))
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestLoop_TasksNeverOverlap(t *testing.T) {
	l := NewLoop()
	startLoop(t, l)

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Call(context.Background(), "inc", func() { counter++ })
		}()
	}
	wg.Wait()

	var got int
	require.NoError(t, l.Call(context.Background(), "read", func() { got = counter }))
	assert.Equal(t, 50, got)
}

func TestLoop_AfterFuncRunsOnLoop(t *testing.T) {
	var mu sync.Mutex
	var seen []Event
	l := NewLoop(WithAfterEvent(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, e)
	}))
	startLoop(t, l)

	fired := make(chan struct{})
	l.AfterFunc(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer callback did not run")
	}

	// The hook runs after the callback; sync through the loop to observe it.
	require.NoError(t, l.Call(context.Background(), "sync", func() {}))
	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	assert.Equal(t, EventTypeTimer, seen[0].Type)
}

func TestLoop_EventsStampedInOrder(t *testing.T) {
	var seqs []int64
	l := NewLoop(WithAfterEvent(func(e Event) {
		seqs = append(seqs, e.Seq)
	}))
	startLoop(t, l)

	for i := 0; i < 5; i++ {
		require.True(t, l.Post("task", func() {}))
	}
	// Hooks run on the loop; read their record from a later task.
	require.NoError(t, l.Call(context.Background(), "sync", func() {}))
	var got []int64
	require.NoError(t, l.Call(context.Background(), "read", func() {
		got = append(got, seqs...)
	}))

	require.Len(t, got, 6)
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i], got[i-1], "seq %d", i)
	}
}

func TestLoop_StoppedTimerDoesNotRun(t *testing.T) {
	l := NewLoop()
	startLoop(t, l)

	ran := false
	timer := l.AfterFunc(20*time.Millisecond, func() { ran = true })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "second stop reports nothing to stop")

	time.Sleep(40 * time.Millisecond)
	var got bool
	require.NoError(t, l.Call(context.Background(), "read", func() { got = ran }))
	assert.False(t, got)
}

func TestLoop_StopAfterQueuedTimerDropsIt(t *testing.T) {
	l := NewLoop()
	ran := false
	timer := l.AfterFunc(0, func() { ran = true })

	// Let the timer enqueue its event before the loop runs.
	require.Eventually(t, func() bool { return l.Pending() == 1 }, time.Second, time.Millisecond)
	assert.True(t, timer.Stop())

	startLoop(t, l)
	require.NoError(t, l.Call(context.Background(), "read", func() {}))
	assert.False(t, ran)
}

func TestLoop_PanicIsLoggedAndLoopContinues(t *testing.T) {
	var logs syncBuffer
	l := NewLoop(WithLoopLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	startLoop(t, l)

	l.Post("boom", func() { panic("boom") })
	var ok bool
	require.NoError(t, l.Call(context.Background(), "after", func() { ok = true }))
	assert.True(t, ok)
	assert.Contains(t, logs.String(), "task panicked")
}

func TestLoop_StopDrainsQueue(t *testing.T) {
	l := NewLoop()
	count := 0
	for i := 0; i < 3; i++ {
		l.Post("inc", func() { count++ })
	}
	l.Stop()

	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, 3, count)

	assert.False(t, l.Post("late", func() {}))
	assert.ErrorIs(t, l.Call(context.Background(), "late", func() {}), ErrLoopClosed)
}

func TestLoop_CallHonoursContext(t *testing.T) {
	l := NewLoop() // never run
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := l.Call(ctx, "stuck", func() {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	l.Stop()
}

func TestLoop_RunReturnsContextError(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.Run(ctx), context.Canceled)
}

// syncBuffer is a bytes.Buffer safe for the loop goroutine to write while
// the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
