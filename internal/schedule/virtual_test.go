package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVirtual_AdvanceRunsDueTimersInOrder(t *testing.T) {
	v := NewVirtual()
	var order []string

	v.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	v.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	v.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })

	v.Advance(5 * time.Millisecond)
	assert.Empty(t, order)
	assert.Equal(t, 5*time.Millisecond, v.Now())

	v.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, v.Pending())

	v.Advance(time.Hour)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, v.Pending())
}

func TestVirtual_CallbackSeesDeadlineAsNow(t *testing.T) {
	v := NewVirtual()
	var at time.Duration
	v.AfterFunc(300*time.Millisecond, func() { at = v.Now() })

	v.Advance(time.Second)
	assert.Equal(t, 300*time.Millisecond, at)
	assert.Equal(t, time.Second, v.Now())
}

func TestVirtual_Stop(t *testing.T) {
	v := NewVirtual()
	ran := false
	timer := v.AfterFunc(time.Millisecond, func() { ran = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	assert.Equal(t, 0, v.Pending())

	v.Advance(time.Second)
	assert.False(t, ran)
}

func TestVirtual_StopAfterFire(t *testing.T) {
	v := NewVirtual()
	timer := v.AfterFunc(0, func() {})
	v.Advance(0)
	assert.False(t, timer.Stop(), "a fired timer cannot be stopped")
}

func TestVirtual_CallbacksCanReschedule(t *testing.T) {
	v := NewVirtual()
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 3 {
			v.AfterFunc(100*time.Millisecond, tick)
		}
	}
	v.AfterFunc(100*time.Millisecond, tick)

	// Chained timers that fall inside the window run within one Advance.
	v.Advance(250 * time.Millisecond)
	assert.Equal(t, 2, count)

	v.Advance(50 * time.Millisecond)
	assert.Equal(t, 3, count)
}

func TestVirtual_Drain(t *testing.T) {
	v := NewVirtual()
	count := 0
	var tick func()
	tick = func() {
		count++
		v.AfterFunc(time.Second, tick)
	}
	v.AfterFunc(time.Second, tick)

	ran := v.Drain(5)
	assert.Equal(t, 5, ran)
	assert.Equal(t, 5, count)
	assert.Equal(t, 5*time.Second, v.Now())
	require.Equal(t, 1, v.Pending())

	v2 := NewVirtual()
	v2.AfterFunc(time.Minute, func() {})
	assert.Equal(t, 1, v2.Drain(100))
	assert.Equal(t, 0, v2.Drain(100))
}

func TestVirtual_NegativeDelayRunsImmediately(t *testing.T) {
	v := NewVirtual()
	ran := false
	v.AfterFunc(-time.Second, func() { ran = true })
	v.Advance(0)
	assert.True(t, ran)
}

func TestSchedulerImplementations(t *testing.T) {
	var _ Scheduler = (*Loop)(nil)
	var _ Scheduler = (*Virtual)(nil)
}
