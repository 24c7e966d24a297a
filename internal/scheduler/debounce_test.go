package scheduler

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = time.Second
	tick    = 2 * time.Millisecond
	settle  = 20 * time.Millisecond
)

func TestBurstFiresOnceAfterQuietPeriod(t *testing.T) {
	mock := clock.NewMock()
	start := mock.Now()

	var (
		mu      sync.Mutex
		state   time.Duration
		calls   int32
		firedAt time.Duration
		seen    time.Duration
	)

	d := New(300*time.Millisecond, mock, func() {
		mu.Lock()
		defer mu.Unlock()
		atomic.AddInt32(&calls, 1)
		firedAt = mock.Now().Sub(start)
		seen = state
	})

	edit := func(at time.Duration) {
		mock.Set(start.Add(at))
		mu.Lock()
		state = at
		mu.Unlock()
		d.Notify()
	}

	edit(0)
	edit(50 * time.Millisecond)
	edit(100 * time.Millisecond)
	edit(120 * time.Millisecond)
	require.True(t, d.Pending())

	mock.Add(299 * time.Millisecond)
	time.Sleep(settle)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "fired before the quiet period elapsed")

	mock.Add(time.Millisecond)
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, waitFor, tick)

	mu.Lock()
	assert.Equal(t, 420*time.Millisecond, firedAt)
	assert.Equal(t, 120*time.Millisecond, seen, "callback must see the state of the last edit")
	mu.Unlock()
	assert.False(t, d.Pending())

	mock.Add(5 * time.Second)
	time.Sleep(settle)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSeparateBurstsFireSeparately(t *testing.T) {
	mock := clock.NewMock()
	var calls int32
	d := New(300*time.Millisecond, mock, func() { atomic.AddInt32(&calls, 1) })

	d.Notify()
	mock.Add(300 * time.Millisecond)
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, waitFor, tick)

	d.Notify()
	mock.Add(100 * time.Millisecond)
	d.Notify()
	mock.Add(300 * time.Millisecond)
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 2 }, waitFor, tick)
}

func TestStopCancelsPending(t *testing.T) {
	mock := clock.NewMock()
	var calls int32
	d := New(300*time.Millisecond, mock, func() { atomic.AddInt32(&calls, 1) })

	d.Notify()
	d.Stop()
	assert.False(t, d.Pending())

	mock.Add(time.Second)
	time.Sleep(settle)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestStaleGenerationIgnored(t *testing.T) {
	var calls int32
	d := New(time.Hour, clock.NewMock(), func() { atomic.AddInt32(&calls, 1) })

	d.Notify()
	d.Notify()

	// An expiry from the superseded timer must not fire
	d.fire(1)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.True(t, d.Pending())

	d.fire(2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.False(t, d.Pending())
}

func TestWallClockBurst(t *testing.T) {
	var calls int32
	d := New(30*time.Millisecond, nil, func() { atomic.AddInt32(&calls, 1) })

	for i := 0; i < 5; i++ {
		d.Notify()
		time.Sleep(2 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, waitFor, tick)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestNewDefaults(t *testing.T) {
	d := New(0, nil, func() {})
	assert.Equal(t, DefaultQuiet, d.Quiet())
	assert.False(t, d.Pending())
}
