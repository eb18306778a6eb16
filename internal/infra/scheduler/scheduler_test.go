package scheduler

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedWatcher struct {
	steps    []func() error
	cycles   int
	reported []error
}

func (w *scriptedWatcher) Cycle(context.Context) error {
	step := w.steps[w.cycles%len(w.steps)]
	w.cycles++
	return step()
}

func (w *scriptedWatcher) Report(_ context.Context, err error) {
	w.reported = append(w.reported, err)
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// newTestPoller stops after maxWaits sleeps and records every requested delay.
func newTestPoller(w Watcher, interval time.Duration, maxWaits int) (*Poller, *[]time.Duration) {
	p := NewPoller(w, interval, testLogger())
	clock := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return clock }

	var waits []time.Duration
	p.wait = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		if len(waits) >= maxWaits {
			return context.Canceled
		}
		return nil
	}
	return p, &waits
}

func TestPoller_SleepsFixedIntervalBetweenCycles(t *testing.T) {
	w := &scriptedWatcher{steps: []func() error{func() error { return nil }}}
	p, waits := newTestPoller(w, 600*time.Second, 3)

	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, 3, w.cycles)
	assert.Equal(t, []time.Duration{600 * time.Second, 600 * time.Second, 600 * time.Second}, *waits)
	assert.Empty(t, w.reported)
}

func TestPoller_ContinuesAfterErrors(t *testing.T) {
	failure := errors.New("fetch: endpoint unreachable")
	w := &scriptedWatcher{steps: []func() error{
		func() error { return failure },
		func() error { return nil },
	}}
	p, waits := newTestPoller(w, time.Minute, 4)

	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, 4, w.cycles)
	assert.Len(t, *waits, 4)
	assert.Equal(t, []error{failure, failure}, w.reported)
}

func TestPoller_RecoversFromPanic(t *testing.T) {
	w := &scriptedWatcher{steps: []func() error{
		func() error { panic("nil map write") },
	}}
	p, _ := newTestPoller(w, time.Minute, 2)

	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, 2, w.cycles)
	require.Len(t, w.reported, 2)
	assert.Contains(t, w.reported[0].Error(), "nil map write")
}

func TestPoller_StopsOnContextCancel(t *testing.T) {
	w := &scriptedWatcher{steps: []func() error{func() error { return nil }}}
	p := NewPoller(w, time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after cancel")
	}
	assert.GreaterOrEqual(t, w.cycles, 1)
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
