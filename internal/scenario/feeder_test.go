package scenario

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handtracker/internal/actionlog"
)

func threeBatches() *Scenario {
	return &Scenario{Batches: [][]actionlog.Action{
		{actionlog.SeatUpdated{Name: "A", Seat: 1}, actionlog.SeatUpdated{Name: "B", Seat: 2}},
		{actionlog.StackUpdated{Name: "A", Stack: 100}},
		{actionlog.BetMade{Seat: 1, Amount: 10}},
	}}
}

func TestFeederStep(t *testing.T) {
	l := actionlog.NewLog(nil)
	f := NewFeeder(l, threeBatches(), nil, time.Second, nil)

	assert.Equal(t, 3, f.Remaining())
	assert.True(t, f.Step())
	assert.Equal(t, uint64(2), l.Len())
	assert.True(t, f.Step())
	assert.True(t, f.Step())
	assert.False(t, f.Step())
	assert.Equal(t, 0, f.Remaining())
	assert.Equal(t, uint64(4), l.Len())
}

func TestFeederRunAppendsOneBatchPerTick(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := quartz.NewMock(t)
	l := actionlog.NewLog(clock)
	f := NewFeeder(l, threeBatches(), clock, time.Second, nil)

	done := make(chan error, 1)
	go func() { done <- f.Run(ctx) }()

	require.Eventually(t, func() bool { return l.Len() == 2 }, time.Second, time.Millisecond,
		"first batch is appended without waiting for a tick")

	clock.Advance(time.Second).MustWait(ctx)
	assert.Equal(t, uint64(3), l.Len())

	clock.Advance(time.Second).MustWait(ctx)
	assert.Equal(t, uint64(4), l.Len())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("feeder did not finish")
	}
}

func TestFeederRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	clock := quartz.NewMock(t)
	l := actionlog.NewLog(clock)
	f := NewFeeder(l, threeBatches(), clock, time.Second, nil)

	done := make(chan error, 1)
	go func() { done <- f.Run(ctx) }()
	require.Eventually(t, func() bool { return l.Len() == 2 }, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("feeder ignored cancellation")
	}
	assert.Equal(t, 2, f.Remaining())
}

func TestFeederRunEmptyScenario(t *testing.T) {
	f := NewFeeder(actionlog.NewLog(nil), &Scenario{}, quartz.NewMock(t), time.Second, nil)
	assert.NoError(t, f.Run(context.Background()))
}
