package scenario

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/handtracker/internal/actionlog"
)

var errFed = errors.New("all batches fed")

// Feeder appends a scenario to an action log one batch per tick
type Feeder struct {
	mu       sync.Mutex
	log      *actionlog.Log
	batches  [][]actionlog.Action
	next     int
	clock    quartz.Clock
	interval time.Duration
	logger   *log.Logger
}

// NewFeeder creates a feeder for s writing into l
func NewFeeder(l *actionlog.Log, s *Scenario, clock quartz.Clock, interval time.Duration, logger *log.Logger) *Feeder {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Feeder{
		log:      l,
		batches:  s.Batches,
		clock:    clock,
		interval: interval,
		logger:   logger.WithPrefix("feeder"),
	}
}

// Remaining returns the number of batches not yet appended
func (f *Feeder) Remaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches) - f.next
}

// Step appends the next batch and reports whether one was appended
func (f *Feeder) Step() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.next >= len(f.batches) {
		return false
	}
	batch := f.batches[f.next]
	f.next++
	end := f.log.Append(batch...)
	f.logger.Debug("Batch appended", "batch", f.next, "actions", len(batch), "offset", end)
	return true
}

// Run appends the first batch immediately and one more on every tick. It
// returns nil once every batch is in the log, or the context error.
func (f *Feeder) Run(ctx context.Context) error {
	if f.Remaining() == 0 {
		return nil
	}
	tickCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := f.clock.TickerFunc(tickCtx, f.interval, func() error {
		if !f.Step() || f.Remaining() == 0 {
			return errFed
		}
		return nil
	}, "feeder")

	if !f.Step() || f.Remaining() == 0 {
		return nil
	}

	err := w.Wait()
	switch {
	case errors.Is(err, errFed):
		f.logger.Info("Scenario fed", "batches", len(f.batches))
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	}
	return err
}
