// Package scheduler drives engine passes on a tick and whenever the action
// log signals an append.
package scheduler

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/handtracker/internal/actionlog"
	"github.com/lox/handtracker/internal/display"
	"github.com/lox/handtracker/internal/game"
)

// Loop runs engine passes and renders every sink after each one
type Loop struct {
	mu     sync.Mutex
	log    *actionlog.Log
	engine *game.Engine
	sink   display.Sink
	clock  quartz.Clock
	tick   time.Duration
	logger *log.Logger
	passes int
}

// Config configures a Loop
type Config struct {
	Tick   time.Duration
	Clock  quartz.Clock
	Logger *log.Logger
}

// New creates a loop draining l into a fresh engine
func New(l *actionlog.Log, sink display.Sink, cfg Config) *Loop {
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if sink == nil {
		sink = display.Multi()
	}
	return &Loop{
		log:    l,
		engine: game.NewEngine(l, cfg.Logger),
		sink:   sink,
		clock:  cfg.Clock,
		tick:   cfg.Tick,
		logger: cfg.Logger.WithPrefix("scheduler"),
	}
}

// Engine returns the engine driven by the loop
func (lp *Loop) Engine() *game.Engine {
	return lp.engine
}

// Passes returns the number of passes run so far
func (lp *Loop) Passes() int {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.passes
}

// RunOnce runs a single pass and renders it. Passes never overlap.
func (lp *Loop) RunOnce() display.Report {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	pass := lp.engine.Pass()
	r := display.Report{Snapshot: lp.engine.Snapshot(), Pass: pass}
	lp.passes++
	if err := lp.sink.Render(r); err != nil {
		lp.logger.Error("Render failed", "error", err, "offset", r.Snapshot.Offset)
	}
	return r
}

// Run runs a pass immediately, then on every tick and on every append
// notification, until ctx is cancelled.
func (lp *Loop) Run(ctx context.Context) error {
	ticker := lp.clock.NewTicker(lp.tick, "scheduler")
	defer ticker.Stop()

	lp.logger.Debug("Loop started", "tick", lp.tick)
	lp.RunOnce()

	for {
		select {
		case <-ctx.Done():
			lp.logger.Debug("Loop stopped", "passes", lp.Passes())
			return nil
		case <-ticker.C:
			lp.RunOnce()
		case <-lp.log.Notify():
			lp.RunOnce()
		}
	}
}
