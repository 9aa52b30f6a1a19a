package main

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/lox/handtracker/internal/actionlog"
	"github.com/lox/handtracker/internal/display"
	"github.com/lox/handtracker/internal/scenario"
	"github.com/lox/handtracker/internal/scheduler"
)

// WatchCmd feeds a scenario one batch per tick into the live table view
type WatchCmd struct {
	File string `arg:"" type:"existingfile" help:"Scenario file"`
}

func (c *WatchCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	// the TUI owns the terminal, so logs only go to the configured file
	logger, closer, err := newLogger(cfg, io.Discard)
	if err != nil {
		return err
	}
	defer closer.Close()

	s, err := scenario.Load(c.File)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(context.Background(), logger)
	defer cancel()

	tui := display.NewTUI(ctx, cfg.Display.HoleCards)
	l := actionlog.NewLog(nil)
	loop := scheduler.New(l, display.Multi(tui, display.NewLogSink(logger)), scheduler.Config{
		Tick:   cfg.TickInterval(),
		Logger: logger,
	})
	feeder := scenario.NewFeeder(l, s, nil, cfg.TickInterval(), logger)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer cancel()
		return tui.Run()
	})
	eg.Go(func() error {
		return loop.Run(ctx)
	})
	eg.Go(func() error {
		return ignoreCanceled(feeder.Run(ctx))
	})
	return eg.Wait()
}
