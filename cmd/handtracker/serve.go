package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/lox/handtracker/internal/actionlog"
	"github.com/lox/handtracker/internal/display"
	"github.com/lox/handtracker/internal/scenario"
	"github.com/lox/handtracker/internal/scheduler"
	"github.com/lox/handtracker/internal/watch"
)

// ServeCmd feeds a scenario and streams every pass to websocket watchers
type ServeCmd struct {
	File    string `arg:"" type:"existingfile" help:"Scenario file"`
	Addr    string `short:"a" help:"Address to listen on (overrides config)"`
	Console bool   `help:"Also print each pass to the console"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Watch.Addr = c.Addr
	}
	logger, closer, err := newLogger(cfg, nil)
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

	hub := watch.NewHub(logger, nil)
	sinks := []display.Sink{hub, display.NewLogSink(logger)}
	if c.Console {
		sinks = append(sinks, display.NewConsole(os.Stdout,
			display.WithColor(cfg.Display.Color),
			display.WithHoleCards(cfg.Display.HoleCards)))
	}

	l := actionlog.NewLog(nil)
	loop := scheduler.New(l, display.Multi(sinks...), scheduler.Config{
		Tick:   cfg.TickInterval(),
		Logger: logger,
	})
	feeder := scenario.NewFeeder(l, s, nil, cfg.TickInterval(), logger)

	logger.Info("Serving scenario", "file", c.File, "addr", cfg.Watch.Addr, "batches", len(s.Batches))

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return hub.Serve(ctx, cfg.Watch.Addr)
	})
	eg.Go(func() error {
		return loop.Run(ctx)
	})
	eg.Go(func() error {
		return ignoreCanceled(feeder.Run(ctx))
	})
	return eg.Wait()
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
