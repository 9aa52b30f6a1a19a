package main

import (
	"fmt"
	"os"

	"github.com/lox/handtracker/internal/actionlog"
	"github.com/lox/handtracker/internal/display"
	"github.com/lox/handtracker/internal/fileutil"
	"github.com/lox/handtracker/internal/phh"
	"github.com/lox/handtracker/internal/scenario"
	"github.com/lox/handtracker/internal/scheduler"
)

// ReplayCmd runs a scenario to completion without waiting for ticks
type ReplayCmd struct {
	File     string `arg:"" type:"existingfile" help:"Scenario file"`
	Quiet    bool   `short:"q" help:"Only print the final table"`
	Strict   bool   `help:"Exit with an error if any action is rejected"`
	PHH      string `name:"phh" type:"path" help:"Write the recorded hands to this PHH file"`
	Snapshot string `type:"path" help:"Write the final snapshot as JSON to this file"`
}

func (c *ReplayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
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
	logger.Info("Replaying scenario", "file", c.File, "batches", len(s.Batches), "actions", s.Actions())

	console := display.NewConsole(os.Stdout,
		display.WithColor(cfg.Display.Color),
		display.WithHoleCards(cfg.Display.HoleCards))
	recorder := phh.NewRecorder()
	sinks := []display.Sink{display.NewLogSink(logger), recorder}
	if !c.Quiet {
		sinks = append(sinks, console)
	}

	l := actionlog.NewLog(nil)
	loop := scheduler.New(l, display.Multi(sinks...), scheduler.Config{Logger: logger})
	feeder := scenario.NewFeeder(l, s, nil, cfg.TickInterval(), logger)

	rejected := 0
	var last display.Report
	for feeder.Step() {
		last = loop.RunOnce()
		rejected += len(last.Pass.Rejected())
	}

	if c.Quiet {
		// the final report carries only the last batch's outcomes
		if err := console.Render(last); err != nil {
			return err
		}
	}

	if c.PHH != "" {
		if err := recorder.WriteFile(c.PHH); err != nil {
			return fmt.Errorf("write hand history: %w", err)
		}
		logger.Info("Hand history written", "file", c.PHH, "hands", len(recorder.Hands()))
	}
	if c.Snapshot != "" {
		if err := fileutil.WriteJSONAtomic(c.Snapshot, loop.Engine().Snapshot()); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}

	logger.Info("Replay complete", "passes", loop.Passes(), "rejected", rejected)
	if c.Strict && rejected > 0 {
		return fmt.Errorf("%d actions rejected", rejected)
	}
	return nil
}
