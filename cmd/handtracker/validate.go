package main

import (
	"errors"
	"fmt"

	"github.com/lox/handtracker/internal/game"
	"github.com/lox/handtracker/internal/scenario"
)

// ValidateCmd checks a scenario without feeding it anywhere
type ValidateCmd struct {
	Files  []string `arg:"" type:"existingfile" help:"Scenario files"`
	DryRun bool     `help:"Also project every action and report rejections"`
}

func (c *ValidateCmd) Run(g *Globals) error {
	if _, err := g.load(); err != nil {
		return err
	}

	var errs []error
	for _, f := range c.Files {
		s, err := scenario.Load(f)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f, err))
			continue
		}
		if c.DryRun {
			errs = append(errs, dryRun(f, s)...)
		}
		fmt.Printf("%s: %d batches, %d actions\n", f, len(s.Batches), s.Actions())
	}
	return errors.Join(errs...)
}

func dryRun(file string, s *scenario.Scenario) []error {
	var errs []error
	p := game.NewProjector(nil)
	for i, batch := range s.Batches {
		for j, a := range batch {
			if o := p.Apply(a); o.Err != nil {
				errs = append(errs, fmt.Errorf("%s: batch %d action %d: %w", file, i, j, o.Err))
			}
		}
	}
	return errs
}
