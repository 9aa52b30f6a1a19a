// Package display renders projected table state after each engine pass.
package display

import (
	"errors"

	"github.com/lox/handtracker/internal/game"
)

// Report is what a sink receives after every pass
type Report struct {
	Snapshot game.Snapshot
	Pass     game.PassResult
}

// Sink renders reports. Render is called from the engine loop and must not
// hold on to the report's slices after returning unless it copies them.
type Sink interface {
	Render(Report) error
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(Report) error

// Render calls f(r)
func (f SinkFunc) Render(r Report) error {
	return f(r)
}

type multi []Sink

// Multi fans a report out to every sink. All sinks are rendered even when
// some fail; the errors are joined.
func Multi(sinks ...Sink) Sink {
	var out multi
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multi) Render(r Report) error {
	var errs []error
	for _, s := range m {
		if err := s.Render(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
