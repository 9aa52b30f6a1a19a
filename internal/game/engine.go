package game

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/handtracker/internal/actionlog"
)

// Engine drains an action log through a Projector one pass at a time
type Engine struct {
	projector *Projector
	cursor    *actionlog.Cursor
	logger    *log.Logger
}

// NewEngine creates an engine reading l from its first entry
func NewEngine(l *actionlog.Log, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		projector: NewProjector(logger),
		cursor:    l.NewCursor(),
		logger:    logger.WithPrefix("engine"),
	}
}

// Projector returns the underlying projector
func (e *Engine) Projector() *Projector {
	return e.projector
}

// PassResult contains the outcomes of one processing pass
type PassResult struct {
	From     uint64 // first offset processed
	To       uint64 // cursor offset after the pass
	Outcomes []Outcome
}

// Rejected returns the outcomes of actions that were not applied
func (r PassResult) Rejected() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.Applied() {
			out = append(out, o)
		}
	}
	return out
}

// Bets returns the results of every applied bet in the pass
func (r PassResult) Bets() []BetResult {
	var out []BetResult
	for _, o := range r.Outcomes {
		if o.Bet != nil {
			out = append(out, *o.Bet)
		}
	}
	return out
}

// Pass applies every action appended since the previous pass, in order. A
// rejected action does not stop the pass.
func (e *Engine) Pass() PassResult {
	res := PassResult{From: e.cursor.Offset()}
	entries := e.cursor.Drain()
	res.Outcomes = make([]Outcome, 0, len(entries))

	for _, entry := range entries {
		o := e.projector.Apply(entry.Action)
		o.Offset = entry.Offset
		res.Outcomes = append(res.Outcomes, o)
	}
	res.To = e.cursor.Offset()

	if len(entries) > 0 {
		e.logger.Debug("Pass complete",
			"from", res.From,
			"to", res.To,
			"rejected", len(res.Rejected()))
	}
	return res
}

// Snapshot returns a deep copy of the current state
func (e *Engine) Snapshot() Snapshot {
	s := e.projector.Snapshot()
	s.Offset = e.cursor.Offset()
	return s
}
