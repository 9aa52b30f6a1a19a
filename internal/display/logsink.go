package display

import (
	"io"

	"github.com/charmbracelet/log"
)

// LogSink reports every pass through a structured logger
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a sink logging with the "table" prefix
func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &LogSink{logger: logger.WithPrefix("table")}
}

// Render implements Sink
func (s *LogSink) Render(r Report) error {
	for _, o := range r.Pass.Outcomes {
		if !o.Applied() {
			s.logger.Warn("Action rejected", "offset", o.Offset, "action", o.Action, "error", o.Err)
			continue
		}
		if b := o.Bet; b != nil {
			s.logger.Info("Bet",
				"player", b.Player,
				"seat", b.Seat,
				"amount", b.Amount,
				"class", b.Class,
				"maxBet", b.RoundMaxBet,
				"closed", b.RoundClosed)
		}
	}

	if len(r.Pass.Outcomes) == 0 {
		return nil
	}
	if p, ok := r.Snapshot.DecisionNeeded(); ok {
		s.logger.Info("Decision needed", "player", p.Name, "seat", p.Seat)
	}
	s.logger.Debug("Pass rendered",
		"offset", r.Snapshot.Offset,
		"street", r.Snapshot.Street,
		"players", len(r.Snapshot.Players))
	return nil
}
