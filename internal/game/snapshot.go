package game

import "slices"

// Snapshot is a read-only copy of the table for display sinks
type Snapshot struct {
	Offset      uint64        `json:"offset"`
	Game        Game          `json:"game"`
	Board       Board         `json:"board"`
	Street      Street        `json:"street"`
	RoundMaxBet uint64        `json:"round_max_bet"`
	Counters    RoundCounters `json:"counters"`
	RoundClosed bool          `json:"round_closed"`
	Players     []Player      `json:"players"`
}

// Snapshot copies the projected state. Players are in seat order.
func (p *Projector) Snapshot() Snapshot {
	t := p.table
	s := Snapshot{
		Game:        t.Game,
		Board:       Board{Cards: slices.Clone(t.Board.Cards)},
		Street:      t.Street,
		RoundMaxBet: p.round.MaxBet(),
		Counters:    p.round.Counters(),
		RoundClosed: p.round.Closed(t.SeatedCount()),
	}
	for _, pl := range t.Players() {
		s.Players = append(s.Players, pl.clone())
	}
	return s
}

// DecisionNeeded returns the player flagged to act, if any
func (s Snapshot) DecisionNeeded() (Player, bool) {
	for _, p := range s.Players {
		if p.NeedsDecision {
			return p, true
		}
	}
	return Player{}, false
}
