package game

import (
	"slices"

	"github.com/lox/handtracker/internal/deck"
)

// PlayerID is a stable index into the table's player arena
type PlayerID int

// Player represents a seated participant
type Player struct {
	ID        PlayerID         `json:"id"`
	Name      string           `json:"name"`
	Seat      int              `json:"seat"`
	Stack     Opt[uint64]      `json:"stack"`
	NonHuman  bool             `json:"non_human"`
	HoleCards Opt[[]deck.Card] `json:"hole_cards"` // only known for non-human players
	Dealer    bool             `json:"dealer"`
	RoundBets []uint64         `json:"round_bets"` // bets made this betting round, in order
	InBetting bool             `json:"in_betting"` // may still act this round
	// NeedsDecision is set on the non-human player whose turn it is
	NeedsDecision bool `json:"needs_decision"`
}

// RoundTotal returns the sum of this round's bets
func (p *Player) RoundTotal() uint64 {
	var total uint64
	for _, b := range p.RoundBets {
		total += b
	}
	return total
}

// clone returns a deep copy safe to hand to other goroutines
func (p *Player) clone() Player {
	c := *p
	c.RoundBets = slices.Clone(p.RoundBets)
	if cards, ok := p.HoleCards.Get(); ok {
		c.HoleCards = Some(slices.Clone(cards))
	}
	return c
}
