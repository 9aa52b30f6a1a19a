package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/handtracker/internal/actionlog"
)

// mustApply applies actions and fails the test on the first rejection
func mustApply(t *testing.T, p *Projector, actions ...actionlog.Action) []Outcome {
	t.Helper()
	outcomes := make([]Outcome, 0, len(actions))
	for _, a := range actions {
		o := p.Apply(a)
		require.NoError(t, o.Err, "action %s", a)
		outcomes = append(outcomes, o)
	}
	return outcomes
}

// bet applies a bet that must be accepted and returns its result
func bet(t *testing.T, p *Projector, seat int, amount uint64) BetResult {
	t.Helper()
	o := mustApply(t, p, actionlog.BetMade{Seat: seat, Amount: amount})[0]
	require.NotNil(t, o.Bet)
	return *o.Bet
}

// newTable seats players in seats 1..n with the given stacks and starts a hand
func newTable(t *testing.T, names []string, stacks []uint64, npc map[string]bool) *Projector {
	t.Helper()
	p := NewProjector(nil)
	for i, name := range names {
		mustApply(t, p, actionlog.SeatUpdated{Name: name, Seat: i + 1, NonHuman: npc[name]})
	}
	mustApply(t, p, actionlog.HandIDSet{ID: "test-hand"})
	for i, name := range names {
		mustApply(t, p, actionlog.StackUpdated{Name: name, Stack: stacks[i]})
	}
	return p
}

func uniformStacks(n int, stack uint64) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = stack
	}
	return out
}
