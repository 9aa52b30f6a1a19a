package game

import (
	"encoding/json"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handtracker/internal/actionlog"
	"github.com/lox/handtracker/internal/deck"
)

func TestEnginePassesDrainOnlyNewActions(t *testing.T) {
	l := actionlog.NewLog(quartz.NewMock(t))
	e := NewEngine(l, nil)

	l.Append(
		actionlog.SeatUpdated{Name: "Alice", Seat: 1},
		actionlog.SeatUpdated{Name: "Bob", Seat: 2},
	)
	first := e.Pass()
	assert.Equal(t, uint64(0), first.From)
	assert.Equal(t, uint64(2), first.To)
	assert.Len(t, first.Outcomes, 2)

	empty := e.Pass()
	assert.Empty(t, empty.Outcomes)
	assert.Equal(t, uint64(2), empty.From)

	l.Append(actionlog.StackUpdated{Name: "Alice", Stack: 100})
	second := e.Pass()
	require.Len(t, second.Outcomes, 1)
	assert.Equal(t, uint64(2), second.Outcomes[0].Offset)
	assert.Equal(t, 2, e.Projector().Table().SeatedCount(), "seats are not replayed")
}

func TestEngineContinuesPastRejectedAction(t *testing.T) {
	l := actionlog.NewLog(nil)
	e := NewEngine(l, nil)

	l.Append(
		actionlog.SeatUpdated{Name: "Alice", Seat: 1},
		actionlog.DealerSeatSet{Seat: 9},
		actionlog.StackUpdated{Name: "Ghost", Stack: 1},
		actionlog.StackUpdated{Name: "Alice", Stack: 250},
		actionlog.DealerSeatSet{Seat: 1},
	)
	res := e.Pass()

	rejected := res.Rejected()
	require.Len(t, rejected, 2)
	assert.Equal(t, uint64(1), rejected[0].Offset)
	assert.ErrorIs(t, rejected[0].Err, ErrReferenceNotFound)
	assert.Equal(t, uint64(2), rejected[1].Offset)

	snap := e.Snapshot()
	assert.Equal(t, uint64(5), snap.Offset)
	assert.Equal(t, Some(1), snap.Game.DealerSeat)
	require.Len(t, snap.Players, 1)
	assert.Equal(t, Some(uint64(250)), snap.Players[0].Stack)
	assert.True(t, snap.Players[0].Dealer)
}

func TestPassResultBets(t *testing.T) {
	l := actionlog.NewLog(nil)
	e := NewEngine(l, nil)
	l.Append(
		actionlog.SeatUpdated{Name: "A", Seat: 1},
		actionlog.SeatUpdated{Name: "B", Seat: 2, NonHuman: true},
		actionlog.StackUpdated{Name: "A", Stack: 100},
		actionlog.StackUpdated{Name: "B", Stack: 100},
		actionlog.BetMade{Seat: 1, Amount: 5},
		actionlog.BetMade{Seat: 3, Amount: 5},
	)
	res := e.Pass()

	bets := res.Bets()
	require.Len(t, bets, 1)
	assert.Equal(t, "B", bets[0].NextActor)
	assert.True(t, bets[0].DecisionNeeded)

	p, ok := e.Snapshot().DecisionNeeded()
	require.True(t, ok)
	assert.Equal(t, "B", p.Name)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	p := newTable(t, []string{"A", "B"}, []uint64{100, 100}, map[string]bool{"B": true})
	mustApply(t, p,
		actionlog.NonHumanCardsDealt{Name: "B", Cards: deck.MustParseCards("As Kd")},
		actionlog.CommunityCardsDealt{New: deck.MustParseCards("2c 3c 4c")},
	)
	bet(t, p, 1, 10)

	snap := p.Snapshot()
	snap.Players[0].RoundBets[0] = 99
	snap.Board.Cards[0] = deck.NewCard(deck.Hearts, deck.Ace)
	cards, _ := snap.Players[1].HoleCards.Get()
	cards[0] = deck.NewCard(deck.Clubs, deck.Two)

	a, _ := p.PlayerByName("A")
	assert.Equal(t, []uint64{10}, a.RoundBets)
	assert.Equal(t, deck.MustParseCards("2c 3c 4c"), p.Table().Board.Cards)
	b, _ := p.PlayerByName("B")
	assert.Equal(t, Some(deck.MustParseCards("As Kd")), b.HoleCards)
}

func TestSnapshotJSON(t *testing.T) {
	p := newTable(t, []string{"A"}, []uint64{100}, nil)
	data, err := json.Marshal(p.Snapshot())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "preflop", decoded["street"])
	game := decoded["game"].(map[string]any)
	assert.Equal(t, "test-hand", game["hand_id"])
	assert.Nil(t, game["dealer_seat"])
	players := decoded["players"].([]any)
	require.Len(t, players, 1)
	assert.EqualValues(t, 100, players[0].(map[string]any)["stack"])
}
