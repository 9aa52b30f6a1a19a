package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handtracker/internal/actionlog"
	"github.com/lox/handtracker/internal/deck"
	"github.com/lox/handtracker/internal/game"
)

func TestLoadPreflopScenario(t *testing.T) {
	s, err := Load("testdata/preflop.hcl")
	require.NoError(t, err)

	assert.Equal(t, "four handed preflop", s.Name)
	require.Len(t, s.Batches, 4)
	assert.Equal(t, 9+5+4+3, s.Actions())

	first := s.Batches[0]
	assert.Equal(t, actionlog.HandIDSet{ID: "hand-001"}, first[0])
	assert.Equal(t, actionlog.GameTypeSet{Type: actionlog.NoLimitHoldem}, first[1])
	assert.Equal(t, actionlog.LimitSet{Limit: actionlog.Limit100}, first[2])
	assert.Equal(t, actionlog.MaxSeatsSet{N: 6}, first[3])
	assert.Equal(t, actionlog.SeatUpdated{Name: "FluffyStutt", Seat: 4, NonHuman: true}, first[7])
	assert.Equal(t, actionlog.DealerSeatSet{Seat: 3}, first[len(first)-1], "dealer is set once seats exist")

	assert.Equal(t, actionlog.NonHumanCardsDealt{
		Name:  "FluffyStutt",
		Cards: deck.MustParseCards("Kh 7s"),
	}, s.Batches[1][4])
	assert.Equal(t, actionlog.BetMade{Seat: 4, Amount: 50}, s.Batches[2][0])
	assert.Equal(t, actionlog.CommunityCardsDealt{
		Prev: []deck.Card{},
		New:  deck.MustParseCards("2h 9s 8d"),
	}, s.Batches[3][2])
}

func TestScenarioProjectsCleanly(t *testing.T) {
	s, err := Load("testdata/preflop.hcl")
	require.NoError(t, err)

	p := game.NewProjector(nil)
	for _, batch := range s.Batches {
		for _, a := range batch {
			o := p.Apply(a)
			require.NoError(t, o.Err, "action %s", a)
		}
	}

	snap := p.Snapshot()
	assert.Equal(t, game.Flop, snap.Street)
	assert.Equal(t, game.Some(3), snap.Game.DealerSeat)
	assert.Equal(t, game.RoundCounters{AllInOrFold: 1, Blinds: 2}, snap.Counters)
}

func TestExampleHandReachesRiver(t *testing.T) {
	s, err := Load("../../examples/scenarios/full_hand.hcl")
	require.NoError(t, err)

	p := game.NewProjector(nil)
	var closed int
	for _, batch := range s.Batches {
		for _, a := range batch {
			o := p.Apply(a)
			require.NoError(t, o.Err, "action %s", a)
			if o.Bet != nil && o.Bet.RoundClosed {
				closed++
			}
		}
	}

	snap := p.Snapshot()
	assert.Equal(t, game.River, snap.Street)
	assert.Equal(t, 4, closed, "one closed round per street")

	seat1, ok := p.PlayerBySeat(1)
	require.True(t, ok)
	assert.False(t, seat1.InBetting, "folded on the turn")
	assert.Equal(t, game.Some(uint64(53368-100-200)), seat1.Stack)
}

func TestParseAllActionKinds(t *testing.T) {
	src := `
batch {
  action "hand_id" {
    id = "h2"
  }
  action "game_type" {
    type = "NLHE"
  }
  action "limit" {
    limit = "100"
  }
  action "max_seats" {
    n = 9
  }
  action "dealer" {
    seat = 2
  }
  action "community" {
    prev  = ["2h", "7s", "8d"]
    cards = ["Qc"]
  }
}
`
	s, err := Parse([]byte(src), "kinds.hcl")
	require.NoError(t, err)
	require.Len(t, s.Batches, 1)
	assert.Equal(t, []actionlog.Action{
		actionlog.HandIDSet{ID: "h2"},
		actionlog.GameTypeSet{Type: actionlog.NoLimitHoldem},
		actionlog.LimitSet{Limit: actionlog.Limit100},
		actionlog.MaxSeatsSet{N: 9},
		actionlog.DealerSeatSet{Seat: 2},
		actionlog.CommunityCardsDealt{
			Prev: deck.MustParseCards("2h 7s 8d"),
			New:  deck.MustParseCards("Qc"),
		},
	}, s.Batches[0])
}

func TestHeaderWithoutBatches(t *testing.T) {
	s, err := Parse([]byte("game {\n  hand_id = \"solo\"\n}\n"), "header.hcl")
	require.NoError(t, err)
	require.Len(t, s.Batches, 1)
	assert.Equal(t, []actionlog.Action{actionlog.HandIDSet{ID: "solo"}}, s.Batches[0])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		errIs    error
		contains string
	}{
		{
			name:  "two game blocks",
			src:   "game {}\ngame {}\n",
			errIs: game.ErrDuplicateSingleton,
		},
		{
			name:  "unknown action",
			src:   "batch {\n  action \"shuffle\" {}\n}\n",
			errIs: ErrUnknownAction,
		},
		{
			name:     "missing attribute",
			src:      "batch {\n  action \"bet\" {\n    seat = 1\n  }\n}\n",
			contains: "batch 0 action 0: bet",
		},
		{
			name:     "bad card",
			src:      "batch {\n  action \"community\" {\n    cards = [\"Zz\"]\n  }\n}\n",
			contains: "community cards: card 0",
		},
		{
			name:     "bad game type",
			src:      "game {\n  type = \"PLO\"\n}\n",
			contains: "unknown game type",
		},
		{
			name:     "syntax",
			src:      "batch {",
			contains: "failed to parse HCL file",
		},
		{
			name:     "unexpected top-level attribute",
			src:      "speed = 3\n",
			contains: "failed to decode HCL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), tt.name+".hcl")
			require.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
			if tt.contains != "" {
				assert.ErrorContains(t, err, tt.contains)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.hcl")
	assert.ErrorContains(t, err, "read scenario")
}
