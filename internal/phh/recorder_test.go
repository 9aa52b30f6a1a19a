package phh

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handtracker/internal/actionlog"
	"github.com/lox/handtracker/internal/deck"
	"github.com/lox/handtracker/internal/display"
	"github.com/lox/handtracker/internal/game"
)

type harness struct {
	log      *actionlog.Log
	engine   *game.Engine
	recorder *Recorder
}

func newHarness() *harness {
	l := actionlog.NewLog(nil)
	return &harness{log: l, engine: game.NewEngine(l, nil), recorder: NewRecorder()}
}

func (h *harness) feed(t *testing.T, actions ...actionlog.Action) {
	t.Helper()
	h.log.Append(actions...)
	rep := display.Report{Pass: h.engine.Pass(), Snapshot: h.engine.Snapshot()}
	require.NoError(t, h.recorder.Render(rep))
}

func preflopHand(t *testing.T) *harness {
	h := newHarness()
	h.feed(t,
		actionlog.SeatUpdated{Name: "adevlupec", Seat: 1},
		actionlog.SeatUpdated{Name: "Dette32", Seat: 2},
		actionlog.SeatUpdated{Name: "Drug08", Seat: 3},
		actionlog.SeatUpdated{Name: "FluffyStutt", Seat: 4, NonHuman: true},
		actionlog.HandIDSet{ID: "hand-001"},
		actionlog.MaxSeatsSet{N: 6},
		actionlog.StackUpdated{Name: "adevlupec", Stack: 53368},
		actionlog.StackUpdated{Name: "Dette32", Stack: 10845},
		actionlog.StackUpdated{Name: "Drug08", Stack: 9686},
		actionlog.StackUpdated{Name: "FluffyStutt", Stack: 11326},
		actionlog.NonHumanCardsDealt{Name: "FluffyStutt", Cards: deck.MustParseCards("Kh 7s")},
	)
	h.feed(t,
		actionlog.BetMade{Seat: 4, Amount: 50},
		actionlog.BetMade{Seat: 1, Amount: 100},
		actionlog.BetMade{Seat: 2, Amount: 100},
		actionlog.BetMade{Seat: 3, Amount: 100},
		actionlog.BetMade{Seat: 4, Amount: 0},
		actionlog.BetMade{Seat: 1, Amount: 0},
		actionlog.BetMade{Seat: 7, Amount: 10}, // rejected, never recorded
		actionlog.CommunityCardsDealt{New: deck.MustParseCards("2h 9s 8d")},
	)
	return h
}

func TestRecorderBuildsHandHistory(t *testing.T) {
	h := preflopHand(t)

	hands := h.recorder.Hands()
	require.Len(t, hands, 1)
	hh := hands[0]

	assert.Equal(t, "NT", hh.Variant)
	assert.Equal(t, "hand-001", hh.HandID)
	assert.Equal(t, 6, hh.SeatCount)
	assert.Equal(t, []int{1, 2, 3, 4}, hh.Seats)
	assert.Equal(t, []string{"adevlupec", "Dette32", "Drug08", "FluffyStutt"}, hh.Players)
	assert.Equal(t, []uint64{100, 0, 0, 50}, hh.BlindsOrStraddles)
	assert.Equal(t, uint64(100), hh.MinBet)
	assert.Equal(t, []uint64{53368, 10845, 9686, 11326}, hh.StartingStacks)
	assert.Equal(t, []uint64{53268, 10745, 9586, 11276}, hh.FinishingStacks)
	assert.Equal(t, []string{
		"d dh p1 ????",
		"d dh p2 ????",
		"d dh p3 ????",
		"d dh p4 Kh7s",
		"p2 cc",
		"p3 cc",
		"p4 f",
		"p1 cc",
		"d db 2h9s8d",
	}, hh.Actions)
}

func TestRecorderRaisesUseRoundTotals(t *testing.T) {
	h := newHarness()
	h.feed(t,
		actionlog.SeatUpdated{Name: "A", Seat: 1},
		actionlog.SeatUpdated{Name: "B", Seat: 2},
		actionlog.SeatUpdated{Name: "C", Seat: 3},
		actionlog.HandIDSet{ID: "raise"},
		actionlog.StackUpdated{Name: "A", Stack: 1000},
		actionlog.StackUpdated{Name: "B", Stack: 1000},
		actionlog.StackUpdated{Name: "C", Stack: 50},
		actionlog.BetMade{Seat: 1, Amount: 5},
		actionlog.BetMade{Seat: 2, Amount: 10},
		actionlog.BetMade{Seat: 3, Amount: 30},
		actionlog.BetMade{Seat: 1, Amount: 25},
		actionlog.BetMade{Seat: 2, Amount: 40},
		actionlog.BetMade{Seat: 3, Amount: 20},
	)

	hands := h.recorder.Hands()
	require.Len(t, hands, 1)
	assert.Equal(t, []string{
		"d dh p1 ????",
		"d dh p2 ????",
		"d dh p3 ????",
		"p3 cbr 30",
		"p1 cc",
		"p2 cbr 50",
		"p3 cc",
	}, hands[0].Actions, "a short all-in is a call")
	assert.Equal(t, []uint64{970, 950, 0}, hands[0].FinishingStacks)
}

func TestRecorderSplitsHands(t *testing.T) {
	h := preflopHand(t)
	h.feed(t, actionlog.HandIDSet{ID: "hand-002"})

	hands := h.recorder.Hands()
	require.Len(t, hands, 2)
	assert.Equal(t, "hand-001", hands[0].HandID)
	assert.Equal(t, "hand-002", hands[1].HandID)
	assert.Equal(t, []uint64{53268, 10745, 9586, 11276}, hands[1].StartingStacks)
	assert.Len(t, hands[1].Actions, 4, "only the deals of the new hand")
}

func TestEncodeAllRoundTrips(t *testing.T) {
	h := preflopHand(t)
	h.feed(t, actionlog.HandIDSet{ID: "hand-002"})

	var buf bytes.Buffer
	require.NoError(t, EncodeAll(&buf, h.recorder.Hands()))
	assert.Contains(t, buf.String(), "[1]\n")
	assert.Contains(t, buf.String(), "[2]\n")

	var decoded map[string]HandHistory
	_, err := toml.Decode(buf.String(), &decoded)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, "hand-001", decoded["1"].HandID)
	assert.Equal(t, "d dh p4 Kh7s", decoded["1"].Actions[3])
}

func TestEncodeSingleHand(t *testing.T) {
	h := preflopHand(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, h.recorder.Hands()[0]))
	out := buf.String()
	assert.Contains(t, out, "variant = \"NT\"\n")
	assert.Contains(t, out, "hand = \"hand-001\"\n")
	assert.Contains(t, out, "blinds_or_straddles = [100, 0, 0, 50]\n")
	assert.NotContains(t, out, "[1]")

	assert.Error(t, Encode(&buf, nil))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hands.phh")
	assert.ErrorContains(t, NewRecorder().WriteFile(path), "no hands recorded")

	h := preflopHand(t)
	require.NoError(t, h.recorder.WriteFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "d db 2h9s8d")
}
