package phh

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lox/handtracker/internal/actionlog"
	"github.com/lox/handtracker/internal/deck"
	"github.com/lox/handtracker/internal/display"
	"github.com/lox/handtracker/internal/fileutil"
	"github.com/lox/handtracker/internal/game"
)

const variantNoLimitHoldem = "NT"

type eventKind int

const (
	eventHoleCards eventKind = iota
	eventBoard
	eventBet
)

type event struct {
	kind   eventKind
	name   string
	cards  []deck.Card
	action string // "f", "cc" or "cbr N"
}

type hand struct {
	id       string
	variant  string
	seatCnt  int
	starting map[string]uint64
	blinds   map[string]uint64
	events   []event
}

func newHand(id string) *hand {
	return &hand{
		id:       id,
		variant:  variantNoLimitHoldem,
		starting: make(map[string]uint64),
		blinds:   make(map[string]uint64),
	}
}

// Recorder is a display sink that rebuilds hand histories from applied
// actions. Rejected actions are ignored.
type Recorder struct {
	mu       sync.Mutex
	seats    map[string]int
	stacks   map[string]uint64
	round    map[string]uint64
	roundMax uint64
	current  *hand
	done     []*HandHistory
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{
		seats:   make(map[string]int),
		stacks:  make(map[string]uint64),
		round:   make(map[string]uint64),
		current: newHand(""),
	}
}

// Render implements display.Sink
func (r *Recorder) Render(rep display.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range rep.Pass.Outcomes {
		if o.Applied() {
			r.observe(o)
		}
	}
	return nil
}

func (r *Recorder) observe(o game.Outcome) {
	h := r.current
	switch a := o.Action.(type) {
	case actionlog.HandIDSet:
		if len(h.events) > 0 || h.id != "" {
			r.done = append(r.done, r.finish(h))
		}
		r.current = newHand(a.ID)
		r.resetRound()

	case actionlog.SeatUpdated:
		r.seats[a.Name] = a.Seat

	case actionlog.StackUpdated:
		r.stacks[a.Name] = a.Stack

	case actionlog.GameTypeSet:
		if a.Type == actionlog.NoLimitHoldem {
			h.variant = variantNoLimitHoldem
		}

	case actionlog.MaxSeatsSet:
		h.seatCnt = a.N

	case actionlog.NonHumanCardsDealt:
		h.events = append(h.events, event{kind: eventHoleCards, name: a.Name, cards: a.Cards})

	case actionlog.CommunityCardsDealt:
		h.events = append(h.events, event{kind: eventBoard, cards: a.New})
		r.resetRound()

	case actionlog.BetMade:
		if o.Bet != nil {
			r.bet(h, *o.Bet)
		}
	}
}

func (r *Recorder) bet(h *hand, b game.BetResult) {
	if _, ok := h.starting[b.Player]; !ok {
		h.starting[b.Player] = r.stacks[b.Player]
	}
	r.stacks[b.Player] -= b.Amount
	r.round[b.Player] += b.Amount
	raised := b.RoundMaxBet > r.roundMax
	r.roundMax = b.RoundMaxBet

	if b.Blind {
		h.blinds[b.Player] = b.Amount
		return
	}

	var action string
	switch {
	case b.Class == game.Fold:
		action = "f"
	case raised:
		action = fmt.Sprintf("cbr %d", r.round[b.Player])
	default:
		action = "cc"
	}
	h.events = append(h.events, event{kind: eventBet, name: b.Player, action: action})
}

func (r *Recorder) resetRound() {
	r.round = make(map[string]uint64)
	r.roundMax = 0
}

// finish converts h using the players seated now, in seat order
func (r *Recorder) finish(h *hand) *HandHistory {
	names := make([]string, 0, len(r.seats))
	for name := range r.seats {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return r.seats[names[i]] < r.seats[names[j]] })
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}

	hh := &HandHistory{
		Variant:           h.variant,
		SeatCount:         h.seatCnt,
		Antes:             make([]uint64, len(names)),
		BlindsOrStraddles: make([]uint64, len(names)),
		StartingStacks:    make([]uint64, len(names)),
		FinishingStacks:   make([]uint64, len(names)),
		Actions:           []string{},
		Players:           names,
		HandID:            h.id,
	}

	hole := make(map[string][]deck.Card)
	for _, e := range h.events {
		if e.kind == eventHoleCards {
			hole[e.name] = e.cards
		}
	}

	for i, n := range names {
		hh.Seats = append(hh.Seats, r.seats[n])
		start, ok := h.starting[n]
		if !ok {
			start = r.stacks[n]
		}
		hh.StartingStacks[i] = start
		hh.FinishingStacks[i] = r.stacks[n]
		hh.BlindsOrStraddles[i] = h.blinds[n]
		if h.blinds[n] > hh.MinBet {
			hh.MinBet = h.blinds[n]
		}

		cards := "????"
		if c, ok := hole[n]; ok && len(c) > 0 {
			cards = joinCards(c)
		}
		hh.Actions = append(hh.Actions, fmt.Sprintf("d dh %s %s", player(i), cards))
	}

	for _, e := range h.events {
		switch e.kind {
		case eventBoard:
			hh.Actions = append(hh.Actions, "d db "+joinCards(e.cards))
		case eventBet:
			hh.Actions = append(hh.Actions, player(index[e.name])+" "+e.action)
		}
	}
	return hh
}

// Hands returns every completed hand followed by the one in progress
func (r *Recorder) Hands() []*HandHistory {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := append([]*HandHistory(nil), r.done...)
	if len(r.current.events) > 0 || r.current.id != "" {
		out = append(out, r.finish(r.current))
	}
	return out
}

// WriteFile atomically writes every recorded hand to filename
func (r *Recorder) WriteFile(filename string) error {
	hands := r.Hands()
	if len(hands) == 0 {
		return fmt.Errorf("phh: no hands recorded")
	}
	data, err := EncodeToBytes(hands)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(filename, data, 0o644)
}

func joinCards(cards []deck.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}

var _ display.Sink = (*Recorder)(nil)
