package game

import (
	"io"
	"slices"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/lox/handtracker/internal/actionlog"
	"github.com/lox/handtracker/internal/deck"
)

const (
	maxBoardCards = 5
	maxHoleCards  = 2
)

// Outcome is the result of applying one action. Err is nil when the action
// was applied; otherwise it is a *Error and nothing changed.
type Outcome struct {
	Offset uint64
	Action actionlog.Action
	Err    error
	Bet    *BetResult // set for applied bets
}

// Applied reports whether the action changed the state
func (o Outcome) Applied() bool {
	return o.Err == nil
}

// Projector applies actions to a Table in log order. It owns the name and
// seat lookups and the round tracker.
type Projector struct {
	table  *Table
	round  RoundTracker
	byName map[string]PlayerID
	bySeat map[int]PlayerID
	logger *log.Logger
}

// NewProjector creates a projector over an empty table
func NewProjector(logger *log.Logger) *Projector {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Projector{
		table:  NewTable(),
		byName: make(map[string]PlayerID),
		bySeat: make(map[int]PlayerID),
		logger: logger.WithPrefix("projector"),
	}
}

// Table returns the projected table
func (p *Projector) Table() *Table {
	return p.table
}

// Round returns the round tracker state
func (p *Projector) Round() *RoundTracker {
	return &p.round
}

// PlayerByName looks a player up by display name
func (p *Projector) PlayerByName(name string) (*Player, bool) {
	id, ok := p.byName[name]
	if !ok {
		return nil, false
	}
	return p.table.Player(id), true
}

// PlayerBySeat looks a player up by seat number
func (p *Projector) PlayerBySeat(seat int) (*Player, bool) {
	id, ok := p.bySeat[seat]
	if !ok {
		return nil, false
	}
	return p.table.Player(id), true
}

// Resolve looks a player up by name, then by seat number string
func (p *Projector) Resolve(ref string) (*Player, bool) {
	if pl, ok := p.PlayerByName(ref); ok {
		return pl, true
	}
	if seat, err := strconv.Atoi(ref); err == nil {
		return p.PlayerBySeat(seat)
	}
	return nil, false
}

// Apply applies a single action
func (p *Projector) Apply(a actionlog.Action) Outcome {
	out := Outcome{Action: a}

	switch a := a.(type) {
	case actionlog.SeatUpdated:
		out.Err = p.seatUpdated(a)
	case actionlog.StackUpdated:
		out.Err = p.stackUpdated(a)
	case actionlog.HandIDSet:
		p.handIDSet(a)
	case actionlog.GameTypeSet:
		p.table.Game.Type = Some(a.Type)
	case actionlog.LimitSet:
		p.table.Game.Limit = Some(a.Limit)
	case actionlog.MaxSeatsSet:
		out.Err = p.maxSeatsSet(a)
	case actionlog.DealerSeatSet:
		out.Err = p.dealerSeatSet(a)
	case actionlog.CommunityCardsDealt:
		out.Err = p.communityCardsDealt(a)
	case actionlog.NonHumanCardsDealt:
		out.Err = p.nonHumanCardsDealt(a)
	case actionlog.BetMade:
		out.Bet, out.Err = p.betMade(a)
	default:
		out.Err = violation("", "", "unsupported action %T", a)
	}

	if out.Err != nil {
		p.logger.Warn("Rejected action", "action", a.String(), "error", out.Err)
		return out
	}
	p.logger.Debug("Applied action", "action", a.String())
	if out.Bet != nil {
		p.logger.Debug("Bet classified",
			"seat", out.Bet.Seat,
			"class", out.Bet.Class,
			"max_bet", out.Bet.RoundMaxBet,
			"processed", out.Bet.Counters.Processed(),
			"closed", out.Bet.RoundClosed,
			"next", out.Bet.NextActor)
	}
	return out
}

func (p *Projector) seatUpdated(a actionlog.SeatUpdated) error {
	kind := a.Kind()
	if a.Name == "" {
		return violation(kind, "", "player name is required")
	}
	if a.Seat < 1 {
		return violation(kind, a.Name, "seat %d is not a valid seat number", a.Seat)
	}
	if limit, ok := p.table.Game.MaxSeats.Get(); ok && a.Seat > limit {
		return violation(kind, a.Name, "seat %d exceeds max seats %d", a.Seat, limit)
	}
	if holder, ok := p.PlayerBySeat(a.Seat); ok && holder.Name != a.Name {
		return violation(kind, a.Name, "seat %d is taken by %s", a.Seat, holder.Name)
	}

	pl, exists := p.PlayerByName(a.Name)
	if exists {
		delete(p.bySeat, pl.Seat)
		pl.Seat = a.Seat
		pl.RoundBets = []uint64{}
		p.returnToBetting(pl)
	} else {
		pl = p.table.addPlayer(a.Name, a.Seat)
		p.byName[a.Name] = pl.ID
	}
	p.bySeat[a.Seat] = pl.ID

	if a.NonHuman {
		pl.NonHuman = true
		if !pl.HoleCards.IsSet() {
			pl.HoleCards = Some([]deck.Card{})
		}
		pl.NeedsDecision = false
	}
	return nil
}

func (p *Projector) stackUpdated(a actionlog.StackUpdated) error {
	pl, ok := p.Resolve(a.Name)
	if !ok {
		return notFound(a.Kind(), a.Name, "no player %q", a.Name)
	}
	pl.Stack = Some(a.Stack)
	p.returnToBetting(pl)
	return nil
}

// returnToBetting puts pl back in the betting. Each player out of the
// betting holds one all-in/fold count, released here.
func (p *Projector) returnToBetting(pl *Player) {
	if !pl.InBetting {
		p.round.Returned()
	}
	pl.InBetting = true
}

func (p *Projector) inactiveCount() int {
	return len(p.table.PlayersWhere(func(pl *Player) bool { return !pl.InBetting }))
}

// handIDSet starts a new hand
func (p *Projector) handIDSet(a actionlog.HandIDSet) {
	p.table.Game.HandID = Some(a.ID)
	p.table.Game.DealerSeat = Opt[int]{}
	p.table.Board.Cards = nil
	p.table.Street = Preflop

	for _, pl := range p.table.players {
		pl.Dealer = false
		pl.RoundBets = []uint64{}
		pl.NeedsDecision = false
		pl.InBetting = pl.Stack.OrZero() > 0
		if pl.HoleCards.IsSet() {
			pl.HoleCards = Some([]deck.Card{})
		}
	}
	p.round.ResetHand(p.inactiveCount())
}

func (p *Projector) maxSeatsSet(a actionlog.MaxSeatsSet) error {
	if a.N < 1 {
		return violation(a.Kind(), "", "max seats must be positive, got %d", a.N)
	}
	for _, pl := range p.table.players {
		if pl.Seat > a.N {
			return violation(a.Kind(), pl.Name, "seat %d exceeds max seats %d", pl.Seat, a.N)
		}
	}
	p.table.Game.MaxSeats = Some(a.N)
	return nil
}

func (p *Projector) dealerSeatSet(a actionlog.DealerSeatSet) error {
	dealer, ok := p.PlayerBySeat(a.Seat)
	if !ok {
		return notFound(a.Kind(), strconv.Itoa(a.Seat), "no player in seat %d", a.Seat)
	}
	for _, pl := range p.table.players {
		pl.Dealer = false
	}
	dealer.Dealer = true
	p.table.Game.DealerSeat = Some(a.Seat)
	return nil
}

func (p *Projector) communityCardsDealt(a actionlog.CommunityCardsDealt) error {
	kind := a.Kind()
	if !slices.Equal(a.Prev, p.table.Board.Cards) {
		return violation(kind, "", "previous cards [%s] do not match board [%s]",
			deck.FormatCards(a.Prev), deck.FormatCards(p.table.Board.Cards))
	}
	if len(a.Prev)+len(a.New) > maxBoardCards {
		return violation(kind, "", "board would hold %d cards", len(a.Prev)+len(a.New))
	}
	for i, c := range a.New {
		if slices.Contains(a.New[:i], c) || p.table.cardInPlay(c, nil) {
			return violation(kind, c.String(), "card is already in play")
		}
	}
	if len(a.New) == 0 {
		return nil
	}
	size := len(a.Prev) + len(a.New)
	if size < 3 {
		return violation(kind, "", "a board of %d cards is not a street", size)
	}

	board := make([]deck.Card, 0, len(a.Prev)+len(a.New))
	board = append(board, a.Prev...)
	board = append(board, a.New...)
	p.table.Board.Cards = board
	if street := streetForBoard(size); street > p.table.Street {
		p.table.Street = street
		p.startStreet()
	}
	return nil
}

// startStreet opens a new betting round after community cards are revealed
func (p *Projector) startStreet() {
	for _, pl := range p.table.players {
		pl.RoundBets = []uint64{}
		pl.NeedsDecision = false
	}
	p.round.ResetStreet(p.inactiveCount())
}

func (p *Projector) nonHumanCardsDealt(a actionlog.NonHumanCardsDealt) error {
	kind := a.Kind()
	pl, ok := p.Resolve(a.Name)
	if !ok {
		return notFound(kind, a.Name, "no player %q", a.Name)
	}
	if len(a.Cards) > maxHoleCards {
		return violation(kind, a.Name, "%d hole cards dealt, at most %d allowed", len(a.Cards), maxHoleCards)
	}
	for i, c := range a.Cards {
		if slices.Contains(a.Cards[:i], c) || p.table.cardInPlay(c, pl) {
			return violation(kind, a.Name, "card %s is already in play", c)
		}
	}

	pl.NonHuman = true
	pl.HoleCards = Some(slices.Clone(a.Cards))
	pl.NeedsDecision = false
	return nil
}

func (p *Projector) betMade(a actionlog.BetMade) (*BetResult, error) {
	kind := a.Kind()
	ref := strconv.Itoa(a.Seat)
	actor, ok := p.PlayerBySeat(a.Seat)
	if !ok {
		return nil, notFound(kind, ref, "no player in seat %d", a.Seat)
	}
	if !actor.InBetting {
		return nil, violation(kind, ref, "%s is no longer in the betting", actor.Name)
	}
	if stack := actor.Stack.OrZero(); a.Amount > stack {
		return nil, violation(kind, ref, "bet %d exceeds %s's stack %d", a.Amount, actor.Name, stack)
	}
	seated := p.table.SeatedCount()
	if p.round.Closed(seated) {
		return nil, violation(kind, ref, "betting round is closed")
	}

	players := p.table.Players()
	res := p.round.ProcessBet(players, actor, a.Amount)
	res.RoundClosed = p.round.Closed(seated)
	resolveNextActor(players, &res)
	return &res, nil
}
