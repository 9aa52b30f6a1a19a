// Package actionlog holds the ordered, append-only log of poker-hand actions
// and the cursor used to consume it without replaying old entries.
package actionlog

import (
	"fmt"
	"strings"

	"github.com/lox/handtracker/internal/deck"
)

// Kind identifies an action variant with type safety
type Kind string

// Kind constants for every action accepted by the log
const (
	KindSeatUpdated         Kind = "seat_updated"
	KindStackUpdated        Kind = "stack_updated"
	KindHandIDSet           Kind = "hand_id_set"
	KindGameTypeSet         Kind = "game_type_set"
	KindLimitSet            Kind = "limit_set"
	KindMaxSeatsSet         Kind = "max_seats_set"
	KindDealerSeatSet       Kind = "dealer_seat_set"
	KindCommunityCardsDealt Kind = "community_cards_dealt"
	KindNonHumanCardsDealt  Kind = "non_human_cards_dealt"
	KindBetMade             Kind = "bet_made"
)

// String returns the string representation of the kind
func (k Kind) String() string {
	return string(k)
}

// Action is a single domain fact in the log. The set of implementations is
// closed to this package.
type Action interface {
	Kind() Kind
	String() string
	isAction()
}

// GameType is the poker variant being played
type GameType int

const (
	NoLimitHoldem GameType = iota
)

func (g GameType) String() string {
	switch g {
	case NoLimitHoldem:
		return "NL"
	default:
		return fmt.Sprintf("GameType(%d)", int(g))
	}
}

// ParseGameType parses the short game type notation ("NL")
func ParseGameType(s string) (GameType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NL", "NLHE":
		return NoLimitHoldem, nil
	}
	return 0, fmt.Errorf("unknown game type %q", s)
}

// Limit is the table stake level
type Limit int

const (
	Limit100 Limit = iota
)

func (l Limit) String() string {
	switch l {
	case Limit100:
		return "L100"
	default:
		return fmt.Sprintf("Limit(%d)", int(l))
	}
}

// ParseLimit parses a limit level ("L100" or "100")
func ParseLimit(s string) (Limit, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L100", "100":
		return Limit100, nil
	}
	return 0, fmt.Errorf("unknown limit %q", s)
}

// SeatUpdated seats a player
type SeatUpdated struct {
	Name     string
	Seat     int
	NonHuman bool
}

func (SeatUpdated) Kind() Kind { return KindSeatUpdated }
func (a SeatUpdated) String() string {
	if a.NonHuman {
		return fmt.Sprintf("seat %d: %s (npc)", a.Seat, a.Name)
	}
	return fmt.Sprintf("seat %d: %s", a.Seat, a.Name)
}
func (SeatUpdated) isAction() {}

// StackUpdated replaces a player's chip count
type StackUpdated struct {
	Name  string
	Stack uint64
}

func (StackUpdated) Kind() Kind       { return KindStackUpdated }
func (a StackUpdated) String() string { return fmt.Sprintf("stack %s: %d", a.Name, a.Stack) }
func (StackUpdated) isAction()        {}

// HandIDSet starts a new hand
type HandIDSet struct {
	ID string
}

func (HandIDSet) Kind() Kind       { return KindHandIDSet }
func (a HandIDSet) String() string { return "hand " + a.ID }
func (HandIDSet) isAction()        {}

// GameTypeSet records the variant being played
type GameTypeSet struct {
	Type GameType
}

func (GameTypeSet) Kind() Kind       { return KindGameTypeSet }
func (a GameTypeSet) String() string { return "game type " + a.Type.String() }
func (GameTypeSet) isAction()        {}

// LimitSet records the stake level
type LimitSet struct {
	Limit Limit
}

func (LimitSet) Kind() Kind       { return KindLimitSet }
func (a LimitSet) String() string { return "limit " + a.Limit.String() }
func (LimitSet) isAction()        {}

// MaxSeatsSet records the table size
type MaxSeatsSet struct {
	N int
}

func (MaxSeatsSet) Kind() Kind       { return KindMaxSeatsSet }
func (a MaxSeatsSet) String() string { return fmt.Sprintf("max seats %d", a.N) }
func (MaxSeatsSet) isAction()        {}

// DealerSeatSet moves the dealer button
type DealerSeatSet struct {
	Seat int
}

func (DealerSeatSet) Kind() Kind       { return KindDealerSeatSet }
func (a DealerSeatSet) String() string { return fmt.Sprintf("dealer seat %d", a.Seat) }
func (DealerSeatSet) isAction()        {}

// CommunityCardsDealt reveals board cards. Prev must be the board as it was
// before this deal.
type CommunityCardsDealt struct {
	Prev []deck.Card
	New  []deck.Card
}

func (CommunityCardsDealt) Kind() Kind { return KindCommunityCardsDealt }
func (a CommunityCardsDealt) String() string {
	return fmt.Sprintf("board [%s] + [%s]", deck.FormatCards(a.Prev), deck.FormatCards(a.New))
}
func (CommunityCardsDealt) isAction() {}

// NonHumanCardsDealt reveals the hole cards of a non-human player
type NonHumanCardsDealt struct {
	Name  string
	Cards []deck.Card
}

func (NonHumanCardsDealt) Kind() Kind { return KindNonHumanCardsDealt }
func (a NonHumanCardsDealt) String() string {
	return fmt.Sprintf("hole cards %s: [%s]", a.Name, deck.FormatCards(a.Cards))
}
func (NonHumanCardsDealt) isAction() {}

// BetMade records chips put in by the player in a seat. An amount of zero is a
// check or a fold depending on the round's max bet.
type BetMade struct {
	Seat   int
	Amount uint64
}

func (BetMade) Kind() Kind       { return KindBetMade }
func (a BetMade) String() string { return fmt.Sprintf("bet seat %d: %d", a.Seat, a.Amount) }
func (BetMade) isAction()        {}
