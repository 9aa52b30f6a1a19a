package game

// blindExemptions is how many raising bets per hand are treated as blinds
const blindExemptions = 2

// Classification is how a bet was counted
type Classification int

const (
	Raise Classification = iota
	AllIn
	Call
	Check
	Fold
)

func (c Classification) String() string {
	return [...]string{"raise", "allin", "call", "check", "fold"}[c]
}

// MarshalText encodes the classification by name
func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// RoundCounters are the round-scoped tallies used to detect closure
type RoundCounters struct {
	WithoutRaise uint `json:"without_raise"` // calls and checks since the last raise, the raiser included
	AllInOrFold  uint `json:"allin_or_fold"` // terminal actions this round
	Blinds       uint `json:"blinds"`        // raising bets exempted as blinds this hand, capped at 2
}

// Processed returns the number of actions that count towards closing the round
func (c RoundCounters) Processed() uint {
	return c.WithoutRaise + c.AllInOrFold
}

// BetResult describes how a bet was classified and who acts next
type BetResult struct {
	Seat           int            `json:"seat"`
	Player         string         `json:"player"`
	Amount         uint64         `json:"amount"`
	Class          Classification `json:"class"`
	Blind          bool           `json:"blind"`
	RoundMaxBet    uint64         `json:"round_max_bet"`
	Counters       RoundCounters  `json:"counters"`
	RoundClosed    bool           `json:"round_closed"`
	NextActor      string         `json:"next_actor,omitempty"`
	NextSeat       int            `json:"next_seat,omitempty"`
	DecisionNeeded bool           `json:"decision_needed"`
}

// RoundTracker owns the round max bet and the round counters. Only the
// projector calls it, and only while applying bets, deals and new hands.
type RoundTracker struct {
	maxBet   uint64
	counters RoundCounters
}

// MaxBet returns the highest round total any player has reached this round
func (rt *RoundTracker) MaxBet() uint64 {
	return rt.maxBet
}

// Counters returns a copy of the round counters
func (rt *RoundTracker) Counters() RoundCounters {
	return rt.counters
}

// Closed reports whether every seated player has a counted action this round
func (rt *RoundTracker) Closed(seated int) bool {
	return seated > 0 && rt.counters.Processed() == uint(seated)
}

// ResetHand clears everything, blind exemptions included. Seated players
// who start the hand out of the betting count as already acted.
func (rt *RoundTracker) ResetHand(inactive int) {
	rt.maxBet = 0
	rt.counters = RoundCounters{AllInOrFold: uint(inactive)}
}

// ResetStreet opens a new betting round. Players already out of the betting
// took their terminal action earlier in the hand and stay counted.
func (rt *RoundTracker) ResetStreet(inactive int) {
	rt.maxBet = 0
	rt.counters.WithoutRaise = 0
	rt.counters.AllInOrFold = uint(inactive)
}

// Returned releases the count held by a player coming back into the betting
func (rt *RoundTracker) Returned() {
	if rt.counters.AllInOrFold > 0 {
		rt.counters.AllInOrFold--
	}
}

// ProcessBet applies a validated bet by actor. players must be every seated
// player in seat order. The caller guarantees amount <= actor's stack.
// A bet that empties the stack without topping the max bet is an all-in,
// not a call: the player is out of the betting and counts as all-in/fold.
func (rt *RoundTracker) ProcessBet(players []*Player, actor *Player, amount uint64) BetResult {
	for _, p := range players {
		if p.NeedsDecision {
			p.NeedsDecision = false
		}
	}

	actor.RoundBets = append(actor.RoundBets, amount)
	stack := actor.Stack.OrZero() - amount
	actor.Stack = Some(stack)
	total := actor.RoundTotal()

	res := BetResult{Seat: actor.Seat, Player: actor.Name, Amount: amount}

	switch {
	case total > rt.maxBet && stack == 0:
		res.Class = AllIn
		res.Blind = rt.acceptBlind()
		rt.counters.AllInOrFold++
		rt.maxBet = total
	case total > rt.maxBet:
		res.Class = Raise
		res.Blind = rt.acceptRaise()
		rt.maxBet = total
	case stack == 0:
		// all-in for less than the max bet, or for nothing
		res.Class = AllIn
		rt.counters.AllInOrFold++
	case amount > 0:
		res.Class = Call
		rt.counters.WithoutRaise++
	case total == rt.maxBet:
		res.Class = Check
		rt.counters.WithoutRaise++
	default:
		res.Class = Fold
		rt.counters.AllInOrFold++
	}

	if stack == 0 || res.Class == Fold {
		actor.InBetting = false
	}

	res.RoundMaxBet = rt.maxBet
	res.Counters = rt.counters
	return res
}

// acceptRaise counts a raise. Blinds never restart the call count; any
// later raise restarts it with the raiser as the first caller.
func (rt *RoundTracker) acceptRaise() (blind bool) {
	if rt.acceptBlind() {
		return true
	}
	rt.counters.WithoutRaise = 1
	return false
}

func (rt *RoundTracker) acceptBlind() bool {
	if rt.counters.Blinds < blindExemptions {
		rt.counters.Blinds++
		return true
	}
	return false
}
