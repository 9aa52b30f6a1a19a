package game

import (
	"sort"

	"github.com/lox/handtracker/internal/actionlog"
	"github.com/lox/handtracker/internal/deck"
)

// Game holds the hand-level attributes. Every field may be absent.
type Game struct {
	HandID     Opt[string]             `json:"hand_id"`
	Type       Opt[actionlog.GameType] `json:"type"`
	Limit      Opt[actionlog.Limit]    `json:"limit"`
	MaxSeats   Opt[int]                `json:"max_seats"`
	DealerSeat Opt[int]                `json:"dealer_seat"`
}

// Board holds the revealed community cards in deal order
type Board struct {
	Cards []deck.Card `json:"cards"`
}

// Table is the typed store behind the projector: exactly one Game, one Board
// and an arena of players addressed by PlayerID.
type Table struct {
	Game    Game
	Board   Board
	Street  Street
	players []*Player
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{}
}

// Player returns the player with the given id, or nil
func (t *Table) Player(id PlayerID) *Player {
	if id < 0 || int(id) >= len(t.players) {
		return nil
	}
	return t.players[id]
}

// Players returns every seated player ordered by seat number
func (t *Table) Players() []*Player {
	out := make([]*Player, len(t.players))
	copy(out, t.players)
	sort.Slice(out, func(i, j int) bool { return out[i].Seat < out[j].Seat })
	return out
}

// PlayersWhere returns seated players matching pred, in seat order
func (t *Table) PlayersWhere(pred func(*Player) bool) []*Player {
	var out []*Player
	for _, p := range t.Players() {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// SeatedCount returns the number of seated players
func (t *Table) SeatedCount() int {
	return len(t.players)
}

// Dealer returns the player holding the dealer flag, or nil
func (t *Table) Dealer() *Player {
	for _, p := range t.players {
		if p.Dealer {
			return p
		}
	}
	return nil
}

func (t *Table) addPlayer(name string, seat int) *Player {
	p := &Player{
		ID:        PlayerID(len(t.players)),
		Name:      name,
		Seat:      seat,
		RoundBets: []uint64{},
		InBetting: true,
	}
	t.players = append(t.players, p)
	return p
}

// cardInPlay reports whether c is on the board or in a known hand other than skip's
func (t *Table) cardInPlay(c deck.Card, skip *Player) bool {
	for _, b := range t.Board.Cards {
		if b == c {
			return true
		}
	}
	for _, p := range t.players {
		if p == skip {
			continue
		}
		cards, _ := p.HoleCards.Get()
		for _, h := range cards {
			if h == c {
				return true
			}
		}
	}
	return false
}
