// Package scenario loads HCL action scripts. A script is a list of batches;
// each batch is appended to the action log in one go, the way a screen
// reader pushes everything it recognised since its last poll.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/handtracker/internal/actionlog"
	"github.com/lox/handtracker/internal/deck"
	"github.com/lox/handtracker/internal/game"
)

// ErrUnknownAction is returned for an action block with an unrecognised label
var ErrUnknownAction = errors.New("unknown action")

// Scenario is a decoded action script
type Scenario struct {
	Name    string
	Batches [][]actionlog.Action
}

// Actions returns the total number of actions across all batches
func (s *Scenario) Actions() int {
	n := 0
	for _, b := range s.Batches {
		n += len(b)
	}
	return n
}

type file struct {
	Name    string       `hcl:"name,optional"`
	Games   []gameBlock  `hcl:"game,block"`
	Batches []batchBlock `hcl:"batch,block"`
}

type gameBlock struct {
	HandID   string `hcl:"hand_id,optional"`
	Type     string `hcl:"type,optional"`
	Limit    string `hcl:"limit,optional"`
	MaxSeats int    `hcl:"max_seats,optional"`
	Dealer   int    `hcl:"dealer,optional"`
}

type batchBlock struct {
	Actions []actionBlock `hcl:"action,block"`
}

type actionBlock struct {
	Kind string   `hcl:"kind,label"`
	Body hcl.Body `hcl:",remain"`
}

type seatBody struct {
	Name string `hcl:"name"`
	Seat int    `hcl:"seat"`
	NPC  bool   `hcl:"npc,optional"`
}

type stackBody struct {
	Name  string `hcl:"name"`
	Stack uint64 `hcl:"stack"`
}

type handIDBody struct {
	ID string `hcl:"id"`
}

type gameTypeBody struct {
	Type string `hcl:"type"`
}

type limitBody struct {
	Limit string `hcl:"limit"`
}

type maxSeatsBody struct {
	N int `hcl:"n"`
}

type dealerBody struct {
	Seat int `hcl:"seat"`
}

type communityBody struct {
	Prev  []string `hcl:"prev,optional"`
	Cards []string `hcl:"cards"`
}

type npcCardsBody struct {
	Name  string   `hcl:"name"`
	Cards []string `hcl:"cards"`
}

type betBody struct {
	Seat   int    `hcl:"seat"`
	Amount uint64 `hcl:"amount"`
}

// Load reads and decodes a scenario file
func Load(filename string) (*Scenario, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes scenario source. The optional game header expands to
// hand/type/limit/max-seats actions at the start of the first batch and a
// dealer action at its end, once the seats exist.
func Parse(src []byte, filename string) (*Scenario, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	if diags := gohcl.DecodeBody(f.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	if len(raw.Games) > 1 {
		return nil, &game.Error{
			Kind:    game.DuplicateSingleton,
			Ref:     "game",
			Message: fmt.Sprintf("%d game blocks declared, at most one allowed", len(raw.Games)),
		}
	}

	s := &Scenario{Name: raw.Name}
	for i, b := range raw.Batches {
		batch := make([]actionlog.Action, 0, len(b.Actions))
		for j, ab := range b.Actions {
			a, err := decodeAction(ab)
			if err != nil {
				return nil, fmt.Errorf("batch %d action %d: %w", i, j, err)
			}
			batch = append(batch, a)
		}
		s.Batches = append(s.Batches, batch)
	}

	if len(raw.Games) == 1 {
		if err := s.prependHeader(raw.Games[0]); err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
	}
	return s, nil
}

func (s *Scenario) prependHeader(g gameBlock) error {
	var head, tail []actionlog.Action
	if g.HandID != "" {
		head = append(head, actionlog.HandIDSet{ID: g.HandID})
	}
	if g.Type != "" {
		t, err := actionlog.ParseGameType(g.Type)
		if err != nil {
			return err
		}
		head = append(head, actionlog.GameTypeSet{Type: t})
	}
	if g.Limit != "" {
		l, err := actionlog.ParseLimit(g.Limit)
		if err != nil {
			return err
		}
		head = append(head, actionlog.LimitSet{Limit: l})
	}
	if g.MaxSeats != 0 {
		head = append(head, actionlog.MaxSeatsSet{N: g.MaxSeats})
	}
	if g.Dealer != 0 {
		tail = append(tail, actionlog.DealerSeatSet{Seat: g.Dealer})
	}

	if len(s.Batches) == 0 {
		s.Batches = append(s.Batches, nil)
	}
	first := make([]actionlog.Action, 0, len(head)+len(s.Batches[0])+len(tail))
	first = append(first, head...)
	first = append(first, s.Batches[0]...)
	first = append(first, tail...)
	s.Batches[0] = first
	return nil
}

func decodeAction(ab actionBlock) (actionlog.Action, error) {
	decode := func(target any) error {
		if diags := gohcl.DecodeBody(ab.Body, nil, target); diags.HasErrors() {
			return fmt.Errorf("%s: %s", ab.Kind, diags.Error())
		}
		return nil
	}

	switch ab.Kind {
	case "seat":
		var b seatBody
		if err := decode(&b); err != nil {
			return nil, err
		}
		return actionlog.SeatUpdated{Name: b.Name, Seat: b.Seat, NonHuman: b.NPC}, nil

	case "stack":
		var b stackBody
		if err := decode(&b); err != nil {
			return nil, err
		}
		return actionlog.StackUpdated{Name: b.Name, Stack: b.Stack}, nil

	case "hand_id":
		var b handIDBody
		if err := decode(&b); err != nil {
			return nil, err
		}
		return actionlog.HandIDSet{ID: b.ID}, nil

	case "game_type":
		var b gameTypeBody
		if err := decode(&b); err != nil {
			return nil, err
		}
		t, err := actionlog.ParseGameType(b.Type)
		if err != nil {
			return nil, err
		}
		return actionlog.GameTypeSet{Type: t}, nil

	case "limit":
		var b limitBody
		if err := decode(&b); err != nil {
			return nil, err
		}
		l, err := actionlog.ParseLimit(b.Limit)
		if err != nil {
			return nil, err
		}
		return actionlog.LimitSet{Limit: l}, nil

	case "max_seats":
		var b maxSeatsBody
		if err := decode(&b); err != nil {
			return nil, err
		}
		return actionlog.MaxSeatsSet{N: b.N}, nil

	case "dealer":
		var b dealerBody
		if err := decode(&b); err != nil {
			return nil, err
		}
		return actionlog.DealerSeatSet{Seat: b.Seat}, nil

	case "community":
		var b communityBody
		if err := decode(&b); err != nil {
			return nil, err
		}
		prev, err := deck.ParseCards(b.Prev)
		if err != nil {
			return nil, fmt.Errorf("community prev: %w", err)
		}
		cards, err := deck.ParseCards(b.Cards)
		if err != nil {
			return nil, fmt.Errorf("community cards: %w", err)
		}
		return actionlog.CommunityCardsDealt{Prev: prev, New: cards}, nil

	case "npc_cards":
		var b npcCardsBody
		if err := decode(&b); err != nil {
			return nil, err
		}
		cards, err := deck.ParseCards(b.Cards)
		if err != nil {
			return nil, fmt.Errorf("npc_cards %s: %w", b.Name, err)
		}
		return actionlog.NonHumanCardsDealt{Name: b.Name, Cards: cards}, nil

	case "bet":
		var b betBody
		if err := decode(&b); err != nil {
			return nil, err
		}
		return actionlog.BetMade{Seat: b.Seat, Amount: b.Amount}, nil
	}

	return nil, fmt.Errorf("%w %q", ErrUnknownAction, ab.Kind)
}
