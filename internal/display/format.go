package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/handtracker/internal/deck"
	"github.com/lox/handtracker/internal/game"
)

// view formats snapshots and pass results with a palette
type view struct {
	styles    *Styles
	holeCards bool
}

func optString[T any](o game.Opt[T]) string {
	v, ok := o.Get()
	if !ok {
		return "?"
	}
	return fmt.Sprint(v)
}

func (v view) cards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "-"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		if c.IsRed() {
			parts[i] = v.styles.RedCard.Render(c.Pretty())
		} else {
			parts[i] = v.styles.BlackCard.Render(c.Pretty())
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (v view) game(s game.Snapshot) string {
	g := s.Game
	line := fmt.Sprintf("Hand %s • %s %s • %s max • dealer seat %s",
		optString(g.HandID), optString(g.Type), optString(g.Limit),
		optString(g.MaxSeats), optString(g.DealerSeat))
	return v.styles.Header.Render(line)
}

func (v view) board(s game.Snapshot) string {
	return fmt.Sprintf("%s %s",
		v.styles.Section.Render("Board ("+s.Street.String()+"):"),
		v.cards(s.Board.Cards))
}

func (v view) round(s game.Snapshot) string {
	c := s.Counters
	line := fmt.Sprintf("Round: max bet %d • without raise %d • all-in/fold %d • blinds %d",
		s.RoundMaxBet, c.WithoutRaise, c.AllInOrFold, c.Blinds)
	if s.RoundClosed {
		return line + " " + v.styles.Success.Render("[closed]")
	}
	return line
}

func (v view) status(p game.Player) string {
	switch {
	case p.NeedsDecision:
		return v.styles.ToAct.Render("to act")
	case p.InBetting:
		return "in"
	default:
		return v.styles.Inactive.Render("out")
	}
}

func (v view) players(s game.Snapshot) string {
	rows := make([][]string, 0, len(s.Players))
	for _, p := range s.Players {
		seat := strconv.Itoa(p.Seat)
		if p.Dealer {
			seat += " D"
		}
		name := p.Name
		if p.NonHuman {
			name += " (npc)"
		}
		bets := "-"
		if len(p.RoundBets) > 0 {
			parts := make([]string, len(p.RoundBets))
			for i, b := range p.RoundBets {
				parts[i] = strconv.FormatUint(b, 10)
			}
			bets = strings.Join(parts, " + ")
		}
		cards := ""
		if hole, ok := p.HoleCards.Get(); ok && v.holeCards {
			cards = v.cards(hole)
		}
		rows = append(rows, []string{seat, name, optString(p.Stack), bets, cards, v.status(p)})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(v.styles.Border).
		Headers("Seat", "Player", "Stack", "Bets", "Cards", "Status").
		Rows(rows...)
	return t.String()
}

func (v view) bet(b game.BetResult) string {
	var what string
	switch {
	case b.Blind && b.Class == game.AllIn:
		what = fmt.Sprintf("posts blind %d and is all-in", b.Amount)
	case b.Blind:
		what = fmt.Sprintf("posts blind %d", b.Amount)
	case b.Class == game.Raise:
		what = fmt.Sprintf("raises to %d", b.RoundMaxBet)
	case b.Class == game.AllIn:
		what = fmt.Sprintf("is all-in for %d", b.Amount)
	case b.Class == game.Call:
		what = fmt.Sprintf("calls %d", b.Amount)
	case b.Class == game.Check:
		what = "checks"
	default:
		what = "folds"
	}

	line := fmt.Sprintf("%s (seat %d) %s", b.Player, b.Seat, what)
	switch {
	case b.RoundClosed:
		line += " • " + v.styles.Success.Render("round closed")
	case b.DecisionNeeded:
		line += " • " + v.styles.ToAct.Render(fmt.Sprintf("%s to act (decision needed)", b.NextActor))
	case b.NextActor != "":
		line += fmt.Sprintf(" • %s to act", b.NextActor)
	}
	return v.styles.Action.Render(line)
}

func (v view) rejected(o game.Outcome) string {
	return v.styles.Error.Render(fmt.Sprintf("rejected #%d %s: %v", o.Offset, o.Action, o.Err))
}

// pass returns one line per bet and per rejected action, in log order
func (v view) pass(p game.PassResult) []string {
	var lines []string
	for _, o := range p.Outcomes {
		switch {
		case !o.Applied():
			lines = append(lines, v.rejected(o))
		case o.Bet != nil:
			lines = append(lines, v.bet(*o.Bet))
		}
	}
	return lines
}
