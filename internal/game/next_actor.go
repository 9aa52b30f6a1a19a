package game

// nextActor returns the first player after actingSeat, wrapping around the
// table, who is still in the betting. players must be in seat order. Seat
// numbers need not be contiguous: empty seats are simply not in the list.
func nextActor(players []*Player, actingSeat int) *Player {
	n := len(players)
	start := 0
	for i, p := range players {
		if p.Seat > actingSeat {
			start = i
			break
		}
	}

	for i := 0; i < n; i++ {
		p := players[(start+i)%n]
		if p.Seat != actingSeat && p.InBetting {
			return p
		}
	}
	return nil
}

// resolveNextActor finds who acts after a bet. Nobody acts once the round is
// closed; otherwise a non-human next actor is flagged for a decision.
func resolveNextActor(players []*Player, res *BetResult) {
	if res.RoundClosed {
		return
	}
	next := nextActor(players, res.Seat)
	if next == nil {
		return
	}
	res.NextActor = next.Name
	res.NextSeat = next.Seat
	if next.NonHuman {
		next.NeedsDecision = true
		res.DecisionNeeded = true
	}
}
