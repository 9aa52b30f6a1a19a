// Package game projects the action log onto live hand state.
//
// The main type is Projector, which applies one action at a time to a Table
// (the Game, Board and Player records) and delegates bets to a RoundTracker
// that decides whether the betting round is closed and who acts next.
//
// # Basic Usage
//
// Feed actions through a log and drain them with an Engine:
//
//	l := actionlog.NewLog(quartz.NewReal())
//	e := game.NewEngine(l, logger)
//	l.Append(actionlog.SeatUpdated{Name: "Alice", Seat: 1})
//	res := e.Pass()
//	for _, o := range res.Rejected() {
//	    fmt.Println(o.Err)
//	}
//
// # Outcomes
//
// Every action yields an Outcome. A rejected action carries a *Error whose
// Kind is ReferenceNotFound, InvariantViolation or DuplicateSingleton, and
// leaves the state exactly as it was. Processing continues with the next
// action.
//
// # Round Progression
//
// The round closes when the number of calls/checks since the last raise plus
// the number of all-in and fold actions equals the number of seated players.
// The first two raising bets of a hand are blinds and never reset the call
// count.
package game
