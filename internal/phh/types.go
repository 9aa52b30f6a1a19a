// Package phh records projected hands in the Poker Hand History format.
package phh

// HandHistory represents a single poker hand encoded in PHH format
type HandHistory struct {
	Variant           string   `toml:"variant"`
	SeatCount         int      `toml:"seat_count,omitempty"`
	Seats             []int    `toml:"seats,omitempty"`
	Antes             []uint64 `toml:"antes"`
	BlindsOrStraddles []uint64 `toml:"blinds_or_straddles"`
	MinBet            uint64   `toml:"min_bet"`
	StartingStacks    []uint64 `toml:"starting_stacks"`
	FinishingStacks   []uint64 `toml:"finishing_stacks,omitempty"`
	Actions           []string `toml:"actions"`
	Players           []string `toml:"players,omitempty"`
	HandID            string   `toml:"hand,omitempty"`
}
