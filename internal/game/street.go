package game

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

func (s Street) String() string {
	if s < Preflop || s > River {
		return "unknown"
	}
	return [...]string{"preflop", "flop", "turn", "river"}[s]
}

// MarshalText encodes the street by name
func (s Street) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// streetForBoard maps the number of revealed community cards to a street
func streetForBoard(cards int) Street {
	switch {
	case cards >= 5:
		return River
	case cards == 4:
		return Turn
	case cards >= 3:
		return Flop
	default:
		return Preflop
	}
}
