package game

import "encoding/json"

// Opt is an attribute that may be absent. Absence is meaningful: a player
// with no stack has never had one reported.
type Opt[T any] struct {
	value T
	set   bool
}

// Some returns a present value
func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, set: true}
}

// Get returns the value and whether it is present
func (o Opt[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the value is present
func (o Opt[T]) IsSet() bool {
	return o.set
}

// OrZero returns the value, or the zero value when absent
func (o Opt[T]) OrZero() T {
	return o.value
}

// MarshalJSON encodes an absent value as null
func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as absent
func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Opt[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
