package phh

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Encode writes one hand in PHH TOML format
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeAll writes hands as a PHHS file: one table per hand, numbered from 1
func EncodeAll(w io.Writer, hands []*HandHistory) error {
	for i, h := range hands {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%d]\n", i+1); err != nil {
			return err
		}
		if err := Encode(w, h); err != nil {
			return fmt.Errorf("phh: hand %d: %w", i+1, err)
		}
	}
	return nil
}

// EncodeToBytes encodes every hand and returns the result
func EncodeToBytes(hands []*HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if len(hands) == 1 {
		err = Encode(&buf, hands[0])
	} else {
		err = EncodeAll(&buf, hands)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func player(index int) string {
	return "p" + strconv.Itoa(index+1)
}
