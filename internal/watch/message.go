package watch

import (
	"encoding/json"
	"time"

	"github.com/lox/handtracker/internal/display"
	"github.com/lox/handtracker/internal/game"
)

// MessageType identifies the payload of a Message
type MessageType string

const (
	MessageTypeSnapshot MessageType = "snapshot"
	MessageTypePass     MessageType = "pass"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// PassData summarises one engine pass
type PassData struct {
	From     uint64           `json:"from"`
	To       uint64           `json:"to"`
	Bets     []game.BetResult `json:"bets"`
	Rejected []RejectedData   `json:"rejected"`
}

// RejectedData describes an action that was not applied
type RejectedData struct {
	Offset uint64 `json:"offset"`
	Action string `json:"action"`
	Kind   string `json:"kind"`
	Error  string `json:"error"`
}

// NewMessage creates a new message stamped with at
func NewMessage(messageType MessageType, data any, at time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: at,
	}, nil
}

func newPassData(p game.PassResult) PassData {
	d := PassData{
		From:     p.From,
		To:       p.To,
		Bets:     p.Bets(),
		Rejected: []RejectedData{},
	}
	if d.Bets == nil {
		d.Bets = []game.BetResult{}
	}
	for _, o := range p.Rejected() {
		r := RejectedData{
			Offset: o.Offset,
			Action: o.Action.String(),
			Error:  o.Err.Error(),
		}
		if ge, ok := o.Err.(*game.Error); ok {
			r.Kind = ge.Kind.String()
		}
		d.Rejected = append(d.Rejected, r)
	}
	return d
}

func reportMessages(r display.Report, at time.Time) ([]*Message, error) {
	pass, err := NewMessage(MessageTypePass, newPassData(r.Pass), at)
	if err != nil {
		return nil, err
	}
	snap, err := NewMessage(MessageTypeSnapshot, r.Snapshot, at)
	if err != nil {
		return nil, err
	}
	return []*Message{pass, snap}, nil
}
