package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Console prints the players, game and board sections to a writer after
// every pass that processed at least one action.
type Console struct {
	mu   sync.Mutex
	w    io.Writer
	view view
}

// ConsoleOption configures a Console
type ConsoleOption func(*consoleOptions)

type consoleOptions struct {
	color     bool
	holeCards bool
}

// WithColor enables or disables ANSI styling
func WithColor(on bool) ConsoleOption {
	return func(o *consoleOptions) { o.color = on }
}

// WithHoleCards shows or hides known non-human hole cards
func WithHoleCards(on bool) ConsoleOption {
	return func(o *consoleOptions) { o.holeCards = on }
}

// NewConsole creates a console sink writing to w
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	o := consoleOptions{color: true, holeCards: true}
	for _, opt := range opts {
		opt(&o)
	}
	return &Console{
		w: w,
		view: view{
			styles:    NewStyles(NewRenderer(w, o.color)),
			holeCards: o.holeCards,
		},
	}
}

// Render implements Sink
func (c *Console) Render(r Report) error {
	if len(r.Pass.Outcomes) == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var b strings.Builder
	for _, line := range c.view.pass(r.Pass) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(c.view.game(r.Snapshot))
	b.WriteByte('\n')
	b.WriteString(c.view.board(r.Snapshot))
	b.WriteByte('\n')
	b.WriteString(c.view.players(r.Snapshot))
	b.WriteByte('\n')
	b.WriteString(c.view.round(r.Snapshot))
	b.WriteString("\n\n")

	if _, err := io.WriteString(c.w, b.String()); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	return nil
}
