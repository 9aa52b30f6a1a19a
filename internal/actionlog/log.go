package actionlog

import (
	"sync"
	"time"

	"github.com/coder/quartz"
)

// Entry is an action together with its position in the log
type Entry struct {
	Offset uint64
	At     time.Time
	Action Action
}

// Log is an ordered, append-only sequence of actions. One goroutine may
// append while another drains through a Cursor.
type Log struct {
	mu      sync.RWMutex
	clock   quartz.Clock
	entries []Entry
	notify  chan struct{}
}

// NewLog creates an empty log stamping entries with the given clock
func NewLog(clock quartz.Clock) *Log {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Log{
		clock:  clock,
		notify: make(chan struct{}, 1),
	}
}

// Append adds actions in order and returns the log length afterwards
func (l *Log) Append(actions ...Action) uint64 {
	l.mu.Lock()
	now := l.clock.Now()
	for _, a := range actions {
		l.entries = append(l.entries, Entry{
			Offset: uint64(len(l.entries)),
			At:     now,
			Action: a,
		})
	}
	n := uint64(len(l.entries))
	l.mu.Unlock()

	if len(actions) > 0 {
		select {
		case l.notify <- struct{}{}:
		default:
		}
	}
	return n
}

// Len returns the number of entries ever appended
func (l *Log) Len() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return uint64(len(l.entries))
}

// Since returns a copy of every entry at or after offset
func (l *Log) Since(offset uint64) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if offset >= uint64(len(l.entries)) {
		return nil
	}
	out := make([]Entry, uint64(len(l.entries))-offset)
	copy(out, l.entries[offset:])
	return out
}

// Notify is signalled after every non-empty append. Signals coalesce.
func (l *Log) Notify() <-chan struct{} {
	return l.notify
}

// NewCursor returns a cursor positioned before the first entry
func (l *Log) NewCursor() *Cursor {
	return &Cursor{log: l}
}

// Cursor tracks the last processed offset of a Log. Offset only moves forward.
type Cursor struct {
	log    *Log
	offset uint64
}

// Offset returns the number of entries already drained
func (c *Cursor) Offset() uint64 {
	return c.offset
}

// Pending returns how many entries are waiting to be drained
func (c *Cursor) Pending() uint64 {
	return c.log.Len() - c.offset
}

// Drain returns every entry appended since the previous drain and advances
// the cursor past them.
func (c *Cursor) Drain() []Entry {
	entries := c.log.Since(c.offset)
	c.offset += uint64(len(entries))
	return entries
}
