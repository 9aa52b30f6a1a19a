package game

import (
	"fmt"

	"github.com/lox/handtracker/internal/actionlog"
)

// ErrorKind classifies why an action was rejected
type ErrorKind int

const (
	// ReferenceNotFound means the action names a player or seat that does not exist.
	ReferenceNotFound ErrorKind = iota + 1
	// InvariantViolation means applying the action would break a table invariant.
	InvariantViolation
	// DuplicateSingleton means a second Game, Board or round max bet was declared.
	DuplicateSingleton
)

func (k ErrorKind) String() string {
	switch k {
	case ReferenceNotFound:
		return "reference_not_found"
	case InvariantViolation:
		return "invariant_violation"
	case DuplicateSingleton:
		return "duplicate_singleton"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrReferenceNotFound  = &Error{Kind: ReferenceNotFound}
	ErrInvariantViolation = &Error{Kind: InvariantViolation}
	ErrDuplicateSingleton = &Error{Kind: DuplicateSingleton}
)

// Error is a rejected action with its context
type Error struct {
	Kind    ErrorKind
	Action  actionlog.Kind // action being applied, empty outside the projector
	Ref     string         // offending name or seat
	Message string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	switch {
	case e.Action != "" && e.Ref != "":
		return fmt.Sprintf("%s %s: %s", e.Action, e.Ref, msg)
	case e.Action != "":
		return fmt.Sprintf("%s: %s", e.Action, msg)
	default:
		return msg
	}
}

// Is reports whether target is an *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func notFound(action actionlog.Kind, ref string, format string, args ...any) *Error {
	return &Error{Kind: ReferenceNotFound, Action: action, Ref: ref, Message: fmt.Sprintf(format, args...)}
}

func violation(action actionlog.Kind, ref string, format string, args ...any) *Error {
	return &Error{Kind: InvariantViolation, Action: action, Ref: ref, Message: fmt.Sprintf(format, args...)}
}
