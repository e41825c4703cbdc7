package services

import (
	"errors"
	"fmt"
)

// Kind classifies a failure of a pool operation.
type Kind string

const (
	KindInvalidArgument    Kind = "InvalidArgument"
	KindNotFound           Kind = "NotFound"
	KindForbidden          Kind = "Forbidden"
	KindInvalidState       Kind = "InvalidState"
	KindConflict           Kind = "Conflict"
	KindCapacityExceeded   Kind = "CapacityExceeded"
	KindPreconditionFailed Kind = "PreconditionFailed"
	KindInternal           Kind = "Internal"
)

// Error is a structured error from the pool engine. HTTP is the status the
// request surface reports for it.
type Error struct {
	Kind    Kind   `json:"code"`
	HTTP    int    `json:"-"`
	Message string `json:"error"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Message)
}

// Is matches errors of the same kind and message, so wrapped copies still compare.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func invalidArgument(msg string) *Error {
	return &Error{Kind: KindInvalidArgument, HTTP: 400, Message: msg}
}

// KindOf returns the kind of err, or KindInternal for anything unstructured.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// internal wraps a storage failure.
func internal(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

var (
	ErrInvalidCell = &Error{Kind: KindInvalidArgument, HTTP: 400, Message: "Invalid row or column"}

	ErrGameNotFound = &Error{Kind: KindNotFound, HTTP: 404, Message: "Game not found"}
	ErrUserNotFound = &Error{Kind: KindNotFound, HTTP: 404, Message: "User not found"}
	ErrNoAccount    = &Error{Kind: KindNotFound, HTTP: 404, Message: "No account found for this phone number in this game"}

	ErrNotAdmin       = &Error{Kind: KindForbidden, HTTP: 403, Message: "Only the game admin can do that"}
	ErrNotSquareOwner = &Error{Kind: KindForbidden, HTTP: 400, Message: "You can only deselect your own squares"}

	ErrGameNotPending  = &Error{Kind: KindInvalidState, HTTP: 400, Message: "Game has started - no more selections"}
	ErrGameNotStarted  = &Error{Kind: KindInvalidState, HTTP: 400, Message: "Game must be started to mark winners"}
	ErrCannotComplete  = &Error{Kind: KindInvalidState, HTTP: 400, Message: "Only a started game can be completed"}
	ErrJoinClosed      = &Error{Kind: KindInvalidState, HTTP: 400, Message: "Game has started - joining is closed"}
	ErrInvalidAssignee = &Error{Kind: KindInvalidArgument, HTTP: 400, Message: "Invalid user to assign"}

	ErrSquareTaken   = &Error{Kind: KindConflict, HTTP: 400, Message: "Square already taken"}
	ErrPhoneTaken    = &Error{Kind: KindConflict, HTTP: 409, Message: "This phone number already joined the game; log in instead"}
	ErrPoolExhausted = &Error{Kind: KindCapacityExceeded, HTTP: 400, Message: "No more squares available"}
	ErrPicksMismatch = &Error{Kind: KindPreconditionFailed, HTTP: 400, Message: "Selected squares must match the number you are buying"}
	ErrTooManyToBuy  = &Error{Kind: KindCapacityExceeded, HTTP: 400, Message: "Not enough squares available"}
)
