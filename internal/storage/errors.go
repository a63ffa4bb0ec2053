package storage

import "errors"

// Kind classifies expected storage failures so callers can pick a response
// without inspecting messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Error is a storage failure tagged with its Kind.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Is matches any *Error of the same kind and message, so wrapped sentinels
// still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == e.Msg
}

var (
	// ErrNotFound indicates a record does not exist.
	ErrNotFound = &Error{Kind: KindNotFound, Msg: "record not found"}
	// ErrEmailExists indicates a user with the same email is already stored.
	ErrEmailExists = &Error{Kind: KindConflict, Msg: "email already exists"}
	// ErrCategoryNotFound indicates an item references a missing category.
	ErrCategoryNotFound = &Error{Kind: KindReference, Msg: "category not found"}
)

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}
