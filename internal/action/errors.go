package action

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAction reports a rule whose prefix is not a known action code.
	ErrInvalidAction = errors.New("invalid action")
	// ErrMalformedAction reports a rule whose payload cannot be split or validated.
	ErrMalformedAction = errors.New("malformed action")
)

// Error describes a rule that failed to parse. It unwraps to ErrInvalidAction
// or ErrMalformedAction.
type Error struct {
	Err    error
	Raw    string
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s %q", e.Err, e.Raw)
	}
	return fmt.Sprintf("%s %q: %s", e.Err, e.Raw, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalid(raw, detail string) error {
	return &Error{Err: ErrInvalidAction, Raw: raw, Detail: detail}
}

func malformed(raw, detail string) error {
	return &Error{Err: ErrMalformedAction, Raw: raw, Detail: detail}
}
