// Package apperr defines the structured error kinds surfaced by the
// engine's core packages, per the result-type discipline described in
// the round resolver's design notes: every fallible operation returns
// a typed error instead of mixing panics, strings, and bare errors.
package apperr

import (
	"errors"
	"fmt"
)

// Kind discriminates the category of a core error.
type Kind string

const (
	InvalidConfig      Kind = "invalid_config"
	GameAlreadyExists  Kind = "game_already_exists"
	GameNotFound       Kind = "game_not_found"
	InvalidGridFormat  Kind = "invalid_grid_format"
	ParseError         Kind = "parse_error"
	ValidationError    Kind = "validation_error"
	PhaseError         Kind = "phase_error"
	Bug                Kind = "bug"
)

// Error is the concrete error type returned by every fallible core
// operation. Context carries structured detail (coordinates, unit
// counts, offending tokens) so a host can render a human-readable
// message without re-parsing the error string.
type Error struct {
	Kind    Kind
	Message string
	Context map[string]any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is allows errors.Is(err, apperr.New(apperr.Bug, "")) style
// comparisons: a target *Error matches when its Kind equals e's Kind;
// Message, Context and cause are not compared.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an *Error of the given kind with no context.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf constructs an *Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithContext returns a copy of e with the given context merged in.
func (e *Error) WithContext(kv ...any) *Error {
	ctx := make(map[string]any, len(e.Context)+len(kv)/2)
	for k, v := range e.Context {
		ctx[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		ctx[key] = kv[i+1]
	}
	return &Error{Kind: e.Kind, Message: e.Message, Context: ctx, cause: e.cause}
}

// Wrap attaches a cause to an existing *Error for error-chain inspection.
func (e *Error) Wrap(cause error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Context: e.Context, cause: cause}
}

// Bugf panics with an *Error of Kind Bug. The resolver calls this when
// it detects a violation of an invariant that the validator was
// supposed to have already enforced — by design this is not a
// recoverable error, since it indicates the engine itself is wrong,
// not the input.
func Bugf(format string, args ...any) {
	panic(Newf(Bug, format, args...))
}

// KindOf extracts the Kind of err if it is (or wraps) an *apperr.Error,
// reporting ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
