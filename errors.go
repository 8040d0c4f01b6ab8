package toml

import (
	"strings"
)

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	// GenericError is any lexical or structural anomaly.
	GenericError ErrorKind = iota
	// UnexpectedTokenError means the scanned token does not fit the grammar
	// at that point. Actual and Expected of ParseError are set.
	UnexpectedTokenError
	// NumberRangeError means a well-formed number does not fit its Go
	// type. Err of ParseError holds the conversion failure.
	NumberRangeError
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedTokenError:
		return "unexpected token"
	case NumberRangeError:
		return "number range"
	default:
		return "generic"
	}
}

const numberOutOfBounds = "Number out of bounds"

// ParseError describes errors raised in parsing phase.
type ParseError struct {
	Kind ErrorKind
	Msg  string
	Pos  Position // invalid if the error is not tied to a scan point

	Actual   string
	Expected string

	Err error
}

// UnexpectedToken returns an error for token actual found at pos where
// expected was required.
func UnexpectedToken(pos Position, actual, expected string) *ParseError {
	return &ParseError{
		Kind:     UnexpectedTokenError,
		Msg:      "Unexpected token: Got " + actual + ", expected " + expected,
		Pos:      pos,
		Actual:   actual,
		Expected: expected,
	}
}

// Generic returns an error with message msg at pos. Pass the zero Position
// for errors without location.
func Generic(pos Position, msg string) *ParseError {
	return &ParseError{Kind: GenericError, Msg: msg, Pos: pos}
}

// OutOfBounds returns an error for a number literal at pos whose value
// does not fit its type. cause is kept as the wrapped error.
func OutOfBounds(pos Position, cause error) *ParseError {
	return &ParseError{Kind: NumberRangeError, Msg: numberOutOfBounds, Pos: pos, Err: cause}
}

// Render formats e for display: the message followed, when the position
// is known, by a new line and " at line L, column C".
func Render(e *ParseError) string {
	if e == nil {
		return "N/A"
	}
	msg := e.Msg
	if msg == "" {
		msg = "N/A"
	}
	if !e.Pos.IsValid() {
		return msg
	}
	var b strings.Builder
	b.Grow(len(msg) + 32)
	b.WriteString(msg)
	b.WriteByte('\n')
	b.WriteString(" at ")
	b.WriteString(e.Pos.String())
	return b.String()
}

func (e *ParseError) Error() string {
	return Render(e)
}

// OriginalMessage returns the message without position.
func (e *ParseError) OriginalMessage() string {
	return e.Msg
}

// Position returns where the error was detected, and false if unknown.
func (e *ParseError) Position() (Position, bool) {
	return e.Pos, e.Pos.IsValid()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
