package msjson

import (
	"errors"
	"fmt"
)

// Sentinel errors for the closed result set. Errors returned by this package
// wrap one of these and can be classified with errors.Is.
var (
	// ErrInvalidArgument signals caller misuse: nil values, type-mismatched
	// accessors, non-container builder targets.
	ErrInvalidArgument = errors.New("msjson: invalid argument")
	// ErrSyntax signals malformed JSON grammar.
	ErrSyntax = errors.New("msjson: syntax error")
	// ErrMemory signals an allocation failure reported by the allocator.
	ErrMemory = errors.New("msjson: out of memory")
	// ErrUnexpectedEOF signals input that ended mid-structure.
	ErrUnexpectedEOF = errors.New("msjson: unexpected end of input")
	// ErrDepth signals that the configured nesting limit was exceeded.
	ErrDepth = errors.New("msjson: nesting depth exceeded")
)

// ParseError captures where in the input a parse failed.
type ParseError struct {
	// Offset is the byte offset the error was detected at.
	Offset int
	// Err is one of the sentinel errors above.
	Err error

	msg string
}

func (e *ParseError) Error() string {
	if e.msg == "" {
		return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
	}
	return fmt.Sprintf("%v at offset %d: %s", e.Err, e.Offset, e.msg)
}

func (e *ParseError) Unwrap() error { return e.Err }
