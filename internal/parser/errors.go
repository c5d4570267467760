package parser

import (
	"fmt"

	"github.com/jdpolicano/lox/internal/token"
)

// ErrorKind identifies which parse-error shape occurred.
type ErrorKind int

const (
	TokenAssertionFailure ErrorKind = iota
	UnexpectedToken
	UnexpectedEndOfFile
	InvalidAssignmentTarget
	LikelyLogicalError
)

// Error is a single accumulated parse failure. The parser never stops
// at the first Error: it synchronizes and keeps going, then returns
// every Error it collected.
type Error struct {
	Kind     ErrorKind
	Msg      string
	Expected token.Type
	Found    token.Type
	Lexeme   string
	Coord    token.Coordinate
}

func (e *Error) Error() string {
	switch e.Kind {
	case TokenAssertionFailure:
		return fmt.Sprintf("ParseError: expected token of type %q but got %q, %s %s",
			e.Expected, e.Found, e.Msg, e.Coord)
	case UnexpectedToken:
		return fmt.Sprintf("ParseError: unexpected token %q, %s %s", e.Lexeme, e.Msg, e.Coord)
	case UnexpectedEndOfFile:
		return fmt.Sprintf("ParseError: unexpected end of file %s", e.Msg)
	case InvalidAssignmentTarget:
		return fmt.Sprintf("ParseError: invalid assignment target %q %s", e.Lexeme, e.Coord)
	default:
		return "ParseError: likely logical error in the parser"
	}
}
