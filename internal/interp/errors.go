package interp

import (
	"fmt"

	"github.com/jdpolicano/lox/internal/token"
)

// ErrorKind identifies which runtime-error shape occurred. Evaluation
// halts at the first RuntimeError, preserving whatever side effects
// (prints, variable writes) already happened.
type ErrorKind int

const (
	InvalidMathOp ErrorKind = iota
	InvalidComparisonOp
	InvalidUnaryOp
	InvalidLogicalOp
	UndefinedVariable
	Uncallable
	Native
)

// RuntimeError is a single evaluation failure, coordinate-tagged so
// the CLI can render it with the same "@(line:column)" convention the
// scanner and parser use.
type RuntimeError struct {
	Kind  ErrorKind
	Msg   string
	Name  string
	Coord token.Coordinate
}

func (e *RuntimeError) Error() string {
	switch e.Kind {
	case InvalidMathOp:
		return fmt.Sprintf("RuntimeError: invalid operand(s) for arithmetic operator %q %s", e.Msg, e.Coord)
	case InvalidComparisonOp:
		return fmt.Sprintf("RuntimeError: invalid operand(s) for comparison operator %q %s", e.Msg, e.Coord)
	case InvalidUnaryOp:
		return fmt.Sprintf("RuntimeError: invalid operand for unary operator %q %s", e.Msg, e.Coord)
	case InvalidLogicalOp:
		return fmt.Sprintf("RuntimeError: invalid operand for logical operator %q %s", e.Msg, e.Coord)
	case UndefinedVariable:
		return fmt.Sprintf("RuntimeError: Undefined variable %q %s", e.Name, e.Coord)
	case Uncallable:
		return fmt.Sprintf("RuntimeError: value is not callable %s", e.Coord)
	default:
		return fmt.Sprintf("RuntimeError: %s %s", e.Msg, e.Coord)
	}
}
