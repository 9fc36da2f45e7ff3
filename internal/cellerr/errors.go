// Package cellerr implements the closed taxonomy of cell-level evaluation
// errors. Every evaluation failure is one of these eleven types; there is no
// open extension point, matching the interpreter's closed error set.
package cellerr

import (
	"strconv"
	"strings"

	"github.com/wix-sheets/gosheets/internal/cellref"
)

// CellError is implemented by exactly the eleven error types below. The
// marker method keeps the set closed to this package.
type CellError interface {
	error
	cellError()
}

// Unbounded marks an arg-count range with no upper limit (e.g. SUM's 1..∞).
const Unbounded = -1

// ParseError reports a formula string that did not match the grammar.
type ParseError struct{}

func (ParseError) Error() string { return "#ERROR: Malformed formula" }
func (ParseError) cellError()    {}

// TypeMismatch reports an argument whose kind didn't match what an operator
// expected (e.g. SUM given a string).
type TypeMismatch struct {
	Expected string
}

func (e TypeMismatch) Error() string { return "#ERROR: Incompatible types, expected " + e.Expected }
func (TypeMismatch) cellError()      {}

// BinaryTypeMismatch reports two arguments of differing kinds passed to an
// operator that requires both to share a kind (GT, EQ, IF's branches).
type BinaryTypeMismatch struct{}

func (BinaryTypeMismatch) Error() string { return "#ERROR: Incompatible types" }
func (BinaryTypeMismatch) cellError()    {}

// InvalidReference reports a Ref pointing outside the sheet's bounds.
type InvalidReference struct {
	At cellref.Position
}

func (e InvalidReference) Error() string {
	return "#ERROR: This cell references non-existent cell at " + e.At.String()
}
func (InvalidReference) cellError() {}

// InvalidArgCount reports a Call whose argument count fell outside an
// operator's declared inclusive range. Hi == Unbounded renders as "∞".
type InvalidArgCount struct {
	Lo     int
	Hi     int
	Actual int
}

func (e InvalidArgCount) Error() string {
	hi := "∞"
	if e.Hi != Unbounded {
		hi = strconv.Itoa(e.Hi)
	}
	return "#ERROR: This operation takes " + strconv.Itoa(e.Lo) + "..=" + hi +
		" args, but " + strconv.Itoa(e.Actual) + " were supplied"
}
func (InvalidArgCount) cellError() {}

// NoOpFound reports a Call naming an operator absent from the registry.
type NoOpFound struct {
	Name string
}

func (e NoOpFound) Error() string { return "#ERROR: Could not find an operation named " + e.Name }
func (NoOpFound) cellError()      {}

// RefError wraps the error observed through a Ref indirection, except when
// Cause is CircularRef (that one propagates unwrapped, see CircularRef).
type RefError struct {
	Cause CellError
	At    cellref.Position
}

func (e RefError) Error() string {
	return "#ERROR: Referenced cell " + e.At.String() + " has errors " + e.Cause.Error()
}
func (RefError) cellError() {}

// ArgError wraps one argument's error with its one-based position in the
// call, for display inside a FormError list.
type ArgError struct {
	Index int // one-based
	Cause CellError
}

func (e ArgError) Error() string {
	return "arg " + strconv.Itoa(e.Index) + ": " + e.Cause.Error()
}
func (ArgError) cellError() {}

// FormError aggregates every argument error an operator call observed, one
// ArgError per bad argument, in argument order. Operators never short-
// circuit on the first bad argument.
type FormError struct {
	Errors []CellError
}

func (e FormError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		parts[i] = err.Error()
	}
	return "#ERROR: These errors have occurred in this formula: " + strings.Join(parts, ", ")
}
func (FormError) cellError() {}

// DivByZero reports DIVIDE with a zero divisor (integer 0 or float 0.0).
type DivByZero struct{}

func (DivByZero) Error() string { return "#ERROR: Division by zero" }
func (DivByZero) cellError()    {}

// CircularRef reports a reference chain that returns to its own origin.
// Unlike other wrapped errors, CircularRef propagates through RefError
// unwrapped, so every participant in a cycle reports it directly.
type CircularRef struct{}

func (CircularRef) Error() string { return "#ERROR: ref error" }
func (CircularRef) cellError()    {}
