// Package eval implements the in-place sheet resolver (spec §4.3). It
// replaces the teacher's dependency-graph-plus-topological-sort evaluator
// (graph.go's CalculationStack/DependencyGraph) with the origin-parameter
// recursive algorithm the spec requires: every resolution call carries the
// position it started from, so a reference chain that returns to its own
// origin is detected directly, without ever building an explicit graph.
package eval

import (
	"github.com/wix-sheets/gosheets/internal/cellerr"
	"github.com/wix-sheets/gosheets/internal/cellref"
	"github.com/wix-sheets/gosheets/internal/expr"
	"github.com/wix-sheets/gosheets/internal/registry"
	"github.com/wix-sheets/gosheets/internal/sheet"
)

// Evaluator resolves sheets against a fixed operator registry.
type Evaluator struct {
	registry *registry.Registry
}

// New builds an Evaluator that dispatches formula calls through reg.
func New(reg *registry.Registry) *Evaluator {
	return &Evaluator{registry: reg}
}

// Resolve walks every cell of s in row-major order, resolving each
// non-terminal cell in place. After Resolve returns, every cell is Literal
// or Error.
func (ev *Evaluator) Resolve(s *sheet.Sheet) {
	for row := range s.Rows {
		for col := range s.Rows[row] {
			p := cellref.Position{Col: col, Row: row}
			e, ok := s.Get(p)
			if !ok || expr.IsTerminal(e) {
				continue
			}
			ev.resolvePos(s, p, p)
		}
	}
}

// resolvePos resolves the cell at p, treating origin as the position the
// outermost resolution chain started from (for cycle detection), and
// writes the result back into the sheet before returning it.
func (ev *Evaluator) resolvePos(s *sheet.Sheet, p, origin cellref.Position) expr.Expression {
	e, ok := s.Get(p)
	if !ok {
		return expr.Error{Err: cellerr.InvalidReference{At: p}}
	}

	var result expr.Expression
	switch v := e.(type) {
	case expr.Literal:
		result = v
	case expr.Error:
		result = v
	case expr.Ref:
		result = ev.resolveRef(s, v.At, origin)
	case expr.Call:
		result = ev.resolveCall(s, v, origin)
	default:
		panic("eval: cell holds an unrecognized expression type")
	}

	s.Set(p, result)
	return result
}

// resolveRef resolves a reference to r, under the given origin. A
// reference back to origin is a direct cycle. An indirect cycle
// (A -> B -> A) is caught one level up: when A is entered with origin=A,
// B's reference back to A matches r == origin there.
//
// A reference to a position outside the sheet's bounds is reported as a
// bare InvalidReference, never wrapped in RefError — RefError only wraps
// an error observed from a cell that exists and itself resolved to one
// (spec §8's "Refs & forward refs" and "Type errors aggregate" scenarios
// both show InvalidReference unwrapped).
func (ev *Evaluator) resolveRef(s *sheet.Sheet, r, origin cellref.Position) expr.Expression {
	if r == origin {
		return expr.Error{Err: cellerr.CircularRef{}}
	}
	if _, ok := s.Get(r); !ok {
		return expr.Error{Err: cellerr.InvalidReference{At: r}}
	}
	inner := ev.resolvePos(s, r, origin)
	if innerErr, ok := inner.(expr.Error); ok {
		if _, isCircular := innerErr.Err.(cellerr.CircularRef); isCircular {
			return expr.Error{Err: cellerr.CircularRef{}}
		}
		return expr.Error{Err: cellerr.RefError{Cause: innerErr.Err, At: r}}
	}
	return inner
}

// resolveCall resolves every argument of c, then dispatches to the named
// operator. Nested Calls are resolved fully before the outer operator
// ever runs, since resolveArg recurses into resolveCall for a Call
// argument.
func (ev *Evaluator) resolveCall(s *sheet.Sheet, c expr.Call, origin cellref.Position) expr.Expression {
	args := make([]expr.Expression, len(c.Args))
	for i, a := range c.Args {
		args[i] = ev.resolveArg(s, a, origin)
	}
	op, _, ok := ev.registry.Lookup(c.Name)
	if !ok {
		return expr.Error{Err: cellerr.NoOpFound{Name: c.Name}}
	}
	return op(args)
}

// resolveArg resolves one argument expression of a Call. Literal and Error
// arguments are already terminal; Ref follows the same origin as its
// enclosing call; a nested Call is resolved recursively.
func (ev *Evaluator) resolveArg(s *sheet.Sheet, a expr.Expression, origin cellref.Position) expr.Expression {
	switch v := a.(type) {
	case expr.Literal:
		return v
	case expr.Error:
		return v
	case expr.Ref:
		return ev.resolveRef(s, v.At, origin)
	case expr.Call:
		return ev.resolveCall(s, v, origin)
	default:
		panic("eval: argument holds an unrecognized expression type")
	}
}
