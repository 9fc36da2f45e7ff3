// Package registry implements the operator dispatch table: a name to
// invocable mapping, each invocable declaring its own arity and argument
// kind, performing error aggregation, and computing a result
// (spec §4.4). Grounded on the teacher's BuiltInFunctions.Call
// name-dispatch switch (builtin.go) for the shape of the map, and on the
// reference implementation's operators.rs for the exact arity/type/error
// semantics of each built-in.
package registry

import (
	"github.com/wix-sheets/gosheets/internal/cellerr"
	"github.com/wix-sheets/gosheets/internal/cellvalue"
	"github.com/wix-sheets/gosheets/internal/expr"
)

// Operator computes a cell's result from its fully-resolved arguments —
// every element of args is Literal or Error, never Ref or Call.
type Operator func(args []expr.Expression) expr.Expression

// ArgRange is an inclusive arity bound. Hi of cellerr.Unbounded means no
// upper limit.
type ArgRange struct {
	Lo, Hi int
}

func (r ArgRange) contains(n int) bool {
	return n >= r.Lo && (r.Hi == cellerr.Unbounded || n <= r.Hi)
}

// entry pairs an Operator with the arity it declares, so Lookup can report
// it. The stored arity is informational: each built-in Operator closure
// checks its own bounds and reports InvalidArgCount itself.
type entry struct {
	arity ArgRange
	op    Operator
}

// Registry is a name to Operator map, consulted read-only during
// evaluation (spec §5). The zero value is not usable; construct with New.
type Registry struct {
	entries map[string]entry
}

// New builds a Registry preloaded with the ten built-in operators named in
// spec §4.4's table.
func New() *Registry {
	r := &Registry{entries: make(map[string]entry)}
	r.Register("SUM", ArgRange{1, cellerr.Unbounded}, foldOp(1, isNumber, "Num", cellvalue.Int64(0), cellvalue.Add))
	r.Register("MULTIPLY", ArgRange{1, cellerr.Unbounded}, foldOp(1, isNumber, "Num", cellvalue.Int64(1), cellvalue.Mul))
	r.Register("DIVIDE", ArgRange{2, 2}, divide)
	r.Register("GT", ArgRange{2, 2}, compareOp(gtCompute))
	r.Register("EQ", ArgRange{2, 2}, compareOp(eqCompute))
	r.Register("NOT", ArgRange{1, 1}, not)
	r.Register("AND", ArgRange{1, cellerr.Unbounded}, foldOp(1, isBool, "Boolean", cellvalue.Bool(true), andFold))
	r.Register("OR", ArgRange{1, cellerr.Unbounded}, foldOp(1, isBool, "Boolean", cellvalue.Bool(false), orFold))
	r.Register("IF", ArgRange{3, 3}, ifOp)
	r.Register("CONCAT", ArgRange{0, cellerr.Unbounded}, foldOp(0, isString, "String", cellvalue.String(""), concatFold))
	return r
}

// Register adds or replaces a named operator. The evaluator never calls
// this itself — it exists so a host program can extend the registry
// without touching eval (spec §4.4: "easily extensible ... without
// changes to the evaluator").
func (r *Registry) Register(name string, arity ArgRange, op Operator) {
	r.entries[name] = entry{arity: arity, op: op}
}

// Lookup returns the named operator's Operator and declared arity. ok is
// false when name is absent, in which case the caller should produce
// cellerr.NoOpFound.
func (r *Registry) Lookup(name string) (op Operator, arity ArgRange, ok bool) {
	e, ok := r.entries[name]
	if !ok {
		return nil, ArgRange{}, false
	}
	return e.op, e.arity, true
}

func isNumber(v cellvalue.Value) bool { return v.IsNumber() }
func isBool(v cellvalue.Value) bool   { return v.Kind() == cellvalue.KindBool }
func isString(v cellvalue.Value) bool { return v.Kind() == cellvalue.KindString }

// collectArgErrors implements the registry's error discipline (spec §4.4,
// duties 1 and 3): a single pass aggregates every argument that is already
// Error and every well-typed-but-wrong-kind Literal into one FormError, one
// ArgError per offender at its one-based position — matching spec §8's
// "type errors aggregate" scenario, where a bad Ref and a bad Literal in
// the same call land in a single FormError together. Only once that pass
// finds nothing wrong does it check the arity range (duty 2); only then
// does it hand back the extracted values for the operator to compute over.
func collectArgErrors(args []expr.Expression, arity ArgRange, isValid func(cellvalue.Value) bool, typeErr string) ([]cellvalue.Value, expr.Expression) {
	var errs []cellerr.CellError
	vals := make([]cellvalue.Value, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case expr.Error:
			errs = append(errs, cellerr.ArgError{Index: i + 1, Cause: v.Err})
		case expr.Literal:
			if isValid != nil && !isValid(v.Value) {
				errs = append(errs, cellerr.ArgError{Index: i + 1, Cause: cellerr.TypeMismatch{Expected: typeErr}})
			}
			vals[i] = v.Value
		default:
			errs = append(errs, cellerr.ArgError{Index: i + 1, Cause: cellerr.TypeMismatch{Expected: typeErr}})
		}
	}
	if len(errs) > 0 {
		return nil, expr.Error{Err: cellerr.FormError{Errors: errs}}
	}

	if !arity.contains(len(args)) {
		return nil, expr.Error{Err: cellerr.InvalidArgCount{Lo: arity.Lo, Hi: arity.Hi, Actual: len(args)}}
	}
	return vals, nil
}

// foldOp builds a variadic operator that folds identity across every
// argument with combine, after every argument has passed the shared kind
// check. SUM, MULTIPLY, AND, OR, and CONCAT are all instances of this
// shape (spec §9's "fold over N values of kind T" note); lo is their only
// point of difference (CONCAT accepts zero args, the rest require one).
func foldOp(lo int, isValid func(cellvalue.Value) bool, typeErr string, identity cellvalue.Value, combine func(acc, v cellvalue.Value) cellvalue.Value) Operator {
	return func(args []expr.Expression) expr.Expression {
		vals, errExpr := collectArgErrors(args, ArgRange{lo, cellerr.Unbounded}, isValid, typeErr)
		if errExpr != nil {
			return errExpr
		}
		acc := identity
		for _, v := range vals {
			acc = combine(acc, v)
		}
		return expr.Literal{Value: acc}
	}
}

func andFold(acc, v cellvalue.Value) cellvalue.Value {
	return cellvalue.Bool(acc.AsBool() && v.AsBool())
}

func orFold(acc, v cellvalue.Value) cellvalue.Value {
	return cellvalue.Bool(acc.AsBool() || v.AsBool())
}

func concatFold(acc, v cellvalue.Value) cellvalue.Value {
	return cellvalue.String(acc.AsString() + v.AsString())
}

func divide(args []expr.Expression) expr.Expression {
	vals, errExpr := collectArgErrors(args, ArgRange{2, 2}, isNumber, "Num")
	if errExpr != nil {
		return errExpr
	}
	if cellvalue.IsZero(vals[1]) {
		return expr.Error{Err: cellerr.DivByZero{}}
	}
	return expr.Literal{Value: cellvalue.Div(vals[0], vals[1])}
}

func not(args []expr.Expression) expr.Expression {
	vals, errExpr := collectArgErrors(args, ArgRange{1, 1}, isBool, "Boolean")
	if errExpr != nil {
		return errExpr
	}
	return expr.Literal{Value: cellvalue.Bool(!vals[0].AsBool())}
}

// compareOp builds GT/EQ: both take any kind, so long as both arguments
// share it (spec's "same kind on both"). A kind mismatch is, like every
// other type-check failure (spec §4.4 duty 3), wrapped in the aggregated
// FormError rather than surfaced bare — spec §8's "EQ with mixed kinds"
// scenario observes FormError([BinaryTypeMismatch]), not a bare
// BinaryTypeMismatch.
func compareOp(compute func(a, b cellvalue.Value) cellvalue.Value) Operator {
	return func(args []expr.Expression) expr.Expression {
		vals, errExpr := collectArgErrors(args, ArgRange{2, 2}, nil, "")
		if errExpr != nil {
			return errExpr
		}
		if !cellvalue.SameKindCategory(vals[0], vals[1]) {
			return formError(cellerr.BinaryTypeMismatch{})
		}
		return expr.Literal{Value: compute(vals[0], vals[1])}
	}
}

// formError wraps a single whole-call type error (not tied to one
// argument's index) in a one-element FormError, matching the aggregation
// policy applied uniformly to every type-check failure.
func formError(e cellerr.CellError) expr.Expression {
	return expr.Error{Err: cellerr.FormError{Errors: []cellerr.CellError{e}}}
}

func gtCompute(a, b cellvalue.Value) cellvalue.Value {
	less, _ := b.Less(a)
	return cellvalue.Bool(less)
}

func eqCompute(a, b cellvalue.Value) cellvalue.Value {
	return cellvalue.Bool(a.Equal(b))
}

func ifOp(args []expr.Expression) expr.Expression {
	vals, errExpr := collectArgErrors(args, ArgRange{3, 3}, nil, "")
	if errExpr != nil {
		return errExpr
	}
	if vals[0].Kind() != cellvalue.KindBool {
		return formError(cellerr.TypeMismatch{Expected: "Boolean"})
	}
	if !cellvalue.SameKindCategory(vals[1], vals[2]) {
		return formError(cellerr.BinaryTypeMismatch{})
	}
	if vals[0].AsBool() {
		return expr.Literal{Value: vals[1]}
	}
	return expr.Literal{Value: vals[2]}
}
