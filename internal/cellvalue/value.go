// Package cellvalue implements the heterogeneous value algebra shared by
// every resolved cell: integers, floats, booleans, and strings.
package cellvalue

import "fmt"

// Kind tags the concrete type carried by a Value, so callers can enforce
// "same kind" rules without reflection.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt, KindFloat:
		return "Num"
	case KindBool:
		return "Boolean"
	case KindString:
		return "String"
	default:
		return "Unknown"
	}
}

// Value is a tagged union over the four cell value kinds. It is a plain
// struct rather than one interface implementation per variant, so the
// operator layer can read Kind() without a type switch or downcast.
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
}

// Int64 constructs an integer Value.
func Int64(i int64) Value { return Value{kind: KindInt, i: i} }

// Float64 constructs a float Value.
func Float64(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool constructs a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String constructs a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

func (v Value) Kind() Kind { return v.kind }

// IsNumber reports whether v is an Integer or Float (the unified Number).
func (v Value) IsNumber() bool { return v.kind == KindInt || v.kind == KindFloat }

func (v Value) AsInt64() int64  { return v.i }
func (v Value) AsFloat64() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}
func (v Value) AsBool() bool     { return v.b }
func (v Value) AsString() string { return v.s }

// String renders the value for display; JSON serialization does not use
// it.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindString:
		return v.s
	default:
		return "<invalid>"
	}
}

// Equal compares two values. Numbers compare numerically across Int/Float
// (6 == 6.0). Comparing across non-number kinds (e.g. string vs bool) is
// never "true" here; callers that must reject mixed kinds as an error do
// so before calling Equal (see registry's binary-kind check).
func (v Value) Equal(o Value) bool {
	if v.IsNumber() && o.IsNumber() {
		return v.AsFloat64() == o.AsFloat64()
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.s == o.s
	default:
		return false
	}
}

// Less reports a strict partial order: Numbers order numerically, strings
// order lexicographically by code point, booleans order false < true. ok is
// false when the two values are not ordering-comparable (different,
// non-number kinds).
func (v Value) Less(o Value) (less bool, ok bool) {
	if v.IsNumber() && o.IsNumber() {
		return v.AsFloat64() < o.AsFloat64(), true
	}
	if v.kind != o.kind {
		return false, false
	}
	switch v.kind {
	case KindString:
		return v.s < o.s, true
	case KindBool:
		return !v.b && o.b, true
	default:
		return false, false
	}
}

// SameKindCategory reports whether v and o belong to the same comparison
// category: both Numbers, or both the exact same non-number kind. GT/EQ use
// this to decide between computing a result and raising BinaryTypeMismatch.
func SameKindCategory(v, o Value) bool {
	if v.IsNumber() && o.IsNumber() {
		return true
	}
	return v.kind == o.kind
}

// Add, Mul, Div implement the unified Number arithmetic: integer operands
// stay integer, any float operand promotes the result to float. Div further
// promotes to float whenever the integer division would be inexact.
// Callers are responsible for checking IsNumber() and for zero-divisor
// handling (DivByZero is an operator-layer error, not produced here).

func Add(a, b Value) Value {
	if a.kind == KindInt && b.kind == KindInt {
		return Int64(a.i + b.i)
	}
	return Float64(a.AsFloat64() + b.AsFloat64())
}

func Mul(a, b Value) Value {
	if a.kind == KindInt && b.kind == KindInt {
		return Int64(a.i * b.i)
	}
	return Float64(a.AsFloat64() * b.AsFloat64())
}

func Div(a, b Value) Value {
	if a.kind == KindInt && b.kind == KindInt {
		if b.i != 0 && a.i%b.i == 0 {
			return Int64(a.i / b.i)
		}
		return Float64(float64(a.i) / float64(b.i))
	}
	return Float64(a.AsFloat64() / b.AsFloat64())
}

// IsZero reports whether a Number value is exactly zero, for divisor checks.
func IsZero(v Value) bool {
	if v.kind == KindInt {
		return v.i == 0
	}
	return v.f == 0
}
