package formula

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wix-sheets/gosheets/internal/cellerr"
	"github.com/wix-sheets/gosheets/internal/cellref"
	"github.com/wix-sheets/gosheets/internal/cellvalue"
	"github.com/wix-sheets/gosheets/internal/expr"
)

func TestParseEntryLiterals(t *testing.T) {
	assert.Equal(t, expr.Literal{Value: cellvalue.String("hello")}, ParseEntry("hello"))
	assert.Equal(t, expr.Literal{Value: cellvalue.Bool(true)}, ParseEntry("true"))
	assert.Equal(t, expr.Literal{Value: cellvalue.Bool(false)}, ParseEntry("false"))
	assert.Equal(t, expr.Literal{Value: cellvalue.String("5")}, ParseEntry("5"))
}

func TestParseEntryFormulaLiterals(t *testing.T) {
	assert.Equal(t, expr.Literal{Value: cellvalue.Int64(123)}, ParseEntry("=123"))
	assert.Equal(t, expr.Literal{Value: cellvalue.Float64(123.4)}, ParseEntry("=123.4"))
	assert.Equal(t, expr.Literal{Value: cellvalue.Bool(true)}, ParseEntry("=true"))
	assert.Equal(t, expr.Literal{Value: cellvalue.String("Hi!")}, ParseEntry(`="Hi!"`))
}

func TestParseEntryNotANumber(t *testing.T) {
	// ".4" and "5." are not numbers: neither parses as a ref, string, or
	// call either, so the whole formula is malformed.
	assert.Equal(t, expr.Error{Err: cellerr.ParseError{}}, ParseEntry("=.4"))
	assert.Equal(t, expr.Error{Err: cellerr.ParseError{}}, ParseEntry("=5."))
}

func TestParseEntryRef(t *testing.T) {
	assert.Equal(t, expr.Ref{At: cellref.Position{Col: 0, Row: 0}}, ParseEntry("=A1"))
	assert.Equal(t, expr.Ref{At: cellref.Position{Col: 2, Row: 11}}, ParseEntry("=C12"))
}

func TestParseEntryRefRowZeroIsParseError(t *testing.T) {
	assert.Equal(t, expr.Error{Err: cellerr.ParseError{}}, ParseEntry("=A0"))
}

func TestParseEntryMalformed(t *testing.T) {
	assert.Equal(t, expr.Error{Err: cellerr.ParseError{}}, ParseEntry("=SUM("))
	assert.Equal(t, expr.Error{Err: cellerr.ParseError{}}, ParseEntry("=SUM(1,2"))
}

func TestParseEntryCall(t *testing.T) {
	got := ParseEntry("=SUM(A1,52)")
	want := expr.Call{
		Name: "SUM",
		Args: []expr.Expression{
			expr.Ref{At: cellref.Position{Col: 0, Row: 0}},
			expr.Literal{Value: cellvalue.Int64(52)},
		},
	}
	require.Equal(t, want, got)
}

func TestParseEntryCallSpaceSeparated(t *testing.T) {
	got := ParseEntry("=AND(true false)")
	want := expr.Call{
		Name: "AND",
		Args: []expr.Expression{
			expr.Literal{Value: cellvalue.Bool(true)},
			expr.Literal{Value: cellvalue.Bool(false)},
		},
	}
	require.Equal(t, want, got)
}

func TestParseEntryNestedCall(t *testing.T) {
	got := ParseEntry("=SUM(A1, MULTIPLY(5, B2))")
	want := expr.Call{
		Name: "SUM",
		Args: []expr.Expression{
			expr.Ref{At: cellref.Position{Col: 0, Row: 0}},
			expr.Call{
				Name: "MULTIPLY",
				Args: []expr.Expression{
					expr.Literal{Value: cellvalue.Int64(5)},
					expr.Ref{At: cellref.Position{Col: 1, Row: 1}},
				},
			},
		},
	}
	require.Equal(t, want, got)
}

func TestParseEntryConcatStrings(t *testing.T) {
	got := ParseEntry(`=CONCAT("H", "i")`)
	want := expr.Call{
		Name: "CONCAT",
		Args: []expr.Expression{
			expr.Literal{Value: cellvalue.String("H")},
			expr.Literal{Value: cellvalue.String("i")},
		},
	}
	require.Equal(t, want, got)
}

func TestParseEntryDeeplyNestedDoesNotPanic(t *testing.T) {
	// A call nested deeper than maxCallDepth must fail cleanly as a
	// ParseError rather than overflowing the stack.
	formula := "=" + strings.Repeat("SUM(", maxCallDepth+10) + "1" +
		strings.Repeat(")", maxCallDepth+10)
	require.NotPanics(t, func() {
		got := ParseEntry(formula)
		assert.Equal(t, expr.Error{Err: cellerr.ParseError{}}, got)
	})
}
