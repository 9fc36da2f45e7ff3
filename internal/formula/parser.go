// Package formula implements the recursive-descent parser that turns a
// cell's raw string payload into an expr.Expression (spec §4.2).
package formula

import (
	"strconv"
	"strings"

	"github.com/wix-sheets/gosheets/internal/cellerr"
	"github.com/wix-sheets/gosheets/internal/cellref"
	"github.com/wix-sheets/gosheets/internal/cellvalue"
	"github.com/wix-sheets/gosheets/internal/expr"
)

// maxCallDepth bounds nested Call parsing so pathological input (deeply
// nested parens) fails fast as a ParseError instead of exhausting the
// goroutine stack.
const maxCallDepth = 200

// ParseEntry parses the raw string payload of a cell.
//
//	entry := "=" expr | "true" | "false" | any
//
// A leading "=" introduces a formula; bare "true"/"false" (no "=") are
// boolean literals; anything else is a string literal verbatim. Malformed
// formulas produce expr.Error{cellerr.ParseError{}}.
func ParseEntry(raw string) expr.Expression {
	if strings.HasPrefix(raw, "=") {
		e, rest, ok := parseExpr(raw[1:], maxCallDepth)
		if !ok || rest != "" {
			return expr.Error{Err: cellerr.ParseError{}}
		}
		return e
	}
	switch raw {
	case "true":
		return expr.Literal{Value: cellvalue.Bool(true)}
	case "false":
		return expr.Literal{Value: cellvalue.Bool(false)}
	default:
		return expr.Literal{Value: cellvalue.String(raw)}
	}
}

// parseExpr tries, in order, bool, number, ref, string, call — the same
// order used for formula bodies and for call arguments (spec §4.2's tie
// break: "Argument parser tries, in order: bool, number, ref, string,
// call").
func parseExpr(s string, depth int) (expr.Expression, string, bool) {
	if e, rest, ok := parseBool(s); ok {
		return e, rest, true
	}
	if e, rest, ok := parseNumber(s); ok {
		return e, rest, true
	}
	if e, rest, ok := parseRef(s); ok {
		return e, rest, true
	}
	if e, rest, ok := parseString(s); ok {
		return e, rest, true
	}
	return parseCall(s, depth)
}

func parseBool(s string) (expr.Expression, string, bool) {
	if strings.HasPrefix(s, "true") {
		return expr.Literal{Value: cellvalue.Bool(true)}, s[len("true"):], true
	}
	if strings.HasPrefix(s, "false") {
		return expr.Literal{Value: cellvalue.Bool(false)}, s[len("false"):], true
	}
	return nil, s, false
}

// parseNumber recognizes int or float: DIGIT+ not followed by "." is an
// int; DIGIT+ "." DIGIT+ is a float. ".4" and "5." are not numbers (digits
// are required on both sides of the dot).
func parseNumber(s string) (expr.Expression, string, bool) {
	whole := scanDigits(s)
	if whole == "" {
		return nil, s, false
	}
	rest := s[len(whole):]
	if strings.HasPrefix(rest, ".") {
		frac := scanDigits(rest[1:])
		if frac == "" {
			// "5." — a digit run followed by a bare dot is not a number.
			return nil, s, false
		}
		f, err := strconv.ParseFloat(whole+"."+frac, 64)
		if err != nil {
			return nil, s, false
		}
		return expr.Literal{Value: cellvalue.Float64(f)}, rest[1+len(frac):], true
	}
	i, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return nil, s, false
	}
	return expr.Literal{Value: cellvalue.Int64(i)}, rest, true
}

// parseRef recognizes a single-letter-column reference: LETTER DIGIT+. A
// row of "0" is itself a successful parse — it resolves to an Error
// expression in place, rather than falling back to try string/call for the
// same text (matching the reference implementation's parse.rs behavior).
//
// This duplicates cellref.ParseRef's grammar rather than calling it:
// cellref.ParseRef validates a standalone, fully-consumed ref string,
// while this function is a prefix
// parser that must report how much of s it consumed and must itself accept
// the row-zero case that cellref.ParseRef rejects.
func parseRef(s string) (expr.Expression, string, bool) {
	if len(s) == 0 || !isUpperLetter(s[0]) {
		return nil, s, false
	}
	digits := scanDigits(s[1:])
	if digits == "" {
		return nil, s, false
	}
	rest := s[1+len(digits):]
	row, err := strconv.Atoi(digits)
	if err != nil {
		return nil, s, false
	}
	if row == 0 {
		return expr.Error{Err: cellerr.ParseError{}}, rest, true
	}
	return expr.Ref{At: cellref.Position{Col: int(s[0] - 'A'), Row: row - 1}}, rest, true
}

// parseString recognizes '"' [^"]* '"'. No escape handling — the grammar
// admits any character except a bare quote inside the literal.
func parseString(s string) (expr.Expression, string, bool) {
	if !strings.HasPrefix(s, "\"") {
		return nil, s, false
	}
	body := s[1:]
	end := strings.IndexByte(body, '"')
	if end < 0 {
		return nil, s, false
	}
	return expr.Literal{Value: cellvalue.String(body[:end])}, body[end+1:], true
}

// parseCall recognizes NAME "(" WS args? ")". NAME is any run of
// characters up to the first "(" — whitespace and punctuation included.
func parseCall(s string, depth int) (expr.Expression, string, bool) {
	if depth <= 0 {
		return nil, s, false
	}
	paren := strings.IndexByte(s, '(')
	if paren < 0 {
		return nil, s, false
	}
	name := s[:paren]
	rest := skipSpaces(s[paren+1:])

	args, rest := parseArgs(rest, depth-1)
	rest = skipSpaces(rest)
	if !strings.HasPrefix(rest, ")") {
		return nil, s, false
	}
	return expr.Call{Name: name, Args: args}, rest[1:], true
}

// parseArgs greedily parses expressions separated by runs of spaces and/or
// commas, stopping (without failing) at the first expression that doesn't
// parse — the caller then expects to find the closing ")".
func parseArgs(s string, depth int) ([]expr.Expression, string) {
	var args []expr.Expression
	rest := s
	for {
		e, r, ok := parseExpr(rest, depth)
		if !ok {
			break
		}
		args = append(args, e)
		rest = skipArgSeparators(r)
	}
	return args, rest
}
