// Package cellref implements cell Position: a zero-based (column, row) pair
// with the A1-style textual syntax used in formulas and error messages.
package cellref

import (
	"fmt"
	"strconv"
)

// Position names a cell within a sheet by zero-based column and row.
type Position struct {
	Col int
	Row int
}

// String renders a Position in A1 syntax: column letter(s), one-based row.
func (p Position) String() string {
	return fmt.Sprintf("%s%d", columnLetters(p.Col), p.Row+1)
}

// columnLetters renders a zero-based column index as A, B, ..., Z, AA, ...
func columnLetters(col int) string {
	if col < 0 {
		return ""
	}
	var letters []byte
	n := col
	for {
		letters = append([]byte{byte('A' + n%26)}, letters...)
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return string(letters)
}

// ParseRef parses a single-letter-column reference, e.g. "A1", "B12". The
// grammar (spec §4.2) only admits single ASCII letter columns; row is
// one-based in the source text and zero-based once stored. A row of "0" is
// a parse error (ok is false), as is any non-matching input.
func ParseRef(s string) (Position, bool) {
	if len(s) < 2 {
		return Position{}, false
	}
	c := s[0]
	if c < 'A' || c > 'Z' {
		return Position{}, false
	}
	digits := s[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Position{}, false
		}
	}
	row, err := strconv.Atoi(digits)
	if err != nil || row == 0 {
		return Position{}, false
	}
	return Position{Col: int(c - 'A'), Row: row - 1}, true
}
