// Package sheet implements the workbook's mutable grid: an identifier plus
// a two-dimensional, possibly-ragged array of expr.Expression, the unit the
// evaluator mutates in place (spec §3 "Sheet"/"Workbook").
package sheet

import (
	"github.com/wix-sheets/gosheets/internal/cellref"
	"github.com/wix-sheets/gosheets/internal/expr"
)

// Sheet is one worksheet: an opaque ID and row-major grid of cells. Rows
// may differ in length; Get reports ok=false for any position outside a
// row's current bounds instead of panicking.
type Sheet struct {
	ID   string
	Rows [][]expr.Expression
}

// New builds a Sheet from an already-constructed grid of expressions. rows
// is kept by reference, not copied — callers that need an independent copy
// should clone before calling New.
func New(id string, rows [][]expr.Expression) *Sheet {
	return &Sheet{ID: id, Rows: rows}
}

// Get returns the expression at p, or ok=false if p falls outside the
// sheet's current bounds (a ragged row short of p.Col counts as
// out-of-bounds, per spec §3).
func (s *Sheet) Get(p cellref.Position) (expr.Expression, bool) {
	if p.Row < 0 || p.Row >= len(s.Rows) {
		return nil, false
	}
	row := s.Rows[p.Row]
	if p.Col < 0 || p.Col >= len(row) {
		return nil, false
	}
	return row[p.Col], true
}

// Set overwrites the cell at p. Callers must only call Set with a
// position previously confirmed valid by Get — Set on an out-of-bounds p
// panics, since the evaluator never does this (an invalid Ref is reported
// as a value, not written back anywhere).
func (s *Sheet) Set(p cellref.Position, e expr.Expression) {
	s.Rows[p.Row][p.Col] = e
}

// Height reports the number of rows.
func (s *Sheet) Height() int { return len(s.Rows) }

// Width reports the length of the widest row, or 0 for an empty sheet.
func (s *Sheet) Width() int {
	max := 0
	for _, row := range s.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// Workbook is an ordered collection of sheets plus the URL the resolved
// results are submitted to. The core treats SubmissionURL as opaque
// metadata (spec §3).
type Workbook struct {
	Sheets        []*Sheet
	SubmissionURL string
}
