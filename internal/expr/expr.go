// Package expr defines Expression, the in-memory content of a cell: a
// closed tagged union of literal value, cell reference, formula call, or
// error — mirroring the teacher's ASTNode interface convention but closed
// over exactly these four cases (no user-defined node types).
package expr

import (
	"github.com/wix-sheets/gosheets/internal/cellerr"
	"github.com/wix-sheets/gosheets/internal/cellref"
	"github.com/wix-sheets/gosheets/internal/cellvalue"
)

// Expression is the content of a cell before or after resolution.
type Expression interface {
	isExpression()
}

// Literal is a concrete, terminal value. After full resolution, every cell
// is Literal or Error — no Ref or Call survives.
type Literal struct {
	Value cellvalue.Value
}

func (Literal) isExpression() {}

// Ref points at another cell in the same sheet.
type Ref struct {
	At cellref.Position
}

func (Ref) isExpression() {}

// Call is a named operator invocation over nested argument expressions.
// Nesting is unbounded in this type; the parser bounds call nesting depth,
// and the evaluator does not re-check it.
type Call struct {
	Name string
	Args []Expression
}

func (Call) isExpression() {}

// Error is a terminal failure, either from parsing or from evaluation.
type Error struct {
	Err cellerr.CellError
}

func (Error) isExpression() {}

// IsTerminal reports whether e is Literal or Error — the only two states a
// fully resolved cell may be in.
func IsTerminal(e Expression) bool {
	switch e.(type) {
	case Literal, Error:
		return true
	default:
		return false
	}
}
