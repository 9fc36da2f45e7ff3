package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wix-sheets/gosheets/internal/cellref"
	"github.com/wix-sheets/gosheets/internal/cellvalue"
	"github.com/wix-sheets/gosheets/internal/expr"
)

func TestGetInBounds(t *testing.T) {
	s := New("Sheet1", [][]expr.Expression{
		{expr.Literal{Value: cellvalue.Int64(1)}, expr.Literal{Value: cellvalue.Int64(2)}},
	})
	v, ok := s.Get(cellref.Position{Col: 1, Row: 0})
	assert.True(t, ok)
	assert.Equal(t, expr.Literal{Value: cellvalue.Int64(2)}, v)
}

func TestGetOutOfBoundsRow(t *testing.T) {
	s := New("Sheet1", [][]expr.Expression{{}})
	_, ok := s.Get(cellref.Position{Col: 0, Row: 5})
	assert.False(t, ok)
}

func TestGetRaggedRowOutOfBounds(t *testing.T) {
	s := New("Sheet1", [][]expr.Expression{
		{expr.Literal{Value: cellvalue.Int64(1)}, expr.Literal{Value: cellvalue.Int64(2)}},
		{expr.Literal{Value: cellvalue.Int64(3)}},
	})
	_, ok := s.Get(cellref.Position{Col: 1, Row: 1})
	assert.False(t, ok)
}

func TestSetOverwritesCell(t *testing.T) {
	s := New("Sheet1", [][]expr.Expression{
		{expr.Ref{At: cellref.Position{Col: 0, Row: 1}}},
	})
	s.Set(cellref.Position{Col: 0, Row: 0}, expr.Literal{Value: cellvalue.Int64(9)})
	v, ok := s.Get(cellref.Position{Col: 0, Row: 0})
	assert.True(t, ok)
	assert.Equal(t, expr.Literal{Value: cellvalue.Int64(9)}, v)
}

func TestWidthWithRaggedRows(t *testing.T) {
	s := New("Sheet1", [][]expr.Expression{
		{expr.Literal{Value: cellvalue.Int64(1)}},
		{expr.Literal{Value: cellvalue.Int64(1)}, expr.Literal{Value: cellvalue.Int64(2)}, expr.Literal{Value: cellvalue.Int64(3)}},
	})
	assert.Equal(t, 2, s.Height())
	assert.Equal(t, 3, s.Width())
}
