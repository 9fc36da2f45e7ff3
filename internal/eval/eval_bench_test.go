package eval

import (
	"fmt"
	"testing"

	"github.com/wix-sheets/gosheets/internal/expr"
	"github.com/wix-sheets/gosheets/internal/formula"
	"github.com/wix-sheets/gosheets/internal/registry"
	"github.com/wix-sheets/gosheets/internal/sheet"
)

// Benchmarks mirror the shapes the teacher's performance_bench.go exercised
// (wide fan-out, deep dependency chains, circular references, many small
// formulas) against this package's origin-parameter resolver instead of the
// teacher's dependency-graph evaluator.

func benchSheet(rows [][]string) *sheet.Sheet {
	grid := make([][]expr.Expression, len(rows))
	for r, row := range rows {
		cells := make([]expr.Expression, len(row))
		for c, raw := range row {
			cells[c] = formula.ParseEntry(raw)
		}
		grid[r] = cells
	}
	return sheet.New("Sheet1", grid)
}

func BenchmarkResolveFormulaDependencyChain(b *testing.B) {
	rows := make([][]string, 100)
	rows[0] = []string{"1"}
	for i := 1; i < 100; i++ {
		rows[i] = []string{fmt.Sprintf("=A%d", i)}
	}

	reg := registry.New()
	for i := 0; i < b.N; i++ {
		New(reg).Resolve(benchSheet(rows))
	}
}

func BenchmarkResolveWideDependencyFanOut(b *testing.B) {
	rows := make([][]string, 500)
	rows[0] = []string{"100"}
	for i := 1; i < 500; i++ {
		rows[i] = []string{"=MULTIPLY(A1,2)"}
	}

	reg := registry.New()
	for i := 0; i < b.N; i++ {
		New(reg).Resolve(benchSheet(rows))
	}
}

func BenchmarkResolveCircularReferenceDetection(b *testing.B) {
	rows := [][]string{{
		"=SUM(B1,C1)", "=SUM(C1,D1)", "=SUM(D1,E1)", "=SUM(E1,F1)",
		"=SUM(F1,G1)", "=SUM(G1,H1)", "=SUM(H1,A1)", "=A1",
	}}

	reg := registry.New()
	for i := 0; i < b.N; i++ {
		New(reg).Resolve(benchSheet(rows))
	}
}

func BenchmarkResolveManySmallFormulas(b *testing.B) {
	rows := make([][]string, 100)
	for row := range rows {
		rows[row] = []string{
			fmt.Sprintf("%d", row+1),
			fmt.Sprintf("=MULTIPLY(A%d,2)", row+1),
			fmt.Sprintf("=SUM(B%d,A%d)", row+1, row+1),
			fmt.Sprintf("=DIVIDE(C%d,2)", row+1),
		}
	}

	reg := registry.New()
	for i := 0; i < b.N; i++ {
		New(reg).Resolve(benchSheet(rows))
	}
}
