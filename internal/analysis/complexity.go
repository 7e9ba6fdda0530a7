// internal/analysis/complexity.go
package analysis

import (
	"fmt"
	"go/parser"
	"go/token"

	"github.com/fzipp/gocyclo"
)

// ComplexityAnalyzer computes a cyclomatic-complexity total over every
// function in a piece of source text. Implementations are substitutable;
// the scorer only needs the (total, function count) pair and treats any
// error as "unscoreable".
type ComplexityAnalyzer interface {
	Analyze(source string) (total float64, funcs int, err error)
}

// GoAnalyzer parses submissions as Go source files and sums gocyclo's
// per-function complexity. Submissions must be complete files (package
// clause included); anything the parser rejects is reported as an error,
// which the scorer degrades to the worst-case sentinel.
type GoAnalyzer struct{}

func (GoAnalyzer) Analyze(source string) (float64, int, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "submission.go", source, 0)
	if err != nil {
		return 0, 0, fmt.Errorf("parse submission: %w", err)
	}

	stats := gocyclo.AnalyzeASTFile(file, fset, nil)

	var total float64
	for _, stat := range stats {
		total += float64(stat.Complexity)
	}
	return total, len(stats), nil
}
