// internal/analysis/analysis_test.go
package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSource = `package main

func main() {
	if true {
		println("hi")
	}
}
`

func TestScoreRawCounts(t *testing.T) {
	s := NewScorer()
	m := s.Score("ab\ncd\n", false)

	assert.Equal(t, 6, m.Bytes)
	assert.Equal(t, 2, m.Lines)
	assert.Zero(t, m.Characters, "character pass must not run when intrigue is off")
}

func TestScoreASCIIPolicy(t *testing.T) {
	s := NewScorer()

	// Each non-ASCII rune collapses to a single '?' byte.
	m := s.Score("héllo", false)
	assert.Equal(t, 5, m.Bytes)
}

func TestScoreCharacterTable(t *testing.T) {
	s := NewScorer()
	m := s.Score("QAa09 ", true)

	// Q(-2) A(+0.25) a(+1) 0(+0.75) 9(+0.75) space(+1)
	assert.InDelta(t, 1.75, m.Characters, 1e-9)
}

func TestScoreCharacterTableEdges(t *testing.T) {
	s := NewScorer()

	cases := []struct {
		text string
		want float64
	}{
		{"V", -2},
		{"Z", -2},
		{"v", -1},
		{"z", -1},
		{"U", 0.25},
		{"u", 1},
		{"!", 0},
		{"\n", 0},
	}
	for _, tc := range cases {
		m := s.Score(tc.text, true)
		assert.InDeltaf(t, tc.want, m.Characters, 1e-9, "text %q", tc.text)
	}
}

func TestScoreComplexityOfValidSource(t *testing.T) {
	s := NewScorer()
	m := s.Score(validSource, false)

	assert.Equal(t, 1, m.Methods)
	assert.InDelta(t, 2.0, m.Complexity, 1e-9, "one function with one branch")
}

func TestScoreParseFailureDegrades(t *testing.T) {
	s := NewScorer()

	// A bare snippet is not a parseable Go file; scoring must still
	// complete with the sentinel instead of propagating an error.
	m := s.Score("if (x) { return }", true)

	assert.Equal(t, WorstComplexity, m.Complexity)
	assert.Zero(t, m.Methods)
	assert.Equal(t, 17, m.Bytes, "raw counts survive an analyzer failure")
}

func TestScoreDeterminism(t *testing.T) {
	s := NewScorer()
	a := s.Score(validSource, true)
	b := s.Score(validSource, true)

	require.Equal(t, a.Bytes, b.Bytes)
	require.Equal(t, a.Lines, b.Lines)
	require.Equal(t, a.Complexity, b.Complexity)
	require.Equal(t, a.Characters, b.Characters)
}

func TestGoAnalyzerCountsAllFunctions(t *testing.T) {
	src := `package p

func a() {}

func b(n int) int {
	switch n {
	case 1:
		return 1
	case 2:
		return 2
	}
	return 0
}
`
	total, funcs, err := GoAnalyzer{}.Analyze(src)
	require.NoError(t, err)
	assert.Equal(t, 2, funcs)
	assert.InDelta(t, 4.0, total, 1e-9, "a=1, b=1+2 cases")
}

func TestGoAnalyzerRejectsGarbage(t *testing.T) {
	_, _, err := GoAnalyzer{}.Analyze(strings.Repeat("}", 10))
	require.Error(t, err)
}
