// internal/analysis/analysis.go
package analysis

import (
	"math"
	"time"
)

// WorstComplexity is the sentinel stored when the complexity analyzer fails.
// A submission that cannot be analyzed still completes the pipeline with an
// effectively worst-possible rating.
const WorstComplexity = math.MaxFloat64

// Metrics is the result of scoring one submission.
type Metrics struct {
	Bytes      int
	Lines      int
	Methods    int
	Complexity float64
	Characters float64
	// Duration is the wall-clock cost of the scoring pass, informational
	// only.
	Duration time.Duration
}

// Scorer runs the full metric pass over submitted source text. It holds no
// shared state; Score is deterministic aside from Duration.
type Scorer struct {
	Analyzer ComplexityAnalyzer
}

// NewScorer returns a Scorer backed by the Go complexity analyzer.
func NewScorer() *Scorer {
	return &Scorer{Analyzer: GoAnalyzer{}}
}

// Score measures text and returns its metrics. The character pass only runs
// when injectIntrigue is set. Analyzer failures never propagate: the
// complexity field degrades to WorstComplexity and every other field stays
// valid.
func (s *Scorer) Score(text string, injectIntrigue bool) Metrics {
	start := time.Now()

	raw := asciiBytes(text)
	m := Metrics{Bytes: len(raw)}
	for _, b := range raw {
		if b == '\n' {
			m.Lines++
		}
	}

	total, funcs, err := s.Analyzer.Analyze(string(raw))
	if err != nil {
		m.Complexity = WorstComplexity
	} else {
		m.Complexity = total
		m.Methods = funcs
	}

	if injectIntrigue {
		m.Characters = characterScore(raw)
	}

	m.Duration = time.Since(start)
	return m
}

// asciiBytes transcodes text to one byte per rune. Runes outside the ASCII
// range are replaced with '?'; the lossy mapping is a deliberate policy so
// byte counts are stable regardless of the client's encoding.
func asciiBytes(text string) []byte {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		if r > 0x7f {
			r = '?'
		}
		out = append(out, byte(r))
	}
	return out
}

// characterScore applies the fixed per-byte scoring table: rare uppercase
// letters (Q, V-Z) cost 2, their lowercase forms cost 1, digits earn 0.75,
// the remaining uppercase earn 0.25, the remaining lowercase and the space
// earn 1. Everything else is neutral.
func characterScore(raw []byte) float64 {
	var score float64
	for _, b := range raw {
		switch {
		case b == 'Q' || (b >= 'V' && b <= 'Z'):
			score -= 2
		case b == 'q' || (b >= 'v' && b <= 'z'):
			score -= 1
		case b >= '0' && b <= '9':
			score += 0.75
		case b >= 'A' && b <= 'Z':
			score += 0.25
		case (b >= 'a' && b <= 'z') || b == ' ':
			score += 1
		}
	}
	return score
}
