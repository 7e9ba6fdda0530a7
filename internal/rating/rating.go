// internal/rating/rating.go
package rating

// Weights for combining the scorer's outputs into one golf rating. Bytes
// dominate, complexity is half-weighted, lines and the character score are
// small nudges.
const (
	BytesWeight      = 0.35
	LinesWeight      = 0.05
	ComplexityWeight = 0.5
	CharactersWeight = 0.1
)

// Rate combines the four metric components into a single scalar rating,
// clamped at zero. Lower is better: fewer bytes, lines, and branches win,
// and exotic characters shift the score per the analysis table.
// Deterministic.
func Rate(bytes, lines int, complexity, characters float64) float64 {
	r := float64(bytes)*BytesWeight +
		float64(lines)*LinesWeight +
		complexity*ComplexityWeight +
		characters*CharactersWeight
	if r < 0 {
		return 0
	}
	return r
}
