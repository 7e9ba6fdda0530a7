// internal/rating/rating_test.go
package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateDeterminism(t *testing.T) {
	// 100*0.35 + 10*0.05 + 5.0*0.5 + 20.0*0.1 = 40.0
	r := Rate(100, 10, 5.0, 20.0)
	assert.InDelta(t, 40.0, r, 1e-9)

	assert.Equal(t, r, Rate(100, 10, 5.0, 20.0))
}

func TestRateClampsAtZero(t *testing.T) {
	assert.Zero(t, Rate(0, 0, 0, -50.0))
}

func TestRateLowerIsBetter(t *testing.T) {
	shorter := Rate(50, 5, 3.0, 0)
	longer := Rate(200, 20, 3.0, 0)
	assert.Less(t, shorter, longer)
}
