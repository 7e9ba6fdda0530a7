// internal/golf/hub_test.go
package golf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnWriteNeverBlocks(t *testing.T) {
	c := &Conn{ID: "conn-a", Out: make(chan map[string]interface{}, 1)}

	c.Write(map[string]interface{}{"type": "one"})
	c.Write(map[string]interface{}{"type": "two"}) // dropped, must not block

	require.Len(t, c.Out, 1)
	assert.Equal(t, "one", (<-c.Out)["type"])
}

func TestHubTargeting(t *testing.T) {
	h := NewHub()
	a := &Conn{ID: "a", Out: make(chan map[string]interface{}, 4)}
	b := &Conn{ID: "b", Out: make(chan map[string]interface{}, 4)}
	h.Add(a)
	h.Add(b)

	h.SendTo("a", map[string]interface{}{"type": "solo"})
	assert.Len(t, a.Out, 1)
	assert.Empty(t, b.Out)

	h.SendMany([]string{"a", "b", "missing"}, map[string]interface{}{"type": "pair"})
	assert.Len(t, a.Out, 2)
	assert.Len(t, b.Out, 1)

	h.SendAll(map[string]interface{}{"type": "all"})
	assert.Len(t, a.Out, 3)
	assert.Len(t, b.Out, 2)

	h.Remove("b")
	h.SendAll(map[string]interface{}{"type": "after"})
	assert.Len(t, b.Out, 2, "removed connections receive nothing")
	assert.Equal(t, 1, h.Len())
}
