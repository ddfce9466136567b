package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultMap(t *testing.T) {
	t.Run("materializes and stores the default on a missing key", func(t *testing.T) {
		m := NewDefaultMap[string](func() []int { return nil })

		got := m.Get("missing")
		assert.Nil(t, got)
		assert.Contains(t, m.ToMap(), "missing")
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		m := NewDefaultMap[string](func() []int { return nil })

		m.Set("k", []int{1, 2})
		assert.Equal(t, []int{1, 2}, m.Get("k"))
	})

	t.Run("append through get builds up per-key slices", func(t *testing.T) {
		m := NewDefaultMap[string](func() []int { return nil })

		m.Set("k", append(m.Get("k"), 1))
		m.Set("k", append(m.Get("k"), 2))
		assert.Equal(t, []int{1, 2}, m.Get("k"))
	})
}
