package ecs

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparseSetAddRemoveContains(t *testing.T) {
	var s SparseSet

	assert.True(t, s.Add(3))
	assert.True(t, s.Add(10))
	assert.False(t, s.Add(3))
	assert.True(t, s.Contains(3))
	assert.True(t, s.Contains(10))
	assert.False(t, s.Contains(4))
	assert.False(t, s.Contains(1000))
	assert.Equal(t, 2, s.Len())

	assert.True(t, s.Remove(3))
	assert.False(t, s.Remove(3))
	assert.False(t, s.Contains(3))
	assert.Equal(t, []Entity{10}, s.Items())
}

func TestSparseSetSwapRemove(t *testing.T) {
	var s SparseSet
	for _, e := range []Entity{1, 2, 3, 4} {
		s.Add(e)
	}

	require.True(t, s.Remove(2))
	assert.Equal(t, []Entity{1, 4, 3}, s.Items())
	assert.True(t, s.Contains(4))

	require.True(t, s.Remove(3))
	assert.Equal(t, []Entity{1, 4}, s.Items())
}

func TestSparseSetRejectsStaleHandle(t *testing.T) {
	var s SparseSet
	live := NewEntity(5, 1)
	stale := NewEntity(5, 0)

	s.Add(live)

	assert.True(t, s.Contains(live))
	assert.False(t, s.Contains(stale))
	assert.False(t, s.Remove(stale))
	assert.Equal(t, 1, s.Len())
}

func TestSparseSetClear(t *testing.T) {
	var s SparseSet
	s.Add(1)
	s.Add(7)

	s.Clear()

	assert.Zero(t, s.Len())
	assert.False(t, s.Contains(1))
	assert.False(t, s.Contains(7))
	assert.True(t, s.Add(7))
	assert.Equal(t, []Entity{7}, s.Items())
}

func TestSparseSetOneHandlePerIndex(t *testing.T) {
	var s SparseSet
	old := NewEntity(5, 0)
	cur := NewEntity(5, 1)

	require.True(t, s.Add(old))
	assert.False(t, s.Add(cur))
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Contains(cur))

	require.True(t, s.Remove(old))
	assert.True(t, s.Add(cur))
	assert.Equal(t, []Entity{cur}, s.Items())
}

func TestSparseSetInvariantUnderRandomOps(t *testing.T) {
	var s SparseSet
	byIndex := map[uint32]Entity{}
	rng := rand.New(rand.NewSource(42))

	for step := 0; step < 5000; step++ {
		e := NewEntity(uint32(rng.Intn(64)), uint8(rng.Intn(3)))
		held, occupied := byIndex[e.Index()]
		if rng.Intn(3) == 0 {
			member := occupied && held == e
			assert.Equal(t, member, s.Remove(e), "step %d", step)
			if member {
				delete(byIndex, e.Index())
			}
		} else {
			assert.Equal(t, !occupied, s.Add(e), "step %d", step)
			if !occupied {
				byIndex[e.Index()] = e
			}
		}

		require.Equal(t, len(byIndex), s.Len(), "step %d", step)
		for i, item := range s.Items() {
			pos, ok := s.position(item)
			require.True(t, ok)
			require.Equal(t, uint32(i), pos)
		}
	}

	count := 0
	for idx := uint32(0); idx < 64; idx++ {
		for v := 0; v < 3; v++ {
			if s.Contains(NewEntity(idx, uint8(v))) {
				count++
			}
		}
	}
	assert.Equal(t, s.Len(), count)
}
