package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setOf(items ...Entity) *SparseSet {
	s := &SparseSet{}
	for _, e := range items {
		s.Add(e)
	}
	return s
}

func TestViewIntersectionIsOrderIndependent(t *testing.T) {
	a := setOf(1, 3, 5, 7)
	b := setOf(3, 4, 5)

	assert.ElementsMatch(t, []Entity{3, 5}, NewView(a, b).Collect())
	assert.ElementsMatch(t, []Entity{3, 5}, NewView(b, a).Collect())
}

func TestViewDrivenBySmallest(t *testing.T) {
	a := setOf(1, 2, 3, 4)
	b := setOf(2, 4)
	c := setOf(2, 3, 4)

	v := NewView(a, b, c)

	assert.Same(t, b, v.Driver())
	assert.Equal(t, []Entity{2, 4}, v.Collect())
}

func TestViewTieGoesToFirst(t *testing.T) {
	a := setOf(1, 2)
	b := setOf(2, 3)

	assert.Same(t, a, NewView(a, b).Driver())
	assert.Same(t, b, NewView(b, a).Driver())
}

func TestViewEmptyAndEarlyStop(t *testing.T) {
	assert.Empty(t, NewView(setOf(1, 2), setOf()).Collect())

	v := NewView(setOf(1, 2, 3), setOf(1, 2, 3))
	var got []Entity
	for e := range v.All() {
		got = append(got, e)
		if len(got) == 2 {
			break
		}
	}
	assert.Len(t, got, 2)
}

func TestEachPositionVelocity(t *testing.T) {
	m := NewManager(Discard, 0)
	e0, e1, e2 := m.Create(), m.Create(), m.Create()
	_, _ = Assign(m, e0, position{X: 0, Y: 0})
	_, _ = Assign(m, e1, position{X: 1, Y: 1})
	_, _ = Assign(m, e1, velocity{DX: 10, DY: 10})
	_, _ = Assign(m, e2, velocity{DX: 2, DY: 2})

	var seen []Entity
	Each2(m, func(e Entity, p *position, v *velocity) {
		seen = append(seen, e)
		assert.Equal(t, position{X: 1, Y: 1}, *p)
		assert.Equal(t, velocity{DX: 10, DY: 10}, *v)
	})

	assert.Equal(t, []Entity{e1}, seen)
}

func TestEachMutatesInPlace(t *testing.T) {
	m := NewManager(Discard, 0)
	e := m.Create()
	_, _ = Assign(m, e, position{X: 1})
	_, _ = Assign(m, e, velocity{DX: 2})

	Each2(m, func(_ Entity, p *position, v *velocity) {
		p.X += v.DX
	})

	p, err := Get[position](m, e)
	require.NoError(t, err)
	assert.Equal(t, 3.0, p.X)
}

func TestEachThreeAndFour(t *testing.T) {
	m := NewManager(Discard, 0)
	var full Entity
	for i := 0; i < 5; i++ {
		e := m.Create()
		_, _ = Assign(m, e, position{X: float64(i)})
		if i%2 == 0 {
			_, _ = Assign(m, e, velocity{})
		}
		if i == 4 {
			_, _ = Assign(m, e, health{HP: 4})
			_, _ = Assign(m, e, tag{})
			full = e
		}
	}

	n := 0
	Each3(m, func(e Entity, p *position, _ *velocity, h *health) {
		n++
		assert.Equal(t, full, e)
		assert.Equal(t, 4.0, p.X)
		assert.Equal(t, 4, h.HP)
	})
	assert.Equal(t, 1, n)

	n = 0
	Each4(m, func(Entity, *position, *velocity, *health, *tag) { n++ })
	assert.Equal(t, 1, n)

	n = 0
	Each1(m, func(Entity, *position) { n++ })
	assert.Equal(t, 5, n)
}

func TestCollectThenMutate(t *testing.T) {
	m := NewManager(Discard, 0)
	for i := 0; i < 4; i++ {
		e := m.Create()
		_, _ = Assign(m, e, position{})
		_, _ = Assign(m, e, velocity{})
	}

	ids := NewView(CollectionOf[position](m), CollectionOf[velocity](m)).Collect()
	for _, e := range ids {
		_, err := Remove[velocity](m, e)
		require.NoError(t, err)
	}

	assert.Zero(t, Count[velocity](m))
	assert.Equal(t, 4, Count[position](m))
}
