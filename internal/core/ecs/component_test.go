package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct{ X, Y float32 }
type velocity struct{ DX, DY float32 }
type tag struct{}
type frozen struct{}

func TestStoreInsertGetRemove(t *testing.T) {
	s := NewStore[position]()
	a, b := NewEntityID(0, 1), NewEntityID(1, 1)

	s.Insert(a, position{X: 1})
	s.Insert(b, position{X: 2})
	require.Equal(t, 2, s.Len())

	p, ok := s.Get(a)
	require.True(t, ok)
	p.X = 10
	p, _ = s.Get(a)
	assert.Equal(t, float32(10), p.X, "Get hands out a pointer into the store")

	s.Remove(a)
	assert.False(t, s.Has(a))
	p, ok = s.Get(b)
	require.True(t, ok, "swap-remove keeps the moved entry reachable")
	assert.Equal(t, float32(2), p.X)
	s.Remove(a) // no-op
	assert.Equal(t, 1, s.Len())
}

func TestStoreInsertReplaces(t *testing.T) {
	s := NewStore[position]()
	id := NewEntityID(0, 1)
	s.Insert(id, position{X: 1})
	s.Insert(id, position{X: 5})

	assert.Equal(t, 1, s.Len())
	p, _ := s.Get(id)
	assert.Equal(t, float32(5), p.X)
}

func TestStoreEachKeepsInsertionOrder(t *testing.T) {
	s := NewStore[position]()
	for i := uint32(0); i < 5; i++ {
		s.Insert(NewEntityID(i, 1), position{X: float32(i)})
	}

	var got []float32
	s.Each(func(_ EntityID, p *position) { got = append(got, p.X) })
	assert.Equal(t, []float32{0, 1, 2, 3, 4}, got)
}

func TestStoreHidesDeletedEntities(t *testing.T) {
	w := NewWorld()
	s := Register[position](w)
	a, b := w.CreateEntity(), w.CreateEntity()
	require.NoError(t, Insert(w, a, position{}))
	require.NoError(t, Insert(w, b, position{}))

	w.Delete(a)
	_, ok := s.Get(a)
	assert.False(t, ok)

	n := 0
	s.Each(func(EntityID, *position) { n++ })
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, s.Len(), "values stay until maintain")

	w.Maintain()
	assert.Equal(t, 1, s.Len())
}

func TestEach2InnerJoin(t *testing.T) {
	w := NewWorld()
	pos := Register[position](w)
	vel := Register[velocity](w)

	both := w.CreateEntity()
	onlyPos := w.CreateEntity()
	onlyVel := w.CreateEntity()
	require.NoError(t, Insert(w, both, position{X: 1}))
	require.NoError(t, Insert(w, both, velocity{DX: 2}))
	require.NoError(t, Insert(w, onlyPos, position{}))
	require.NoError(t, Insert(w, onlyVel, velocity{}))

	var seen []EntityID
	Each2(pos, vel, func(id EntityID, p *position, v *velocity) {
		seen = append(seen, id)
		p.X += v.DX
	})
	assert.Equal(t, []EntityID{both}, seen)
	p, _ := pos.Get(both)
	assert.Equal(t, float32(3), p.X)
}

func TestEachWithoutFilter(t *testing.T) {
	w := NewWorld()
	pos := Register[position](w)
	vel := Register[velocity](w)
	ice := Register[frozen](w)

	moving, still := w.CreateEntity(), w.CreateEntity()
	for _, id := range []EntityID{moving, still} {
		require.NoError(t, Insert(w, id, position{}))
		require.NoError(t, Insert(w, id, velocity{}))
	}
	require.NoError(t, Insert(w, still, frozen{}))

	var seen []EntityID
	Each2(pos, vel, func(id EntityID, _ *position, _ *velocity) {
		seen = append(seen, id)
	}, Without(ice)...)
	assert.Equal(t, []EntityID{moving}, seen)
}

func TestEach3AndEach4(t *testing.T) {
	w := NewWorld()
	pos := Register[position](w)
	vel := Register[velocity](w)
	tags := Register[tag](w)
	ice := Register[frozen](w)

	full := w.CreateEntity()
	partial := w.CreateEntity()
	for _, id := range []EntityID{full, partial} {
		require.NoError(t, Insert(w, id, position{}))
		require.NoError(t, Insert(w, id, velocity{}))
	}
	require.NoError(t, Insert(w, full, tag{}))
	require.NoError(t, Insert(w, full, frozen{}))

	n3 := 0
	Each3(pos, vel, tags, func(id EntityID, _ *position, _ *velocity, _ *tag) {
		assert.Equal(t, full, id)
		n3++
	})
	assert.Equal(t, 1, n3)

	n4 := 0
	Each4(pos, vel, tags, ice, func(EntityID, *position, *velocity, *tag, *frozen) { n4++ })
	assert.Equal(t, 1, n4)

	n3 = 0
	Each3(pos, vel, tags, func(EntityID, *position, *velocity, *tag) { n3++ }, Without(ice)...)
	assert.Equal(t, 0, n3)
}
