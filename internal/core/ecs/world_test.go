package ecs

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type health struct{ HP float32 }

func TestCommandsInvisibleUntilMaintain(t *testing.T) {
	w := NewWorld()
	pos := Register[position](w)
	hp := Register[health](w)

	cmds := w.Commands()
	id := cmds.Create()
	InsertLater(cmds, id, position{X: 4})
	InsertLater(cmds, id, health{HP: 100})

	assert.True(t, w.Alive(id), "reserved ids are alive")
	assert.False(t, pos.Has(id))
	assert.False(t, hp.Has(id))
	assert.Equal(t, []CommandKind{CmdCreateEntity, CmdInsertComponent, CmdInsertComponent}, cmds.Pending())

	stats := w.Maintain()
	assert.Equal(t, 3, stats.Commands)
	assert.Equal(t, 0, cmds.Len())

	p, ok := pos.Get(id)
	require.True(t, ok)
	assert.Equal(t, float32(4), p.X)
	h, ok := hp.Get(id)
	require.True(t, ok)
	assert.Equal(t, float32(100), h.HP)
}

func TestCommandsDeleteAndRemove(t *testing.T) {
	w := NewWorld()
	pos := Register[position](w)
	hp := Register[health](w)

	a := w.CreateEntity()
	b := w.CreateEntity()
	require.NoError(t, Insert(w, a, position{}))
	require.NoError(t, Insert(w, a, health{}))
	require.NoError(t, Insert(w, b, position{}))

	cmds := w.Commands()
	RemoveLater[health](cmds, a)
	cmds.Delete(b)

	assert.True(t, hp.Has(a))
	assert.True(t, w.Alive(b), "queued delete waits for maintain")

	stats := w.Maintain()
	assert.False(t, hp.Has(a))
	assert.True(t, pos.Has(a))
	assert.False(t, w.Alive(b))
	assert.Equal(t, 1, stats.Released)
	assert.Equal(t, 1, pos.Len())
}

func TestInsertAfterDeleteIsDropped(t *testing.T) {
	w := NewWorld()
	pos := Register[position](w)

	cmds := w.Commands()
	id := cmds.Create()
	w.Delete(id)
	InsertLater(cmds, id, position{})
	w.Maintain()

	assert.Equal(t, 0, pos.Len())
}

func TestDeleteReleasesSlotAtMaintain(t *testing.T) {
	w := NewWorld()
	pos := Register[position](w)
	id := w.CreateEntity()
	require.NoError(t, Insert(w, id, position{X: 1}))

	assert.True(t, w.Delete(id))
	assert.False(t, w.Delete(id))
	w.Maintain()

	reused := w.CreateEntity()
	assert.Equal(t, id.Index(), reused.Index())
	_, ok := pos.Get(reused)
	assert.False(t, ok, "recycled slot starts empty")
	assert.ErrorIs(t, Insert(w, id, position{}), ErrStaleEntity)
}

func TestCommandsConcurrentProducers(t *testing.T) {
	w := NewWorld()
	pos := Register[position](w)
	cmds := w.Commands()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				id := cmds.Create()
				InsertLater(cmds, id, position{X: float32(i)})
			}
		}()
	}
	wg.Wait()
	w.Maintain()

	assert.Equal(t, 400, pos.Len())
}

func TestResources(t *testing.T) {
	w := NewWorld()
	assert.False(t, HasResource[health](w))
	_, ok := TryFetch[health](w)
	assert.False(t, ok)
	assert.Panics(t, func() { Fetch[health](w) })

	InsertResource(w, health{HP: 3})
	Fetch[health](w).HP = 7
	assert.Equal(t, float32(7), Fetch[health](w).HP)
}
