package termrender

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ld49/drift/internal/render"
	"github.com/ld49/drift/internal/resource"
)

func TestDrawPlacesSprites(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	defer sim.Fini()
	sim.SetSize(80, 25)

	s := NewScreen(sim, 800, 480)
	err := s.Draw(render.Frame{
		Sprites: []render.Sprite{
			{Index: 0, Model: mgl32.Translate3D(0, 0, -1)},
			{Index: 1, Model: mgl32.Translate3D(-400, 240, -1)},
			{Index: 2, Model: mgl32.Translate3D(5000, 0, -1)},
		},
		Scene: resource.SceneState{PlayerHealth: 0.5},
	})
	require.NoError(t, err)

	r, _, _, _ := sim.GetContent(40, 13)
	assert.Equal(t, 'A', r)
	r, _, _, _ = sim.GetContent(0, 1)
	assert.Equal(t, '+', r)
	r, _, _, _ = sim.GetContent(0, 0)
	assert.Equal(t, '[', r)
	r, _, _, _ = sim.GetContent(10, 0)
	assert.Equal(t, '#', r)
	r, _, _, _ = sim.GetContent(11, 0)
	assert.Equal(t, '-', r)
}

func TestDrawWithoutRoomIsTransient(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	defer sim.Fini()
	sim.SetSize(80, 1)

	err := NewScreen(sim, 800, 480).Draw(render.Frame{})
	assert.True(t, render.Transient(err))
}
