// Package ebitenrender is the windowed frontend. Sprites are drawn as tinted
// quads; there is no texture atlas.
package ebitenrender

import (
	"image/color"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ld49/drift/internal/render"
)

var palette = []color.RGBA{
	{R: 0xf0, G: 0xf0, B: 0xff, A: 0xff}, // player
	{R: 0x40, G: 0xe0, B: 0x70, A: 0xff}, // repair pack
	{R: 0x9a, G: 0x8c, B: 0x7a, A: 0xff}, // dust / small rock
	{R: 0x7a, G: 0x6a, B: 0x5a, A: 0xff},
	{R: 0x5c, G: 0x50, B: 0x48, A: 0xff},
}

var backgrounds = []color.RGBA{
	{R: 0x06, G: 0x08, B: 0x18, A: 0xff},
	{R: 0x08, G: 0x0a, B: 0x1c, A: 0xff},
	{R: 0x0a, G: 0x0c, B: 0x20, A: 0xff},
	{R: 0x08, G: 0x0a, B: 0x1c, A: 0xff},
}

// Renderer receives frames from the render dispatcher and keeps the latest
// one for ebiten's Draw. Both run on ebiten's game goroutine in practice; the
// mutex covers the window-closing path.
type Renderer struct {
	mu     sync.Mutex
	frame  render.Frame
	width  uint32
	height uint32
	pixel  *ebiten.Image
}

func NewRenderer(width, height uint32) *Renderer {
	px := ebiten.NewImage(1, 1)
	px.Fill(color.White)
	return &Renderer{width: width, height: height, pixel: px}
}

func (r *Renderer) Resize(width, height uint32) {
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
}

// Draw copies f; the dispatcher reuses the sprite slice.
func (r *Renderer) Draw(f render.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sprites := append(r.frame.Sprites[:0], f.Sprites...)
	r.frame = f
	r.frame.Sprites = sprites
	return nil
}

func (r *Renderer) paint(screen *ebiten.Image) render.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	screen.Fill(backgrounds[int(r.frame.Scene.Background)%len(backgrounds)])
	hw, hh := float64(r.width)/2, float64(r.height)/2
	for _, s := range r.frame.Sprites {
		op := &ebiten.DrawImageOptions{}
		op.GeoM = quad(s.Model, hw, hh)
		op.ColorScale.ScaleWithColor(palette[int(s.Index)%len(palette)])
		screen.DrawImage(r.pixel, op)
	}
	return r.frame
}

// quad maps the 1x1 pixel image onto the unit square placed by model, in a
// screen whose origin is the top-left corner and whose y axis points down.
func quad(m mgl32.Mat4, hw, hh float64) ebiten.GeoM {
	m00, m01, m03 := float64(m.At(0, 0)), float64(m.At(0, 1)), float64(m.At(0, 3))
	m10, m11, m13 := float64(m.At(1, 0)), float64(m.At(1, 1)), float64(m.At(1, 3))

	var g ebiten.GeoM
	g.SetElement(0, 0, m00)
	g.SetElement(0, 1, -m01)
	g.SetElement(0, 2, hw+m03-0.5*m00+0.5*m01)
	g.SetElement(1, 0, -m10)
	g.SetElement(1, 1, m11)
	g.SetElement(1, 2, hh-m13+0.5*m10-0.5*m11)
	return g
}
