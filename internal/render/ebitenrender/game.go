package ebitenrender

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"github.com/ld49/drift/internal/app"
	"github.com/ld49/drift/internal/resource"
)

var keyNames = map[ebiten.Key]string{
	ebiten.KeyArrowUp:     "Up",
	ebiten.KeyArrowDown:   "Down",
	ebiten.KeyArrowLeft:   "Left",
	ebiten.KeyArrowRight:  "Right",
	ebiten.KeyEnter:       "Enter",
	ebiten.KeyNumpadEnter: "Enter",
	ebiten.KeySpace:       "Space",
}

func keyName(k ebiten.Key) string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return k.String()
}

// Game adapts an App to ebiten's game loop: input and elapsed time go in on
// Update, the renderer's latest frame comes out on Draw.
type Game struct {
	app      *app.App
	renderer *Renderer
	log      *zap.Logger
	face     text.Face

	last   time.Time
	keys   []ebiten.Key
	width  int
	height int
}

func NewGame(a *app.App, r *Renderer, log *zap.Logger) *Game {
	return &Game{
		app:      a,
		renderer: r,
		log:      log,
		face:     text.NewGoXFace(basicfont.Face7x13),
	}
}

// Run opens the window and blocks until it is closed or the simulation fails.
func Run(g *Game, title string, width, height int) error {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.app.PushKey(true, keyName(k))
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.app.PushKey(false, keyName(k))
	}

	now := time.Now()
	if g.last.IsZero() {
		g.last = now
	}
	elapsed := now.Sub(g.last)
	g.last = now

	if _, err := g.app.Frame(elapsed); err != nil {
		g.log.Error("frame failed", zap.Error(err))
		return err
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	f := g.renderer.paint(screen)

	// Health bar.
	const barW, barH = 200, 8
	vector.DrawFilledRect(screen, 10, 10, barW, barH, color.RGBA{R: 80, A: 255}, false)
	vector.DrawFilledRect(screen, 10, 10, barW*f.Scene.PlayerHealth, barH, color.RGBA{G: 200, B: 80, A: 255}, false)

	var msg string
	switch st := g.app.State(); st.Phase {
	case resource.PhaseInit:
		msg = "DRIFT - press Enter to launch"
	case resource.PhaseEnd:
		msg = "hull breached - press Enter"
	default:
		msg = fmt.Sprintf("run %s", st.Run.String()[:8])
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(10, 24)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, msg, g.face, op)
}

// Layout keeps one screen pixel per world unit and reports size changes to
// the simulation.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.app.PushResize(uint32(outsideWidth), uint32(outsideHeight))
	}
	return outsideWidth, outsideHeight
}
