// Package termrender is the terminal frontend built on tcell. Each sprite
// becomes one character cell.
package termrender

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/ld49/drift/internal/render"
	"github.com/ld49/drift/internal/resource"
)

var glyphs = []struct {
	r     rune
	style tcell.Style
}{
	{'A', tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)},
	{'+', tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)},
	{'.', tcell.StyleDefault.Foreground(tcell.NewRGBColor(154, 140, 122))},
	{'o', tcell.StyleDefault.Foreground(tcell.NewRGBColor(122, 106, 90))},
	{'O', tcell.StyleDefault.Foreground(tcell.NewRGBColor(92, 80, 72))},
}

var backgrounds = []tcell.Color{
	tcell.NewRGBColor(6, 8, 24),
	tcell.NewRGBColor(8, 10, 28),
	tcell.NewRGBColor(10, 12, 32),
	tcell.NewRGBColor(8, 10, 28),
}

// Screen draws frames onto a tcell screen. The world window is stretched to
// fill the terminal; the top row is the status line.
type Screen struct {
	screen tcell.Screen
	width  uint32 // world units
	height uint32
	status string
}

func NewScreen(s tcell.Screen, width, height uint32) *Screen {
	return &Screen{screen: s, width: width, height: height}
}

func (s *Screen) Resize(width, height uint32) {
	s.width, s.height = width, height
	s.screen.Sync()
}

// SetStatus replaces the text drawn after the health bar.
func (s *Screen) SetStatus(msg string) { s.status = msg }

func (s *Screen) Draw(f render.Frame) error {
	cols, rows := s.screen.Size()
	if cols <= 0 || rows <= 1 || s.width == 0 || s.height == 0 {
		return render.ErrSurfaceOutdated
	}
	bg := tcell.StyleDefault.Background(backgrounds[int(f.Scene.Background)%len(backgrounds)])
	s.screen.SetStyle(bg)
	s.screen.Clear()

	hw, hh := float32(s.width)/2, float32(s.height)/2
	for _, sp := range f.Sprites {
		x, y := sp.Model.At(0, 3), sp.Model.At(1, 3)
		col := int((x + hw) / float32(s.width) * float32(cols))
		row := 1 + int((hh-y)/float32(s.height)*float32(rows-1))
		if col < 0 || col >= cols || row < 1 || row >= rows {
			continue
		}
		g := glyphs[int(sp.Index)%len(glyphs)]
		s.screen.SetContent(col, row, g.r, nil, g.style.Background(backgrounds[int(f.Scene.Background)%len(backgrounds)]))
	}

	s.drawText(0, 0, statusLine(f.Scene, s.status), tcell.StyleDefault.Foreground(tcell.ColorYellow))
	s.screen.Show()
	return nil
}

func (s *Screen) drawText(x, y int, msg string, style tcell.Style) {
	for i, r := range []rune(msg) {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

func statusLine(scene resource.SceneState, status string) string {
	const width = 20
	filled := int(scene.PlayerHealth*width + 0.5)
	return fmt.Sprintf("[%s%s] %s", strings.Repeat("#", filled), strings.Repeat("-", width-filled), status)
}
