package termrender

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/ld49/drift/internal/app"
	"github.com/ld49/drift/internal/resource"
)

const (
	frameInterval = time.Second / 60
	// Terminals only report key presses. A key counts as held until it stops
	// auto-repeating for this long.
	releaseAfter = 150 * time.Millisecond

	cellWidth  = 10 // world units per column
	cellHeight = 20 // world units per row
)

// Run drives a until ctx is cancelled, Escape or Ctrl-C is pressed, or a
// frame fails.
func Run(ctx context.Context, a *app.App, scr tcell.Screen, s *Screen, log *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 64)
	go func() {
		defer close(events)
		for {
			ev := scr.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	held := make(map[string]time.Time)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				name := keyName(ev)
				if _, down := held[name]; !down {
					a.PushKey(true, name)
				}
				held[name] = time.Now()
			case *tcell.EventResize:
				cols, rows := ev.Size()
				a.PushResize(uint32(cols*cellWidth), uint32(max(rows-1, 0)*cellHeight))
				log.Debug("terminal resized", zap.Int("cols", cols), zap.Int("rows", rows))
			}

		case now := <-ticker.C:
			for name, at := range held {
				if now.Sub(at) >= releaseAfter {
					a.PushKey(false, name)
					delete(held, name)
				}
			}
			s.SetStatus(status(a.State()))
			if _, err := a.Frame(now.Sub(last)); err != nil {
				return fmt.Errorf("frame: %w", err)
			}
			last = now
		}
	}
}

func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "Up"
	case tcell.KeyDown:
		return "Down"
	case tcell.KeyLeft:
		return "Left"
	case tcell.KeyRight:
		return "Right"
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return "Space"
		}
		return string(ev.Rune())
	}
	return ev.Name()
}

func status(st resource.GameState) string {
	switch st.Phase {
	case resource.PhaseInit:
		return "DRIFT - press Enter to launch, Esc to quit"
	case resource.PhaseEnd:
		return "hull breached - press Enter"
	}
	return "run " + st.Run.String()[:8]
}
