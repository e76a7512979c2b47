package game

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/samdwyer/cityhall/internal/ui"
)

const frameInterval = time.Second / 30

// Game runs a session on the terminal.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
	log      zerolog.Logger
	cursor   int
	running  bool
}

// New creates a new game instance on the terminal.
func New(ctx context.Context, cfg Config) (*Game, error) {
	session, err := NewSession(ctx, cfg)
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		session:  session,
		log:      session.log,
		running:  true,
	}, nil
}

// Session returns the session being played.
func (g *Game) Session() *Session {
	return g.session
}

// Run executes the main game loop until the player quits or ctx ends.
// Terminal events arrive from a reader goroutine; everything else happens
// on this goroutine.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	events := g.screen.Events()
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	g.renderer.Render(g.session.Frame(g.cursor))

	for g.running {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			g.handleEvent(ev)
		case now := <-ticker.C:
			g.session.Tick(now.Sub(last))
			last = now
			g.renderer.Render(g.session.Frame(g.cursor))
		}
	}
	return nil
}

// handleEvent processes a single terminal event.
func (g *Game) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ev)
	case *tcell.EventMouse:
		g.handleMouseEvent(ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ev *tcell.EventKey) {
	n := g.session.registry.Len()
	cols := columns(n)

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.moveCursor(-cols)
	case tcell.KeyDown:
		g.moveCursor(cols)
	case tcell.KeyLeft:
		g.moveCursor(-1)
	case tcell.KeyRight:
		g.moveCursor(1)

	case tcell.KeyEnter:
		g.selectDistrict(g.cursor)
	case tcell.KeyTab:
		if actions := len(g.session.Actions()); actions > 0 {
			g.session.FocusAction((g.session.Focused() + 1) % actions)
		}

	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'q' || r == 'Q':
			g.running = false
		case r == ' ':
			g.selectDistrict(g.cursor)
		case r >= '1' && r <= '9':
			g.selectAction(int(r - '1'))
		}
	}
}

// handleMouseEvent maps primary clicks to districts and actions.
func (g *Game) handleMouseEvent(ev *tcell.EventMouse) {
	x, y := ev.Position()
	hit := g.renderer.HitTest(x, y)

	if ev.Buttons()&tcell.Button1 == 0 {
		if hit.Kind == ui.HitAction {
			g.session.FocusAction(hit.Index)
		}
		return
	}

	switch hit.Kind {
	case ui.HitDistrict:
		g.cursor = hit.Index
		g.selectDistrict(hit.Index)
	case ui.HitAction:
		g.selectAction(hit.Index)
	}
}

func (g *Game) moveCursor(delta int) {
	next := g.cursor + delta
	if next >= 0 && next < g.session.registry.Len() {
		g.cursor = next
	}
}

func (g *Game) selectDistrict(index int) {
	if err := g.session.SelectDistrict(index); err != nil {
		g.log.Debug().Err(err).Int("slot", index).Msg("District not selected")
	}
}

func (g *Game) selectAction(index int) {
	if index >= len(g.session.Actions()) {
		return
	}
	if err := g.session.SelectAction(index); err != nil {
		g.log.Debug().Err(err).Int("action", index).Msg("Action not selected")
	}
}
