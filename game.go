package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/collision"
	"github.com/milk9111/bananarun/common"
	"github.com/milk9111/bananarun/content"
	"github.com/milk9111/bananarun/game"
	"github.com/rs/zerolog"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = common.ViewWidth
	baseHeight = common.ViewHeight
)

var groupColors = map[collision.Group]color.RGBA{
	collision.GroupHazard:       colornames.Orangered,
	collision.GroupEnemyShot:    colornames.Gold,
	collision.GroupPlayerShot:   colornames.Yellow,
	collision.GroupCheckpoint:   colornames.Lightskyblue,
	collision.GroupSpring:       colornames.Limegreen,
	collision.GroupGoal:         colornames.Gold,
	collision.GroupGroundDanger: colornames.Darkred,
	collision.GroupBoss:         colornames.Mediumpurple,
	collision.GroupPillar:       colornames.Orange,
}

// viewer is a scene with a camera.
type viewer interface {
	View() cp.Vector
}

type Game struct {
	frames int

	director *game.Director
	input    *Input
	hud      *HUD
	pauseUI  *ebitenui.UI
	watcher  *content.Watcher
	log      zerolog.Logger
}

func NewGame(director *game.Director, hud *HUD, watcher *content.Watcher, logger zerolog.Logger) *Game {
	g := &Game{
		director: director,
		input:    NewInput(),
		hud:      hud,
		watcher:  watcher,
		log:      logger,
	}
	resumeThen := func(cmd func()) func() {
		return func() {
			director.TogglePause()
			if cmd != nil {
				cmd()
			}
		}
	}
	g.pauseUI = NewPauseUI(PauseActions{
		Resume:  resumeThen(nil),
		Restart: resumeThen(director.Restart),
		Leave:   resumeThen(director.Leave),
	})
	return g
}

func (g *Game) view() cp.Vector {
	if v, ok := g.director.Scene().(viewer); ok {
		return v.View()
	}
	return cp.Vector{}
}

func (g *Game) Update() error {
	g.frames++
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	g.drainReloads()

	dt := 1000 / float64(ebiten.TPS())
	in := g.input.Sample(g.view())
	g.director.Frame(dt, in)
	g.hud.Update(dt)

	if scene := g.director.Scene(); scene != nil && scene.Paused() {
		g.pauseUI.Update()
	}
	return nil
}

func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.director.Reload(name); err != nil {
				g.log.Error().Err(err).Str("file", name).Msg("content reload failed")
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn().Err(err).Msg("content watcher")
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x1b, G: 0x2a, B: 0x1f, A: 0xff})
	view := g.view()

	if pw := g.director.Physics(); pw != nil {
		for _, p := range pw.Platforms() {
			drawBox(screen, p, view, colornames.Saddlebrown, true)
		}
		if scene := g.director.Scene(); scene != nil {
			for _, b := range scene.Colliders() {
				c, ok := groupColors[b.Group]
				if !ok {
					c = colornames.White
				}
				drawBox(screen, b, view, c, b.Group == collision.GroupPillar || b.Group == collision.GroupBoss)
			}
		}
		drawBox(screen, pw.PlayerBox(), view, colornames.Sandybrown, true)
	}

	g.hud.DrawWorld(screen, view.X, view.Y)
	g.hud.Draw(screen)
	if g.hud.Paused() {
		g.pauseUI.Draw(screen)
	}
}

func drawBox(screen *ebiten.Image, b collision.Box, view cp.Vector, c color.RGBA, fill bool) {
	bb := b.BB()
	x, y := float32(bb.L-view.X), float32(bb.B-view.Y)
	w, h := float32(b.Width), float32(b.Height)
	if fill {
		vector.FillRect(screen, x, y, w, h, c, false)
		return
	}
	vector.StrokeRect(screen, x, y, w, h, 2, c, false)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
