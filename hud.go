package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/bananarun/common"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	flashMs  = 600.0
	impactMs = 250.0
)

type impact struct {
	x, y   float64
	leftMs float64
}

// HUD receives the scene notices and draws them over the world.
type HUD struct {
	face ebtext.Face

	hearts, maxHearts int
	banner            string
	bannerLeftMs      float64
	bannerSticky      bool
	flash             string
	flashLeftMs       float64
	paused            bool
	impacts           []impact
	opponent          int
	opponentLabel     string
	scene             string
}

func NewHUD() *HUD {
	return &HUD{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (h *HUD) HeartsChanged(hearts, maxHearts int) {
	h.hearts, h.maxHearts = hearts, maxHearts
}

// Banner shows text for durationMs; 0 keeps it until the next banner.
func (h *HUD) Banner(text string, durationMs float64) {
	h.banner = text
	h.bannerLeftMs = durationMs
	h.bannerSticky = durationMs <= 0
}

func (h *HUD) CheckpointFlash(id string) {
	h.flash = id
	h.flashLeftMs = flashMs
}

func (h *HUD) PauseVisible(visible bool) {
	h.paused = visible
}

func (h *HUD) Impact(x, y float64) {
	h.impacts = append(h.impacts, impact{x: x, y: y, leftMs: impactMs})
}

func (h *HUD) OpponentHealth(health int, label string) {
	h.opponent, h.opponentLabel = health, label
}

// SceneChanged clears everything scene-scoped.
func (h *HUD) SceneChanged(name string) {
	h.scene = name
	h.hearts, h.maxHearts = 0, 0
	h.opponentLabel = ""
	h.impacts = h.impacts[:0]
	h.flash = ""
	h.paused = false
}

// Update ages the timed notices by dt milliseconds.
func (h *HUD) Update(dt float64) {
	if !h.bannerSticky && h.bannerLeftMs > 0 {
		h.bannerLeftMs -= dt
		if h.bannerLeftMs <= 0 {
			h.banner = ""
		}
	}
	if h.flashLeftMs > 0 {
		h.flashLeftMs -= dt
	}
	kept := h.impacts[:0]
	for _, im := range h.impacts {
		im.leftMs -= dt
		if im.leftMs > 0 {
			kept = append(kept, im)
		}
	}
	h.impacts = kept
}

func (h *HUD) Paused() bool { return h.paused }

// DrawWorld draws the notices that live in world space.
func (h *HUD) DrawWorld(screen *ebiten.Image, camX, camY float64) {
	for _, im := range h.impacts {
		r := float32(6 + 10*(1-im.leftMs/impactMs))
		vector.StrokeCircle(screen, float32(im.x-camX), float32(im.y-camY), r, 2, colornames.Orange, false)
	}
}

func (h *HUD) Draw(screen *ebiten.Image) {
	if h.maxHearts > 0 {
		hearts := strings.Repeat("#", max(0, h.hearts)) + strings.Repeat("-", max(0, h.maxHearts-h.hearts))
		h.text(screen, "Hearts ["+hearts+"]", 16, 16, colornames.Crimson)
	}
	if h.opponentLabel != "" {
		h.text(screen, fmt.Sprintf("%s %d", h.opponentLabel, h.opponent), common.ViewWidth-180, 16, colornames.Gold)
	}
	if h.flashLeftMs > 0 && h.flash != "" {
		h.text(screen, "Checkpoint "+h.flash, 16, 36, colornames.Lightgreen)
	}
	if h.banner != "" {
		w, _ := ebtext.Measure(h.banner, h.face, 0)
		x := (common.ViewWidth - w) / 2
		vector.FillRect(screen, float32(x-12), 84, float32(w+24), 30, color.RGBA{A: 160}, false)
		h.text(screen, h.banner, x, 92, colornames.White)
	}
	h.text(screen, h.scene, 16, common.ViewHeight-24, colornames.Gray)
}

func (h *HUD) text(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	ebtext.Draw(screen, s, h.face, op)
}
