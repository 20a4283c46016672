package game

import (
	"github.com/milk9111/bananarun/collision"
	"github.com/milk9111/bananarun/control"
	"github.com/milk9111/bananarun/notify"
	"github.com/milk9111/bananarun/scene"
	"github.com/milk9111/bananarun/settings"
)

type cardKind int

const (
	cardMenu cardKind = iota
	cardWin
)

const (
	menuText = "Banana Run: R start, T secret fight"
	winText  = "You got the banana back! R play again, ESC menu"
)

// card is a static screen between runs. It only waits for a command.
type card struct {
	kind    cardKind
	role    settings.Role
	first   string
	request scene.Request
}

func newCard(kind cardKind, role settings.Role, first string, hooks notify.Hooks) *card {
	c := &card{kind: kind, role: role, first: first}
	text := menuText
	if kind == cardWin {
		text = winText
	}
	hooks.Banner(text, 0)
	return c
}

func (c *card) Name() string {
	if c.kind == cardWin {
		return "win"
	}
	return "menu"
}

func (c *card) Tick(float64, control.State, []collision.Contact) {}
func (c *card) Colliders() []collision.Box                       { return nil }
func (c *card) TogglePause()                                     {}
func (c *card) Paused() bool                                     { return false }
func (c *card) Teardown()                                        {}

// Restart starts a new run from the first level.
func (c *card) Restart() {
	if c.first == "" {
		return
	}
	c.request = scene.Request{Kind: scene.Level, LevelID: c.first, Role: c.role}
}

func (c *card) Skip() {
	c.Restart()
}

func (c *card) SecretEncounter(role settings.Role) {
	if role == "" {
		role = c.role
	}
	c.request = scene.Request{Kind: scene.Encounter, Role: role}
}

func (c *card) Leave() {
	if c.kind == cardMenu {
		return
	}
	c.request = scene.Request{Kind: scene.Menu, Role: c.role}
}

func (c *card) Request() scene.Request {
	req := c.request
	c.request = scene.Request{}
	return req
}
