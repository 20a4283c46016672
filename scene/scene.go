// Package scene holds the contract between the director and the scenes it
// runs.
package scene

import (
	"github.com/milk9111/bananarun/collision"
	"github.com/milk9111/bananarun/control"
	"github.com/milk9111/bananarun/settings"
)

// Kind names the target of a scene request.
type Kind int

const (
	None Kind = iota
	// Level starts LevelID with Role.
	Level
	// Encounter starts the secret fight with Role.
	Encounter
	Win
	Menu
)

func (k Kind) String() string {
	switch k {
	case Level:
		return "level"
	case Encounter:
		return "encounter"
	case Win:
		return "win"
	case Menu:
		return "menu"
	default:
		return "none"
	}
}

// Request asks the director to replace the running scene.
type Request struct {
	Kind    Kind
	LevelID string
	Role    settings.Role
}

func (r Request) Pending() bool {
	return r.Kind != None
}

// Scene is one running simulation. The director ticks exactly one scene.
type Scene interface {
	Name() string
	Tick(dtMs float64, in control.State, contacts []collision.Contact)
	// Colliders lists the boxes the physics collaborator tests against
	// the player and the platforms.
	Colliders() []collision.Box
	TogglePause()
	Paused() bool
	Restart()
	Skip()
	SecretEncounter(role settings.Role)
	Leave()
	// Request returns and clears the scene's pending request.
	Request() Request
	Teardown()
}
