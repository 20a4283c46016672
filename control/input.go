// Package control holds the per-tick input snapshot and the movement
// controller shared by level and encounter scenes.
package control

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/settings"
)

// State is one tick of sampled input. Pressed/Released fields are edges.
type State struct {
	MoveX        float64
	JumpPressed  bool
	JumpReleased bool
	ThrowPressed bool
	// Pointer is the aim target in world coordinates.
	Pointer cp.Vector

	Pause   bool
	Restart bool
	Skip    bool
	Secret  bool
	Leave   bool
}

// Body is the slice of the physics collaborator the controller drives.
type Body interface {
	Position() cp.Vector
	SetPosition(cp.Vector)
	Velocity() cp.Vector
	SetVelocity(cp.Vector)
	Grounded() bool
}

// PlayerSize is the player's collision box for a role.
func PlayerSize(role settings.Role) cp.Vector {
	if role == settings.RoleSpud {
		return cp.Vector{X: 32, Y: 42}
	}
	return cp.Vector{X: 30, Y: 38}
}
