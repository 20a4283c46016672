package level

import (
	"github.com/milk9111/bananarun/content"
	"github.com/milk9111/bananarun/control"
	"github.com/milk9111/bananarun/settings"
)

// Physics is what the runtime needs from the physics collaborator.
type Physics interface {
	control.Body
	SetGravity(y float64)
	Pause()
	Resume()
}

// Catalog resolves level definitions and the level order.
type Catalog interface {
	Lookup(id string) *content.Level
	NextLevelID(id string, role settings.Role) (string, bool)
}
