// Package physics owns the Chipmunk space that moves the player against the
// static level geometry, and turns scene boxes into contact lists.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/collision"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlayer
)

// Config describes one scene's physical layout.
type Config struct {
	WorldWidth   float64
	WorldHeight  float64
	Gravity      float64
	Platforms    []collision.Box
	Spawn        cp.Vector
	PlayerWidth  float64
	PlayerHeight float64
}

// World is the physics collaborator for a single scene. Units are world
// pixels and pixels per second; Step takes milliseconds.
type World struct {
	space     *cp.Space
	body      *cp.Body
	shape     *cp.Shape
	platforms []collision.Box
	playerW   float64
	playerH   float64
	grounded  bool
	paused    bool
}

func NewWorld(cfg Config) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})

	pw := &World{
		space:     space,
		platforms: append([]collision.Box(nil), cfg.Platforms...),
		playerW:   cfg.PlayerWidth,
		playerH:   cfg.PlayerHeight,
	}
	if pw.playerW <= 0 || pw.playerH <= 0 {
		pw.playerW, pw.playerH = 30, 38
	}
	pw.buildStaticShapes(cfg.WorldWidth, cfg.WorldHeight)
	pw.buildPlayer(cfg.Spawn)
	pw.setupHandlers()
	return pw
}

func (pw *World) buildStaticShapes(worldW, worldH float64) {
	for _, p := range pw.platforms {
		shape := cp.NewBox2(pw.space.StaticBody, p.BB(), 0)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		pw.space.AddShape(shape)
	}

	if worldW <= 0 || worldH <= 0 {
		return
	}
	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(pw.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		pw.space.AddShape(shape)
	}
}

func (pw *World) buildPlayer(spawn cp.Vector) {
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(spawn)
	body.SetAngle(0)
	body.SetAngularVelocity(0)

	shape := cp.NewBox(body, pw.playerW, pw.playerH, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0.02)
	shape.SetCollisionType(collisionTypePlayer)

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	pw.body = body
	pw.shape = shape
}

func (pw *World) setupHandlers() {
	groundHandler := pw.space.NewCollisionHandler(collisionTypePlayer, collisionTypeSolid)
	groundHandler.UserData = pw
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		shapeA, _ := arb.Shapes()
		n := arb.Normal()
		if shapeA != world.shape {
			n = n.Neg()
		}
		// Screen-down coordinates: ground below pushes along +Y.
		if n.Y > 0.5 {
			world.grounded = true
		}
		return true
	}
}

// Step advances the space by dt milliseconds. A paused world does not move.
func (pw *World) Step(dt float64) {
	if pw == nil || pw.space == nil || pw.paused || dt <= 0 {
		return
	}
	pw.grounded = false
	pw.space.Step(dt / 1000)
}

func (pw *World) Pause() {
	if pw != nil {
		pw.paused = true
	}
}

func (pw *World) Resume() {
	if pw != nil {
		pw.paused = false
	}
}

func (pw *World) Paused() bool {
	return pw != nil && pw.paused
}

func (pw *World) SetGravity(y float64) {
	if pw == nil {
		return
	}
	pw.space.SetGravity(cp.Vector{X: 0, Y: y})
}

func (pw *World) Position() cp.Vector {
	if pw == nil || pw.body == nil {
		return cp.Vector{}
	}
	return pw.body.Position()
}

func (pw *World) SetPosition(p cp.Vector) {
	if pw == nil || pw.body == nil {
		return
	}
	pw.body.SetPosition(p)
}

func (pw *World) Velocity() cp.Vector {
	if pw == nil || pw.body == nil {
		return cp.Vector{}
	}
	return pw.body.Velocity()
}

func (pw *World) SetVelocity(v cp.Vector) {
	if pw == nil || pw.body == nil {
		return
	}
	pw.body.SetVelocityVector(v)
}

// Grounded reports whether the last step resolved a contact with ground
// below the player.
func (pw *World) Grounded() bool {
	return pw != nil && pw.grounded
}

// PlayerBox is the player's current collision box.
func (pw *World) PlayerBox() collision.Box {
	return collision.Box{
		Group:  collision.GroupPlayer,
		ID:     "player",
		Center: pw.Position(),
		Width:  pw.playerW,
		Height: pw.playerH,
	}
}

// Platforms returns the static platform boxes.
func (pw *World) Platforms() []collision.Box {
	if pw == nil {
		return nil
	}
	return pw.platforms
}

// Contacts reports the overlaps between the player and actors, and between
// actors and platforms.
func (pw *World) Contacts(actors []collision.Box) []collision.Contact {
	if pw == nil {
		return nil
	}
	return collision.Detect(pw.PlayerBox(), actors, pw.platforms)
}
