package level

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/common"
	"github.com/milk9111/bananarun/content"
	"github.com/milk9111/bananarun/ecs"
	"github.com/milk9111/bananarun/ecs/component"
)

const (
	scrollStartYFactor  = 0.62
	scrollTrackYFactor  = 0.65
	respawnScrollFactor = 0.35
	respawnScrollLead   = 110.0

	chaseOffsetX    = 130.0
	chaseOffsetY    = -34.0
	chaseSpawnX     = -140.0
	chaseLag        = 0.1
	chaseHitRadius  = 86.0
	cameraFollowLag = 0.09
)

// Camera is the level's view rectangle origin.
type Camera struct {
	ScrollX float64
	ScrollY float64
}

// follow eases the camera toward the player when nothing forces it.
func (c *Camera) follow(player cp.Vector, worldW, worldH float64) {
	tx := common.Clamp(player.X-common.ViewWidth/2, 0, worldW-common.ViewWidth)
	ty := common.Clamp(player.Y-common.ViewHeight/2, 0, worldH-common.ViewHeight)
	c.ScrollX = common.Lerp(c.ScrollX, tx, cameraFollowLag)
	c.ScrollY = common.Lerp(c.ScrollY, ty, cameraFollowLag)
}

// AutoScroll forces the camera right and kills stragglers. When a chase
// boss is present it trails the lethal boundary.
type AutoScroll struct {
	speed      float64
	failMargin float64
	worldW     float64
	worldH     float64
	world      *ecs.World
	boss       ecs.Entity
}

func newAutoScroll(cfg content.AutoScroll, worldW, worldH float64, w *ecs.World) *AutoScroll {
	return &AutoScroll{
		speed:      cfg.Speed,
		failMargin: cfg.FailMargin,
		worldW:     worldW,
		worldH:     worldH,
		world:      w,
	}
}

// start positions the camera for the level's first frame.
func (a *AutoScroll) start(cam *Camera, player cp.Vector) {
	cam.ScrollX = 0
	cam.ScrollY = max(0, player.Y-common.ViewHeight*scrollStartYFactor)
}

func (a *AutoScroll) spawnChaseBoss(player cp.Vector) {
	a.boss = ecs.CreateEntity(a.world)
	_ = ecs.Add(a.world, a.boss, component.TransformComponent.Kind(), &component.Transform{
		X:      player.X + chaseSpawnX,
		Y:      player.Y + chaseOffsetY,
		ScaleX: 1,
		ScaleY: 1,
	})
	_ = ecs.Add(a.world, a.boss, component.VisualComponent.Kind(), &component.Visual{Alpha: 1})
	_ = ecs.Add(a.world, a.boss, component.BossComponent.Kind(), &component.Boss{Lag: chaseLag})
}

// ChaseBoss is the pursuing boss, if any.
func (a *AutoScroll) ChaseBoss() (ecs.Entity, bool) {
	return a.boss, ecs.IsAlive(a.world, a.boss)
}

// LethalX is the boundary the player must stay right of.
func (a *AutoScroll) LethalX(cam Camera) float64 {
	return cam.ScrollX + a.failMargin
}

// update scrolls by dt and reports whether the player is behind the lethal
// boundary and whether the chase boss caught them.
func (a *AutoScroll) update(cam *Camera, dtMs, speed float64, player cp.Vector) (behind, caught bool) {
	cam.ScrollX += a.speed * speed * (dtMs / 1000)
	cam.ScrollX = common.Clamp(cam.ScrollX, 0, a.worldW-common.ViewWidth)
	cam.ScrollY = common.Clamp(player.Y-common.ViewHeight*scrollTrackYFactor, 0, a.worldH-common.ViewHeight)

	behind = player.X < a.LethalX(*cam)

	if boss, ok := a.ChaseBoss(); ok {
		target := cp.Vector{X: cam.ScrollX + chaseOffsetX, Y: player.Y + chaseOffsetY}
		if t, ok := ecs.Get(a.world, boss, component.TransformComponent.Kind()); ok {
			lag := chaseLag
			if b, ok := ecs.Get(a.world, boss, component.BossComponent.Kind()); ok && b.Lag > 0 {
				lag = b.Lag
			}
			t.X = target.X
			t.Y = common.Lerp(t.Y, target.Y, lag)
		}
		caught = player.Distance(target) < chaseHitRadius
	}
	return behind, caught
}

// respawnAt moves the camera back for a respawn at spawn and returns the
// player position, pushed clear of the lethal boundary.
func (a *AutoScroll) respawnAt(cam *Camera, spawn cp.Vector) cp.Vector {
	cam.ScrollX = max(0, spawn.X-common.ViewWidth*respawnScrollFactor)
	spawn.X = max(spawn.X, cam.ScrollX+respawnScrollLead)
	return spawn
}
