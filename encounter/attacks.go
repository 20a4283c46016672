package encounter

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/collision"
	"github.com/milk9111/bananarun/common"
	"github.com/milk9111/bananarun/ecs"
	"github.com/milk9111/bananarun/ecs/component"
	"github.com/milk9111/bananarun/ecs/system"
)

func (s *Simulation) spawnShot(group collision.Group, at, vel cp.Vector, ignorePlatforms bool) ecs.Entity {
	e := ecs.CreateEntity(s.world)
	_ = ecs.Add(s.world, e, component.TransformComponent.Kind(), &component.Transform{X: at.X, Y: at.Y, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(s.world, e, component.VelocityComponent.Kind(), &component.Velocity{X: vel.X, Y: vel.Y})
	_ = ecs.Add(s.world, e, component.VisualComponent.Kind(), &component.Visual{Alpha: 1, FlipX: vel.X < 0})
	_ = ecs.Add(s.world, e, component.HazardComponent.Kind(), &component.Hazard{Kind: component.HazardProjectile, SourceID: group.String(), Damage: 1})
	_ = ecs.Add(s.world, e, component.HitboxComponent.Kind(), &component.Hitbox{
		Group:           group,
		Width:           shotSize,
		Height:          shotSize,
		IgnorePlatforms: ignorePlatforms,
	})
	return e
}

// throw launches a banana in the facing direction.
func (s *Simulation) throw(player cp.Vector) {
	dir := 1.0
	if s.facingLeft {
		dir = -1
	}
	at := cp.Vector{X: player.X + dir*throwOffsetX, Y: player.Y + throwOffsetY}
	vel := cp.Vector{
		X: dir * throwSpeed * s.snap.Speed(),
		Y: float64(common.Between(s.rng, -40, 20)),
	}
	s.spawnShot(collision.GroupPlayerShot, at, vel, false)
}

// fireStream sends one fireball from the player toward pointer.
func (s *Simulation) fireStream(player, pointer cp.Vector) {
	start := cp.Vector{X: player.X, Y: player.Y - 10}
	aim := pointer.Sub(start)
	if aim.LengthSq() < 1 {
		aim = cp.Vector{X: 1}
		if s.facingLeft {
			aim.X = -1
		}
	}
	aim = aim.Normalize()

	at := cp.Vector{X: start.X + aim.X*24, Y: start.Y + aim.Y*8}
	s.spawnShot(collision.GroupPlayerShot, at, aim.Mult(streamSpeed*s.snap.Speed()), true)
}

func (s *Simulation) bossPosition() (cp.Vector, bool) {
	t, ok := ecs.Get(s.world, s.boss, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return cp.Vector{X: t.X, Y: t.Y}, true
}

func (s *Simulation) playerPosition() cp.Vector {
	return s.physics.Position()
}

// raisePillar telegraphs a fire pillar at x and raises it after a delay.
func (s *Simulation) raisePillar(x float64) {
	warn := ecs.CreateEntity(s.world)
	_ = ecs.Add(s.world, warn, component.TransformComponent.Kind(), &component.Transform{X: x, Y: groundTopY - 16, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(s.world, warn, component.VisualComponent.Kind(), &component.Visual{Alpha: 0.9})
	_ = ecs.Add(s.world, warn, component.WarningComponent.Kind(), &component.Warning{Radius: pillarWarningR})
	if tw := system.StartTween(s.world, warn, component.TweenAlpha, component.Pose{Alpha: 0}, pillarWarningMs, common.EaseLinear); tw != nil {
		tw.DestroyOnDone = true
	}

	s.clock.After(pillarDelayMs, func() {
		if s.phase != PhaseFighting {
			return
		}
		e := ecs.CreateEntity(s.world)
		_ = ecs.Add(s.world, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: groundTopY - pillarHeight/2, ScaleX: 1, ScaleY: 1})
		_ = ecs.Add(s.world, e, component.VisualComponent.Kind(), &component.Visual{Alpha: 1})
		_ = ecs.Add(s.world, e, component.HazardComponent.Kind(), &component.Hazard{Kind: component.HazardPillar, SourceID: "pillar", Damage: 1})
		_ = ecs.Add(s.world, e, component.HitboxComponent.Kind(), &component.Hitbox{Group: collision.GroupPillar, Width: pillarWidth, Height: pillarHeight})
		_ = ecs.Add(s.world, e, component.TTLComponent.Kind(), &component.TTL{Ms: pillarLifeMs})
		if tw := system.StartTween(s.world, e, component.TweenAlpha, component.Pose{Alpha: pillarFlickerMin}, pillarFlickerMs, common.EaseLinear); tw != nil {
			tw.Yoyo = true
		}
	})
}

// throwBanana is the opponent's throw toward the player's side.
func (s *Simulation) throwBanana() {
	if s.phase != PhaseFighting {
		return
	}
	boss, ok := s.bossPosition()
	if !ok {
		return
	}
	player := s.physics.Position()
	dir := -1.0
	if player.X >= boss.X {
		dir = 1
	}
	if vis, ok := ecs.Get(s.world, s.boss, component.VisualComponent.Kind()); ok {
		vis.FlipX = dir < 0
	}
	at := cp.Vector{X: boss.X + dir*enemyThrowX, Y: boss.Y + enemyThrowY}
	vel := cp.Vector{
		X: dir * enemyThrowSpeed * s.snap.Speed(),
		Y: float64(common.Between(s.rng, -90, 30)),
	}
	s.spawnShot(collision.GroupEnemyShot, at, vel, false)
}

// dodgeTo glides the opponent to a clamped point. The glide replaces the
// idle bob.
func (s *Simulation) dodgeTo(x, y float64) {
	if s.phase != PhaseFighting {
		return
	}
	to := component.Pose{
		X: common.Clamp(x, arenaMinX, arenaMaxX),
		Y: common.Clamp(y, dodgeMinY, dodgeMaxY),
	}
	system.StartTween(s.world, s.boss, component.TweenPosition, to, dodgeDurationMs, common.EaseSineInOut)
}

func (s *Simulation) roll(lo, hi int) int {
	return common.Between(s.rng, lo, hi)
}

func (s *Simulation) scriptLog(msg string) {
	s.log.Debug().Str("script", s.cfg.script).Msg(msg)
}
