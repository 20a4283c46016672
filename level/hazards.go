package level

import (
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/clock"
	"github.com/milk9111/bananarun/collision"
	"github.com/milk9111/bananarun/common"
	"github.com/milk9111/bananarun/content"
	"github.com/milk9111/bananarun/ecs"
	"github.com/milk9111/bananarun/ecs/component"
	"github.com/milk9111/bananarun/ecs/system"
	"github.com/milk9111/bananarun/notify"
	"github.com/milk9111/bananarun/settings"
	"github.com/rs/zerolog"
)

// Defaults applied when a hazard leaves a value unset or non-finite.
const (
	patrolSpread       = 70.0
	boulderSpeed       = 110.0
	boulderSpeedCap    = 170.0
	snailSpeed         = 65.0
	snailSpeedCap      = 90.0
	patrolMaxFall      = 700.0
	rainSpread         = 100.0
	rainRespawnMs      = 1500.0
	rainMinIntervalMs  = 110.0
	rainStreams        = 3
	rainDriftMax       = 35
	rainFallSpeed      = 310.0
	rainAccel          = 120.0
	rainWarningMs      = 220.0
	rainWarningAboveY  = 24.0
	rainWarningRadius  = 8.0
	superRainStreams   = 5
	superRainSpacing   = 56.0
	superRainDelayMs   = 0.1
	turretIntervalMs   = 1400.0
	turretShotSpeed    = 280.0
	turretMuzzleX      = 18.0
	turretMuzzleY      = 12.0
	turretShotLift     = -10.0
	turretFlashMs      = 100.0
	impactWarningAlpha = 0.78
)

type hitboxSize struct {
	w, h, offY float64
}

var hitboxes = map[component.HazardKind]hitboxSize{
	component.HazardBoulder:    {w: 36, h: 36},
	component.HazardSnail:      {w: 30, h: 20, offY: 10},
	component.HazardDrop:       {w: 32, h: 32},
	component.HazardProjectile: {w: 20, h: 20},
}

// registrar sets up one hazard definition. platformHandler reacts to a
// hazard actor touching a platform.
type (
	registrar       func(d *HazardDirector, h content.Hazard, snap settings.Snapshot)
	platformHandler func(d *HazardDirector, e ecs.Entity, c collision.Contact)
)

var registrars = map[content.HazardKind]registrar{
	content.HazardFalling: (*HazardDirector).registerRain,
	content.HazardBoulder: (*HazardDirector).registerPatrol,
	content.HazardSnail:   (*HazardDirector).registerPatrol,
	content.HazardTurret:  (*HazardDirector).registerTurret,
}

var platformHandlers = map[component.HazardKind]platformHandler{
	component.HazardDrop:       (*HazardDirector).dropImpact,
	component.HazardProjectile: (*HazardDirector).projectileImpact,
	component.HazardBoulder:    (*HazardDirector).patrolContact,
	component.HazardSnail:      (*HazardDirector).patrolContact,
}

// HazardDirector spawns and steers the level's hazard actors. Actors live
// in the ECS world; generators are clock tasks.
type HazardDirector struct {
	world    *ecs.World
	clock    *clock.Clock
	rng      *rand.Rand
	hooks    notify.Hooks
	log      zerolog.Logger
	gate     func() bool
	player   func() cp.Vector
	settings func() settings.Snapshot
	tasks    []*clock.Task
}

// HazardDeps wires the director to its owner.
type HazardDeps struct {
	World    *ecs.World
	Clock    *clock.Clock
	Rand     *rand.Rand
	Hooks    notify.Hooks
	Logger   zerolog.Logger
	Gate     func() bool
	Player   func() cp.Vector
	Settings func() settings.Snapshot
}

func NewHazardDirector(deps HazardDeps) *HazardDirector {
	d := &HazardDirector{
		world:    deps.World,
		clock:    deps.Clock,
		rng:      deps.Rand,
		hooks:    notify.OrNop(deps.Hooks),
		log:      deps.Logger,
		gate:     deps.Gate,
		player:   deps.Player,
		settings: deps.Settings,
	}
	if d.rng == nil {
		d.rng = common.NewRand(1)
	}
	if d.gate == nil {
		d.gate = func() bool { return true }
	}
	if d.player == nil {
		d.player = func() cp.Vector { return cp.Vector{} }
	}
	if d.settings == nil {
		d.settings = settings.Defaults
	}
	return d
}

// Register resolves h's parameters once and starts its generator.
func (d *HazardDirector) Register(h content.Hazard, snap settings.Snapshot) {
	reg, ok := registrars[h.Kind]
	if !ok {
		d.log.Warn().Str("hazard", h.ID).Str("kind", string(h.Kind)).Msg("unknown hazard kind")
		return
	}
	reg(d, h, snap)
}

// Stop cancels every generator task.
func (d *HazardDirector) Stop() {
	for _, t := range d.tasks {
		t.Cancel()
	}
	d.tasks = nil
}

// OnPlatform applies a hazard↔platform contact.
func (d *HazardDirector) OnPlatform(c collision.Contact) {
	e := ecs.Entity(c.A.Ref)
	hz, ok := ecs.Get(d.world, e, component.HazardComponent.Kind())
	if !ok {
		return
	}
	if fn, ok := platformHandlers[hz.Kind]; ok {
		fn(d, e, c)
	}
}

func resolve(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return common.Finite(*v, def)
}

func (d *HazardDirector) spawnActor(kind component.HazardKind, h content.Hazard, x, y float64) ecs.Entity {
	e := ecs.CreateEntity(d.world)
	box := hitboxes[kind]
	_ = ecs.Add(d.world, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(d.world, e, component.VelocityComponent.Kind(), &component.Velocity{})
	_ = ecs.Add(d.world, e, component.VisualComponent.Kind(), &component.Visual{Alpha: 1})
	_ = ecs.Add(d.world, e, component.HazardComponent.Kind(), &component.Hazard{
		Kind:       kind,
		SourceID:   h.ID,
		Damage:     common.Finite(h.Damage, 1),
		KnockbackX: h.Knockback.X,
		KnockbackY: h.Knockback.Y,
	})
	_ = ecs.Add(d.world, e, component.HitboxComponent.Kind(), &component.Hitbox{
		Group:   collision.GroupHazard,
		Width:   box.w,
		Height:  box.h,
		OffsetY: box.offY,
	})
	return e
}

func (d *HazardDirector) registerPatrol(h content.Hazard, snap settings.Snapshot) {
	sm := snap.Speed()
	kind, def, limit := component.HazardSnail, snailSpeed, snailSpeedCap
	if h.Kind == content.HazardBoulder {
		kind, def, limit = component.HazardBoulder, boulderSpeed, boulderSpeedCap
	}
	speed := math.Min(resolve(h.Config.Speed, def), limit) * sm
	minX, maxX := h.Bounds(patrolSpread)

	e := d.spawnActor(kind, h, h.Position.X, h.Position.Y)
	v, _ := ecs.Get(d.world, e, component.VelocityComponent.Kind())
	v.X = speed
	_ = ecs.Add(d.world, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: 1, MaxFall: patrolMaxFall * sm})
	_ = ecs.Add(d.world, e, component.PatrolComponent.Kind(), &component.Patrol{
		MinX:   minX,
		MaxX:   maxX,
		Speed:  speed,
		Bounce: kind == component.HazardBoulder,
	})
}

func (d *HazardDirector) registerRain(h content.Hazard, snap settings.Snapshot) {
	minX, maxX := h.Bounds(rainSpread)
	rs := snap.Speed() * snap.Rain()
	interval := math.Max(rainMinIntervalMs, resolve(h.RespawnMs, rainRespawnMs)/rs)

	task := d.clock.Every(interval, func() {
		if !d.gate() {
			return
		}
		if d.settings().Impossible {
			for i := 0; i < superRainStreams; i++ {
				stream := i
				d.spawnWarning(superRainX(d.player().X, minX, maxX, stream), h.Position.Y-rainWarningAboveY, superRainDelayMs)
				d.clock.After(superRainDelayMs, func() {
					// Re-sampled: the player may have moved since the warning.
					d.spawnDrop(h, superRainX(d.player().X, minX, maxX, stream), 0, rs)
				})
			}
			return
		}
		lo, hi := int(math.Floor(minX)), int(math.Floor(maxX))
		for i := 0; i < rainStreams; i++ {
			x := float64(common.Between(d.rng, lo, hi))
			d.spawnWarning(x, h.Position.Y-rainWarningAboveY, rainWarningMs)
			drift := float64(common.Between(d.rng, -rainDriftMax, rainDriftMax)) * rs
			d.spawnDrop(h, x, drift, rs)
		}
	})
	d.tasks = append(d.tasks, task)
}

// superRainX is the spawn X of one impossible-mode stream: streams are
// spaced around the player's X clamped into the rain bounds.
func superRainX(playerX, minX, maxX float64, stream int) float64 {
	target := common.Clamp(playerX, minX, maxX)
	center := float64(superRainStreams-1) / 2
	offset := (float64(stream) - center) * superRainSpacing
	return math.Round(common.Clamp(target+offset, minX, maxX))
}

func (d *HazardDirector) spawnDrop(h content.Hazard, x, drift, rs float64) {
	if !d.gate() {
		return
	}
	e := d.spawnActor(component.HazardDrop, h, x, h.Position.Y)
	v, _ := ecs.Get(d.world, e, component.VelocityComponent.Kind())
	v.X, v.Y = drift, rainFallSpeed*rs
	_ = ecs.Add(d.world, e, component.AccelerationComponent.Kind(), &component.Acceleration{Y: rainAccel * rs})
	_ = ecs.Add(d.world, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: 1})
}

func (d *HazardDirector) spawnWarning(x, y, durationMs float64) {
	e := ecs.CreateEntity(d.world)
	_ = ecs.Add(d.world, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(d.world, e, component.VisualComponent.Kind(), &component.Visual{Alpha: impactWarningAlpha})
	_ = ecs.Add(d.world, e, component.WarningComponent.Kind(), &component.Warning{Radius: rainWarningRadius})
	if tw := system.StartTween(d.world, e, component.TweenAlpha, component.Pose{Alpha: 0}, durationMs, common.EaseLinear); tw != nil {
		tw.DestroyOnDone = true
	}
}

func (d *HazardDirector) registerTurret(h content.Hazard, snap settings.Snapshot) {
	sm := snap.Speed()
	interval := resolve(h.Config.ShootIntervalMs, turretIntervalMs) / sm
	speed := resolve(h.Config.ProjectileSpeed, turretShotSpeed) * sm

	e := ecs.CreateEntity(d.world)
	_ = ecs.Add(d.world, e, component.TransformComponent.Kind(), &component.Transform{X: h.Position.X, Y: h.Position.Y, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(d.world, e, component.VisualComponent.Kind(), &component.Visual{Alpha: 1})
	_ = ecs.Add(d.world, e, component.TurretComponent.Kind(), &component.Turret{
		SourceID:        h.ID,
		IntervalMs:      interval,
		ProjectileSpeed: speed,
	})

	task := d.clock.Every(interval, func() {
		if !d.gate() || !ecs.IsAlive(d.world, e) {
			return
		}
		d.fire(e, h, speed)
	})
	d.tasks = append(d.tasks, task)
}

// fire aims by the player's side at fire time, which can briefly disagree
// with the turret's per-tick facing.
func (d *HazardDirector) fire(turret ecs.Entity, h content.Hazard, speed float64) {
	t, ok := ecs.Get(d.world, turret, component.TransformComponent.Kind())
	if !ok {
		return
	}
	dir := -1.0
	if d.player().X >= t.X {
		dir = 1
	}
	if vis, ok := ecs.Get(d.world, turret, component.VisualComponent.Kind()); ok {
		vis.FlashUntil = d.clock.Now() + turretFlashMs
	}

	e := d.spawnActor(component.HazardProjectile, h, t.X+dir*turretMuzzleX, t.Y-turretMuzzleY)
	v, _ := ecs.Get(d.world, e, component.VelocityComponent.Kind())
	v.X, v.Y = dir*speed, turretShotLift
}

func (d *HazardDirector) dropImpact(e ecs.Entity, _ collision.Contact) {
	t, ok := ecs.Get(d.world, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	x, y := t.X, t.Y
	ecs.DestroyEntity(d.world, e)
	d.world.Events().Push(ecs.Event{Type: ecs.EventImpact, Entity: e, X: x, Y: y})
	d.hooks.Impact(x, y)
}

func (d *HazardDirector) projectileImpact(e ecs.Entity, _ collision.Contact) {
	ecs.DestroyEntity(d.world, e)
}

// patrolContact rests patrols on platform tops. Boulders also bounce off
// platform sides; snails are only pushed out.
func (d *HazardDirector) patrolContact(e ecs.Entity, c collision.Contact) {
	t, ok := ecs.Get(d.world, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	v, _ := ecs.Get(d.world, e, component.VelocityComponent.Kind())
	top := c.B.BB().B

	switch c.Side {
	case collision.SideTop:
		t.Y = top - c.A.Height/2 - (c.A.Center.Y - t.Y)
		if v != nil && v.Y > 0 {
			v.Y = 0
		}
	case collision.SideLeft:
		t.X -= c.Depth
		system.ReversePatrol(d.world, e)
	case collision.SideRight:
		t.X += c.Depth
		system.ReversePatrol(d.world, e)
	case collision.SideBottom:
		t.Y += c.Depth
		if v != nil && v.Y < 0 {
			v.Y = 0
		}
	}
}

// colliders returns the hitboxes of every live hazard actor.
func (d *HazardDirector) colliders() []collision.Box {
	var out []collision.Box
	ecs.ForEach3(d.world, component.TransformComponent.Kind(), component.HitboxComponent.Kind(), component.HazardComponent.Kind(), func(e ecs.Entity, t *component.Transform, hb *component.Hitbox, hz *component.Hazard) {
		out = append(out, collision.Box{
			Group:           hb.Group,
			ID:              hz.SourceID,
			Ref:             uint64(e),
			Center:          cp.Vector{X: t.X + hb.OffsetX, Y: t.Y + hb.OffsetY},
			Width:           hb.Width,
			Height:          hb.Height,
			IgnorePlatforms: hb.IgnorePlatforms,
		})
	})
	return out
}
