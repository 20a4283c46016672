package level

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/clock"
	"github.com/milk9111/bananarun/collision"
	"github.com/milk9111/bananarun/common"
	"github.com/milk9111/bananarun/content"
	"github.com/milk9111/bananarun/control"
	"github.com/milk9111/bananarun/ecs"
	"github.com/milk9111/bananarun/ecs/component"
	"github.com/milk9111/bananarun/ecs/system"
	"github.com/milk9111/bananarun/notify"
	"github.com/milk9111/bananarun/scene"
	"github.com/milk9111/bananarun/settings"
	"github.com/rs/zerolog"
)

// State is the level state machine.
type State int

const (
	StateLoading State = iota
	StateActive
	StatePaused
	StateCutscene
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateCutscene:
		return "cutscene"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

const (
	baseGravity = 1200.0

	hitInvulnerableMs     = 1350.0
	respawnInvulnerableMs = 1100.0
	respawnDelayMs        = 850.0
	deathBannerMs         = 500.0
	completeBannerMs      = 1600.0
	completeDelayMs       = 3400.0
	cutsceneBannerMs      = 1300.0
	fallDeathMargin       = 140.0

	groundDangerHeight = 86.0
	groundDangerInset  = 43.0
)

const (
	outOfHeartsMessage = "Out of hearts. Respawning at checkpoint..."
	cutsceneMessage    = "Yellow Spud stole the banana!"
)

// Deps are the collaborators a level runs against.
type Deps struct {
	Catalog  Catalog
	Settings *settings.Store
	Physics  Physics
	Hooks    notify.Hooks
	Logger   zerolog.Logger
	Rand     *rand.Rand
}

// Runtime is one loaded level.
type Runtime struct {
	def      *content.Level
	role     settings.Role
	catalog  Catalog
	store    *settings.Store
	physics  Physics
	hooks    notify.Hooks
	log      zerolog.Logger
	clock    *clock.Clock
	world    *ecs.World
	systems  []ecs.System
	mover    *control.Mover
	snap     settings.Snapshot
	state    State
	player   PlayerState
	camera   Camera
	hazards  *HazardDirector
	checks   *Checkpoints
	springs  *Springs
	scroll   *AutoScroll
	cutscene *Cutscene
	goal     ecs.Entity

	cutsceneTriggered bool
	inputBeforePause  bool
	respawned         bool
	request           scene.Request
}

// Load builds the level for id, falling back to the catalog's first level
// for unknown ids, and leaves it Active.
func Load(id string, role settings.Role, deps Deps) *Runtime {
	def := deps.Catalog.Lookup(id)
	if role == "" {
		role = settings.RoleMonkey
	}
	store := deps.Settings
	if store == nil {
		store = settings.NewStore(settings.Defaults())
	}
	store.SetRole(role)
	rng := deps.Rand
	if rng == nil {
		rng = common.NewRand(uint64(len(def.ID)))
	}

	r := &Runtime{
		def:     def,
		role:    role,
		catalog: deps.Catalog,
		store:   store,
		physics: deps.Physics,
		hooks:   notify.OrNop(deps.Hooks),
		log:     deps.Logger.With().Str("level", def.ID).Str("role", string(role)).Logger(),
		clock:   clock.New(),
		world:   ecs.NewWorld(),
		mover:   control.NewMover(rng),
		snap:    store.Snapshot(),
		state:   StateLoading,
	}
	r.load(rng)
	return r
}

func (r *Runtime) load(rng *rand.Rand) {
	def := r.def
	spawn := cp.Vector{X: def.PlayerSpawn.X, Y: def.PlayerSpawn.Y}
	sm := r.snap.Speed()

	r.player = newPlayerState(spawn)
	r.physics.SetGravity(baseGravity * sm)
	r.physics.SetPosition(spawn)
	r.physics.SetVelocity(cp.Vector{})

	bounds := ecs.CreateEntity(r.world)
	_ = ecs.Add(r.world, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: def.WorldWidth, Height: def.WorldHeight})
	system.SetFrame(r.world, component.Frame{PlayerX: spawn.X, PlayerY: spawn.Y})
	r.systems = []ecs.System{
		system.NewMotionSystem(baseGravity * sm),
		system.NewPatrolSystem(),
		system.NewTurretFacingSystem(),
		system.NewTTLSystem(),
		system.NewTweenSystem(),
		system.NewBoundsCleanupSystem(),
	}

	r.goal = ecs.CreateEntity(r.world)
	_ = ecs.Add(r.world, r.goal, component.TransformComponent.Kind(), &component.Transform{X: def.Goal.X, Y: def.Goal.Y, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(r.world, r.goal, component.VisualComponent.Kind(), &component.Visual{Alpha: 1})
	_ = ecs.Add(r.world, r.goal, component.GoalComponent.Kind(), &component.Goal{})

	r.checks = newCheckpoints(def.Checkpoints, spawn)
	r.springs = newSprings(def.Springs)
	r.hazards = NewHazardDirector(HazardDeps{
		World:    r.world,
		Clock:    r.clock,
		Rand:     rng,
		Hooks:    r.hooks,
		Logger:   r.log,
		Gate:     r.gateOpen,
		Player:   r.physics.Position,
		Settings: r.Settings,
	})
	for _, h := range def.Hazards {
		r.hazards.Register(h, r.snap)
	}

	r.hooks.HeartsChanged(r.player.Hearts, r.player.MaxHearts)
	if def.AutoScrolling() {
		r.scroll = newAutoScroll(*def.AutoScroll, def.WorldWidth, def.WorldHeight, r.world)
		r.scroll.start(&r.camera, spawn)
		if r.role == settings.RoleMonkey {
			r.scroll.spawnChaseBoss(spawn)
			r.hooks.Banner("Keep moving. The yellow spud is chasing you!", 1300)
		} else {
			r.hooks.Banner("Spud run: sprint for the golden banana!", 1300)
		}
	} else {
		r.camera.follow(spawn, def.WorldWidth, def.WorldHeight)
		if r.role == settings.RoleMonkey {
			r.hooks.Banner("Reach the golden banana.", 1100)
		} else {
			r.hooks.Banner("Spud run: steal the golden banana!", 1100)
		}
	}

	r.state = StateActive
	r.log.Info().Int("hazards", len(def.Hazards)).Bool("auto_scroll", r.scroll != nil).Msg("level loaded")
}

// gateOpen is checked by every scheduled callback before it acts.
func (r *Runtime) gateOpen() bool {
	return r.state == StateActive
}

// Settings is the snapshot taken at the start of the current tick.
func (r *Runtime) Settings() settings.Snapshot {
	return r.snap
}

// Tick advances the level by dt milliseconds. contacts are the overlaps the
// physics collaborator found for Colliders().
func (r *Runtime) Tick(dt float64, in control.State, contacts []collision.Contact) {
	if r.state == StatePaused || r.state == StateLoading {
		return
	}
	r.snap = r.store.Snapshot()
	r.respawned = false

	r.clock.Advance(dt)
	now := r.clock.Now()
	pos := r.physics.Position()
	system.SetFrame(r.world, component.Frame{Now: now, DtMs: dt, PlayerX: pos.X, PlayerY: pos.Y})

	r.applyContacts(contacts)

	if r.state == StateActive && r.player.Alive && !r.springs.Locked(now) {
		r.mover.Update(now, in, r.physics, r.snap.Speed(), r.snap.RandomJump)
	}

	r.world.Update(r.systems...)
	r.world.Events().Drain()

	if r.state != StateActive {
		return
	}

	pos = r.physics.Position()
	if r.scroll != nil {
		behind, caught := r.scroll.update(&r.camera, dt, r.snap.Speed(), pos)
		if behind {
			r.Damage(1)
		}
		if caught {
			r.Damage(1)
		}
	} else {
		r.camera.follow(pos, r.def.WorldWidth, r.def.WorldHeight)
	}

	if pos.Y > r.def.WorldHeight+fallDeathMargin {
		r.die(r.def.GroundDanger.DeathMessage())
		return
	}

	if r.player.Invulnerable && now >= r.player.InvulnerableUntil {
		r.player.Invulnerable = false
	}
}

var contactOrder = map[collision.Group]int{
	collision.GroupGroundDanger: 0,
	collision.GroupPlatform:     1,
	collision.GroupHazard:       2,
	collision.GroupCheckpoint:   3,
	collision.GroupSpring:       4,
	collision.GroupGoal:         5,
}

func contactRank(c collision.Contact) (int, bool) {
	if c.A.Group == collision.GroupHazard && c.B.Group == collision.GroupPlatform {
		return contactOrder[collision.GroupPlatform], true
	}
	if c.A.Group != collision.GroupPlayer || c.B.Group == collision.GroupPlatform {
		return 0, false
	}
	rank, ok := contactOrder[c.B.Group]
	return rank, ok
}

// applyContacts handles one tick's overlaps in a fixed group order, stable
// by id within a group.
func (r *Runtime) applyContacts(contacts []collision.Contact) {
	type ranked struct {
		rank int
		c    collision.Contact
	}
	list := make([]ranked, 0, len(contacts))
	for _, c := range contacts {
		if rank, ok := contactRank(c); ok {
			list = append(list, ranked{rank: rank, c: c})
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].rank != list[j].rank {
			return list[i].rank < list[j].rank
		}
		if list[i].c.B.ID != list[j].c.B.ID {
			return list[i].c.B.ID < list[j].c.B.ID
		}
		return list[i].c.A.ID < list[j].c.A.ID
	})

	for _, rc := range list {
		c := rc.c
		if c.A.Group == collision.GroupHazard {
			r.hazards.OnPlatform(c)
			continue
		}
		// contacts were measured before a respawn moved the player
		if r.state != StateActive || r.respawned {
			continue
		}
		switch c.B.Group {
		case collision.GroupGroundDanger:
			r.die(r.def.GroundDanger.DeathMessage())
		case collision.GroupHazard:
			e := ecs.Entity(c.B.Ref)
			hz, ok := ecs.Get(r.world, e, component.HazardComponent.Kind())
			if !ok {
				continue
			}
			r.Damage(hz.Damage)
		case collision.GroupCheckpoint:
			r.activateCheckpoint(c.B.ID)
		case collision.GroupSpring:
			r.launch(int(c.B.Ref))
		case collision.GroupGoal:
			r.reachGoal()
		}
	}
}

// Damage applies a hit. It reports whether any heart was lost.
func (r *Runtime) Damage(d float64) bool {
	if r.state != StateActive || !r.player.Alive {
		return false
	}
	now := r.clock.Now()
	if r.player.invulnerableAt(now) {
		return false
	}
	resolved := 1
	if !math.IsNaN(d) && !math.IsInf(d, 0) {
		resolved = max(1, int(math.Floor(d)))
	}
	r.player.loseHearts(resolved)
	r.hooks.HeartsChanged(r.player.Hearts, r.player.MaxHearts)

	if r.player.Hearts <= 0 {
		r.die(outOfHeartsMessage)
		return true
	}
	r.player.grantInvulnerability(now + hitInvulnerableMs)
	return true
}

// die enters the dead sub-state and schedules the single respawn.
func (r *Runtime) die(message string) {
	if r.state == StateFinished || r.state == StateCutscene || !r.player.Alive {
		return
	}
	r.player.Alive = false
	r.player.Hearts = 0
	r.player.Invulnerable = false
	r.mover.InputEnabled = false
	r.physics.SetVelocity(cp.Vector{})
	r.hooks.HeartsChanged(r.player.Hearts, r.player.MaxHearts)
	r.hooks.Banner(message, deathBannerMs)
	r.log.Info().Str("reason", message).Msg("player died")

	r.clock.After(respawnDelayMs, r.respawn)
}

func (r *Runtime) respawn() {
	if r.state == StateFinished || r.state == StateCutscene || r.player.Alive {
		return
	}
	at := r.checks.Anchor()
	r.player.LastCheckpoint = at
	if r.scroll != nil {
		at = r.scroll.respawnAt(&r.camera, at)
	}
	r.physics.SetPosition(at)
	r.physics.SetVelocity(cp.Vector{})

	r.player.Hearts = r.player.MaxHearts
	r.player.Alive = true
	r.respawned = true
	r.player.grantInvulnerability(r.clock.Now() + respawnInvulnerableMs)
	r.mover.InputEnabled = true
	r.hooks.HeartsChanged(r.player.Hearts, r.player.MaxHearts)
	r.log.Debug().Float64("x", at.X).Float64("y", at.Y).Msg("player respawned")
}

func (r *Runtime) activateCheckpoint(id string) {
	if !r.checks.Activate(id) {
		return
	}
	r.player.LastCheckpoint = r.checks.Anchor()
	r.hooks.CheckpointFlash(id)
	r.log.Debug().Str("checkpoint", id).Msg("checkpoint activated")
}

func (r *Runtime) launch(idx int) {
	if r.state != StateActive {
		return
	}
	v, ok := r.springs.Trigger(idx, r.clock.Now(), r.physics.Position().X, r.snap.Speed())
	if !ok {
		return
	}
	r.physics.SetVelocity(v)
}

func (r *Runtime) reachGoal() {
	if r.state != StateActive || !r.player.Alive {
		return
	}
	if r.def.BossEvent != nil && r.role == settings.RoleMonkey {
		r.triggerCutscene()
		return
	}
	r.complete()
}

func (r *Runtime) stopGoalEffects() {
	if g, ok := ecs.Get(r.world, r.goal, component.GoalComponent.Kind()); ok {
		g.EffectsStopped = true
	}
	ecs.Remove(r.world, r.goal, component.TweenComponent.Kind())
}

func (r *Runtime) triggerCutscene() {
	ev := r.def.BossEvent
	if ev == nil || r.cutsceneTriggered || r.state == StateFinished || r.role != settings.RoleMonkey {
		return
	}
	r.cutsceneTriggered = true
	r.state = StateCutscene
	r.mover.InputEnabled = false
	r.physics.SetVelocity(cp.Vector{})
	r.stopGoalEffects()
	r.hooks.Banner(cutsceneMessage, cutsceneBannerMs)
	r.log.Info().Float64("duration_ms", ev.CutsceneDurationMs).Str("next", ev.NextLevelID).Msg("boss cutscene")

	goalPos := cp.Vector{X: r.def.Goal.X, Y: r.def.Goal.Y}
	r.cutscene = newCutscene(r.clock, r.world, r.goal, goalPos, ev.CutsceneDurationMs, func() {
		r.request = scene.Request{Kind: scene.Level, LevelID: ev.NextLevelID, Role: r.role}
	}, r.log)
	r.cutscene.start()
}

func (r *Runtime) complete() {
	if r.state == StateFinished {
		return
	}
	r.state = StateFinished
	r.mover.InputEnabled = false
	r.physics.SetVelocity(cp.Vector{})
	r.stopGoalEffects()
	if r.role == settings.RoleMonkey {
		r.hooks.Banner("Golden banana recovered!", completeBannerMs)
	} else {
		r.hooks.Banner("Spud secured the golden prize!", completeBannerMs)
	}
	r.log.Info().Msg("level complete")
	r.clock.After(completeDelayMs, r.requestNextOrWin)
}

func (r *Runtime) requestNextOrWin() {
	if next, ok := r.catalog.NextLevelID(r.def.ID, r.role); ok {
		r.request = scene.Request{Kind: scene.Level, LevelID: next, Role: r.role}
		return
	}
	r.request = scene.Request{Kind: scene.Win, Role: r.role}
}
