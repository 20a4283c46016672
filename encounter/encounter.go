// Package encounter runs the secret boss fight. The monkey fights Yellow
// Spud with thrown bananas; the spud fights the monkey with an aimed fire
// stream. The opponent's attacks are tengo scripts.
package encounter

import (
	"math/rand/v2"

	"github.com/d5/tengo/v2"
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

const baseGravity = 1200.0

// Phase is the fight's outcome so far.
type Phase int

const (
	PhaseFighting Phase = iota
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseFighting:
		return "fighting"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Physics is what the fight needs from the physics collaborator.
type Physics interface {
	control.Body
	SetGravity(y float64)
	Pause()
	Resume()
}

type Deps struct {
	Settings *settings.Store
	Physics  Physics
	Hooks    notify.Hooks
	Logger   zerolog.Logger
	Rand     *rand.Rand
	Scripts  ScriptSource
}

// Simulation is one running secret fight.
type Simulation struct {
	cfg     config
	store   *settings.Store
	physics Physics
	hooks   notify.Hooks
	log     zerolog.Logger
	rng     *rand.Rand
	clock   *clock.Clock
	world   *ecs.World
	systems []ecs.System
	mover   *control.Mover
	snap    settings.Snapshot
	script  *attackScript
	engine  *tengo.ImmutableMap
	tasks   []*clock.Task

	phase            Phase
	paused           bool
	inputBeforePause bool
	hearts           int
	playerInvulUntil float64
	boss             ecs.Entity
	bossHealth       int
	bossInvulUntil   float64
	nextShotAt       float64
	facingLeft       bool
	view             cp.Vector

	restoreRandomJump bool
	prevRandomJump    bool
	request           scene.Request
}

// Start sets up the fight for role. An empty role keeps the settings role.
func Start(role settings.Role, deps Deps) *Simulation {
	store := deps.Settings
	if store == nil {
		store = settings.NewStore(settings.Defaults())
	}
	if role == "" {
		role = store.Snapshot().Role
	}
	cfg := configFor(role)
	store.SetRole(cfg.role)

	rng := deps.Rand
	if rng == nil {
		rng = common.NewRand(uint64(cfg.bossHealth))
	}
	scripts := deps.Scripts
	if scripts == nil {
		scripts = content.Source{}
	}

	s := &Simulation{
		cfg:        cfg,
		store:      store,
		physics:    deps.Physics,
		hooks:      notify.OrNop(deps.Hooks),
		log:        deps.Logger.With().Str("scene", "encounter").Str("role", string(cfg.role)).Logger(),
		rng:        rng,
		clock:      clock.New(),
		world:      ecs.NewWorld(),
		mover:      control.NewMover(rng),
		hearts:     startingHearts,
		bossHealth: cfg.bossHealth,
	}
	if cfg.forceRandomJump {
		s.prevRandomJump = store.Snapshot().RandomJump
		s.restoreRandomJump = true
		store.SetRandomJump(true)
	}
	s.snap = store.Snapshot()
	s.engine = buildAttackEngine(s)

	script, err := loadAttackScript(scripts, cfg.script)
	if err != nil {
		s.log.Error().Err(err).Msg("attack script unavailable")
	}
	s.script = script

	s.setup()
	return s
}

func (s *Simulation) setup() {
	sm := s.snap.Speed()
	s.physics.SetGravity(baseGravity * sm)
	s.physics.SetPosition(PlayerSpawn)
	s.physics.SetVelocity(cp.Vector{})

	bounds := ecs.CreateEntity(s.world)
	_ = ecs.Add(s.world, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: ArenaWidth, Height: ArenaHeight})
	system.SetFrame(s.world, component.Frame{PlayerX: PlayerSpawn.X, PlayerY: PlayerSpawn.Y})
	s.systems = []ecs.System{
		system.NewMotionSystem(0),
		system.NewTTLSystem(),
		system.NewTweenSystem(),
		system.NewBoundsCleanupSystem(),
	}

	s.boss = ecs.CreateEntity(s.world)
	_ = ecs.Add(s.world, s.boss, component.TransformComponent.Kind(), &component.Transform{X: bossSpawn.X, Y: bossSpawn.Y, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(s.world, s.boss, component.VisualComponent.Kind(), &component.Visual{Alpha: 1})
	_ = ecs.Add(s.world, s.boss, component.BossComponent.Kind(), &component.Boss{})
	_ = ecs.Add(s.world, s.boss, component.HitboxComponent.Kind(), &component.Hitbox{
		Group:  collision.GroupBoss,
		Width:  s.cfg.bossBox.X,
		Height: s.cfg.bossBox.Y,
	})
	if tw := system.StartTween(s.world, s.boss, component.TweenY, component.Pose{Y: s.cfg.bobY}, bobDurationMs, common.EaseSineInOut); tw != nil {
		tw.Yoyo = true
	}

	for _, a := range s.cfg.attacks {
		name := a.name
		s.tasks = append(s.tasks, s.clock.Every(a.intervalMs, func() {
			if s.phase != PhaseFighting {
				return
			}
			s.runAttack(name)
		}))
	}

	s.mover.InputEnabled = true
	s.hooks.HeartsChanged(s.hearts, startingHearts)
	s.hooks.OpponentHealth(s.bossHealth, s.cfg.healthLabel)
	s.hooks.Banner(s.cfg.prompt, 0)
	s.log.Info().Int("boss_health", s.bossHealth).Msg("secret fight started")
}

func (s *Simulation) runAttack(name string) {
	if s.script == nil {
		return
	}
	if err := s.script.run(name, s.engine); err != nil {
		s.log.Error().Err(err).Str("attack", name).Msg("attack script failed")
	}
}

func (s *Simulation) Name() string {
	return "encounter:" + string(s.cfg.role)
}

// Tick advances the fight by dt milliseconds.
func (s *Simulation) Tick(dt float64, in control.State, contacts []collision.Contact) {
	if s.paused {
		return
	}
	s.snap = s.store.Snapshot()
	s.clock.Advance(dt)
	now := s.clock.Now()
	pos := s.physics.Position()
	system.SetFrame(s.world, component.Frame{Now: now, DtMs: dt, PlayerX: pos.X, PlayerY: pos.Y})

	if s.phase == PhaseFighting {
		s.mover.Update(now, in, s.physics, s.snap.Speed(), s.snap.RandomJump)
		s.facingLeft = s.mover.FacingLeft
		if s.cfg.stream {
			s.facingLeft = in.Pointer.X < pos.X
			if now >= s.nextShotAt {
				s.fireStream(pos, in.Pointer)
				s.nextShotAt = now + streamIntervalMs
			}
		} else if in.ThrowPressed && now >= s.nextShotAt {
			s.throw(pos)
			s.nextShotAt = now + throwCooldownMs
		}
		s.faceBoss(pos)
	}

	s.applyContacts(contacts)
	s.world.Update(s.systems...)
	s.world.Events().Drain()
	s.hitBoss()

	pos = s.physics.Position()
	s.follow(pos)
	if s.phase != PhaseFighting {
		return
	}
	if s.playerInvulUntil > 0 && now >= s.playerInvulUntil {
		s.playerInvulUntil = 0
	}
	if pos.Y > fallHitY {
		s.damagePlayer(true)
	}
}

func (s *Simulation) follow(pos cp.Vector) {
	tx := common.Clamp(pos.X-common.ViewWidth/2, 0, ArenaWidth-common.ViewWidth)
	ty := common.Clamp(pos.Y-common.ViewHeight/2, 0, ArenaHeight-common.ViewHeight)
	s.view.X = common.Lerp(s.view.X, tx, 0.1)
	s.view.Y = common.Lerp(s.view.Y, ty, 0.1)
}

func (s *Simulation) faceBoss(player cp.Vector) {
	t, ok := ecs.Get(s.world, s.boss, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if vis, ok := ecs.Get(s.world, s.boss, component.VisualComponent.Kind()); ok {
		vis.FlipX = player.X < t.X
	}
}

// applyContacts handles shots landing on platforms and opponent hits on
// the player.
func (s *Simulation) applyContacts(contacts []collision.Contact) {
	for _, c := range contacts {
		switch {
		case c.A.Group == collision.GroupPlayerShot || c.A.Group == collision.GroupEnemyShot:
			if c.B.Group == collision.GroupPlatform && !c.A.IgnorePlatforms {
				ecs.DestroyEntity(s.world, ecs.Entity(c.A.Ref))
			}
		case c.A.Group == collision.GroupPlayer:
			switch c.B.Group {
			case collision.GroupEnemyShot:
				if ecs.DestroyEntity(s.world, ecs.Entity(c.B.Ref)) {
					s.damagePlayer(false)
				}
			case collision.GroupPillar:
				if s.cfg.pillarsHurt {
					s.damagePlayer(false)
				}
			}
		}
	}
}

// hitBoss consumes every player shot overlapping the opponent.
func (s *Simulation) hitBoss() {
	var shots, boss []collision.Box
	for _, b := range s.Colliders() {
		switch b.Group {
		case collision.GroupPlayerShot:
			shots = append(shots, b)
		case collision.GroupBoss:
			boss = append(boss, b)
		}
	}
	for _, c := range collision.DetectPairs(shots, boss) {
		if ecs.DestroyEntity(s.world, ecs.Entity(c.A.Ref)) {
			s.damageBoss()
		}
	}
}

func (s *Simulation) damageBoss() {
	if s.phase != PhaseFighting {
		return
	}
	now := s.clock.Now()
	if now < s.bossInvulUntil {
		return
	}
	s.bossInvulUntil = now + s.cfg.bossInvulnMs
	s.bossHealth = max(0, s.bossHealth-1)
	s.hooks.OpponentHealth(s.bossHealth, s.cfg.healthLabel)
	if vis, ok := ecs.Get(s.world, s.boss, component.VisualComponent.Kind()); ok {
		vis.FlashUntil = now + bossFlashMs
	}
	if s.bossHealth > 0 {
		return
	}
	s.win()
}

// damagePlayer takes one heart. force skips the invulnerability check.
func (s *Simulation) damagePlayer(force bool) {
	if s.phase != PhaseFighting {
		return
	}
	now := s.clock.Now()
	if !force && s.playerInvulUntil > now {
		return
	}
	s.hearts = max(0, s.hearts-1)
	s.hooks.HeartsChanged(s.hearts, startingHearts)
	s.playerInvulUntil = now + playerInvulnerableMs

	if s.hearts > 0 {
		s.physics.SetVelocity(cp.Vector{X: float64(common.Between(s.rng, -knockbackX, knockbackX)), Y: knockbackY})
		return
	}
	s.lose()
}

func (s *Simulation) stopAttacks() {
	for _, t := range s.tasks {
		t.Cancel()
	}
	s.tasks = nil
}

func (s *Simulation) win() {
	s.phase = PhaseWon
	s.mover.InputEnabled = false
	s.stopAttacks()
	s.hooks.Banner(s.cfg.winText, winDelayMs)
	s.log.Info().Msg("secret fight won")
	s.clock.After(winDelayMs, func() {
		s.request = s.cfg.exit
	})
}

func (s *Simulation) lose() {
	s.phase = PhaseLost
	s.mover.InputEnabled = false
	s.physics.SetVelocity(cp.Vector{})
	s.stopAttacks()
	s.hooks.Banner(lossMessage, lossDelayMs)
	s.log.Info().Msg("secret fight lost")
	s.clock.After(lossDelayMs, func() {
		s.request = scene.Request{Kind: scene.Encounter, Role: s.cfg.role}
	})
}
