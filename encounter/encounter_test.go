package encounter

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/collision"
	"github.com/milk9111/bananarun/common"
	"github.com/milk9111/bananarun/content"
	"github.com/milk9111/bananarun/control"
	"github.com/milk9111/bananarun/ecs"
	"github.com/milk9111/bananarun/ecs/component"
	"github.com/milk9111/bananarun/notify"
	"github.com/milk9111/bananarun/scene"
	"github.com/milk9111/bananarun/settings"
	"github.com/rs/zerolog"
)

type fakePhysics struct {
	pos     cp.Vector
	vel     cp.Vector
	gravity float64
	paused  bool
}

func (f *fakePhysics) Position() cp.Vector     { return f.pos }
func (f *fakePhysics) SetPosition(p cp.Vector) { f.pos = p }
func (f *fakePhysics) Velocity() cp.Vector     { return f.vel }
func (f *fakePhysics) SetVelocity(v cp.Vector) { f.vel = v }
func (f *fakePhysics) Grounded() bool          { return false }
func (f *fakePhysics) SetGravity(y float64)    { f.gravity = y }
func (f *fakePhysics) Pause()                  { f.paused = true }
func (f *fakePhysics) Resume()                 { f.paused = false }

type fixture struct {
	sim   *Simulation
	phys  *fakePhysics
	hooks *notify.Recorder
	store *settings.Store
}

func newFixture(t *testing.T, role settings.Role, scripts ScriptSource) *fixture {
	t.Helper()
	snap := settings.Defaults()
	snap.SpeedMultiplier = 1
	if scripts == nil {
		scripts = content.Source{}
	}
	f := &fixture{
		phys:  &fakePhysics{},
		hooks: &notify.Recorder{},
		store: settings.NewStore(snap),
	}
	f.sim = Start(role, Deps{
		Settings: f.store,
		Physics:  f.phys,
		Hooks:    f.hooks,
		Logger:   zerolog.Nop(),
		Rand:     common.NewRand(3),
		Scripts:  scripts,
	})
	return f
}

// run steps the fight in 10ms ticks.
func (f *fixture) run(ms float64, in control.State) {
	for elapsed := 0.0; elapsed < ms; elapsed += 10 {
		f.sim.Tick(10, in, nil)
	}
}

func (f *fixture) playerBox() collision.Box {
	size := control.PlayerSize(f.sim.Role())
	return collision.Box{Group: collision.GroupPlayer, ID: "player", Center: f.phys.pos, Width: size.X, Height: size.Y}
}

// contactsWith returns player contacts against every collider of group.
func (f *fixture) contactsWith(group collision.Group) []collision.Contact {
	var out []collision.Contact
	for _, b := range f.sim.Colliders() {
		if b.Group == group {
			out = append(out, collision.Contact{A: f.playerBox(), B: b, Side: collision.SideTop})
		}
	}
	return out
}

func (f *fixture) countGroup(group collision.Group) int {
	n := 0
	for _, b := range f.sim.Colliders() {
		if b.Group == group {
			n++
		}
	}
	return n
}

func (f *fixture) shotAtBoss() {
	at, _ := f.sim.bossPosition()
	f.sim.spawnShot(collision.GroupPlayerShot, at, cp.Vector{}, true)
}

func TestStartConfigs(t *testing.T) {
	tests := []struct {
		role       settings.Role
		health     int
		prompt     string
		randomJump bool
		bossWidth  float64
	}{
		{settings.RoleMonkey, 22, "Secret Fight: X throw bananas, S skip, ESC leave", false, 84},
		{settings.RoleSpud, 500, "Secret Fight: You are Spud. Random jump forced, mouse aims fire stream, dodge monkey bananas, S skip", true, 30},
	}
	for _, tc := range tests {
		t.Run(string(tc.role), func(t *testing.T) {
			f := newFixture(t, tc.role, nil)
			if f.sim.BossHealth() != tc.health || f.sim.Hearts() != 5 {
				t.Fatalf("health %d hearts %d", f.sim.BossHealth(), f.sim.Hearts())
			}
			if f.hooks.LastBanner() != tc.prompt {
				t.Fatalf("prompt = %q", f.hooks.LastBanner())
			}
			if got := f.store.Snapshot(); got.RandomJump != tc.randomJump || got.Role != tc.role {
				t.Fatalf("settings = %+v", got)
			}
			if f.phys.pos != PlayerSpawn {
				t.Fatalf("player at %v", f.phys.pos)
			}
			var boss collision.Box
			for _, b := range f.sim.Colliders() {
				if b.Group == collision.GroupBoss {
					boss = b
				}
			}
			if boss.Width != tc.bossWidth || boss.Center != bossSpawn {
				t.Fatalf("boss box %+v", boss)
			}

			f.sim.Teardown()
			if f.store.Snapshot().RandomJump {
				t.Fatalf("random jump should be restored on teardown")
			}
			if f.sim.PendingTasks() != 0 || len(ecs.Entities(f.sim.World())) != 0 {
				t.Fatalf("teardown left tasks or entities")
			}
		})
	}
}

func TestSeveralHitsInOneTickWinOnce(t *testing.T) {
	f := newFixture(t, settings.RoleMonkey, nil)
	f.sim.bossHealth = 1
	for i := 0; i < 4; i++ {
		f.shotAtBoss()
	}
	f.sim.Tick(10, control.State{}, nil)

	if f.sim.Phase() != PhaseWon || f.sim.BossHealth() != 0 {
		t.Fatalf("phase %v health %d", f.sim.Phase(), f.sim.BossHealth())
	}
	if f.countGroup(collision.GroupPlayerShot) != 0 {
		t.Fatalf("overlapping shots should all be consumed")
	}
	if got := f.hooks.Opponent; len(got) != 2 || got[1] != 0 {
		t.Fatalf("opponent health notices = %v", got)
	}
	if f.sim.InputEnabled() {
		t.Fatalf("input should be off after the win")
	}

	wins := 0
	for i := 0; i < 400; i++ {
		f.shotAtBoss()
		f.sim.Tick(10, control.State{}, nil)
		if req := f.sim.Request(); req.Pending() {
			wins++
			if req != (scene.Request{Kind: scene.Menu, Role: settings.RoleMonkey}) {
				t.Fatalf("win request = %+v", req)
			}
			if f.sim.Now() != 2210 {
				t.Fatalf("win request at %v, want 2210", f.sim.Now())
			}
		}
	}
	if wins != 1 {
		t.Fatalf("got %d win requests, want 1", wins)
	}
}

func TestSpudWinGoesToGauntlet(t *testing.T) {
	f := newFixture(t, settings.RoleSpud, nil)
	f.sim.bossHealth = 1
	f.shotAtBoss()
	f.sim.Tick(10, control.State{Pointer: cp.Vector{X: 2000, Y: 900}}, nil)
	if f.sim.Phase() != PhaseWon {
		t.Fatalf("phase = %v", f.sim.Phase())
	}
	if f.hooks.LastBanner() != "Secret clear! Monkey defeated. Spud gauntlet begins!" {
		t.Fatalf("banner = %q", f.hooks.LastBanner())
	}
	f.run(2200, control.State{})
	if got := f.sim.Request(); got != (scene.Request{Kind: scene.Level, LevelID: "spud-level-4", Role: settings.RoleSpud}) {
		t.Fatalf("request = %+v", got)
	}
}

func TestBossInvulnerability(t *testing.T) {
	tests := []struct {
		role  settings.Role
		gap   float64
		after int
	}{
		{settings.RoleMonkey, 100, 21},
		{settings.RoleMonkey, 160, 20},
		{settings.RoleSpud, 20, 499},
		{settings.RoleSpud, 30, 498},
	}
	for _, tc := range tests {
		t.Run(string(tc.role), func(t *testing.T) {
			f := newFixture(t, tc.role, nil)
			f.shotAtBoss()
			f.sim.Tick(10, control.State{Pointer: cp.Vector{X: -1000}}, nil)
			f.shotAtBoss()
			f.sim.Tick(tc.gap, control.State{Pointer: cp.Vector{X: -1000}}, nil)
			if got := f.sim.BossHealth(); got != tc.after {
				t.Fatalf("health %d after a %vms gap, want %d", got, tc.gap, tc.after)
			}
		})
	}
}

func TestPlayerDamage(t *testing.T) {
	f := newFixture(t, settings.RoleMonkey, nil)
	f.phys.pos = cp.Vector{X: 600, Y: 1040}

	hit := func() {
		f.sim.spawnShot(collision.GroupEnemyShot, f.phys.pos, cp.Vector{}, false)
		f.sim.Tick(10, control.State{}, f.contactsWith(collision.GroupEnemyShot))
	}

	hit()
	if f.sim.Hearts() != 4 || f.phys.vel.Y != -380 {
		t.Fatalf("hearts %d vel %v", f.sim.Hearts(), f.phys.vel)
	}
	if f.countGroup(collision.GroupEnemyShot) != 0 {
		t.Fatalf("enemy shot should be consumed")
	}

	hit()
	if f.sim.Hearts() != 4 {
		t.Fatalf("hit during invulnerability landed")
	}

	f.run(900, control.State{})
	hit()
	if f.sim.Hearts() != 3 {
		t.Fatalf("hit after invulnerability, hearts %d", f.sim.Hearts())
	}

	// Falling out of the arena forces hits through invulnerability.
	f.phys.pos = cp.Vector{X: 600, Y: fallHitY + 1}
	for i := 0; i < 3; i++ {
		f.sim.Tick(10, control.State{}, nil)
	}
	if f.sim.Hearts() != 0 || f.sim.Phase() != PhaseLost {
		t.Fatalf("hearts %d phase %v", f.sim.Hearts(), f.sim.Phase())
	}
	if f.hooks.LastBanner() != lossMessage {
		t.Fatalf("banner = %q", f.hooks.LastBanner())
	}
	if f.phys.vel != (cp.Vector{}) {
		t.Fatalf("velocity should be zeroed on loss")
	}
	for _, h := range f.hooks.Hearts {
		if h[0] < 0 {
			t.Fatalf("hearts went negative: %v", f.hooks.Hearts)
		}
	}

	f.run(1390, control.State{})
	if f.sim.Request().Pending() {
		t.Fatalf("restart requested early")
	}
	f.run(10, control.State{})
	if got := f.sim.Request(); got != (scene.Request{Kind: scene.Encounter, Role: settings.RoleMonkey}) {
		t.Fatalf("loss request = %+v", got)
	}
}

func TestPillars(t *testing.T) {
	f := newFixture(t, settings.RoleMonkey, nil)
	f.phys.pos = cp.Vector{X: 1000, Y: 1040}

	f.run(900, control.State{})
	var warnings []float64
	ecs.ForEach2(f.sim.World(), component.TransformComponent.Kind(), component.WarningComponent.Kind(), func(_ ecs.Entity, tr *component.Transform, _ *component.Warning) {
		warnings = append(warnings, tr.X)
		if tr.Y != 1084 {
			t.Fatalf("warning y = %v", tr.Y)
		}
	})
	if len(warnings) != 3 {
		t.Fatalf("got %d warnings, want 3", len(warnings))
	}
	if f.countGroup(collision.GroupPillar) != 0 {
		t.Fatalf("pillars should wait for the telegraph")
	}

	f.run(500, control.State{})
	var pillars []ecs.Entity
	for _, b := range f.sim.Colliders() {
		if b.Group == collision.GroupPillar {
			pillars = append(pillars, ecs.Entity(b.Ref))
			if b.Center.Y != 980 || b.Width != 52 || b.Height != 240 {
				t.Fatalf("pillar box %+v", b)
			}
		}
	}
	if len(pillars) != 3 {
		t.Fatalf("got %d pillars, want 3", len(pillars))
	}

	f.sim.Tick(10, control.State{}, f.contactsWith(collision.GroupPillar))
	if f.sim.Hearts() != 4 {
		t.Fatalf("pillar contact should cost exactly one heart, hearts %d", f.sim.Hearts())
	}

	f.run(910, control.State{})
	for _, e := range pillars {
		if ecs.IsAlive(f.sim.World(), e) {
			t.Fatalf("pillar %v outlived its lifetime", e)
		}
	}
}

func TestSpudStream(t *testing.T) {
	f := newFixture(t, settings.RoleSpud, nil)
	f.phys.pos = cp.Vector{X: 600, Y: 1040}
	right := control.State{Pointer: cp.Vector{X: 1600, Y: 1030}}

	for i := 0; i < 4; i++ {
		f.sim.Tick(16, right, nil)
	}
	if got := f.countGroup(collision.GroupPlayerShot); got != 2 {
		t.Fatalf("got %d stream shots in 64ms, want 2", got)
	}
	if f.sim.FacingLeft() {
		t.Fatalf("pointer on the right should face right")
	}
	for _, b := range f.sim.Colliders() {
		if b.Group != collision.GroupPlayerShot {
			continue
		}
		v, _ := ecs.Get(f.sim.World(), ecs.Entity(b.Ref), component.VelocityComponent.Kind())
		if v.X != 980 || v.Y != 0 || !b.IgnorePlatforms {
			t.Fatalf("stream shot v=%+v ignore=%v", *v, b.IgnorePlatforms)
		}
	}

	f.sim.Tick(16, control.State{Pointer: cp.Vector{X: 100, Y: 1030}}, nil)
	if !f.sim.FacingLeft() {
		t.Fatalf("pointer on the left should face left")
	}
}

func TestMonkeyThrowCooldown(t *testing.T) {
	f := newFixture(t, settings.RoleMonkey, nil)
	f.phys.pos = cp.Vector{X: 600, Y: 1040}
	throwLeft := control.State{ThrowPressed: true, MoveX: -1}

	f.sim.Tick(16, throwLeft, nil)
	f.sim.Tick(16, throwLeft, nil)
	if got := f.countGroup(collision.GroupPlayerShot); got != 1 {
		t.Fatalf("got %d shots inside the cooldown, want 1", got)
	}
	f.sim.Tick(220, throwLeft, nil)
	if got := f.countGroup(collision.GroupPlayerShot); got != 2 {
		t.Fatalf("got %d shots after the cooldown, want 2", got)
	}
	for _, b := range f.sim.Colliders() {
		if b.Group != collision.GroupPlayerShot {
			continue
		}
		v, _ := ecs.Get(f.sim.World(), ecs.Entity(b.Ref), component.VelocityComponent.Kind())
		if v.X != -620 || v.Y < -40 || v.Y > 20 || b.IgnorePlatforms {
			t.Fatalf("banana v=%+v", *v)
		}
	}
}

func TestShotsBreakOnPlatforms(t *testing.T) {
	f := newFixture(t, settings.RoleMonkey, nil)
	banana := f.sim.spawnShot(collision.GroupPlayerShot, cp.Vector{X: 400, Y: 920}, cp.Vector{}, false)
	fire := f.sim.spawnShot(collision.GroupPlayerShot, cp.Vector{X: 400, Y: 920}, cp.Vector{}, true)

	var contacts []collision.Contact
	platform := Platforms()[1]
	for _, b := range f.sim.Colliders() {
		if b.Group == collision.GroupPlayerShot {
			contacts = append(contacts, collision.Contact{A: b, B: platform, Side: collision.SideTop})
		}
	}
	f.sim.Tick(10, control.State{}, contacts)
	if ecs.IsAlive(f.sim.World(), banana) {
		t.Fatalf("banana should break on the ledge")
	}
	if !ecs.IsAlive(f.sim.World(), fire) {
		t.Fatalf("fire stream ignores platforms")
	}
}

func TestSpudBarrage(t *testing.T) {
	f := newFixture(t, settings.RoleSpud, nil)
	f.phys.pos = PlayerSpawn
	away := control.State{Pointer: cp.Vector{X: -1000, Y: 0}}

	f.run(570, away)
	tr, _ := ecs.Get(f.sim.World(), f.sim.Boss(), component.TransformComponent.Kind())
	if tr.X < arenaMinX || tr.X > PlayerSpawn.X+240 || tr.Y < 680 || tr.Y > 980 {
		t.Fatalf("boss dodged to (%v,%v)", tr.X, tr.Y)
	}

	want := -560.0
	if f.phys.pos.X >= tr.X {
		want = 560
	}
	f.run(50, away)
	if got := f.countGroup(collision.GroupEnemyShot); got != 1 {
		t.Fatalf("got %d enemy shots at 620ms, want 1", got)
	}
	for _, b := range f.sim.Colliders() {
		if b.Group == collision.GroupEnemyShot {
			v, _ := ecs.Get(f.sim.World(), ecs.Entity(b.Ref), component.VelocityComponent.Kind())
			if v.X != want {
				t.Fatalf("enemy banana vx = %v, want %v (boss x %v, player x %v)", v.X, want, tr.X, f.phys.pos.X)
			}
		}
	}
}

func TestOpponentAttacksFire(t *testing.T) {
	tests := []struct {
		role  settings.Role
		group collision.Group
	}{
		{settings.RoleMonkey, collision.GroupPillar},
		{settings.RoleSpud, collision.GroupEnemyShot},
	}
	for _, tc := range tests {
		t.Run(string(tc.role), func(t *testing.T) {
			f := newFixture(t, tc.role, nil)
			f.phys.pos = PlayerSpawn
			if f.sim.script == nil {
				t.Fatalf("bundled attack script failed to load")
			}
			seen := 0
			for elapsed := 0.0; elapsed < 3000; elapsed += 10 {
				before := f.countGroup(tc.group)
				f.sim.Tick(10, control.State{Pointer: cp.Vector{X: -1000, Y: 0}}, nil)
				if after := f.countGroup(tc.group); after > before {
					seen += after - before
				}
			}
			if seen == 0 {
				t.Fatalf("no %v spawned in 3s of fighting", tc.group)
			}
		})
	}
}

type missingScripts struct{}

func (missingScripts) LoadScript(name string) ([]byte, error) {
	return nil, errors.New("gone")
}

func TestMissingScriptSkipsAttacks(t *testing.T) {
	f := newFixture(t, settings.RoleMonkey, missingScripts{})
	f.phys.pos = cp.Vector{X: 1000, Y: 1040}
	f.run(2000, control.State{})
	if ecs.Count(f.sim.World(), component.WarningComponent.Kind()) != 0 || f.countGroup(collision.GroupPillar) != 0 {
		t.Fatalf("attacks should be skipped without a script")
	}
	if f.sim.Phase() != PhaseFighting {
		t.Fatalf("fight should keep running")
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		role settings.Role
		cmd  func(*Simulation)
		want scene.Request
	}{
		{"leave", settings.RoleSpud, (*Simulation).Leave, scene.Request{Kind: scene.Menu, Role: settings.RoleSpud}},
		{"skip_monkey", settings.RoleMonkey, (*Simulation).Skip, scene.Request{Kind: scene.Menu, Role: settings.RoleMonkey}},
		{"skip_spud", settings.RoleSpud, (*Simulation).Skip, scene.Request{Kind: scene.Level, LevelID: "spud-level-4", Role: settings.RoleSpud}},
		{"restart", settings.RoleSpud, (*Simulation).Restart, scene.Request{Kind: scene.Encounter, Role: settings.RoleSpud}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.role, nil)
			tc.cmd(f.sim)
			if got := f.sim.Request(); got != tc.want {
				t.Fatalf("request = %+v, want %+v", got, tc.want)
			}
			if f.sim.Request().Pending() {
				t.Fatalf("request should clear")
			}
		})
	}
}

func TestPauseFreezesFight(t *testing.T) {
	f := newFixture(t, settings.RoleMonkey, nil)
	f.run(100, control.State{})
	now := f.sim.Now()

	f.sim.TogglePause()
	if !f.sim.Paused() || !f.phys.paused || f.sim.InputEnabled() {
		t.Fatalf("pause should freeze physics and input")
	}
	f.run(2000, control.State{})
	if f.sim.Now() != now || ecs.Count(f.sim.World(), component.WarningComponent.Kind()) != 0 {
		t.Fatalf("fight advanced while paused")
	}
	f.sim.TogglePause()
	if f.sim.Paused() || f.phys.paused || !f.sim.InputEnabled() {
		t.Fatalf("resume should restore physics and input")
	}
}
