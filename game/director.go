// Package game switches between the running scenes. It owns the physics
// world built for the current scene and forwards host commands to it.
package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/collision"
	"github.com/milk9111/bananarun/common"
	"github.com/milk9111/bananarun/content"
	"github.com/milk9111/bananarun/control"
	"github.com/milk9111/bananarun/encounter"
	"github.com/milk9111/bananarun/level"
	"github.com/milk9111/bananarun/notify"
	"github.com/milk9111/bananarun/physics"
	"github.com/milk9111/bananarun/scene"
	"github.com/milk9111/bananarun/settings"
	"github.com/rs/zerolog"
)

type Config struct {
	Catalog  *content.Catalog
	Source   content.Source
	Settings *settings.Store
	Hooks    notify.Hooks
	Logger   zerolog.Logger
	Seed     uint64
}

// Director runs exactly one scene at a time. Scene requests are applied at
// the end of Tick, after the old scene is torn down.
type Director struct {
	catalog *content.Catalog
	source  content.Source
	store   *settings.Store
	hooks   notify.Hooks
	log     zerolog.Logger
	rng     *rand.Rand

	scene   scene.Scene
	physics *physics.World
}

func New(cfg Config) *Director {
	store := cfg.Settings
	if store == nil {
		store = settings.NewStore(settings.Defaults())
	}
	return &Director{
		catalog: cfg.Catalog,
		source:  cfg.Source,
		store:   store,
		hooks:   notify.OrNop(cfg.Hooks),
		log:     cfg.Logger.With().Str("component", "director").Logger(),
		rng:     common.NewRand(cfg.Seed),
	}
}

// StartLevel replaces the running scene with level id for role. An empty
// role keeps the settings role.
func (d *Director) StartLevel(id string, role settings.Role) {
	d.apply(scene.Request{Kind: scene.Level, LevelID: id, Role: role})
}

// StartEncounter replaces the running scene with the secret fight.
func (d *Director) StartEncounter(role settings.Role) {
	d.apply(scene.Request{Kind: scene.Encounter, Role: role})
}

func (d *Director) ShowMenu() {
	d.apply(scene.Request{Kind: scene.Menu})
}

func (d *Director) Restart() {
	if d.scene != nil {
		d.scene.Restart()
	}
}

func (d *Director) Skip() {
	if d.scene != nil {
		d.scene.Skip()
	}
}

// TriggerSecretEncounter asks the running scene to leave for the secret
// fight. An empty role lets the scene pick.
func (d *Director) TriggerSecretEncounter(role settings.Role) {
	if d.scene != nil {
		d.scene.SecretEncounter(role)
	}
}

func (d *Director) TogglePause() {
	if d.scene != nil {
		d.scene.TogglePause()
	}
}

func (d *Director) Leave() {
	if d.scene != nil {
		d.scene.Leave()
	}
}

// Tick maps the command keys in in, ticks the scene and then applies the
// scene's pending request.
func (d *Director) Tick(dt float64, in control.State, contacts []collision.Contact) {
	if d.scene == nil {
		return
	}
	d.dispatch(in)
	d.scene.Tick(dt, in, contacts)
	if req := d.scene.Request(); req.Pending() {
		d.apply(req)
	}
}

// Frame is one host frame: contacts from the physics world, the scene tick,
// then the physics step.
func (d *Director) Frame(dt float64, in control.State) {
	var contacts []collision.Contact
	if d.physics != nil && d.scene != nil {
		contacts = d.physics.Contacts(d.scene.Colliders())
	}
	d.Tick(dt, in, contacts)
	if d.physics != nil {
		d.physics.Step(dt)
	}
}

func (d *Director) dispatch(in control.State) {
	switch {
	case in.Pause:
		d.TogglePause()
	case in.Restart:
		d.Restart()
	case in.Skip:
		d.Skip()
	case in.Secret:
		d.TriggerSecretEncounter("")
	case in.Leave:
		d.Leave()
	}
}

func (d *Director) apply(req scene.Request) {
	if d.scene != nil {
		d.scene.Teardown()
	}
	d.physics = nil

	role := req.Role
	if role == "" {
		role = d.store.Snapshot().Role
	}
	switch req.Kind {
	case scene.Level:
		d.scene = d.loadLevel(req.LevelID, role)
	case scene.Encounter:
		d.scene = d.loadEncounter(role)
	case scene.Win:
		d.scene = newCard(cardWin, role, d.firstLevel(), d.hooks)
	default:
		d.scene = newCard(cardMenu, role, d.firstLevel(), d.hooks)
	}

	name := d.scene.Name()
	d.hooks.SceneChanged(name)
	d.log.Info().Str("scene", name).Str("request", req.Kind.String()).Msg("scene changed")
}

func (d *Director) loadLevel(id string, role settings.Role) scene.Scene {
	def := d.catalog.Lookup(id)
	if def == nil {
		d.log.Error().Str("level", id).Msg("no levels loaded")
		return newCard(cardMenu, role, "", d.hooks)
	}
	size := control.PlayerSize(role)
	d.physics = physics.NewWorld(physics.Config{
		WorldWidth:   def.WorldWidth,
		WorldHeight:  def.WorldHeight,
		Platforms:    levelPlatforms(def),
		Spawn:        cp.Vector{X: def.PlayerSpawn.X, Y: def.PlayerSpawn.Y},
		PlayerWidth:  size.X,
		PlayerHeight: size.Y,
	})
	return level.Load(def.ID, role, level.Deps{
		Catalog:  d.catalog,
		Settings: d.store,
		Physics:  d.physics,
		Hooks:    d.hooks,
		Logger:   d.log,
		Rand:     d.rng,
	})
}

func (d *Director) loadEncounter(role settings.Role) scene.Scene {
	size := control.PlayerSize(role)
	d.physics = physics.NewWorld(physics.Config{
		WorldWidth:   encounter.ArenaWidth,
		WorldHeight:  encounter.ArenaHeight,
		Platforms:    encounter.Platforms(),
		Spawn:        encounter.PlayerSpawn,
		PlayerWidth:  size.X,
		PlayerHeight: size.Y,
	})
	return encounter.Start(role, encounter.Deps{
		Settings: d.store,
		Physics:  d.physics,
		Hooks:    d.hooks,
		Logger:   d.log,
		Rand:     d.rng,
		Scripts:  d.source,
	})
}

func (d *Director) firstLevel() string {
	return d.catalog.FirstLevelID()
}

func levelPlatforms(def *content.Level) []collision.Box {
	out := make([]collision.Box, 0, len(def.Platforms))
	for i, p := range def.Platforms {
		out = append(out, collision.Box{
			Group:  collision.GroupPlatform,
			ID:     fmt.Sprintf("%s/platform-%d", def.ID, i),
			Ref:    uint64(i),
			Center: cp.Vector{X: p.X, Y: p.Y},
			Width:  p.Width,
			Height: p.Height,
		})
	}
	return out
}

// Scene is the running scene, nil before the first start.
func (d *Director) Scene() scene.Scene        { return d.scene }
func (d *Director) Physics() *physics.World   { return d.physics }
func (d *Director) Catalog() *content.Catalog { return d.catalog }
func (d *Director) Settings() *settings.Store { return d.store }
