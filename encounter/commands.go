package encounter

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/collision"
	"github.com/milk9111/bananarun/control"
	"github.com/milk9111/bananarun/ecs"
	"github.com/milk9111/bananarun/ecs/component"
	"github.com/milk9111/bananarun/scene"
	"github.com/milk9111/bananarun/settings"
)

// TogglePause freezes the fight while it is still running.
func (s *Simulation) TogglePause() {
	if s.phase != PhaseFighting {
		return
	}
	s.paused = !s.paused
	if s.paused {
		s.clock.Pause()
		s.physics.Pause()
		s.inputBeforePause = s.mover.InputEnabled
		s.mover.InputEnabled = false
	} else {
		s.clock.Resume()
		s.physics.Resume()
		s.mover.InputEnabled = s.inputBeforePause
	}
	s.hooks.PauseVisible(s.paused)
}

func (s *Simulation) Paused() bool { return s.paused }

// Restart starts the fight over with the same role.
func (s *Simulation) Restart() {
	s.request = scene.Request{Kind: scene.Encounter, Role: s.cfg.role}
}

// Skip leaves the same way a win does.
func (s *Simulation) Skip() {
	s.request = s.cfg.exit
}

// SecretEncounter swaps to the fight for role.
func (s *Simulation) SecretEncounter(role settings.Role) {
	if role == "" {
		role = s.cfg.role
	}
	s.request = scene.Request{Kind: scene.Encounter, Role: role}
}

func (s *Simulation) Leave() {
	s.request = scene.Request{Kind: scene.Menu, Role: s.cfg.role}
}

func (s *Simulation) Request() scene.Request {
	req := s.request
	s.request = scene.Request{}
	return req
}

// Teardown cancels every timer, drops all actors and gives the random jump
// setting back.
func (s *Simulation) Teardown() {
	s.stopAttacks()
	s.clock.CancelAll()
	ecs.Clear(s.world)
	if s.restoreRandomJump {
		s.store.SetRandomJump(s.prevRandomJump)
		s.restoreRandomJump = false
	}
	if s.paused {
		s.paused = false
		s.physics.Resume()
		s.hooks.PauseVisible(false)
	}
	s.log.Debug().Msg("secret fight torn down")
}

// Colliders lists shots, pillars and the opponent.
func (s *Simulation) Colliders() []collision.Box {
	var out []collision.Box
	ecs.ForEach2(s.world, component.TransformComponent.Kind(), component.HitboxComponent.Kind(), func(e ecs.Entity, t *component.Transform, hb *component.Hitbox) {
		out = append(out, collision.Box{
			Group:           hb.Group,
			ID:              hb.Group.String(),
			Ref:             uint64(e),
			Center:          cp.Vector{X: t.X + hb.OffsetX, Y: t.Y + hb.OffsetY},
			Width:           hb.Width,
			Height:          hb.Height,
			IgnorePlatforms: hb.IgnorePlatforms,
		})
	})
	return out
}

func (s *Simulation) Role() settings.Role   { return s.cfg.role }
func (s *Simulation) Phase() Phase          { return s.phase }
func (s *Simulation) Hearts() int           { return s.hearts }
func (s *Simulation) BossHealth() int       { return s.bossHealth }
func (s *Simulation) Boss() ecs.Entity      { return s.boss }
func (s *Simulation) World() *ecs.World     { return s.world }
func (s *Simulation) Now() float64          { return s.clock.Now() }
func (s *Simulation) View() cp.Vector       { return s.view }
func (s *Simulation) InputEnabled() bool    { return s.mover.InputEnabled }
func (s *Simulation) FacingLeft() bool      { return s.facingLeft }
func (s *Simulation) PendingTasks() int     { return s.clock.Len() }
func (s *Simulation) PlayerSize() cp.Vector { return control.PlayerSize(s.cfg.role) }
