package level

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/collision"
	"github.com/milk9111/bananarun/content"
	"github.com/milk9111/bananarun/ecs"
	"github.com/milk9111/bananarun/ecs/component"
	"github.com/milk9111/bananarun/scene"
	"github.com/milk9111/bananarun/settings"
)

// Name identifies the scene in logs and hooks.
func (r *Runtime) Name() string {
	return "level:" + r.def.ID
}

// TogglePause freezes or resumes the clock, physics and input. It is
// ignored during the cutscene and after the level is finished.
func (r *Runtime) TogglePause() {
	switch r.state {
	case StateActive:
		r.state = StatePaused
		r.clock.Pause()
		r.physics.Pause()
		r.inputBeforePause = r.mover.InputEnabled
		r.mover.InputEnabled = false
		r.hooks.PauseVisible(true)
		r.log.Debug().Msg("paused")
	case StatePaused:
		r.state = StateActive
		r.clock.Resume()
		r.physics.Resume()
		r.mover.InputEnabled = r.inputBeforePause
		r.hooks.PauseVisible(false)
		r.log.Debug().Msg("resumed")
	}
}

func (r *Runtime) Paused() bool {
	return r.state == StatePaused
}

// Restart reloads the current level.
func (r *Runtime) Restart() {
	if r.state == StatePaused {
		return
	}
	r.request = scene.Request{Kind: scene.Level, LevelID: r.def.ID, Role: r.role}
}

// Skip jumps ahead: to the boss event's target for the monkey, otherwise
// to the next level or the win screen.
func (r *Runtime) Skip() {
	if r.state != StateActive {
		return
	}
	if r.role == settings.RoleMonkey && r.def.BossEvent != nil {
		r.request = scene.Request{Kind: scene.Level, LevelID: r.def.BossEvent.NextLevelID, Role: r.role}
		return
	}
	r.requestNextOrWin()
}

// SecretEncounter leaves for the secret fight.
func (r *Runtime) SecretEncounter(role settings.Role) {
	if r.state == StatePaused {
		return
	}
	if role == "" {
		role = settings.RoleSpud
	}
	r.request = scene.Request{Kind: scene.Encounter, Role: role}
}

// Leave returns to the menu.
func (r *Runtime) Leave() {
	if r.state == StatePaused {
		return
	}
	r.request = scene.Request{Kind: scene.Menu, Role: r.role}
}

// Request returns and clears the pending scene request.
func (r *Runtime) Request() scene.Request {
	req := r.request
	r.request = scene.Request{}
	return req
}

// Teardown cancels every scheduled task and drops all actors.
func (r *Runtime) Teardown() {
	r.hazards.Stop()
	if r.cutscene != nil {
		r.cutscene.stop()
	}
	r.clock.CancelAll()
	ecs.Clear(r.world)
	if r.state == StatePaused {
		r.physics.Resume()
		r.hooks.PauseVisible(false)
	}
	r.log.Debug().Msg("level torn down")
}

// Colliders lists the level's boxes for the physics collaborator.
func (r *Runtime) Colliders() []collision.Box {
	def := r.def
	out := []collision.Box{{
		Group:  collision.GroupGroundDanger,
		ID:     "ground_danger",
		Center: cp.Vector{X: def.WorldWidth / 2, Y: def.WorldHeight - groundDangerInset},
		Width:  def.WorldWidth,
		Height: groundDangerHeight,
	}}
	out = append(out, r.hazards.colliders()...)
	out = append(out, r.checks.colliders()...)
	out = append(out, r.springs.colliders()...)
	out = append(out, collision.Box{
		Group:  collision.GroupGoal,
		ID:     "goal",
		Center: cp.Vector{X: def.Goal.X, Y: def.Goal.Y},
		Width:  def.Goal.Width,
		Height: def.Goal.Height,
	})
	return out
}

func (r *Runtime) Def() *content.Level       { return r.def }
func (r *Runtime) Role() settings.Role       { return r.role }
func (r *Runtime) State() State              { return r.state }
func (r *Runtime) Player() PlayerState       { return r.player }
func (r *Runtime) Camera() Camera            { return r.camera }
func (r *Runtime) View() cp.Vector           { return cp.Vector{X: r.camera.ScrollX, Y: r.camera.ScrollY} }
func (r *Runtime) World() *ecs.World         { return r.world }
func (r *Runtime) Now() float64              { return r.clock.Now() }
func (r *Runtime) Checkpoints() *Checkpoints { return r.checks }
func (r *Runtime) Springs() *Springs         { return r.springs }
func (r *Runtime) AutoScroll() *AutoScroll   { return r.scroll }
func (r *Runtime) Cutscene() *Cutscene       { return r.cutscene }
func (r *Runtime) Goal() ecs.Entity          { return r.goal }
func (r *Runtime) InputEnabled() bool        { return r.mover.InputEnabled }
func (r *Runtime) FacingLeft() bool          { return r.mover.FacingLeft }

// PendingTasks is the number of live clock tasks.
func (r *Runtime) PendingTasks() int { return r.clock.Len() }

// HazardCount counts live hazard actors.
func (r *Runtime) HazardCount() int {
	return ecs.Count(r.world, component.HazardComponent.Kind())
}
