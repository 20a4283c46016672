package level

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/clock"
	"github.com/milk9111/bananarun/common"
	"github.com/milk9111/bananarun/ecs"
	"github.com/milk9111/bananarun/ecs/component"
	"github.com/milk9111/bananarun/ecs/system"
	"github.com/rs/zerolog"
)

// Phase is a step of the banana-steal sequence.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInbound
	PhaseSteal
	PhaseEscape
	PhaseTail
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInbound:
		return "inbound"
	case PhaseSteal:
		return "steal"
	case PhaseEscape:
		return "escape"
	case PhaseTail:
		return "tail"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Boss offsets from the goal, and the stolen banana's final scale.
var (
	cutsceneStart  = cp.Vector{X: 320, Y: -80}
	cutsceneGrab   = cp.Vector{X: 25, Y: -10}
	cutsceneEscape = cp.Vector{X: 560, Y: -130}
)

const stolenScale = 0.25

// PhaseDurations splits a cutscene of total length D.
type PhaseDurations struct {
	Inbound float64
	Steal   float64
	Escape  float64
	Tail    float64
}

func SplitDuration(total float64) PhaseDurations {
	d := PhaseDurations{
		Inbound: math.Max(500, math.Floor(total*0.32)),
		Steal:   math.Max(220, math.Floor(total*0.18)),
		Escape:  math.Max(500, math.Floor(total*0.34)),
	}
	d.Tail = math.Max(100, total-d.Inbound-d.Steal-d.Escape)
	return d
}

func (d PhaseDurations) Total() float64 {
	return d.Inbound + d.Steal + d.Escape + d.Tail
}

// Cutscene is the boss-steal state machine. Each phase schedules the next
// advance on the clock; nothing else moves it forward.
type Cutscene struct {
	phase     Phase
	durations PhaseDurations
	clock     *clock.Clock
	world     *ecs.World
	goal      ecs.Entity
	goalPos   cp.Vector
	boss      ecs.Entity
	task      *clock.Task
	onDone    func()
	log       zerolog.Logger
}

func newCutscene(c *clock.Clock, w *ecs.World, goal ecs.Entity, goalPos cp.Vector, durationMs float64, onDone func(), log zerolog.Logger) *Cutscene {
	return &Cutscene{
		durations: SplitDuration(durationMs),
		clock:     c,
		world:     w,
		goal:      goal,
		goalPos:   goalPos,
		onDone:    onDone,
		log:       log,
	}
}

func (c *Cutscene) Phase() Phase { return c.phase }

func (c *Cutscene) Durations() PhaseDurations { return c.durations }

// Boss is the thief entity while the sequence runs.
func (c *Cutscene) Boss() ecs.Entity { return c.boss }

// start spawns the thief and enters the first phase. Calling it again is a
// no-op.
func (c *Cutscene) start() {
	if c.phase != PhaseIdle {
		return
	}
	c.boss = ecs.CreateEntity(c.world)
	from := c.goalPos.Add(cutsceneStart)
	_ = ecs.Add(c.world, c.boss, component.TransformComponent.Kind(), &component.Transform{X: from.X, Y: from.Y, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(c.world, c.boss, component.VisualComponent.Kind(), &component.Visual{Alpha: 1})
	_ = ecs.Add(c.world, c.boss, component.BossComponent.Kind(), &component.Boss{})
	c.advance()
}

func (c *Cutscene) advance() {
	switch c.phase {
	case PhaseIdle:
		c.enter(PhaseInbound, c.durations.Inbound)
		to := c.goalPos.Add(cutsceneGrab)
		system.StartTween(c.world, c.boss, component.TweenPosition, component.Pose{X: to.X, Y: to.Y}, c.durations.Inbound, common.EaseQuadOut)
	case PhaseInbound:
		c.place(c.boss, c.goalPos.Add(cutsceneGrab))
		c.enter(PhaseSteal, c.durations.Steal)
		if tw := system.StartTween(c.world, c.goal, component.TweenAlpha|component.TweenScale, component.Pose{Alpha: 0, Scale: stolenScale}, c.durations.Steal, common.EaseBackIn); tw != nil {
			tw.HideOnDone = true
		}
	case PhaseSteal:
		ecs.Remove(c.world, c.goal, component.TweenComponent.Kind())
		if vis, ok := ecs.Get(c.world, c.goal, component.VisualComponent.Kind()); ok {
			vis.Alpha, vis.Hidden = 0, true
		}
		c.enter(PhaseEscape, c.durations.Escape)
		to := c.goalPos.Add(cutsceneEscape)
		system.StartTween(c.world, c.boss, component.TweenPosition, component.Pose{X: to.X, Y: to.Y}, c.durations.Escape, common.EaseQuadIn)
	case PhaseEscape:
		c.place(c.boss, c.goalPos.Add(cutsceneEscape))
		c.enter(PhaseTail, c.durations.Tail)
	case PhaseTail:
		c.phase = PhaseDone
		c.task = nil
		ecs.DestroyEntity(c.world, c.boss)
		c.log.Info().Str("phase", c.phase.String()).Msg("cutscene finished")
		if c.onDone != nil {
			c.onDone()
		}
	}
}

func (c *Cutscene) enter(p Phase, durationMs float64) {
	c.phase = p
	c.log.Debug().Str("phase", p.String()).Float64("duration_ms", durationMs).Msg("cutscene phase")
	c.task = c.clock.After(durationMs, c.advance)
}

func (c *Cutscene) place(e ecs.Entity, at cp.Vector) {
	ecs.Remove(c.world, e, component.TweenComponent.Kind())
	if t, ok := ecs.Get(c.world, e, component.TransformComponent.Kind()); ok {
		t.X, t.Y = at.X, at.Y
	}
}

func (c *Cutscene) stop() {
	c.task.Cancel()
	c.task = nil
}
