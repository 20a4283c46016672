package control

import (
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/common"
)

const (
	baseMoveSpeed = 260.0
	baseJumpSpeed = 610.0
	coyoteMs      = 110.0
	jumpBufferMs  = 120.0
	jumpCutFactor = 0.55
	jumpCutMinVY  = -160.0

	randomJumpMinMs = 450
	randomJumpMaxMs = 1200

	stickDeadzone = 0.2
)

// Mover turns input into player velocity: horizontal run, coyote-time and
// buffered jumps, variable jump height, and the optional random-jump aid.
type Mover struct {
	InputEnabled bool
	FacingLeft   bool

	rng              *rand.Rand
	lastGroundedAt   float64
	lastJumpPressAt  float64
	jumpConsumed     bool
	nextRandomJumpAt float64
}

func NewMover(rng *rand.Rand) *Mover {
	return &Mover{
		InputEnabled:     true,
		rng:              rng,
		lastGroundedAt:   -1000,
		lastJumpPressAt:  -1000,
		nextRandomJumpAt: -1,
	}
}

// Update applies one tick. speed is the global speed multiplier.
func (m *Mover) Update(now float64, in State, body Body, speed float64, randomJump bool) {
	if m == nil || body == nil {
		return
	}
	vel := body.Velocity()
	if !m.InputEnabled {
		body.SetVelocity(cp.Vector{X: 0, Y: vel.Y})
		return
	}

	moveSpeed := baseMoveSpeed * speed
	jumpSpeed := baseJumpSpeed * speed

	switch {
	case in.MoveX < -stickDeadzone:
		vel.X = -moveSpeed
		m.FacingLeft = true
	case in.MoveX > stickDeadzone:
		vel.X = moveSpeed
		m.FacingLeft = false
	default:
		vel.X = 0
	}

	grounded := body.Grounded()
	if grounded {
		m.lastGroundedAt = now
		m.jumpConsumed = false
	}

	if !randomJump {
		m.nextRandomJumpAt = -1
	} else {
		if m.nextRandomJumpAt < 0 {
			m.nextRandomJumpAt = now + float64(common.Between(m.rng, randomJumpMinMs, randomJumpMaxMs))
		}
		if grounded && now >= m.nextRandomJumpAt {
			m.lastJumpPressAt = now
			m.nextRandomJumpAt = now + float64(common.Between(m.rng, randomJumpMinMs, randomJumpMaxMs))
		}
	}

	if in.JumpPressed {
		m.lastJumpPressAt = now
	}

	buffered := now-m.lastJumpPressAt <= jumpBufferMs
	coyote := now-m.lastGroundedAt <= coyoteMs
	if !m.jumpConsumed && buffered && coyote {
		vel.Y = -jumpSpeed
		m.jumpConsumed = true
		m.lastJumpPressAt = -1000
	}

	if in.JumpReleased && vel.Y < jumpCutMinVY {
		vel.Y *= jumpCutFactor
	}

	body.SetVelocity(vel)
}
