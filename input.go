package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/control"
)

// Input samples the keyboard, mouse and first gamepad once per frame.
type Input struct{}

func NewInput() *Input {
	return &Input{}
}

// Sample returns this frame's input. view is the world-space top-left of
// the camera, used to put the mouse pointer into world coordinates.
func (i *Input) Sample(view cp.Vector) control.State {
	var s control.State

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		s.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		s.MoveX += 1
	}
	s.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyUp)
	s.JumpReleased = inpututil.IsKeyJustReleased(ebiten.KeySpace) || inpututil.IsKeyJustReleased(ebiten.KeyW) || inpututil.IsKeyJustReleased(ebiten.KeyUp)
	s.ThrowPressed = inpututil.IsKeyJustPressed(ebiten.KeyX) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]
		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -0.3 {
			s.MoveX = -1
		} else if leftX > 0.3 {
			s.MoveX = 1
		}
		s.JumpPressed = s.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		s.JumpReleased = s.JumpReleased || inpututil.IsStandardGamepadButtonJustReleased(gid, ebiten.StandardGamepadButtonRightBottom)
		s.ThrowPressed = s.ThrowPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
		s.Pause = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	}

	mx, my := ebiten.CursorPosition()
	s.Pointer = cp.Vector{X: view.X + float64(mx), Y: view.Y + float64(my)}

	s.Pause = s.Pause || inpututil.IsKeyJustPressed(ebiten.KeyP)
	s.Restart = inpututil.IsKeyJustPressed(ebiten.KeyR)
	s.Skip = inpututil.IsKeyJustPressed(ebiten.KeyS)
	s.Secret = inpututil.IsKeyJustPressed(ebiten.KeyT)
	s.Leave = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	return s
}
