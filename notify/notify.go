// Package notify carries fire-and-forget notices from the simulation to
// whatever draws the HUD.
package notify

import "github.com/rs/zerolog"

// Hooks receives UI notices. Implementations must not call back into the
// simulation.
type Hooks interface {
	HeartsChanged(hearts, maxHearts int)
	Banner(text string, durationMs float64)
	CheckpointFlash(id string)
	PauseVisible(visible bool)
	Impact(x, y float64)
	OpponentHealth(health int, label string)
	SceneChanged(name string)
}

// Nop discards every notice.
type Nop struct{}

func (Nop) HeartsChanged(int, int)     {}
func (Nop) Banner(string, float64)     {}
func (Nop) CheckpointFlash(string)     {}
func (Nop) PauseVisible(bool)          {}
func (Nop) Impact(float64, float64)    {}
func (Nop) OpponentHealth(int, string) {}
func (Nop) SceneChanged(string)        {}

// OrNop returns h, or Nop when h is nil.
func OrNop(h Hooks) Hooks {
	if h == nil {
		return Nop{}
	}
	return h
}

// Logged forwards to Next and logs each notice at debug level.
type Logged struct {
	Next   Hooks
	Logger zerolog.Logger
}

func (l Logged) HeartsChanged(hearts, maxHearts int) {
	l.Logger.Debug().Int("hearts", hearts).Int("max", maxHearts).Msg("hearts changed")
	OrNop(l.Next).HeartsChanged(hearts, maxHearts)
}

func (l Logged) Banner(text string, durationMs float64) {
	l.Logger.Debug().Str("text", text).Float64("duration_ms", durationMs).Msg("banner")
	OrNop(l.Next).Banner(text, durationMs)
}

func (l Logged) CheckpointFlash(id string) {
	l.Logger.Debug().Str("checkpoint", id).Msg("checkpoint flash")
	OrNop(l.Next).CheckpointFlash(id)
}

func (l Logged) PauseVisible(visible bool) {
	l.Logger.Debug().Bool("visible", visible).Msg("pause overlay")
	OrNop(l.Next).PauseVisible(visible)
}

func (l Logged) Impact(x, y float64) {
	OrNop(l.Next).Impact(x, y)
}

func (l Logged) OpponentHealth(health int, label string) {
	l.Logger.Debug().Int("health", health).Str("label", label).Msg("opponent health")
	OrNop(l.Next).OpponentHealth(health, label)
}

func (l Logged) SceneChanged(name string) {
	l.Logger.Info().Str("scene", name).Msg("scene changed")
	OrNop(l.Next).SceneChanged(name)
}
