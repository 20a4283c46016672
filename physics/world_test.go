package physics

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/collision"
)

func testWorld() *World {
	return NewWorld(Config{
		WorldWidth:  1000,
		WorldHeight: 1000,
		Gravity:     1200,
		Platforms: []collision.Box{
			{Group: collision.GroupPlatform, ID: "floor", Center: cp.Vector{X: 500, Y: 600}, Width: 800, Height: 40},
		},
		Spawn:        cp.Vector{X: 500, Y: 400},
		PlayerWidth:  30,
		PlayerHeight: 38,
	})
}

func TestPlayerLandsOnPlatform(t *testing.T) {
	pw := testWorld()
	for i := 0; i < 120; i++ {
		pw.Step(1000.0 / 60)
	}
	if !pw.Grounded() {
		t.Fatalf("expected player to be grounded")
	}
	wantY := 600.0 - 20 - 19
	if got := pw.Position().Y; math.Abs(got-wantY) > 3 {
		t.Fatalf("expected player resting near y=%v, got %v", wantY, got)
	}
}

func TestPausedWorldDoesNotMove(t *testing.T) {
	pw := testWorld()
	pw.SetVelocity(cp.Vector{X: 120, Y: -300})
	before := pw.Position()
	pw.Pause()
	pw.Step(100)
	if pw.Position() != before {
		t.Fatalf("paused world moved from %v to %v", before, pw.Position())
	}
	if pw.Velocity() != (cp.Vector{X: 120, Y: -300}) {
		t.Fatalf("paused world changed velocity: %v", pw.Velocity())
	}
	pw.Resume()
	pw.Step(100)
	if pw.Position() == before {
		t.Fatalf("resumed world should move")
	}
}

func TestContactsUsePlayerBox(t *testing.T) {
	pw := testWorld()
	pw.SetPosition(cp.Vector{X: 100, Y: 100})
	actors := []collision.Box{
		{Group: collision.GroupCheckpoint, ID: "near", Center: cp.Vector{X: 110, Y: 100}, Width: 32, Height: 74},
		{Group: collision.GroupCheckpoint, ID: "far", Center: cp.Vector{X: 800, Y: 100}, Width: 32, Height: 74},
	}
	got := pw.Contacts(actors)
	if len(got) != 1 || got[0].B.ID != "near" {
		t.Fatalf("expected one contact with near, got %+v", got)
	}
}

func TestSetPositionTeleports(t *testing.T) {
	tests := []struct {
		name string
		to   cp.Vector
	}{
		{"left_of_spawn", cp.Vector{X: 200, Y: 400}},
		{"right_of_spawn", cp.Vector{X: 850, Y: 300}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pw := testWorld()
			pw.SetPosition(tc.to)
			if got := pw.PlayerBox().Center; got != tc.to {
				t.Fatalf("player box at %v, want %v", got, tc.to)
			}
			for i := 0; i < 120; i++ {
				pw.Step(1000.0 / 60)
			}
			if !pw.Grounded() {
				t.Fatalf("expected player to land after teleport")
			}
			if got := pw.Position().X; math.Abs(got-tc.to.X) > 1 {
				t.Fatalf("player drifted to x=%v, want %v", got, tc.to.X)
			}
		})
	}
}
