package level

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/collision"
	"github.com/milk9111/bananarun/content"
)

const (
	checkpointWidth  = 32.0
	checkpointHeight = 74.0
)

// Marker is one checkpoint flag.
type Marker struct {
	ID     string
	Pos    cp.Vector
	Spawn  cp.Vector
	Active bool
}

// Checkpoints tracks the single active checkpoint and the respawn anchor.
type Checkpoints struct {
	markers []Marker
	active  string
	last    cp.Vector
}

func newCheckpoints(defs []content.Checkpoint, spawn cp.Vector) *Checkpoints {
	c := &Checkpoints{last: spawn, markers: make([]Marker, 0, len(defs))}
	for _, d := range defs {
		c.markers = append(c.markers, Marker{
			ID:    d.ID,
			Pos:   cp.Vector{X: d.X, Y: d.Y},
			Spawn: cp.Vector{X: d.Spawn.X, Y: d.Spawn.Y},
		})
	}
	return c
}

// Activate makes id the active checkpoint. It reports false, and changes
// nothing, when id is unknown or already active.
func (c *Checkpoints) Activate(id string) bool {
	if id == "" || id == c.active {
		return false
	}
	idx := -1
	for i := range c.markers {
		if c.markers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	for i := range c.markers {
		c.markers[i].Active = false
	}
	c.markers[idx].Active = true
	c.active = id
	c.last = c.markers[idx].Spawn
	return true
}

// ActiveID is "" until a checkpoint is touched.
func (c *Checkpoints) ActiveID() string { return c.active }

// Anchor is where the player respawns.
func (c *Checkpoints) Anchor() cp.Vector { return c.last }

func (c *Checkpoints) Markers() []Marker { return c.markers }

func (c *Checkpoints) colliders() []collision.Box {
	out := make([]collision.Box, 0, len(c.markers))
	for i, m := range c.markers {
		out = append(out, collision.Box{
			Group:  collision.GroupCheckpoint,
			ID:     m.ID,
			Ref:    uint64(i),
			Center: m.Pos,
			Width:  checkpointWidth,
			Height: checkpointHeight,
		})
	}
	return out
}
