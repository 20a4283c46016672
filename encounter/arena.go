package encounter

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/collision"
)

const (
	ArenaWidth  = 2400.0
	ArenaHeight = 1200.0

	arenaMinX  = 120.0
	arenaMaxX  = ArenaWidth - 120
	groundTopY = ArenaHeight - 100
	dodgeMinY  = 160.0
	dodgeMaxY  = groundTopY + 20

	fallHitY = ArenaHeight + 60
)

var (
	// PlayerSpawn is where the player enters the arena.
	PlayerSpawn = cp.Vector{X: 220, Y: 1040}
	bossSpawn   = cp.Vector{X: 2060, Y: 950}
)

type ledge struct {
	x, y, w, h float64
}

var arenaLedges = []ledge{
	{x: ArenaWidth / 2, y: ArenaHeight - 40, w: ArenaWidth + 200, h: 80},
	{x: 400, y: 920, w: 300, h: 34},
	{x: 880, y: 820, w: 260, h: 34},
	{x: 1300, y: 740, w: 260, h: 34},
	{x: 1760, y: 820, w: 320, h: 34},
	{x: 2080, y: 700, w: 280, h: 34},
}

// Platforms returns the arena floor and ledges.
func Platforms() []collision.Box {
	out := make([]collision.Box, 0, len(arenaLedges))
	for i, l := range arenaLedges {
		out = append(out, collision.Box{
			Group:  collision.GroupPlatform,
			ID:     "arena",
			Ref:    uint64(i),
			Center: cp.Vector{X: l.x, Y: l.y},
			Width:  l.w,
			Height: l.h,
		})
	}
	return out
}
