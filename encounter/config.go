package encounter

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/scene"
	"github.com/milk9111/bananarun/settings"
)

const (
	startingHearts       = 5
	playerInvulnerableMs = 900.0
	bossFlashMs          = 90.0
	winDelayMs           = 2200.0
	lossDelayMs          = 1400.0

	bobDurationMs   = 520.0
	dodgeDurationMs = 250.0

	throwCooldownMs  = 220.0
	throwOffsetX     = 28.0
	throwOffsetY     = -12.0
	throwSpeed       = 620.0
	streamIntervalMs = 35.0
	streamSpeed      = 980.0
	enemyThrowX      = 22.0
	enemyThrowY      = -10.0
	enemyThrowSpeed  = 560.0
	shotSize         = 20.0

	pillarDelayMs    = 500.0
	pillarLifeMs     = 920.0
	pillarWidth      = 52.0
	pillarHeight     = 240.0
	pillarWarningMs  = 420.0
	pillarWarningR   = 14.0
	pillarFlickerMs  = 90.0
	pillarFlickerMin = 0.72

	knockbackX = 130
	knockbackY = -380.0

	lossMessage = "Defeated! Restarting secret fight..."
)

// attack is one scripted opponent routine on a repeating timer.
type attack struct {
	name       string
	intervalMs float64
}

// config is one of the two mirrored fights.
type config struct {
	role         settings.Role
	bossHealth   int
	bossInvulnMs float64
	bossBox      cp.Vector
	bobY         float64
	script       string
	attacks      []attack
	// stream replaces the throw key with a pointer-aimed stream.
	stream          bool
	pillarsHurt     bool
	forceRandomJump bool
	prompt          string
	winText         string
	healthLabel     string
	exit            scene.Request
}

var monkeyFight = config{
	role:         settings.RoleMonkey,
	bossHealth:   22,
	bossInvulnMs: 160,
	bossBox:      cp.Vector{X: 84, Y: 90},
	bobY:         918,
	script:       "pillars.tengo",
	attacks:      []attack{{name: "pillars", intervalMs: 900}},
	pillarsHurt:  true,
	prompt:       "Secret Fight: X throw bananas, S skip, ESC leave",
	winText:      "Secret clear! Yellow Spud defeated. Returning to menu...",
	healthLabel:  "Boss HP",
	exit:         scene.Request{Kind: scene.Menu, Role: settings.RoleMonkey},
}

var spudFight = config{
	role:         settings.RoleSpud,
	bossHealth:   500,
	bossInvulnMs: 28,
	bossBox:      cp.Vector{X: 30, Y: 38},
	bobY:         932,
	script:       "barrage.tengo",
	attacks: []attack{
		{name: "throw", intervalMs: 620},
		{name: "dodge", intervalMs: 320},
	},
	stream:          true,
	forceRandomJump: true,
	prompt:          "Secret Fight: You are Spud. Random jump forced, mouse aims fire stream, dodge monkey bananas, S skip",
	winText:         "Secret clear! Monkey defeated. Spud gauntlet begins!",
	healthLabel:     "Monkey HP",
	exit:            scene.Request{Kind: scene.Level, LevelID: "spud-level-4", Role: settings.RoleSpud},
}

func configFor(role settings.Role) config {
	if role == settings.RoleSpud {
		return spudFight
	}
	return monkeyFight
}
