package content

import (
	"errors"
	"fmt"

	"github.com/milk9111/bananarun/common"
)

var ErrInvalidLevel = errors.New("content: invalid level")

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Rect is a center-anchored box.
type Rect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Checkpoint struct {
	ID    string  `yaml:"id"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Spawn Point   `yaml:"spawn"`
}

type HazardKind string

const (
	HazardFalling HazardKind = "falling"
	HazardBoulder HazardKind = "boulder"
	HazardSnail   HazardKind = "snail"
	HazardTurret  HazardKind = "turret"
)

// HazardConfig holds the optional per-kind tuning values. Nil means the
// value was not set and the kind default applies.
type HazardConfig struct {
	Speed           *float64 `yaml:"speed"`
	ShootIntervalMs *float64 `yaml:"shoot_interval_ms"`
	ProjectileSpeed *float64 `yaml:"projectile_speed"`
}

type Hazard struct {
	ID        string       `yaml:"id"`
	Kind      HazardKind   `yaml:"type"`
	Position  Point        `yaml:"position"`
	Path      []Point      `yaml:"path"`
	Damage    float64      `yaml:"damage"`
	Knockback Point        `yaml:"knockback"`
	RespawnMs *float64     `yaml:"respawn_ms"`
	Config    HazardConfig `yaml:"config"`
}

// Bounds returns the horizontal travel range from the first two path nodes,
// or position±spread when the path is missing.
func (h Hazard) Bounds(spread float64) (float64, float64) {
	a := h.Position.X - spread
	b := h.Position.X + spread
	if len(h.Path) > 0 {
		a = h.Path[0].X
	}
	if len(h.Path) > 1 {
		b = h.Path[1].X
	}
	return min(a, b), max(a, b)
}

type Spring struct {
	ID      string   `yaml:"id"`
	X       float64  `yaml:"x"`
	Y       float64  `yaml:"y"`
	LaunchX *float64 `yaml:"launch_x"`
	LaunchY *float64 `yaml:"launch_y"`
}

type BossEvent struct {
	TriggerRegion           Rect    `yaml:"trigger_region"`
	CutsceneDurationMs      float64 `yaml:"cutscene_duration_ms"`
	BananaStealAnimationKey string  `yaml:"banana_steal_animation_key"`
	NextLevelID             string  `yaml:"next_level_id"`
}

type AutoScroll struct {
	Enabled    bool    `yaml:"enabled"`
	Speed      float64 `yaml:"speed"`
	FailMargin float64 `yaml:"fail_margin"`
}

type GroundDangerKind string

const (
	GroundSpikes GroundDangerKind = "spikes"
	GroundLava   GroundDangerKind = "lava"
	GroundFire   GroundDangerKind = "fire"
)

type GroundDanger struct {
	Type GroundDangerKind `yaml:"type"`
}

// DeathMessage is the banner shown when the player touches the strip.
func (g GroundDanger) DeathMessage() string {
	switch g.Type {
	case GroundLava:
		return "You fell into lava! Respawning at checkpoint..."
	case GroundFire:
		return "You fell into fire! Respawning at checkpoint..."
	default:
		return "You fell on spikes! Respawning at checkpoint..."
	}
}

// Level is the static definition of one playable level.
type Level struct {
	ID             string       `yaml:"id"`
	Name           string       `yaml:"name"`
	BackgroundKey  string       `yaml:"background_key"`
	GoalTextureKey string       `yaml:"goal_texture_key"`
	MusicKey       string       `yaml:"music_key"`
	PlayerSpawn    Point        `yaml:"player_spawn"`
	Goal           Rect         `yaml:"goal"`
	Checkpoints    []Checkpoint `yaml:"checkpoints"`
	Hazards        []Hazard     `yaml:"hazards"`
	Springs        []Spring     `yaml:"springs"`
	Platforms      []Rect       `yaml:"platforms"`
	BossEvent      *BossEvent   `yaml:"boss_event"`
	AutoScroll     *AutoScroll  `yaml:"auto_scroll"`
	WorldWidth     float64      `yaml:"world_width"`
	WorldHeight    float64      `yaml:"world_height"`
	GroundDanger   GroundDanger `yaml:"ground_danger"`
}

// AutoScrolling reports whether the level forces the camera forward.
func (l *Level) AutoScrolling() bool {
	return l != nil && l.AutoScroll != nil && l.AutoScroll.Enabled
}

func (l *Level) Validate() error {
	if l == nil {
		return fmt.Errorf("%w: nil level", ErrInvalidLevel)
	}
	if l.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidLevel)
	}
	if !(common.Finite(l.WorldWidth, 0) > 0) || !(common.Finite(l.WorldHeight, 0) > 0) {
		return fmt.Errorf("%w: %s: world size %vx%v", ErrInvalidLevel, l.ID, l.WorldWidth, l.WorldHeight)
	}
	seen := make(map[string]bool, len(l.Checkpoints))
	for _, cp := range l.Checkpoints {
		if cp.ID == "" || seen[cp.ID] {
			return fmt.Errorf("%w: %s: checkpoint id %q", ErrInvalidLevel, l.ID, cp.ID)
		}
		seen[cp.ID] = true
	}
	if l.BossEvent != nil && l.BossEvent.NextLevelID == "" {
		return fmt.Errorf("%w: %s: boss event without next level", ErrInvalidLevel, l.ID)
	}
	return nil
}
