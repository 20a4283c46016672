package settings

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Role selects which of the two mirrored rule sets the player runs under.
// The monkey is the pursuer in regular levels; the spud is pursued.
type Role string

const (
	RoleMonkey Role = "monkey"
	RoleSpud   Role = "spud"
)

var ErrUnknownRole = errors.New("settings: unknown role")

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleMonkey:
		return RoleMonkey, nil
	case RoleSpud:
		return RoleSpud, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Snapshot is an immutable copy of the settings handed to the simulation
// each tick.
type Snapshot struct {
	SpeedMultiplier          float64 `yaml:"speed_multiplier"`
	RandomJump               bool    `yaml:"random_jump"`
	Impossible               bool    `yaml:"impossible"`
	ImpossibleRainMultiplier float64 `yaml:"impossible_rain_multiplier"`
	Role                     Role    `yaml:"role"`
}

func Defaults() Snapshot {
	return Snapshot{
		SpeedMultiplier:          1.35,
		ImpossibleRainMultiplier: 7.0,
		Role:                     RoleMonkey,
	}
}

// Speed is the effective global speed multiplier, never below 1.
func (s Snapshot) Speed() float64 {
	return max(1, s.SpeedMultiplier)
}

// Rain is the falling-rain multiplier: 1 outside impossible mode.
func (s Snapshot) Rain() float64 {
	if !s.Impossible {
		return 1
	}
	return max(1, s.ImpossibleRainMultiplier)
}

//go:embed settings.yaml
var defaultYAML []byte

// Load reads settings from path when it exists, otherwise from the embedded
// defaults. Fields missing from the file keep their default values.
func Load(path string) (Snapshot, error) {
	data := defaultYAML
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			data = b
		} else if !errors.Is(err, os.ErrNotExist) {
			return Defaults(), fmt.Errorf("settings: load %s: %w", path, err)
		}
	}
	snap := Defaults()
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Defaults(), fmt.Errorf("settings: unmarshal %s: %w", path, err)
	}
	if snap.Role == "" {
		snap.Role = RoleMonkey
	}
	if _, err := ParseRole(string(snap.Role)); err != nil {
		return Defaults(), fmt.Errorf("settings: %s: %w", path, err)
	}
	return snap, nil
}

// Store is the process-wide settings object. Menus mutate it through the
// setters; scenes only read snapshots, except for role assignment on entry.
// It belongs to the game loop and is not safe for concurrent use.
type Store struct {
	cur Snapshot
}

func NewStore(initial Snapshot) *Store {
	return &Store{cur: initial}
}

func (s *Store) Snapshot() Snapshot {
	if s == nil {
		return Defaults()
	}
	return s.cur
}

func (s *Store) Replace(snap Snapshot) {
	if s == nil {
		return
	}
	s.cur = snap
}

func (s *Store) SetSpeedMultiplier(v float64) {
	s.update(func(c *Snapshot) { c.SpeedMultiplier = v })
}

func (s *Store) SetRandomJump(on bool) {
	s.update(func(c *Snapshot) { c.RandomJump = on })
}

func (s *Store) ToggleRandomJump() bool {
	var out bool
	s.update(func(c *Snapshot) {
		c.RandomJump = !c.RandomJump
		out = c.RandomJump
	})
	return out
}

func (s *Store) ToggleImpossible() bool {
	var out bool
	s.update(func(c *Snapshot) {
		c.Impossible = !c.Impossible
		out = c.Impossible
	})
	return out
}

func (s *Store) SetRole(r Role) Role {
	s.update(func(c *Snapshot) { c.Role = r })
	return r
}

func (s *Store) update(fn func(*Snapshot)) {
	if s == nil {
		return
	}
	fn(&s.cur)
}
