package encounter

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
)

// ScriptSource loads attack scripts by file name.
type ScriptSource interface {
	LoadScript(name string) ([]byte, error)
}

// attackDispatchScript runs attacks[__phase] when the script defines it.
const attackDispatchScript = `
__attack := attacks[__phase]
if is_function(__attack) {
	__attack(__engine, __state)
}
`

// attackScript is a compiled opponent script. State persists across runs.
type attackScript struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

func loadAttackScript(src ScriptSource, name string) (*attackScript, error) {
	if src == nil {
		return nil, fmt.Errorf("encounter: no script source for %s", name)
	}
	body, err := src.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("encounter: load script %s: %w", name, err)
	}
	return compileAttackScript(name, body)
}

func compileAttackScript(name string, body []byte) (*attackScript, error) {
	script := tengo.NewScript([]byte(string(body) + "\n" + attackDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("encounter: compile script %s: %w", name, err)
	}
	return &attackScript{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (s *attackScript) run(attack string, engine *tengo.ImmutableMap) error {
	if s == nil || s.compiled == nil {
		return fmt.Errorf("encounter: nil script")
	}
	if err := s.compiled.Set("__phase", attack); err != nil {
		return err
	}
	if err := s.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return err
	}
	return s.compiled.Run()
}

// scriptHost is what an attack script can observe and trigger.
type scriptHost interface {
	playerPosition() cp.Vector
	raisePillar(x float64)
	throwBanana()
	dodgeTo(x, y float64)
	roll(lo, hi int) int
	scriptLog(msg string)
}

func buildAttackEngine(h scriptHost) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["player_position"] = &tengo.UserFunction{Name: "player_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		p := h.playerPosition()
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: p.X}, &tengo.Float{Value: p.Y}}}, nil
	}}

	values["arena_bounds"] = &tengo.UserFunction{Name: "arena_bounds", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: arenaMinX},
			&tengo.Float{Value: arenaMaxX},
			&tengo.Float{Value: dodgeMaxY},
		}}, nil
	}}

	values["raise_pillar"] = &tengo.UserFunction{Name: "raise_pillar", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		x, ok := objectAsFloat(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		h.raisePillar(x)
		return tengo.TrueValue, nil
	}}

	values["throw"] = &tengo.UserFunction{Name: "throw", Value: func(args ...tengo.Object) (tengo.Object, error) {
		h.throwBanana()
		return tengo.TrueValue, nil
	}}

	values["dodge_to"] = &tengo.UserFunction{Name: "dodge_to", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, okX := objectAsFloat(args[0])
		y, okY := objectAsFloat(args[1])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		h.dodgeTo(x, y)
		return tengo.TrueValue, nil
	}}

	values["roll"] = &tengo.UserFunction{Name: "roll", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return &tengo.Int{Value: 0}, nil
		}
		lo, okLo := objectAsFloat(args[0])
		hi, okHi := objectAsFloat(args[1])
		if !okLo || !okHi {
			return &tengo.Int{Value: 0}, nil
		}
		return &tengo.Int{Value: int64(h.roll(int(lo), int(hi)))}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		h.scriptLog(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}

// CheckScripts compiles the attack script of every fight configuration.
func CheckScripts(src ScriptSource) error {
	for _, cfg := range []config{monkeyFight, spudFight} {
		if _, err := loadAttackScript(src, cfg.script); err != nil {
			return err
		}
	}
	return nil
}
