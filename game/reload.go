package game

import (
	"path/filepath"
	"strings"

	"github.com/milk9111/bananarun/encounter"
	"github.com/milk9111/bananarun/level"
	"github.com/milk9111/bananarun/scene"
)

// Reload picks up a changed content file. A changed level restarts the
// level when it is the one running; a changed script restarts the fight.
func (d *Director) Reload(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tengo":
		if sim, ok := d.scene.(*encounter.Simulation); ok {
			d.log.Info().Str("file", path).Msg("script changed, restarting fight")
			d.apply(scene.Request{Kind: scene.Encounter, Role: sim.Role()})
		}
		return nil
	case ".yaml", ".yml":
		lvl, err := d.catalog.Reload(d.source, path)
		if err != nil {
			return err
		}
		d.log.Info().Str("file", path).Str("level", lvl.ID).Msg("level reloaded")
		if rt, ok := d.scene.(*level.Runtime); ok && rt.Def().ID == lvl.ID {
			d.apply(scene.Request{Kind: scene.Level, LevelID: lvl.ID, Role: rt.Role()})
		}
		return nil
	default:
		return nil
	}
}
