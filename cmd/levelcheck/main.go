// Command levelcheck validates level files and attack scripts, and can run
// a scene headless for a while to see where it ends up.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/milk9111/bananarun/content"
	"github.com/milk9111/bananarun/control"
	"github.com/milk9111/bananarun/encounter"
	"github.com/milk9111/bananarun/game"
	"github.com/milk9111/bananarun/logging"
	"github.com/milk9111/bananarun/settings"
	"github.com/rs/zerolog"
)

func main() {
	dir := flag.String("content", "", "content directory overriding the embedded files")
	simulate := flag.String("simulate", "", "level id to run headless; \"secret\" runs the fight")
	roleName := flag.String("role", "monkey", "role for -simulate")
	ms := flag.Float64("ms", 5000, "milliseconds to simulate")
	moveRight := flag.Bool("right", false, "hold right while simulating")
	verbose := flag.Bool("v", false, "log scene events")
	flag.Parse()

	src := content.Source{Dir: *dir}
	catalog, err := check(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *simulate == "" {
		return
	}

	role, err := settings.ParseRole(*roleName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := zerolog.Nop()
	if *verbose {
		logger = logging.New("debug", os.Stderr)
	}
	snap := settings.Defaults()
	snap.Role = role
	director := game.New(game.Config{
		Catalog:  catalog,
		Source:   src,
		Settings: settings.NewStore(snap),
		Logger:   logger,
		Seed:     1,
	})
	if *simulate == "secret" {
		director.StartEncounter(role)
	} else {
		director.StartLevel(*simulate, role)
	}

	const step = 1000.0 / 60
	in := control.State{}
	if *moveRight {
		in.MoveX = 1
	}
	for t := 0.0; t < *ms; t += step {
		director.Frame(step, in)
	}
	pos := director.Physics()
	fmt.Printf("after %.0fms: scene %s", *ms, director.Scene().Name())
	if pos != nil {
		p := pos.Position()
		fmt.Printf(", player at (%.0f, %.0f)", p.X, p.Y)
	}
	fmt.Println()
}

// check loads every level and script and prints a one-line summary per
// level.
func check(src content.Source) (*content.Catalog, error) {
	catalog, err := content.LoadCatalog(src)
	if err != nil {
		return nil, err
	}
	if err := encounter.CheckScripts(src); err != nil {
		return nil, err
	}

	names, err := src.List("levels")
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	for _, name := range names {
		base := filepath.Base(name)
		if base == "order.yaml" {
			continue
		}
		lvl, err := content.LoadSpec[content.Level](src, name)
		if err != nil {
			return nil, err
		}
		next := "-"
		if n, ok := catalog.NextLevelID(lvl.ID, settings.RoleSpud); ok {
			next = n
		}
		extra := ""
		if lvl.BossEvent != nil {
			extra += " boss->" + lvl.BossEvent.NextLevelID
		}
		if lvl.AutoScrolling() {
			extra += fmt.Sprintf(" scroll@%.0f", lvl.AutoScroll.Speed)
		}
		fmt.Printf("%-14s %-20q %4.0fx%-4.0f hazards=%d checkpoints=%d springs=%d platforms=%d next=%s%s\n",
			lvl.ID, lvl.Name, lvl.WorldWidth, lvl.WorldHeight,
			len(lvl.Hazards), len(lvl.Checkpoints), len(lvl.Springs), len(lvl.Platforms), next, extra)
	}
	return catalog, nil
}
