package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"github.com/milk9111/bananarun/content"
	"github.com/milk9111/bananarun/game"
	"github.com/milk9111/bananarun/logging"
	"github.com/milk9111/bananarun/notify"
	"github.com/milk9111/bananarun/settings"
)

func main() {
	_ = godotenv.Load(".env")

	levelID := flag.String("level", "", "level id to start in; the menu when empty")
	roleName := flag.String("role", "", "monkey or spud; overrides settings")
	secret := flag.Bool("secret", false, "start in the secret fight")
	contentDir := flag.String("content", os.Getenv("BANANARUN_CONTENT_DIR"), "directory whose levels/ and scripts/ override the embedded content and are watched for changes")
	settingsPath := flag.String("settings", "settings.yaml", "settings file")
	logLevel := flag.String("log", envOr("BANANARUN_LOG_LEVEL", "info"), "log level")
	seed := flag.Uint64("seed", 0, "random seed")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	logger := logging.New(*logLevel, nil)

	snap, err := settings.Load(*settingsPath)
	if err != nil {
		logger.Warn().Err(err).Msg("using default settings")
	}
	if *roleName != "" {
		role, err := settings.ParseRole(*roleName)
		if err != nil {
			logger.Fatal().Err(err).Msg("bad role")
		}
		snap.Role = role
	}
	store := settings.NewStore(snap)

	src := content.Source{Dir: *contentDir}
	catalog, err := content.LoadCatalog(src)
	if err != nil {
		logger.Fatal().Err(err).Msg("load levels")
	}

	var watcher *content.Watcher
	if *contentDir != "" {
		watcher, err = content.NewWatcher(filepath.Join(*contentDir, "levels"), filepath.Join(*contentDir, "scripts"))
		if err != nil {
			logger.Warn().Err(err).Str("dir", *contentDir).Msg("content hot reload disabled")
		} else {
			defer watcher.Close()
		}
	}

	hud := NewHUD()
	director := game.New(game.Config{
		Catalog:  catalog,
		Source:   src,
		Settings: store,
		Hooks:    notify.Logged{Next: hud, Logger: logging.Component(logger, "hooks")},
		Logger:   logger,
		Seed:     *seed,
	})
	switch {
	case *secret:
		director.StartEncounter(snap.Role)
	case *levelID != "":
		director.StartLevel(*levelID, snap.Role)
	default:
		director.ShowMenu()
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("bananarun")

	if err := ebiten.RunGame(NewGame(director, hud, watcher, logger)); err != nil {
		logger.Fatal().Err(err).Msg("game stopped")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
