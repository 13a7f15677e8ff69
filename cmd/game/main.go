package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Storm-Portal/internal/assets"
	"github.com/Garsondee/Storm-Portal/internal/config"
	"github.com/Garsondee/Storm-Portal/internal/game"
)

func main() {
	var configPath string
	var assetDir string
	var width int
	var height int
	var verbose bool

	flag.StringVar(&configPath, "config", "", "section config YAML (built-in sections when empty)")
	flag.StringVar(&assetDir, "assets", "assets", "directory holding images and sounds")
	flag.IntVar(&width, "width", 1280, "initial window width")
	flag.IntVar(&height, "height", 720, "initial window height")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	start := time.Now()
	bundle, err := assets.NewLoader(os.DirFS(assetDir), logger).Load(ctx, assets.Manifest(cfg))
	cancel()
	if err != nil {
		log.Fatal(err)
	}
	logger.Info("assets loaded", "dir", assetDir, "count", len(bundle.Results()), "failed", len(bundle.Failed()), "took", time.Since(start))

	mixer := game.NewMixer(bundle, cfg, logger)

	ebiten.SetWindowTitle("Storm Portal")
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game.New(cfg, bundle, mixer, logger)); err != nil {
		log.Fatal(err)
	}
}
