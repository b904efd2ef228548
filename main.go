// SharpMove - a board viewer that suggests the sharpest move, built with Ebitengine
package main

import (
	"flag"
	"os"

	"github.com/go-logr/stdr"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/sharpmove/internal/engine"
	"github.com/hailam/sharpmove/internal/storage"
	"github.com/hailam/sharpmove/internal/ui"
)

func main() {
	fen := flag.String("fen", "", "starting position (default: last session)")
	verbosity := flag.Int("v", 0, "log verbosity")
	flag.Parse()

	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(nil).WithName("sharpmove")

	store, err := storage.Open(storage.Options{Logger: logger})
	if err != nil {
		// The viewer works without persistence
		logger.Error(err, "storage unavailable")
	}

	opts := engine.Options{Logger: logger}
	if store != nil {
		opts.Store = store
		defer store.Close()
	}
	eng, err := engine.NewEngine(opts)
	if err != nil {
		logger.Error(err, "failed to create engine")
		os.Exit(1)
	}
	defer eng.Close()

	game, err := ui.NewGame(ui.Options{FEN: *fen, Engine: eng, Storage: store, Logger: logger})
	if err != nil {
		logger.Error(err, "failed to start viewer")
		os.Exit(1)
	}
	defer game.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("SharpMove")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		logger.Error(err, "viewer exited")
	}
}
