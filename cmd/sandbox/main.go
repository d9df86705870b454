package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	stageName := flag.String("stage", "green_hill", "stage name in levels/ (basename, .yaml optional)")
	watch := flag.Bool("watch", false, "rebuild the stage when levels/ or prefabs/ change")
	debug := flag.Bool("debug", false, "log contact changes")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sandbox",
	})
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}

	game, err := NewGame(*stageName, *watch, logger)
	if err != nil {
		logger.Fatal("cannot start", "stage", *stageName, "err", err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("sensorstage sandbox")

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("game exited", "err", err)
	}
}
