package main

import (
	"log"

	"spelltome/internal/config"
	"spelltome/internal/game"
	"spelltome/internal/host"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	// Load configuration
	cfg := config.MustLoadConfig("config.yaml")

	// Load the simulated host's spell table
	table := host.MustLoadSpellTable("assets/spells.yaml")

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := game.NewTomeGame(cfg, table)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
