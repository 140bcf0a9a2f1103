package main

import (
	"log"

	"chosenoffset.com/novastrike/internal/api"
	"chosenoffset.com/novastrike/internal/config"
	"chosenoffset.com/novastrike/internal/game"
	"chosenoffset.com/novastrike/internal/hotkeys"
	ebitenrender "chosenoffset.com/novastrike/internal/render/ebiten"
	"chosenoffset.com/novastrike/internal/session"
	"chosenoffset.com/novastrike/internal/sim"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := api.NewFileTokenStore(cfg.TokenFile)
	if err != nil {
		log.Fatalf("Failed to open token store: %v", err)
	}

	// Initialize the renderer backend (ebiten)
	surface := ebitenrender.NewSurface(cfg.WindowWidth, cfg.WindowHeight)
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine(surface)

	auth := api.NewSession(cfg.APIURL, store, cfg.RequestTimeout)
	ctrl := session.NewController(sim.NewEngine(), auth, hotkeys.NewDispatcher())
	app := game.NewApp(ctrl, surface, inputMgr)

	// Validate any stored token before the first tick.
	auth.Start()

	engine.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	engine.SetWindowTitle("Novastrike")
	engine.SetTPS(cfg.TickRate)

	log.Println("Starting game...")
	if err := engine.Run(app); err != nil {
		log.Fatal(err)
	}
}
