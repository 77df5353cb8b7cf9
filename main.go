package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Lycan-Xx/armour-mayhem-clone/game"
)

func main() {
	config := game.DefaultConfig()
	g, err := game.NewGame(config)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Armour Mayhem")
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
