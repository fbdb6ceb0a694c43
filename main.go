package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and event logging")
	watch := flag.Bool("watch", false, "reload prefabs from disk when they change")
	ai := flag.String("ai", "", "script-controlled paddles: left, right or both")
	scale := flag.Int("scale", 1, "window scale factor")
	flag.Parse()

	game, err := NewGame(*debug, *watch, *ai)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	s := max(*scale, 1)
	ebiten.SetWindowSize(baseWidth*s, baseHeight*s)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("arcpong")
	ebiten.SetTPS(game.TickRate())

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
