package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/grenadier/settings"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	watch := flag.Bool("watch", false, "reload grenade tuning and explosion scripts when prefabs/ changes")
	seed := flag.Int64("seed", 0, "explosion random seed (0 picks one from the clock)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle(settings.AppName)
	ebiten.SetTPS(ebiten.DefaultTPS)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	game, err := NewGame(Config{
		LevelName: *levelName,
		Debug:     *debug,
		Watch:     *watch,
		Seed:      *seed,
		Settings:  settings.Open(),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
