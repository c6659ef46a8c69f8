// Command retrosilicon is the thin host harness tying the core
// emulation engine's Read/Write/Run interfaces to a concrete window,
// audio device, and keyboard, generalized across the three supported
// consoles.
//
// Usage:
//
//	retrosilicon -system={c64,nes,vcs} [romfile]
//
// -system is optional for .nes files: it is auto-detected from the
// iNES magic bytes. VCS ROMs have no magic number, so -system=vcs must
// be given explicitly; C64 boots straight to BASIC/KERNAL and takes no
// ROM argument at all.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kjhughes/retrosilicon/audio"
	"github.com/kjhughes/retrosilicon/inesrom"
	"github.com/kjhughes/retrosilicon/rerr"
)

const sampleRate = 44100

var systemFlag = flag.String("system", "", "Console to emulate: c64, nes, or vcs. Auto-detected for .nes ROMs.")

func main() {
	flag.Parse()

	system := *systemFlag
	var romPath string
	if flag.NArg() > 0 {
		romPath = flag.Arg(0)
	}

	if system == "" {
		var err error
		system, err = detectSystem(romPath)
		if err != nil {
			log.Fatalf("retrosilicon: %v", err)
		}
	}

	player, err := audio.NewPlayer(sampleRate)
	if err != nil {
		log.Fatalf("retrosilicon: audio setup: %v", err)
	}
	player.Play()

	game, err := newGame(system, romPath, player)
	if err != nil {
		log.Fatalf("retrosilicon: %v", err)
	}

	w, h := game.resolution()
	ebiten.SetWindowSize(w*2, h*2)
	ebiten.SetWindowTitle("retrosilicon")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	go game.core.Run(game.ctx)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}

	game.cancel()
	os.Exit(0)
}

// detectSystem auto-sniffs romPath's iNES magic for .nes files; every
// other case requires -system explicitly, since VCS/C64 ROMs carry no
// identifying header.
func detectSystem(romPath string) (string, error) {
	if romPath == "" {
		return "", &rerr.ConfigError{Kind: rerr.KindUnknownSystem, Msg: "-system is required when no ROM file is given"}
	}
	b, err := os.ReadFile(romPath)
	if err != nil {
		return "", &rerr.LoadError{Kind: rerr.KindIO, Path: romPath, Err: err}
	}
	if inesrom.Sniff(b) {
		return "nes", nil
	}
	return "", &rerr.ConfigError{Kind: rerr.KindUnknownSystem,
		Msg: fmt.Sprintf("could not auto-detect console for %q; pass -system explicitly", romPath)}
}
