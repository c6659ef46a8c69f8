package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kjhughes/retrosilicon/c64"
	"github.com/kjhughes/retrosilicon/vcs"
)

// nesButtonKeys binds each standard NES controller button to a key;
// bit order is A, B, Select, Start, Up, Down, Left, Right.
var nesButtonKeys = [8]ebiten.Key{
	ebiten.KeyA,
	ebiten.KeyB,
	ebiten.KeySpace,
	ebiten.KeyEnter,
	ebiten.KeyUp,
	ebiten.KeyDown,
	ebiten.KeyLeft,
	ebiten.KeyRight,
}

// pollNESButtons is the Controller.poll callback (nes/controller.go):
// it's invoked lazily whenever the emulated game strobes $4016.
func pollNESButtons() uint8 {
	var v uint8
	for i, key := range nesButtonKeys {
		if ebiten.IsKeyPressed(key) {
			v |= 1 << uint(i)
		}
	}
	return v
}

// pollVCSInput samples the arrow keys into RIOT's joystick-0 fields
// once per displayed frame; RIOT.PortAData reads them from the
// background emulation goroutine, a single-bool-flip race this engine
// accepts the same way it accepts single-field console.Frame() reads
// racing with the render thread that's writing them.
func pollVCSInput(c *vcs.Console) {
	c.RIOT.Joystick0Up = ebiten.IsKeyPressed(ebiten.KeyUp)
	c.RIOT.Joystick0Down = ebiten.IsKeyPressed(ebiten.KeyDown)
	c.RIOT.Joystick0Left = ebiten.IsKeyPressed(ebiten.KeyLeft)
	c.RIOT.Joystick0Right = ebiten.IsKeyPressed(ebiten.KeyRight)
}

// c64KeyMatrix maps a handful of common keys to their real C64
// keyboard-matrix index (row*8+col), per the documented 6526 CIA#1
// scan layout (c64-wiki's keyboard matrix table) -- enough to type
// BASIC commands, not an exhaustive binding of every physical key.
var c64KeyMatrix = map[ebiten.Key]uint8{
	ebiten.KeyEnter:     1,
	ebiten.KeyW:         9,
	ebiten.KeyA:         10,
	ebiten.KeyZ:         12,
	ebiten.KeyS:         13,
	ebiten.KeyE:         14,
	ebiten.KeyR:         17,
	ebiten.KeyD:         18,
	ebiten.KeyC:         20,
	ebiten.KeyF:         21,
	ebiten.KeyT:         22,
	ebiten.KeyX:         23,
	ebiten.KeyY:         25,
	ebiten.KeyG:         26,
	ebiten.KeyB:         28,
	ebiten.KeyH:         29,
	ebiten.KeyU:         30,
	ebiten.KeyV:         31,
	ebiten.KeyI:         33,
	ebiten.KeyJ:         34,
	ebiten.KeyM:         36,
	ebiten.KeyK:         37,
	ebiten.KeyO:         38,
	ebiten.KeyN:         39,
	ebiten.KeyP:         41,
	ebiten.KeyL:         42,
	ebiten.KeyPeriod:    44,
	ebiten.KeySemicolon: 45,
	ebiten.KeyComma:     47,
	ebiten.KeySpace:     60,
	ebiten.KeyQ:         62,
	ebiten.KeyDigit0:    35,
	ebiten.KeyDigit1:    56,
	ebiten.KeyDigit2:    59,
	ebiten.KeyDigit3:    8,
	ebiten.KeyDigit4:    11,
	ebiten.KeyDigit5:    16,
	ebiten.KeyDigit6:    19,
	ebiten.KeyDigit7:    24,
	ebiten.KeyDigit8:    27,
	ebiten.KeyDigit9:    32,
}

// pollC64Input calls CIA#1's KeyDown or KeyUp for every mapped key
// each frame, according to whether the key is held, using the
// matrix-scan interface c64/cia.go exposes instead of raw register pokes.
func pollC64Input(c *c64.Console) {
	for key, idx := range c64KeyMatrix {
		if ebiten.IsKeyPressed(key) {
			c.Mem.CIA1.KeyDown(idx)
		} else {
			c.Mem.CIA1.KeyUp(idx)
		}
	}
}
