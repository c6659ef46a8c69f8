package main

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kjhughes/retrosilicon/audio"
	"github.com/kjhughes/retrosilicon/c64"
	"github.com/kjhughes/retrosilicon/inesrom"
	"github.com/kjhughes/retrosilicon/mappers"
	"github.com/kjhughes/retrosilicon/nes"
	"github.com/kjhughes/retrosilicon/rerr"
	"github.com/kjhughes/retrosilicon/vcs"
)

// runner is the subset of each console's driver the host harness needs:
// a free-running Run loop and a way to pull the latest framebuffer.
// nes.Console, c64.Console, and vcs.Console all satisfy it.
type runner interface {
	Run(ctx context.Context) error
	Frame() *image.RGBA
}

// game is the ebiten.Game implementation wrapping whichever console
// was selected. Emulation runs freely in its own goroutine, so Update
// only polls host input into the console; ebiten's draw loop just
// samples whatever frame is currently ready.
type game struct {
	core   runner
	player *audio.Player

	ctx    context.Context
	cancel context.CancelFunc

	pollInput func()
}

func newGame(system, romPath string, player *audio.Player) (*game, error) {
	g := &game{player: player}
	g.ctx, g.cancel = context.WithCancel(context.Background())

	switch system {
	case "nes":
		c, err := newNESConsole(romPath)
		if err != nil {
			return nil, err
		}
		g.core = c
	case "vcs":
		c, err := newVCSConsole(romPath)
		if err != nil {
			return nil, err
		}
		g.core = c
		g.pollInput = func() { pollVCSInput(c) }
	case "c64":
		c := c64.NewConsole(c64.NewMemMap())
		g.core = c
		g.pollInput = func() { pollC64Input(c) }
	default:
		return nil, &rerr.ConfigError{Kind: rerr.KindUnknownSystem, Msg: fmt.Sprintf("unknown -system %q", system)}
	}

	return g, nil
}

func newNESConsole(romPath string) (*nes.Console, error) {
	rom, err := inesrom.Load(romPath)
	if err != nil {
		return nil, err
	}
	m, err := mappers.Get(rom)
	if err != nil {
		return nil, err
	}
	ctrl1 := nes.NewController(pollNESButtons)
	return nes.NewConsole(m, ctrl1, nil), nil
}

func newVCSConsole(romPath string) (*vcs.Console, error) {
	data, err := os.ReadFile(romPath)
	if err != nil {
		return nil, &rerr.LoadError{Kind: rerr.KindIO, Path: romPath, Err: err}
	}
	cart, err := vcs.LoadCartridge(romPath, data)
	if err != nil {
		return nil, err
	}
	return vcs.NewConsole(cart), nil
}

// resolution reports the window size to start ebiten with, read
// straight off the console's first framebuffer.
func (g *game) resolution() (int, int) {
	b := g.core.Frame().Bounds()
	return b.Dx(), b.Dy()
}

// Layout is part of ebiten.Game; returning the console's fixed native
// resolution makes ebiten scale the presentation to the window size.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.resolution()
}

// Update is part of ebiten.Game. Emulation itself runs in the
// background goroutine started by main(); Update's only job is to
// sample host input once per displayed frame.
func (g *game) Update() error {
	if g.pollInput != nil {
		g.pollInput()
	}
	return nil
}

// Draw is part of ebiten.Game: copy the console's current framebuffer
// onto the screen image ebiten hands us.
func (g *game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.core.Frame().Pix)
}
