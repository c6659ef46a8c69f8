package vcs

import (
	"fmt"

	"github.com/kjhughes/retrosilicon/rerr"
)

const (
	bankSize    = 0x1000 // 4KB
	hotspotBank0 = 0x1FF8
	hotspotBank1 = 0x1FF9
)

// Cartridge is a VCS cartridge mapped into $1000-$1FFF.
type Cartridge interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// flatCartridge is a single 2KB or 4KB ROM image with no bankswitching,
// mirrored to fill the 4KB cartridge window.
type flatCartridge struct {
	data []uint8
}

func (c *flatCartridge) Read(addr uint16) uint8 {
	return c.data[int(addr)%len(c.data)]
}
func (c *flatCartridge) Write(addr uint16, val uint8) {}

// f8Cartridge implements the F8 bankswitching scheme used by most 8KB
// 2600 cartridges: two 4KB banks, selected by reading or writing the
// hotspot address at the top of the 4KB window ($1FF8 selects bank 0,
// $1FF9 selects bank 1). Starts on bank 1, matching real F8 carts,
// whose reset vector always lives in the last bank.
type f8Cartridge struct {
	banks  [2][]uint8
	active int
}

func (c *f8Cartridge) Read(addr uint16) uint8 {
	c.checkHotspot(addr)
	return c.banks[c.active][addr&0x0FFF]
}

func (c *f8Cartridge) Write(addr uint16, val uint8) {
	c.checkHotspot(addr)
}

func (c *f8Cartridge) checkHotspot(addr uint16) {
	switch addr | 0x1000 {
	case hotspotBank0:
		c.active = 0
	case hotspotBank1:
		c.active = 1
	}
}

// LoadCartridge builds a Cartridge from a raw ROM image: 2KB and 4KB
// images load flat (mirrored or exact-fit); 8KB images are assumed to
// use the F8 bankswitching scheme, the only one this engine supports.
func LoadCartridge(path string, data []uint8) (Cartridge, error) {
	switch len(data) {
	case 2048, 4096:
		return &flatCartridge{data: data}, nil
	case 8192:
		return &f8Cartridge{
			banks:  [2][]uint8{data[:bankSize], data[bankSize:]},
			active: 1,
		}, nil
	default:
		return nil, &rerr.LoadError{Kind: rerr.KindSizeMismatch, Path: path,
			Err: fmt.Errorf("unsupported VCS ROM size %d bytes (want 2048, 4096, or 8192)", len(data))}
	}
}
