package c64

import _ "embed"

// Real Commodore KERNAL/BASIC/CHARGEN ROM images are copyrighted and
// are not redistributed here. These embedded assets are minimal,
// functionally-shaped stand-ins: they are not real Commodore firmware,
// but they are sized and addressed exactly like the real ROMs, so the
// bank-switching and memory-map logic around them is fully exercised
// and testable.
//
//go:embed romdata/kernal.bin
var kernalROM []byte

//go:embed romdata/basic.bin
var basicROM []byte

//go:embed romdata/chargen.bin
var chargenROM []byte
