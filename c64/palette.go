package c64

import "image/color"

// colorPalette is the C64's fixed 16-entry color palette. VIC-II color
// registers and color RAM nybbles index into this table; exact bytes
// are data, not logic, so any canonical table is fine.
var colorPalette = [16]color.RGBA{
	{0, 0, 0, 255},       // black
	{255, 255, 255, 255}, // white
	{136, 0, 0, 255},     // red
	{170, 255, 238, 255}, // cyan
	{204, 68, 204, 255},  // purple
	{0, 204, 85, 255},    // green
	{0, 0, 170, 255},     // blue
	{238, 238, 119, 255}, // yellow
	{221, 136, 85, 255},  // orange
	{102, 68, 0, 255},    // brown
	{255, 119, 119, 255}, // light red
	{51, 51, 51, 255},    // dark grey
	{119, 119, 119, 255}, // grey
	{170, 255, 102, 255}, // light green
	{0, 136, 255, 255},   // light blue
	{187, 187, 187, 255}, // light grey
}
