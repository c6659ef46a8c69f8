package c64

import "testing"

func TestVICSpriteXHighBit(t *testing.T) {
	v := NewVIC()
	v.WriteReg(0x00, 0xFF) // sprite 0 X low
	v.WriteReg(0x10, 0x01) // sprite 0 X high bit set
	if v.Sprites[0].X != 0x1FF {
		t.Errorf("Sprites[0].X = 0x%03x, want 0x1ff", v.Sprites[0].X)
	}
	if got := v.ReadReg(0x10); got != 0x01 {
		t.Errorf("ReadReg(0x10) = 0x%02x, want 0x01", got)
	}
}

func TestVICSpriteXHighBitNonZeroIndex(t *testing.T) {
	v := NewVIC()
	v.WriteReg(0x02, 0x50) // sprite 1 X low
	v.WriteReg(0x10, 0x02) // sprite 1 X high bit set (bit index 1)
	if v.Sprites[1].X != 0x150 {
		t.Errorf("Sprites[1].X = 0x%03x, want 0x150", v.Sprites[1].X)
	}
	if v.Sprites[0].X&0x100 != 0 {
		t.Error("sprite 0's high bit should remain clear")
	}
	if got := v.ReadReg(0x10); got != 0x02 {
		t.Errorf("ReadReg(0x10) = 0x%02x, want 0x02", got)
	}
}

func TestVICRasterLineSplitAcrossRegisters(t *testing.T) {
	v := NewVIC()
	v.WriteReg(0x11, 0x80) // raster high bit set, screen-off otherwise
	v.WriteReg(0x12, 0x34)
	if v.rasterIRQLine != 0x134 {
		t.Fatalf("rasterIRQLine = 0x%03x, want 0x134", v.rasterIRQLine)
	}
	v.SetRasterLine(0x134)
	if !v.RasterIRQPending() {
		t.Errorf("RasterIRQPending() = false, want true at matching raster line")
	}
}

func TestVICGraphicsMode(t *testing.T) {
	tests := []struct {
		name                       string
		multicolor, bitmap, extBg  bool
		want                       GraphicsMode
	}{
		{"standard char", false, false, false, StandardCharMode},
		{"multicolor char", true, false, false, MulticolorCharMode},
		{"standard bitmap", false, true, false, StandardBitmapMode},
		{"multicolor bitmap", true, true, false, MulticolorBitmapMode},
		{"extended bg", false, false, true, ExtendedBackgroundColorMode},
		{"invalid combo", false, true, true, InvalidGraphicsMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVIC()
			v.multicolor, v.bitmapMode, v.extendedBg = tt.multicolor, tt.bitmap, tt.extBg
			if got := v.GraphicsMode(); got != tt.want {
				t.Errorf("GraphicsMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVICSpriteEnableReadback(t *testing.T) {
	v := NewVIC()
	v.WriteReg(0x15, 0x05) // sprites 0 and 2 enabled
	if !v.Sprites[0].Enabled || !v.Sprites[2].Enabled {
		t.Fatalf("sprites 0,2 should be enabled")
	}
	if v.Sprites[1].Enabled {
		t.Fatalf("sprite 1 should not be enabled")
	}
	if got := v.ReadReg(0x15); got != 0x05 {
		t.Errorf("ReadReg(0x15) = 0x%02x, want 0x05", got)
	}
}

func TestVICColorRegistersMaskToNibble(t *testing.T) {
	v := NewVIC()
	v.WriteReg(0x20, 0xFF)
	if v.BorderColor != 0x0F {
		t.Errorf("BorderColor = 0x%02x, want 0x0f", v.BorderColor)
	}
}
