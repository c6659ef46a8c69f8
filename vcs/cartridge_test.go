package vcs

import "testing"

func TestLoadCartridgeF8BankSwitch(t *testing.T) {
	data := make([]uint8, 8192)
	data[0] = 0xAA          // bank 0, offset 0
	data[4096] = 0xBB       // bank 1, offset 0
	cart, err := LoadCartridge("test.bin", data)
	if err != nil {
		t.Fatalf("LoadCartridge: %v", err)
	}

	if got := cart.Read(0x0000); got != 0xBB {
		t.Fatalf("initial Read(0x0000) = 0x%02x, want 0xBB (F8 starts on bank 1)", got)
	}

	cart.Read(0x0FF8) // hotspot: switch to bank 0
	if got := cart.Read(0x0000); got != 0xAA {
		t.Errorf("after $1FF8 hotspot, Read(0x0000) = 0x%02x, want 0xAA", got)
	}

	cart.Read(0x0FF9) // hotspot: switch to bank 1
	if got := cart.Read(0x0000); got != 0xBB {
		t.Errorf("after $1FF9 hotspot, Read(0x0000) = 0x%02x, want 0xBB", got)
	}
}

func TestLoadCartridgeFlatMirrors(t *testing.T) {
	data := make([]uint8, 2048)
	data[0] = 0x11
	cart, err := LoadCartridge("test.bin", data)
	if err != nil {
		t.Fatalf("LoadCartridge: %v", err)
	}
	if got := cart.Read(2048); got != 0x11 {
		t.Errorf("Read(2048) = 0x%02x, want 0x11 (2KB image mirrors)", got)
	}
}

func TestLoadCartridgeRejectsUnsupportedSize(t *testing.T) {
	_, err := LoadCartridge("test.bin", make([]uint8, 3000))
	if err == nil {
		t.Fatal("LoadCartridge with a bad size: want error, got nil")
	}
}
