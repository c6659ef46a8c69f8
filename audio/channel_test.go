package audio

import "testing"

func near(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

// TestEnvelopeADSR exercises the full envelope cycle: attack ramps
// 0->1, decay ramps 1->sustain, sustain holds, release ramps
// sustain->0.
func TestEnvelopeADSR(t *testing.T) {
	const sampleRate = 1000
	c := newChannel(Square, sampleRate)
	c.envelopeEnabled = true
	c.attackTime = 0.1
	c.decayTime = 0.1
	c.sustainLevel = 0.5
	c.releaseTime = 0.2
	c.volume = 1
	c.enabled = true

	c.pressNote()

	// Halfway through attack (t=0.05s => 50 samples in).
	for i := 0; i < 50; i++ {
		c.incrementEnvelopeTimers()
	}
	got := c.envelopeLevel()
	want := float32(0.05) / c.attackTime
	if !near(got, want, 0.01) {
		t.Errorf("mid-attack envelope = %v, want ~%v", got, want)
	}

	// Reset and run straight through to sustain.
	c = newChannel(Square, sampleRate)
	c.envelopeEnabled = true
	c.attackTime = 0.1
	c.decayTime = 0.1
	c.sustainLevel = 0.5
	c.releaseTime = 0.2
	c.pressNote()
	for i := 0; i < 250; i++ {
		c.incrementEnvelopeTimers()
	}
	if got := c.envelopeLevel(); !near(got, 0.5, 0.001) {
		t.Errorf("sustain envelope = %v, want 0.5", got)
	}

	c.releaseNote()
	for i := 0; i < 100; i++ {
		c.incrementEnvelopeTimers()
	}
	// 0.1s into a 0.2s release from 0.5: 0.5*(1-0.5) = 0.25
	if got := c.envelopeLevel(); !near(got, 0.25, 0.01) {
		t.Errorf("mid-release envelope = %v, want ~0.25", got)
	}

	for i := 0; i < 200; i++ {
		c.incrementEnvelopeTimers()
	}
	if got := c.envelopeLevel(); got != 0 {
		t.Errorf("post-release envelope = %v, want 0", got)
	}
}

func TestAmplitudeWaveforms(t *testing.T) {
	tests := []struct {
		typ  ChannelType
		time float32
		want float32
	}{
		{Square, 0.2, 1},
		{Square, 0.8, 0},
		{Triangle, 0, 0},
		{Triangle, 0.25, 1},
		{Triangle, 0.5, 0},
		{Triangle, 0.75, -1},
		{Sawtooth, 0, 1},
		{Sawtooth, 0.5, 0},
		{Sawtooth, 1, -1},
	}
	for _, tc := range tests {
		c := newChannel(tc.typ, 44100)
		c.duty = 0.5
		got := c.amplitudeAt(tc.time)
		if !near(got, tc.want, 0.001) {
			t.Errorf("%v amplitudeAt(%v) = %v, want %v", tc.typ, tc.time, got, tc.want)
		}
	}
}

func TestDisabledChannelIsSilent(t *testing.T) {
	c := newChannel(Square, 44100)
	c.volume = 1
	if got := c.currentVolume(); got != 0 {
		t.Errorf("disabled channel volume = %v, want 0", got)
	}
	c.enabled = true
	if got := c.currentVolume(); got != 1 {
		t.Errorf("enabled channel volume = %v, want 1", got)
	}
}

func TestVolumeDutyClamp(t *testing.T) {
	c := newChannel(Square, 44100)
	c.setVolume(2)
	if c.volume != 1 {
		t.Errorf("setVolume(2) = %v, want clamped to 1", c.volume)
	}
	c.setVolume(-1)
	if c.volume != 0 {
		t.Errorf("setVolume(-1) = %v, want clamped to 0", c.volume)
	}
	c.setDuty(1.5)
	if c.duty != 1 {
		t.Errorf("setDuty(1.5) = %v, want clamped to 1", c.duty)
	}
}
