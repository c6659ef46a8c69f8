package audio

// ChannelType selects a channel's waveform generator.
type ChannelType int

const (
	Square ChannelType = iota
	Triangle
	Sawtooth
	Noise
)

// ChannelID identifies a channel returned by Manager.AddChannel. IDs
// are stable for the process lifetime; channels are never destroyed.
type ChannelID uint32

// channel holds one oscillator's waveform parameters and ADSR envelope
// state. All fields are owned exclusively by the audio worker
// goroutine; the only way a caller changes them is by sending a
// message through Manager's queue (see manager.go).
type channel struct {
	typ     ChannelType
	enabled bool
	freq    float32
	duty    float32
	volume  float32

	sampleRate  float32
	sampleCount float32

	envelopeEnabled  bool
	attackTime       float32
	decayTime        float32
	sustainLevel     float32
	releaseTime      float32
	notePressed      bool
	noteDuration     float32
	notePressTimer   float32
	noteReleaseTimer float32

	lfsr uint16
}

func newChannel(typ ChannelType, sampleRate float32) *channel {
	return &channel{
		typ:          typ,
		sampleRate:   sampleRate,
		freq:         440,
		duty:         0.5,
		sustainLevel: 1,
		noteDuration: -1,
		lfsr:         1,
	}
}

// amplitudeAt returns the waveform's value at phase time ([0,1)),
// ranging over [-1,1] (or [0,1] for square), independent of frequency.
func (c *channel) amplitudeAt(time float32) float32 {
	switch c.typ {
	case Square:
		if time < c.duty {
			return 1
		}
		return 0
	case Triangle:
		if time < 0.5 {
			return 1 - abs32(1-4*time)
		}
		return abs32(1-4*(time-0.5)) - 1
	case Sawtooth:
		return 1 - 2*time
	case Noise:
		return c.noiseSample()
	default:
		return 0
	}
}

// noiseSample advances a 15-bit LFSR (feedback bit 0 XOR bit 1, shifted
// in at bit 14) one step per output sample
// and returns its low bit as ±1, matching the 2600/NES "poly" noise
// channels' general shape.
func (c *channel) noiseSample() float32 {
	bit := (c.lfsr ^ (c.lfsr >> 1)) & 1
	c.lfsr = (c.lfsr >> 1) | (bit << 14)
	if c.lfsr&1 != 0 {
		return 1
	}
	return -1
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// nextSample advances the channel by one sample period and returns its
// output, already scaled by envelope level and volume. Must be called
// at exactly sampleRate calls/second for frequency and envelope timing
// to be accurate.
func (c *channel) nextSample() float32 {
	if c.freq < 1 {
		c.incrementEnvelopeTimers()
		return 0
	}
	c.sampleCount++
	if c.sampleCount >= c.sampleRate {
		c.sampleCount -= c.sampleRate
	}
	time := fract32(c.sampleCount * c.freq / c.sampleRate)

	amp := c.amplitudeAt(time)
	c.incrementEnvelopeTimers()
	env := c.envelopeLevel()
	return amp * c.currentVolume() * env
}

func fract32(v float32) float32 {
	_, f := splitFrac(v)
	return f
}

func splitFrac(v float32) (int64, float32) {
	whole := int64(v)
	return whole, v - float32(whole)
}

func (c *channel) currentVolume() float32 {
	if !c.enabled {
		return 0
	}
	return c.volume
}

func (c *channel) setVolume(v float32) { c.volume = clamp01(v) }
func (c *channel) setDuty(d float32)   { c.duty = clamp01(d) }

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (c *channel) setSustain(level float32) { c.sustainLevel = clamp01(level) }

// setReleaseTime guards against a mid-release parameter change
// retriggering a note that already finished releasing.
func (c *channel) setReleaseTime(t float32) {
	if c.noteReleaseTimer >= c.releaseTime {
		c.noteReleaseTimer = t + 1
	}
	c.releaseTime = t
}

func (c *channel) incrementEnvelopeTimers() {
	if !c.envelopeEnabled {
		return
	}
	inc := 1 / c.sampleRate
	if c.notePressed {
		c.notePressTimer += inc
	} else if c.noteReleaseTimer < c.releaseTime {
		c.noteReleaseTimer += inc
	}
	if c.noteDuration > 0 {
		c.noteDuration -= inc
		if c.noteDuration <= 0 {
			c.notePressed = false
		}
	}
}

func (c *channel) pressNote() {
	c.notePressed = true
	c.notePressTimer = 0
	c.noteReleaseTimer = 0
}

func (c *channel) releaseNote() { c.notePressed = false }

func (c *channel) playNoteForTime(t float32) {
	c.pressNote()
	c.noteDuration = t
}

// envelopeLevel implements the A/D/S/R state machine: 0->1 ramp over
// attack, 1->sustain ramp over decay, hold at sustain, then
// sustain->0 ramp over release after the note is released.
func (c *channel) envelopeLevel() float32 {
	if !c.envelopeEnabled {
		return 1
	}
	if c.notePressed {
		if c.notePressTimer < c.attackTime {
			return c.notePressTimer / c.attackTime
		}
		if c.notePressTimer < c.attackTime+c.decayTime {
			progress := (c.notePressTimer - c.attackTime) / c.decayTime
			return 1 - progress*(1-c.sustainLevel)
		}
		return c.sustainLevel
	}
	if c.noteReleaseTimer > c.releaseTime || c.releaseTime == 0 {
		return 0
	}
	return (1 - c.noteReleaseTimer/c.releaseTime) * c.sustainLevel
}
