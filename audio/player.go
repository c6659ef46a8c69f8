package audio

import (
	"math"

	"github.com/ebitengine/oto/v3"
)

// Player drives a Manager's channel bank through an oto/v3 audio
// device. Its Read method is the only place FillBuffer is called,
// matching oto's pull model (the device calls Read whenever its
// internal buffer needs refilling); Manager itself holds no reference
// to the device, keeping the emulation core free of any audio-backend
// import.
type Player struct {
	mgr     *Manager
	ctx     *oto.Context
	pl      *oto.Player
	scratch []float32
}

// NewPlayer creates an oto context at sampleRate and wires it to a
// fresh Manager, following the context-then-player setup sequence the
// corpus's oto/v3 usage follows (IntuitionAmiga-IntuitionEngine's
// OtoPlayer); unlike that reference, Manager owns the channel bank
// directly rather than behind an atomic.Pointer swap, since Manager's
// own queue already serializes every cross-goroutine mutation.
func NewPlayer(sampleRate int) (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	p := &Player{mgr: NewManager(sampleRate), ctx: ctx}
	p.pl = ctx.NewPlayer(p)
	return p, nil
}

// Manager returns the channel bank backing this player; callers drive
// its channels through its AddChannel/PressNote/etc. methods.
func (p *Player) Manager() *Manager { return p.mgr }

// Read implements io.Reader for oto.Player: it fills out with
// little-endian float32 samples pulled fresh from the channel bank on
// every call, draining the manager's message queue first.
func (p *Player) Read(out []byte) (int, error) {
	n := len(out) / 4
	if cap(p.scratch) < n {
		p.scratch = make([]float32, n)
	}
	samples := p.scratch[:n]
	p.mgr.FillBuffer(samples)
	for i, s := range samples {
		putFloat32LE(out[i*4:i*4+4], s)
	}
	return n * 4, nil
}

func putFloat32LE(b []byte, f float32) {
	bits := math.Float32bits(f)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}

// Play starts audio output.
func (p *Player) Play() { p.pl.Play() }

// Close releases the underlying oto player.
func (p *Player) Close() error {
	if p.pl != nil {
		p.pl.Close()
	}
	return nil
}
