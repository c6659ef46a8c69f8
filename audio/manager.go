// Package audio implements the shared ADSR-enveloped oscillator bank
// (square/triangle/sawtooth/noise) driven by a single-producer message
// queue, consumed by a dedicated worker on each audio-device callback.
// Any of the three console cores can drive it identically: C64's SID,
// the NES APU, and the VCS's AUDC/AUDV/AUDF registers all reduce to
// the same channel contract at this layer.
package audio

import "sync"

// Manager owns a bank of channels and the single queue through which
// every mutation reaches them. It is safe to call Manager's methods
// (AddChannel, Enable, SetFrequency, ...) from any goroutine; they
// only ever enqueue a message; the audio worker is the only goroutine
// that ever reads or writes channel state. There is no other shared
// mutable state between the caller and the worker.
type Manager struct {
	sampleRate float32

	mu       sync.Mutex
	queue    []message
	nextID   ChannelID
	channels []*channel
}

// NewManager returns an empty channel bank generating samples at
// sampleRate (the host audio device's configured rate).
func NewManager(sampleRate int) *Manager {
	return &Manager{sampleRate: float32(sampleRate)}
}

type msgKind int

const (
	msgAddChannel msgKind = iota
	msgEnable
	msgDisable
	msgSetFrequency
	msgSetVolume
	msgSetDuty
	msgEnableEnvelope
	msgDisableEnvelope
	msgSetAttack
	msgSetDecay
	msgSetSustain
	msgSetRelease
	msgPressNote
	msgReleaseNote
	msgPlayNoteForTime
)

// message is the single enum of mutations that can cross from a caller
// into the audio worker. An addChannel message carries the ID the
// producer already assigned, so AddChannel can return it synchronously
// without touching channel state itself.
type message struct {
	kind msgKind
	id   ChannelID
	f    float32
	typ  ChannelType
}

// enqueue appends msg to the pending queue under the manager's lock.
// This is the only synchronization point between producer and worker;
// it never blocks on the worker, and messages are applied in arrival
// order.
func (m *Manager) enqueue(msg message) {
	m.mu.Lock()
	m.queue = append(m.queue, msg)
	m.mu.Unlock()
}

// drain removes and returns all messages queued since the last drain,
// in arrival order. Called once at the head of each audio callback.
func (m *Manager) drain() []message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return nil
	}
	q := m.queue
	m.queue = nil
	return q
}

// AddChannel allocates a new channel of the given type and returns its
// stable ID immediately; the channel itself is only actually created
// by the worker on its next drain, but the ID space is assigned here
// (from a producer-owned counter, never by inspecting worker-owned
// state) so callers never have to wait on the audio thread to get one.
func (m *Manager) AddChannel(typ ChannelType) ChannelID {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.queue = append(m.queue, message{kind: msgAddChannel, id: id, typ: typ})
	m.mu.Unlock()
	return id
}

func (m *Manager) Enable(id ChannelID)  { m.enqueue(message{kind: msgEnable, id: id}) }
func (m *Manager) Disable(id ChannelID) { m.enqueue(message{kind: msgDisable, id: id}) }

func (m *Manager) SetFrequency(id ChannelID, hz float32) {
	m.enqueue(message{kind: msgSetFrequency, id: id, f: hz})
}
func (m *Manager) SetVolume(id ChannelID, v float32) {
	m.enqueue(message{kind: msgSetVolume, id: id, f: v})
}
func (m *Manager) SetDuty(id ChannelID, d float32) {
	m.enqueue(message{kind: msgSetDuty, id: id, f: d})
}

func (m *Manager) EnableEnvelope(id ChannelID)  { m.enqueue(message{kind: msgEnableEnvelope, id: id}) }
func (m *Manager) DisableEnvelope(id ChannelID) { m.enqueue(message{kind: msgDisableEnvelope, id: id}) }

func (m *Manager) SetAttack(id ChannelID, seconds float32) {
	m.enqueue(message{kind: msgSetAttack, id: id, f: seconds})
}
func (m *Manager) SetDecay(id ChannelID, seconds float32) {
	m.enqueue(message{kind: msgSetDecay, id: id, f: seconds})
}
func (m *Manager) SetSustain(id ChannelID, level float32) {
	m.enqueue(message{kind: msgSetSustain, id: id, f: level})
}
func (m *Manager) SetRelease(id ChannelID, seconds float32) {
	m.enqueue(message{kind: msgSetRelease, id: id, f: seconds})
}

func (m *Manager) PressNote(id ChannelID)   { m.enqueue(message{kind: msgPressNote, id: id}) }
func (m *Manager) ReleaseNote(id ChannelID) { m.enqueue(message{kind: msgReleaseNote, id: id}) }
func (m *Manager) PlayNoteForTime(id ChannelID, seconds float32) {
	m.enqueue(message{kind: msgPlayNoteForTime, id: id, f: seconds})
}

// apply processes one message against the channel bank. A message
// targeting a channel ID that doesn't exist (not-yet-created, or a
// caller's programming error) is dropped silently.
func (m *Manager) apply(msg message) {
	if msg.kind == msgAddChannel {
		for ChannelID(len(m.channels)) <= msg.id {
			m.channels = append(m.channels, newChannel(msg.typ, m.sampleRate))
		}
		return
	}
	if int(msg.id) >= len(m.channels) {
		return
	}
	c := m.channels[msg.id]
	switch msg.kind {
	case msgEnable:
		c.enabled = true
	case msgDisable:
		c.enabled = false
	case msgSetFrequency:
		c.freq = msg.f
	case msgSetVolume:
		c.setVolume(msg.f)
	case msgSetDuty:
		c.setDuty(msg.f)
	case msgEnableEnvelope:
		c.envelopeEnabled = true
	case msgDisableEnvelope:
		c.envelopeEnabled = false
	case msgSetAttack:
		c.attackTime = msg.f
	case msgSetDecay:
		c.decayTime = msg.f
	case msgSetSustain:
		c.setSustain(msg.f)
	case msgSetRelease:
		c.setReleaseTime(msg.f)
	case msgPressNote:
		c.pressNote()
	case msgReleaseNote:
		c.releaseNote()
	case msgPlayNoteForTime:
		c.playNoteForTime(msg.f)
	}
}

// FillBuffer drains all messages queued since the last call and then
// fills out with one mixed sample per entry, summing every channel's
// nextSample(). Called once per audio-device callback invocation
// (see Player.Read); out is reused across calls by the caller.
func (m *Manager) FillBuffer(out []float32) {
	for _, msg := range m.drain() {
		m.apply(msg)
	}
	for i := range out {
		var mix float32
		for _, c := range m.channels {
			mix += c.nextSample()
		}
		out[i] = mix
	}
}
