package audio

import "testing"

func TestAddChannelIDsAreStable(t *testing.T) {
	m := NewManager(44100)
	id0 := m.AddChannel(Square)
	id1 := m.AddChannel(Triangle)
	if id0 == id1 {
		t.Fatalf("expected distinct IDs, got %d and %d", id0, id1)
	}
	buf := make([]float32, 4)
	m.FillBuffer(buf) // drains the two addChannel messages

	m.Enable(id0)
	m.SetVolume(id0, 1)
	m.SetFrequency(id0, 1000)
	m.FillBuffer(buf)
	for _, s := range buf {
		_ = s // channel now exists and produces a defined sample; no panic
	}
}

func TestMessageToUnknownChannelIsDropped(t *testing.T) {
	m := NewManager(44100)
	m.Enable(ChannelID(99)) // no such channel yet
	buf := make([]float32, 1)
	m.FillBuffer(buf) // must not panic
	if len(m.channels) != 0 {
		t.Errorf("unknown-channel message should not create a channel, got %d channels", len(m.channels))
	}
}

func TestOrderPreservingDelivery(t *testing.T) {
	m := NewManager(44100)
	id := m.AddChannel(Square)
	m.Enable(id)
	m.SetVolume(id, 1)
	m.SetFrequency(id, 0) // silence: sub-1Hz channels output 0 per nextSample's early return
	m.SetFrequency(id, 440)
	m.Disable(id)
	m.Enable(id)

	buf := make([]float32, 1)
	m.FillBuffer(buf)

	if !m.channels[id].enabled {
		t.Error("channel should be enabled after drain (last message was Enable)")
	}
	if m.channels[id].freq != 440 {
		t.Errorf("freq = %v, want 440 (messages must apply in arrival order)", m.channels[id].freq)
	}
}

func TestEnvelopeMessagesWireThrough(t *testing.T) {
	m := NewManager(1000)
	id := m.AddChannel(Square)
	m.EnableEnvelope(id)
	m.SetAttack(id, 0.1)
	m.SetDecay(id, 0.2)
	m.SetSustain(id, 0.3)
	m.SetRelease(id, 0.4)
	m.PressNote(id)

	buf := make([]float32, 1)
	m.FillBuffer(buf)

	c := m.channels[id]
	if !c.envelopeEnabled || c.attackTime != 0.1 || c.decayTime != 0.2 || c.sustainLevel != 0.3 || c.releaseTime != 0.4 {
		t.Errorf("envelope params not applied: %+v", c)
	}
	if !c.notePressed {
		t.Error("PressNote should set notePressed")
	}
}
