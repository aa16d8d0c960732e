package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

func newTestSurface(rec *recorder) *Surface {
	s := New(0, rec.send)
	s.AddButton("play", 0x6D)
	s.AddRGBButton("select", 0x67)
	s.AddPad("pad1", 0x24)
	s.AddEncoder("knob1", 0x0E)
	return s
}

func TestLookupPad(t *testing.T) {
	s := newTestSurface(&recorder{})

	c, ev, ok := s.Lookup(midi.NoteOn(0, 0x24, 100))
	require.True(t, ok)
	assert.Equal(t, "pad1", c.ID())
	assert.Equal(t, Press(), ev)

	c, ev, ok = s.Lookup(midi.NoteOff(0, 0x24))
	require.True(t, ok)
	assert.Equal(t, "pad1", c.ID())
	assert.Equal(t, Release(), ev)

	_, ev, ok = s.Lookup(midi.Message{0x90, 0x24, 0})
	require.True(t, ok)
	assert.Equal(t, Release(), ev)
}

func TestLookupButton(t *testing.T) {
	s := newTestSurface(&recorder{})

	c, ev, ok := s.Lookup(midi.ControlChange(0, 0x6D, 127))
	require.True(t, ok)
	assert.Equal(t, "play", c.ID())
	assert.Equal(t, Button, c.Kind())
	assert.Equal(t, Press(), ev)

	_, ev, ok = s.Lookup(midi.ControlChange(0, 0x6D, 0))
	require.True(t, ok)
	assert.Equal(t, Release(), ev)
}

func TestLookupEncoderDeltas(t *testing.T) {
	s := newTestSurface(&recorder{})

	var deltas []int
	for _, v := range []uint8{3, 3, 65} {
		c, ev, ok := s.Lookup(midi.ControlChange(0, 0x0E, v))
		require.True(t, ok)
		assert.Equal(t, "knob1", c.ID())
		assert.Equal(t, Adjusted, ev.Kind)
		deltas = append(deltas, ev.Delta)
	}
	assert.Equal(t, []int{3, 3, -1}, deltas)

	_, _, ok := s.Lookup(midi.ControlChange(0, 0x0E, 0))
	assert.False(t, ok)
	_, _, ok = s.Lookup(midi.ControlChange(0, 0x0E, 64))
	assert.False(t, ok)
}

func TestLookupIgnoresUnknownInput(t *testing.T) {
	s := newTestSurface(&recorder{})

	for _, msg := range []midi.Message{
		midi.NoteOn(0, 0x50, 100),
		midi.NoteOn(1, 0x24, 100),
		midi.ControlChange(0, 0x01, 127),
		midi.Pitchbend(0, 100),
	} {
		_, _, ok := s.Lookup(msg)
		assert.False(t, ok, "% X", []byte(msg))
	}
}

func TestSignedBitDelta(t *testing.T) {
	tests := map[uint8]int{
		0:   0,
		1:   1,
		63:  63,
		64:  0,
		65:  -1,
		127: -63,
	}
	for in, want := range tests {
		assert.Equal(t, want, SignedBitDelta(in), "value %d", in)
	}
}

func TestSurfaceLights(t *testing.T) {
	rec := &recorder{}
	s := newTestSurface(rec)

	assert.Nil(t, s.Control("knob1").Light())
	require.NotNil(t, s.Control("play").Light())

	s.Control("play").Light().Request(Bool(true))
	require.NoError(t, s.Control("play").Light().Flush())
	s.Control("pad1").Light().Request(Lit(Red))
	require.NoError(t, s.Control("pad1").Light().Flush())

	assert.Equal(t, []midi.Message{
		{0xB0, 0x6D, 0x7F},
		{0x90, 0x24, 0x7F},
		{0x91, 0x24, 0x7F},
		{0x92, 0x24, 0},
		{0x93, 0x24, 0},
	}, rec.sent)
}

func TestSurfaceRejectsDuplicates(t *testing.T) {
	s := New(0, (&recorder{}).send)
	s.AddButton("play", 0x6D)

	assert.Panics(t, func() { s.AddButton("play", 0x6E) })
	assert.Panics(t, func() { s.AddEncoder("other", 0x6D) })
	assert.NotPanics(t, func() { s.AddPad("pad", 0x6D) })
	assert.Len(t, s.Controls(), 2)
}

func TestRGBLightsStayWithinChannelVoiceStatus(t *testing.T) {
	rec := &recorder{}
	s := New(MaxLightChannel, rec.send)
	pad := s.AddPad("pad", 0x24)
	sel := s.AddRGBButton("select", 0x67)

	pad.Light().Request(Lit(White))
	require.NoError(t, pad.Light().Flush())
	sel.Light().Request(Lit(White))
	require.NoError(t, sel.Light().Flush())

	require.Len(t, rec.sent, 8)
	for _, msg := range rec.sent {
		assert.Contains(t, []byte{0x90, 0xB0}, msg[0]&0xF0, "% X", []byte(msg))
	}
	assert.Equal(t, byte(0x9F), rec.sent[3][0])
	assert.Equal(t, byte(0xBF), rec.sent[7][0])
}

func TestRGBLightsRejectHighChannels(t *testing.T) {
	for ch := uint8(MaxLightChannel + 1); ch <= 0x0F; ch++ {
		s := New(ch, (&recorder{}).send)
		assert.Panics(t, func() { s.AddPad("pad", 0x24) }, "channel %d", ch)
		assert.Panics(t, func() { s.AddRGBButton("select", 0x67) }, "channel %d", ch)
		assert.NotPanics(t, func() { s.AddButton("play", 0x6D) }, "channel %d", ch)
	}
}
