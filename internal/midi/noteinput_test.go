package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

func TestNoteInputForwardsNotes(t *testing.T) {
	c := &capture{}
	n := NewNoteInput(0, c.send)
	assert.True(t, n.KeyTranslation())

	for _, msg := range []midi.Message{
		midi.NoteOn(0, 36, 90),
		midi.NoteOff(0, 36),
		midi.PolyAfterTouch(0, 36, 20),
	} {
		ok, err := n.Forward(msg)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Len(t, c.msgs, 3)
}

func TestNoteInputSkipsOtherMessages(t *testing.T) {
	c := &capture{}
	n := NewNoteInput(0, c.send)

	for _, msg := range []midi.Message{
		midi.ControlChange(0, 0x20, 127),
		midi.NoteOn(1, 36, 90),
		midi.ProgramChange(0, 3),
	} {
		ok, err := n.Forward(msg)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Empty(t, c.msgs)
}

func TestNoteInputKeyTranslationOff(t *testing.T) {
	c := &capture{}
	n := NewNoteInput(0, c.send)
	n.SetKeyTranslation(false)

	ok, err := n.Forward(midi.NoteOn(0, 36, 90))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, c.msgs)
}

func TestNoteInputFullVelocity(t *testing.T) {
	c := &capture{}
	n := NewNoteInput(0, c.send)
	n.SetFullVelocity(true)
	assert.True(t, n.FullVelocity())

	in := midi.NoteOn(0, 40, 12)
	_, err := n.Forward(in)
	require.NoError(t, err)
	_, err = n.Forward(midi.Message{0x90, 40, 0})
	require.NoError(t, err)

	assert.Equal(t, []midi.Message{{0x90, 40, 0x7F}, {0x90, 40, 0}}, c.msgs)
	assert.Equal(t, uint8(12), in[2], "input message is not modified")
}

func TestNoteInputWithoutOutput(t *testing.T) {
	n := NewNoteInput(0, nil)
	ok, err := n.Forward(midi.NoteOn(0, 36, 90))
	assert.NoError(t, err)
	assert.False(t, ok)
}
