package midi

import (
	"gitlab.com/gomidi/midi/v2"
)

// NoteInput routes pad notes to the application as playable notes. Note
// off, note on and poly aftertouch on the controller's channel pass
// through when key translation is on; everything else is left to the
// control surface.
type NoteInput struct {
	channel      uint8
	send         func(midi.Message) error
	translate    bool
	fullVelocity bool
}

// NewNoteInput creates a router for notes on channel. send may be nil, in
// which case nothing is forwarded.
func NewNoteInput(channel uint8, send func(midi.Message) error) *NoteInput {
	return &NoteInput{channel: channel & channelMask, send: send, translate: true}
}

// SetKeyTranslation lets every key through (true) or none (false).
func (n *NoteInput) SetKeyTranslation(all bool) { n.translate = all }

func (n *NoteInput) KeyTranslation() bool { return n.translate }

// SetFullVelocity forces the velocity of every note on to 127.
func (n *NoteInput) SetFullVelocity(on bool) { n.fullVelocity = on }

func (n *NoteInput) FullVelocity() bool { return n.fullVelocity }

// Forward sends msg on when it is a note message the router lets through
// and reports whether it did.
func (n *NoteInput) Forward(msg midi.Message) (bool, error) {
	if n.send == nil || !n.translate || len(msg) != 3 {
		return false, nil
	}
	if msg[0]&channelMask != n.channel {
		return false, nil
	}

	switch msg[0] & statusMask {
	case StatusNoteOff, StatusPolyAftertouch:
	case StatusNoteOn:
		if n.fullVelocity && msg[2] > 0 {
			msg = midi.Message{msg[0], msg[1], 0x7F}
		}
	default:
		return false, nil
	}

	if err := n.send(msg); err != nil {
		return false, err
	}
	return true, nil
}
