package surface

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

// SendFunc transmits one raw MIDI message.
type SendFunc func(midi.Message) error

// LightSender turns a light state into outbound messages.
type LightSender interface {
	Push(state State) error
}

// unsent marks a channel whose hardware value is unknown. It is outside the
// 7-bit data range so the first push always transmits.
const unsent = 0xFF

// RGBSender drives a four channel light (on flag, red, green, blue). Channel
// i is sent with status base+i and data1 as the target. Only channels whose
// value differs from the last transmitted one produce a message.
type RGBSender struct {
	status uint8
	data1  uint8
	send   SendFunc
	last   [4]uint8
}

// NewRGBSender creates a sender for the light addressed by data1.
func NewRGBSender(status, data1 uint8, send SendFunc) *RGBSender {
	return &RGBSender{
		status: status,
		data1:  data1,
		send:   send,
		last:   [4]uint8{unsent, unsent, unsent, unsent},
	}
}

func (s *RGBSender) Push(state State) error {
	for i, v := range state.Channels() {
		if v == s.last[i] {
			continue
		}
		msg := midi.Message{s.status + uint8(i), s.data1, v}
		if err := s.send(msg); err != nil {
			return fmt.Errorf("surface: send % X: %w", []byte(msg), err)
		}
		s.last[i] = v
	}
	return nil
}

// LastSent returns the remembered channel bytes. Channels never sent report
// false in the matching position of known.
func (s *RGBSender) LastSent() (values [4]uint8, known [4]bool) {
	for i, v := range s.last {
		if v != unsent {
			values[i], known[i] = v, true
		}
	}
	return values, known
}

// OnOffSender drives a single color light: 127 when on, 0 when off.
type OnOffSender struct {
	status uint8
	data1  uint8
	send   SendFunc
	last   uint8
}

// NewOnOffSender creates a sender for the light addressed by data1.
func NewOnOffSender(status, data1 uint8, send SendFunc) *OnOffSender {
	return &OnOffSender{status: status, data1: data1, send: send, last: unsent}
}

func (s *OnOffSender) Push(state State) error {
	var v uint8
	if state.IsOn() {
		v = MaxChannel
	}
	if v == s.last {
		return nil
	}
	msg := midi.Message{s.status, s.data1, v}
	if err := s.send(msg); err != nil {
		return fmt.Errorf("surface: send % X: %w", []byte(msg), err)
	}
	s.last = v
	return nil
}
