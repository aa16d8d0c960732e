package surface

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

const (
	statusNoteOn        = 0x90
	statusControlChange = 0xB0
)

// MaxLightChannel is the highest base channel an RGB light can use: its
// four channels are addressed with consecutive status bytes.
const MaxLightChannel = 0x0F - 3

type inputKey struct {
	channel uint8
	number  uint8
}

// Surface is the static table of a controller's controls: it creates them,
// owns their lights and maps inbound MIDI messages back to them.
type Surface struct {
	channel  uint8
	send     SendFunc
	controls []*Control
	byID     map[string]*Control
	ccs      map[inputKey]*Control
	notes    map[inputKey]*Control
}

// New creates an empty surface whose controls talk on MIDI channel ch
// (0-15) and whose lights transmit through send.
func New(ch uint8, send SendFunc) *Surface {
	return &Surface{
		channel: ch & 0x0F,
		send:    send,
		byID:    map[string]*Control{},
		ccs:     map[inputKey]*Control{},
		notes:   map[inputKey]*Control{},
	}
}

// AddButton adds a CC button with an on/off light on the same CC.
func (s *Surface) AddButton(id string, cc uint8) *Control {
	light := NewLight(NewOnOffSender(statusControlChange|s.channel, cc, s.send))
	return s.add(id, Button, light, s.ccs, cc)
}

// AddRGBButton adds a CC button with an RGB light. The four light channels
// use consecutive CC statuses starting at the surface's channel, which must
// not exceed MaxLightChannel.
func (s *Surface) AddRGBButton(id string, cc uint8) *Control {
	s.checkLightChannel(id)
	light := NewLight(NewRGBSender(statusControlChange|s.channel, cc, s.send))
	return s.add(id, Button, light, s.ccs, cc)
}

// AddPad adds a note pad with an RGB light addressed by the same note.
func (s *Surface) AddPad(id string, note uint8) *Control {
	s.checkLightChannel(id)
	light := NewLight(NewRGBSender(statusNoteOn|s.channel, note, s.send))
	return s.add(id, Pad, light, s.notes, note)
}

// AddEncoder adds a relative encoder sending signed-bit CC values. It has no
// light.
func (s *Surface) AddEncoder(id string, cc uint8) *Control {
	return s.add(id, RelativeEncoder, nil, s.ccs, cc)
}

func (s *Surface) checkLightChannel(id string) {
	if s.channel > MaxLightChannel {
		panic(fmt.Sprintf("surface: %s: RGB light on channel %d would run past channel 15", id, s.channel))
	}
}

// add panics on duplicate ids or input numbers: the table is static and
// built once at startup, so a clash is a programming error.
func (s *Surface) add(id string, kind Kind, light *Light, table map[inputKey]*Control, number uint8) *Control {
	if _, ok := s.byID[id]; ok {
		panic(fmt.Sprintf("surface: duplicate control id %q", id))
	}
	key := inputKey{channel: s.channel, number: number}
	if prev, ok := table[key]; ok {
		panic(fmt.Sprintf("surface: %s and %s share input number %d", prev, id, number))
	}
	c := &Control{id: id, kind: kind, light: light}
	s.byID[id] = c
	table[key] = c
	s.controls = append(s.controls, c)
	return c
}

// Control returns the control with the given id, or nil.
func (s *Surface) Control(id string) *Control {
	return s.byID[id]
}

// Controls returns every control in creation order.
func (s *Surface) Controls() []*Control {
	out := make([]*Control, len(s.controls))
	copy(out, s.controls)
	return out
}

// Lookup decodes msg and finds the control it belongs to. ok is false for
// messages that map to no control or carry no event (an encoder value of 0).
func (s *Surface) Lookup(msg midi.Message) (c *Control, ev Event, ok bool) {
	var ch, key, val uint8

	switch {
	case msg.GetNoteOn(&ch, &key, &val):
		if c = s.notes[inputKey{ch, key}]; c == nil {
			return nil, Event{}, false
		}
		if val > 0 {
			return c, Press(), true
		}
		return c, Release(), true

	case msg.GetNoteOff(&ch, &key, &val):
		if c = s.notes[inputKey{ch, key}]; c == nil {
			return nil, Event{}, false
		}
		return c, Release(), true

	case msg.GetControlChange(&ch, &key, &val):
		if c = s.ccs[inputKey{ch, key}]; c == nil {
			return nil, Event{}, false
		}
		if c.kind == RelativeEncoder {
			delta := SignedBitDelta(val)
			if delta == 0 {
				return nil, Event{}, false
			}
			return c, Adjust(delta), true
		}
		if val > 0 {
			return c, Press(), true
		}
		return c, Release(), true
	}

	return nil, Event{}, false
}

// SignedBitDelta decodes a relative "signed bit" CC value: bit 6 is the
// sign and the low six bits the magnitude, so 1..63 are increments and
// 65..127 are decrements of 1..63.
func SignedBitDelta(v uint8) int {
	magnitude := int(v & 0x3F)
	if v&0x40 != 0 {
		return -magnitude
	}
	return magnitude
}
