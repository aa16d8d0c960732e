package actions

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"gitlab.com/gomidi/midi/v2"
)

// PortSender opens senders on named output ports.
type PortSender interface {
	SenderFor(port string) (func(midi.Message) error, error)
}

// MidiHandler handles MIDI message sending
type MidiHandler struct {
	ports PortSender
}

// MidiActionData structure for JSON storage in Code field
type MidiActionData struct {
	DeviceName string `json:"device_name"` // output port name
	MsgType    string `json:"msg_type"`    // "note_on", "note_off", "cc", "pc", "sysex"
	Channel    int    `json:"channel"`     // 1-16
	Note       int    `json:"note"`        // 0-127, CC number for "cc"
	Velocity   int    `json:"velocity"`    // 0-127, value for "cc"
	Program    int    `json:"program"`     // 0-127
	SysEx      string `json:"sysex"`       // Hex string "F0 01 ... F7"
}

func NewMidiHandler(ports PortSender) *MidiHandler {
	return &MidiHandler{ports: ports}
}

func (h *MidiHandler) IsSupported() bool {
	return true
}

// Execute sends the described message. A first argument replaces the
// velocity, CC value or program number.
func (h *MidiHandler) Execute(code string, args []float64) (string, error) {
	data, err := parseMidiAction(code)
	if err != nil {
		return "", err
	}
	if len(args) > 0 {
		v := int(math.Round(args[0]))
		data.Velocity, data.Program = v, v
	}

	msg, err := data.Message()
	if err != nil {
		return "", err
	}

	send, err := h.ports.SenderFor(data.DeviceName)
	if err != nil {
		return "", fmt.Errorf("failed to get port '%s': %w", data.DeviceName, err)
	}
	if err := send(msg); err != nil {
		return "", fmt.Errorf("send failed: %w", err)
	}

	return fmt.Sprintf("Sent %s to %s", data.MsgType, data.DeviceName), nil
}

func (h *MidiHandler) Validate(code string) error {
	data, err := parseMidiAction(code)
	if err != nil {
		return err
	}
	_, err = data.Message()
	return err
}

func parseMidiAction(code string) (MidiActionData, error) {
	var data MidiActionData
	if err := json.Unmarshal([]byte(code), &data); err != nil {
		return data, fmt.Errorf("invalid MIDI action data: %w", err)
	}
	if data.DeviceName == "" {
		return data, errors.New("no device specified")
	}
	return data, nil
}

// Message builds the raw message. Out of range numbers are clamped.
func (d MidiActionData) Message() (midi.Message, error) {
	channel := uint8(d.Channel - 1) // 0-based
	if channel > 15 {
		channel = 0
	}

	switch d.MsgType {
	case "note_on":
		return midi.NoteOn(channel, data7(d.Note), data7(d.Velocity)), nil
	case "note_off":
		return midi.NoteOff(channel, data7(d.Note)), nil
	case "cc":
		return midi.ControlChange(channel, data7(d.Note), data7(d.Velocity)), nil
	case "pc":
		return midi.ProgramChange(channel, data7(d.Program)), nil
	case "sysex":
		body, err := parseSysEx(d.SysEx)
		if err != nil {
			return nil, err
		}
		return midi.SysEx(body), nil
	default:
		return nil, fmt.Errorf("unknown message type: %s", d.MsgType)
	}
}

// parseSysEx decodes "F0 01 02 F7" style hex. The framing bytes are
// optional; they are added back when the message is built.
func parseSysEx(s string) ([]byte, error) {
	raw, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		return nil, fmt.Errorf("invalid sysex %q: %w", s, err)
	}
	if len(raw) > 0 && raw[0] == 0xF0 {
		raw = raw[1:]
	}
	if len(raw) > 0 && raw[len(raw)-1] == 0xF7 {
		raw = raw[:len(raw)-1]
	}
	if len(raw) == 0 {
		return nil, errors.New("empty sysex")
	}
	for _, b := range raw {
		if b > 0x7F {
			return nil, fmt.Errorf("invalid sysex %q: data byte %02X out of range", s, b)
		}
	}
	return raw, nil
}

func data7(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 127:
		return 127
	default:
		return uint8(v)
	}
}
