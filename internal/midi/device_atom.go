package midi

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

// AtomDevice implements Device for the PreSonus ATOM. Native mode is a
// note-off on channel 16, key 0: velocity 127 enters it, 0 leaves it.
type AtomDevice struct{}

var (
	atomNativeOn  = midi.Message{0x8F, 0x00, 0x7F}
	atomNativeOff = midi.Message{0x8F, 0x00, 0x00}
)

func (d *AtomDevice) Type() DeviceType { return DeviceTypeAtom }

func (d *AtomDevice) ActivateNativeMode(send func(midi.Message) error) error {
	if err := send(atomNativeOn); err != nil {
		return fmt.Errorf("failed to send native mode message: %w", err)
	}
	return nil
}

func (d *AtomDevice) DeactivateNativeMode(send func(midi.Message) error) error {
	if err := send(atomNativeOff); err != nil {
		return fmt.Errorf("failed to leave native mode: %w", err)
	}
	return nil
}
