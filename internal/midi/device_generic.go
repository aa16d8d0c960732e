package midi

import "gitlab.com/gomidi/midi/v2"

// GenericDevice implements Device for controllers without a native mode.
// It sends nothing.
type GenericDevice struct{}

func (d *GenericDevice) Type() DeviceType { return DeviceTypeGeneric }

func (d *GenericDevice) ActivateNativeMode(send func(midi.Message) error) error {
	return nil
}

func (d *GenericDevice) DeactivateNativeMode(send func(midi.Message) error) error {
	return nil
}
