package midi

import "gitlab.com/gomidi/midi/v2"

// Device frames a controller session: some hardware only reports every
// control and accepts LED messages once switched to a native mode.
type Device interface {
	// ActivateNativeMode sends the commands that hand the device over to us
	ActivateNativeMode(send func(midi.Message) error) error

	// DeactivateNativeMode restores the device's default behavior
	DeactivateNativeMode(send func(midi.Message) error) error

	// Type names the device
	Type() DeviceType
}
