package midi

import (
	"errors"
	"fmt"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver
)

// ErrPortNotFound is returned when no port has the requested name.
var ErrPortNotFound = errors.New("port not found")

// Manager handles MIDI port discovery, listening and sending
type Manager struct {
	mu      sync.RWMutex
	senders map[string]func(midi.Message) error
}

// NewManager creates a new MIDI manager
func NewManager() *Manager {
	return &Manager{senders: map[string]func(midi.Message) error{}}
}

// Close cleans up the MIDI driver
func (m *Manager) Close() {
	m.mu.Lock()
	m.senders = map[string]func(midi.Message) error{}
	m.mu.Unlock()
	midi.CloseDriver()
}

// ListInPorts returns the names of available MIDI input ports
func (m *Manager) ListInPorts() []string {
	ins := midi.GetInPorts()
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names
}

// ListOutPorts returns the names of available MIDI output ports
func (m *Manager) ListOutPorts() []string {
	outs := midi.GetOutPorts()
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names
}

// GetInPort returns an input port by name
func (m *Manager) GetInPort(name string) (drivers.In, error) {
	for _, in := range midi.GetInPorts() {
		if in.String() == name {
			return in, nil
		}
	}
	return nil, fmt.Errorf("input %q: %w", name, ErrPortNotFound)
}

// GetOutPort returns an output port by name
func (m *Manager) GetOutPort(name string) (drivers.Out, error) {
	for _, out := range midi.GetOutPorts() {
		if out.String() == name {
			return out, nil
		}
	}
	return nil, fmt.Errorf("output %q: %w", name, ErrPortNotFound)
}

// StartListening delivers every message arriving on the named input to
// callback. Callbacks run on the driver's goroutine. Driver errors go to
// onErr when it is not nil.
func (m *Manager) StartListening(inPortName string, callback func(midi.Message), onErr func(error)) (func(), error) {
	inPort, err := m.GetInPort(inPortName)
	if err != nil {
		return nil, err
	}

	opts := []midi.Option{midi.UseSysEx()}
	if onErr != nil {
		opts = append(opts, midi.HandleError(onErr))
	}

	stop, err := midi.ListenTo(inPort, func(msg midi.Message, timestampms int32) {
		callback(msg)
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start listening: %w", err)
	}

	return stop, nil
}

// SenderFor returns a send function for the named output, opening the port
// on first use. Senders are cached per port and safe to call from any
// goroutine the driver allows.
func (m *Manager) SenderFor(outPortName string) (func(midi.Message) error, error) {
	m.mu.RLock()
	send, ok := m.senders[outPortName]
	m.mu.RUnlock()
	if ok {
		return send, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if send, ok := m.senders[outPortName]; ok {
		return send, nil
	}

	outPort, err := m.GetOutPort(outPortName)
	if err != nil {
		return nil, err
	}
	send, err = midi.SendTo(outPort)
	if err != nil {
		return nil, fmt.Errorf("failed to create sender: %w", err)
	}
	m.senders[outPortName] = send
	return send, nil
}
