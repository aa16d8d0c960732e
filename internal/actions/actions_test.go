package actions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"

	"github.com/PixPMusic/gopher-surface/internal/logger"
)

type published struct {
	topic   string
	payload string
}

type fakePublisher struct {
	msgs []published
	err  error
}

func (p *fakePublisher) Publish(topic string, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, published{topic, string(payload)})
	return nil
}

type fakePorts struct {
	sent map[string][]midi.Message
}

func (f *fakePorts) SenderFor(port string) (func(midi.Message) error, error) {
	if port != "IAC Bus 1" {
		return nil, errors.New("port not found")
	}
	return func(msg midi.Message) error {
		if f.sent == nil {
			f.sent = map[string][]midi.Message{}
		}
		f.sent[port] = append(f.sent[port], msg)
		return nil
	}, nil
}

func TestActionStore(t *testing.T) {
	s := NewActionStore(
		Action{Name: "transport.play", Type: ActionTypeMQTT, Code: "daw/cmd/play"},
		Action{ID: "fixed", Name: "menu.save", Type: ActionTypeShellCommand, Code: "true"},
	)

	require.Len(t, s.Actions, 2)
	assert.NotEmpty(t, s.Actions[0].ID)
	assert.Equal(t, "fixed", s.GetByName("menu.save").ID)
	assert.Equal(t, "daw/cmd/play", s.GetByName("transport.play").Code)
	assert.Nil(t, s.GetByName("nope"))
	assert.Equal(t, []string{"transport.play", "menu.save"}, s.Names())

	s.AddAction(NewAction("transport.stop", ActionTypeMQTT, "daw/cmd/stop"))
	assert.Equal(t, "daw/cmd/stop", s.GetByName("transport.stop").Code)
	assert.Equal(t, []string{"transport.play", "menu.save", "transport.stop"}, s.Names())
}

func TestExecutorInvoke(t *testing.T) {
	pub := &fakePublisher{}
	s := NewActionStore(
		Action{Name: "transport.play", Type: ActionTypeMQTT, Code: "daw/cmd/play"},
		Action{Name: "odd", Type: "applescript", Code: "beep"},
	)
	e := NewExecutor(logger.Discard(), s)
	e.Register(ActionTypeMQTT, NewMQTTHandler(pub))

	assert.True(t, e.Invoke("transport.play"))
	assert.True(t, e.Invoke("transport.play", 0.5, 2))
	assert.False(t, e.Invoke("missing"))
	assert.True(t, e.Invoke("odd"), "known but failing actions still exist")

	assert.Equal(t, []published{
		{"daw/cmd/play", "[]"},
		{"daw/cmd/play", "[0.5,2]"},
	}, pub.msgs)
}

func TestExecutorExecuteErrors(t *testing.T) {
	e := NewExecutor(logger.Discard(), NewActionStore())
	_, err := e.Execute(nil, nil)
	assert.Error(t, err)

	_, err = e.Execute(&Action{Type: "applescript"}, nil)
	assert.ErrorIs(t, err, ErrUnknownActionType)

	e.Register(ActionTypeMQTT, NewMQTTHandler(nil))
	_, err = e.Execute(&Action{Type: ActionTypeMQTT, Code: "a/b"}, nil)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestExecutorValidate(t *testing.T) {
	s := NewActionStore(
		Action{Name: "ok", Type: ActionTypeMQTT, Code: "daw/cmd/ok"},
		Action{Name: "wild", Type: ActionTypeMQTT, Code: "daw/#"},
		Action{Name: "odd", Type: "applescript"},
	)
	e := NewExecutor(logger.Discard(), s)
	e.Register(ActionTypeMQTT, NewMQTTHandler(&fakePublisher{}))

	err := e.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `action "wild"`)
	assert.Contains(t, err.Error(), `action "odd"`)
	assert.NotContains(t, err.Error(), `action "ok"`)
	assert.ErrorIs(t, err, ErrUnknownActionType)
}

func TestMQTTHandlerPublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("not connected")}
	_, err := NewMQTTHandler(pub).Execute("daw/cmd/play", nil)
	assert.ErrorIs(t, err, pub.err)
}

func TestMidiHandler(t *testing.T) {
	ports := &fakePorts{}
	h := NewMidiHandler(ports)

	tests := []struct {
		name string
		code string
		args []float64
		want midi.Message
	}{
		{"note on", `{"device_name":"IAC Bus 1","msg_type":"note_on","channel":2,"note":60,"velocity":100}`, nil, midi.NoteOn(1, 60, 100)},
		{"cc with argument", `{"device_name":"IAC Bus 1","msg_type":"cc","channel":1,"note":7}`, []float64{64.4}, midi.ControlChange(0, 7, 64)},
		{"clamped", `{"device_name":"IAC Bus 1","msg_type":"cc","channel":1,"note":7}`, []float64{300}, midi.ControlChange(0, 7, 127)},
		{"program", `{"device_name":"IAC Bus 1","msg_type":"pc","channel":1,"program":5}`, nil, midi.ProgramChange(0, 5)},
		{"sysex", `{"device_name":"IAC Bus 1","msg_type":"sysex","sysex":"F0 7E 7F 06 01 F7"}`, nil, midi.SysEx([]byte{0x7E, 0x7F, 0x06, 0x01})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ports.sent = nil
			_, err := h.Execute(tt.code, tt.args)
			require.NoError(t, err)
			assert.Equal(t, []midi.Message{tt.want}, ports.sent["IAC Bus 1"])
		})
	}
}

func TestMidiHandlerRejects(t *testing.T) {
	h := NewMidiHandler(&fakePorts{})

	for name, code := range map[string]string{
		"not json":     `note_on`,
		"no device":    `{"msg_type":"note_on"}`,
		"bad type":     `{"device_name":"IAC Bus 1","msg_type":"aftertouch"}`,
		"bad sysex":    `{"device_name":"IAC Bus 1","msg_type":"sysex","sysex":"F0 zz F7"}`,
		"empty sysex":  `{"device_name":"IAC Bus 1","msg_type":"sysex","sysex":"F0 F7"}`,
		"sysex status": `{"device_name":"IAC Bus 1","msg_type":"sysex","sysex":"F0 01 90 F7"}`,
	} {
		assert.Error(t, h.Validate(code), name)
	}

	_, err := h.Execute(`{"device_name":"Nowhere","msg_type":"note_on"}`, nil)
	assert.Error(t, err)
}

func TestShellHandlerValidate(t *testing.T) {
	h := NewShellHandler(logger.Discard())
	assert.Error(t, h.Validate("   "))
	assert.Error(t, h.Validate("echo \x00"))
	assert.NoError(t, h.Validate("echo hi"))
}
