package actions

import (
	"github.com/google/uuid"
)

// ActionType selects the handler that runs an action.
type ActionType string

const (
	ActionTypeMQTT         ActionType = "mqtt"
	ActionTypeMidi         ActionType = "midi"
	ActionTypeShellCommand ActionType = "shell"
)

// Action is a named operation on the music application. Code is
// interpreted by the handler for Type: an MQTT topic, a JSON MIDI message
// description or a shell command.
type Action struct {
	ID   string     `json:"id" toml:"id" yaml:"id"`
	Name string     `json:"name" toml:"name" yaml:"name"`
	Type ActionType `json:"type" toml:"type" yaml:"type"`
	Code string     `json:"code" toml:"code" yaml:"code"`
}

// NewAction creates a new action with a generated ID
func NewAction(name string, actionType ActionType, code string) *Action {
	return &Action{
		ID:   uuid.New().String(),
		Name: name,
		Type: actionType,
		Code: code,
	}
}

// ActionStore holds the configured actions, addressable by name.
type ActionStore struct {
	Actions []Action
}

// NewActionStore creates a store holding a copy of actions. Actions
// without an ID get a generated one.
func NewActionStore(actions ...Action) *ActionStore {
	s := &ActionStore{Actions: []Action{}}
	for i := range actions {
		a := actions[i]
		s.AddAction(&a)
	}
	return s
}

// AddAction adds an action to the store
func (s *ActionStore) AddAction(action *Action) {
	if action.ID == "" {
		action.ID = uuid.New().String()
	}
	s.Actions = append(s.Actions, *action)
}

// GetByName returns the first action called name, or nil.
func (s *ActionStore) GetByName(name string) *Action {
	for i := range s.Actions {
		if s.Actions[i].Name == name {
			return &s.Actions[i]
		}
	}
	return nil
}

// Names lists the action names in store order.
func (s *ActionStore) Names() []string {
	names := make([]string, 0, len(s.Actions))
	for _, a := range s.Actions {
		names = append(names, a.Name)
	}
	return names
}
