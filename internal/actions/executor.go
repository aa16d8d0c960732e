package actions

import (
	"errors"
	"fmt"

	"github.com/PixPMusic/gopher-surface/internal/logger"
)

var (
	// ErrUnknownActionType is returned for actions no handler is registered for.
	ErrUnknownActionType = errors.New("unknown action type")
	// ErrUnsupported is returned when the handler cannot run on this platform.
	ErrUnsupported = errors.New("action type not supported on this platform")
)

// Executor runs actions through the handler registered for their type.
type Executor struct {
	log      *logger.Log
	store    *ActionStore
	handlers map[ActionType]ActionHandler
}

// NewExecutor creates an executor over store with no handlers.
func NewExecutor(log *logger.Log, store *ActionStore) *Executor {
	return &Executor{
		log:      log.Module("actions"),
		store:    store,
		handlers: map[ActionType]ActionHandler{},
	}
}

// Register installs h for actions of type t, replacing any previous one.
func (e *Executor) Register(t ActionType, h ActionHandler) {
	e.handlers[t] = h
}

// Execute runs an action based on its type
func (e *Executor) Execute(action *Action, args []float64) (string, error) {
	if action == nil {
		return "", errors.New("action is nil")
	}

	handler, ok := e.handlers[action.Type]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownActionType, action.Type)
	}
	if !handler.IsSupported() {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, action.Type)
	}

	return handler.Execute(action.Code, args)
}

// Invoke runs the action called name and reports whether it exists.
// Execution errors are logged, never returned: a failing action behaves
// like a press that did nothing.
func (e *Executor) Invoke(name string, args ...float64) bool {
	action := e.store.GetByName(name)
	if action == nil {
		return false
	}

	log := e.log.With(logger.Fields{"action": name, "type": action.Type})
	out, err := e.Execute(action, args)
	if err != nil {
		log.WithError(err).Warn("action failed")
		return true
	}
	if out != "" {
		log.Debug(out)
	}
	return true
}

// Validate checks every stored action against its handler.
func (e *Executor) Validate() error {
	var errs []error
	for _, a := range e.store.Actions {
		handler, ok := e.handlers[a.Type]
		if !ok {
			errs = append(errs, fmt.Errorf("action %q: %w: %s", a.Name, ErrUnknownActionType, a.Type))
			continue
		}
		if err := handler.Validate(a.Code); err != nil {
			errs = append(errs, fmt.Errorf("action %q: %w", a.Name, err))
		}
	}
	return errors.Join(errs...)
}
