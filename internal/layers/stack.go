package layers

import (
	"errors"
	"fmt"

	"github.com/PixPMusic/gopher-surface/internal/logger"
	"github.com/PixPMusic/gopher-surface/internal/surface"
)

// Stack owns every layer and decides, for each control, which binding is
// effective: the one from the most recently activated active layer that
// binds the control.
//
// A Stack is not safe for concurrent use. Events, actions and ticks must
// all run on the same goroutine.
type Stack struct {
	log      *logger.Log
	controls []*surface.Control
	layers   []*Layer
	byName   map[string]*Layer

	// active holds the active layers, most recently activated first.
	active    []*Layer
	observers []func(*Stack)
}

// NewStack creates an empty stack driving the lights of controls.
func NewStack(log *logger.Log, controls []*surface.Control) *Stack {
	return &Stack{
		log:      log.Module("layers"),
		controls: controls,
		byName:   map[string]*Layer{},
	}
}

// NewLayer creates an inactive layer. Names must be unique.
func (s *Stack) NewLayer(name string) *Layer {
	if _, ok := s.byName[name]; ok {
		panic(fmt.Sprintf("layers: duplicate layer %q", name))
	}
	l := &Layer{
		name:     name,
		stack:    s,
		log:      s.log.With(logger.Fields{"layer": name}),
		bindings: map[*surface.Control]*Binding{},
	}
	s.layers = append(s.layers, l)
	s.byName[name] = l
	return l
}

// Layers returns all layers in registration order.
func (s *Stack) Layers() []*Layer {
	out := make([]*Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// Layer returns the layer called name, or nil.
func (s *Stack) Layer(name string) *Layer {
	return s.byName[name]
}

// ActiveLayers returns the active layers, most recently activated first.
func (s *Stack) ActiveLayers() []*Layer {
	out := make([]*Layer, len(s.active))
	copy(out, s.active)
	return out
}

// OnActiveLayersChanged registers fn to run after every change of the
// active set, once lights have been re-resolved.
func (s *Stack) OnActiveLayersChanged(fn func(*Stack)) {
	s.observers = append(s.observers, fn)
}

// Resolve returns the effective binding for c, or nil when no active
// layer binds it.
func (s *Stack) Resolve(c *surface.Control) *Binding {
	for _, l := range s.active {
		if b := l.bindings[c]; b != nil {
			return b
		}
	}
	return nil
}

// Dispatch delivers ev to the effective binding of c and reports whether
// an action ran. Events nobody handles are dropped.
func (s *Stack) Dispatch(c *surface.Control, ev surface.Event) bool {
	b := s.Resolve(c)
	if b == nil {
		s.log.WithFields(map[string]interface{}{"control": c.ID(), "event": ev.String()}).Debug("no binding")
		return false
	}
	return b.Handle(ev)
}

// RefreshLights records the effective light value of every control with a
// light. Controls nobody binds are turned off. Nothing is transmitted.
func (s *Stack) RefreshLights() {
	for _, c := range s.controls {
		light := c.Light()
		if light == nil {
			continue
		}
		v := surface.Off
		if b := s.Resolve(c); b != nil {
			v = b.Light()
		}
		light.Request(v)
	}
}

// Flush pushes every requested light value to the hardware. Lights that
// fail to send are retried on the next flush.
func (s *Stack) Flush() error {
	var errs []error
	for _, c := range s.controls {
		if light := c.Light(); light != nil {
			if err := light.Flush(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", c.ID(), err))
			}
		}
	}
	return errors.Join(errs...)
}

// Tick runs one output cycle: refresh then flush.
func (s *Stack) Tick() error {
	s.RefreshLights()
	return s.Flush()
}

func (s *Stack) activate(l *Layer) {
	if l.active {
		return
	}
	l.active = true
	s.active = append([]*Layer{l}, s.active...)
	s.log.WithField("layer", l.name).Debug("activated")
	s.changed()
}

func (s *Stack) deactivate(l *Layer) {
	if !l.active {
		return
	}
	l.active = false
	for i, a := range s.active {
		if a == l {
			s.active = append(s.active[:i], s.active[i+1:]...)
			break
		}
	}
	s.log.WithField("layer", l.name).Debug("deactivated")
	s.changed()
}

func (s *Stack) changed() {
	s.RefreshLights()
	for _, fn := range s.observers {
		fn(s)
	}
}
