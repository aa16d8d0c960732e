package layers

import (
	"github.com/PixPMusic/gopher-surface/internal/logger"
	"github.com/PixPMusic/gopher-surface/internal/surface"
)

// Layer is a named set of bindings, at most one per control, that can be
// switched on and off as a whole. Layers are created through a Stack.
type Layer struct {
	name     string
	stack    *Stack
	log      logger.Logger
	active   bool
	bindings map[*surface.Control]*Binding
	order    []*surface.Control
}

func (l *Layer) Name() string { return l.name }

func (l *Layer) String() string { return l.name }

// Bind registers the binding for c built from opts. A previous binding for
// c in this layer is replaced as a whole.
func (l *Layer) Bind(c *surface.Control, opts ...Option) *Binding {
	b := newBinding(l, c, opts)
	if _, ok := l.bindings[c]; ok {
		l.log.WithField("control", c.ID()).Warn("control bound twice in one layer, keeping the last binding")
	} else {
		l.order = append(l.order, c)
	}
	l.bindings[c] = b

	if l.active {
		l.stack.RefreshLights()
	}
	return b
}

// BindPressed runs action on press.
func (l *Layer) BindPressed(c *surface.Control, action func(), opts ...Option) *Binding {
	return l.Bind(c, append([]Option{OnPress(action)}, opts...)...)
}

// BindReleased runs action on release.
func (l *Layer) BindReleased(c *surface.Control, action func(), opts ...Option) *Binding {
	return l.Bind(c, append([]Option{OnRelease(action)}, opts...)...)
}

// BindToggle runs action on press and lights the control while guard holds.
func (l *Layer) BindToggle(c *surface.Control, action func(), guard func() bool, opts ...Option) *Binding {
	return l.Bind(c, append([]Option{OnPress(action), WithGuard(guard)}, opts...)...)
}

// BindLayerToggle latches target: each press flips it.
func (l *Layer) BindLayerToggle(c *surface.Control, target *Layer, opts ...Option) *Binding {
	return l.BindToggle(c, target.Toggle, target.IsActive, opts...)
}

// BindLayerHold activates target while c is held down.
func (l *Layer) BindLayerHold(c *surface.Control, target *Layer, opts ...Option) *Binding {
	base := []Option{
		OnPress(target.Activate),
		OnRelease(target.Deactivate),
		WithGuard(target.IsActive),
	}
	return l.Bind(c, append(base, opts...)...)
}

// BindEncoder forwards every delta of c to fn.
func (l *Layer) BindEncoder(c *surface.Control, fn func(delta int)) *Binding {
	return l.Bind(c, OnAdjust(fn))
}

// BindLight claims c for its light only. Input on c is swallowed while
// the binding is effective.
func (l *Layer) BindLight(c *surface.Control, light func() surface.Value) *Binding {
	return l.Bind(c, WithLight(light))
}

// Binding returns the binding for c in this layer, or nil.
func (l *Layer) Binding(c *surface.Control) *Binding {
	return l.bindings[c]
}

// Bindings returns the layer's bindings in registration order.
func (l *Layer) Bindings() []*Binding {
	out := make([]*Binding, 0, len(l.order))
	for _, c := range l.order {
		out = append(out, l.bindings[c])
	}
	return out
}

func (l *Layer) IsActive() bool { return l.active }

// Activate puts the layer in front of every other active layer. It does
// nothing if the layer is already active.
func (l *Layer) Activate() { l.stack.activate(l) }

// Deactivate removes the layer from the active set. It does nothing if
// the layer is inactive.
func (l *Layer) Deactivate() { l.stack.deactivate(l) }

func (l *Layer) Toggle() { l.SetActive(!l.active) }

func (l *Layer) SetActive(active bool) {
	if active {
		l.Activate()
	} else {
		l.Deactivate()
	}
}
