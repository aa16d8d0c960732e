package layers

import "github.com/PixPMusic/gopher-surface/internal/surface"

// Binding ties one control to the actions its events trigger and to the
// expression its light shows, within one layer. Bindings are immutable
// once built: only the state their closures read changes.
type Binding struct {
	layer   *Layer
	control *surface.Control

	onPress   func()
	onRelease func()
	onAdjust  func(delta int)

	guard func() bool
	light func() surface.Value

	colored  bool
	onColor  surface.Color
	offColor surface.Color
}

// Option configures a Binding.
type Option func(*Binding)

// OnPress runs fn when the control is pressed.
func OnPress(fn func()) Option {
	return func(b *Binding) { b.onPress = fn }
}

// OnRelease runs fn when the control is released.
func OnRelease(fn func()) Option {
	return func(b *Binding) { b.onRelease = fn }
}

// OnAdjust runs fn with the signed delta of every encoder event.
func OnAdjust(fn func(delta int)) Option {
	return func(b *Binding) { b.onAdjust = fn }
}

// WithGuard sets the boolean the light reflects when no explicit light
// supplier is given.
func WithGuard(fn func() bool) Option {
	return func(b *Binding) { b.guard = fn }
}

// WithLight sets the supplier evaluated on every output cycle while the
// binding is effective. It overrides the guard for the light.
func WithLight(fn func() surface.Value) Option {
	return func(b *Binding) { b.light = fn }
}

// WithColors sets the colors shown for a true and a false guard. Without
// it the guard drives a plain on/off value. A black off color turns the
// light off.
func WithColors(on, off surface.Color) Option {
	return func(b *Binding) {
		b.colored = true
		b.onColor, b.offColor = on, off
	}
}

func newBinding(l *Layer, c *surface.Control, opts []Option) *Binding {
	b := &Binding{layer: l, control: c}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Binding) Layer() *Layer { return b.layer }

func (b *Binding) Control() *surface.Control { return b.control }

// Handles reports whether the binding has a trigger for ev.
func (b *Binding) Handles(ev surface.Event) bool {
	switch ev.Kind {
	case surface.Pressed:
		return b.onPress != nil
	case surface.Released:
		return b.onRelease != nil
	case surface.Adjusted:
		return b.onAdjust != nil
	}
	return false
}

// Handle invokes the trigger matching ev and reports whether one ran.
func (b *Binding) Handle(ev surface.Event) bool {
	switch {
	case ev.Kind == surface.Pressed && b.onPress != nil:
		b.onPress()
	case ev.Kind == surface.Released && b.onRelease != nil:
		b.onRelease()
	case ev.Kind == surface.Adjusted && b.onAdjust != nil:
		b.onAdjust(ev.Delta)
	default:
		return false
	}
	return true
}

// Light returns the value the control's light should show: the light
// supplier's result, else the guard rendered with the binding's colors,
// else off.
func (b *Binding) Light() surface.Value {
	if b.light != nil {
		return b.light()
	}
	if b.guard == nil {
		return surface.Off
	}

	on := b.guard()
	if !b.colored {
		return surface.Bool(on)
	}
	c := b.offColor
	if on {
		c = b.onColor
	}
	if c == surface.Black {
		return surface.Off
	}
	return surface.Lit(c)
}
