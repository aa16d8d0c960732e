package atom

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"

	"github.com/PixPMusic/gopher-surface/internal/layers"
	"github.com/PixPMusic/gopher-surface/internal/logger"
	internalmidi "github.com/PixPMusic/gopher-surface/internal/midi"
	"github.com/PixPMusic/gopher-surface/internal/surface"
)

// App is the music application as the controller sees it.
type App interface {
	Bool(key string) bool
	Int(key string) int
	Float(key string) float64
	Color(key string) (surface.Color, bool)
	Has(key string) bool

	SetBool(key string, v bool)
	SetFloat(key string, v float64)
	Toggle(key string) bool

	// Invoke runs a named action. Missing actions do nothing.
	Invoke(name string, args ...float64) bool
}

// NoteRouter passes pad notes on to the application as playable notes.
type NoteRouter interface {
	SetKeyTranslation(all bool)
	SetFullVelocity(on bool)
	Forward(msg midi.Message) (bool, error)
}

// DefaultSensitivity scales encoder deltas before they reach the
// application.
const DefaultSensitivity = 2.5

// shiftSensitivity multiplies encoder deltas while shift is held.
const shiftSensitivity = 0.1

// Options tune a Controller.
type Options struct {
	// Channel is the MIDI channel the controller talks on (0-15).
	Channel uint8
	// Sensitivity scales encoder deltas. Zero means DefaultSensitivity.
	Sensitivity float64
	// Device frames the session. Nil means the ATOM's native mode.
	Device internalmidi.Device
}

// Controller drives a PreSonus ATOM: it owns the control table, the layer
// stack and the small amount of UI state the layers share.
//
// A Controller is not safe for concurrent use; HandleMIDI and Tick must be
// called from the same goroutine.
type Controller struct {
	log    *logger.Log
	app    App
	notes  NoteRouter
	send   surface.SendFunc
	device internalmidi.Device

	surface  *surface.Surface
	controls *Controls
	stack    *layers.Stack

	base, steps, stepsZoom, stepsSetupLoop *layers.Layer
	launcherClips, noteRepeat              *layers.Layer
	noteRepeatShift                        *layers.Layer

	sensitivity float64
	shift       bool
	fullLevel   bool
	currentPad  int
	currentPage int
}

// New builds the controller. Nothing is sent until Start.
func New(log *logger.Log, app App, notes NoteRouter, send surface.SendFunc, opts Options) *Controller {
	if opts.Sensitivity == 0 {
		opts.Sensitivity = DefaultSensitivity
	}
	if opts.Device == nil {
		opts.Device = &internalmidi.AtomDevice{}
	}

	c := &Controller{
		log:         log.Module("atom"),
		app:         app,
		notes:       notes,
		send:        send,
		device:      opts.Device,
		sensitivity: opts.Sensitivity,
	}
	c.surface = surface.New(opts.Channel, send)
	c.controls = NewControls(c.surface)
	c.stack = layers.NewStack(log, c.surface.Controls())
	c.stack.OnActiveLayersChanged(c.routeNotes)

	c.initLayers()
	return c
}

// Start switches the device to native mode and sends the initial lights.
func (c *Controller) Start() error {
	if err := c.device.ActivateNativeMode(c.send); err != nil {
		return fmt.Errorf("atom: start: %w", err)
	}
	c.log.WithField("device", c.device.Type()).Info("native mode on")
	return c.Tick()
}

// Stop restores the device's default mode.
func (c *Controller) Stop() error {
	if err := c.device.DeactivateNativeMode(c.send); err != nil {
		return fmt.Errorf("atom: stop: %w", err)
	}
	c.log.Info("native mode off")
	return nil
}

// HandleMIDI processes one inbound message: pad notes go to the note
// router, control events to the layer stack.
func (c *Controller) HandleMIDI(msg midi.Message) {
	if _, err := c.notes.Forward(msg); err != nil {
		c.log.WithError(err).Warn("note forward failed")
	}

	ctrl, ev, ok := c.surface.Lookup(msg)
	if !ok {
		return
	}
	c.stack.Dispatch(ctrl, ev)
}

// Tick re-evaluates every light and sends what changed.
func (c *Controller) Tick() error {
	return c.stack.Tick()
}

func (c *Controller) Stack() *layers.Stack { return c.stack }

func (c *Controller) Controls() *Controls { return c.controls }

func (c *Controller) Surface() *surface.Surface { return c.surface }

// Shift reports whether shift is held.
func (c *Controller) Shift() bool { return c.shift }

// routeNotes plays pads as notes only while no layer uses them as buttons.
func (c *Controller) routeNotes(*layers.Stack) {
	playDrums := !c.steps.IsActive() &&
		!c.noteRepeatShift.IsActive() &&
		!c.launcherClips.IsActive() &&
		!c.stepsZoom.IsActive() &&
		!c.stepsSetupLoop.IsActive()
	c.notes.SetKeyTranslation(playDrums)
}

func (c *Controller) setShift(on bool) {
	c.shift = on
}

func (c *Controller) encoderScale() float64 {
	if c.shift {
		return c.sensitivity * shiftSensitivity
	}
	return c.sensitivity
}
