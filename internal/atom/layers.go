package atom

import (
	"math"

	"github.com/PixPMusic/gopher-surface/internal/layers"
	"github.com/PixPMusic/gopher-surface/internal/surface"
)

// Layer names, in registration order.
const (
	LayerBase            = "Base"
	LayerSteps           = "Steps"
	LayerStepsZoom       = "Steps Zoom"
	LayerStepsSetupLoop  = "Steps Setup Loop"
	LayerLauncherClips   = "Launcher Clips"
	LayerNoteRepeat      = "Note Repeat"
	LayerNoteRepeatShift = "Note Repeat Shift"
)

// Pads of the setup loop layer that resize the loop.
const (
	padLoopShorter = 14
	padLoopLonger  = 15
)

// arpPeriods are the note repeat rates in beats, one per pad 1-8.
var arpPeriods = [8]float64{1, 1.0 / 2, 1.0 / 4, 1.0 / 8, 3.0 / 4, 3.0 / 8, 3.0 / 16, 3.0 / 32}

func (c *Controller) initLayers() {
	c.base = c.stack.NewLayer(LayerBase)
	c.steps = c.stack.NewLayer(LayerSteps)
	c.stepsZoom = c.stack.NewLayer(LayerStepsZoom)
	c.stepsSetupLoop = c.stack.NewLayer(LayerStepsSetupLoop)
	c.launcherClips = c.stack.NewLayer(LayerLauncherClips)
	c.noteRepeat = c.stack.NewLayer(LayerNoteRepeat)
	c.noteRepeatShift = c.stack.NewLayer(LayerNoteRepeatShift)

	c.initBaseLayer()
	c.initStepsLayer()
	c.initStepsZoomLayer()
	c.initStepsSetupLoopLayer()
	c.initLauncherClipsLayer()
	c.initNoteRepeatLayer()
	c.initNoteRepeatShiftLayer()

	c.base.Activate()
}

// is returns a guard reading a bool value.
func (c *Controller) is(key string) func() bool {
	return func() bool { return c.app.Bool(key) }
}

// invoke returns an action running a named application action.
func (c *Controller) invoke(name string, args ...float64) func() {
	return func() { c.app.Invoke(name, args...) }
}

func (c *Controller) initBaseLayer() {
	l, ctl := c.base, c.controls

	l.Bind(ctl.Shift,
		layers.OnPress(func() { c.setShift(true) }),
		layers.OnRelease(func() { c.setShift(false) }),
		layers.WithGuard(c.Shift))

	l.BindToggle(ctl.Click, func() { c.app.Toggle(KeyMetronome) }, c.is(KeyMetronome))

	l.BindToggle(ctl.PlayLoop, func() {
		if c.shift {
			c.app.Toggle(KeyArrangerLoop)
		} else {
			c.app.Invoke(ActionTogglePlay)
		}
	}, c.is(KeyPlaying))

	l.BindToggle(ctl.StopUndo, func() {
		if c.shift {
			c.app.Invoke(ActionUndo)
		} else {
			c.app.Invoke(ActionStop)
		}
	}, func() bool { return !c.app.Bool(KeyPlaying) })

	l.BindToggle(ctl.RecordSave, func() {
		if c.shift {
			c.app.Invoke(ActionSave)
		} else {
			c.app.Toggle(KeyArrangerRecord)
		}
	}, c.is(KeyArrangerRecord))

	l.BindToggle(ctl.Up, c.invoke(ActionTrackPrevious), c.is(KeyTrackHasPrev))
	l.BindToggle(ctl.Down, c.invoke(ActionTrackNext), c.is(KeyTrackHasNext))
	l.BindToggle(ctl.Left, c.invoke(ActionDevicePrevious), c.is(KeyDeviceHasPrev))
	l.BindToggle(ctl.Right, c.invoke(ActionDeviceNext), c.is(KeyDeviceHasNext))

	l.Bind(ctl.Select,
		layers.OnPress(func() {
			if c.app.Bool(KeyCursorSlot + slotRecording) {
				c.app.Invoke(ActionLaunchCursor)
			} else {
				c.launcherClips.Activate()
			}
		}),
		layers.OnRelease(c.launcherClips.Deactivate),
		layers.WithLight(func() surface.Value { return c.slotColor(KeyCursorSlot) }))

	l.BindLayerToggle(ctl.Editor, c.steps)

	l.Bind(ctl.NoteRepeat,
		layers.OnRelease(c.toggleNoteRepeat),
		layers.WithGuard(c.is(KeyArpEnabled)))

	l.BindToggle(ctl.FullLevel, func() {
		c.fullLevel = !c.fullLevel
		c.notes.SetFullVelocity(c.fullLevel)
	}, func() bool { return c.fullLevel })

	for i, enc := range ctl.Encoders {
		param := float64(i)
		l.BindEncoder(enc, func(delta int) {
			c.app.Invoke(ActionRemoteAdjust, param, float64(delta)*c.encoderScale())
		})
	}

	for i, pad := range ctl.Pads {
		l.Bind(pad,
			layers.OnPress(func() { c.selectPad(i) }),
			layers.WithLight(func() surface.Value { return c.drumPadColor(i) }))
	}
}

// toggleNoteRepeat flips the arpeggiator and the note repeat layer with it.
func (c *Controller) toggleNoteRepeat() {
	c.app.Invoke(ActionArpConfigure)

	wasEnabled := c.app.Bool(KeyArpEnabled)
	c.app.SetBool(KeyArpEnabled, !wasEnabled)
	c.noteRepeat.SetActive(!wasEnabled)
}

// selectPad makes pad the key edited by the step sequencer.
func (c *Controller) selectPad(pad int) {
	c.currentPad = pad
	c.app.Invoke(ActionScrollToKey, float64(firstDrumKey+pad))
}

func (c *Controller) initStepsLayer() {
	l, ctl := c.steps, c.controls

	l.BindToggle(ctl.Up, func() { c.scrollKeys(1) }, c.is(KeyClipCanKeysUp))
	l.BindToggle(ctl.Down, func() { c.scrollKeys(-1) }, c.is(KeyClipCanKeysDown))
	l.BindToggle(ctl.Left, func() { c.scrollPage(-1) }, c.is(KeyClipCanStepsBwd))
	l.BindToggle(ctl.Right, func() { c.scrollPage(1) }, c.is(KeyClipCanStepsFwd))

	l.BindLayerToggle(ctl.Zoom, c.stepsZoom)
	l.BindLayerToggle(ctl.SetLoop, c.stepsSetupLoop)

	for i, pad := range ctl.Pads {
		l.Bind(pad,
			layers.OnPress(func() {
				if c.shift {
					c.selectPad(i)
					c.app.Invoke(ActionPlayNote, float64(firstDrumKey+i), 100)
					return
				}
				c.app.Invoke(ActionToggleStep, float64(i), 0, 100)
			}),
			layers.WithLight(func() surface.Value { return c.stepsPadColor(i) }))
	}
}

func (c *Controller) scrollKeys(delta int) {
	c.selectPad((c.currentPad + delta) & (NumPads - 1))
}

func (c *Controller) scrollPage(delta int) {
	page := c.currentPage + delta
	page = min(page, c.numStepPages()-1)
	c.setPage(max(page, 0))
}

func (c *Controller) setPage(page int) {
	c.currentPage = page
	c.app.Invoke(ActionScrollToStep, float64(stepsPerPage*page))
}

func (c *Controller) initStepsZoomLayer() {
	for i, pad := range c.controls.Pads {
		c.stepsZoom.Bind(pad,
			layers.OnPress(func() { c.setPage(i) }),
			layers.WithLight(func() surface.Value { return c.stepsZoomPadColor(i) }))
	}
}

func (c *Controller) initStepsSetupLoopLayer() {
	for i, pad := range c.controls.Pads {
		opts := []layers.Option{
			layers.WithLight(func() surface.Value { return c.setupLoopPadColor(i) }),
		}
		switch i {
		case padLoopShorter:
			opts = append(opts, layers.OnPress(func() {
				length := c.app.Float(KeyClipLoopLength) - pageLength
				c.app.SetFloat(KeyClipLoopLength, math.Max(pageLength, length))
			}))
		case padLoopLonger:
			opts = append(opts, layers.OnPress(func() {
				c.app.SetFloat(KeyClipLoopLength, c.app.Float(KeyClipLoopLength)+pageLength)
			}))
		default:
			// Claimed so the pad does not fall through to the steps below.
			opts = append(opts, layers.OnPress(func() {}))
		}
		c.stepsSetupLoop.Bind(pad, opts...)
	}
}

func (c *Controller) initLauncherClipsLayer() {
	for i, pad := range c.controls.Pads {
		slot := SlotKey(i)
		c.launcherClips.Bind(pad,
			layers.OnPress(func() {
				c.app.Invoke(ActionSlotSelect, float64(i))
				c.app.Invoke(ActionSlotLaunch, float64(i))
			}),
			layers.WithLight(func() surface.Value {
				if !c.app.Bool(slot + slotHasContent) {
					return surface.Off
				}
				return c.slotColor(slot)
			}))
	}
}

func (c *Controller) initNoteRepeatLayer() {
	c.noteRepeat.BindLayerHold(c.controls.Shift, c.noteRepeatShift)
}

func (c *Controller) initNoteRepeatShiftLayer() {
	pads := c.controls.Pads
	for i, period := range arpPeriods {
		c.noteRepeatShift.Bind(pads[i],
			layers.OnPress(func() { c.app.SetFloat(KeyArpPeriod, period) }),
			layers.WithLight(func() surface.Value {
				if c.app.Float(KeyArpPeriod) == period {
					return surface.Lit(surface.Red)
				}
				return surface.Lit(dimRed)
			}))

		c.noteRepeatShift.Bind(pads[i+len(arpPeriods)], layers.OnPress(func() {}))
	}
}
