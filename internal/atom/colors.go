package atom

import (
	"math"

	"github.com/PixPMusic/gopher-surface/internal/surface"
)

var (
	dimRed    = surface.RGB(0.3, 0, 0)
	armedSlot = surface.Black.Mix(surface.Red, 0.1)
)

const (
	drumDarken   = 0.7
	stepsDimmed  = 0.3
	stepsPerPage = 16
	stepSize     = 0.25 // beats
	pageLength   = stepsPerPage * stepSize
)

// color reads a color value, black when unknown.
func (c *Controller) color(key string) surface.Color {
	col, _ := c.app.Color(key)
	return col
}

// transportPulse oscillates between amount and 0, multiplier times per
// beat.
func (c *Controller) transportPulse(multiplier, amount float64) float64 {
	p := c.app.Float(KeyTransportBeats) * multiplier
	return (0.5 + 0.5*math.Cos(p*2*math.Pi)) * amount
}

// mixWithWhite brightens col toward white by a note velocity.
func mixWithWhite(col surface.Color, velocity int) surface.Color {
	return col.Mix(surface.White, float64(velocity)/surface.MaxChannel)
}

func (c *Controller) playingVelocity(pad int) int {
	return c.app.Int(NoteVelocityKey(firstDrumKey + pad))
}

// slotColor renders a launcher slot: recording queued pulses red, queued
// playback pulses fast, playing pulses on the beat.
func (c *Controller) slotColor(slot string) surface.Value {
	col := c.color(slot + slotColor)

	switch {
	case c.app.Bool(slot + slotRecordingQueued):
		return surface.Lit(surface.Red.Mix(surface.Black, c.transportPulse(1, 1)))
	case c.app.Bool(slot + slotHasContent):
		switch {
		case c.app.Bool(slot + slotPlaybackQueued):
			return surface.Lit(col.Mix(surface.White, 1-c.transportPulse(4, 1)))
		case c.app.Bool(slot + slotRecording):
			return surface.Lit(surface.Red)
		case c.app.Bool(slot+slotPlaying) && c.app.Bool(KeyPlaying):
			return surface.Lit(col.Mix(surface.White, 1-c.transportPulse(1, 1)))
		}
		return surface.Lit(col)
	case c.app.Bool(KeyTrackArmed):
		return surface.Lit(armedSlot)
	}
	return surface.Lit(surface.Black)
}

func (c *Controller) drumPadColor(pad int) surface.Value {
	bankExists := c.app.Bool(KeyDrumBankExists)
	if bankExists && !c.app.Bool(DrumPadExistsKey(pad)) {
		return surface.Off
	}

	col := c.color(KeyTrackColor)
	if bankExists {
		col = c.color(DrumPadColorKey(pad)).Scale(drumDarken)
	}
	if v := c.playingVelocity(pad); v > 0 {
		col = mixWithWhite(col, v)
	}
	return surface.Lit(col)
}

func (c *Controller) stepsPadColor(pad int) surface.Value {
	clip := c.color(KeyClipColor)

	if c.shift {
		if c.currentPad == pad {
			return surface.Lit(surface.White)
		}
		col := clip.Scale(stepsDimmed)
		if v := c.playingVelocity(pad); v > 0 {
			col = mixWithWhite(col, v)
		}
		return surface.Lit(col)
	}

	if c.playingStep() == pad+c.currentPage*stepsPerPage {
		return surface.Lit(surface.White)
	}

	switch c.app.Int(StepKey(pad)) {
	case 2:
		return surface.Lit(clip.Mix(surface.White, 0.5))
	case 1:
		return surface.Lit(clip)
	}
	return surface.Lit(clip.Mix(surface.Black, 0.8))
}

func (c *Controller) stepsZoomPadColor(pad int) surface.Value {
	if pad >= c.numStepPages() {
		return surface.Lit(surface.Black)
	}
	col := c.color(KeyClipColor)
	if pad != c.currentPage {
		col = col.Mix(surface.Black, 0.5)
	}
	if pad == c.playingPage() {
		col = col.Mix(surface.White, 1-c.transportPulse(1, 1))
	}
	return surface.Lit(col)
}

func (c *Controller) setupLoopPadColor(pad int) surface.Value {
	if pad == padLoopShorter || pad == padLoopLonger {
		return surface.Lit(surface.White)
	}
	if pad >= c.numStepPages() {
		return surface.Lit(surface.Black)
	}
	col := c.color(KeyClipColor)
	if pad == c.playingPage() {
		col = col.Mix(surface.White, 1-c.transportPulse(1, 1))
	}
	return surface.Lit(col)
}

// playingStep is the clip's playing step, -1 when stopped or unknown.
func (c *Controller) playingStep() int {
	if !c.app.Has(KeyClipPlayingStep) {
		return -1
	}
	return c.app.Int(KeyClipPlayingStep)
}

func (c *Controller) playingPage() int {
	step := c.playingStep()
	if step < 0 {
		return -1
	}
	return step / stepsPerPage
}

// numStepPages is how many pages of steps the clip loop spans.
func (c *Controller) numStepPages() int {
	end := c.app.Float(KeyClipLoopStart) + c.app.Float(KeyClipLoopLength)
	return int(math.Ceil(end / pageLength))
}
