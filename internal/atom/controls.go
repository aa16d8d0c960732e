package atom

import (
	"fmt"

	"github.com/PixPMusic/gopher-surface/internal/surface"
)

// Control change numbers of the ATOM's buttons and encoders.
const (
	ccEncoder1     = 0x0E
	ccNoteRepeat   = 0x18
	ccFullLevel    = 0x19
	ccBank         = 0x1A
	ccPresetPad    = 0x1B
	ccShowHide     = 0x1D
	ccNudge        = 0x1E
	ccEditor       = 0x1F
	ccShift        = 0x20
	ccSetLoop      = 0x55
	ccSetup        = 0x56
	ccUp           = 0x57
	ccDown         = 0x59
	ccLeft         = 0x5A
	ccRight        = 0x66
	ccSelect       = 0x67
	ccZoom         = 0x68
	ccClickCountIn = 0x69
	ccRecordSave   = 0x6B
	ccPlayLoop     = 0x6D
	ccStopUndo     = 0x6F
)

const (
	// NumPads is the number of velocity pads, notes 0x24 upward.
	NumPads = 16
	// NumEncoders is the number of relative encoders.
	NumEncoders = 4

	firstPadNote = 0x24
	// firstDrumKey is the key the first pad plays.
	firstDrumKey = 36
)

// Controls is the ATOM's physical layout.
type Controls struct {
	Shift      *surface.Control
	Up         *surface.Control
	Down       *surface.Control
	Left       *surface.Control
	Right      *surface.Control
	Select     *surface.Control
	Zoom       *surface.Control
	Click      *surface.Control
	RecordSave *surface.Control
	PlayLoop   *surface.Control
	StopUndo   *surface.Control
	Setup      *surface.Control
	SetLoop    *surface.Control
	Editor     *surface.Control
	Nudge      *surface.Control
	ShowHide   *surface.Control
	PresetPad  *surface.Control
	Bank       *surface.Control
	FullLevel  *surface.Control
	NoteRepeat *surface.Control

	Pads     [NumPads]*surface.Control
	Encoders [NumEncoders]*surface.Control
}

// NewControls declares every ATOM control on s.
func NewControls(s *surface.Surface) *Controls {
	c := &Controls{
		Shift:      s.AddButton("shift", ccShift),
		Up:         s.AddButton("up", ccUp),
		Down:       s.AddButton("down", ccDown),
		Left:       s.AddButton("left", ccLeft),
		Right:      s.AddButton("right", ccRight),
		Select:     s.AddRGBButton("select", ccSelect),
		Zoom:       s.AddButton("zoom", ccZoom),
		Click:      s.AddButton("click_count_in", ccClickCountIn),
		RecordSave: s.AddButton("record_save", ccRecordSave),
		PlayLoop:   s.AddButton("play_loop", ccPlayLoop),
		StopUndo:   s.AddButton("stop_undo", ccStopUndo),
		Setup:      s.AddButton("setup", ccSetup),
		SetLoop:    s.AddButton("set_loop", ccSetLoop),
		Editor:     s.AddButton("editor", ccEditor),
		Nudge:      s.AddButton("nudge_quantize", ccNudge),
		ShowHide:   s.AddButton("show_hide", ccShowHide),
		PresetPad:  s.AddButton("preset_pad_select", ccPresetPad),
		Bank:       s.AddButton("bank", ccBank),
		FullLevel:  s.AddButton("full_level", ccFullLevel),
		NoteRepeat: s.AddButton("note_repeat", ccNoteRepeat),
	}
	for i := range c.Pads {
		c.Pads[i] = s.AddPad(fmt.Sprintf("pad%d", i+1), uint8(firstPadNote+i))
	}
	for i := range c.Encoders {
		c.Encoders[i] = s.AddEncoder(fmt.Sprintf("encoder%d", i+1), uint8(ccEncoder1+i))
	}
	return c
}
