package surface

import "fmt"

// Value is the abstract content a light is asked to display. The zero value
// is off. An off value carries no color.
type Value struct {
	On    bool
	Color Color
}

// Off turns a light off.
var Off = Value{}

// Lit shows c.
func Lit(c Color) Value {
	return Value{On: true, Color: c}
}

// Bool is the value of a plain on/off light.
func Bool(on bool) Value {
	return Value{On: on}
}

func (v Value) String() string {
	if !v.On {
		return "off"
	}
	return fmt.Sprintf("on(%d,%d,%d)", v.Color.R, v.Color.G, v.Color.B)
}

// State is the packed form of a Value:
//
//	bits 24-30  on flag (0x7F when on)
//	bits 16-22  red
//	bits  8-14  green
//	bits  0-6   blue
type State uint32

const (
	stateOn     = 0x7F
	onShift     = 24
	redShift    = 16
	greenShift  = 8
	channelMask = 0x7F
)

// Encode packs v into a State. Channels above MaxChannel are clamped.
func Encode(v Value) State {
	if !v.On {
		return 0
	}
	c := v.Color.Clamped()
	return State(stateOn)<<onShift |
		State(c.R)<<redShift |
		State(c.G)<<greenShift |
		State(c.B)
}

// Decode unpacks s. Decode(Encode(v)) == v for every value whose channels
// are within range.
func Decode(s State) Value {
	if !s.IsOn() {
		return Off
	}
	return Lit(Color{
		R: uint8(s>>redShift) & channelMask,
		G: uint8(s>>greenShift) & channelMask,
		B: uint8(s) & channelMask,
	})
}

// IsOn reports whether the on flag is set.
func (s State) IsOn() bool {
	return (s>>onShift)&channelMask != 0
}

// Channels returns the raw data bytes in transmission order: on, red,
// green, blue.
func (s State) Channels() [4]uint8 {
	return [4]uint8{
		uint8(s>>onShift) & channelMask,
		uint8(s>>redShift) & channelMask,
		uint8(s>>greenShift) & channelMask,
		uint8(s) & channelMask,
	}
}
