package surface

import "math"

// MaxChannel is the largest value a color channel can carry on the wire.
const MaxChannel = 127

// Color is an RGB color with 7-bit channels (0-127), the resolution the
// pad LEDs accept.
type Color struct {
	R, G, B uint8
}

var (
	Black  = Color{}
	White  = Color{R: MaxChannel, G: MaxChannel, B: MaxChannel}
	Red    = Color{R: MaxChannel}
	Green  = Color{G: MaxChannel}
	Blue   = Color{B: MaxChannel}
	Orange = Color{R: MaxChannel, G: MaxChannel}
)

// RGB builds a color from channels in [0, 1]. Out of range inputs are
// clamped.
func RGB(r, g, b float64) Color {
	return Color{R: fromUnit(r), G: fromUnit(g), B: fromUnit(b)}
}

// RGB255 builds a color from channels in [0, 255]. Out of range inputs are
// clamped before being scaled down to 7 bits.
func RGB255(r, g, b int) Color {
	return Color{R: from255(r), G: from255(g), B: from255(b)}
}

func fromUnit(x float64) uint8 {
	if math.IsNaN(x) || x <= 0 {
		return 0
	}
	if x >= 1 {
		return MaxChannel
	}
	return uint8(MaxChannel * x)
}

func from255(x int) uint8 {
	switch {
	case x <= 0:
		return 0
	case x >= 255:
		return MaxChannel
	default:
		return uint8(x >> 1)
	}
}

func clampChannel(v uint8) uint8 {
	if v > MaxChannel {
		return MaxChannel
	}
	return v
}

// Clamped returns c with every channel limited to MaxChannel.
func (c Color) Clamped() Color {
	return Color{R: clampChannel(c.R), G: clampChannel(c.G), B: clampChannel(c.B)}
}

// Mix blends c toward o by t (0 keeps c, 1 yields o).
func (c Color) Mix(o Color, t float64) Color {
	if t <= 0 || math.IsNaN(t) {
		return c.Clamped()
	}
	if t >= 1 {
		return o.Clamped()
	}
	a, b := c.Clamped(), o.Clamped()
	return Color{
		R: lerp(a.R, b.R, t),
		G: lerp(a.G, b.G, t),
		B: lerp(a.B, b.B, t),
	}
}

// Scale multiplies every channel by f, clamping the result.
func (c Color) Scale(f float64) Color {
	c = c.Clamped()
	return Color{R: scale(c.R, f), G: scale(c.G, f), B: scale(c.B, f)}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a)*(1-t) + float64(b)*t))
}

func scale(v uint8, f float64) uint8 {
	x := math.Round(float64(v) * f)
	switch {
	case x <= 0 || math.IsNaN(x):
		return 0
	case x >= MaxChannel:
		return MaxChannel
	default:
		return uint8(x)
	}
}
