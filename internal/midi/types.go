package midi

// DeviceType represents the type of device
type DeviceType string

const (
	DeviceTypeAtom    DeviceType = "atom"    // PreSonus ATOM - needs native mode for LED control
	DeviceTypeGeneric DeviceType = "generic" // Any other controller, no mode switching
)

// Channel voice status bytes, channel 0.
const (
	StatusNoteOff        = 0x80
	StatusNoteOn         = 0x90
	StatusPolyAftertouch = 0xA0
	StatusControlChange  = 0xB0

	statusMask  = 0xF0
	channelMask = 0x0F
)
