package surface

import "fmt"

// Kind is the class of a physical control.
type Kind int

const (
	Button Kind = iota
	Pad
	RelativeEncoder
)

func (k Kind) String() string {
	switch k {
	case Button:
		return "button"
	case Pad:
		return "pad"
	case RelativeEncoder:
		return "relative-encoder"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// EventKind is what happened on a control.
type EventKind int

const (
	Pressed EventKind = iota
	Released
	Adjusted
)

func (k EventKind) String() string {
	switch k {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	case Adjusted:
		return "adjusted"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is one decoded hardware input. Delta is only meaningful for
// Adjusted events.
type Event struct {
	Kind  EventKind
	Delta int
}

// Press, Release and Adjust build events.
func Press() Event { return Event{Kind: Pressed} }

func Release() Event { return Event{Kind: Released} }

func Adjust(delta int) Event { return Event{Kind: Adjusted, Delta: delta} }

func (e Event) String() string {
	if e.Kind == Adjusted {
		return fmt.Sprintf("adjusted(%+d)", e.Delta)
	}
	return e.Kind.String()
}

// Control is a physical input element. Controls are created once through a
// Surface and live as long as it does.
type Control struct {
	id    string
	kind  Kind
	light *Light
}

func (c *Control) ID() string { return c.id }

func (c *Control) Kind() Kind { return c.kind }

func (c *Control) String() string { return c.id }

// Light returns the control's light, or nil when it has none.
func (c *Control) Light() *Light { return c.light }

// Light remembers what its owner was last asked to display and pushes it
// to the hardware through a LightSender.
type Light struct {
	requested Value
	sender    LightSender
}

// NewLight creates a light driven by sender.
func NewLight(sender LightSender) *Light {
	return &Light{sender: sender}
}

// Request records v as the value to show on the next Flush.
func (l *Light) Request(v Value) { l.requested = v }

// Requested returns the value recorded by the last Request.
func (l *Light) Requested() Value { return l.requested }

// Flush pushes the encoded requested value through the sender.
func (l *Light) Flush() error {
	return l.sender.Push(Encode(l.requested))
}
