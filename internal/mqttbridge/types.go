package mqttbridge

import "github.com/PixPMusic/gopher-surface/internal/surface"

// Conf describes the broker connection and topic layout.
type Conf struct {
	ClientID string // ClientID - unique client name on the broker.
	Schema   string // Schema - connection type (tcp, ssl, ws).
	Host     string // Host - broker address.
	Port     string // Port - broker port.
	User     string // User - login for the broker.
	Password string // Password - password for the broker.
	Prefix   string // Prefix - root of the state and set topics.
	QoS      byte   // QoS - quality of service for subscriptions and publishes.
}

// Updater receives application state reported over MQTT.
type Updater interface {
	UpdateBool(key string, v bool)
	UpdateFloat(key string, v float64)
	UpdateColor(key string, c surface.Color)
	ClearColor(key string)
}

// PostFunc hands fn to the goroutine that owns the Updater. It reports
// false when that goroutine is gone.
type PostFunc func(fn func()) bool
