package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/PixPMusic/gopher-surface/internal/actions"
	"github.com/PixPMusic/gopher-surface/internal/mqttbridge"
	"github.com/PixPMusic/gopher-surface/internal/surface"
)

const (
	appName         = "gopher-surface"
	defaultFileName = "config.toml"

	DefaultTickMillis  = 10
	DefaultSensitivity = 2.5
	DefaultMQTTPrefix  = "gopher-surface"
)

// LoggerConfig selects the log level.
type LoggerConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// MIDIConfig names the ports the controller uses.
type MIDIConfig struct {
	InPort  string `toml:"in_port" yaml:"in_port"`
	OutPort string `toml:"out_port" yaml:"out_port"`
	// ThruPort receives the pad notes. Empty disables note forwarding.
	ThruPort   string `toml:"thru_port" yaml:"thru_port"`
	Device     string `toml:"device" yaml:"device"`   // atom or generic
	Channel    uint8  `toml:"channel" yaml:"channel"` // 0-15
	TickMillis int    `toml:"tick_millis" yaml:"tick_millis"`
}

// SurfaceConfig tunes the control surface.
type SurfaceConfig struct {
	EncoderSensitivity float64 `toml:"encoder_sensitivity" yaml:"encoder_sensitivity"`
}

// MQTTConfig describes the broker the application state arrives from.
type MQTTConfig struct {
	Enabled  bool   `toml:"enabled" yaml:"enabled"`
	ClientID string `toml:"client_id" yaml:"client_id"`
	Schema   string `toml:"schema" yaml:"schema"`
	Host     string `toml:"host" yaml:"host"`
	Port     string `toml:"port" yaml:"port"`
	User     string `toml:"user" yaml:"user"`
	Password string `toml:"password" yaml:"password"`
	Prefix   string `toml:"prefix" yaml:"prefix"`
	QoS      byte   `toml:"qos" yaml:"qos"`
}

// Config holds application configuration
type Config struct {
	// InstanceID identifies this installation. Generated on first load.
	InstanceID string           `toml:"instance_id" yaml:"instance_id"`
	Logger     LoggerConfig     `toml:"logger" yaml:"logger"`
	MIDI       MIDIConfig       `toml:"midi" yaml:"midi"`
	Surface    SurfaceConfig    `toml:"surface" yaml:"surface"`
	MQTT       MQTTConfig       `toml:"mqtt" yaml:"mqtt"`
	Actions    []actions.Action `toml:"actions" yaml:"actions"`

	path string
}

// Default returns a configuration that works without a file.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.InstanceID == "" {
		c.InstanceID = uuid.New().String()
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.MIDI.Device == "" {
		c.MIDI.Device = "atom"
	}
	if c.MIDI.TickMillis <= 0 {
		c.MIDI.TickMillis = DefaultTickMillis
	}
	if c.Surface.EncoderSensitivity == 0 {
		c.Surface.EncoderSensitivity = DefaultSensitivity
	}
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = appName + "-" + c.InstanceID
	}
	if c.MQTT.Schema == "" {
		c.MQTT.Schema = "tcp"
	}
	if c.MQTT.Host == "" {
		c.MQTT.Host = "localhost"
	}
	if c.MQTT.Port == "" {
		c.MQTT.Port = "1883"
	}
	if c.MQTT.Prefix == "" {
		c.MQTT.Prefix = DefaultMQTTPrefix
	}
	for i := range c.Actions {
		if c.Actions[i].ID == "" {
			c.Actions[i].ID = uuid.New().String()
		}
	}
}

// Validate reports settings the controller cannot run with.
func (c *Config) Validate() error {
	if c.MIDI.Channel > surface.MaxLightChannel {
		return fmt.Errorf("midi.channel %d out of range: RGB lights span four channels, so the highest usable channel is %d",
			c.MIDI.Channel, surface.MaxLightChannel)
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt.qos %d out of range 0-2", c.MQTT.QoS)
	}
	return nil
}

// configDir returns the platform-appropriate config directory
func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, appName), nil
}

// DefaultPath returns the full path of the default config file
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultFileName), nil
}

// Load reads the config at path, returning defaults if it does not exist.
// Files ending in .yaml or .yml are YAML, everything else TOML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		c := Default()
		c.path = path
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var c Config
	if isYAML(path) {
		err = yaml.Unmarshal(data, &c)
	} else {
		_, err = toml.Decode(string(data), &c)
	}
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	c.path = path
	return &c, nil
}

// Save writes the config back to the file it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config: no path to save to")
	}
	return c.SaveAs(c.path)
}

// SaveAs writes the config to path in the format its extension selects.
func (c *Config) SaveAs(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	var buf bytes.Buffer
	if isYAML(path) {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("config: encode: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("config: encode: %w", err)
		}
	} else if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	c.path = path
	return nil
}

// Path is the file the config was loaded from or last saved to.
func (c *Config) Path() string { return c.path }

// TickInterval is the light refresh period.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.MIDI.TickMillis) * time.Millisecond
}

// MQTTConf converts the broker section for the bridge.
func (c *Config) MQTTConf() mqttbridge.Conf {
	return mqttbridge.Conf{
		ClientID: c.MQTT.ClientID,
		Schema:   c.MQTT.Schema,
		Host:     c.MQTT.Host,
		Port:     c.MQTT.Port,
		User:     c.MQTT.User,
		Password: c.MQTT.Password,
		Prefix:   c.MQTT.Prefix,
		QoS:      c.MQTT.QoS,
	}
}

// ActionStore returns an ActionStore populated with the config's actions
func (c *Config) ActionStore() *actions.ActionStore {
	return actions.NewActionStore(c.Actions...)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
