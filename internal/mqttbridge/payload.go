package mqttbridge

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PixPMusic/gopher-surface/internal/surface"
)

// UpdateKind tells which field of an Update is set.
type UpdateKind int

const (
	UpdateBool UpdateKind = iota
	UpdateNumber
	UpdateColor
	UpdateClearColor
)

// Update is one decoded state message.
type Update struct {
	Key    string
	Kind   UpdateKind
	Bool   bool
	Number float64
	Color  surface.Color
}

// colorPayload is a color with channels in [0, 1].
type colorPayload struct {
	R *float64 `json:"r"`
	G *float64 `json:"g"`
	B *float64 `json:"b"`
}

// ParseUpdate decodes a state payload: true/false, a number, a color as
// {"r":..,"g":..,"b":..} with channels in [0, 1] or "#rrggbb", or null to
// clear a color.
func ParseUpdate(key string, payload []byte) (Update, error) {
	u := Update{Key: key}

	var raw interface{}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return u, fmt.Errorf("payload for %s: %w", key, err)
	}

	switch v := raw.(type) {
	case nil:
		u.Kind = UpdateClearColor
	case bool:
		u.Kind, u.Bool = UpdateBool, v
	case float64:
		u.Kind, u.Number = UpdateNumber, v
	case string:
		c, err := parseHexColor(v)
		if err != nil {
			return u, fmt.Errorf("payload for %s: %w", key, err)
		}
		u.Kind, u.Color = UpdateColor, c
	case map[string]interface{}:
		var cp colorPayload
		if err := json.Unmarshal(payload, &cp); err != nil {
			return u, fmt.Errorf("payload for %s: %w", key, err)
		}
		if cp.R == nil || cp.G == nil || cp.B == nil {
			return u, fmt.Errorf("payload for %s: color needs r, g and b", key)
		}
		u.Kind, u.Color = UpdateColor, surface.RGB(*cp.R, *cp.G, *cp.B)
	default:
		return u, fmt.Errorf("payload for %s: unsupported value %s", key, payload)
	}
	return u, nil
}

// Apply writes the update into dst.
func (u Update) Apply(dst Updater) {
	switch u.Kind {
	case UpdateBool:
		dst.UpdateBool(u.Key, u.Bool)
	case UpdateNumber:
		dst.UpdateFloat(u.Key, u.Number)
	case UpdateColor:
		dst.UpdateColor(u.Key, u.Color)
	case UpdateClearColor:
		dst.ClearColor(u.Key)
	}
}

func parseHexColor(s string) (surface.Color, error) {
	var r, g, b int
	if len(s) != 7 || !strings.HasPrefix(s, "#") {
		return surface.Color{}, fmt.Errorf("bad color %q", s)
	}
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return surface.Color{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return surface.RGB255(r, g, b), nil
}

// EncodeValue renders a locally set value as a set payload. Colors use
// the {"r","g","b"} form.
func EncodeValue(v interface{}) ([]byte, error) {
	if c, ok := v.(surface.Color); ok {
		c = c.Clamped()
		return json.Marshal(map[string]float64{
			"r": float64(c.R) / surface.MaxChannel,
			"g": float64(c.G) / surface.MaxChannel,
			"b": float64(c.B) / surface.MaxChannel,
		})
	}
	return json.Marshal(v)
}
