package actions

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Publisher sends a payload to an MQTT topic without waiting for delivery.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// MQTTHandler publishes the action's arguments to the topic in Code, as a
// JSON array. An action without arguments publishes "[]".
type MQTTHandler struct {
	pub Publisher
}

func NewMQTTHandler(pub Publisher) *MQTTHandler {
	return &MQTTHandler{pub: pub}
}

func (h *MQTTHandler) IsSupported() bool {
	return h.pub != nil
}

func (h *MQTTHandler) Execute(code string, args []float64) (string, error) {
	topic := strings.TrimSpace(code)
	if err := h.Validate(topic); err != nil {
		return "", err
	}
	if args == nil {
		args = []float64{}
	}
	payload, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("encode arguments: %w", err)
	}
	if err := h.pub.Publish(topic, payload); err != nil {
		return "", fmt.Errorf("publish %s: %w", topic, err)
	}
	return "", nil
}

func (h *MQTTHandler) Validate(code string) error {
	topic := strings.TrimSpace(code)
	if topic == "" {
		return fmt.Errorf("empty topic")
	}
	if strings.ContainsAny(topic, "#+") {
		return fmt.Errorf("topic %q contains wildcards", topic)
	}
	return nil
}
