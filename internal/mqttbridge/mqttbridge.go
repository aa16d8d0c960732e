package mqttbridge

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/PixPMusic/gopher-surface/internal/logger"
)

// ErrNotConnected is returned by Publish before Start succeeds.
var ErrNotConnected = errors.New("mqtt: not connected")

// Bridge carries application state between the broker and the
// controller. State arrives on <prefix>/state/<key>; local changes leave
// on <prefix>/set/<key>.
//
// The client and the bridge context are fixed in New, so Publish may run on
// the controller goroutine while Start is still waiting for the broker.
type Bridge struct {
	ctx    context.Context
	cancel context.CancelFunc
	log    *logger.Log
	cfg    Conf
	client mqtt.Client
	dst    Updater
	post   PostFunc
}

// New creates a bridge writing state into dst through post. Nothing
// touches the network until Start.
func New(log *logger.Log, cfg Conf, dst Updater, post PostFunc) *Bridge {
	b := &Bridge{
		log:  log.Module("mqtt"),
		cfg:  cfg,
		dst:  dst,
		post: post,
	}
	b.ctx, b.cancel = context.WithCancel(context.Background())

	if b.log.GetLevel() == "debug" {
		mqtt.ERROR = stdlog.New(os.Stdout, "[ERROR] ", 0)
		mqtt.CRITICAL = stdlog.New(os.Stdout, "[CRIT] ", 0)
		mqtt.WARN = stdlog.New(os.Stdout, "[WARN]  ", 0)
	}

	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("%s://%s:%s", cfg.Schema, cfg.Host, cfg.Port)).
		SetUsername(cfg.User).
		SetPassword(cfg.Password).
		SetClientID(cfg.ClientID).
		SetDefaultPublishHandler(b.messageHandler).
		SetOnConnectHandler(b.connectHandler).
		SetConnectionLostHandler(b.connectLostHandler).
		SetOrderMatters(true).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetMaxReconnectInterval(30 * time.Second).
		SetKeepAlive(30 * time.Second)

	b.client = mqtt.NewClient(opts)
	return b
}

// Start connects and subscribes to the state topics. It blocks until the
// first connection attempt finishes or ctx ends. The client keeps retrying
// in the background after ctx ends, until Stop.
func (b *Bridge) Start(ctx context.Context) error {
	token := b.client.Connect()
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("mqtt: connect: %w", err)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	b.log.Infof("Status: %v", b.client.IsConnected())
	return nil
}

// Stop disconnects from the broker, abandoning a pending connect.
func (b *Bridge) Stop() error {
	b.cancel()
	b.client.Disconnect(500)
	return nil
}

// Publish sends payload to topic without waiting for delivery. Delivery
// errors are logged. While a connect is pending the message is queued by
// the client.
func (b *Bridge) Publish(topic string, payload []byte) error {
	if !b.client.IsConnected() {
		return ErrNotConnected
	}
	token := b.client.Publish(topic, b.cfg.QoS, false, payload)
	go func() {
		select {
		case <-b.ctx.Done():
		case <-token.Done():
			if err := token.Error(); err != nil {
				b.log.WithError(err).Errorf("error publish topic %s", topic)
			}
		}
	}()
	return nil
}

// PublishSet reports a local change of key. It has the shape of a
// model.SetFunc.
func (b *Bridge) PublishSet(key string, value interface{}) {
	payload, err := EncodeValue(value)
	if err != nil {
		b.log.WithError(err).Errorf("encode %s", key)
		return
	}
	if err := b.Publish(b.SetTopic(key), payload); err != nil {
		b.log.WithError(err).Debugf("dropped set of %s", key)
	}
}

// StateTopic is the subscription filter for application state.
func (b *Bridge) StateTopic() string { return b.topic("state", "#") }

// SetTopic is where local changes of key are published.
func (b *Bridge) SetTopic(key string) string { return b.topic("set", key) }

func (b *Bridge) topic(kind, key string) string {
	prefix := strings.Trim(b.cfg.Prefix, "/")
	if prefix == "" {
		return kind + "/" + key
	}
	return prefix + "/" + kind + "/" + key
}

// stateKey extracts the key from a state topic.
func (b *Bridge) stateKey(topic string) (string, bool) {
	base := strings.TrimSuffix(b.StateTopic(), "#")
	if !strings.HasPrefix(topic, base) || len(topic) == len(base) {
		return "", false
	}
	return topic[len(base):], true
}

func (b *Bridge) connectHandler(c mqtt.Client) {
	b.log.Info("client connected to server")

	filter := b.StateTopic()
	token := c.Subscribe(filter, b.cfg.QoS, b.messageHandler)
	go func() {
		select {
		case <-b.ctx.Done():
			return
		case <-token.Done():
			if err := token.Error(); err != nil {
				b.log.WithError(err).Errorf("topic %s subscription error", filter)
				return
			}
		}
		b.log.Debugf("topic %s subscribed", filter)
	}()
}

func (b *Bridge) connectLostHandler(_ mqtt.Client, err error) {
	b.log.WithError(err).Error("server connect lost")
}

func (b *Bridge) messageHandler(_ mqtt.Client, msg mqtt.Message) {
	key, ok := b.stateKey(msg.Topic())
	if !ok {
		b.log.Debugf("ignoring message on %s", msg.Topic())
		return
	}
	u, err := ParseUpdate(key, msg.Payload())
	if err != nil {
		b.log.WithError(err).Warn("message could not be parsed")
		return
	}
	if !b.post(func() { u.Apply(b.dst) }) {
		b.log.Debugf("loop stopped, dropped update of %s", key)
	}
}
