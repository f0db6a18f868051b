package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"energy_gauge/internal/logger"
	"energy_gauge/internal/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	displayQoS            = byte(0)
	displayRetained       = false
	defaultPublishTimeout = 2 * time.Second
	disconnectQuiesceMs   = 250
)

// ErrPublishTimeout is returned when the broker does not ack in time.
var ErrPublishTimeout = errors.New("mqtt publish timed out")

// MQTTConfig describes the broker connection.
type MQTTConfig struct {
	Broker         string
	Topic          string
	ClientID       string
	ConnectTimeout time.Duration
	PublishTimeout time.Duration
}

// MQTT mirrors rendered displays to a broker topic as JSON.
type MQTT struct {
	client  mqtt.Client
	topic   string
	timeout time.Duration
	log     *logger.Logger
}

// NewMQTT wraps an already connected client.
func NewMQTT(client mqtt.Client, topic string, timeout time.Duration, log *logger.Logger) *MQTT {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &MQTT{client: client, topic: topic, timeout: timeout, log: log}
}

// Connect dials the broker and returns a ready publisher.
func Connect(cfg MQTTConfig, log *logger.Logger) (*MQTT, error) {
	if cfg.Broker == "" || cfg.Topic == "" {
		return nil, errors.New("mqtt: broker and topic are required")
	}
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectWait(cfg.ConnectTimeout)) {
		return nil, fmt.Errorf("mqtt connect %s: timed out", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.Broker, err)
	}
	if log != nil {
		log.Infow("mqtt_connected", "broker", cfg.Broker, "topic", cfg.Topic)
	}
	return NewMQTT(client, cfg.Topic, cfg.PublishTimeout, log), nil
}

func connectWait(d time.Duration) time.Duration {
	if d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Publish sends d at QoS 0, not retained.
func (p *MQTT) Publish(ctx context.Context, d models.Display) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal display: %w", err)
	}

	token := p.client.Publish(p.topic, displayQoS, displayRetained, payload)

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("publish %s: %w", p.topic, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrPublishTimeout
	}
}

// Close disconnects from the broker.
func (p *MQTT) Close() {
	p.client.Disconnect(disconnectQuiesceMs)
	p.log.Infow("mqtt_disconnected", "topic", p.topic)
}
