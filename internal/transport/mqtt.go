package transport

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// MQTT publishes command payloads to a broker topic for setups where
// the bulb sits behind an MQTT bridge instead of being reachable
// directly.
type MQTT struct {
	client mqtt.Client
	topic  string
	qos    byte
}

// NewMQTT connects to the broker and returns an MQTT transport.
func NewMQTT(broker, clientID, topic string, qos byte, timeout time.Duration) (*MQTT, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(timeout).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if t := client.Connect(); t.Wait() && t.Error() != nil {
		return nil, fmt.Errorf("MQTT connection error: %w", t.Error())
	}

	log.Info().Str("broker", broker).Str("topic", topic).Msg("Connected to MQTT broker")

	return &MQTT{client: client, topic: topic, qos: qos}, nil
}

// Send publishes the payload to the command topic.
func (m *MQTT) Send(payload string) error {
	if t := m.client.Publish(m.topic, m.qos, false, payload); t.Wait() && t.Error() != nil {
		return fmt.Errorf("MQTT publish failed: %w", t.Error())
	}
	return nil
}

// Ready reports whether the broker connection is up.
func (m *MQTT) Ready() bool {
	return m.client.IsConnected()
}

// Close disconnects from the broker.
func (m *MQTT) Close() error {
	m.client.Disconnect(250)
	return nil
}
