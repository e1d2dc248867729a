// Package notify publishes freeze-state transitions to the intervention
// coordinator over MQTT. The coordinator (audio cueing, escalation to the
// emergency call agent) lives outside this process; this package is the
// boundary.
package notify

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/stridesense/gaitwatch/internal/monitoring"
)

// Event kinds carried on the intervention topic.
const (
	EventFreezeStarted = "freeze_started"
	EventFreezeEnded   = "freeze_ended"
)

// FreezeEvent is the wire payload for one transition.
type FreezeEvent struct {
	Event           string `json:"event"`
	EpisodeID       string `json:"episode_id"`
	TimestampMillis int64  `json:"timestamp_ms"`
	// DurationMillis is set on freeze_ended only.
	DurationMillis int64 `json:"duration_ms,omitempty"`
}

// Publisher sends freeze events to a broker topic.
type Publisher struct {
	client mqtt.Client
	topic  string
}

// NewPublisher connects to the broker. Connection failure is fatal at
// startup rather than silently dropping interventions later.
func NewPublisher(brokerURL, clientID, topic string) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", brokerURL, token.Error())
	}
	monitoring.Logf("notify: connected to MQTT broker at %s", brokerURL)

	return &Publisher{client: client, topic: topic}, nil
}

// Publish sends one event at QoS 1. Errors are returned, not fatal: a
// transient broker outage must not take down detection.
func (p *Publisher) Publish(ev FreezeEvent) error {
	payload, err := EncodeEvent(ev)
	if err != nil {
		return err
	}
	token := p.client.Publish(p.topic, 1, false, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to publish %s: %w", ev.Event, token.Error())
	}
	return nil
}

// Close disconnects from the broker, allowing in-flight messages to drain.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}

// EncodeEvent marshals an event after basic validity checks.
func EncodeEvent(ev FreezeEvent) ([]byte, error) {
	if ev.Event != EventFreezeStarted && ev.Event != EventFreezeEnded {
		return nil, fmt.Errorf("unknown event kind %q", ev.Event)
	}
	if ev.EpisodeID == "" {
		return nil, fmt.Errorf("event missing episode id")
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}
	return payload, nil
}
