package stream

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	publishQos   = 0
	subscribeQos = 1
	tokenTimeout = 5 * time.Second
)

// Bus connects a Streamer to an MQTT broker: frames go out on the writes
// topic and requests come in on the start topic.
type Bus struct {
	client      mqtt.Client
	writesTopic string
	startTopic  string
	logger      *slog.Logger
}

// NewBus creates a bus on a connected or connecting client.
func NewBus(client mqtt.Client, writesTopic, startTopic string, logger *slog.Logger) *Bus {
	return &Bus{
		client:      client,
		writesTopic: writesTopic,
		startTopic:  startTopic,
		logger:      logger,
	}
}

// Publish implements Publisher.
func (b *Bus) Publish(payload []byte) error {
	if b.writesTopic == "" {
		return nil
	}
	token := b.client.Publish(b.writesTopic, publishQos, false, payload)
	if !token.WaitTimeout(tokenTimeout) {
		return fmt.Errorf("publish to %s timed out", b.writesTopic)
	}
	return token.Error()
}

// Subscribe routes start topic messages into s.
func (b *Bus) Subscribe(ctx context.Context, s *Streamer) error {
	if b.startTopic == "" {
		return nil
	}
	handler := func(_ mqtt.Client, msg mqtt.Message) {
		b.handleMessage(ctx, s, msg)
	}
	if token := b.client.Subscribe(b.startTopic, subscribeQos, handler); token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", b.startTopic, token.Error())
	}
	b.logger.Info("subscribed", "topic", b.startTopic)
	return nil
}

func (b *Bus) handleMessage(ctx context.Context, s *Streamer, msg mqtt.Message) {
	b.logger.Debug("received trigger", "topic", msg.Topic(), "payload", string(msg.Payload()))
	if err := s.HandleTrigger(ctx, msg.Payload()); err != nil {
		b.logger.Warn("rejected trigger", "topic", msg.Topic(), "error", err)
	}
}
