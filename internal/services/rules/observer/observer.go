// Package observer fans rules events out to in-process subscribers over a
// watermill GoChannel.
package observer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
)

// Topic carries every event of every game.
const Topic = "rules.events"

const (
	metaGameID    = "game_id"
	metaEventType = "event_type"
	metaPlayerID  = "player_id"
)

// ErrHandlerRequired indicates a subscription without a handler.
var ErrHandlerRequired = errors.New("handler is required")

// Delivery is one event as a subscriber receives it. Payload stays encoded.
type Delivery struct {
	GameID     string          `json:"game_id"`
	Type       event.Type      `json:"type"`
	PlayerID   string          `json:"player_id,omitempty"`
	EntityType string          `json:"entity_type,omitempty"`
	EntityID   string          `json:"entity_id,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// Handler processes one delivery.
type Handler func(ctx context.Context, d Delivery) error

// Bus publishes engine events and delivers them to subscribers.
type Bus struct {
	channel *gochannel.GoChannel
	logger  *slog.Logger
}

// New creates an in-memory bus. buffer sizes each subscriber's channel.
// Publish waits for every subscriber to handle a message before sending the
// next one, so subscribers see events in order.
func New(buffer int64, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		channel: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: buffer, BlockPublishUntilSubscriberAck: true},
			watermill.NewStdLogger(false, false),
		),
		logger: logger,
	}
}

// Publish sends events of one processed action in order.
func (b *Bus) Publish(_ context.Context, gameID string, events []event.Event) error {
	msgs := make([]*message.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(struct {
			GameID string `json:"game_id"`
			event.Event
		}{GameID: gameID, Event: evt})
		if err != nil {
			return fmt.Errorf("encode %s: %w", evt.Type, err)
		}
		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.Metadata.Set(metaGameID, gameID)
		msg.Metadata.Set(metaEventType, string(evt.Type))
		msg.Metadata.Set(metaPlayerID, evt.PlayerID)
		msgs = append(msgs, msg)
	}
	return b.channel.Publish(Topic, msgs...)
}

// Subscribe delivers events until ctx is done or the bus closes. Events whose
// type is not in types are skipped; no types means all. Handler errors are
// logged and the event is not redelivered.
func (b *Bus) Subscribe(ctx context.Context, handler Handler, types ...event.Type) error {
	if handler == nil {
		return ErrHandlerRequired
	}
	messages, err := b.channel.Subscribe(ctx, Topic)
	if err != nil {
		return err
	}
	want := make(map[event.Type]bool, len(types))
	for _, t := range types {
		want[t] = true
	}

	go func() {
		for msg := range messages {
			if len(want) > 0 && !want[event.Type(msg.Metadata.Get(metaEventType))] {
				msg.Ack()
				continue
			}
			var d Delivery
			if err := json.Unmarshal(msg.Payload, &d); err != nil {
				b.logger.Error("drop undecodable event", "msg_id", msg.UUID, "error", err)
				msg.Ack()
				continue
			}
			if err := handler(ctx, d); err != nil {
				// A nack would make the channel redeliver forever.
				b.logger.Error("event handler failed",
					"game_id", d.GameID, "event_type", d.Type, "msg_id", msg.UUID, "error", err)
			}
			msg.Ack()
		}
		b.logger.Debug("subscription ended", "topic", Topic)
	}()
	return nil
}

// Close stops every subscription.
func (b *Bus) Close() error {
	return b.channel.Close()
}
