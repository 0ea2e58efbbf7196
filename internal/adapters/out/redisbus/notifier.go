// Package redisbus implements the order event notifier on Redis Pub/Sub.
// Every status change is published to a per-restaurant channel so board
// displays and customer apps of one tenant never see another tenant's
// traffic. Delivery is at-most-once: a subscriber that reconnects missed
// whatever was published while it was away and should re-read the board.
package redisbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// channelFor returns the Pub/Sub channel carrying one restaurant's events.
func channelFor(restaurantID kernel.UUID) string {
	return "orders:" + restaurantID.String()
}

// eventEnvelope is the wire form of an order event.
type eventEnvelope struct {
	OrderID      string    `json:"orderId"`
	RestaurantID string    `json:"restaurantId"`
	OrderNumber  string    `json:"orderNumber"`
	FromStatus   string    `json:"fromStatus"`
	ToStatus     string    `json:"toStatus"`
	Reason       string    `json:"reason,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

func envelopeFromEvent(event ports.OrderEvent) eventEnvelope {
	return eventEnvelope{
		OrderID:      event.OrderID.String(),
		RestaurantID: event.RestaurantID.String(),
		OrderNumber:  event.OrderNumber,
		FromStatus:   event.FromStatus,
		ToStatus:     event.ToStatus,
		Reason:       event.Reason,
		OccurredAt:   event.OccurredAt.UTC(),
	}
}

func eventFromPayload(payload string) (ports.OrderEvent, error) {
	var envelope eventEnvelope
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		return ports.OrderEvent{}, err
	}

	orderID, err := kernel.UUIDFromString(envelope.OrderID)
	if err != nil {
		return ports.OrderEvent{}, err
	}
	restaurantID, err := kernel.UUIDFromString(envelope.RestaurantID)
	if err != nil {
		return ports.OrderEvent{}, err
	}

	return ports.OrderEvent{
		OrderID:      orderID,
		RestaurantID: restaurantID,
		OrderNumber:  envelope.OrderNumber,
		FromStatus:   envelope.FromStatus,
		ToStatus:     envelope.ToStatus,
		Reason:       envelope.Reason,
		OccurredAt:   envelope.OccurredAt,
	}, nil
}

// RedisNotifier publishes and subscribes to order lifecycle events via
// Redis Pub/Sub.
//
// Example:
//
//	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
//	notifier := NewRedisNotifier(client, logger)
//
//	if err := notifier.Publish(ctx, event); err != nil {
//	    log.Printf("event publish failed: %v", err)
//	}
type RedisNotifier struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisNotifier creates a notifier backed by the given Redis client.
func NewRedisNotifier(client *redis.Client, logger *slog.Logger) *RedisNotifier {
	return &RedisNotifier{
		client: client,
		logger: logger.With("component", "redis_notifier"),
	}
}

// Publish sends the event to the owning restaurant's channel. Publishing to
// a channel with no subscribers succeeds; events are fire-and-forget.
func (n *RedisNotifier) Publish(ctx context.Context, event ports.OrderEvent) error {
	payload, err := json.Marshal(envelopeFromEvent(event))
	if err != nil {
		return err
	}

	if err := n.client.Publish(ctx, channelFor(event.RestaurantID), payload).Err(); err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}

	n.logger.DebugContext(ctx, "published order event",
		"order_id", event.OrderID.String(),
		"to_status", event.ToStatus)
	return nil
}

// Subscribe returns a channel of the restaurant's order events. The channel
// closes when ctx is cancelled or the Redis connection drops. Malformed
// payloads are logged and skipped so one bad message never wedges a board.
func (n *RedisNotifier) Subscribe(
	ctx context.Context,
	restaurantID kernel.UUID,
) (<-chan ports.OrderEvent, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	pubsub := n.client.Subscribe(ctx, channelFor(restaurantID))

	// Confirm the subscription before handing the channel out.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe to order events: %w", err)
	}

	events := make(chan ports.OrderEvent)
	go n.pump(ctx, pubsub, events)

	return events, nil
}

func (n *RedisNotifier) pump(ctx context.Context, pubsub *redis.PubSub, events chan<- ports.OrderEvent) {
	defer close(events)
	defer func() { _ = pubsub.Close() }()

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}

			event, err := eventFromPayload(msg.Payload)
			if err != nil {
				n.logger.WarnContext(ctx, "dropping malformed order event", "error", err)
				continue
			}

			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}
