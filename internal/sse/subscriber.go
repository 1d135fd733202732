package sse

import (
	"context"

	"github.com/qaz17899/game-hub/internal/domain"
	"github.com/qaz17899/game-hub/internal/event"
	"github.com/qaz17899/game-hub/internal/logger"
)

// Subscriber bridges the internal event bus to the SSE hub. The broadcast
// event types on the wire match the bus event type strings, so clients can
// filter with the same names.
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all outbound event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.BallDropped, forward[domain.BallDroppedPayload](s.hub))
	s.bus.Subscribe(event.RoundSettled, forward[domain.RoundSettledPayload](s.hub))
	s.bus.Subscribe(event.RoundVoided, forward[domain.RoundVoidedPayload](s.hub))
	s.bus.Subscribe(event.BalanceChanged, forward[domain.BalanceChangedPayload](s.hub))

	logger.Info(LogMsgSubscribed,
		"types", []string{
			domain.EventTypeBallDropped,
			domain.EventTypeRoundSettled,
			domain.EventTypeRoundVoided,
			domain.EventTypeBalanceChanged,
		})
}

// forward builds a bus handler that decodes the typed payload and rebroadcasts
// it to SSE clients under the same event type
func forward[T any](hub *Hub) event.Handler {
	return func(ctx context.Context, evt event.Event) error {
		payload, err := event.DecodePayload[T](evt.Payload)
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgDecodeError, "event_type", evt.Type, "error", err)
			// A malformed payload should not fail the publish for other subscribers
			return nil
		}

		hub.Broadcast(string(evt.Type), payload)

		logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", evt.Type)
		return nil
	}
}
