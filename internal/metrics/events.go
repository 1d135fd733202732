package metrics

import (
	"context"
	"strconv"

	"github.com/qaz17899/game-hub/internal/domain"
	"github.com/qaz17899/game-hub/internal/event"
	"github.com/qaz17899/game-hub/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all event types
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.BallDropped,
		event.RoundSettled,
		event.RoundVoided,
		event.BalanceChanged,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.BallDropped:
		payload, err := event.DecodePayload[domain.BallDroppedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		BallsDropped.Inc()
		AmountWagered.Add(float64(payload.Wager))
		BallsInFlight.Inc()

	case event.RoundSettled:
		payload, err := event.DecodePayload[domain.RoundSettledPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		RoundsSettled.WithLabelValues(strconv.Itoa(payload.Bucket)).Inc()
		AmountPaidOut.Add(float64(payload.WinAmount))
		BallsInFlight.Dec()

	case event.RoundVoided:
		payload, err := event.DecodePayload[domain.RoundVoidedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		RoundsVoided.WithLabelValues(payload.Reason).Inc()
		AmountPaidOut.Add(float64(payload.Refunded))
		BallsInFlight.Dec()

	case event.BalanceChanged:
		payload, err := event.DecodePayload[domain.BalanceChangedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		WalletBalance.Set(float64(payload.Balance))
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
