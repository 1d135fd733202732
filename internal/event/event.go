package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qaz17899/game-hub/internal/domain"
)

// Type represents the type of an event
type Type string

// Event types published on the bus. The string values match the domain
// event type constants so subscribers can filter on either form.
const (
	BallDropped    = Type(domain.EventTypeBallDropped)
	RoundSettled   = Type(domain.EventTypeRoundSettled)
	RoundVoided    = Type(domain.EventTypeRoundVoided)
	BalanceChanged = Type(domain.EventTypeBalanceChanged)
)

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// Type-safe event constructors

// NewBallDroppedEvent creates a ball dropped event with a typed payload
func NewBallDroppedEvent(ballID uuid.UUID, wager int64, spawnX float64, balance int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BallDropped,
		Payload: domain.BallDroppedPayload{
			BallID:    ballID.String(),
			Wager:     wager,
			SpawnX:    spawnX,
			Balance:   balance,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewRoundSettledEvent creates a round settled event from a finished round
func NewRoundSettledEvent(result domain.RoundResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RoundSettled,
		Payload: domain.RoundSettledPayload{
			BallID:     result.BallID.String(),
			Wager:      result.Wager,
			Bucket:     result.Bucket,
			Multiplier: result.Multiplier,
			WinAmount:  result.WinAmount,
			Profit:     result.Profit,
			Balance:    result.Balance,
			Timestamp:  result.SettledAt.Unix(),
		},
		Metadata: nil,
	}
}

// NewRoundVoidedEvent creates a round voided event for a refunded round
func NewRoundVoidedEvent(ballID uuid.UUID, wager, balance int64, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RoundVoided,
		Payload: domain.RoundVoidedPayload{
			BallID:    ballID.String(),
			Wager:     wager,
			Refunded:  wager,
			Balance:   balance,
			Reason:    reason,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewBalanceChangedEvent creates a balance changed event.
// Delta is the signed change that produced the new balance.
func NewBalanceChangedEvent(balance, delta int64, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BalanceChanged,
		Payload: domain.BalanceChangedPayload{
			Balance:   balance,
			Delta:     delta,
			Reason:    reason,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers execute synchronously in subscription order; the round controller
// relies on this so a settlement is fully observed before the next one.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
