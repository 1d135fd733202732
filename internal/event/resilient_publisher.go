package event

import (
	"context"
	"sync"
	"time"

	"github.com/qaz17899/game-hub/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultResilientConfig returns the standard retry configuration
func DefaultResilientConfig() ResilientConfig {
	return ResilientConfig{
		MaxRetries: RetryMaxAttempts,
		RetryDelay: RetryInitialDelaySeconds * time.Second,
	}
}

// ResilientPublisher wraps an Event Bus to add retry logic and dead letter queuing.
// A round result must reach the display collaborators even if a subscriber
// transiently fails, so failed publishes retry in the background and only
// land in the dead-letter file after exhausting all attempts.
type ResilientPublisher struct {
	inner      Bus
	config     ResilientConfig
	deadLetter *DeadLetterWriter
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a new ResilientPublisher.
// deadLetter may be nil; exhausted events are then only logged.
func NewResilientPublisher(inner Bus, config ResilientConfig, deadLetter *DeadLetterWriter) *ResilientPublisher {
	return &ResilientPublisher{
		inner:      inner,
		config:     config,
		deadLetter: deadLetter,
	}
}

// Publish attempts to publish an event. If it fails, it initiates a background
// retry loop and returns nil immediately: the caller is decoupled from the
// retry mechanism and a settlement never blocks on a misbehaving subscriber.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	logger.Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	p.wg.Add(1)
	go p.retryLoop(event)

	return nil
}

func (p *ResilientPublisher) retryLoop(event Event) {
	defer p.wg.Done()

	// Detached context: the original request context may already be cancelled
	ctx := context.Background()

	var lastErr error
	for i := 1; i <= p.config.MaxRetries; i++ {
		time.Sleep(p.config.RetryDelay * time.Duration(i)) // linear backoff

		lastErr = p.inner.Publish(ctx, event)
		if lastErr == nil {
			logger.Info(LogMsgEventRetrySucceeded,
				"event_type", event.Type,
				"attempt", i)
			return
		}

		logger.Warn(LogMsgEventRetryFailed,
			"event_type", event.Type,
			"attempt", i,
			"error", lastErr)
	}

	if p.deadLetter != nil {
		if err := p.deadLetter.Write(event, p.config.MaxRetries, lastErr); err != nil {
			logger.Error(LogMsgDeadLetterOpenError, "error", err)
		}
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Shutdown waits for in-flight retry loops to finish, bounded by ctx
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
