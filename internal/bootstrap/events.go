package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/qaz17899/game-hub/internal/event"
	"github.com/qaz17899/game-hub/internal/logger"
)

// InitializeEventSystem creates the in-process event bus and wraps it in a
// resilient publisher. Round settlements publish through the resilient
// publisher so a misbehaving subscriber cannot lose a result: failed
// publishes retry in the background and land in the dead-letter file only
// after exhausting all attempts.
// Returns the event bus, resilient publisher, and any error encountered.
func InitializeEventSystem() (event.Bus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	if err := os.MkdirAll(filepath.Dir(EventDeadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	deadLetter, err := event.NewDeadLetterWriter(EventDeadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetter, err)
	}

	retryConfig := event.DefaultResilientConfig()
	resilientPublisher := event.NewResilientPublisher(eventBus, retryConfig, deadLetter)

	logger.Info(LogMsgEventSystemInitialized,
		"max_retries", retryConfig.MaxRetries,
		"retry_delay", retryConfig.RetryDelay,
		"deadletter_path", EventDeadLetterPath)

	return eventBus, resilientPublisher, nil
}
