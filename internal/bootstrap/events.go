package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/interverse/verse-go/internal/config"
	"github.com/interverse/verse-go/internal/event"
	"github.com/interverse/verse-go/internal/logger"
)

// InitializeEventSystem creates the in-memory bus and wraps it in the
// resilient publisher that retries failed publishes and dead-letters the
// rest. Subsystems subscribe on the returned bus; publishers that need
// delivery guarantees publish through the publisher.
func InitializeEventSystem(cfg *config.Config) (*event.MemoryBus, *event.ResilientPublisher, error) {
	bus := event.NewMemoryBus()

	deadLetterPath := cfg.DeadLetterPath
	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	publisher := event.NewResilientPublisher(bus, EventDefaultMaxRetries, EventDefaultRetryDelay, deadLetterPath)

	logger.Info(LogMsgEventSystemInitialized,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", deadLetterPath)

	return bus, publisher, nil
}
