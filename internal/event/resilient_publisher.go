package event

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/interverse/verse-go/internal/logger"
)

// DeadLetterEntry represents an event that failed to publish after all retries
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// ResilientPublisher wraps a Bus to add retry logic and dead letter queuing.
// Publish returns nil to the caller as soon as the event is accepted; failed
// publishes retry in the background with exponential backoff and land in the
// dead-letter file when exhausted.
type ResilientPublisher struct {
	inner          Bus
	maxRetries     int
	retryDelay     time.Duration
	deadLetterPath string

	mu sync.Mutex // Protects dead-letter file writes
	wg sync.WaitGroup
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) *ResilientPublisher {
	if maxRetries <= 0 {
		maxRetries = RetryMaxAttempts
	}
	if retryDelay <= 0 {
		retryDelay = RetryInitialDelay
	}
	return &ResilientPublisher{
		inner:          inner,
		maxRetries:     maxRetries,
		retryDelay:     retryDelay,
		deadLetterPath: deadLetterPath,
	}
}

// Publish attempts to publish an event, falling back to background retries.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	logger.Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err,
		"retries", p.maxRetries)

	// The request context may be cancelled before retries finish, so the
	// retry loop runs detached.
	p.wg.Add(1)
	go p.retryLoop(event, err)

	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Wait blocks until all in-flight retry loops have finished. Test helper and
// shutdown hook.
func (p *ResilientPublisher) Wait() {
	p.wg.Wait()
}

func (p *ResilientPublisher) retryLoop(event Event, lastErr error) {
	defer p.wg.Done()
	ctx := context.Background()

	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		time.Sleep(CalculateRetryDelay(p.retryDelay, attempt))

		err := p.inner.Publish(ctx, event)
		if err == nil {
			logger.Info(LogMsgEventRetrySucceeded,
				"event_type", event.Type,
				"attempt", attempt)
			return
		}

		lastErr = err
		logger.Warn(LogMsgEventRetryFailed,
			"event_type", event.Type,
			"attempt", attempt,
			"error", err)
	}

	logger.Warn(LogMsgEventRetryExhausted, "event_type", event.Type)
	p.writeToDeadLetter(event, lastErr)
}

func (p *ResilientPublisher) writeToDeadLetter(event Event, lastErr error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.OpenFile(p.deadLetterPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		logger.Error(LogMsgDeadLetterFailed, "error", err, "path", p.deadLetterPath)
		return
	}
	defer f.Close()

	entry := DeadLetterEntry{
		SchemaVersion: EventSchemaVersion,
		Timestamp:     time.Now(),
		Event:         event,
		Attempts:      p.maxRetries,
	}
	if lastErr != nil {
		entry.LastError = lastErr.Error()
	}

	if err := json.NewEncoder(f).Encode(entry); err != nil {
		logger.Error(LogMsgDeadLetterFailed, "error", err)
	}
}
