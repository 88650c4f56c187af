package bootstrap

import "time"

// DirPermission is the standard permission for creating directories
const DirPermission = 0755

// Event system defaults
const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the default base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second
)

// Log messages
const (
	LogMsgEventSystemInitialized    = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir = "failed to create dead-letter directory"
	LogMsgRulesLoaded               = "Conversion rules loaded"
	LogMsgRulesSkipped              = "No conversion rules file found, using built-in rules"
	LogMsgMetricsServerStarted      = "Metrics server started"
	LogMsgMetricsServerStopped      = "Metrics server stopped"
	LogMsgShuttingDown              = "Shutting down..."
	LogMsgShutdownComplete          = "Shutdown complete"
	LogMsgMetricsShutdownFailed     = "Metrics server shutdown failed"
	LogMsgPublisherFlushed          = "Event publisher drained"
)
