package config

// Environment variable names
const (
	EnvNodeURL               = "NODE_URL"
	EnvGameID                = "GAME_ID"
	EnvAPIKey                = "API_KEY"
	EnvReconnectDelaySeconds = "RECONNECT_DELAY_SECONDS"
	EnvRequestTimeoutSeconds = "REQUEST_TIMEOUT_SECONDS"
	EnvLogLevel              = "LOG_LEVEL"
	EnvLogFormat             = "LOG_FORMAT"
	EnvServiceName           = "SERVICE_NAME"
	EnvVersion               = "VERSION"
	EnvEnvironment           = "ENVIRONMENT"
	EnvMetricsAddr           = "METRICS_ADDR"
	EnvConversionRulesPath   = "CONVERSION_RULES_PATH"
	EnvDeadLetterPath        = "EVENT_DEADLETTER_PATH"
)

// Default values
const (
	DefaultReconnectDelaySeconds = 5
	DefaultRequestTimeoutSeconds = 30
	DefaultLogLevel              = "info"
	DefaultLogFormat             = "text"
	DefaultServiceName           = "verse-go"
	DefaultVersion               = "dev"
	DefaultEnvironment           = "dev"
	DefaultMetricsAddr           = ""
	DefaultConversionRulesPath   = "configs/conversion_rules.json"
	DefaultDeadLetterPath        = "data/deadletter/events.jsonl"
)
