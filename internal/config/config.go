package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/interverse/verse-go/internal/domain"
)

// Config holds the application configuration
type Config struct {
	NodeURL string
	GameID  string
	APIKey  string

	ReconnectDelay time.Duration
	RequestTimeout time.Duration

	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string

	// MetricsAddr enables the Prometheus endpoint when non-empty.
	MetricsAddr string

	ConversionRulesPath string
	DeadLetterPath      string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		NodeURL:     getEnv(EnvNodeURL, ""),
		GameID:      getEnv(EnvGameID, ""),
		APIKey:      getEnv(EnvAPIKey, ""),
		LogLevel:    getEnv(EnvLogLevel, DefaultLogLevel),
		LogFormat:   getEnv(EnvLogFormat, DefaultLogFormat),
		ServiceName: getEnv(EnvServiceName, DefaultServiceName),
		Version:     getEnv(EnvVersion, DefaultVersion),
		Environment: getEnv(EnvEnvironment, DefaultEnvironment),

		MetricsAddr:         getEnv(EnvMetricsAddr, DefaultMetricsAddr),
		ConversionRulesPath: getEnv(EnvConversionRulesPath, DefaultConversionRulesPath),
		DeadLetterPath:      getEnv(EnvDeadLetterPath, DefaultDeadLetterPath),
	}

	reconnect, err := getEnvSeconds(EnvReconnectDelaySeconds, DefaultReconnectDelaySeconds)
	if err != nil {
		return nil, err
	}
	cfg.ReconnectDelay = reconnect

	timeout, err := getEnvSeconds(EnvRequestTimeoutSeconds, DefaultRequestTimeoutSeconds)
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout = timeout

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the ledger connection settings are present.
// A missing node URL, game id or API key makes every operation a no-op,
// so it is treated as fatal at load time.
func (c *Config) Validate() error {
	if c.NodeURL == "" || c.GameID == "" || c.APIKey == "" {
		return fmt.Errorf("%w: set %s, %s and %s", domain.ErrMissingConfig,
			EnvNodeURL, EnvGameID, EnvAPIKey)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvSeconds parses an integer seconds value into a duration
func getEnvSeconds(key string, defaultSeconds int) (time.Duration, error) {
	raw := getEnv(key, strconv.Itoa(defaultSeconds))
	secs, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if secs <= 0 {
		return 0, fmt.Errorf("invalid %s value %d: must be positive", key, secs)
	}
	return time.Duration(secs) * time.Second, nil
}
