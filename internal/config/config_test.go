package config

import (
	"errors"
	"testing"
	"time"

	"github.com/interverse/verse-go/internal/domain"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvNodeURL, "http://localhost:8545")
	t.Setenv(EnvGameID, "fantasy_realm")
	t.Setenv(EnvAPIKey, "test-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ReconnectDelay != 5*time.Second {
		t.Errorf("Expected default reconnect delay 5s, got %v", cfg.ReconnectDelay)
	}

	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("Expected default request timeout 30s, got %v", cfg.RequestTimeout)
	}

	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("Expected default log level %q, got %q", DefaultLogLevel, cfg.LogLevel)
	}

	if cfg.ConversionRulesPath != DefaultConversionRulesPath {
		t.Errorf("Expected default rules path %q, got %q", DefaultConversionRulesPath, cfg.ConversionRulesPath)
	}

	if cfg.MetricsAddr != "" {
		t.Errorf("Expected metrics disabled by default, got %q", cfg.MetricsAddr)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvAPIKey, "")

	_, err := Load()
	if !errors.Is(err, domain.ErrMissingConfig) {
		t.Fatalf("Expected ErrMissingConfig, got %v", err)
	}
}

func TestLoad_ReconnectDelayOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvReconnectDelaySeconds, "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ReconnectDelay != 2*time.Second {
		t.Errorf("Expected reconnect delay 2s, got %v", cfg.ReconnectDelay)
	}
}

func TestLoad_InvalidSeconds(t *testing.T) {
	setRequiredEnv(t)

	for _, bad := range []string{"abc", "0", "-3"} {
		t.Setenv(EnvRequestTimeoutSeconds, bad)
		if _, err := Load(); err == nil {
			t.Errorf("Expected error for REQUEST_TIMEOUT_SECONDS=%q", bad)
		}
	}
}
