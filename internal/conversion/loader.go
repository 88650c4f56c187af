package conversion

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/interverse/verse-go/internal/domain"
	"github.com/interverse/verse-go/internal/logger"
	"github.com/interverse/verse-go/internal/validation"
)

// RulesConfig is the JSON shape of a conversion rule file.
type RulesConfig struct {
	Version     string                  `json:"version"`
	Description string                  `json:"description,omitempty"`
	Rules       []domain.ConversionRule `json:"rules"`
}

// Loader reads, validates and registers conversion rule files.
type Loader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a loader with a fresh schema cache.
func NewLoader() *Loader {
	return &Loader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// Load reads and parses a rule file, validating it against the schema first.
func (l *Loader) Load(path string) (*RulesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	if err := l.schemaValidator.ValidateBytes(data, RulesSchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var config RulesConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	for i, rule := range config.Rules {
		if rule.FromGameType == "" || rule.ToGameType == "" || rule.ItemCategory == "" {
			return nil, fmt.Errorf("%w: rule %d missing key fields", domain.ErrInvalidInput, i)
		}
		if !rule.ItemCategory.Valid() {
			return nil, fmt.Errorf("%w: rule %d has unknown category %q",
				domain.ErrInvalidInput, i, rule.ItemCategory)
		}
	}

	return &config, nil
}

// LoadInto loads a rule file and registers every rule on the engine.
// Rules in the file override rules the engine already had for the same key.
func (l *Loader) LoadInto(path string, engine *Engine) error {
	config, err := l.Load(path)
	if err != nil {
		return err
	}

	for _, rule := range config.Rules {
		engine.RegisterRule(rule)
	}

	logger.Info(LogMsgRulesLoaded, "path", path, "rules", len(config.Rules))
	return nil
}
