package bootstrap

import (
	"os"

	"github.com/interverse/verse-go/internal/config"
	"github.com/interverse/verse-go/internal/conversion"
	"github.com/interverse/verse-go/internal/logger"
)

// LoadConversionRules builds the conversion engine, overlaying the shipped
// rule file on the built-in defaults when the file exists. A missing file is
// not an error; an invalid file is.
func LoadConversionRules(cfg *config.Config) (*conversion.Engine, error) {
	engine := conversion.NewEngine()

	if _, err := os.Stat(cfg.ConversionRulesPath); os.IsNotExist(err) {
		logger.Info(LogMsgRulesSkipped, "path", cfg.ConversionRulesPath)
		return engine, nil
	}

	if err := conversion.NewLoader().LoadInto(cfg.ConversionRulesPath, engine); err != nil {
		return nil, err
	}

	logger.Info(LogMsgRulesLoaded, "path", cfg.ConversionRulesPath, "rules", engine.RuleCount())
	return engine, nil
}
