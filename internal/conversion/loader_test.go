package conversion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interverse/verse-go/internal/domain"
)

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_LoadShippedRules(t *testing.T) {
	loader := NewLoader()

	config, err := loader.Load("../../configs/conversion_rules.json")
	require.NoError(t, err)
	assert.Equal(t, "1.0", config.Version)
	require.Len(t, config.Rules, 2)
	assert.Equal(t, domain.CategoryWeapon, config.Rules[0].ItemCategory)
}

func TestLoader_LoadInto(t *testing.T) {
	path := writeRulesFile(t, `{
		"version": "1.0",
		"rules": [{
			"from_game_type": "Fantasy",
			"to_game_type": "Steampunk",
			"item_category": "WEAPON",
			"numeric_conversion_rates": {"Damage": 3}
		}]
	}`)

	engine := NewEmptyEngine()
	require.NoError(t, NewLoader().LoadInto(path, engine))

	require.True(t, engine.HasRule("Fantasy", "Steampunk", domain.CategoryWeapon))
	out := engine.ConvertAsset(fantasyWeapon(), "Fantasy", "Steampunk")
	assert.Equal(t, 45.0, out.NumericProperties[domain.NumericPropertyDamage])
}

func TestLoader_RejectsUnknownCategory(t *testing.T) {
	path := writeRulesFile(t, `{
		"version": "1.0",
		"rules": [{
			"from_game_type": "Fantasy",
			"to_game_type": "SciFi",
			"item_category": "SPACESHIP"
		}]
	}`)

	_, err := NewLoader().Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestLoader_RejectsMissingKeyFields(t *testing.T) {
	path := writeRulesFile(t, `{
		"version": "1.0",
		"rules": [{
			"from_game_type": "Fantasy",
			"item_category": "WEAPON"
		}]
	}`)

	_, err := NewLoader().Load(path)
	require.Error(t, err)
}

func TestLoader_RejectsMalformedJSON(t *testing.T) {
	path := writeRulesFile(t, `{"version": "1.0", "rules": [`)

	_, err := NewLoader().Load(path)
	require.Error(t, err)
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
