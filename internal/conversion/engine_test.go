package conversion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interverse/verse-go/internal/domain"
)

func fantasyWeapon() domain.AssetProperties {
	return domain.AssetProperties{
		Category:        domain.CategoryWeapon,
		Rarity:          domain.RarityEpic,
		Level:           20,
		ModelIdentifier: "SM_Flamebrand",
		NumericProperties: map[string]float64{
			domain.NumericPropertyDamage: 15,
			NumericPropertyDurability:    100,
			"Weight":                     3.5,
		},
		StringProperties: map[string]string{
			"DamageType":  DamageTypeFire,
			"Enchantment": "Glowing",
		},
	}
}

func TestConvertAsset_FantasyToSciFiWeapon(t *testing.T) {
	engine := NewEngine()

	out := engine.ConvertAsset(fantasyWeapon(), GameTypeFantasy, GameTypeSciFi)

	assert.Equal(t, 150.0, out.NumericProperties[domain.NumericPropertyDamage])
	assert.Equal(t, 200.0, out.NumericProperties[NumericPropertyDurability])
	assert.Equal(t, 3.5, out.NumericProperties["Weight"], "unmapped numerics pass through")

	assert.Equal(t, DamageTypePlasma, out.StringProperties["DamageType"])
	assert.Equal(t, "Glowing", out.StringProperties["Enchantment"], "unmapped strings pass through")

	// Identity fields survive conversion.
	assert.Equal(t, "SM_Flamebrand", out.ModelIdentifier)
	assert.Equal(t, domain.RarityEpic, out.Rarity)
	assert.Equal(t, 20, out.Level)
}

func TestConvertAsset_MappingMatchesValuesNotKeys(t *testing.T) {
	engine := NewEngine()

	props := fantasyWeapon()
	props.StringProperties = map[string]string{
		"Element":       DamageTypeIce,
		"SecondElement": DamageTypeLightning,
	}

	out := engine.ConvertAsset(props, GameTypeFantasy, GameTypeSciFi)

	assert.Equal(t, DamageTypeCryo, out.StringProperties["Element"])
	assert.Equal(t, DamageTypeElectric, out.StringProperties["SecondElement"])
}

func TestConvertAsset_NoRuleIsIdentity(t *testing.T) {
	engine := NewEngine()

	props := fantasyWeapon()
	out := engine.ConvertAsset(props, GameTypeSciFi, GameTypeFantasy)

	assert.Equal(t, props, out)
}

func TestConvertAsset_NeverMutatesInput(t *testing.T) {
	engine := NewEngine()

	props := fantasyWeapon()
	_ = engine.ConvertAsset(props, GameTypeFantasy, GameTypeSciFi)

	assert.Equal(t, 15.0, props.NumericProperties[domain.NumericPropertyDamage])
	assert.Equal(t, DamageTypeFire, props.StringProperties["DamageType"])
}

func TestConvertAsset_ColorMappings(t *testing.T) {
	engine := NewEmptyEngine()
	engine.RegisterRule(domain.ConversionRule{
		FromGameType: GameTypeFantasy,
		ToGameType:   GameTypeSciFi,
		ItemCategory: domain.CategoryArmor,
		ColorMappings: map[string]domain.Color{
			domain.ColorSlotPrimary: {R: 0.1, G: 0.2, B: 0.3, A: 1},
		},
	})

	props := domain.AssetProperties{
		Category:        domain.CategoryArmor,
		ModelIdentifier: "SM_Plate",
		PrimaryColor:    domain.Color{R: 1, A: 1},
		SecondaryColor:  domain.Color{G: 1, A: 1},
	}

	out := engine.ConvertAsset(props, GameTypeFantasy, GameTypeSciFi)

	assert.Equal(t, domain.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}, out.PrimaryColor)
	assert.Equal(t, domain.Color{G: 1, A: 1}, out.SecondaryColor, "unmapped slot keeps its color")
}

func TestRegisterRule_ReplacesSameKey(t *testing.T) {
	engine := NewEmptyEngine()

	rule := domain.ConversionRule{
		FromGameType:           GameTypeFantasy,
		ToGameType:             GameTypeSciFi,
		ItemCategory:           domain.CategoryWeapon,
		NumericConversionRates: map[string]float64{domain.NumericPropertyDamage: 2},
	}
	engine.RegisterRule(rule)

	rule.NumericConversionRates = map[string]float64{domain.NumericPropertyDamage: 5}
	engine.RegisterRule(rule)

	require.Equal(t, 1, engine.RuleCount())

	props := fantasyWeapon()
	out := engine.ConvertAsset(props, GameTypeFantasy, GameTypeSciFi)
	assert.Equal(t, 75.0, out.NumericProperties[domain.NumericPropertyDamage])
}

func TestConvertAsset_PostProcessHook(t *testing.T) {
	engine := NewEngine()
	engine.SetPostProcess(func(props *domain.AssetProperties, from, to string) {
		props.Tags = append(props.Tags, "converted:"+from+">"+to)
	})

	out := engine.ConvertAsset(fantasyWeapon(), GameTypeFantasy, GameTypeSciFi)
	assert.Contains(t, out.Tags, "converted:Fantasy>SciFi")

	// The hook also runs on identity conversions.
	out = engine.ConvertAsset(fantasyWeapon(), "Unknown", "AlsoUnknown")
	assert.Contains(t, out.Tags, "converted:Unknown>AlsoUnknown")
}

func BenchmarkConvertAsset(b *testing.B) {
	engine := NewEngine()
	props := fantasyWeapon()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.ConvertAsset(props, GameTypeFantasy, GameTypeSciFi)
	}
}
