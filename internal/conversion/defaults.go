package conversion

import "github.com/interverse/verse-go/internal/domain"

// Game universe identifiers used by the stock rules
const (
	GameTypeFantasy = "Fantasy"
	GameTypeSciFi   = "SciFi"
)

// Damage type spellings translated by the stock fantasy-to-scifi rule
const (
	DamageTypeFire      = "Fire"
	DamageTypePlasma    = "Plasma"
	DamageTypeIce       = "Ice"
	DamageTypeCryo      = "Cryo"
	DamageTypeLightning = "Lightning"
	DamageTypeElectric  = "Electric"
)

// NumericPropertyDurability is scaled when weapons cross into scifi.
const NumericPropertyDurability = "DurabilityPoints"

// defaultRules returns the stock rule set every engine starts with.
func defaultRules() []domain.ConversionRule {
	return []domain.ConversionRule{
		{
			FromGameType: GameTypeFantasy,
			ToGameType:   GameTypeSciFi,
			ItemCategory: domain.CategoryWeapon,
			NumericConversionRates: map[string]float64{
				domain.NumericPropertyDamage: 10,
				NumericPropertyDurability:    2,
			},
			PropertyMappings: map[string]string{
				DamageTypeFire:      DamageTypePlasma,
				DamageTypeIce:       DamageTypeCryo,
				DamageTypeLightning: DamageTypeElectric,
			},
		},
	}
}
