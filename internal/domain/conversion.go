package domain

// ConversionRule describes how asset properties translate between two game
// universes for one item category. Rules are keyed uniquely by
// (FromGameType, ToGameType, ItemCategory).
type ConversionRule struct {
	FromGameType string `json:"from_game_type"`
	ToGameType   string `json:"to_game_type"`

	ItemCategory ItemCategory `json:"item_category"`

	// NumericConversionRates multiplies matching numeric properties by key.
	NumericConversionRates map[string]float64 `json:"numeric_conversion_rates,omitempty"`

	// PropertyMappings replaces string property VALUES, not keys: any field
	// holding "Fire" can become "Plasma" regardless of which key holds it.
	PropertyMappings map[string]string `json:"property_mappings,omitempty"`

	// ColorMappings replaces the primary/secondary colors wholesale when the
	// "Primary"/"Secondary" slots are present.
	ColorMappings map[string]Color `json:"color_mappings,omitempty"`
}
