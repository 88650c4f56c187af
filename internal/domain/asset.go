package domain

// ItemCategory is the wire spelling of an asset's gameplay category.
type ItemCategory string

const (
	CategoryWeapon     ItemCategory = "WEAPON"
	CategoryArmor      ItemCategory = "ARMOR"
	CategoryAccessory  ItemCategory = "ACCESSORY"
	CategoryConsumable ItemCategory = "CONSUMABLE"
	CategoryCurrency   ItemCategory = "CURRENCY"
	CategoryCosmetic   ItemCategory = "COSMETIC"
	CategoryMount      ItemCategory = "MOUNT"
	CategoryPet        ItemCategory = "PET"
)

// Valid reports whether the category is one of the known wire spellings.
func (c ItemCategory) Valid() bool {
	switch c {
	case CategoryWeapon, CategoryArmor, CategoryAccessory, CategoryConsumable,
		CategoryCurrency, CategoryCosmetic, CategoryMount, CategoryPet:
		return true
	default:
		return false
	}
}

// Rarity is the wire spelling of an asset's rarity tier.
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
	RarityMythic    Rarity = "MYTHIC"
)

// Valid reports whether the rarity is one of the known tiers.
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityEpic,
		RarityLegendary, RarityMythic:
		return true
	default:
		return false
	}
}

// AssetType is the ledger-side classification of a minted asset.
type AssetType string

const (
	AssetTypeCosmetic    AssetType = "COSMETIC"
	AssetTypeWeapon      AssetType = "WEAPON"
	AssetTypeCollectible AssetType = "COLLECTIBLE"
	AssetTypeCurrency    AssetType = "CURRENCY"
	AssetTypeUtility     AssetType = "UTILITY"
)

// Color is an RGBA color with float channels, matching the node's wire shape.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// AssetProperties describes an asset before it is minted: the full set of
// gameplay-visible fields a game supplies when creating or converting an item.
type AssetProperties struct {
	Category          ItemCategory       `json:"category" validate:"category"`
	Rarity            Rarity             `json:"rarity" validate:"rarity"`
	Level             int                `json:"level" validate:"gte=0"`
	ModelIdentifier   string             `json:"model_id" validate:"required"`
	PrimaryColor      Color              `json:"primary_color"`
	SecondaryColor    Color              `json:"secondary_color"`
	NumericProperties map[string]float64 `json:"numeric_properties"`
	StringProperties  map[string]string  `json:"string_properties"`
	Tags              []string           `json:"tags"`
	OwnerGlobalID     string             `json:"owner_global_id,omitempty"`
	TargetPlayerID    string             `json:"target_player_id,omitempty"`
}

// IsValid reports whether the properties are minimally usable.
// A model identifier is the only hard requirement.
func (p AssetProperties) IsValid() bool {
	return p.ModelIdentifier != ""
}

// ValidateAssetProperties applies category-specific rules on top of IsValid:
// weapons must carry a Damage numeric property and armor a Defense one.
func ValidateAssetProperties(p AssetProperties) bool {
	if !p.IsValid() {
		return false
	}

	switch p.Category {
	case CategoryWeapon:
		_, ok := p.NumericProperties[NumericPropertyDamage]
		return ok
	case CategoryArmor:
		_, ok := p.NumericProperties[NumericPropertyDefense]
		return ok
	default:
		return true
	}
}

// Clone returns a deep copy so conversions never mutate the caller's maps.
func (p AssetProperties) Clone() AssetProperties {
	out := p

	if p.NumericProperties != nil {
		out.NumericProperties = make(map[string]float64, len(p.NumericProperties))
		for k, v := range p.NumericProperties {
			out.NumericProperties[k] = v
		}
	}

	if p.StringProperties != nil {
		out.StringProperties = make(map[string]string, len(p.StringProperties))
		for k, v := range p.StringProperties {
			out.StringProperties[k] = v
		}
	}

	if p.Tags != nil {
		out.Tags = append([]string(nil), p.Tags...)
	}

	return out
}

// Asset is a minted on-chain record. Asset ids are server-assigned; an Asset
// with a non-empty AssetId only ever originates from a node response or a
// push update, never from speculative client-side construction.
type Asset struct {
	AssetId       string            `json:"asset_id"`
	Owner         string            `json:"owner"`
	OwnerGlobalID string            `json:"owner_global_id,omitempty"`
	AssetType     AssetType         `json:"asset_type,omitempty"`
	Category      ItemCategory      `json:"category"`
	Rarity        Rarity            `json:"rarity"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}
