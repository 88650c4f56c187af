package domain

// InventoryItem is a player-owned entry in the local inventory view.
// Slot is assigned at insertion time (current item count) and is never
// renumbered when other items are removed.
type InventoryItem struct {
	Asset         Asset  `json:"asset"`
	OwnerGlobalID string `json:"owner_global_id"`
	IsEquipped    bool   `json:"is_equipped"`
	Slot          int    `json:"slot"`
}
