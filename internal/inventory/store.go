// Package inventory keeps the local, in-memory view of player-owned assets.
// The ledger stays authoritative; this store exists so gameplay code can
// query ownership without a round trip, and so duplicate mint notifications
// (HTTP response plus push broadcast) collapse into one entry.
package inventory

import (
	"sort"
	"sync"

	"github.com/interverse/verse-go/internal/domain"
	"github.com/interverse/verse-go/internal/logger"
)

type itemKey struct {
	assetID       string
	ownerGlobalID string
}

// Store is a thread-safe multi-player inventory. Items are keyed by
// (asset id, owner global id), so the same asset id may exist once per
// owner but never twice for one owner.
type Store struct {
	mu    sync.RWMutex
	items map[itemKey]*domain.InventoryItem

	// insertions counts every successful add, ever. Slots come from this
	// counter so removals never renumber surviving items.
	insertions int
}

// NewStore creates an empty inventory store.
func NewStore() *Store {
	return &Store{
		items: make(map[itemKey]*domain.InventoryItem),
	}
}

// AddItem inserts an asset for an owner. Returns false when the same
// (asset id, owner) pair is already present; the existing entry, including
// its equip state, is left untouched.
func (s *Store) AddItem(asset domain.Asset, ownerGlobalID string) bool {
	if asset.AssetId == "" || ownerGlobalID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := itemKey{assetID: asset.AssetId, ownerGlobalID: ownerGlobalID}
	if _, exists := s.items[key]; exists {
		logger.Debug(LogMsgDuplicateItem, "asset_id", asset.AssetId, "owner_global_id", ownerGlobalID)
		return false
	}

	s.items[key] = &domain.InventoryItem{
		Asset:         asset,
		OwnerGlobalID: ownerGlobalID,
		Slot:          s.insertions,
	}
	s.insertions++
	return true
}

// RemoveItem deletes an item. Returns false when it was not present.
func (s *Store) RemoveItem(assetID, ownerGlobalID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := itemKey{assetID: assetID, ownerGlobalID: ownerGlobalID}
	if _, exists := s.items[key]; !exists {
		return false
	}
	delete(s.items, key)
	return true
}

// HasItem reports whether the owner holds the asset.
func (s *Store) HasItem(assetID, ownerGlobalID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.items[itemKey{assetID: assetID, ownerGlobalID: ownerGlobalID}]
	return exists
}

// GetItem returns a copy of one item.
func (s *Store) GetItem(assetID, ownerGlobalID string) (domain.InventoryItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[itemKey{assetID: assetID, ownerGlobalID: ownerGlobalID}]
	if !exists {
		return domain.InventoryItem{}, false
	}
	return *item, true
}

// EquipItem marks an item equipped. Any other equipped item of the same
// category belonging to the same owner is unequipped first; equipment is
// exclusive per category per player, never across players.
func (s *Store) EquipItem(assetID, ownerGlobalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := itemKey{assetID: assetID, ownerGlobalID: ownerGlobalID}
	target, exists := s.items[key]
	if !exists {
		return domain.ErrAssetNotFound
	}

	for _, item := range s.items {
		if item.OwnerGlobalID == ownerGlobalID &&
			item.Asset.Category == target.Asset.Category &&
			item.IsEquipped {
			item.IsEquipped = false
		}
	}

	target.IsEquipped = true
	return nil
}

// UnequipItem clears the equipped flag. Returns ErrAssetNotFound when the
// owner does not hold the asset.
func (s *Store) UnequipItem(assetID, ownerGlobalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[itemKey{assetID: assetID, ownerGlobalID: ownerGlobalID}]
	if !exists {
		return domain.ErrAssetNotFound
	}
	item.IsEquipped = false
	return nil
}

// TransferItemBetweenPlayers reassigns an item to another owner in place:
// the item keeps its slot, arrives unequipped, and if the receiver already
// holds the asset the source entry is still removed.
func (s *Store) TransferItemBetweenPlayers(assetID, fromGlobalID, toGlobalID string) error {
	if toGlobalID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fromKey := itemKey{assetID: assetID, ownerGlobalID: fromGlobalID}
	item, exists := s.items[fromKey]
	if !exists {
		return domain.ErrAssetNotFound
	}
	delete(s.items, fromKey)

	toKey := itemKey{assetID: assetID, ownerGlobalID: toGlobalID}
	if _, exists := s.items[toKey]; exists {
		return nil
	}

	asset := item.Asset
	asset.OwnerGlobalID = toGlobalID
	s.items[toKey] = &domain.InventoryItem{
		Asset:         asset,
		OwnerGlobalID: toGlobalID,
		Slot:          item.Slot,
	}
	logger.Debug(LogMsgItemTransferred, "asset_id", assetID, "from", fromGlobalID, "to", toGlobalID)
	return nil
}

// GetPlayerItems returns copies of a player's items ordered by slot.
func (s *Store) GetPlayerItems(ownerGlobalID string) []domain.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.InventoryItem
	for _, item := range s.items {
		if item.OwnerGlobalID == ownerGlobalID {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}

// GetItemsByCategory returns a player's items of one category, ordered by slot.
func (s *Store) GetItemsByCategory(ownerGlobalID string, category domain.ItemCategory) []domain.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.InventoryItem
	for _, item := range s.items {
		if item.OwnerGlobalID == ownerGlobalID && item.Asset.Category == category {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}

// GetEquippedItem returns the equipped item of one category for a player.
func (s *Store) GetEquippedItem(ownerGlobalID string, category domain.ItemCategory) (domain.InventoryItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.OwnerGlobalID == ownerGlobalID &&
			item.Asset.Category == category &&
			item.IsEquipped {
			return *item, true
		}
	}
	return domain.InventoryItem{}, false
}

// Size reports how many items the store holds across all players.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
