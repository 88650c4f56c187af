package inventory

import (
	"context"

	"github.com/interverse/verse-go/internal/event"
	"github.com/interverse/verse-go/internal/logger"
)

// Subscriber feeds the store from chain events, so inventory stays current
// whether an asset arrives through a local mint response or a push broadcast.
type Subscriber struct {
	store *Store
}

// NewSubscriber wires a store to the bus.
func NewSubscriber(store *Store, bus *event.MemoryBus) *Subscriber {
	s := &Subscriber{store: store}
	bus.Subscribe(event.ChainAssetMinted, s.handleAssetMinted)
	return s
}

// handleAssetMinted adds the asset for its owner. Duplicate deliveries are
// expected and absorbed by the store's keying.
func (s *Subscriber) handleAssetMinted(_ context.Context, ev event.Event) error {
	payload, err := event.DecodePayload[event.AssetMintedPayloadV1](ev.Payload)
	if err != nil {
		logger.Warn(LogMsgBadMintPayload, "error", err)
		return err
	}

	owner := payload.OwnerGlobalID
	if owner == "" {
		owner = payload.Asset.OwnerGlobalID
	}
	if owner == "" {
		// Without a global owner the asset cannot be placed in any
		// player's inventory; wallet-only assets are tracked on chain.
		return nil
	}

	if s.store.AddItem(payload.Asset, owner) {
		logger.Debug(LogMsgItemAdded, "asset_id", payload.Asset.AssetId, "owner_global_id", owner)
	}
	return nil
}
