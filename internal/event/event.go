package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/interverse/verse-go/internal/domain"
)

// Type represents the type of an event
type Type string

// Chain events. The same logical event may arrive twice: once from an HTTP
// response and once from the push channel broadcast. Subscribers must treat
// them idempotently (the inventory store dedupes on asset id + owner).
const (
	ChainAssetMinted      Type = "chain.asset_minted"
	ChainBalanceUpdated   Type = "chain.balance_updated"
	ChainTransferComplete Type = "chain.transfer_complete"
	ChainConnected        Type = "chain.connected"
)

// Game link events
const (
	GameLinkEstablished       Type = "gamelink.established"
	GameLinkObjectTransferred Type = "gamelink.object_transferred"
	GameLinkObjectReceived    Type = "gamelink.object_received"
)

// Supporting subsystem events
const (
	MiningComplete   Type = "mining.complete"
	PlayerIdentified Type = "player.identified"
)

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// Typed event payloads

// AssetMintedPayloadV1 carries a freshly minted (or pushed) asset record
type AssetMintedPayloadV1 struct {
	Asset         domain.Asset `json:"asset"`
	OwnerGlobalID string       `json:"owner_global_id,omitempty"`
}

// BalanceUpdatedPayloadV1 carries a wallet balance snapshot
type BalanceUpdatedPayloadV1 struct {
	Address string  `json:"address,omitempty"`
	Balance float64 `json:"balance"`
}

// TransferCompletePayloadV1 reports the outcome of an asset transfer
type TransferCompletePayloadV1 struct {
	AssetID  string `json:"asset_id"`
	PlayerID string `json:"player_id,omitempty"`
	Success  bool   `json:"success"`
}

// ConnectionChangedPayloadV1 reports push channel connectivity transitions
type ConnectionChangedPayloadV1 struct {
	Connected bool   `json:"connected"`
	Status    string `json:"status"`
}

// GameLinkEstablishedPayloadV1 reports a registered game link
type GameLinkEstablishedPayloadV1 struct {
	TargetGameID string `json:"target_game_id"`
}

// ObjectTransferredPayloadV1 reports an outbound cross-game object transfer
type ObjectTransferredPayloadV1 struct {
	ObjectID       string `json:"object_id"`
	TargetPlayerID string `json:"target_player_id"`
	Success        bool   `json:"success"`
}

// ObjectReceivedPayloadV1 reports an inbound cross-game object spawn
type ObjectReceivedPayloadV1 struct {
	ObjectID     string `json:"object_id"`
	SourceGameID string `json:"source_game_id"`
	TypeTag      string `json:"type_tag"`
}

// MiningCompletePayloadV1 reports a completed mining interval
type MiningCompletePayloadV1 struct {
	Reward    float64 `json:"reward"`
	BlockHash string  `json:"block_hash"`
}

// PlayerIdentifiedPayloadV1 reports a resolved cross-game player identity
type PlayerIdentifiedPayloadV1 struct {
	Identity domain.PlayerIdentity `json:"identity"`
}

// Type-safe event constructors

// NewAssetMintedEvent creates an asset minted event
func NewAssetMintedEvent(asset domain.Asset, ownerGlobalID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ChainAssetMinted,
		Payload: AssetMintedPayloadV1{
			Asset:         asset,
			OwnerGlobalID: ownerGlobalID,
		},
	}
}

// NewBalanceUpdatedEvent creates a balance update event
func NewBalanceUpdatedEvent(address string, balance float64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ChainBalanceUpdated,
		Payload: BalanceUpdatedPayloadV1{
			Address: address,
			Balance: balance,
		},
	}
}

// NewTransferCompleteEvent creates a transfer outcome event
func NewTransferCompleteEvent(assetID, playerID string, success bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ChainTransferComplete,
		Payload: TransferCompletePayloadV1{
			AssetID:  assetID,
			PlayerID: playerID,
			Success:  success,
		},
	}
}

// NewConnectionChangedEvent creates a connectivity transition event
func NewConnectionChangedEvent(connected bool, status string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ChainConnected,
		Payload: ConnectionChangedPayloadV1{
			Connected: connected,
			Status:    status,
		},
	}
}

// NewGameLinkEstablishedEvent creates a link registration event
func NewGameLinkEstablishedEvent(targetGameID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GameLinkEstablished,
		Payload: GameLinkEstablishedPayloadV1{TargetGameID: targetGameID},
	}
}

// NewObjectTransferredEvent creates an outbound object transfer event
func NewObjectTransferredEvent(objectID, targetPlayerID string, success bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GameLinkObjectTransferred,
		Payload: ObjectTransferredPayloadV1{
			ObjectID:       objectID,
			TargetPlayerID: targetPlayerID,
			Success:        success,
		},
	}
}

// NewObjectReceivedEvent creates an inbound object spawn event
func NewObjectReceivedEvent(objectID, sourceGameID, typeTag string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GameLinkObjectReceived,
		Payload: ObjectReceivedPayloadV1{
			ObjectID:     objectID,
			SourceGameID: sourceGameID,
			TypeTag:      typeTag,
		},
	}
}

// NewMiningCompleteEvent creates a mining reward event
func NewMiningCompleteEvent(reward float64, blockHash string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MiningComplete,
		Payload: MiningCompletePayloadV1{
			Reward:    reward,
			BlockHash: blockHash,
		},
	}
}

// NewPlayerIdentifiedEvent creates a player identity event
func NewPlayerIdentifiedEvent(identity domain.PlayerIdentity) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PlayerIdentified,
		Payload: PlayerIdentifiedPayloadV1{Identity: identity},
		Metadata: map[string]interface{}{
			"identified_at": time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously
// on the publishing goroutine; the chain client publishes from its dispatch
// loop, which is what gives consumers the single-threaded ordering guarantee.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
