// Package gamelink moves game objects between linked games through the
// ledger. A link must be registered and must allow direct transfer before
// objects flow; codecs decide how each object class serializes.
package gamelink

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/interverse/verse-go/internal/domain"
	"github.com/interverse/verse-go/internal/event"
	"github.com/interverse/verse-go/internal/logger"
	"github.com/interverse/verse-go/internal/metrics"
	"github.com/interverse/verse-go/internal/validation"
)

// Log messages
const (
	LogMsgLinkRegistered    = "Registered game link"
	LogMsgObjectTransferred = "Transferred object across game link"
	LogMsgObjectReceived    = "Spawned received object"
	LogMsgSpawnRejected     = "Rejected received object"
)

// Recorder is the slice of the chain client the bridge needs.
type Recorder interface {
	RecordTransaction(recordType string, data map[string]interface{}, done func(string, error)) error
}

// Bridge owns the registered game links and the codec registry for one game.
type Bridge struct {
	gameID string
	chain  Recorder
	bus    event.Bus
	codecs *CodecRegistry

	mu    sync.RWMutex
	links map[string]domain.GameLinkConfig
}

// NewBridge creates a bridge with no links registered.
func NewBridge(gameID string, chain Recorder, bus event.Bus) *Bridge {
	return &Bridge{
		gameID: gameID,
		chain:  chain,
		bus:    bus,
		codecs: NewCodecRegistry(),
		links:  make(map[string]domain.GameLinkConfig),
	}
}

// Codecs exposes the registry so games can register object codecs.
func (b *Bridge) Codecs() *CodecRegistry {
	return b.codecs
}

// RegisterGameLink stores a link and records the registration on the ledger.
// Registering the same target again replaces the stored config.
func (b *Bridge) RegisterGameLink(cfg domain.GameLinkConfig) error {
	if err := validation.Struct(cfg); err != nil {
		return domain.ErrInvalidInput
	}

	b.mu.Lock()
	b.links[cfg.TargetGameID] = cfg
	b.mu.Unlock()

	logger.Info(LogMsgLinkRegistered,
		"target_game_id", cfg.TargetGameID,
		"direct_transfer", cfg.AllowDirectObjectTransfer)

	data := map[string]interface{}{
		"source_game_id":  b.gameID,
		"target_game_id":  cfg.TargetGameID,
		"direct_transfer": cfg.AllowDirectObjectTransfer,
	}
	err := b.chain.RecordTransaction(domain.RecordTypeGameLink, data, func(_ string, err error) {
		if err != nil {
			logger.Warn("Failed to record game link registration", "error", err)
		}
	})
	if err != nil {
		return err
	}

	if err := b.bus.Publish(context.Background(), event.NewGameLinkEstablishedEvent(cfg.TargetGameID)); err != nil {
		logger.Warn("Game link event reported handler errors", "error", err)
	}
	return nil
}

// Link returns the stored config for a target game.
func (b *Bridge) Link(targetGameID string) (domain.GameLinkConfig, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	cfg, ok := b.links[targetGameID]
	return cfg, ok
}

// TransferGameObject encodes an object and records its transfer to a linked
// game. The object class is translated through the link's class mappings so
// the target game sees its own type tags.
func (b *Bridge) TransferGameObject(targetGameID, typeTag string, obj interface{}, sourcePlayerID, targetPlayerID string, done func(string, error)) error {
	b.mu.RLock()
	link, found := b.links[targetGameID]
	b.mu.RUnlock()
	if !found {
		return domain.ErrLinkNotFound
	}
	if !link.AllowDirectObjectTransfer {
		return domain.ErrTransferNotAllowed
	}

	c, ok := b.codecs.get(typeTag)
	if !ok {
		return domain.ErrCodecNotFound
	}

	objectData, err := c.encode(obj)
	if err != nil {
		return err
	}

	objectClass := typeTag
	if mapped, ok := link.ClassMappings[typeTag]; ok {
		objectClass = mapped
	}

	transfer := domain.TransferredObjectData{
		ObjectID:       uuid.NewString(),
		SourcePlayerID: sourcePlayerID,
		TargetPlayerID: targetPlayerID,
		SourceGameID:   b.gameID,
		ObjectClass:    objectClass,
		ObjectData:     objectData,
		Valid:          true,
	}

	data := map[string]interface{}{
		"object_id":        transfer.ObjectID,
		"source_player_id": transfer.SourcePlayerID,
		"target_player_id": transfer.TargetPlayerID,
		"source_game_id":   transfer.SourceGameID,
		"target_game_id":   targetGameID,
		"object_class":     transfer.ObjectClass,
		"object_data":      transfer.ObjectData,
	}

	return b.chain.RecordTransaction(domain.RecordTypeGameObjectTransfer, data,
		func(_ string, err error) {
			success := err == nil
			if success {
				metrics.ObjectsTransferred.Inc()
				logger.Info(LogMsgObjectTransferred,
					"object_id", transfer.ObjectID,
					"target_game_id", targetGameID,
					"object_class", transfer.ObjectClass)
			}
			if pubErr := b.bus.Publish(context.Background(),
				event.NewObjectTransferredEvent(transfer.ObjectID, targetPlayerID, success)); pubErr != nil {
				logger.Warn("Object transferred event reported handler errors", "error", pubErr)
			}
			done(transfer.ObjectID, err)
		})
}

// SpawnReceivedObject rebuilds an object that arrived over a link. It either
// returns a fully built object or an error; a decode failure leaves nothing
// behind.
func (b *Bridge) SpawnReceivedObject(data domain.TransferredObjectData) (interface{}, error) {
	if !data.Valid || data.ObjectClass == "" {
		logger.Warn(LogMsgSpawnRejected, "object_id", data.ObjectID, "object_class", data.ObjectClass)
		return nil, domain.ErrInvalidInput
	}

	c, ok := b.codecs.get(data.ObjectClass)
	if !ok {
		logger.Warn(LogMsgSpawnRejected, "object_id", data.ObjectID, "object_class", data.ObjectClass)
		return nil, domain.ErrCodecNotFound
	}

	obj, err := c.decode(data.ObjectData)
	if err != nil {
		logger.Warn(LogMsgSpawnRejected, "object_id", data.ObjectID, "error", err)
		return nil, err
	}

	logger.Info(LogMsgObjectReceived,
		"object_id", data.ObjectID, "source_game_id", data.SourceGameID)
	if err := b.bus.Publish(context.Background(),
		event.NewObjectReceivedEvent(data.ObjectID, data.SourceGameID, data.ObjectClass)); err != nil {
		logger.Warn("Object received event reported handler errors", "error", err)
	}
	return obj, nil
}
