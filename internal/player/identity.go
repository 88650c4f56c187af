// Package player resolves game-local player ids into cross-game identities.
package player

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/interverse/verse-go/internal/domain"
	"github.com/interverse/verse-go/internal/event"
	"github.com/interverse/verse-go/internal/logger"
)

// Log messages
const (
	LogMsgPlayerIdentified = "Resolved player identity"
	LogMsgPlayerRegistered = "Recorded player registration on ledger"
)

// Recorder is the slice of the chain client the service needs.
type Recorder interface {
	RecordTransaction(recordType string, data map[string]interface{}, done func(string, error)) error
}

// Service derives and caches global player identities for one game.
// A global id is minted once per game-specific id and reused afterwards;
// the derivation salts with time and a uuid so two games identifying the
// same local id never collide.
type Service struct {
	gameID string
	chain  Recorder
	bus    event.Bus

	mu         sync.Mutex
	identities map[string]domain.PlayerIdentity
}

// NewService creates a player identity service.
func NewService(gameID string, chain Recorder, bus event.Bus) *Service {
	return &Service{
		gameID:     gameID,
		chain:      chain,
		bus:        bus,
		identities: make(map[string]domain.PlayerIdentity),
	}
}

// deriveGlobalID hashes the local id with a time and uuid salt. md5 is an
// id-spreading hash here, not a security boundary.
func deriveGlobalID(gameSpecificID string) string {
	seed := fmt.Sprintf("%s%d%s", gameSpecificID, time.Now().UnixNano(), uuid.NewString())
	sum := md5.Sum([]byte(seed))
	return hex.EncodeToString(sum[:])
}

// IdentifyPlayer resolves a game-specific player id into a global identity,
// minting one on first sight. The resolution is announced on the bus either
// way so inventory and link subsystems learn the mapping.
func (s *Service) IdentifyPlayer(gameSpecificID, playerName string) (domain.PlayerIdentity, error) {
	if gameSpecificID == "" {
		return domain.PlayerIdentity{}, domain.ErrInvalidInput
	}

	s.mu.Lock()
	identity, exists := s.identities[gameSpecificID]
	if !exists {
		identity = domain.PlayerIdentity{
			GlobalPlayerID:  deriveGlobalID(gameSpecificID),
			CurrentGameID:   s.gameID,
			PlayerName:      playerName,
			LastKnownGameID: s.gameID,
			LastActiveTime:  time.Now().UTC(),
		}
		s.identities[gameSpecificID] = identity
		logger.Info(LogMsgPlayerIdentified,
			"game_specific_id", gameSpecificID, "global_id", identity.GlobalPlayerID)
	} else {
		identity.LastActiveTime = time.Now().UTC()
		s.identities[gameSpecificID] = identity
	}
	s.mu.Unlock()

	if err := s.bus.Publish(context.Background(), event.NewPlayerIdentifiedEvent(identity)); err != nil {
		logger.Warn("Player identified event reported handler errors", "error", err)
	}
	return identity, nil
}

// Identity returns the cached identity for a local id, if one exists.
func (s *Service) Identity(gameSpecificID string) (domain.PlayerIdentity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity, ok := s.identities[gameSpecificID]
	return identity, ok
}

// RegisterPlayerWithChain writes the identity to the ledger as a
// player_registration record.
func (s *Service) RegisterPlayerWithChain(identity domain.PlayerIdentity, done func(string, error)) error {
	if identity.GlobalPlayerID == "" {
		return domain.ErrInvalidInput
	}

	data := map[string]interface{}{
		"global_id":   identity.GlobalPlayerID,
		"game_id":     identity.CurrentGameID,
		"player_name": identity.PlayerName,
	}

	return s.chain.RecordTransaction(domain.RecordTypePlayerRegistration, data,
		func(txID string, err error) {
			if err == nil {
				logger.Info(LogMsgPlayerRegistered,
					"global_id", identity.GlobalPlayerID, "transaction_id", txID)
			}
			done(txID, err)
		})
}
