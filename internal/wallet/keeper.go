// Package wallet tracks the game's active wallet and caches balances.
package wallet

import (
	"context"
	"sync"
	"time"

	"github.com/interverse/verse-go/internal/domain"
	"github.com/interverse/verse-go/internal/event"
	"github.com/interverse/verse-go/internal/logger"
)

// Default cache sizing
const (
	DefaultCacheSize = 512
	DefaultCacheTTL  = 30 * time.Second
)

// Log messages
const (
	LogMsgWalletCreated     = "Wallet created"
	LogMsgBalanceFromCache  = "Serving balance from cache"
	LogMsgBadBalancePayload = "Dropping balance event with bad payload"
)

// ChainAPI is the slice of the chain client the keeper needs.
type ChainAPI interface {
	CreateWallet(done func(domain.Wallet, error)) error
	GetBalance(address string, done func(float64, error)) error
}

// Keeper owns the active wallet and a balance cache. Push balance updates
// flow into the cache through the bus subscription, so cached reads stay
// fresh without polling.
type Keeper struct {
	chain ChainAPI
	cache *balanceCache

	mu     sync.RWMutex
	active domain.Wallet
	hasOne bool
}

// NewKeeper creates a keeper and subscribes it to balance events.
func NewKeeper(chain ChainAPI, bus *event.MemoryBus) *Keeper {
	k := &Keeper{
		chain: chain,
		cache: newBalanceCache(DefaultCacheSize, DefaultCacheTTL),
	}
	bus.Subscribe(event.ChainBalanceUpdated, k.handleBalanceUpdated)
	return k
}

// Create requests a fresh wallet and adopts it as the active one.
func (k *Keeper) Create(done func(domain.Wallet, error)) error {
	return k.chain.CreateWallet(func(wallet domain.Wallet, err error) {
		if err == nil {
			k.mu.Lock()
			k.active = wallet
			k.hasOne = true
			k.mu.Unlock()
			k.cache.Set(wallet.Address, wallet.Balance)
			logger.Info(LogMsgWalletCreated, "address", wallet.Address)
		}
		done(wallet, err)
	})
}

// ActiveWallet returns the adopted wallet, if any.
func (k *Keeper) ActiveWallet() (domain.Wallet, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.active, k.hasOne
}

// Balance resolves an address's balance, serving from cache when fresh.
// A cache hit invokes done synchronously before Balance returns.
func (k *Keeper) Balance(address string, done func(float64, error)) error {
	if address == "" {
		return domain.ErrEmptyAddress
	}

	if balance, ok := k.cache.Get(address); ok {
		logger.Debug(LogMsgBalanceFromCache, "address", address)
		done(balance, nil)
		return nil
	}

	return k.chain.GetBalance(address, func(balance float64, err error) {
		if err == nil {
			k.cache.Set(address, balance)
		}
		done(balance, err)
	})
}

// RefreshBalance bypasses the cache and hits the node.
func (k *Keeper) RefreshBalance(address string, done func(float64, error)) error {
	if address == "" {
		return domain.ErrEmptyAddress
	}

	k.cache.Invalidate(address)
	return k.chain.GetBalance(address, func(balance float64, err error) {
		if err == nil {
			k.cache.Set(address, balance)
		}
		done(balance, err)
	})
}

// handleBalanceUpdated folds pushed balance changes into the cache and the
// active wallet snapshot.
func (k *Keeper) handleBalanceUpdated(_ context.Context, ev event.Event) error {
	payload, err := event.DecodePayload[event.BalanceUpdatedPayloadV1](ev.Payload)
	if err != nil {
		logger.Warn(LogMsgBadBalancePayload, "error", err)
		return err
	}
	if payload.Address == "" {
		return nil
	}

	k.cache.Set(payload.Address, payload.Balance)

	k.mu.Lock()
	if k.hasOne && k.active.Address == payload.Address {
		k.active.Balance = payload.Balance
	}
	k.mu.Unlock()
	return nil
}
