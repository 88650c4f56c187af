// Package mining runs the background proof-of-effort loop that drips
// currency rewards to a wallet at a fixed interval.
package mining

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/interverse/verse-go/internal/domain"
	"github.com/interverse/verse-go/internal/event"
	"github.com/interverse/verse-go/internal/logger"
	"github.com/interverse/verse-go/internal/metrics"
)

// Reward tuning
const (
	// BaseRewardRate anchors all rewards; everything else scales it.
	BaseRewardRate = 0.1

	// MaxIntervalHours caps the interval factor so long intervals cannot
	// farm unbounded rewards per tick.
	MaxIntervalHours = 2.0

	// MinDifficulty floors difficulty so misconfiguration cannot divide
	// rewards toward infinity.
	MinDifficulty = 0.1

	// RewardJitter is the upper bound of the random bonus factor.
	RewardJitter = 0.05

	DefaultInterval   = time.Minute
	DefaultPower      = 1.0
	DefaultDifficulty = 1.0
)

// Log messages
const (
	LogMsgMiningStarted = "Mining started"
	LogMsgMiningStopped = "Mining stopped"
	LogMsgBlockMined    = "Mined block"
)

// Config tunes one miner.
type Config struct {
	Power      float64
	Difficulty float64
	Interval   time.Duration
}

func (c Config) withDefaults() Config {
	if c.Power <= 0 {
		c.Power = DefaultPower
	}
	if c.Difficulty <= 0 {
		c.Difficulty = DefaultDifficulty
	}
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	return c
}

// Miner drips rewards to one address on a ticker. At most one loop runs at
// a time; starting an already running miner is an error.
type Miner struct {
	cfg Config
	bus event.Bus

	mu         sync.Mutex
	cancel     context.CancelFunc
	done       chan struct{}
	address    string
	totalMined float64
}

// NewMiner creates a stopped miner.
func NewMiner(cfg Config, bus event.Bus) *Miner {
	return &Miner{
		cfg: cfg.withDefaults(),
		bus: bus,
	}
}

// CalculateReward computes one tick's reward: the base rate scaled by power,
// by the capped interval fraction of an hour, inversely by difficulty, plus
// a small random bonus.
func (m *Miner) CalculateReward() float64 {
	difficulty := m.cfg.Difficulty
	if difficulty < MinDifficulty {
		difficulty = MinDifficulty
	}

	intervalFactor := m.cfg.Interval.Hours()
	if intervalFactor > MaxIntervalHours {
		intervalFactor = MaxIntervalHours
	}

	bonus := 1 + rand.Float64()*RewardJitter
	return BaseRewardRate * m.cfg.Power * intervalFactor * (1 / difficulty) * bonus
}

// StartMining begins the reward loop for an address.
func (m *Miner) StartMining(ctx context.Context, address string) error {
	if address == "" {
		return domain.ErrEmptyAddress
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return domain.ErrInvalidInput
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	m.address = address

	logger.Info(LogMsgMiningStarted, "address", address, "interval", m.cfg.Interval)
	go m.run(ctx, m.done)
	return nil
}

// StopMining halts the loop and waits for it to exit. Safe to call when the
// miner is not running.
func (m *Miner) StopMining() {
	m.mu.Lock()
	cancel := m.cancel
	done := m.done
	m.cancel = nil
	m.done = nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	logger.Info(LogMsgMiningStopped, "address", m.address)
}

// IsMining reports whether the loop is running.
func (m *Miner) IsMining() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancel != nil
}

// TotalMined reports the sum of rewards produced since construction.
func (m *Miner) TotalMined() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totalMined
}

func (m *Miner) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.mineBlock(ctx)
		}
	}
}

// mineBlock produces one reward tick.
func (m *Miner) mineBlock(ctx context.Context) {
	reward := m.CalculateReward()
	blockHash := uuid.NewString()

	m.mu.Lock()
	m.totalMined += reward
	m.mu.Unlock()

	metrics.MiningRewards.Add(reward)
	logger.Debug(LogMsgBlockMined, "reward", reward, "block_hash", blockHash)

	if err := m.bus.Publish(ctx, event.NewMiningCompleteEvent(reward, blockHash)); err != nil {
		logger.Warn("Mining complete event reported handler errors", "error", err)
	}
}
