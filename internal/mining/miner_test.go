package mining

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interverse/verse-go/internal/domain"
	"github.com/interverse/verse-go/internal/event"
	"github.com/interverse/verse-go/internal/testing/leaktest"
)

func TestCalculateReward_Bounds(t *testing.T) {
	miner := NewMiner(Config{Power: 2, Difficulty: 0.5, Interval: time.Hour}, event.NewMemoryBus())

	// 0.1 * 2 * 1 * (1/0.5) = 0.4, plus up to 5% jitter.
	for i := 0; i < 100; i++ {
		reward := miner.CalculateReward()
		assert.GreaterOrEqual(t, reward, 0.4)
		assert.Less(t, reward, 0.4*(1+RewardJitter))
	}
}

func TestCalculateReward_IntervalCapped(t *testing.T) {
	short := NewMiner(Config{Power: 1, Difficulty: 1, Interval: 2 * time.Hour}, event.NewMemoryBus())
	long := NewMiner(Config{Power: 1, Difficulty: 1, Interval: 10 * time.Hour}, event.NewMemoryBus())

	// Both sit at the 2 hour cap, so the deterministic part is equal.
	for i := 0; i < 20; i++ {
		assert.Less(t, long.CalculateReward(), 0.2*(1+RewardJitter))
		assert.GreaterOrEqual(t, short.CalculateReward(), 0.2)
	}
}

func TestCalculateReward_DifficultyFloored(t *testing.T) {
	miner := NewMiner(Config{Power: 1, Difficulty: 0.0001, Interval: time.Hour}, event.NewMemoryBus())

	// Floored to 0.1: 0.1 * 1 * 1 * 10 = 1.0 max base.
	for i := 0; i < 20; i++ {
		assert.Less(t, miner.CalculateReward(), 1.0*(1+RewardJitter))
	}
}

func TestStartMining_EmptyAddress(t *testing.T) {
	miner := NewMiner(Config{}, event.NewMemoryBus())
	assert.ErrorIs(t, miner.StartMining(context.Background(), ""), domain.ErrEmptyAddress)
	assert.False(t, miner.IsMining())
}

func TestStartMining_AlreadyRunning(t *testing.T) {
	miner := NewMiner(Config{Interval: time.Hour}, event.NewMemoryBus())
	require.NoError(t, miner.StartMining(context.Background(), "wallet-1"))
	defer miner.StopMining()

	assert.Error(t, miner.StartMining(context.Background(), "wallet-1"))
}

func TestMining_ProducesEvents(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	bus := event.NewMemoryBus()
	rewards := make(chan event.MiningCompletePayloadV1, 16)
	bus.Subscribe(event.MiningComplete, func(_ context.Context, ev event.Event) error {
		payload, err := event.DecodePayload[event.MiningCompletePayloadV1](ev.Payload)
		if err != nil {
			return err
		}
		rewards <- payload
		return nil
	})

	miner := NewMiner(Config{Power: 1, Difficulty: 1, Interval: 10 * time.Millisecond}, bus)
	require.NoError(t, miner.StartMining(context.Background(), "wallet-1"))

	var first event.MiningCompletePayloadV1
	select {
	case first = <-rewards:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for mining reward")
	}

	assert.Greater(t, first.Reward, 0.0)
	assert.NotEmpty(t, first.BlockHash)

	miner.StopMining()
	assert.False(t, miner.IsMining())
	assert.Greater(t, miner.TotalMined(), 0.0)

	checker.Check(2)
}

func TestStopMining_Idempotent(t *testing.T) {
	miner := NewMiner(Config{Interval: time.Hour}, event.NewMemoryBus())

	miner.StopMining() // never started

	require.NoError(t, miner.StartMining(context.Background(), "wallet-1"))
	miner.StopMining()
	miner.StopMining()
	assert.False(t, miner.IsMining())
}
