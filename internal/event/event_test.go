package event

import (
	"context"
	"errors"
	"testing"

	"github.com/interverse/verse-go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	handled := false

	bus.Subscribe(ChainAssetMinted, func(ctx context.Context, ev Event) error {
		payload, err := DecodePayload[AssetMintedPayloadV1](ev.Payload)
		if err != nil {
			t.Fatalf("DecodePayload returned error: %v", err)
		}
		if payload.Asset.AssetId != "A1" {
			t.Errorf("Expected asset id A1, got %s", payload.Asset.AssetId)
		}
		if payload.OwnerGlobalID != "player-1" {
			t.Errorf("Expected owner player-1, got %s", payload.OwnerGlobalID)
		}
		handled = true
		return nil
	})

	ev := NewAssetMintedEvent(domain.Asset{AssetId: "A1", Owner: "0xOwner"}, "player-1")
	if err := bus.Publish(context.Background(), ev); err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if !handled {
		t.Error("Handler was not called")
	}
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0

	handler := func(ctx context.Context, ev Event) error {
		count++
		return nil
	}

	bus.Subscribe(ChainBalanceUpdated, handler)
	bus.Subscribe(ChainBalanceUpdated, handler)

	err := bus.Publish(context.Background(), NewBalanceUpdatedEvent("0xabc", 12.5))
	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if count != 2 {
		t.Errorf("Expected 2 handlers to be called, got %d", count)
	}
}

func TestMemoryBus_PublishNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	if err := bus.Publish(context.Background(), NewMiningCompleteEvent(0.1, "hash")); err != nil {
		t.Errorf("Publish with no subscribers returned error: %v", err)
	}
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()

	bus.Subscribe(ChainTransferComplete, func(ctx context.Context, ev Event) error {
		return errors.New("handler error")
	})

	err := bus.Publish(context.Background(), NewTransferCompleteEvent("A1", "player-1", true))
	if err == nil {
		t.Error("Expected error from Publish, got nil")
	}
}

func TestDecodePayload_JSONFallback(t *testing.T) {
	// Simulates a payload replayed from a dead-letter file
	raw := map[string]interface{}{
		"asset_id": "A2",
		"success":  true,
	}

	payload, err := DecodePayload[TransferCompletePayloadV1](raw)
	if err != nil {
		t.Fatalf("DecodePayload returned error: %v", err)
	}

	if payload.AssetID != "A2" || !payload.Success {
		t.Errorf("Unexpected payload: %+v", payload)
	}
}
