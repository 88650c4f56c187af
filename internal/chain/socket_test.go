package chain

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interverse/verse-go/internal/domain"
	"github.com/interverse/verse-go/internal/event"
	"github.com/interverse/verse-go/internal/ledgertest"
)

func TestConnect_SendsHandshake(t *testing.T) {
	node := ledgertest.NewNode(testAPIKey)
	defer node.Close()
	client, bus := newTestClient(t, node)
	events := collectEvents(bus, event.ChainConnected)

	require.NoError(t, client.Connect())
	require.Eventually(t, client.IsConnected, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, StatusConnected, client.ConnectionStatus())

	hs, err := node.WaitForHandshake(2 * time.Second)
	require.NoError(t, err)

	var frame struct {
		Type   string `json:"type"`
		GameID string `json:"game_id"`
	}
	require.NoError(t, json.Unmarshal(hs, &frame))
	assert.Equal(t, FrameTypeHandshake, frame.Type)
	assert.Equal(t, "game-alpha", frame.GameID)

	ev := waitEvent(t, events)
	payload, err := event.DecodePayload[event.ConnectionChangedPayloadV1](ev.Payload)
	require.NoError(t, err)
	assert.True(t, payload.Connected)
}

func TestConnect_WhileConnectedIsNoop(t *testing.T) {
	node := ledgertest.NewNode(testAPIKey)
	defer node.Close()
	client, _ := newTestClient(t, node)

	require.NoError(t, client.Connect())
	require.Eventually(t, client.IsConnected, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, client.Connect())
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, node.ConnCount())
}

func TestPushFrames_PublishEvents(t *testing.T) {
	node := ledgertest.NewNode(testAPIKey)
	defer node.Close()
	client, bus := newTestClient(t, node)

	minted := collectEvents(bus, event.ChainAssetMinted)
	balances := collectEvents(bus, event.ChainBalanceUpdated)
	transfers := collectEvents(bus, event.ChainTransferComplete)

	require.NoError(t, client.Connect())
	require.Eventually(t, client.IsConnected, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, node.PushAssetUpdate(domain.Asset{
		AssetId: "asset-77", Owner: "wallet-3", OwnerGlobalID: "global-3",
		Category: domain.CategoryPet,
	}))
	ev := waitEvent(t, minted)
	mintPayload, err := event.DecodePayload[event.AssetMintedPayloadV1](ev.Payload)
	require.NoError(t, err)
	assert.Equal(t, "asset-77", mintPayload.Asset.AssetId)
	assert.Equal(t, "global-3", mintPayload.OwnerGlobalID)

	require.NoError(t, node.Push(FrameTypeBalanceUpdate, map[string]interface{}{
		"address": "wallet-3", "balance": 9.25,
	}))
	ev = waitEvent(t, balances)
	balancePayload, err := event.DecodePayload[event.BalanceUpdatedPayloadV1](ev.Payload)
	require.NoError(t, err)
	assert.Equal(t, 9.25, balancePayload.Balance)

	require.NoError(t, node.Push(FrameTypeTransferComplete, map[string]interface{}{
		"asset_id": "asset-77", "player_id": "player-3", "success": true,
	}))
	ev = waitEvent(t, transfers)
	transferPayload, err := event.DecodePayload[event.TransferCompletePayloadV1](ev.Payload)
	require.NoError(t, err)
	assert.True(t, transferPayload.Success)
}

func TestPushAssetUpdate_WireFormat(t *testing.T) {
	node := ledgertest.NewNode(testAPIKey)
	defer node.Close()
	client, bus := newTestClient(t, node)
	minted := collectEvents(bus, event.ChainAssetMinted)

	require.NoError(t, client.Connect())
	require.Eventually(t, client.IsConnected, 2*time.Second, 10*time.Millisecond)

	// The asset record rides under a top-level asset key, not under data.
	frame := `{"type":"asset_update","asset":{"asset_id":"A1","owner":"wallet-1","owner_global_id":"global-1","category":"WEAPON","rarity":"RARE"}}`
	require.NoError(t, node.PushRaw([]byte(frame)))

	ev := waitEvent(t, minted)
	payload, err := event.DecodePayload[event.AssetMintedPayloadV1](ev.Payload)
	require.NoError(t, err)
	assert.Equal(t, "A1", payload.Asset.AssetId)
	assert.Equal(t, "global-1", payload.OwnerGlobalID)
	assert.Equal(t, domain.CategoryWeapon, payload.Asset.Category)
}

func TestPushFrames_UnknownAndMalformedIgnored(t *testing.T) {
	node := ledgertest.NewNode(testAPIKey)
	defer node.Close()
	client, _ := newTestClient(t, node)

	require.NoError(t, client.Connect())
	require.Eventually(t, client.IsConnected, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, node.Push("future_frame_type", map[string]string{"x": "y"}))
	require.NoError(t, node.PushRaw([]byte("not json at all")))

	// The connection must survive both.
	time.Sleep(100 * time.Millisecond)
	assert.True(t, client.IsConnected())
}

func TestDisconnect_Clean_NoReconnect(t *testing.T) {
	node := ledgertest.NewNode(testAPIKey)
	defer node.Close()
	client, bus := newTestClient(t, node)
	events := collectEvents(bus, event.ChainConnected)

	require.NoError(t, client.Connect())
	require.Eventually(t, client.IsConnected, 2*time.Second, 10*time.Millisecond)
	waitEvent(t, events) // connected

	client.Disconnect()
	ev := waitEvent(t, events)
	payload, err := event.DecodePayload[event.ConnectionChangedPayloadV1](ev.Payload)
	require.NoError(t, err)
	assert.False(t, payload.Connected)
	assert.Equal(t, StatusDisconnected, client.ConnectionStatus())

	// Well past the reconnect delay the client must still be down.
	time.Sleep(4 * client.cfg.ReconnectDelay)
	assert.False(t, client.IsConnected())
}

func TestUncleanClose_SchedulesReconnect(t *testing.T) {
	node := ledgertest.NewNode(testAPIKey)
	defer node.Close()
	client, _ := newTestClient(t, node)

	require.NoError(t, client.Connect())
	require.Eventually(t, client.IsConnected, 2*time.Second, 10*time.Millisecond)
	_, err := node.WaitForHandshake(2 * time.Second)
	require.NoError(t, err)

	node.CloseConns()
	require.Eventually(t, func() bool { return !client.IsConnected() },
		2*time.Second, 10*time.Millisecond)

	// After the delay the client dials again on its own.
	require.Eventually(t, client.IsConnected, 2*time.Second, 10*time.Millisecond)
	_, err = node.WaitForHandshake(2 * time.Second)
	require.NoError(t, err)
}

func TestReconnect_ForcesNewConnection(t *testing.T) {
	node := ledgertest.NewNode(testAPIKey)
	defer node.Close()
	client, _ := newTestClient(t, node)

	require.NoError(t, client.Connect())
	require.Eventually(t, client.IsConnected, 2*time.Second, 10*time.Millisecond)
	_, err := node.WaitForHandshake(2 * time.Second)
	require.NoError(t, err)

	require.NoError(t, client.Reconnect())

	// A second handshake proves a fresh dial happened.
	_, err = node.WaitForHandshake(2 * time.Second)
	require.NoError(t, err)
	require.Eventually(t, client.IsConnected, 2*time.Second, 10*time.Millisecond)
}

func TestReconnect_DuringPendingDelay(t *testing.T) {
	node := ledgertest.NewNode(testAPIKey)
	defer node.Close()

	bus := event.NewMemoryBus()
	client := NewClient(Config{
		NodeURL:        node.URL(),
		GameID:         "game-alpha",
		APIKey:         testAPIKey,
		ReconnectDelay: 300 * time.Millisecond,
		RequestTimeout: 2 * time.Second,
	}, bus)
	client.Start(context.Background())
	t.Cleanup(client.Stop)

	require.NoError(t, client.Connect())
	require.Eventually(t, client.IsConnected, 2*time.Second, 10*time.Millisecond)
	_, err := node.WaitForHandshake(2 * time.Second)
	require.NoError(t, err)

	node.CloseConns()
	require.Eventually(t, func() bool {
		return client.currentState() == StateReconnectPending
	}, 2*time.Second, 10*time.Millisecond)

	// A manual reconnect during the pending delay connects immediately
	// and cancels the scheduled attempt.
	require.NoError(t, client.Reconnect())
	_, err = node.WaitForHandshake(2 * time.Second)
	require.NoError(t, err)
	require.Eventually(t, client.IsConnected, 2*time.Second, 10*time.Millisecond)

	// Well past the original delay: still exactly one connection, no
	// second dial from the cancelled timer.
	time.Sleep(2 * client.cfg.ReconnectDelay)
	assert.Equal(t, 1, node.ConnCount())
	_, err = node.WaitForHandshake(100 * time.Millisecond)
	assert.Error(t, err, "no extra handshake expected")
}

func TestSendStreamMessage(t *testing.T) {
	node := ledgertest.NewNode(testAPIKey)
	defer node.Close()
	client, _ := newTestClient(t, node)

	err := client.SendStreamMessage(map[string]string{"type": "ping"})
	assert.ErrorIs(t, err, domain.ErrNotConnected)

	require.NoError(t, client.Connect())
	require.Eventually(t, client.IsConnected, 2*time.Second, 10*time.Millisecond)
	_, err = node.WaitForHandshake(2 * time.Second)
	require.NoError(t, err)

	require.NoError(t, client.SendStreamMessage(map[string]string{"type": "ping"}))

	raw, err := node.WaitForHandshake(2 * time.Second)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"ping"`)

	assert.ErrorIs(t, client.SendStreamMessage(nil), domain.ErrEmptyPayload)
}

func TestStop_DropsPendingOperations(t *testing.T) {
	node := ledgertest.NewNode(testAPIKey)
	client, _ := newTestClient(t, node)

	require.NoError(t, client.Connect())
	require.Eventually(t, client.IsConnected, 2*time.Second, 10*time.Millisecond)

	client.Stop()
	node.Close()

	assert.ErrorIs(t, client.Connect(), domain.ErrClientStopped)
	assert.ErrorIs(t, client.Reconnect(), domain.ErrClientStopped)
}
