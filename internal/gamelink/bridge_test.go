package gamelink

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interverse/verse-go/internal/domain"
	"github.com/interverse/verse-go/internal/event"
)

type fakeRecorder struct {
	recordType string
	data       map[string]interface{}
	err        error
	calls      int
}

func (f *fakeRecorder) RecordTransaction(recordType string, data map[string]interface{}, done func(string, error)) error {
	f.calls++
	f.recordType = recordType
	f.data = data
	done("tx-1", f.err)
	return nil
}

// testSword is the game object shuttled around in these tests.
type testSword struct {
	Name   string
	Damage int
}

func registerSwordCodec(t *testing.T, b *Bridge) {
	t.Helper()
	err := b.Codecs().Register("Sword",
		func(obj interface{}) (map[string]string, error) {
			sword, ok := obj.(testSword)
			if !ok {
				return nil, domain.ErrInvalidInput
			}
			return map[string]string{
				"name":   sword.Name,
				"damage": strconv.Itoa(sword.Damage),
			}, nil
		},
		func(data map[string]string) (interface{}, error) {
			damage, err := strconv.Atoi(data["damage"])
			if err != nil {
				return nil, err
			}
			return testSword{Name: data["name"], Damage: damage}, nil
		})
	require.NoError(t, err)
}

func newTestBridge(t *testing.T) (*Bridge, *fakeRecorder, *event.MemoryBus) {
	t.Helper()
	recorder := &fakeRecorder{}
	bus := event.NewMemoryBus()
	bridge := NewBridge("game-alpha", recorder, bus)
	registerSwordCodec(t, bridge)
	return bridge, recorder, bus
}

func TestRegisterGameLink(t *testing.T) {
	bridge, recorder, bus := newTestBridge(t)

	established := make(chan event.GameLinkEstablishedPayloadV1, 1)
	bus.Subscribe(event.GameLinkEstablished, func(_ context.Context, ev event.Event) error {
		payload, err := event.DecodePayload[event.GameLinkEstablishedPayloadV1](ev.Payload)
		if err != nil {
			return err
		}
		established <- payload
		return nil
	})

	err := bridge.RegisterGameLink(domain.GameLinkConfig{
		TargetGameID:              "game-beta",
		AllowDirectObjectTransfer: true,
	})
	require.NoError(t, err)

	link, ok := bridge.Link("game-beta")
	require.True(t, ok)
	assert.True(t, link.AllowDirectObjectTransfer)

	assert.Equal(t, domain.RecordTypeGameLink, recorder.recordType)
	assert.Equal(t, "game-alpha", recorder.data["source_game_id"])

	payload := <-established
	assert.Equal(t, "game-beta", payload.TargetGameID)
}

func TestRegisterGameLink_RequiresTarget(t *testing.T) {
	bridge, recorder, _ := newTestBridge(t)

	err := bridge.RegisterGameLink(domain.GameLinkConfig{AllowDirectObjectTransfer: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, recorder.calls)
}

func TestTransferGameObject(t *testing.T) {
	bridge, recorder, bus := newTestBridge(t)

	transferred := make(chan event.ObjectTransferredPayloadV1, 1)
	bus.Subscribe(event.GameLinkObjectTransferred, func(_ context.Context, ev event.Event) error {
		payload, err := event.DecodePayload[event.ObjectTransferredPayloadV1](ev.Payload)
		if err != nil {
			return err
		}
		transferred <- payload
		return nil
	})

	require.NoError(t, bridge.RegisterGameLink(domain.GameLinkConfig{
		TargetGameID:              "game-beta",
		AllowDirectObjectTransfer: true,
		ClassMappings:             map[string]string{"Sword": "EnergyBlade"},
	}))

	var objectID string
	err := bridge.TransferGameObject("game-beta", "Sword",
		testSword{Name: "Flamebrand", Damage: 15}, "player-a", "player-b",
		func(id string, err error) {
			require.NoError(t, err)
			objectID = id
		})
	require.NoError(t, err)
	require.NotEmpty(t, objectID)

	// The record carries the target game's class tag and the encoded fields.
	assert.Equal(t, domain.RecordTypeGameObjectTransfer, recorder.recordType)
	assert.Equal(t, "EnergyBlade", recorder.data["object_class"])
	objectData, ok := recorder.data["object_data"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "Flamebrand", objectData["name"])

	payload := <-transferred
	assert.Equal(t, objectID, payload.ObjectID)
	assert.Equal(t, "player-b", payload.TargetPlayerID)
	assert.True(t, payload.Success)
}

func TestTransferGameObject_Guards(t *testing.T) {
	bridge, _, _ := newTestBridge(t)

	// No link registered.
	err := bridge.TransferGameObject("game-beta", "Sword", testSword{}, "a", "b",
		func(string, error) {})
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)

	// Link forbids direct transfer.
	require.NoError(t, bridge.RegisterGameLink(domain.GameLinkConfig{TargetGameID: "game-beta"}))
	err = bridge.TransferGameObject("game-beta", "Sword", testSword{}, "a", "b",
		func(string, error) {})
	assert.ErrorIs(t, err, domain.ErrTransferNotAllowed)

	// Unregistered object class.
	require.NoError(t, bridge.RegisterGameLink(domain.GameLinkConfig{
		TargetGameID:              "game-beta",
		AllowDirectObjectTransfer: true,
	}))
	err = bridge.TransferGameObject("game-beta", "Potion", struct{}{}, "a", "b",
		func(string, error) {})
	assert.ErrorIs(t, err, domain.ErrCodecNotFound)
}

func TestTransferGameObject_RecordFailure(t *testing.T) {
	bridge, recorder, _ := newTestBridge(t)
	recorder.err = errors.New("node down")

	require.NoError(t, bridge.RegisterGameLink(domain.GameLinkConfig{
		TargetGameID:              "game-beta",
		AllowDirectObjectTransfer: true,
	}))

	var cbErr error
	err := bridge.TransferGameObject("game-beta", "Sword", testSword{Name: "x"}, "a", "b",
		func(_ string, err error) { cbErr = err })
	require.NoError(t, err)
	assert.Error(t, cbErr)
}

func TestSpawnReceivedObject(t *testing.T) {
	bridge, _, bus := newTestBridge(t)

	received := make(chan event.ObjectReceivedPayloadV1, 1)
	bus.Subscribe(event.GameLinkObjectReceived, func(_ context.Context, ev event.Event) error {
		payload, err := event.DecodePayload[event.ObjectReceivedPayloadV1](ev.Payload)
		if err != nil {
			return err
		}
		received <- payload
		return nil
	})

	obj, err := bridge.SpawnReceivedObject(domain.TransferredObjectData{
		ObjectID:     "obj-1",
		SourceGameID: "game-beta",
		ObjectClass:  "Sword",
		ObjectData:   map[string]string{"name": "Vorpal", "damage": "21"},
		Valid:        true,
	})
	require.NoError(t, err)

	sword, ok := obj.(testSword)
	require.True(t, ok)
	assert.Equal(t, "Vorpal", sword.Name)
	assert.Equal(t, 21, sword.Damage)

	payload := <-received
	assert.Equal(t, "obj-1", payload.ObjectID)
	assert.Equal(t, "Sword", payload.TypeTag)
}

func TestSpawnReceivedObject_Rejections(t *testing.T) {
	bridge, _, _ := newTestBridge(t)

	// Invalid transfer data.
	_, err := bridge.SpawnReceivedObject(domain.TransferredObjectData{ObjectClass: "Sword"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Unknown class.
	_, err = bridge.SpawnReceivedObject(domain.TransferredObjectData{
		ObjectClass: "Potion", Valid: true,
	})
	assert.ErrorIs(t, err, domain.ErrCodecNotFound)

	// Decode failure yields no object at all.
	obj, err := bridge.SpawnReceivedObject(domain.TransferredObjectData{
		ObjectClass: "Sword",
		ObjectData:  map[string]string{"name": "Broken", "damage": "not-a-number"},
		Valid:       true,
	})
	assert.Error(t, err)
	assert.Nil(t, obj)
}

func TestCodecRegistry_Register(t *testing.T) {
	registry := NewCodecRegistry()

	assert.ErrorIs(t, registry.Register("", nil, nil), domain.ErrInvalidInput)
	assert.False(t, registry.Has("Sword"))

	err := registry.Register("Sword",
		func(interface{}) (map[string]string, error) { return nil, nil },
		func(map[string]string) (interface{}, error) { return nil, nil })
	require.NoError(t, err)
	assert.True(t, registry.Has("Sword"))
}
