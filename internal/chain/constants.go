package chain

import "time"

// Default configuration values
const (
	// DefaultReconnectDelay is the delay before re-dialing after an unclean close
	DefaultReconnectDelay = 5 * time.Second

	// DefaultRequestTimeout bounds every REST call so a dead node cannot hang
	// a request forever
	DefaultRequestTimeout = 30 * time.Second

	// DispatchQueueSize is the buffer of the owner-goroutine task queue
	DispatchQueueSize = 256

	// WriteTimeout is the timeout for writing push channel frames
	WriteTimeout = 10 * time.Second

	// ReadBufferSize is the WebSocket read buffer size
	ReadBufferSize = 4096

	// WriteBufferSize is the WebSocket write buffer size
	WriteBufferSize = 4096
)

// EndpointPrefix namespaces every REST path unless the path opts out.
// Centralized here so the remote API family can change without touching
// call sites.
const EndpointPrefix = "verse/"

// REST endpoints (prefixed with EndpointPrefix unless noted)
const (
	EndpointWalletCreate       = "wallet/create"
	EndpointWalletBalance      = "wallet/%s/balance"
	EndpointAssetsMint         = "assets/mint"
	EndpointAssetsTransfer     = "assets/transfer"
	EndpointAssetsPlayer       = "assets/player/%s"
	EndpointTransactionsRecord = "transactions/record"

	// Unprefixed, ledger-level endpoints
	EndpointChain               = "/chain"
	EndpointTransactionsHistory = "/transactions/%s"
)

// Push channel protocol
const (
	// PushSubprotocol is the WebSocket sub-protocol identifier
	PushSubprotocol = "verse-protocol"

	// PushPath is the upgrade path on the node, with the API key as query param
	PushPath = "/ws?api_key=%s"
)

// Inbound frame type values; unknown types are ignored for forward compatibility
const (
	FrameTypeHandshake        = "handshake"
	FrameTypeAssetUpdate      = "asset_update"
	FrameTypeBalanceUpdate    = "balance_update"
	FrameTypeTransferComplete = "transfer_complete"
)

// Request headers
const (
	HeaderAPIKey      = "X-API-Key"
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// ConnectionStatus return values
const (
	StatusNotInitialized = "Not Initialized"
	StatusConnected      = "Connected"
	StatusDisconnected   = "Disconnected"
)

// Log messages
const (
	LogMsgConnecting       = "Connecting to ledger node push channel"
	LogMsgConnected        = "Push channel connected"
	LogMsgDisconnected     = "Push channel disconnected"
	LogMsgConnectError     = "Push channel connection error"
	LogMsgUncleanClose     = "Push channel closed uncleanly, scheduling reconnect"
	LogMsgReconnecting     = "Reconnecting push channel"
	LogMsgHandshakeSent    = "Sent push channel handshake"
	LogMsgHandshakeFailed  = "Failed to send push channel handshake"
	LogMsgFrameIgnored     = "Ignoring push frame with unknown type"
	LogMsgFrameMalformed   = "Dropping malformed push frame"
	LogMsgSendNotConnected = "Cannot send stream message, push channel not connected"
	LogMsgSendFailed       = "Push channel write failed"
	LogMsgRequestFailed    = "Ledger request failed"
	LogMsgMissingData      = "Response missing data field"
	LogMsgInvalidResponse  = "Failed to decode ledger response"
	LogMsgClientStopped    = "Chain client stopped"
	LogMsgMintRejected     = "Rejected mint request"
	LogMsgEventPublish     = "Event publish reported handler errors"
)
