package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Configuration errors
	ErrMsgMissingConfig = "missing node url, game id or api key"

	// Asset errors
	ErrMsgInvalidProperties = "invalid asset properties"
	ErrMsgEmptyAddress      = "address must not be empty"
	ErrMsgEmptyAssetID      = "asset id must not be empty"
	ErrMsgAssetNotFound     = "asset not found"

	// Chain errors
	ErrMsgNotConnected  = "push channel not connected"
	ErrMsgMissingData   = "response missing data field"
	ErrMsgRequestFailed = "request failed"
	ErrMsgClientStopped = "client stopped"
	ErrMsgEmptyPayload  = "payload must not be empty"

	// Game link errors
	ErrMsgLinkNotFound       = "game link not registered"
	ErrMsgTransferNotAllowed = "link does not allow direct transfer"
	ErrMsgCodecNotFound      = "no codec registered for type"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers.
// Wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
var (
	// Configuration errors
	ErrMissingConfig = errors.New(ErrMsgMissingConfig)

	// Asset errors
	ErrInvalidProperties = errors.New(ErrMsgInvalidProperties)
	ErrEmptyAddress      = errors.New(ErrMsgEmptyAddress)
	ErrEmptyAssetID      = errors.New(ErrMsgEmptyAssetID)
	ErrAssetNotFound     = errors.New(ErrMsgAssetNotFound)

	// Chain errors
	ErrNotConnected  = errors.New(ErrMsgNotConnected)
	ErrMissingData   = errors.New(ErrMsgMissingData)
	ErrRequestFailed = errors.New(ErrMsgRequestFailed)
	ErrClientStopped = errors.New(ErrMsgClientStopped)
	ErrEmptyPayload  = errors.New(ErrMsgEmptyPayload)

	// Game link errors
	ErrLinkNotFound       = errors.New(ErrMsgLinkNotFound)
	ErrTransferNotAllowed = errors.New(ErrMsgTransferNotAllowed)
	ErrCodecNotFound      = errors.New(ErrMsgCodecNotFound)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
