package chain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/interverse/verse-go/internal/domain"
	"github.com/interverse/verse-go/internal/event"
	"github.com/interverse/verse-go/internal/logger"
	"github.com/interverse/verse-go/internal/metrics"
	"github.com/interverse/verse-go/internal/validation"
)

// dataEnvelope is the node's standard response wrapper.
type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// endpointPath expands an endpoint constant into a full request URL.
// Game-level endpoints get the API prefix; ledger-level endpoints start
// with a slash and bypass it. Prefixing is idempotent so constants may
// carry the prefix already.
func (c *Client) endpointPath(endpoint string) string {
	base := strings.TrimRight(c.cfg.NodeURL, "/")

	if strings.HasPrefix(endpoint, "/") {
		return base + endpoint
	}
	if !strings.HasPrefix(endpoint, EndpointPrefix) {
		endpoint = EndpointPrefix + endpoint
	}
	return base + "/" + endpoint
}

// do issues an HTTP request off the dispatch goroutine and posts the raw
// response body back onto it through done. The endpoint label (not the
// expanded path) feeds the request metrics so cardinality stays bounded.
func (c *Client) do(method, endpoint, path string, body interface{}, done func([]byte, error)) {
	go func() {
		raw, err := c.roundTrip(method, endpoint, path, body)
		c.post(func() { done(raw, err) })
	}()
}

func (c *Client) roundTrip(method, endpoint, path string, body interface{}) ([]byte, error) {
	requestID := logger.GenerateRequestID()

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set(HeaderAPIKey, c.cfg.APIKey)
	if body != nil {
		req.Header.Set(HeaderContentType, ContentTypeJSON)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ChainRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ChainRequestsTotal.WithLabelValues(endpoint, metrics.StatusError).Inc()
		logger.Warn(LogMsgRequestFailed, "endpoint", endpoint, logger.AttrKeyRequestID, requestID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ChainRequestsTotal.WithLabelValues(endpoint, metrics.StatusError).Inc()
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.ChainRequestsTotal.WithLabelValues(endpoint, metrics.StatusError).Inc()
		logger.Warn(LogMsgRequestFailed, "endpoint", endpoint, logger.AttrKeyRequestID, requestID,
			"status_code", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrRequestFailed, resp.StatusCode)
	}

	metrics.ChainRequestsTotal.WithLabelValues(endpoint, metrics.StatusSuccess).Inc()
	return raw, nil
}

// unwrapData extracts the data field from the standard response envelope.
func unwrapData(raw []byte) (json.RawMessage, error) {
	var envelope dataEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		logger.Warn(LogMsgInvalidResponse, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrMissingData, err)
	}
	if envelope.Data == nil {
		logger.Warn(LogMsgMissingData)
		return nil, domain.ErrMissingData
	}
	return envelope.Data, nil
}

// CreateWallet asks the node for a fresh wallet. The callback runs on the
// client's dispatch goroutine once the node answers.
func (c *Client) CreateWallet(done func(domain.Wallet, error)) error {
	if err := c.requireConfig(); err != nil {
		return err
	}

	c.do(http.MethodPost, EndpointWalletCreate, c.endpointPath(EndpointWalletCreate), map[string]string{
		"game_id": c.cfg.GameID,
	}, func(raw []byte, err error) {
		if err != nil {
			done(domain.Wallet{}, err)
			return
		}

		data, err := unwrapData(raw)
		if err != nil {
			done(domain.Wallet{}, err)
			return
		}

		var wallet domain.Wallet
		if err := json.Unmarshal(data, &wallet); err != nil {
			done(domain.Wallet{}, fmt.Errorf("%w: %v", domain.ErrMissingData, err))
			return
		}
		done(wallet, nil)
	})
	return nil
}

// GetBalance fetches the balance of a wallet address. A successful fetch
// also publishes a balance event so cached views refresh without polling.
func (c *Client) GetBalance(address string, done func(float64, error)) error {
	if err := c.requireConfig(); err != nil {
		return err
	}
	if address == "" {
		return domain.ErrEmptyAddress
	}

	endpoint := fmt.Sprintf(EndpointWalletBalance, address)
	c.do(http.MethodGet, EndpointWalletBalance, c.endpointPath(endpoint), nil, func(raw []byte, err error) {
		if err != nil {
			done(0, err)
			return
		}

		data, err := unwrapData(raw)
		if err != nil {
			done(0, err)
			return
		}

		var payload struct {
			Balance float64 `json:"balance"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			done(0, fmt.Errorf("%w: %v", domain.ErrMissingData, err))
			return
		}

		c.publish(event.NewBalanceUpdatedEvent(address, payload.Balance))
		done(payload.Balance, nil)
	})
	return nil
}

// mintRequest is the wire body for asset minting. The property fields are
// flattened alongside the ownership fields, matching the node's schema.
type mintRequest struct {
	domain.AssetProperties
	Owner            string            `json:"owner"`
	GameID           string            `json:"game_id"`
	CustomProperties map[string]string `json:"custom_properties,omitempty"`
}

// MintGameAsset mints an asset for owner. Properties are validated up front
// so malformed mints fail synchronously and never reach the node; the minted
// asset arrives through the callback and as an asset event.
func (c *Client) MintGameAsset(props domain.AssetProperties, owner string, custom map[string]string, done func(domain.Asset, error)) error {
	if err := c.requireConfig(); err != nil {
		return err
	}
	if owner == "" {
		return domain.ErrEmptyAddress
	}
	if !domain.ValidateAssetProperties(props) {
		logger.Warn(LogMsgMintRejected, "model_id", props.ModelIdentifier, "category", props.Category)
		return domain.ErrInvalidProperties
	}
	if err := validation.Struct(props); err != nil {
		logger.Warn(LogMsgMintRejected, "fields", validation.FormatStructError(err))
		return fmt.Errorf("%w: %v", domain.ErrInvalidProperties, err)
	}

	body := mintRequest{
		AssetProperties:  props,
		Owner:            owner,
		GameID:           c.cfg.GameID,
		CustomProperties: custom,
	}

	c.do(http.MethodPost, EndpointAssetsMint, c.endpointPath(EndpointAssetsMint), body, func(raw []byte, err error) {
		if err != nil {
			done(domain.Asset{}, err)
			return
		}

		data, err := unwrapData(raw)
		if err != nil {
			done(domain.Asset{}, err)
			return
		}

		var asset domain.Asset
		if err := json.Unmarshal(data, &asset); err != nil {
			done(domain.Asset{}, fmt.Errorf("%w: %v", domain.ErrMissingData, err))
			return
		}

		metrics.AssetsMinted.WithLabelValues(string(asset.Category)).Inc()
		c.publish(event.NewAssetMintedEvent(asset, props.OwnerGlobalID))
		done(asset, nil)
	})
	return nil
}

// TransferAsset moves an asset between wallet addresses. The outcome also
// surfaces as a transfer event keyed by the target player.
func (c *Client) TransferAsset(assetID, fromAddress, toAddress, targetPlayerID string, done func(bool, error)) error {
	if err := c.requireConfig(); err != nil {
		return err
	}
	if assetID == "" {
		return domain.ErrEmptyAssetID
	}
	if fromAddress == "" || toAddress == "" {
		return domain.ErrEmptyAddress
	}

	body := map[string]string{
		"asset_id":     assetID,
		"from_address": fromAddress,
		"to_address":   toAddress,
		"game_id":      c.cfg.GameID,
	}

	c.do(http.MethodPost, EndpointAssetsTransfer, c.endpointPath(EndpointAssetsTransfer), body, func(raw []byte, err error) {
		if err != nil {
			metrics.AssetsTransferred.WithLabelValues(metrics.StatusError).Inc()
			done(false, err)
			return
		}

		// A response without the data envelope is dropped without an
		// event, same as any other protocol error.
		data, err := unwrapData(raw)
		if err != nil {
			metrics.AssetsTransferred.WithLabelValues(metrics.StatusError).Inc()
			done(false, err)
			return
		}

		var result struct {
			AssetID string `json:"asset_id"`
			Success bool   `json:"success"`
		}
		if err := json.Unmarshal(data, &result); err != nil {
			metrics.AssetsTransferred.WithLabelValues(metrics.StatusError).Inc()
			done(false, fmt.Errorf("%w: %v", domain.ErrMissingData, err))
			return
		}

		// Some node versions report success on the envelope instead of
		// inside data.
		var envelope struct {
			Success bool `json:"success"`
		}
		_ = json.Unmarshal(raw, &envelope)
		ok := result.Success || envelope.Success

		transferred := result.AssetID
		if transferred == "" {
			transferred = assetID
		}

		status := metrics.StatusError
		if ok {
			status = metrics.StatusSuccess
		}
		metrics.AssetsTransferred.WithLabelValues(status).Inc()
		c.publish(event.NewTransferCompleteEvent(transferred, targetPlayerID, ok))
		done(ok, nil)
	})
	return nil
}

// GetPlayerAssets lists the assets owned by a player id.
func (c *Client) GetPlayerAssets(playerID string, done func([]domain.Asset, error)) error {
	if err := c.requireConfig(); err != nil {
		return err
	}
	if playerID == "" {
		return domain.ErrEmptyAddress
	}

	endpoint := fmt.Sprintf(EndpointAssetsPlayer, playerID)
	c.do(http.MethodGet, EndpointAssetsPlayer, c.endpointPath(endpoint), nil, func(raw []byte, err error) {
		if err != nil {
			done(nil, err)
			return
		}

		data, err := unwrapData(raw)
		if err != nil {
			done(nil, err)
			return
		}

		var payload struct {
			Assets []domain.Asset `json:"assets"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			done(nil, fmt.Errorf("%w: %v", domain.ErrMissingData, err))
			return
		}
		done(payload.Assets, nil)
	})
	return nil
}

// RecordTransaction writes an arbitrary typed record to the ledger. Cross-game
// transfers, link registrations and player registrations all go through here.
func (c *Client) RecordTransaction(recordType string, data map[string]interface{}, done func(string, error)) error {
	if err := c.requireConfig(); err != nil {
		return err
	}
	if recordType == "" {
		return domain.ErrInvalidInput
	}

	body := map[string]interface{}{
		"type":    recordType,
		"game_id": c.cfg.GameID,
		"data":    data,
	}

	c.do(http.MethodPost, EndpointTransactionsRecord, c.endpointPath(EndpointTransactionsRecord), body, func(raw []byte, err error) {
		if err != nil {
			done("", err)
			return
		}

		envData, err := unwrapData(raw)
		if err != nil {
			done("", err)
			return
		}

		var payload struct {
			TransactionID string `json:"transaction_id"`
		}
		if err := json.Unmarshal(envData, &payload); err != nil {
			done("", fmt.Errorf("%w: %v", domain.ErrMissingData, err))
			return
		}
		done(payload.TransactionID, nil)
	})
	return nil
}

// GetLedgerState fetches the raw chain state from the node. The body is
// passed through untyped; the node's chain dump has no stable schema.
func (c *Client) GetLedgerState(done func(json.RawMessage, error)) error {
	if err := c.requireConfig(); err != nil {
		return err
	}

	c.do(http.MethodGet, EndpointChain, c.endpointPath(EndpointChain), nil, func(raw []byte, err error) {
		if err != nil {
			done(nil, err)
			return
		}
		done(json.RawMessage(raw), nil)
	})
	return nil
}

// GetTransactionHistory lists the ledger records involving an address. Each
// entry is an opaque serialized transaction string; the node owns the record
// format. A malformed history body yields an empty slice rather than an
// error, and non-string array entries are skipped.
func (c *Client) GetTransactionHistory(address string, done func([]string, error)) error {
	if err := c.requireConfig(); err != nil {
		return err
	}
	if address == "" {
		return domain.ErrEmptyAddress
	}

	endpoint := fmt.Sprintf(EndpointTransactionsHistory, address)
	c.do(http.MethodGet, EndpointTransactionsHistory, c.endpointPath(endpoint), nil, func(raw []byte, err error) {
		if err != nil {
			done(nil, err)
			return
		}

		var payload struct {
			Transactions []json.RawMessage `json:"transactions"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			logger.Warn(LogMsgInvalidResponse, "endpoint", EndpointTransactionsHistory, "error", err)
			done([]string{}, nil)
			return
		}

		history := make([]string, 0, len(payload.Transactions))
		for _, entry := range payload.Transactions {
			var tx string
			if json.Unmarshal(entry, &tx) == nil {
				history = append(history, tx)
			}
		}
		done(history, nil)
	})
	return nil
}
