// Package ledgertest provides an in-process ledger node for tests: a chi
// router serving the REST API plus a gorilla WebSocket push endpoint. Tests
// point a chain client at Node.URL() and drive both directions of the
// protocol without a real node.
package ledgertest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// RecordedRequest captures one REST call the node received.
type RecordedRequest struct {
	Method string
	Path   string
	APIKey string
	Body   []byte
}

// Node is the fake ledger node.
type Node struct {
	server   *httptest.Server
	upgrader websocket.Upgrader
	apiKey   string

	mu           sync.Mutex
	requests     []RecordedRequest
	conns        []*websocket.Conn
	failStatus   int
	transferBody json.RawMessage
	balances     map[string]float64
	playerAssets map[string][]json.RawMessage
	history      map[string]json.RawMessage
	walletSeq    int
	assetSeq     int
	handshakes   chan json.RawMessage
}

// NewNode starts a node that accepts the given API key.
func NewNode(apiKey string) *Node {
	n := &Node{
		apiKey: apiKey,
		upgrader: websocket.Upgrader{
			Subprotocols: []string{"verse-protocol"},
		},
		balances:     make(map[string]float64),
		playerAssets: make(map[string][]json.RawMessage),
		history:      make(map[string]json.RawMessage),
		handshakes:   make(chan json.RawMessage, 8),
	}

	r := chi.NewRouter()
	r.Use(n.record)

	r.Route("/verse", func(r chi.Router) {
		r.Post("/wallet/create", n.handleWalletCreate)
		r.Get("/wallet/{address}/balance", n.handleBalance)
		r.Post("/assets/mint", n.handleMint)
		r.Post("/assets/transfer", n.handleTransfer)
		r.Get("/assets/player/{playerID}", n.handlePlayerAssets)
		r.Post("/transactions/record", n.handleRecord)
	})
	r.Get("/chain", n.handleChain)
	r.Get("/transactions/{address}", n.handleHistory)
	r.Get("/ws", n.handleWS)

	n.server = httptest.NewServer(r)
	return n
}

// URL is the node's base URL.
func (n *Node) URL() string { return n.server.URL }

// Close shuts the node down, force-closing any push connections.
func (n *Node) Close() {
	n.CloseConns()
	n.server.Close()
}

// FailWith makes every subsequent REST call answer with the given status.
// Pass 0 to restore normal behavior.
func (n *Node) FailWith(status int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failStatus = status
}

// SetTransferResponse overrides the transfer endpoint's response body. The
// body is served verbatim, so tests can feed envelope-less or failed
// responses. Pass "" to restore the default.
func (n *Node) SetTransferResponse(body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if body == "" {
		n.transferBody = nil
		return
	}
	n.transferBody = json.RawMessage(body)
}

// SetBalance seeds a wallet balance.
func (n *Node) SetBalance(address string, balance float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.balances[address] = balance
}

// SetPlayerAssets seeds the asset list returned for a player id.
func (n *Node) SetPlayerAssets(playerID string, assets interface{}) {
	encoded, _ := json.Marshal(assets)
	var raw []json.RawMessage
	_ = json.Unmarshal(encoded, &raw)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.playerAssets[playerID] = raw
}

// SetHistory seeds the raw history body returned for an address. The body is
// served verbatim, so tests can feed malformed payloads.
func (n *Node) SetHistory(address string, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.history[address] = json.RawMessage(body)
}

// Requests returns a copy of every recorded REST call.
func (n *Node) Requests() []RecordedRequest {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]RecordedRequest, len(n.requests))
	copy(out, n.requests)
	return out
}

// Push writes one data-wrapped frame to every connected push channel, the
// wire shape of balance_update and transfer_complete. asset_update carries
// its payload under a different key; use PushAssetUpdate for it.
func (n *Node) Push(frameType string, data interface{}) error {
	return n.pushFrame(map[string]interface{}{"type": frameType, "data": data})
}

// PushAssetUpdate writes an asset_update frame with the asset record under
// its top-level asset key.
func (n *Node) PushAssetUpdate(asset interface{}) error {
	return n.pushFrame(map[string]interface{}{"type": "asset_update", "asset": asset})
}

func (n *Node) pushFrame(frame map[string]interface{}) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, conn := range n.conns {
		if err := conn.WriteJSON(frame); err != nil {
			return err
		}
	}
	return nil
}

// PushRaw writes raw bytes to every connected push channel, for malformed
// frame tests.
func (n *Node) PushRaw(raw []byte) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, conn := range n.conns {
		if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			return err
		}
	}
	return nil
}

// CloseConns force-closes all push connections without a close frame,
// simulating an unclean drop.
func (n *Node) CloseConns() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, conn := range n.conns {
		_ = conn.Close()
	}
	n.conns = nil
}

// WaitForHandshake blocks until a push client sends its handshake frame.
func (n *Node) WaitForHandshake(timeout time.Duration) (json.RawMessage, error) {
	select {
	case hs := <-n.handshakes:
		return hs, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("no handshake within %v", timeout)
	}
}

// ConnCount reports how many push connections are open.
func (n *Node) ConnCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.conns)
}

func (n *Node) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		n.mu.Lock()
		n.requests = append(n.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			APIKey: r.Header.Get("X-API-Key"),
			Body:   body,
		})
		fail := n.failStatus
		n.mu.Unlock()

		if fail != 0 && r.URL.Path != "/ws" {
			http.Error(w, "injected failure", fail)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (n *Node) handleWalletCreate(w http.ResponseWriter, _ *http.Request) {
	n.mu.Lock()
	n.walletSeq++
	address := fmt.Sprintf("wallet-%d", n.walletSeq)
	n.balances[address] = 0
	n.mu.Unlock()

	writeData(w, map[string]interface{}{"address": address, "balance": 0.0})
}

func (n *Node) handleBalance(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	n.mu.Lock()
	balance := n.balances[address]
	n.mu.Unlock()

	writeData(w, map[string]interface{}{"balance": balance})
}

func (n *Node) handleMint(w http.ResponseWriter, r *http.Request) {
	var req map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	n.assetSeq++
	assetID := fmt.Sprintf("asset-%d", n.assetSeq)
	n.mu.Unlock()

	writeData(w, map[string]interface{}{
		"asset_id": assetID,
		"owner":    req["owner"],
		"category": req["category"],
		"rarity":   req["rarity"],
	})
}

func (n *Node) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	override := n.transferBody
	n.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if override != nil {
		_, _ = w.Write(override)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"asset_id": req["asset_id"],
			"success":  true,
		},
	})
}

func (n *Node) handlePlayerAssets(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	n.mu.Lock()
	assets := n.playerAssets[playerID]
	n.mu.Unlock()

	if assets == nil {
		assets = []json.RawMessage{}
	}
	writeData(w, map[string]interface{}{"assets": assets})
}

func (n *Node) handleRecord(w http.ResponseWriter, r *http.Request) {
	var req map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeData(w, map[string]interface{}{"transaction_id": uuid.NewString()})
}

func (n *Node) handleChain(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"chain":[],"length":0}`))
}

func (n *Node) handleHistory(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	n.mu.Lock()
	body := n.history[address]
	n.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if body == nil {
		body = json.RawMessage(`{"transactions":[]}`)
	}
	_, _ = w.Write(body)
}

func (n *Node) handleWS(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("api_key") != n.apiKey {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
		return
	}

	conn, err := n.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	n.mu.Lock()
	n.conns = append(n.conns, conn)
	n.mu.Unlock()

	// Read loop only exists to surface handshake frames and notice closes.
	go func() {
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			select {
			case n.handshakes <- json.RawMessage(raw):
			default:
			}
		}
	}()
}

func writeData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
}
