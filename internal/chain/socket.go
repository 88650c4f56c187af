package chain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/interverse/verse-go/internal/domain"
	"github.com/interverse/verse-go/internal/event"
	"github.com/interverse/verse-go/internal/logger"
	"github.com/interverse/verse-go/internal/metrics"
)

// pushFrame is the envelope of every inbound push channel message. Most
// frame types carry their payload under data; asset_update carries the
// asset record under its own top-level key.
type pushFrame struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Asset json.RawMessage `json:"asset"`
}

// handshakeFrame announces the game to the node right after the upgrade.
type handshakeFrame struct {
	Type   string `json:"type"`
	GameID string `json:"game_id"`
}

// pushURL converts the node's HTTP base URL into the WebSocket upgrade URL.
func (c *Client) pushURL() string {
	base := strings.TrimRight(c.cfg.NodeURL, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + fmt.Sprintf(PushPath, c.cfg.APIKey)
}

// Connect opens the push channel. Config problems fail synchronously; dial
// errors surface as a scheduled reconnect, not an error return. Calling
// Connect while connecting or connected is a no-op.
func (c *Client) Connect() error {
	if err := c.requireConfig(); err != nil {
		return err
	}

	if !c.post(func() {
		if c.state == StateConnecting || c.state == StateConnected {
			return
		}
		c.stopReconnectTimer()
		c.beginConnect()
	}) {
		return domain.ErrClientStopped
	}
	return nil
}

// Disconnect closes the push channel deliberately. No reconnect is scheduled.
func (c *Client) Disconnect() {
	c.post(func() {
		c.stopReconnectTimer()

		// Bumping the epoch discards the read loop's close notification,
		// so the unclean-close path never runs for a deliberate disconnect.
		c.connEpoch++

		if c.conn != nil {
			deadline := time.Now().Add(WriteTimeout)
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			_ = c.conn.Close()
			c.conn = nil
		}

		if c.state == StateDisconnected {
			return
		}
		c.setState(StateDisconnected)
		logger.Info(LogMsgDisconnected, "deliberate", true)
		c.publish(event.NewConnectionChangedEvent(false, StatusDisconnected))
	})
}

// Reconnect forces an immediate re-dial: any pending reconnect timer is
// cancelled and any open connection is dropped first.
func (c *Client) Reconnect() error {
	if err := c.requireConfig(); err != nil {
		return err
	}

	if !c.post(func() {
		c.stopReconnectTimer()
		c.connEpoch++
		if c.conn != nil {
			_ = c.conn.Close()
			c.conn = nil
		}
		logger.Info(LogMsgReconnecting)
		metrics.ChainReconnectsTotal.Inc()
		c.beginConnect()
	}) {
		return domain.ErrClientStopped
	}
	return nil
}

// SendStreamMessage writes one JSON message to the push channel.
func (c *Client) SendStreamMessage(payload interface{}) error {
	if !c.IsConnected() {
		logger.Warn(LogMsgSendNotConnected)
		return domain.ErrNotConnected
	}
	if payload == nil {
		return domain.ErrEmptyPayload
	}

	if !c.post(func() {
		if c.conn == nil {
			logger.Warn(LogMsgSendNotConnected)
			return
		}
		_ = c.conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
		if err := c.conn.WriteJSON(payload); err != nil {
			logger.Warn(LogMsgSendFailed, "error", err)
			// Force the read loop to observe the failure; it owns the
			// unclean-close handling.
			_ = c.conn.Close()
			return
		}
		metrics.PushSendsTotal.Inc()
	}) {
		return domain.ErrClientStopped
	}
	return nil
}

// beginConnect starts a dial attempt. Runs on the dispatch goroutine.
func (c *Client) beginConnect() {
	c.setState(StateConnecting)
	c.connEpoch++
	epoch := c.connEpoch

	url := c.pushURL()
	logger.Info(LogMsgConnecting, "node_url", c.cfg.NodeURL)

	go func() {
		conn, resp, err := c.dialer.Dial(url, nil)
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}

		posted := c.post(func() {
			if epoch != c.connEpoch {
				// A newer attempt superseded this one.
				if conn != nil {
					_ = conn.Close()
				}
				return
			}
			if err != nil {
				logger.Warn(LogMsgConnectError, "error", err)
				c.scheduleReconnect()
				return
			}
			c.onConnected(conn, epoch)
		})
		if !posted && conn != nil {
			_ = conn.Close()
		}
	}()
}

// onConnected installs the fresh connection. Runs on the dispatch goroutine.
func (c *Client) onConnected(conn *websocket.Conn, epoch int) {
	c.conn = conn
	c.setState(StateConnected)
	logger.Info(LogMsgConnected)

	_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
	if err := conn.WriteJSON(handshakeFrame{Type: FrameTypeHandshake, GameID: c.cfg.GameID}); err != nil {
		logger.Warn(LogMsgHandshakeFailed, "error", err)
		_ = conn.Close()
	} else {
		logger.Debug(LogMsgHandshakeSent, "game_id", c.cfg.GameID)
	}

	c.publish(event.NewConnectionChangedEvent(true, StatusConnected))

	go c.readLoop(conn, epoch)
}

// readLoop pumps inbound frames from one connection onto the dispatch
// goroutine until the connection dies. Each connection gets its own loop,
// tagged with the epoch it was dialed under.
func (c *Client) readLoop(conn *websocket.Conn, epoch int) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			c.post(func() {
				if epoch != c.connEpoch {
					return
				}
				c.onConnectionLost(err)
			})
			return
		}

		frame := raw
		c.post(func() {
			if epoch != c.connEpoch {
				return
			}
			c.handleFrame(frame)
		})
	}
}

// onConnectionLost handles an unexpected close. Runs on the dispatch
// goroutine, only for the current epoch.
func (c *Client) onConnectionLost(err error) {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}

	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		c.setState(StateDisconnected)
		logger.Info(LogMsgDisconnected, "deliberate", false)
		c.publish(event.NewConnectionChangedEvent(false, StatusDisconnected))
		return
	}

	logger.Warn(LogMsgUncleanClose, "error", err, "retry_in", c.cfg.ReconnectDelay)
	c.publish(event.NewConnectionChangedEvent(false, StatusDisconnected))
	c.scheduleReconnect()
}

// scheduleReconnect arms the one-shot reconnect timer. Runs on the dispatch
// goroutine. At most one timer exists at a time.
func (c *Client) scheduleReconnect() {
	c.stopReconnectTimer()
	c.setState(StateReconnectPending)

	c.reconnectTimer = time.AfterFunc(c.cfg.ReconnectDelay, func() {
		c.post(func() {
			if c.state != StateReconnectPending {
				return
			}
			c.reconnectTimer = nil
			metrics.ChainReconnectsTotal.Inc()
			c.beginConnect()
		})
	})
}

func (c *Client) stopReconnectTimer() {
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
}

// handleFrame routes one inbound push frame. Unknown frame types are logged
// and dropped so newer nodes can ship frame types old clients ignore.
func (c *Client) handleFrame(raw []byte) {
	var frame pushFrame
	if err := json.Unmarshal(raw, &frame); err != nil || frame.Type == "" {
		metrics.PushFramesTotal.WithLabelValues(metrics.StatusDropped).Inc()
		logger.Warn(LogMsgFrameMalformed, "error", err)
		return
	}

	metrics.PushFramesTotal.WithLabelValues(frame.Type).Inc()

	switch frame.Type {
	case FrameTypeAssetUpdate:
		var asset domain.Asset
		if err := json.Unmarshal(frame.Asset, &asset); err != nil {
			logger.Warn(LogMsgFrameMalformed, "frame_type", frame.Type, "error", err)
			return
		}
		c.publish(event.NewAssetMintedEvent(asset, asset.OwnerGlobalID))

	case FrameTypeBalanceUpdate:
		var payload struct {
			Address string  `json:"address"`
			Balance float64 `json:"balance"`
		}
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			logger.Warn(LogMsgFrameMalformed, "frame_type", frame.Type, "error", err)
			return
		}
		c.publish(event.NewBalanceUpdatedEvent(payload.Address, payload.Balance))

	case FrameTypeTransferComplete:
		var payload struct {
			AssetID  string `json:"asset_id"`
			PlayerID string `json:"player_id"`
			Success  bool   `json:"success"`
		}
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			logger.Warn(LogMsgFrameMalformed, "frame_type", frame.Type, "error", err)
			return
		}
		c.publish(event.NewTransferCompleteEvent(payload.AssetID, payload.PlayerID, payload.Success))

	case FrameTypeHandshake:
		logger.Debug(LogMsgHandshakeSent, "ack", true)

	default:
		logger.Debug(LogMsgFrameIgnored, "frame_type", frame.Type)
	}
}
