package chain

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/interverse/verse-go/internal/domain"
	"github.com/interverse/verse-go/internal/event"
	"github.com/interverse/verse-go/internal/logger"
	"github.com/interverse/verse-go/internal/metrics"
)

// Config holds the connection settings for one ledger node. It is supplied
// at construction and never mutated mid-session.
type Config struct {
	NodeURL string
	GameID  string
	APIKey  string

	// ReconnectDelay is the wait before re-dialing after an unclean close
	ReconnectDelay time.Duration

	// RequestTimeout bounds each REST call
	RequestTimeout time.Duration
}

// Valid reports whether the config can reach a node at all.
func (c Config) Valid() bool {
	return c.NodeURL != "" && c.GameID != "" && c.APIKey != ""
}

// ConnectionState is the push channel lifecycle state.
type ConnectionState int

const (
	StateUninitialized ConnectionState = iota
	StateConnecting
	StateConnected
	StateDisconnected
	StateReconnectPending
)

func (s ConnectionState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	case StateReconnectPending:
		return "reconnect_pending"
	default:
		return "unknown"
	}
}

// Client talks to one remote ledger node over two channels: fire-and-forget
// REST calls and a persistent WebSocket push channel. All completions (REST
// continuations, push frames, reconnect timer fires) are marshalled onto a
// single dispatch goroutine before they touch client state or publish
// events, so bus handlers and continuations never run concurrently with each
// other.
type Client struct {
	cfg        Config
	bus        event.Bus
	httpClient *http.Client
	dialer     *websocket.Dialer

	tasks    chan func()
	shutdown chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	// Owned by the dispatch goroutine
	conn           *websocket.Conn
	state          ConnectionState
	connEpoch      int
	reconnectTimer *time.Timer

	// Mirror of state for synchronous readers (IsConnected, status queries)
	stateMu sync.RWMutex
	started bool
}

// NewClient creates a chain client. Connect must be called before the push
// channel delivers anything; REST operations work as soon as Start has run.
func NewClient(cfg Config, bus event.Bus) *Client {
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = DefaultReconnectDelay
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	return &Client{
		cfg: cfg,
		bus: bus,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		dialer: &websocket.Dialer{
			ReadBufferSize:   ReadBufferSize,
			WriteBufferSize:  WriteBufferSize,
			HandshakeTimeout: cfg.RequestTimeout,
			Subprotocols:     []string{PushSubprotocol},
		},
		tasks:    make(chan func(), DispatchQueueSize),
		shutdown: make(chan struct{}),
		state:    StateUninitialized,
	}
}

// Start launches the dispatch goroutine. It must be called exactly once.
func (c *Client) Start(ctx context.Context) {
	c.stateMu.Lock()
	c.started = true
	c.stateMu.Unlock()

	c.wg.Add(1)
	go c.run(ctx)
}

// Stop shuts the client down: the push channel closes, queued tasks drain,
// and in-flight REST calls complete with their results dropped.
func (c *Client) Stop() {
	c.stopOnce.Do(func() {
		close(c.shutdown)
		c.wg.Wait()
		logger.Info(LogMsgClientStopped)
	})
}

// run is the dispatch loop. Every mutation of client state and every
// caller-visible callback happens here.
func (c *Client) run(ctx context.Context) {
	defer c.wg.Done()
	defer c.teardown()

	for {
		select {
		case <-c.shutdown:
			return
		case <-ctx.Done():
			return
		case task := <-c.tasks:
			task()
		}
	}
}

// teardown runs on the dispatch goroutine as the loop exits.
func (c *Client) teardown() {
	c.stopReconnectTimer()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.setState(StateDisconnected)
}

// post queues fn onto the dispatch goroutine. Returns false when the client
// is shutting down and the task was dropped.
func (c *Client) post(fn func()) bool {
	select {
	case c.tasks <- fn:
		return true
	case <-c.shutdown:
		return false
	}
}

// setState updates the owner-side state and its read mirror.
func (c *Client) setState(s ConnectionState) {
	c.stateMu.Lock()
	c.state = s
	c.stateMu.Unlock()
}

func (c *Client) currentState() ConnectionState {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

// IsConnected reports whether the push channel is currently open.
func (c *Client) IsConnected() bool {
	return c.currentState() == StateConnected
}

// ConnectionStatus reports the push channel status in the legacy wording
// consumers display directly.
func (c *Client) ConnectionStatus() string {
	switch c.currentState() {
	case StateUninitialized:
		return StatusNotInitialized
	case StateConnected:
		return StatusConnected
	default:
		return StatusDisconnected
	}
}

// publish emits a domain event from the dispatch goroutine.
func (c *Client) publish(ev event.Event) {
	metrics.EventsPublished.WithLabelValues(string(ev.Type)).Inc()
	if err := c.bus.Publish(context.Background(), ev); err != nil {
		metrics.EventHandlerErrors.WithLabelValues(string(ev.Type)).Inc()
		logger.Warn(LogMsgEventPublish, "event_type", ev.Type, "error", err)
	}
}

// requireConfig logs and returns an error when the client cannot reach a node.
func (c *Client) requireConfig() error {
	if c.cfg.Valid() {
		return nil
	}
	logger.Error(domain.ErrMsgMissingConfig,
		"node_url_set", c.cfg.NodeURL != "",
		"game_id_set", c.cfg.GameID != "",
		"api_key_set", c.cfg.APIKey != "")
	return domain.ErrMissingConfig
}
