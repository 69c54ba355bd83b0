package binance

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// State is the lifecycle state of one WSClient connection.
//
//	Connecting -> Open -> Closed
//	Open -> Error -> Closed
//	Connecting -> Error -> Closed (dial failure)
type State int

const (
	StateConnecting State = iota
	StateOpen
	StateError
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateError:
		return "error"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

type EventType int

const (
	EventOpen EventType = iota
	EventMessage
	EventError
	EventClose
)

func (t EventType) String() string {
	switch t {
	case EventOpen:
		return "open"
	case EventMessage:
		return "message"
	case EventError:
		return "error"
	case EventClose:
		return "close"
	}
	return "unknown"
}

// Event is one connection callback. Data is set for EventMessage, Err for
// EventError and, when the peer sent a close frame, for EventClose.
type Event struct {
	Type EventType
	Data []byte
	Err  error
}

// WSClient is a single-use streaming connection. It never reconnects; a new
// subscription needs a new client.
type WSClient struct {
	url     string
	dialer  *websocket.Dialer
	handler func(Event)
	logger  *zap.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	state  State
	closed bool
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWSClient creates a WebSocket client for url. Nothing is dialed until
// Connect is called.
func NewWSClient(url string, logger *zap.Logger) *WSClient {
	return &WSClient{
		url:    url,
		dialer: websocket.DefaultDialer,
		logger: logger,
		state:  StateConnecting,
		done:   make(chan struct{}),
	}
}

// SetEventHandler sets the function receiving connection events. Events of
// one client are delivered sequentially, in arrival order, from the reader
// goroutine.
func (c *WSClient) SetEventHandler(h func(Event)) {
	c.handler = h
}

func (c *WSClient) URL() string { return c.url }

func (c *WSClient) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Done is closed once the client reached StateClosed and emitted EventClose.
func (c *WSClient) Done() <-chan struct{} { return c.done }

// Connect dials in the background and starts the listener.
func (c *WSClient) Connect() {
	ctx, cancel := context.WithCancel(context.Background())
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()

	go c.run(ctx)
}

// Close sends a normal-closure frame and tears the connection down.
// It is safe to call more than once and before the dial completed.
func (c *WSClient) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
	}
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return nil
	}

	deadline := time.Now().Add(time.Second)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return conn.Close()
}

func (c *WSClient) run(ctx context.Context) {
	defer close(c.done)

	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		if !c.closedByUs() {
			c.logger.Error("Failed to connect to WebSocket", zap.String("url", c.url), zap.Error(err))
			c.setState(StateError)
			c.emit(Event{Type: EventError, Err: err})
		}
		c.setState(StateClosed)
		c.emit(Event{Type: EventClose})
		return
	}

	c.mu.Lock()
	c.conn = conn
	closed := c.closed
	c.mu.Unlock()
	if closed {
		// Close raced with the dial.
		conn.Close()
		c.setState(StateClosed)
		c.emit(Event{Type: EventClose})
		return
	}

	c.logger.Info("WebSocket connected", zap.String("url", c.url))
	c.setState(StateOpen)
	c.emit(Event{Type: EventOpen})

	c.listen(conn)
}

func (c *WSClient) listen(conn *websocket.Conn) {
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err == nil {
			c.emit(Event{Type: EventMessage, Data: msg})
			continue
		}

		var closeErr *websocket.CloseError
		switch {
		case c.closedByUs():
			c.setState(StateClosed)
			c.emit(Event{Type: EventClose})
		case errors.As(err, &closeErr):
			c.logger.Info("WebSocket closed by peer", zap.String("url", c.url),
				zap.Int("code", closeErr.Code), zap.String("reason", closeErr.Text))
			c.setState(StateClosed)
			c.emit(Event{Type: EventClose, Err: err})
		default:
			c.logger.Error("WebSocket read error", zap.String("url", c.url), zap.Error(err))
			c.setState(StateError)
			c.emit(Event{Type: EventError, Err: err})
			c.setState(StateClosed)
			c.emit(Event{Type: EventClose})
		}
		return
	}
}

func (c *WSClient) closedByUs() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *WSClient) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *WSClient) emit(e Event) {
	if c.handler != nil {
		c.handler(e)
	}
}
