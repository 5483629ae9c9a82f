package pictionary

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/rzambranobaires/pictionary-game/pictionary/internal"

	"github.com/coder/websocket"
	"github.com/jpillora/backoff"
)

// Client owns one logical connection to the game authority for a single
// room. It dials, detects transport failure, and redials the same URL
// automatically; callbacks of a superseded connection are ignored, so at
// most one underlying websocket is live at any time.
//
// Sends are never queued: a send attempted while the connection is not open
// fails with ErrorNotConnected and the message is lost.
type Client struct {
	cfg        Config
	logger     Logger
	dispatcher Dispatcher
	onState    func(StateEvent)

	mu         sync.Mutex
	state      ConnectionState
	conn       *internal.Conn
	gen        int // increments per established connection
	attempts   int // consecutive failed redials
	retry      *backoff.Backoff
	retryTimer *time.Timer
	runCtx     context.Context
	runCancel  context.CancelFunc
}

// NewClient constructs a client with provided config.
// Use DefaultConfig() as a starting point and modify as needed.
func NewClient(cfg Config) *Client {
	min := cfg.ReconnectInterval
	if min <= 0 {
		min = 2 * time.Second
	}
	max := cfg.MaxReconnectDelay
	if max < min {
		max = min
	}
	factor := cfg.ReconnectBackoffFactor
	if factor < 1 {
		factor = 1
	}
	return &Client{
		cfg:    cfg,
		logger: noopLogger{},
		retry:  &backoff.Backoff{Min: min, Max: max, Factor: factor},
	}
}

// SetLogger overrides logger (optional).
func (c *Client) SetLogger(l Logger) {
	if l == nil {
		return
	}
	c.logger = l
	c.dispatcher.logger = l
}

// OnDraw registers the callback for replicated pen samples.
func (c *Client) OnDraw(fn func(DrawEvent)) { c.dispatcher.SetOnDraw(fn) }

// OnChat registers the callback for chat lines.
func (c *Client) OnChat(fn func(ChatEvent)) { c.dispatcher.SetOnChat(fn) }

// OnRole registers the callback for role assignments.
func (c *Client) OnRole(fn func(RoleEvent)) { c.dispatcher.SetOnRole(fn) }

// OnWin registers the callback for win announcements.
func (c *Client) OnWin(fn func(WinEvent)) { c.dispatcher.SetOnWin(fn) }

// OnReset registers the callback for round resets.
func (c *Client) OnReset(fn func()) { c.dispatcher.SetOnReset(fn) }

// OnError registers the callback for authority-reported errors.
func (c *Client) OnError(fn func(error)) { c.dispatcher.SetOnError(fn) }

// OnStateChanged registers the callback for connection state transitions.
func (c *Client) OnStateChanged(fn func(StateEvent)) { c.onState = fn }

// State returns the current connection state.
func (c *Client) State() ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect dials the room URL and starts the read loop. When AutoReconnect
// is on, a failed dial schedules a retry before returning the error, so the
// client keeps trying in the background.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateClosed:
		c.mu.Unlock()
		return NewError(ErrorInvalidConfig, "client is closed")
	case StateConnecting, StateConnected, StateReconnecting:
		c.mu.Unlock()
		return NewError(ErrorConnection, "already connected")
	}
	if c.cfg.URL == "" {
		c.mu.Unlock()
		return NewError(ErrorInvalidConfig, "empty URL")
	}
	if _, err := url.Parse(c.cfg.URL); err != nil {
		c.mu.Unlock()
		return WrapError(ErrorInvalidConfig, "invalid URL", err)
	}
	if c.runCtx == nil {
		c.runCtx, c.runCancel = context.WithCancel(context.Background())
	}
	ev := c.transitionLocked(StateConnecting, nil)
	c.mu.Unlock()
	c.notify(ev)

	if err := c.establish(ctx); err != nil {
		c.mu.Lock()
		if c.state == StateClosed {
			c.mu.Unlock()
			return WrapError(ErrorConnection, "dial failed", err)
		}
		if c.cfg.AutoReconnect {
			ev = c.retryOrStopLocked(err)
		} else {
			ev = c.transitionLocked(StateDisconnected, err)
		}
		c.mu.Unlock()
		c.notify(ev)
		return WrapError(ErrorConnection, "dial failed", err)
	}
	return nil
}

// Join announces the participant to the authority. The role is a request;
// the authoritative assignment arrives in a later role event.
func (c *Client) Join(ctx context.Context, name string, role Role, sessionID string) error {
	return c.send(ctx, joinFrame{Type: frameJoin, Name: name, Role: role.String(), SessionID: sessionID})
}

// SendDraw replicates one pen sample. One input sample, one wire frame.
func (c *Client) SendDraw(ctx context.Context, x, y float64) error {
	return c.send(ctx, drawFrame{Type: frameDraw, X: x, Y: y})
}

// SendChat publishes a pre-formatted display line.
func (c *Client) SendChat(ctx context.Context, message string) error {
	return c.send(ctx, chatFrame{Type: frameChat, Message: message})
}

// SendGuess submits a guess for judging.
func (c *Client) SendGuess(ctx context.Context, name, guess string) error {
	return c.send(ctx, guessFrame{Type: frameGuess, Name: name, Guess: guess})
}

// NewRound asks the authority to advance past a won round.
func (c *Client) NewRound(ctx context.Context) error {
	return c.send(ctx, newRoundFrame{Type: frameNewRound})
}

// Close shuts down the client, cancels any pending retry, and closes the
// websocket. The client cannot be reused afterwards.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return nil
	}
	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}
	if c.runCancel != nil {
		c.runCancel()
	}
	conn := c.conn
	c.conn = nil
	ev := c.transitionLocked(StateClosed, nil)
	c.mu.Unlock()
	c.notify(ev)

	if conn != nil {
		return conn.Close(websocket.StatusNormalClosure, "client close")
	}
	return nil
}

func (c *Client) send(ctx context.Context, v any) error {
	c.mu.Lock()
	if c.state != StateConnected || c.conn == nil {
		c.mu.Unlock()
		return NewError(ErrorNotConnected, "not connected")
	}
	conn := c.conn
	gen := c.gen
	c.mu.Unlock()

	if err := conn.Write(ctx, v); err != nil {
		c.connLost(gen, err)
		return WrapError(ErrorConnection, "write failed", err)
	}
	return nil
}

// establish dials and, on success, installs the connection and starts its
// read loop.
func (c *Client) establish(ctx context.Context) error {
	dialCtx := ctx
	if c.cfg.HandshakeTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, c.cfg.HandshakeTimeout)
		defer cancel()
	}
	ws, _, err := websocket.Dial(dialCtx, c.cfg.URL, nil)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		_ = ws.Close(websocket.StatusNormalClosure, "client closed")
		return NewError(ErrorDisconnected, "closed during dial")
	}
	c.gen++
	gen := c.gen
	conn := internal.NewConn(ws, c.cfg.ReadTimeout, c.cfg.WriteTimeout)
	c.conn = conn
	c.attempts = 0
	c.retry.Reset()
	runCtx := c.runCtx
	ev := c.transitionLocked(StateConnected, nil)
	c.mu.Unlock()
	c.notify(ev)

	go c.readLoop(runCtx, gen, conn)
	return nil
}

func (c *Client) readLoop(ctx context.Context, gen int, conn *internal.Conn) {
	for {
		raw, err := conn.ReadFrame(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			c.logger.Warn("read loop exit", map[string]any{"error": err.Error()})
			c.connLost(gen, err)
			return
		}
		c.dispatcher.Dispatch(raw)
	}
}

// connLost handles a dead connection. Stale generations are ignored so a
// superseded socket cannot disturb its replacement.
func (c *Client) connLost(gen int, cause error) {
	c.mu.Lock()
	if gen != c.gen || c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	if c.conn != nil {
		_ = c.conn.Close(websocket.StatusNormalClosure, "superseded")
		c.conn = nil
	}
	var ev StateEvent
	if c.cfg.AutoReconnect {
		ev = c.retryOrStopLocked(cause)
	} else {
		ev = c.transitionLocked(StateDisconnected, cause)
	}
	c.mu.Unlock()
	c.notify(ev)
}

// redial runs when the reconnect delay elapses.
func (c *Client) redial() {
	c.mu.Lock()
	if c.state != StateReconnecting {
		c.mu.Unlock()
		return
	}
	ctx := c.runCtx
	ev := c.transitionLocked(StateConnecting, nil)
	c.mu.Unlock()
	c.notify(ev)

	if err := c.establish(ctx); err != nil {
		c.logger.Warn("reconnect attempt failed", map[string]any{"error": err.Error()})
		c.mu.Lock()
		if c.state == StateClosed {
			c.mu.Unlock()
			return
		}
		ev = c.retryOrStopLocked(err)
		c.mu.Unlock()
		c.notify(ev)
	}
}

// retryOrStopLocked schedules the next redial, or gives up once
// MaxReconnectTries consecutive attempts have failed. Caller holds mu.
func (c *Client) retryOrStopLocked(cause error) StateEvent {
	if c.cfg.MaxReconnectTries > 0 && c.attempts >= c.cfg.MaxReconnectTries {
		return c.transitionLocked(StateDisconnected, cause)
	}
	c.attempts++
	delay := c.retry.Duration()
	c.retryTimer = time.AfterFunc(delay, c.redial)
	return c.transitionLocked(StateReconnecting, cause)
}

// transitionLocked records a state change. Caller holds mu; the returned
// event must be passed to notify after unlocking.
func (c *Client) transitionLocked(to ConnectionState, err error) StateEvent {
	ev := StateEvent{OldState: c.state, NewState: to, Error: err}
	c.state = to
	return ev
}

func (c *Client) notify(ev StateEvent) {
	if c.onState != nil && ev.OldState != ev.NewState {
		c.onState(ev)
	}
}
