package pictionary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func testClientConfig(url string) Config {
	cfg := DefaultConfig()
	cfg.URL = url
	cfg.ReconnectInterval = 20 * time.Millisecond
	cfg.MaxReconnectDelay = 20 * time.Millisecond
	return cfg
}

func TestClientSendNotConnected(t *testing.T) {
	c := NewClient(DefaultConfig())
	err := c.SendChat(context.Background(), "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, NewError(ErrorNotConnected, ""))
}

func TestClientConnectEmptyURL(t *testing.T) {
	c := NewClient(Config{})
	err := c.Connect(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, NewError(ErrorInvalidConfig, ""))
}

func TestClientDeliversFramesAndSends(t *testing.T) {
	joined := make(chan map[string]any, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close(websocket.StatusNormalClosure, "done")

		var frame map[string]any
		if err := wsjson.Read(r.Context(), ws, &frame); err != nil {
			return
		}
		joined <- frame
		_ = wsjson.Write(r.Context(), ws, map[string]any{
			"type": "role", "is_drawer": true, "word": "apple",
		})
		// Hold the connection until the client goes away.
		_, _, _ = ws.Read(r.Context())
	}))
	defer srv.Close()

	roles := make(chan RoleEvent, 1)
	c := NewClient(testClientConfig(wsURL(srv)))
	c.OnRole(func(ev RoleEvent) { roles <- ev })
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Connect(ctx))
	require.NoError(t, c.Join(ctx, "alice", RoleDrawer, "session-123"))

	select {
	case frame := <-joined:
		assert.Equal(t, "join", frame["type"])
		assert.Equal(t, "alice", frame["name"])
		assert.Equal(t, "drawer", frame["role"])
		assert.Equal(t, "session-123", frame["session_id"])
	case <-time.After(2 * time.Second):
		t.Fatal("server never saw the join frame")
	}

	select {
	case ev := <-roles:
		assert.True(t, ev.IsDrawer)
		assert.Equal(t, "apple", ev.Word)
	case <-time.After(2 * time.Second):
		t.Fatal("role event never dispatched")
	}
}

func TestClientReconnectConvergence(t *testing.T) {
	const failures = 3

	var opens atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := opens.Add(1)
		ws, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		if int(n) <= failures {
			_ = ws.Close(websocket.StatusGoingAway, "try again")
			return
		}
		// Healthy at last: hold the connection open.
		_, _, _ = ws.Read(r.Context())
	}))
	defer srv.Close()

	var sawReconnecting atomic.Bool
	c := NewClient(testClientConfig(wsURL(srv)))
	c.OnStateChanged(func(ev StateEvent) {
		if ev.NewState == StateReconnecting {
			sawReconnecting.Store(true)
		}
	})
	defer c.Close()

	require.NoError(t, c.Connect(context.Background()))

	require.Eventually(t, func() bool {
		return c.State() == StateConnected && opens.Load() == failures+1
	}, 5*time.Second, 10*time.Millisecond, "client must converge after %d failures", failures)

	assert.True(t, sawReconnecting.Load())

	// Once an open succeeds, retrying stops.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(failures+1), opens.Load())
	assert.Equal(t, StateConnected, c.State())
}

func TestClientReconnectGivesUpAfterMaxTries(t *testing.T) {
	var dials atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dials.Add(1)
		http.Error(w, "refusing upgrade", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testClientConfig(wsURL(srv))
	cfg.MaxReconnectTries = 2
	c := NewClient(cfg)
	defer c.Close()

	err := c.Connect(context.Background())
	require.Error(t, err, "first dial fails")

	require.Eventually(t, func() bool {
		return c.State() == StateDisconnected
	}, 5*time.Second, 10*time.Millisecond)

	// Initial dial plus MaxReconnectTries redials, then it stops.
	assert.Equal(t, int32(3), dials.Load())
}

func TestClientCloseCancelsPendingRetry(t *testing.T) {
	var dials atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dials.Add(1)
		http.Error(w, "refusing upgrade", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testClientConfig(wsURL(srv))
	cfg.ReconnectInterval = time.Hour
	cfg.MaxReconnectDelay = time.Hour
	c := NewClient(cfg)

	require.Error(t, c.Connect(context.Background()))
	assert.Equal(t, StateReconnecting, c.State())

	require.NoError(t, c.Close())
	assert.Equal(t, StateClosed, c.State())
	assert.Equal(t, int32(1), dials.Load())

	err := c.Connect(context.Background())
	require.Error(t, err, "a closed client cannot be reused")
}
