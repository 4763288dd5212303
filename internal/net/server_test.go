package net

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/MTvrimPossible/simulation-game/internal/config"
	"github.com/MTvrimPossible/simulation-game/internal/game"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startServer(t *testing.T, sink InputSink) *Server {
	t.Helper()
	return startServerWith(t, sink, config.Default().Network)
}

func startServerWith(t *testing.T, sink InputSink, cfg config.NetworkConfig) *Server {
	t.Helper()
	cfg.BindAddress = "127.0.0.1:0"
	srv, err := NewServer(cfg, sink, zap.NewNop())
	require.NoError(t, err)
	go srv.Serve()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	})
	return srv
}

func dial(t *testing.T, srv *Server) *websocket.Conn {
	t.Helper()
	url := "ws://" + srv.Addr().String() + config.Default().Network.Path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.Eventually(t, func() bool { return srv.Count() >= 1 }, time.Second, 5*time.Millisecond)
	return conn
}

func TestServerForwardsInput(t *testing.T) {
	sink := game.NewLatestInput()
	srv := startServer(t, sink)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("bogus")))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("use 2")))

	var got game.Input
	require.Eventually(t, func() bool {
		in, ok := sink.Poll()
		if ok {
			got = in
		}
		return ok
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, world.Action{Kind: world.ActionUse, Slot: 1}, got.Action)
}

func TestServerBroadcastsFrames(t *testing.T) {
	srv := startServer(t, game.NewLatestInput())
	a := dial(t, srv)
	b := dial(t, srv)
	require.Eventually(t, func() bool { return srv.Count() == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, srv.Render(game.Frame{Turn: 7, Status: "hello"}))
	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		var f game.Frame
		require.NoError(t, json.Unmarshal(msg, &f))
		assert.Equal(t, int64(7), f.Turn)
		assert.Equal(t, "hello", f.Status)
	}
}

func TestServerSendsLatestFrameOnJoin(t *testing.T) {
	srv := startServer(t, game.NewLatestInput())
	require.NoError(t, srv.Render(game.Frame{Turn: 3}))

	conn := dial(t, srv)
	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var f game.Frame
	require.NoError(t, json.Unmarshal(msg, &f))
	assert.Equal(t, int64(3), f.Turn)
}

func TestServerForgetsClosedClients(t *testing.T) {
	srv := startServer(t, game.NewLatestInput())
	conn := dial(t, srv)
	conn.Close()
	assert.Eventually(t, func() bool { return srv.Count() == 0 }, time.Second, 5*time.Millisecond)
}

func TestServerShutdownClosesSessions(t *testing.T) {
	srv := startServer(t, game.NewLatestInput())
	conn := dial(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestServerPrunesClosedSessionsOnRender(t *testing.T) {
	srv := startServer(t, game.NewLatestInput())
	dial(t, srv)

	srv.mu.Lock()
	for _, sess := range srv.sessions {
		sess.Close()
	}
	srv.mu.Unlock()

	require.NoError(t, srv.Render(game.Frame{Turn: 1}))
	assert.Zero(t, srv.Count())
}

func TestServerKeepsSilentSpectators(t *testing.T) {
	cfg := config.Default().Network
	cfg.ReadTimeout = 200 * time.Millisecond
	srv := startServerWith(t, game.NewLatestInput(), cfg)
	conn := dial(t, srv)

	// Reading lets the client answer pings; it never writes anything.
	frames := make(chan game.Frame, 4)
	go func() {
		defer close(frames)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var f game.Frame
			if json.Unmarshal(msg, &f) == nil {
				frames <- f
			}
		}
	}()

	time.Sleep(3 * cfg.ReadTimeout)
	assert.Equal(t, 1, srv.Count())

	require.NoError(t, srv.Render(game.Frame{Turn: 9}))
	select {
	case f, ok := <-frames:
		require.True(t, ok, "connection dropped")
		assert.Equal(t, int64(9), f.Turn)
	case <-time.After(time.Second):
		t.Fatal("frame not delivered")
	}
}
