// Package net serves the simulation over websockets: clients send input
// lines and receive every rendered frame as JSON.
package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/MTvrimPossible/simulation-game/internal/config"
	"github.com/MTvrimPossible/simulation-game/internal/game"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// InputSink receives parsed client input. *game.LatestInput implements it.
type InputSink interface {
	Push(in game.Input)
}

// Server accepts websocket connections and creates Sessions. It is also a
// game.Renderer: every frame is fanned out to all live sessions.
type Server struct {
	listener net.Listener
	http     *http.Server
	upgrader websocket.Upgrader
	cfg      config.NetworkConfig
	sink     InputSink
	nextID   atomic.Uint64
	log      *zap.Logger

	mu       sync.Mutex
	sessions map[uint64]*Session
	last     []byte // latest frame, sent to new sessions on join
	closed   bool
}

var _ game.Renderer = (*Server)(nil)

func NewServer(cfg config.NetworkConfig, sink InputSink, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", cfg.BindAddress)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", cfg.BindAddress, err)
	}
	s := &Server{
		listener: ln,
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		cfg:      cfg,
		sink:     sink,
		log:      log,
		sessions: make(map[uint64]*Session),
	}
	path := cfg.Path
	if path == "" {
		path = "/"
	}
	mux := http.NewServeMux()
	mux.HandleFunc(path, s.handleUpgrade)
	s.http = &http.Server{Handler: mux, ReadHeaderTimeout: cfg.ReadTimeout}
	return s, nil
}

// Serve runs in its own goroutine until Shutdown.
func (s *Server) Serve() error {
	err := s.http.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	id := s.nextID.Add(1)
	sess := NewSession(conn, id, s.cfg.OutQueueSize, s.cfg.WriteTimeout, s.cfg.ReadTimeout, s.log)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sess.Close()
		return
	}
	s.sessions[id] = sess
	if s.last != nil {
		sess.Send(s.last)
	}
	s.mu.Unlock()

	s.log.Info("client connected", zap.Uint64("session", id), zap.String("ip", sess.IP))
	sess.Start(s.onLine, func() { s.drop(id) })
}

func (s *Server) onLine(line string) {
	in, ok := game.ParseInput(line)
	if !ok {
		s.log.Debug("unrecognized input", zap.String("line", line))
		return
	}
	s.sink.Push(in)
}

func (s *Server) drop(id uint64) {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		s.log.Info("client disconnected", zap.Uint64("session", id))
	}
}

// Render encodes f once and queues it on every session. Slow sessions are
// dropped rather than stalling the game loop.
func (s *Server) Render(f game.Frame) error {
	payload, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = payload
	for id, sess := range s.sessions {
		if sess.IsClosed() {
			delete(s.sessions, id)
			continue
		}
		sess.Send(payload)
	}
	return nil
}

// Count returns the number of connected sessions.
func (s *Server) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Shutdown stops accepting connections and closes every session.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
	return s.http.Shutdown(ctx)
}

// Addr returns the listener's address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}
