package net

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// maxInputSize bounds one client message. Input lines are a few bytes.
const maxInputSize = 512

// Session is one websocket client. Reads and writes run on dedicated
// goroutines; the game loop only ever calls Send.
type Session struct {
	ID   uint64
	IP   string
	conn *websocket.Conn

	OutQueue chan []byte // writer goroutine reads from here

	writeTimeout time.Duration
	readTimeout  time.Duration

	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool

	log *zap.Logger
}

func NewSession(conn *websocket.Conn, id uint64, outSize int, writeTimeout, readTimeout time.Duration, log *zap.Logger) *Session {
	if outSize <= 0 {
		outSize = 1
	}
	return &Session{
		ID:           id,
		IP:           conn.RemoteAddr().String(),
		conn:         conn,
		OutQueue:     make(chan []byte, outSize),
		writeTimeout: writeTimeout,
		readTimeout:  readTimeout,
		closeCh:      make(chan struct{}),
		log:          log.With(zap.Uint64("session", id)),
	}
}

// Start launches the reader and writer goroutines. onLine gets every text
// message; onClose runs once when the session ends.
func (s *Session) Start(onLine func(string), onClose func()) {
	go s.readLoop(onLine, onClose)
	go s.writeLoop()
}

// Send queues one message. Non-blocking: if OutQueue is full the client is
// too slow and is disconnected.
func (s *Session) Send(data []byte) {
	if s.closed.Load() {
		return
	}
	select {
	case s.OutQueue <- data:
	default:
		s.log.Warn("output queue full, dropping slow client")
		s.Close()
	}
}

// Close shuts the session down. Safe to call from any goroutine.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.closeCh)
		s.conn.Close()
	})
}

// IsClosed reports whether Close has run. The read goroutine may not have
// unregistered the session yet.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

func (s *Session) readLoop(onLine func(string), onClose func()) {
	defer func() {
		s.Close()
		if onClose != nil {
			onClose()
		}
	}()

	s.conn.SetReadLimit(maxInputSize)
	if s.readTimeout > 0 {
		// Spectators never send; their pongs keep the connection alive.
		s.conn.SetPongHandler(func(string) error {
			return s.conn.SetReadDeadline(time.Now().Add(s.readTimeout))
		})
	}
	for {
		if s.readTimeout > 0 {
			s.conn.SetReadDeadline(time.Now().Add(s.readTimeout))
		}
		kind, msg, err := s.conn.ReadMessage()
		if err != nil {
			if !s.closed.Load() && websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("read error", zap.Error(err))
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		onLine(string(msg))
	}
}

func (s *Session) writeLoop() {
	defer s.Close()

	var ping <-chan time.Time
	if s.readTimeout > 0 {
		ticker := time.NewTicker(s.readTimeout / 2)
		defer ticker.Stop()
		ping = ticker.C
	}

	for {
		select {
		case <-ping:
			if s.writeTimeout > 0 {
				s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if !s.closed.Load() {
					s.log.Debug("ping error", zap.Error(err))
				}
				return
			}
		case data := <-s.OutQueue:
			if s.writeTimeout > 0 {
				s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				if !s.closed.Load() {
					s.log.Debug("write error", zap.Error(err))
				}
				return
			}
		case <-s.closeCh:
			return
		}
	}
}
