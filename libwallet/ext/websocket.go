// Copyright (c) 2019-2021, The Decred developers
// Copyright (c) 2023, The Cryptopower developers
// See LICENSE for details.

package ext

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsDialTimeout  = 10 * time.Second
	wsWriteTimeout = 5 * time.Second
)

// websocketFeed is a persistent connection to a rate source ticker stream.
type websocketFeed interface {
	// Read blocks until a message arrives or the connection closes.
	Read() ([]byte, error)
	// Write sends msg encoded as JSON.
	Write(msg interface{}) error
	// On reports whether the connection is still open.
	On() bool
	Close()
}

type socketConfig struct {
	address string
}

type socketConn struct {
	conn *websocket.Conn

	writeMtx sync.Mutex

	closeOnce sync.Once
	mtx       sync.RWMutex
	on        bool
}

// newSocketConnection dials cfg.address and returns the open feed.
func newSocketConnection(ctx context.Context, cfg *socketConfig) (websocketFeed, error) {
	if cfg == nil || cfg.address == "" {
		return nil, errors.New("no websocket address")
	}

	dialCtx, cancel := context.WithTimeout(ctx, wsDialTimeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, cfg.address, nil)
	if err != nil {
		return nil, err
	}

	return &socketConn{conn: conn, on: true}, nil
}

func (s *socketConn) Read() ([]byte, error) {
	_, msg, err := s.conn.ReadMessage()
	if err != nil {
		s.markClosed()
		return nil, err
	}
	return msg, nil
}

func (s *socketConn) Write(msg interface{}) error {
	s.writeMtx.Lock()
	defer s.writeMtx.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return s.conn.WriteJSON(msg)
}

func (s *socketConn) On() bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.on
}

func (s *socketConn) markClosed() {
	s.mtx.Lock()
	s.on = false
	s.mtx.Unlock()
}

func (s *socketConn) Close() {
	s.closeOnce.Do(func() {
		s.markClosed()
		s.writeMtx.Lock()
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsWriteTimeout))
		s.writeMtx.Unlock()
		s.conn.Close()
	})
}

// feedHealth tracks the updates and failures of a ticker stream.
type feedHealth struct {
	errCount   int
	lastUpdate time.Time
	fail       time.Time
}

// updated records a message at t and clears the failure count.
func (h *feedHealth) updated(t time.Time) {
	h.lastUpdate = t
	h.errCount = 0
}

func (h *feedHealth) failed(t time.Time) {
	h.errCount++
	h.fail = t
}

// failing reports whether the last event of the stream was a failure.
func (h *feedHealth) failing() bool {
	return h.fail.After(h.lastUpdate)
}

// retryAt is the earliest time a failing stream is dialed again. The delay
// grows with the failures counted since the last update.
func (h *feedHealth) retryAt() time.Time {
	switch {
	case h.errCount < 5:
		return h.fail
	case h.errCount < 20:
		return h.fail.Add(10 * time.Minute)
	default:
		return h.fail.Add(time.Hour)
	}
}
