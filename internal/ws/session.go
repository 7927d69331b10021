package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// session serializes writes; gorilla connections allow one concurrent
// writer.
type session struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *session) send(msg OutgoingMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(msg)
}

func (s *session) ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// keepAlive pings until ctx ends or a ping fails.
func (s *session) keepAlive(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.ping(); err != nil {
				return
			}
		}
	}
}
