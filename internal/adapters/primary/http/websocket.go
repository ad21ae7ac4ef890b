package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// createUpgrader creates a WebSocket upgrader with origin validation
func (s *Server) createUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return s.isValidOrigin(r)
		},
	}
}

// isValidOrigin checks the request origin against configured CORS origins
func (s *Server) isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true // non-browser client
	}

	for _, allowed := range s.config.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	return false
}

// handleWebSocket upgrades the connection and streams progress events
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := s.createUpgrader()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Connection{
		ID:   uuid.New().String(),
		Send: make(chan entities.ProgressEvent, 16),
	}

	s.connMgr.RegisterConnection(client)
	s.logger.Debug("WebSocket client connected: %s", client.ID)

	go s.writePump(conn, client)
	go s.readPump(conn, client)
}

// writePump forwards progress events to the client
func (s *Server) writePump(conn *websocket.Conn, client *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case event, ok := <-client.Send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				s.logger.Debug("WebSocket write failed for %s: %v", client.ID, err)
				s.connMgr.Unregister(client.ID)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.connMgr.Unregister(client.ID)
				return
			}
		}
	}
}

// readPump drains client messages; the UI sends nothing meaningful, but
// reading is required to process control frames and detect disconnects.
// The read deadline is refreshed on every pong so a silently dead peer
// times out instead of lingering until a write fails.
func (s *Server) readPump(conn *websocket.Conn, client *Connection) {
	defer s.connMgr.Unregister(client.ID)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
