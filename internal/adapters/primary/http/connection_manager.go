package http

import (
	"context"
	"sync"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
)

// Connection represents a WebSocket client subscribed to progress events
type Connection struct {
	ID   string
	Send chan entities.ProgressEvent
}

// ConnectionManager manages WebSocket connections and fans progress
// events out to every connected UI client
type ConnectionManager struct {
	connections map[string]*Connection
	broadcast   chan entities.ProgressEvent
	register    chan *Connection
	unregister  chan string
	mu          sync.RWMutex
	done        chan struct{}
}

// NewConnectionManager creates a new connection manager
func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*Connection),
		broadcast:   make(chan entities.ProgressEvent, 256),
		register:    make(chan *Connection),
		unregister:  make(chan string),
		done:        make(chan struct{}),
	}
}

// Run starts the connection manager main loop
func (cm *ConnectionManager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(cm.done)
			return
		case conn := <-cm.register:
			cm.mu.Lock()
			cm.connections[conn.ID] = conn
			cm.mu.Unlock()

		case id := <-cm.unregister:
			cm.mu.Lock()
			if conn, ok := cm.connections[id]; ok {
				delete(cm.connections, id)
				close(conn.Send)
			}
			cm.mu.Unlock()

		case event := <-cm.broadcast:
			cm.mu.Lock()
			for _, conn := range cm.connections {
				select {
				case conn.Send <- event:
				default:
					// Client too slow, drop the connection
					close(conn.Send)
					delete(cm.connections, conn.ID)
				}
			}
			cm.mu.Unlock()
		}
	}
}

// RegisterConnection adds a new connection
func (cm *ConnectionManager) RegisterConnection(conn *Connection) {
	select {
	case cm.register <- conn:
	case <-cm.done:
	}
}

// Unregister removes a connection
func (cm *ConnectionManager) Unregister(connID string) {
	select {
	case cm.unregister <- connID:
	case <-cm.done:
	}
}

// Broadcast queues a progress event for all connected clients
func (cm *ConnectionManager) Broadcast(event entities.ProgressEvent) {
	select {
	case cm.broadcast <- event:
	default:
		// Full buffer means nobody is listening fast enough; progress
		// events are advisory and safe to drop
	}
}

// ConnectionCount returns the number of active connections
func (cm *ConnectionManager) ConnectionCount() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}
