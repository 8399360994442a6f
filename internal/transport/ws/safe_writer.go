package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// SafeWriter serializes writes to a websocket connection. gorilla/websocket
// permits only one concurrent writer per connection.
type SafeWriter struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewSafeWriter wraps a connection.
func NewSafeWriter(conn *websocket.Conn) *SafeWriter {
	return &SafeWriter{conn: conn}
}

// WriteJSON writes v as a JSON message.
func (w *SafeWriter) WriteJSON(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(v)
}

// ReadMessage reads the next message. Reads are single-consumer; only the
// connection's handler goroutine may call this.
func (w *SafeWriter) ReadMessage() (int, []byte, error) {
	return w.conn.ReadMessage()
}

// Close closes the underlying connection.
func (w *SafeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.Close()
}
