// Package ws pushes download progress to clients over websockets. A client
// opens /ws/progress with the request_id it will pass to POST /download; the
// download flow looks the connection up by that ID and sends status frames.
// Everything here is best-effort: a missing or broken connection never
// affects the download itself.
package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Adarshn09/YoutubeDownloder1/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Conn is a websocket connection with serialized writes.
type Conn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

var (
	connections = make(map[string]*Conn)
	connMu      sync.RWMutex
)

// Upgrade upgrades an HTTP request to a websocket connection.
func Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return upgrader.Upgrade(w, r, nil)
}

// Register associates a connection with a request ID. A connection already
// registered under the same ID is displaced and closed.
func Register(requestID string, c *websocket.Conn) *Conn {
	wc := &Conn{conn: c}
	connMu.Lock()
	old := connections[requestID]
	connections[requestID] = wc
	connMu.Unlock()
	if old != nil {
		old.close()
	}
	log.Printf("[WS] Registered progress connection for request %s", requestID)
	return wc
}

// Unregister drops and closes wc's registration for a request ID. A no-op
// when the ID has since been re-registered to another connection, so a
// displaced handler cannot tear down its replacement.
func Unregister(requestID string, wc *Conn) {
	connMu.Lock()
	defer connMu.Unlock()
	cur, ok := connections[requestID]
	if !ok || (wc != nil && cur != wc) {
		return
	}
	cur.close()
	delete(connections, requestID)
}

// SendProgress pushes one progress frame to the client watching requestID.
// No-op when nobody is watching; send failures are logged and dropped.
func SendProgress(requestID, status, message string, progress float64) {
	if requestID == "" {
		return
	}
	connMu.RLock()
	wc := connections[requestID]
	connMu.RUnlock()
	if wc == nil {
		return
	}

	frame := models.DownloadProgress{
		RequestID: requestID,
		Status:    status,
		Message:   message,
		Progress:  progress,
	}
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if err := wc.conn.WriteJSON(frame); err != nil {
		log.Printf("[WS] Failed to send progress for %s: %v", requestID, err)
	}
}

func (wc *Conn) close() {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if wc.conn != nil {
		_ = wc.conn.Close()
	}
}
