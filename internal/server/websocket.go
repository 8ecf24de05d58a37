package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/hyunwoo-park/tonewire/internal/modem"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// WSMessage represents a WebSocket message.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// ProgressPayload represents a progress update.
type ProgressPayload struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Progress float64 `json:"progress"` // 0.0 to 1.0
	BytesSent   int64  `json:"bytesSent,omitempty"`
	TotalBytes  int64  `json:"totalBytes,omitempty"`
}

// WSHub manages WebSocket connections.
type WSHub struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewWSHub creates a new WebSocket hub.
func NewWSHub() *WSHub {
	return &WSHub{
		clients: make(map[*websocket.Conn]bool),
	}
}

// AddClient registers a new WebSocket connection.
func (h *WSHub) AddClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	log.Printf("WebSocket client connected (%d total)", len(h.clients))
}

// RemoveClient removes a WebSocket connection.
func (h *WSHub) RemoveClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
	log.Printf("WebSocket client disconnected (%d remaining)", len(h.clients))
}

// Broadcast sends a message to all connected clients.
func (h *WSHub) Broadcast(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("WebSocket marshal error: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.clients {
		err := conn.WriteMessage(websocket.TextMessage, data)
		if err != nil {
			log.Printf("WebSocket write error: %v", err)
			go h.RemoveClient(conn)
		}
	}
}

// BroadcastProgress sends a progress update to all clients.
func (h *WSHub) BroadcastProgress(status, message string, progress float64, bytesSent, totalBytes int64) {
	h.Broadcast(WSMessage{
		Type: "progress",
		Payload: ProgressPayload{
			Status:     status,
			Message:    message,
			Progress:   progress,
			BytesSent:  bytesSent,
			TotalBytes: totalBytes,
		},
	})
}

// BroadcastStatus sends a status update to all clients.
func (h *WSHub) BroadcastStatus(status, message string) {
	h.Broadcast(WSMessage{
		Type: "status",
		Payload: map[string]string{
			"status":  status,
			"message": message,
		},
	})
}

// BroadcastLog sends a log message to all clients.
func (h *WSHub) BroadcastLog(level, message string) {
	h.Broadcast(WSMessage{
		Type: "log",
		Payload: map[string]string{
			"level":   level,
			"message": message,
		},
	})
}

// DecoderStatePayload telemeters one Decoder.Feed transition so a browser
// can plot the symbol clock locking on, independent of whatever bytes it
// eventually yields.
type DecoderStatePayload struct {
	State       string  `json:"state"`
	SampleCount int     `json:"sampleCount"`
	Phase       int     `json:"phase"`
	BytesOut    int     `json:"bytesOut"`
	Polarity    bool    `json:"polarity"`
	Range       float64 `json:"range"`
}

// BroadcastDecoderState sends a decoder telemetry snapshot to all clients.
func (h *WSHub) BroadcastDecoderState(p DecoderStatePayload) {
	h.Broadcast(WSMessage{Type: "decoder_state", Payload: p})
}

// BroadcastDecoderTelemetry converts a modem.Telemetry snapshot into a
// DecoderStatePayload and broadcasts it. bytesOut is the caller's own count
// of decoded bytes so far, since the snapshot itself only covers the
// in-flight symbol.
func (h *WSHub) BroadcastDecoderTelemetry(t modem.Telemetry, bytesOut int) {
	h.BroadcastDecoderState(DecoderStatePayload{
		State:       t.State.String(),
		SampleCount: t.SampleCount,
		Phase:       t.Phase,
		BytesOut:    bytesOut,
		Polarity:    t.Polarity,
		Range:       float64(t.Range),
	})
}
