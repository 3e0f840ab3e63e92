package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/strichware/bardec/internal/store"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origins are not restricted; the CORS origin config covers the
		// HTTP endpoints and the feed carries no sensitive data.
		return true
	},
}

// ScanEvent is a message pushed over the scan feed.
type ScanEvent struct {
	Type string     `json:"type"`
	Scan store.Scan `json:"scan"`
}

// scansWebSocketHandler streams newly recorded scans to the client until it
// disconnects.
func (s *Server) scansWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade connection to websocket", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("websocket scan feed connected", "remote_addr", r.RemoteAddr)

	subID, scans := s.store.Subscribe()
	defer s.store.Unsubscribe(subID)

	// Reader goroutine: drains client messages and signals disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		})
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Debug("websocket read error", "error", err)
				}
				return
			}
			websocketMessagesTotal.WithLabelValues("received").Inc()
		}
	}()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case scan, ok := <-scans:
			if !ok {
				return
			}
			if !s.sendScanEvent(conn, scan) {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (s *Server) sendScanEvent(conn *websocket.Conn, scan store.Scan) bool {
	data, err := json.Marshal(ScanEvent{Type: "scan", Scan: scan})
	if err != nil {
		slog.Error("failed to marshal scan event", "error", err)
		return true
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Debug("failed to send scan event", "error", err)
		return false
	}
	websocketMessagesTotal.WithLabelValues("sent").Inc()
	return true
}
