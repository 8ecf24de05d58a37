package server

import (
	"fmt"
	"log"
	"net/http"
)

// Server fronts the monitoring UI and the send/receive REST+WebSocket API
// that drives a session.Channel over the audio device.
type Server struct {
	mux       *http.ServeMux
	handler   *Handlers
	addr      string
	staticDir string
}

// NewServer builds a Server bound to addr, routing API calls to handler and
// serving the monitoring UI's static assets from staticDir.
func NewServer(addr string, handler *Handlers, staticDir string) *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		handler:   handler,
		addr:      addr,
		staticDir: staticDir,
	}
	s.setupRoutes()
	return s
}

// setupRoutes wires the file-transfer API, the decoder telemetry WebSocket,
// and the static monitoring UI onto the mux.
func (s *Server) setupRoutes() {
	// File transfer API
	s.mux.HandleFunc("/api/upload", s.handler.HandleUpload)
	s.mux.HandleFunc("/api/send", s.handler.HandleSend)
	s.mux.HandleFunc("/api/receive/start", s.handler.HandleReceiveStart)
	s.mux.HandleFunc("/api/status", s.handler.HandleStatus)
	s.mux.HandleFunc("/api/devices", s.handler.HandleDevices)
	s.mux.HandleFunc("/api/download/", s.handler.HandleDownload)

	// Decoder telemetry WebSocket
	s.mux.HandleFunc("/ws", s.handler.HandleWebSocket)

	// Monitoring UI static assets
	s.mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
}

// Start blocks serving the monitoring UI and API on s.addr.
func (s *Server) Start() error {
	log.Printf("Starting server on %s", s.addr)
	fmt.Printf("\n  tonewire monitoring server running at http://%s\n\n", s.addr)
	return http.ListenAndServe(s.addr, s.mux)
}
