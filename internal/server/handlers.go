package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hyunwoo-park/tonewire/internal/audio"
	"github.com/hyunwoo-park/tonewire/internal/fec"
	"github.com/hyunwoo-park/tonewire/internal/session"
)

// Handlers holds the HTTP API handlers.
type Handlers struct {
	dev        *audio.Device
	transport  *session.Transport
	wsHub      *WSHub
	uploadDir  string
	receiveDir string
	useRS      bool
	mu         sync.Mutex
}

// NewHandlers creates new API handlers. If useRS is true, frames are
// Reed-Solomon protected in addition to their own CRC-32.
func NewHandlers(uploadDir, receiveDir string, useRS bool) *Handlers {
	return &Handlers{
		wsHub:      NewWSHub(),
		uploadDir:  uploadDir,
		receiveDir: receiveDir,
		useRS:      useRS,
	}
}

// HandleWebSocket handles WebSocket upgrade requests.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	h.wsHub.AddClient(conn)

	go func() {
		defer h.wsHub.RemoveClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// HandleUpload handles file upload for sending.
func (h *Handlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, fmt.Sprintf("Parse form: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, fmt.Sprintf("Get file: %v", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	os.MkdirAll(h.uploadDir, 0755)
	outPath := filepath.Join(h.uploadDir, header.Filename)
	outFile, err := os.Create(outPath)
	if err != nil {
		http.Error(w, fmt.Sprintf("Create file: %v", err), http.StatusInternalServerError)
		return
	}
	defer outFile.Close()

	written, err := io.Copy(outFile, file)
	if err != nil {
		http.Error(w, fmt.Sprintf("Save file: %v", err), http.StatusInternalServerError)
		return
	}

	h.wsHub.BroadcastLog("info", fmt.Sprintf("File uploaded: %s (%d bytes)", header.Filename, written))

	json.NewEncoder(w).Encode(map[string]interface{}{
		"filename": header.Filename,
		"size":     written,
		"status":   "uploaded",
	})
}

// channel opens the shared audio device (once) and wraps it as a
// session.Channel, optionally behind a Reed-Solomon codec.
func (h *Handlers) channel() (*session.Channel, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.dev == nil {
		dev, err := audio.NewDevice()
		if err != nil {
			return nil, fmt.Errorf("open audio device: %w", err)
		}
		if err := dev.Start(); err != nil {
			return nil, fmt.Errorf("start audio device: %w", err)
		}
		h.dev = dev
	}

	var codec *fec.Codec
	if h.useRS {
		c, err := fec.NewCodec()
		if err != nil {
			return nil, fmt.Errorf("build reed-solomon codec: %w", err)
		}
		codec = c
	}
	ch := session.NewChannel(h.dev, codec)
	ch.OnState = h.wsHub.BroadcastDecoderTelemetry
	return ch, nil
}

// HandleSend initiates file sending.
func (h *Handlers) HandleSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Parse request: %v", err), http.StatusBadRequest)
		return
	}

	filePath := filepath.Join(h.uploadDir, req.Filename)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	go func() {
		ch, err := h.channel()
		if err != nil {
			h.wsHub.BroadcastStatus("error", fmt.Sprintf("Channel open failed: %v", err))
			return
		}

		transport := session.NewTransport(ch.Send, ch.Receive)
		h.mu.Lock()
		h.transport = transport
		h.mu.Unlock()

		h.wsHub.BroadcastStatus("connecting", "Performing handshake...")
		if err := transport.Handshake(); err != nil {
			h.wsHub.BroadcastStatus("error", fmt.Sprintf("Handshake failed: %v", err))
			return
		}

		h.wsHub.BroadcastStatus("transferring", "Sending file...")

		sender := session.NewFileSender(transport)
		sender.OnProgress(func(sent, total int64, status string) {
			progress := float64(sent) / float64(total)
			h.wsHub.BroadcastProgress("transferring", status, progress, sent, total)
		})

		if err := sender.SendFile(filePath); err != nil {
			h.wsHub.BroadcastStatus("error", fmt.Sprintf("Send failed: %v", err))
			return
		}

		h.wsHub.BroadcastStatus("completed", "File sent successfully!")
	}()

	json.NewEncoder(w).Encode(map[string]string{"status": "sending"})
}

// HandleReceiveStart starts receiving mode.
func (h *Handlers) HandleReceiveStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	go func() {
		ch, err := h.channel()
		if err != nil {
			h.wsHub.BroadcastStatus("error", fmt.Sprintf("Channel open failed: %v", err))
			return
		}

		transport := session.NewTransport(ch.Send, ch.Receive)
		h.mu.Lock()
		h.transport = transport
		h.mu.Unlock()

		h.wsHub.BroadcastStatus("connecting", "Waiting for handshake...")
		if err := transport.WaitForHandshake(30 * time.Second); err != nil {
			h.wsHub.BroadcastStatus("error", fmt.Sprintf("Handshake failed: %v", err))
			return
		}

		h.wsHub.BroadcastStatus("transferring", "Receiving file...")

		os.MkdirAll(h.receiveDir, 0755)
		receiver := session.NewFileReceiver(transport, h.receiveDir)
		receiver.OnProgress(func(received, total int64, status string) {
			progress := float64(received) / float64(total)
			h.wsHub.BroadcastProgress("transferring", status, progress, received, total)
		})

		meta, err := receiver.ReceiveFile(60 * time.Second)
		if err != nil {
			h.wsHub.BroadcastStatus("error", fmt.Sprintf("Receive failed: %v", err))
			return
		}

		h.wsHub.BroadcastStatus("completed", fmt.Sprintf("File received: %s (%d bytes)", meta.Filename, meta.Size))
	}()

	json.NewEncoder(w).Encode(map[string]string{"status": "receiving"})
}

// HandleStatus returns current session status.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	active := h.transport != nil
	h.mu.Unlock()

	status := "idle"
	if active {
		status = "active"
	}

	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

// HandleDevices lists available audio devices.
func (h *Handlers) HandleDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := audio.ListDevices()
	if err != nil {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"devices":   devices,
		"hasInput":  audio.HasInputDevice(),
		"hasOutput": audio.HasOutputDevice(),
	})
}

// HandleDownload serves received files for download.
func (h *Handlers) HandleDownload(w http.ResponseWriter, r *http.Request) {
	filename := strings.TrimPrefix(r.URL.Path, "/api/download/")
	if filename == "" {
		http.Error(w, "Filename required", http.StatusBadRequest)
		return
	}

	filePath := filepath.Join(h.receiveDir, filename)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeFile(w, r, filePath)
}
