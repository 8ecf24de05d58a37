// Command toneserver runs the tonewire monitoring and control server: a
// small HTTP API plus a WebSocket feed of decoder telemetry, backed by a
// live PortAudio device.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/hyunwoo-park/tonewire/internal/audio"
	"github.com/hyunwoo-park/tonewire/internal/server"
)

func main() {
	addr := flag.StringP("addr", "a", "0.0.0.0:8080", "server listen address")
	uploadDir := flag.String("upload-dir", "./uploads", "directory for files staged to send")
	receiveDir := flag.String("receive-dir", "./received", "directory for files written on receipt")
	staticDir := flag.String("static-dir", "./web/static", "directory serving the web UI")
	useRS := flag.Bool("fec", true, "protect session frames with Reed-Solomon in addition to CRC-32")
	listDevices := flag.BoolP("list-devices", "l", false, "list audio devices and exit")
	flag.Parse()

	if err := audio.Init(); err != nil {
		log.Fatalf("initialize portaudio: %v", err)
	}
	defer audio.Terminate()

	if *listDevices {
		if err := audio.PrintDevices(); err != nil {
			log.Fatalf("list devices: %v", err)
		}
		return
	}

	os.MkdirAll(*uploadDir, 0755)
	os.MkdirAll(*receiveDir, 0755)

	handlers := server.NewHandlers(*uploadDir, *receiveDir, *useRS)
	srv := server.NewServer(*addr, handlers, *staticDir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nshutting down...")
		audio.Terminate()
		os.Exit(0)
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
