package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// pairedTransports wires two Transports together over buffered Go channels,
// standing in for a real tone channel so file transfer logic can be
// exercised without audio hardware.
func pairedTransports() (a, b *Transport) {
	toB := make(chan *Frame, 16)
	toA := make(chan *Frame, 16)

	recv := func(ch <-chan *Frame) FrameReceiver {
		return func(timeout time.Duration) (*Frame, error) {
			select {
			case f := <-ch:
				return f, nil
			case <-time.After(timeout):
				return nil, os.ErrDeadlineExceeded
			}
		}
	}

	a = NewTransport(func(f *Frame) error { toB <- f; return nil }, recv(toA))
	b = NewTransport(func(f *Frame) error { toA <- f; return nil }, recv(toB))
	return a, b
}

func TestFileTransferLoopbackRoundTrip(t *testing.T) {
	senderTransport, receiverTransport := pairedTransports()

	srcDir := t.TempDir()
	dstDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "message.txt")
	content := []byte("the quick brown fox jumps over the lazy dog, repeated a few times, " +
		"the quick brown fox jumps over the lazy dog")
	if err := os.WriteFile(srcPath, content, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	sender := NewFileSender(senderTransport)
	receiver := NewFileReceiver(receiverTransport, dstDir)

	done := make(chan error, 1)
	go func() { done <- sender.SendFile(srcPath) }()

	meta, err := receiver.ReceiveFile(2 * time.Second)
	if err != nil {
		t.Fatalf("ReceiveFile: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("SendFile: %v", err)
	}

	if meta.Size != int64(len(content)) {
		t.Errorf("meta.Size = %d, want %d", meta.Size, len(content))
	}

	got, err := os.ReadFile(filepath.Join(dstDir, "message.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("received content = %q, want %q", got, content)
	}
}
