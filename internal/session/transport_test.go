package session

import (
	"errors"
	"testing"
	"time"
)

func TestTransportSendFrameSucceedsOnFirstTry(t *testing.T) {
	var sent *Frame
	sender := func(f *Frame) error { sent = f; return nil }
	receiver := func(time.Duration) (*Frame, error) { return NewACKFrame(sent.SeqNum), nil }

	tr := NewTransport(sender, receiver)
	if err := tr.SendFrame(NewDataFrame(0, []byte("hi"))); err != nil {
		t.Fatalf("SendFrame: %v", err)
	}

	s, _, retries, _ := tr.Stats()
	if s != 1 || retries != 0 {
		t.Errorf("Stats() sent=%d retries=%d, want 1,0", s, retries)
	}
}

func TestTransportRetriesOnTimeout(t *testing.T) {
	attempts := 0
	sender := func(f *Frame) error { attempts++; return nil }
	receiver := func(time.Duration) (*Frame, error) { return nil, errors.New("timeout") }

	tr := NewTransport(sender, receiver)
	err := tr.SendFrame(NewDataFrame(0, []byte("hi")))
	if err == nil {
		t.Fatal("expected SendFrame to fail after exhausting retries")
	}
	if attempts != MaxRetries+1 {
		t.Errorf("attempts = %d, want %d", attempts, MaxRetries+1)
	}

	_, _, retries, errs := tr.Stats()
	if retries != MaxRetries {
		t.Errorf("retries = %d, want %d", retries, MaxRetries)
	}
	if errs != 1 {
		t.Errorf("errors = %d, want 1", errs)
	}
}

func TestTransportRetriesOnNACK(t *testing.T) {
	attempts := 0
	sender := func(f *Frame) error {
		attempts++
		return nil
	}
	receiver := func(time.Duration) (*Frame, error) {
		if attempts < 2 {
			return NewNACKFrame(0), nil
		}
		return NewACKFrame(0), nil
	}

	tr := NewTransport(sender, receiver)
	if err := tr.SendFrame(NewDataFrame(0, []byte("hi"))); err != nil {
		t.Fatalf("SendFrame: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestTransportReceiveFrameSendsACK(t *testing.T) {
	var acked *Frame
	sender := func(f *Frame) error { acked = f; return nil }
	receiver := func(time.Duration) (*Frame, error) { return NewDataFrame(3, []byte("payload")), nil }

	tr := NewTransport(sender, receiver)
	frame, err := tr.ReceiveFrame(time.Second)
	if err != nil {
		t.Fatalf("ReceiveFrame: %v", err)
	}
	if string(frame.Payload) != "payload" {
		t.Errorf("Payload = %q, want %q", frame.Payload, "payload")
	}
	if acked == nil || acked.Type != TypeACK || acked.SeqNum != 3 {
		t.Errorf("expected ACK seq=3, got %+v", acked)
	}
}
