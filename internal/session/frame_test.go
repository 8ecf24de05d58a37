package session

import "testing"

func TestFrameMarshalUnmarshalRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		frame *Frame
	}{
		{"data frame", NewDataFrame(42, []byte("Hello, World!"))},
		{"ack frame", NewACKFrame(42)},
		{"nack frame", NewNACKFrame(7)},
		{"ping frame", NewPingFrame()},
		{"pong frame", NewPongFrame()},
		{"empty payload", NewDataFrame(0, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marshaled := tt.frame.Marshal()
			got, err := Unmarshal(marshaled)
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got.Type != tt.frame.Type || got.SeqNum != tt.frame.SeqNum || got.PayloadLen != tt.frame.PayloadLen {
				t.Errorf("Unmarshal = %+v, want %+v", got, tt.frame)
			}
			if string(got.Payload) != string(tt.frame.Payload) {
				t.Errorf("Payload = %q, want %q", got.Payload, tt.frame.Payload)
			}
		})
	}
}

func TestUnmarshalDetectsCorruption(t *testing.T) {
	marshaled := NewDataFrame(1, []byte("corrupt me")).Marshal()
	marshaled[len(marshaled)/2] ^= 0xFF

	if _, err := Unmarshal(marshaled); err == nil {
		t.Error("Unmarshal accepted a corrupted frame")
	}
}

func TestUnmarshalRejectsTruncated(t *testing.T) {
	marshaled := NewDataFrame(1, []byte("truncate me")).Marshal()
	if _, err := Unmarshal(marshaled[:len(marshaled)-2]); err == nil {
		t.Error("Unmarshal accepted a truncated frame")
	}
}

func TestTypeNameUnknown(t *testing.T) {
	f := &Frame{Type: 0xFE}
	if got := f.TypeName(); got != "UNKNOWN(0xfe)" {
		t.Errorf("TypeName() = %q, want %q", got, "UNKNOWN(0xfe)")
	}
}
