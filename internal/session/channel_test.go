package session

import (
	"testing"

	"github.com/hyunwoo-park/tonewire/internal/fec"
	"github.com/hyunwoo-park/tonewire/internal/modem"
)

// runThroughWire drives render's output through a real modem.Decoder, the
// same path Channel.Receive takes off a live device, without needing one.
func runThroughWire(t *testing.T, samples []int32) []byte {
	t.Helper()
	d := modem.NewDecoder()
	var stuffed []byte
	for _, s := range samples {
		switch v := d.Feed(int(s)); {
		case v == modem.NoData:
			continue
		case v == modem.Eof:
			return stuffed
		default:
			stuffed = append(stuffed, byte(v))
		}
	}
	t.Fatal("decoder never reached Eof")
	return nil
}

func TestChannelRoundTripsFrameContainingZeroBytes(t *testing.T) {
	// SeqNum 0 and a payload under 256 bytes (PayloadLen's high byte 0)
	// guarantee Frame.Marshal produces internal zero bytes.
	ch := &Channel{enc: modem.NewEncoder()}
	frame := NewDataFrame(0, []byte{0x00, 0x01, 0x00, 0x00, 0xFF})

	samples, err := ch.render(frame)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	stuffed := runThroughWire(t, samples)

	got, err := ch.toFrame(stuffed)
	if err != nil {
		t.Fatalf("toFrame: %v", err)
	}
	if got.Type != frame.Type || got.SeqNum != frame.SeqNum || got.PayloadLen != frame.PayloadLen {
		t.Errorf("toFrame() = %+v, want %+v", got, frame)
	}
	if string(got.Payload) != string(frame.Payload) {
		t.Errorf("Payload = %v, want %v", got.Payload, frame.Payload)
	}
}

func TestChannelRoundTripsFrameWithReedSolomon(t *testing.T) {
	codec, err := fec.NewCodec()
	if err != nil {
		t.Fatalf("build codec: %v", err)
	}
	ch := &Channel{enc: modem.NewEncoder(), rs: codec}
	frame := NewACKFrame(0)

	samples, err := ch.render(frame)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	stuffed := runThroughWire(t, samples)

	got, err := ch.toFrame(stuffed)
	if err != nil {
		t.Fatalf("toFrame: %v", err)
	}
	if got.Type != frame.Type || got.SeqNum != frame.SeqNum {
		t.Errorf("toFrame() = %+v, want %+v", got, frame)
	}
}
