package session

import (
	"fmt"
	"time"

	"github.com/hyunwoo-park/tonewire/internal/audio"
	"github.com/hyunwoo-park/tonewire/internal/fec"
	"github.com/hyunwoo-park/tonewire/internal/modem"
)

// Channel carries Frames over a live audio device using the tone-channel
// wire format, optionally protected by a Reed-Solomon Codec in addition to
// the Frame's own CRC-32. Frame bytes are byte-stuffed (cobsEncode) before
// they ever reach modem.Encoder, since a raw Frame routinely contains
// internal zero bytes (SeqNum 0, PayloadLen's high byte, CRC-32 bytes) that
// the wire format would otherwise read as its own end-of-stream marker.
type Channel struct {
	dev      *audio.Device
	enc      *modem.Encoder
	rs       *fec.Codec // nil disables Reed-Solomon
	hasInput bool

	// OnState, if set, is called with a telemetry snapshot and the number of
	// data bytes decoded so far after every raw sample Receive feeds to the
	// decoder, so a caller (the monitoring server) can watch clock lock-on
	// in real time rather than waiting for the whole frame.
	OnState func(modem.Telemetry, int)
}

// NewChannel wraps dev for frame I/O. If rs is non-nil, every frame is
// Reed-Solomon encoded before transmission and reconstructed on receipt.
func NewChannel(dev *audio.Device, rs *fec.Codec) *Channel {
	return &Channel{dev: dev, enc: modem.NewEncoder(), rs: rs, hasInput: audio.HasInputDevice()}
}

// Send renders frame through the wire format and writes it to the device.
func (c *Channel) Send(frame *Frame) error {
	samples, err := c.render(frame)
	if err != nil {
		return err
	}
	return c.dev.WriteAll(samples)
}

// render applies Reed-Solomon (if enabled) and byte-stuffing and encodes
// frame into the core wire format's sample domain. It touches neither the
// device nor any package state, so tests can drive it directly.
func (c *Channel) render(frame *Frame) ([]int32, error) {
	payload := frame.Marshal()
	if c.rs != nil {
		encoded, err := c.rs.Encode(payload)
		if err != nil {
			return nil, fmt.Errorf("rs encode: %w", err)
		}
		payload = encoded
	}
	return c.enc.Encode(cobsEncode(payload)), nil
}

// Receive reads from the device until a full frame is decoded or timeout
// elapses.
func (c *Channel) Receive(timeout time.Duration) (*Frame, error) {
	if !c.hasInput {
		return nil, fmt.Errorf("no input device available")
	}

	d := modem.NewDecoder()
	var stuffed []byte

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		samples, err := c.dev.ReadSamples()
		if err != nil {
			return nil, fmt.Errorf("read samples: %w", err)
		}
		for _, s := range samples {
			v := d.Feed(s)
			if c.OnState != nil {
				c.OnState(d.Snapshot(), len(stuffed))
			}
			switch {
			case v == modem.NoData:
				continue
			case v == modem.Eof:
				return c.toFrame(stuffed)
			default:
				stuffed = append(stuffed, byte(v))
			}
		}
	}
	return nil, fmt.Errorf("timeout waiting for frame")
}

// toFrame reverses byte-stuffing and Reed-Solomon (if enabled) and parses
// the recovered bytes as a Frame. Like render, it touches no device state.
func (c *Channel) toFrame(stuffed []byte) (*Frame, error) {
	payload, err := cobsDecode(stuffed)
	if err != nil {
		return nil, fmt.Errorf("cobs decode: %w", err)
	}
	if c.rs != nil {
		decoded, err := c.rs.Decode(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("rs decode: %w", err)
		}
		payload = decoded
	}
	return Unmarshal(payload)
}
