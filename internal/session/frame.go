// Package session layers reliable, checksummed message delivery on top of
// the raw tone-channel byte stream. None of this lives in the core wire
// format decoder: the decoder Non-goals exclude error-correction coding
// and multi-byte framing beyond a single start marker and zero-byte
// terminator, but nothing stops a higher layer from treating the
// decoder's output as an unreliable byte channel and adding its own
// framing and retries on top, the way PPP runs over a plain UART.
package session

import (
	"encoding/binary"
	"fmt"

	"github.com/hyunwoo-park/tonewire/internal/fec"
)

// Frame types.
const (
	TypeData     byte = 0x01
	TypeACK      byte = 0x02
	TypeNACK     byte = 0x03
	TypeControl  byte = 0x04
	TypeFileMeta byte = 0x05
	TypeFileEnd  byte = 0x06
	TypePing     byte = 0x07
	TypePong     byte = 0x08
)

// Frame layout limits.
const (
	HeaderSize     = 4
	MaxPayloadSize = 1024
	checksumSize   = 4
)

// Frame is the session layer's unit of reliable delivery:
// [Type(1B)][SeqNum(1B)][PayloadLen(2B)][Payload][CRC-32(4B)]. The whole
// encoded frame is carried as the data bytes of a single tone-channel
// transmission (one modem.Encoder.Encode call per frame).
type Frame struct {
	Type       byte
	SeqNum     byte
	PayloadLen uint16
	Payload    []byte
}

// TypeName returns a human-readable frame type name for logging.
func (f *Frame) TypeName() string {
	switch f.Type {
	case TypeData:
		return "DATA"
	case TypeACK:
		return "ACK"
	case TypeNACK:
		return "NACK"
	case TypeControl:
		return "CONTROL"
	case TypeFileMeta:
		return "FILE_META"
	case TypeFileEnd:
		return "FILE_END"
	case TypePing:
		return "PING"
	case TypePong:
		return "PONG"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02x)", f.Type)
	}
}

// NewDataFrame builds a DATA frame carrying payload.
func NewDataFrame(seqNum byte, payload []byte) *Frame {
	return &Frame{Type: TypeData, SeqNum: seqNum, PayloadLen: uint16(len(payload)), Payload: payload}
}

// NewACKFrame builds an ACK frame for seqNum.
func NewACKFrame(seqNum byte) *Frame {
	return &Frame{Type: TypeACK, SeqNum: seqNum}
}

// NewNACKFrame builds a NACK frame for seqNum.
func NewNACKFrame(seqNum byte) *Frame {
	return &Frame{Type: TypeNACK, SeqNum: seqNum}
}

// NewPingFrame builds a PING frame.
func NewPingFrame() *Frame { return &Frame{Type: TypePing} }

// NewPongFrame builds a PONG frame.
func NewPongFrame() *Frame { return &Frame{Type: TypePong} }

// Marshal serializes the frame with its trailing CRC-32.
func (f *Frame) Marshal() []byte {
	total := HeaderSize + int(f.PayloadLen) + checksumSize
	buf := make([]byte, total)

	buf[0] = f.Type
	buf[1] = f.SeqNum
	binary.BigEndian.PutUint16(buf[2:4], f.PayloadLen)
	if f.PayloadLen > 0 {
		copy(buf[HeaderSize:], f.Payload[:f.PayloadLen])
	}

	checksum := fec.Checksum(buf[:HeaderSize+int(f.PayloadLen)])
	binary.BigEndian.PutUint32(buf[total-checksumSize:], checksum)
	return buf
}

// Unmarshal parses and checksum-verifies a Frame from data.
func Unmarshal(data []byte) (*Frame, error) {
	if len(data) < HeaderSize+checksumSize {
		return nil, fmt.Errorf("frame too short: %d bytes", len(data))
	}

	f := &Frame{
		Type:       data[0],
		SeqNum:     data[1],
		PayloadLen: binary.BigEndian.Uint16(data[2:4]),
	}

	want := HeaderSize + int(f.PayloadLen) + checksumSize
	if len(data) < want {
		return nil, fmt.Errorf("frame truncated: have %d bytes, need %d", len(data), want)
	}

	gotChecksum := fec.Checksum(data[:HeaderSize+int(f.PayloadLen)])
	wantChecksum := binary.BigEndian.Uint32(data[want-checksumSize : want])
	if gotChecksum != wantChecksum {
		return nil, fmt.Errorf("checksum mismatch: got 0x%08x, want 0x%08x", gotChecksum, wantChecksum)
	}

	if f.PayloadLen > 0 {
		f.Payload = append([]byte(nil), data[HeaderSize:HeaderSize+int(f.PayloadLen)]...)
	}
	return f, nil
}
