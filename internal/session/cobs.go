package session

import "fmt"

// cobsEncode escapes every zero byte out of data using Consistent Overhead
// Byte Stuffing, so the result can ride the core wire format's own
// zero-byte stream terminator without truncating the frame: Frame.Marshal
// produces raw binary (SeqNum, the high byte of PayloadLen, and CRC-32
// bytes are all routinely zero), but modem.Decoder treats any zero data
// byte as permanent Eof. Overhead is at most one byte per 254 input bytes
// plus one.
func cobsEncode(data []byte) []byte {
	out := make([]byte, 1, len(data)+len(data)/254+2)
	codeIdx := 0
	code := byte(1)
	for _, b := range data {
		if b == 0 {
			out[codeIdx] = code
			codeIdx = len(out)
			out = append(out, 0)
			code = 1
			continue
		}
		out = append(out, b)
		code++
		if code == 0xFF {
			out[codeIdx] = code
			codeIdx = len(out)
			out = append(out, 0)
			code = 1
		}
	}
	out[codeIdx] = code
	return out
}

// cobsDecode reverses cobsEncode.
func cobsDecode(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data))
	idx := 0
	for idx < len(data) {
		code := data[idx]
		if code == 0 {
			return nil, fmt.Errorf("cobs: unexpected zero code byte at offset %d", idx)
		}
		idx++
		n := int(code) - 1
		if idx+n > len(data) {
			return nil, fmt.Errorf("cobs: code %d exceeds %d remaining bytes", code, len(data)-idx)
		}
		out = append(out, data[idx:idx+n]...)
		idx += n
		if code != 0xFF && idx != len(data) {
			out = append(out, 0)
		}
	}
	return out, nil
}
