// Package fec provides the integrity/error-correction layer used by the
// session layer: a mandatory CRC-32 frame check and an optional
// Reed-Solomon code for channels too noisy for retries alone. Neither
// lives in the core wire format decoder; both apply only to session
// frames carried as its payload.
package fec

import (
	"encoding/binary"
	"hash/crc32"
)

// Checksum computes the IEEE CRC-32 of data.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// Append returns data with its big-endian CRC-32 appended.
func Append(data []byte) []byte {
	out := make([]byte, len(data)+4)
	copy(out, data)
	binary.BigEndian.PutUint32(out[len(data):], Checksum(data))
	return out
}

// Strip splits dataWithChecksum into (payload, ok), verifying the trailing
// CRC-32 against the payload that precedes it.
func Strip(dataWithChecksum []byte) ([]byte, bool) {
	if len(dataWithChecksum) < 4 {
		return nil, false
	}
	split := len(dataWithChecksum) - 4
	payload := dataWithChecksum[:split]
	want := binary.BigEndian.Uint32(dataWithChecksum[split:])
	return payload, Checksum(payload) == want
}
