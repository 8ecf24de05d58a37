package session

import (
	"bytes"
	"testing"
)

func TestCobsRoundTrip(t *testing.T) {
	long := bytes.Repeat([]byte{1, 2, 3}, 150) // > 254 bytes, forces an 0xFF block

	cases := [][]byte{
		nil,
		{0},
		{0, 0, 0},
		{1, 2, 3},
		{0, 1, 2, 0, 0, 3, 0},
		{5, 0}, // ends on a literal zero
		long,
	}

	for _, data := range cases {
		encoded := cobsEncode(data)
		for _, b := range encoded {
			if b == 0 {
				t.Fatalf("cobsEncode(%v) = %v contains a zero byte", data, encoded)
			}
		}
		decoded, err := cobsDecode(encoded)
		if err != nil {
			t.Fatalf("cobsDecode(%v): %v", encoded, err)
		}
		if !bytes.Equal(decoded, data) {
			t.Errorf("round trip of %v = %v, want %v", data, decoded, data)
		}
	}
}

func TestCobsDecodeRejectsZeroCodeByte(t *testing.T) {
	if _, err := cobsDecode([]byte{1, 0}); err == nil {
		t.Error("cobsDecode accepted a zero code byte")
	}
}

func TestCobsDecodeRejectsTruncated(t *testing.T) {
	if _, err := cobsDecode([]byte{5, 1, 2}); err == nil {
		t.Error("cobsDecode accepted a code byte overrunning the buffer")
	}
}
