package audio

import (
	"bytes"
	"io"
	"math"
	"testing"
)

func TestPCMWriterWritesFourBytesPerSample(t *testing.T) {
	samples := []int32{0, 1, -1, 1 << 20, -(1 << 20), math.MaxInt32, math.MinInt32}

	var buf bytes.Buffer
	w := NewPCMWriter(&buf)
	if err := w.WriteAll(samples); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if buf.Len() != len(samples)*4 {
		t.Fatalf("buf.Len() = %d, want %d", buf.Len(), len(samples)*4)
	}
}

func TestPCMReaderRescalesToUnitRange(t *testing.T) {
	var buf bytes.Buffer
	w := NewPCMWriter(&buf)
	for _, s := range []int32{math.MinInt32, 0, math.MaxInt32} {
		if err := w.Write(s); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	w.Flush()

	r := NewPCMReader(&buf)
	min, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	mid, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	max, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if min < 0 || min > mid {
		t.Errorf("min sample = %d, want in [0, %d]", min, mid)
	}
	if mid > max {
		t.Errorf("mid sample = %d, want <= max %d", mid, max)
	}
	if max >= pcmScale {
		t.Errorf("max sample = %d, want < %d", max, pcmScale)
	}
}

func TestPCMReaderEOF(t *testing.T) {
	r := NewPCMReader(bytes.NewReader(nil))
	if _, err := r.Read(); err != io.EOF {
		t.Errorf("Read() error = %v, want io.EOF", err)
	}
}
