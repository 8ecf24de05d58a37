package modem

import "testing"

func TestEncoderSymbolLength(t *testing.T) {
	e := NewEncoder()
	out := e.Encode([]byte("A"))

	// 2 leading zero symbols + 8 sync symbols + 1 marker symbol + 1 data
	// symbol + 2 trailing zero symbols, each DefaultSampleCount samples.
	wantSymbols := 2 + (FrequencyCount - 1) + 1 + 1 + 2
	want := wantSymbols * e.SampleCount
	if len(out) != want {
		t.Errorf("len(Encode) = %d, want %d", len(out), want)
	}
}

func TestEncoderLeadingSymbolsAreSilence(t *testing.T) {
	e := NewEncoder()
	out := e.Encode([]byte{0x42})
	for i := 0; i < 2*e.SampleCount; i++ {
		if out[i] != 0 {
			t.Fatalf("sample %d of leading silence = %d, want 0", i, out[i])
		}
	}
}

func TestEncoderDataSymbolCarriesByte(t *testing.T) {
	e := NewEncoder()
	out := e.symbol(SyncBit|0x42, DataAmplitude)
	if len(out) != e.SampleCount {
		t.Fatalf("len(symbol) = %d, want %d", len(out), e.SampleCount)
	}
	allZero := true
	for _, s := range out {
		if s != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Error("expected a non-silent waveform for a non-zero word")
	}
}
