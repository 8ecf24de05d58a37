package modem

import "testing"

func TestDecodeWord(t *testing.T) {
	var p [FrequencyCount + 1]float64
	p[frequencyForBit(0)] = 1.0 // data bit 0
	p[frequencyForBit(3)] = 1.0 // data bit 3
	p[frequencyForBit(8)] = 1.0 // sync bit

	got := decodeWord(p)
	want := 1<<0 | 1<<3 | SyncBit
	if got != want {
		t.Errorf("decodeWord() = %#x, want %#x", got, want)
	}
}

func TestDecodeWordBelowThreshold(t *testing.T) {
	var p [FrequencyCount + 1]float64
	p[frequencyForBit(0)] = BitPresentThreshold // not strictly greater, must not count
	if got := decodeWord(p); got != 0 {
		t.Errorf("decodeWord() = %#x, want 0", got)
	}
}

func TestWaveFirstHalfDone(t *testing.T) {
	// still rising toward the peak: not done
	if waveFirstHalfDone(true, 50, 0, 50) {
		t.Error("expected first half not done while still at the extremum")
	}
	// fallen back past the baseline on the far side: done
	if !waveFirstHalfDone(true, -1, 0, 100) {
		t.Error("expected first half done once sample undercuts signalMin")
	}
}

func TestWaveSecondHalfDone(t *testing.T) {
	if waveSecondHalfDone(true, -1, -10, -100, 100) {
		t.Error("expected second half not done before crossing midpoint")
	}
	if !waveSecondHalfDone(true, 5, -5, -100, 100) {
		t.Error("expected second half done once sample crosses midpoint upward")
	}
}

func TestBulkDriftCorrection(t *testing.T) {
	if _, apply := bulkDriftCorrection(1, 0, 1); apply {
		t.Error("expected no correction when phase2 is zero")
	}
	if _, apply := bulkDriftCorrection(1, -1, 1); apply {
		t.Error("expected no correction for mixed-sign phases")
	}
	correction, apply := bulkDriftCorrection(2, 3, 4)
	if !apply {
		t.Fatal("expected correction for three same-signed phases")
	}
	if correction != 3 {
		t.Errorf("bulkDriftCorrection() = %d, want 3", correction)
	}
}

func TestRoundPhase(t *testing.T) {
	if got := roundPhase(0.1, 20); got != 2 {
		t.Errorf("roundPhase(0.1, 20) = %d, want 2", got)
	}
	if got := roundPhase(-0.1, 20); got != -2 {
		t.Errorf("roundPhase(-0.1, 20) = %d, want -2", got)
	}
}
