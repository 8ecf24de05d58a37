package modem

import (
	"math"
	"testing"
)

func TestFourierAccumulatorReadyAtSampleCount(t *testing.T) {
	f := NewFourierAccumulator(MinSampleCount)
	n := f.SampleCount()
	for i := 0; i < n-1; i++ {
		if f.AddSample(0) {
			t.Fatalf("AddSample reported ready early at i=%d", i)
		}
	}
	if !f.AddSample(0) {
		t.Fatal("expected AddSample to report ready on the n-th sample")
	}
}

func TestFourierAccumulatorClampsSampleCount(t *testing.T) {
	f := NewFourierAccumulator(1)
	if f.SampleCount() != MinSampleCount {
		t.Errorf("SampleCount() = %d, want %d", f.SampleCount(), MinSampleCount)
	}
}

func TestFourierAccumulatorDetectsMatchedTone(t *testing.T) {
	n := DefaultSampleCount
	f := NewFourierAccumulator(n)
	target := frequencyForBit(0)
	for i := 0; i < n; i++ {
		sample := math.Sin(toneAngle(target, i, n))
		f.AddSample(sample)
	}
	p := f.ToFrequencies()
	if p[target] <= BitPresentThreshold {
		t.Errorf("power at matched frequency %v too low: %v", target, p[target])
	}
	for fr := 1; fr <= FrequencyCount; fr++ {
		if fr == target {
			continue
		}
		if p[fr] > BitPresentThreshold {
			t.Errorf("unexpected power at unrelated frequency %d: %v", fr, p[fr])
		}
	}
}

func TestFourierAccumulatorSilenceHasNoPower(t *testing.T) {
	n := DefaultSampleCount
	f := NewFourierAccumulator(n)
	for i := 0; i < n; i++ {
		f.AddSample(0)
	}
	p := f.ToFrequencies()
	for fr := 1; fr <= FrequencyCount; fr++ {
		if p[fr] > BitPresentThreshold {
			t.Errorf("unexpected power at frequency %d during silence: %v", fr, p[fr])
		}
	}
}

func TestFourierAccumulatorResetClearsState(t *testing.T) {
	f := NewFourierAccumulator(MinSampleCount)
	f.AddSample(1)
	f.Reset()
	if f.Index() != 0 {
		t.Errorf("Index() = %d after Reset, want 0", f.Index())
	}
	p := f.ToFrequencies()
	for fr := 1; fr <= FrequencyCount; fr++ {
		if p[fr] != 0 {
			t.Errorf("power at frequency %d not cleared by Reset: %v", fr, p[fr])
		}
	}
}
