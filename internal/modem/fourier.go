package modem

import "math"

// tonePair holds the running sine/cosine correlation sums for one target
// frequency.
type tonePair struct {
	sin float64
	cos float64
}

// FourierAccumulator is a sparse discrete Fourier transform correlating an
// incoming symbol window against the nine target frequencies of the wire
// format. It is parameterized by sampleCount, the current estimate of
// samples per symbol, and is reset after every completed symbol.
type FourierAccumulator struct {
	sampleCount int
	i           int
	tones       [FrequencyCount + 1]tonePair // 1-based; index 0 unused
}

// NewFourierAccumulator creates an accumulator for the given symbol length.
// sampleCount is clamped to MinSampleCount, matching the synchronizer's
// seed rule.
func NewFourierAccumulator(sampleCount int) *FourierAccumulator {
	if sampleCount < MinSampleCount {
		sampleCount = MinSampleCount
	}
	return &FourierAccumulator{sampleCount: sampleCount}
}

// SampleCount returns the accumulator's current symbol length.
func (f *FourierAccumulator) SampleCount() int { return f.sampleCount }

// SetSampleCount updates the symbol length, clamped to MinSampleCount. The
// new length applies from the next AddSample call on, including to a
// symbol already in progress.
func (f *FourierAccumulator) SetSampleCount(n int) {
	if n < MinSampleCount {
		n = MinSampleCount
	}
	f.sampleCount = n
}

// Index returns the number of samples consumed into the current symbol.
func (f *FourierAccumulator) Index() int { return f.i }

// AddSample accumulates one conditioned sample and reports whether the
// symbol window is now complete (i == sampleCount).
func (f *FourierAccumulator) AddSample(fsample float64) (ready bool) {
	n := f.sampleCount
	scale := fsample * CorrelatorScale / float64(n)
	for fr := 1; fr <= FrequencyCount; fr++ {
		angle := toneAngle(fr, f.i, n)
		f.tones[fr].sin += math.Sin(angle) * scale
		f.tones[fr].cos += math.Cos(angle) * scale
	}
	f.i++
	return f.i == n
}

// ToFrequencies returns the squared magnitude p_f = sin^2 + cos^2 for each
// of the nine target frequencies, indexed 1..FrequencyCount (index 0 is
// always zero and unused).
func (f *FourierAccumulator) ToFrequencies() [FrequencyCount + 1]float64 {
	var p [FrequencyCount + 1]float64
	for fr := 1; fr <= FrequencyCount; fr++ {
		s, c := f.tones[fr].sin, f.tones[fr].cos
		p[fr] = s*s + c*c
	}
	return p
}

// Phase returns the signed phase of the lowest target frequency (f=1) as a
// fraction of a cycle in [-0.5, 0.5] (roundPhase scales it to samples),
// following the spec's swapped argument
// order atan2(cos, sin)/(2*pi) rather than the conventional atan2(sin,
// cos). The swap ties the sign of the result to the direction of clock
// error expected by the synchronizer's intra-symbol re-alignment rule;
// do not "fix" it.
func (f *FourierAccumulator) Phase() float64 {
	s, c := f.tones[1].sin, f.tones[1].cos
	return math.Atan2(c, s) / (2 * math.Pi)
}

// Reset zeroes all accumulated sums and the sample index, ready for the
// next symbol.
func (f *FourierAccumulator) Reset() {
	f.i = 0
	for fr := range f.tones {
		f.tones[fr] = tonePair{}
	}
}
