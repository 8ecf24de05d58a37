package modem

import "math"

// waveFirstHalfDone reports whether the running extremum has been left far
// enough behind that the wave has passed its first peak (or trough, for
// negative polarity) and started back toward the baseline on the far side.
// min/max are the conditioner's dynamic range as of the previous sample.
func waveFirstHalfDone(polarity bool, raw, min, max int) bool {
	var distance, rng int
	if polarity {
		distance = max - raw
		rng = max - min
	} else {
		distance = raw - min
		rng = max - min
	}
	return distance > rng
}

// waveSecondHalfDone reports whether the sample has just crossed the
// dynamic-range midpoint in the polarity direction, completing one full
// wave period and giving a coarse sample_count estimate.
func waveSecondHalfDone(polarity bool, raw, prevRaw, min, max int) bool {
	mid := (min + max) / 2
	if polarity {
		return prevRaw < mid && raw >= mid
	}
	return prevRaw > mid && raw <= mid
}

// decodeWord assembles the 9-bit symbol word (8 data bits + sync flag) from
// correlator power, using BitPresentThreshold to decide bit presence.
func decodeWord(p [FrequencyCount + 1]float64) int {
	word := 0
	for k := 0; k < FrequencyCount; k++ {
		if p[frequencyForBit(k)] > BitPresentThreshold {
			word |= 1 << uint(k)
		}
	}
	return word
}

// roundPhase converts the correlator's fractional phase reading into a
// signed integer sample-count correction, rounding to the nearest integer
// (halves away from zero).
func roundPhase(rawPhase float64, sampleCount int) int {
	return int(math.Round(rawPhase * float64(sampleCount)))
}

// sameSign reports whether three nonzero ints share a sign.
func sameSign(a, b, c int) bool {
	if a == 0 || b == 0 || c == 0 {
		return false
	}
	if a > 0 {
		return b > 0 && c > 0
	}
	return b < 0 && c < 0
}

// bulkDriftCorrection implements the three-symbol clock drift rule: when
// the last three phase readings are all nonzero and same-signed, the clock
// has been drifting consistently rather than jittering, and sample_count is
// nudged by their rounded average.
func bulkDriftCorrection(phase, phase2, phase3 int) (correction int, apply bool) {
	if !sameSign(phase, phase2, phase3) {
		return 0, false
	}
	avg := float64(phase+phase2+phase3) / 3
	return int(math.Round(avg)), true
}
