// Package modem implements the tone-channel decoder: a signal conditioner,
// a symbol clock synchronizer, and a sparse Fourier correlator that together
// recover a byte stream from a stream of real-valued audio samples.
package modem

import "math"

// FrequencyCount is the number of target frequencies the correlator tracks,
// one per bit of the 9-bit symbol word (8 data bits + 1 sync bit).
const FrequencyCount = 9

// BitCount is the number of data bits per symbol (bit 8 is the sync flag).
const BitCount = 8

// SyncBit is the flag bit (0x100) set on every non-silence symbol.
const SyncBit = 1 << BitCount

// MinSampleCount is the floor sample_count is clamped to on leaving wave
// detection: 2*FrequencyCount + 1.
const MinSampleCount = 2*FrequencyCount + 1

// DefaultSampleCount is the nominal samples-per-symbol used by the
// reference encoder (§6 of the wire format).
const DefaultSampleCount = 20

// PolarityThreshold is the minimum |raw - baseline| excursion (in
// conditioner units) that commits the conditioner's polarity.
const PolarityThreshold = 64

// CorrelatorScale is the literal scalar (named "25" in the spec) baked
// into the correlator's running sums; it is chosen so that a unit-amplitude
// tone at one of the nine target frequencies clears BitPresentThreshold.
const CorrelatorScale = 25

// BitPresentThreshold is the squared-magnitude threshold (0.5^2) above
// which a frequency bin is considered "present" in the decoded symbol.
const BitPresentThreshold = 0.25

// StartMarker is the byte value that, carried with the sync bit set,
// signals the synchronizer to leave calibration and begin decoding data.
const StartMarker byte = '>'

// SyncAmplitude is the amplitude of the eight pure-sync symbols used for
// timing/polarity/dynamic-range acquisition.
const SyncAmplitude = 1.0

// DataAmplitude is the amplitude of the start marker and all data symbols,
// reduced from SyncAmplitude to avoid clipping when up to nine sinusoids
// are summed.
const DataAmplitude = 0.16

// frequencyForBit returns the target frequency (1..FrequencyCount) that
// bit k (0 = LSB .. FrequencyCount-1 = sync flag) is carried on.
// Bit k maps to frequency f = FrequencyCount - k.
func frequencyForBit(k int) int {
	return FrequencyCount - k
}

// bitForFrequency is the inverse of frequencyForBit.
func bitForFrequency(f int) int {
	return FrequencyCount - f
}

// toneAngle returns the phase angle (radians) of frequency f at sample
// index i within a symbol of length n.
func toneAngle(f, i, n int) float64 {
	return 2 * math.Pi * float64(f) * float64(i) / float64(n)
}
