package modem

import "math"

// DefaultOutputScale converts the encoder's normalized bipolar waveform
// (roughly [-1,1]) into 32-bit PCM sample codes: half of int32 full scale,
// leaving headroom for data symbols that sum several tones.
const DefaultOutputScale = 1 << 30

// Encoder is the literal inverse of the wire format: it turns a byte stream
// into the sequence of PCM samples a Decoder can recover it from. It makes
// no attempt to obscure polarity, baseline or amplitude — that robustness
// is the Decoder's job, exercised against whatever capture hardware
// actually delivers.
type Encoder struct {
	SampleCount int
	Scale       float64
}

// NewEncoder returns an Encoder using the wire format's nominal symbol
// length and a reasonable default output scale.
func NewEncoder() *Encoder {
	return &Encoder{SampleCount: DefaultSampleCount, Scale: DefaultOutputScale}
}

// symbol renders one symbol word (up to FrequencyCount bits, amplitude
// applied per present bit) as SampleCount PCM sample codes.
func (e *Encoder) symbol(word int, amplitude float64) []int32 {
	n := e.SampleCount
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		var sum float64
		for k := 0; k < FrequencyCount; k++ {
			if word&(1<<uint(k)) == 0 {
				continue
			}
			sum += math.Sin(toneAngle(frequencyForBit(k), i, n))
		}
		out[i] = int32(sum * amplitude * e.Scale)
	}
	return out
}

// zeroSymbol renders SampleCount samples of silence.
func (e *Encoder) zeroSymbol() []int32 {
	return make([]int32, e.SampleCount)
}

// Encode renders the full wire stream for data: two leading zero symbols,
// eight pure-sync symbols, one start-marker symbol, one symbol per data
// byte (sync bit set), and two trailing zero symbols.
func (e *Encoder) Encode(data []byte) []int32 {
	var out []int32

	out = append(out, e.zeroSymbol()...)
	out = append(out, e.zeroSymbol()...)

	for i := 0; i < FrequencyCount-1; i++ {
		out = append(out, e.symbol(SyncBit, SyncAmplitude)...)
	}

	out = append(out, e.symbol(SyncBit|int(StartMarker), DataAmplitude)...)

	for _, b := range data {
		out = append(out, e.symbol(SyncBit|int(b), DataAmplitude)...)
	}

	out = append(out, e.zeroSymbol()...)
	out = append(out, e.zeroSymbol()...)

	return out
}
