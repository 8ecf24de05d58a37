package modem

// Decoder recovers a byte stream from a sequence of raw integer samples of
// unknown amplitude, polarity, baseline, and symbol rate. It owns a Signal
// Conditioner, a Fourier Correlator, and the clock-recovery state machine
// that ties them together.
type Decoder struct {
	state DecoderState

	cond    *Conditioner
	fourier *FourierAccumulator

	waveSampleCount int
	prevRaw         int

	phase, phase2, phase3 int

	skip int
}

// NewDecoder returns a Decoder ready to process a fresh sample stream.
func NewDecoder() *Decoder {
	return &Decoder{
		state:   StateInit,
		cond:    NewConditioner(),
		fourier: NewFourierAccumulator(DefaultSampleCount),
	}
}

// State returns the decoder's current lifecycle state.
func (d *Decoder) State() DecoderState { return d.state }

// Telemetry reports a snapshot of the decoder's internal clock-recovery
// state, for callers that want to observe lock-on without consuming bytes.
type Telemetry struct {
	State       DecoderState
	SampleCount int
	Phase       int
	Polarity    bool
	Range       int
}

// Snapshot returns the decoder's current telemetry.
func (d *Decoder) Snapshot() Telemetry {
	min, max := d.cond.Range()
	return Telemetry{
		State:       d.state,
		SampleCount: d.fourier.SampleCount(),
		Phase:       d.phase,
		Polarity:    d.cond.Polarity(),
		Range:       max - min,
	}
}

// Feed advances the decoder by one raw sample and returns either NoData,
// Eof, or a decoded byte (0..255). Once Eof is returned the decoder is done
// and should not be fed further samples.
func (d *Decoder) Feed(raw int) int {
	if d.state == StateEof {
		return Eof
	}

	switch d.state {
	case StateInit:
		d.cond.feed(raw)
		d.state = StateDetectPolarity
		d.prevRaw = raw
		return NoData

	case StateDetectPolarity:
		res := d.cond.feed(raw)
		d.prevRaw = raw
		if res.polarityCommitted {
			d.state = StateDetectWaveFirstHalf
			d.waveSampleCount = 1
		}
		return NoData

	case StateDetectWaveFirstHalf:
		min, max := d.cond.Range()
		d.cond.feed(raw)
		d.waveSampleCount++
		if waveFirstHalfDone(d.cond.Polarity(), raw, min, max) {
			d.state = StateDetectWaveSecondHalf
		}
		d.prevRaw = raw
		return NoData

	case StateDetectWaveSecondHalf:
		min, max := d.cond.Range()
		d.cond.feed(raw)
		d.waveSampleCount++
		if waveSecondHalfDone(d.cond.Polarity(), raw, d.prevRaw, min, max) {
			d.state = StateDetectCalibrate
			d.cond.enterCalibrate()
			seed := d.waveSampleCount
			if seed < MinSampleCount {
				seed = MinSampleCount
			}
			d.fourier.SetSampleCount(seed)
			d.fourier.Reset()
		}
		d.prevRaw = raw
		return NoData

	default: // StateDetectCalibrate, StateDecodeData
		return d.feedSymbol(raw)
	}
}

// feedSymbol handles a raw sample once the decoder is tracking symbols
// (DetectCalibrate or DecodeData), including the intra-symbol clock
// re-alignment rules.
func (d *Decoder) feedSymbol(raw int) int {
	res := d.cond.feed(raw)
	d.prevRaw = raw
	if !res.ok {
		return NoData
	}

	if d.skip > 0 {
		d.skip--
		return NoData
	}

	fsample := res.sample
	if !d.fourier.AddSample(fsample) {
		return NoData
	}

	return d.completeSymbol(fsample)
}

// completeSymbol runs once the Fourier accumulator has consumed a full
// symbol window: it decodes the symbol word, updates the phase history and
// clock drift estimate, applies intra-symbol re-alignment, and advances the
// DetectCalibrate/DecodeData/Eof state machine.
//
// On an early close (phase > 0) the closing sample is immediately re-fed
// into the freshly reset accumulator as the next symbol's first sample,
// synchronously within this call, rather than waiting for the next raw
// sample to arrive — this is what keeps the correction from stalling the
// clock for an extra sample period. MinSampleCount guarantees one sample
// alone can never complete a window, so this can't recurse into a second
// decoded byte.
func (d *Decoder) completeSymbol(fsample float64) int {
	word := decodeWord(d.fourier.ToFrequencies())

	newPhase := 0
	if word&SyncBit != 0 {
		newPhase = roundPhase(d.fourier.Phase(), d.fourier.SampleCount())
	}

	d.phase3 = d.phase2
	d.phase2 = d.phase
	d.phase = newPhase

	if correction, apply := bulkDriftCorrection(d.phase, d.phase2, d.phase3); apply {
		d.fourier.SetSampleCount(d.fourier.SampleCount() - correction)
		d.phase2 = 0
	}

	d.fourier.Reset()

	switch {
	case d.phase < 0:
		d.skip = -d.phase
	case d.phase > 0:
		d.fourier.AddSample(fsample)
	}

	dataByte := word & 0xFF
	switch d.state {
	case StateDetectCalibrate:
		switch {
		case word == 0:
			d.reset()
			return NoData
		case word&SyncBit != 0 && byte(dataByte) == StartMarker:
			d.state = StateDecodeData
			return NoData
		default:
			return NoData
		}

	default: // StateDecodeData
		if word == 0 {
			d.state = StateEof
			return Eof
		}
		return dataByte
	}
}

// reset restores the decoder to StateInit, used on the DetectCalibrate
// false-positive restart rule (an all-zero symbol decoded before the start
// marker was ever seen).
func (d *Decoder) reset() {
	d.state = StateInit
	d.cond.reset()
	d.fourier = NewFourierAccumulator(DefaultSampleCount)
	d.waveSampleCount = 0
	d.phase, d.phase2, d.phase3 = 0, 0, 0
	d.skip = 0
}
