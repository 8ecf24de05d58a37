package modem

// conditionerState is the Signal Conditioner's own small state machine,
// driven in lockstep with the Synchronizer's DecoderState.
type conditionerState int

const (
	condInit conditionerState = iota
	condDetectPolarity
	condTrackWave
	condNormalize
)

// Conditioner tracks baseline, polarity, and dynamic range of the raw
// input and converts it into a normalized [0,1] float with known
// polarity once calibration is sufficient.
type Conditioner struct {
	state conditionerState

	baseline int
	polarity bool

	signalMin int
	signalMax int
}

// NewConditioner returns a conditioner in its initial state.
func NewConditioner() *Conditioner {
	return &Conditioner{state: condInit}
}

// condFeedResult reports what the conditioner did with a raw sample.
type condFeedResult struct {
	ok              bool    // a conditioned sample was produced
	sample          float64 // the conditioned sample, valid iff ok
	polarityCommitted bool  // true the call polarity was just decided
}

// feed advances the conditioner by one raw sample. Callers are expected
// to drive this from the Synchronizer, which owns the matching
// DetectPolarity/DetectWaveFirstHalf/DetectWaveSecondHalf transitions.
func (c *Conditioner) feed(raw int) condFeedResult {
	switch c.state {
	case condInit:
		c.baseline = raw
		c.state = condDetectPolarity
		return condFeedResult{}

	case condDetectPolarity:
		diff := raw - c.baseline
		if abs(diff) > PolarityThreshold {
			c.polarity = diff > 0
			c.signalMin = c.baseline
			c.signalMax = c.baseline
			c.state = condTrackWave
			c.widen(raw)
			return condFeedResult{polarityCommitted: true}
		}
		c.baseline = c.baseline + diff/8
		return condFeedResult{}

	case condTrackWave:
		c.widen(raw)
		return condFeedResult{}

	default: // condNormalize
		c.widen(raw)
		return condFeedResult{ok: true, sample: c.normalize(raw)}
	}
}

// widen expands signal_min/signal_max to include raw; they never narrow.
func (c *Conditioner) widen(raw int) {
	if raw > c.signalMax {
		c.signalMax = raw
	}
	if raw < c.signalMin {
		c.signalMin = raw
	}
}

// normalize maps raw into [0,1], flipping for negative polarity so the
// first half-wave is always positive-going in the output.
func (c *Conditioner) normalize(raw int) float64 {
	span := c.signalMax - c.signalMin
	if span == 0 {
		return 0
	}
	fsample := float64(raw-c.signalMin) / float64(span)
	if !c.polarity {
		fsample = 1 - fsample
	}
	return fsample
}

// enterCalibrate transitions the conditioner to steady-state
// normalization, called once the Synchronizer has seen the full
// first-wave shape.
func (c *Conditioner) enterCalibrate() {
	c.state = condNormalize
}

// reset discards all conditioner state, used on the false-positive
// restart rule.
func (c *Conditioner) reset() {
	*c = Conditioner{state: condInit}
}

// Polarity reports the committed polarity (true = positive-going first
// half-wave).
func (c *Conditioner) Polarity() bool { return c.polarity }

// Range reports the current observed dynamic range.
func (c *Conditioner) Range() (min, max int) { return c.signalMin, c.signalMax }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
