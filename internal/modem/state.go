package modem

// DecoderState is the decoder's tagged lifecycle state. The Decoder owns
// all transitions; the Conditioner keeps its own smaller state machine
// (conditionerState), which the Decoder drives in lockstep.
type DecoderState int

const (
	StateInit DecoderState = iota
	StateDetectPolarity
	StateDetectWaveFirstHalf
	StateDetectWaveSecondHalf
	StateDetectCalibrate
	StateDecodeData
	StateEof
)

// String returns a human-readable state name, useful in logs.
func (s DecoderState) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateDetectPolarity:
		return "detect-polarity"
	case StateDetectWaveFirstHalf:
		return "detect-wave-first-half"
	case StateDetectWaveSecondHalf:
		return "detect-wave-second-half"
	case StateDetectCalibrate:
		return "detect-calibrate"
	case StateDecodeData:
		return "decode-data"
	case StateEof:
		return "eof"
	default:
		return "unknown"
	}
}

// Decode-result sentinels returned by Decoder.Feed; values 0..255 are
// decoded data bytes.
const (
	NoData = -2
	Eof    = -1
)
