package audio

import (
	"bufio"
	"encoding/binary"
	"io"
)

// pcmScale rescales a full-range int32 PCM sample down into a narrow
// unsigned band the Conditioner's PolarityThreshold was tuned against,
// independent of whatever bit depth produced the stream.
const pcmScale = 1024

// PCMReader reads a raw little-endian int32 PCM stream sample by sample,
// rescaling each sample into the decoder's integer sample domain. It does
// no header parsing; callers are expected to have already stripped any
// container format before handing it a stream.
type PCMReader struct {
	r   *bufio.Reader
	buf [4]byte
}

// NewPCMReader wraps r as a PCM sample source.
func NewPCMReader(r io.Reader) *PCMReader {
	return &PCMReader{r: bufio.NewReader(r)}
}

// Read returns the next sample rescaled into [0, pcmScale), or io.EOF once
// the stream is exhausted.
func (p *PCMReader) Read() (int, error) {
	if _, err := io.ReadFull(p.r, p.buf[:]); err != nil {
		return 0, err
	}
	raw := int32(binary.LittleEndian.Uint32(p.buf[:]))
	unit := (float64(raw)/float64(1<<31) + 1) / 2
	return int(unit * pcmScale), nil
}

// PCMWriter writes a raw little-endian int32 PCM stream.
type PCMWriter struct {
	w   *bufio.Writer
	buf [4]byte
}

// NewPCMWriter wraps w as a PCM sample sink.
func NewPCMWriter(w io.Writer) *PCMWriter {
	return &PCMWriter{w: bufio.NewWriter(w)}
}

// Write emits one sample.
func (p *PCMWriter) Write(sample int32) error {
	binary.LittleEndian.PutUint32(p.buf[:], uint32(sample))
	_, err := p.w.Write(p.buf[:])
	return err
}

// WriteAll emits a full buffer of samples.
func (p *PCMWriter) WriteAll(samples []int32) error {
	for _, s := range samples {
		if err := p.Write(s); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes any buffered output.
func (p *PCMWriter) Flush() error {
	return p.w.Flush()
}
