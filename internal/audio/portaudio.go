package audio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	// SampleRate is the capture/playback rate tonewire runs the symbol
	// clock against. The decoder itself is rate-agnostic (it recovers its
	// own sample_count from the waveform), but a fixed device rate keeps
	// DefaultSampleCount's 20-samples-per-symbol nominal encoding in the
	// audible range.
	SampleRate = 44100

	// FramesPerBuf is the PortAudio callback chunk size, independent of
	// the modem's own symbol length.
	FramesPerBuf = 256

	NumChannels = 1

	// FullScale converts PortAudio's float32 [-1,1] input samples into
	// the decoder's integer sample domain (comparable to 16-bit PCM
	// codes), well above the Conditioner's PolarityThreshold.
	FullScale = 1 << 15
)

// Init initializes PortAudio.
func Init() error {
	return portaudio.Initialize()
}

// Terminate cleans up PortAudio.
func Terminate() error {
	return portaudio.Terminate()
}

// ToSample converts a device float32 sample into the decoder's integer
// sample domain.
func ToSample(f float32) int {
	return int(f * FullScale)
}

// FromSample converts an encoder int32 PCM code (full scale 2^31) into a
// device float32 sample, clipping to [-1,1].
func FromSample(v int32) float32 {
	f := float32(float64(v) / (1 << 31))
	switch {
	case f > 1:
		return 1
	case f < -1:
		return -1
	default:
		return f
	}
}

// Device wraps a duplex PortAudio stream, feeding the modem's integer
// sample domain in both directions.
type Device struct {
	stream *portaudio.Stream
	in     []float32
	out    []float32
	mu     sync.Mutex
}

// NewDevice opens the default duplex audio stream.
func NewDevice() (*Device, error) {
	d := &Device{
		in:  make([]float32, FramesPerBuf),
		out: make([]float32, FramesPerBuf),
	}
	stream, err := portaudio.OpenDefaultStream(
		NumChannels, NumChannels, float64(SampleRate), FramesPerBuf, d.in, d.out,
	)
	if err != nil {
		return nil, fmt.Errorf("open duplex stream: %w", err)
	}
	d.stream = stream
	return d, nil
}

// Start starts the underlying stream.
func (d *Device) Start() error {
	if d.stream == nil {
		return fmt.Errorf("stream not opened")
	}
	return d.stream.Start()
}

// Stop stops the underlying stream.
func (d *Device) Stop() error {
	if d.stream == nil {
		return nil
	}
	return d.stream.Stop()
}

// Close closes the underlying stream.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stream == nil {
		return nil
	}
	err := d.stream.Close()
	d.stream = nil
	return err
}

// ReadSamples blocks for one buffer and returns it in the decoder's
// integer sample domain.
func (d *Device) ReadSamples() ([]int, error) {
	if d.stream == nil {
		return nil, fmt.Errorf("stream not opened")
	}
	if err := d.stream.Read(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	out := make([]int, len(d.in))
	for i, f := range d.in {
		out[i] = ToSample(f)
	}
	return out, nil
}

// WriteSamples writes one buffer's worth of encoder PCM codes, padding
// with silence if short.
func (d *Device) WriteSamples(samples []int32) error {
	if d.stream == nil {
		return fmt.Errorf("stream not opened")
	}
	for i := range d.out {
		if i < len(samples) {
			d.out[i] = FromSample(samples[i])
		} else {
			d.out[i] = 0
		}
	}
	return d.stream.Write()
}

// WriteAll writes an arbitrarily long sample buffer in FramesPerBuf chunks.
func (d *Device) WriteAll(samples []int32) error {
	for i := 0; i < len(samples); i += FramesPerBuf {
		end := i + FramesPerBuf
		if end > len(samples) {
			end = len(samples)
		}
		if err := d.WriteSamples(samples[i:end]); err != nil {
			return err
		}
	}
	return nil
}

// HasInputDevice reports whether a default input device is available.
func HasInputDevice() bool {
	dev, err := portaudio.DefaultInputDevice()
	return err == nil && dev != nil
}

// HasOutputDevice reports whether a default output device is available.
func HasOutputDevice() bool {
	dev, err := portaudio.DefaultOutputDevice()
	return err == nil && dev != nil
}
