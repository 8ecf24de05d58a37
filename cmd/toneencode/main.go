// Command toneencode reads bytes from stdin and writes the corresponding
// tone-channel waveform to stdout as raw little-endian int32 PCM samples,
// suitable for piping into an audio player or a WAV-wrapping tool (e.g.
// "toneencode < msg.txt | sox -t raw -e signed-integer -b 32 -r 44100 - out.wav").
package main

import (
	"bufio"
	"io"
	"log"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/hyunwoo-park/tonewire/internal/audio"
	"github.com/hyunwoo-park/tonewire/internal/modem"
)

func main() {
	sampleCount := flag.IntP("sample-count", "n", modem.DefaultSampleCount, "samples per symbol")
	scale := flag.Float64P("scale", "s", modem.DefaultOutputScale, "output amplitude scale")
	flag.Parse()

	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		log.Fatalf("read stdin: %v", err)
	}

	enc := modem.NewEncoder()
	enc.SampleCount = *sampleCount
	enc.Scale = *scale

	samples := enc.Encode(data)

	writer := audio.NewPCMWriter(os.Stdout)
	if err := writer.WriteAll(samples); err != nil {
		log.Fatalf("write samples: %v", err)
	}
	if err := writer.Flush(); err != nil {
		log.Fatalf("flush: %v", err)
	}
}
