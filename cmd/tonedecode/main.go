// Command tonedecode reads raw little-endian int32 PCM samples from stdin
// and writes the recovered byte stream to stdout. It does no WAV header
// parsing and takes no arguments beyond -v; pipe a header-stripped capture
// into it (e.g. "sox in.wav -t raw -e signed-integer -b 32 -r 44100 - | tonedecode").
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
	verbose := flag.BoolP("verbose", "v", false, "log decoder state transitions to stderr")
	flag.Parse()

	reader := audio.NewPCMReader(os.Stdin)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	dec := modem.NewDecoder()
	lastState := dec.State()

	for {
		sample, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("read sample: %v", err)
		}

		switch v := dec.Feed(sample); {
		case v == modem.NoData:
			if *verbose && dec.State() != lastState {
				log.Printf("decoder: %s -> %s", lastState, dec.State())
				lastState = dec.State()
			}
		case v == modem.Eof:
			return
		default:
			if err := out.WriteByte(byte(v)); err != nil {
				log.Fatalf("write byte: %v", err)
			}
		}
	}
}
