package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// DeviceInfo describes one PortAudio host device as a tone-channel endpoint
// candidate: how many input/output channels it exposes and whether it's
// what OS picks by default for a Channel with no device argument.
type DeviceInfo struct {
	Name              string
	MaxInputChannels  int
	MaxOutputChannels int
	DefaultSampleRate float64
	IsDefault         bool
}

// ListDevices enumerates every PortAudio host device visible to this
// process, annotating which one(s) are the OS default input/output.
func ListDevices() ([]DeviceInfo, error) {
	hostDevices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}

	defaultIn, err := portaudio.DefaultInputDevice()
	if err != nil {
		return nil, fmt.Errorf("default input device: %w", err)
	}
	defaultOut, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return nil, fmt.Errorf("default output device: %w", err)
	}

	var candidates []DeviceInfo
	for _, hd := range hostDevices {
		isDefault := (hd.Name == defaultIn.Name) || (hd.Name == defaultOut.Name)
		candidates = append(candidates, DeviceInfo{
			Name:              hd.Name,
			MaxInputChannels:  hd.MaxInputChannels,
			MaxOutputChannels: hd.MaxOutputChannels,
			DefaultSampleRate: hd.DefaultSampleRate,
			IsDefault:         isDefault,
		})
	}
	return candidates, nil
}

// PrintDevices writes a human-readable listing of ListDevices to stdout
// (toneserver's --list-devices output).
func PrintDevices() error {
	candidates, err := ListDevices()
	if err != nil {
		return err
	}
	fmt.Println("Tone channel devices:")
	for i, c := range candidates {
		defaultStr := ""
		if c.IsDefault {
			defaultStr = " [DEFAULT]"
		}
		fmt.Printf("  %d: %s (in:%d out:%d rate:%.0f)%s\n",
			i, c.Name, c.MaxInputChannels, c.MaxOutputChannels,
			c.DefaultSampleRate, defaultStr)
	}
	return nil
}
