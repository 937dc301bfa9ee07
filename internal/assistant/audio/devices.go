package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// DeviceInfo describes an audio input device
type DeviceInfo struct {
	Name              string
	MaxInputChannels  int
	DefaultSampleRate float64
	IsDefault         bool
}

// ListInputDevices enumerates the available input devices
func ListInputDevices() ([]DeviceInfo, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate devices: %w", err)
	}

	var defaultName string
	if def, err := portaudio.DefaultInputDevice(); err == nil && def != nil {
		defaultName = def.Name
	}

	var inputs []DeviceInfo
	for _, dev := range devices {
		if dev.MaxInputChannels > 0 {
			inputs = append(inputs, DeviceInfo{
				Name:              dev.Name,
				MaxInputChannels:  dev.MaxInputChannels,
				DefaultSampleRate: dev.DefaultSampleRate,
				IsDefault:         dev.Name == defaultName,
			})
		}
	}

	return inputs, nil
}

// findInputDevice resolves an input device by name. PortAudio must
// already be initialized.
func findInputDevice(name string) (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}

	for _, dev := range devices {
		if dev.Name == name && dev.MaxInputChannels > 0 {
			return dev, nil
		}
	}

	return nil, fmt.Errorf("input device not found: %s", name)
}
