package audio

import (
	"github.com/gordonklaus/portaudio"

	"github.com/scopeworks/wavescope/internal/util"
)

// Device describes an available audio input device.
type Device struct {
	// Name is the device display name.
	Name string `json:"name"`
	// MaxInputChannels is the number of input channels the device offers.
	MaxInputChannels int `json:"max_input_channels"`
	// DefaultSampleRate is the device's preferred sample rate.
	DefaultSampleRate float64 `json:"default_sample_rate"`
	// Default reports whether this is the system default input device.
	Default bool `json:"default"`
}

// Devices returns the available audio input devices. Capture always uses
// the system default device; the list exists for diagnostics.
func Devices() ([]Device, error) {
	if err := initPortAudio(); err != nil {
		return nil, err
	}
	defer terminatePortAudio()

	all, err := portaudio.Devices()
	if err != nil {
		return nil, util.WrapError("list audio devices", err)
	}

	var defaultName string
	if def, err := portaudio.DefaultInputDevice(); err == nil && def != nil {
		defaultName = def.Name
	}

	var devices []Device
	for _, dev := range all {
		if dev.MaxInputChannels <= 0 {
			continue
		}
		devices = append(devices, Device{
			Name:              dev.Name,
			MaxInputChannels:  dev.MaxInputChannels,
			DefaultSampleRate: dev.DefaultSampleRate,
			Default:           dev.Name == defaultName,
		})
	}

	return devices, nil
}
