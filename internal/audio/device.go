package audio

import (
	"encoding/binary"
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/scopeworks/wavescope/internal/util"
)

// An InputDevice is a blocking capture stream on the default input device,
// recording S16LE mono PCM at a fixed sample rate. One Read fills exactly
// one capture frame.
type InputDevice struct {
	stream     *portaudio.Stream
	buf        []int16
	sampleRate int
}

// OpenInputDevice opens the default input device at the given sample rate.
// The stream reads one frame period of samples per blocking Read.
func OpenInputDevice(sampleRate int) (*InputDevice, error) {
	if err := initPortAudio(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceOpen, err)
	}

	buf := make([]int16, FrameSamples(sampleRate))
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(sampleRate), len(buf), buf)
	if err != nil {
		terminatePortAudio()
		return nil, fmt.Errorf("%w: %w", ErrDeviceOpen, err)
	}

	if err := stream.Start(); err != nil {
		_ = stream.Close()
		terminatePortAudio()
		return nil, fmt.Errorf("%w: %w", ErrDeviceOpen, err)
	}

	return &InputDevice{stream: stream, buf: buf, sampleRate: sampleRate}, nil
}

// SampleRate returns the capture sample rate.
func (d *InputDevice) SampleRate() int {
	return d.sampleRate
}

// Read blocks until one frame of samples has been captured and encodes it
// into p as S16LE. p must be exactly one frame in size.
func (d *InputDevice) Read(p []byte) error {
	if len(p) != BytesPerSample*len(d.buf) {
		return fmt.Errorf("frame size %d does not match device period %d", len(p), BytesPerSample*len(d.buf))
	}

	if err := d.stream.Read(); err != nil {
		return util.WrapError("read capture stream", err)
	}

	for i, s := range d.buf {
		binary.LittleEndian.PutUint16(p[BytesPerSample*i:], uint16(s))
	}
	return nil
}

// Close stops the stream and releases the device.
func (d *InputDevice) Close() error {
	defer terminatePortAudio()

	if err := d.stream.Stop(); err != nil {
		_ = d.stream.Close()
		return util.WrapError("stop capture stream", err)
	}
	if err := d.stream.Close(); err != nil {
		return util.WrapError("close capture stream", err)
	}
	return nil
}
