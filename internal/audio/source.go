package audio

import "errors"

// ErrDeviceOpen is returned when the capture device cannot be opened.
var ErrDeviceOpen = errors.New("cannot open capture device")

// A Sampler reads raw PCM from a capture device. Read blocks until exactly
// len(p) bytes of S16LE mono samples have been captured or an error occurs;
// a failed read must surface the underlying device error, never discard it.
type Sampler interface {
	Read(p []byte) error
	Close() error
}

// A Source is a startable stream of capture frames. The single concrete
// implementation is [Capture] over an [InputDevice]; the interface exists so
// alternative sources (file playback, generated tones) can slot in without
// touching the renderer.
type Source interface {
	// Start begins producing frames. Idempotent once started.
	Start()
	// Stop requests termination. Terminal: a stopped source never restarts.
	Stop()
	// IsOpen reports whether the source has been started and not stopped.
	IsOpen() bool
	// Read pops the oldest buffered frame without blocking. It reports
	// false when no frame is available; callers skip the tick rather than
	// retry.
	Read() (Frame, bool)
	// Close stops the source and releases its resources.
	Close() error
}
