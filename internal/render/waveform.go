package render

import (
	"log/slog"

	"github.com/scopeworks/wavescope/internal/audio"
)

// Options configure a Waveform.
type Options struct {
	// SampleRate is the capture sample rate in Hz.
	SampleRate int
	// VisibleSeconds is how much audio one full sweep spans.
	VisibleSeconds float64
	// AmplitudeScale scales the normalized [-1, 1] samples into the
	// visible vertical band.
	AmplitudeScale float64
}

// A Waveform draws captured frames as an oscilloscope-style trace that
// sweeps left to right and wraps back to the left edge when it reaches the
// right side of the screen. It runs entirely on the render goroutine.
type Waveform struct {
	backend Backend

	step      float32 // x advance per sample
	amplitude float32
	capacity  int // device buffer capacity in points

	x      float32 // next sample's x position
	offset int     // device buffer write offset in points
	count  int     // points drawn this sweep

	sweep   []Point // all points of the current sweep
	scratch []Point // per-frame conversion buffer
}

// NewWaveform allocates the device-side point buffer and returns a renderer
// positioned at the left edge. The buffer holds one sweep of samples plus
// one frame of slack, so the frame that crosses the right edge still fits
// before the wrap resets the sweep.
func NewWaveform(backend Backend, opts Options) (*Waveform, error) {
	visibleSamples := int(float64(opts.SampleRate) * opts.VisibleSeconds)
	frameSamples := audio.FrameSamples(opts.SampleRate)
	capacity := visibleSamples + frameSamples

	if err := backend.Alloc(capacity); err != nil {
		return nil, err
	}

	return &Waveform{
		backend:   backend,
		step:      2 / float32(visibleSamples),
		amplitude: float32(opts.AmplitudeScale),
		capacity:  capacity,
		x:         -1,
		sweep:     make([]Point, 0, capacity),
		scratch:   make([]Point, 0, frameSamples),
	}, nil
}

// Tick renders one display frame. When no capture frame is available the
// trace simply does not advance: the accumulated points are drawn as they
// are. frame is one capture period of S16LE mono samples.
func (w *Waveform) Tick(frame []byte, ok bool) {
	if ok {
		w.append(frame)
	}
	w.backend.DrawLineStrip(w.count)

	if w.x > 1 {
		w.reset()
	}
}

// append converts one frame of samples to screen-space points and uploads
// them at the current write offset.
func (w *Waveform) append(frame []byte) {
	pts := w.scratch[:0]
	for i := 0; i+1 < len(frame); i += audio.BytesPerSample {
		s := audio.DecodeSample(frame[i:])
		pts = append(pts, Point{X: w.x, Y: audio.Normalize(s) * w.amplitude})
		w.x += w.step
	}

	if w.offset+len(pts) > w.capacity {
		// A frame can only overrun the slack region if ticks were missed
		// right at the wrap boundary; drop the excess rather than write
		// past the device buffer.
		pts = pts[:w.capacity-w.offset]
	}
	if len(pts) == 0 {
		return
	}

	w.sweep = append(w.sweep, pts...)
	w.backend.Upload(w.offset, pts)
	w.offset += len(pts)
	w.count += len(pts)
	w.scratch = pts[:0]
}

// reset starts a new sweep at the left edge and discards the previous
// sweep's geometry so no stale trace remains visible.
func (w *Waveform) reset() {
	w.x = -1
	w.offset = 0
	w.count = 0
	w.sweep = w.sweep[:0]
	w.backend.Clear()
	w.backend.ClearPoints(0, w.capacity)
	slog.Debug("sweep wrapped")
}

// X returns the x position the next sample will be drawn at.
func (w *Waveform) X() float32 {
	return w.x
}

// Offset returns the device buffer write offset in points.
func (w *Waveform) Offset() int {
	return w.offset
}

// Count returns the number of points drawn this sweep.
func (w *Waveform) Count() int {
	return w.count
}

// Sweep returns the points accumulated for the current sweep.
func (w *Waveform) Sweep() []Point {
	return w.sweep
}
