// Package audio provides audio capture from the default input device and
// the buffering and level analysis around it.
package audio

import "time"

// FramePeriod is the capture period of a single frame, matched to the
// display refresh target of 60 frames per second.
const FramePeriod = time.Second / 60

// BytesPerSample is the size of one signed 16-bit PCM sample.
const BytesPerSample = 2

// FrameSamples returns the number of samples in one capture frame at the
// given sample rate: the smallest even integer that covers one frame period.
// Keeping the count even means a frame always splits into whole samples on
// both sides of its midpoint.
func FrameSamples(sampleRate int) int {
	n := sampleRate * int(FramePeriod) / int(time.Second)
	if sampleRate*int(FramePeriod)%int(time.Second) != 0 {
		n++
	}
	if n%2 != 0 {
		n++
	}
	return n
}

// FrameBytes returns the byte size of one capture frame of S16LE mono PCM
// at the given sample rate.
func FrameBytes(sampleRate int) int {
	return BytesPerSample * FrameSamples(sampleRate)
}

// A Frame holds one capture period of raw interleaved S16LE mono samples.
// Frames are transient: the capture loop fills a fresh one per device read
// and the ring copies them in and out.
type Frame struct {
	data []byte
}

// NewFrame returns a zeroed frame of the given byte size.
func NewFrame(size int) Frame {
	return Frame{data: make([]byte, size)}
}

// Bytes returns the frame's raw sample data.
func (f Frame) Bytes() []byte {
	return f.data
}

// Len returns the frame's byte size.
func (f Frame) Len() int {
	return len(f.data)
}

// Clone returns a deep copy of the frame.
func (f Frame) Clone() Frame {
	c := Frame{data: make([]byte, len(f.data))}
	copy(c.data, f.data)
	return c
}

// Take deep-copies src into f and zeroes src, so stale sample data never
// lingers in a slot that has been consumed.
func (f *Frame) Take(src *Frame) {
	if len(f.data) != len(src.data) {
		f.data = make([]byte, len(src.data))
	}
	copy(f.data, src.data)
	clear(src.data)
}
