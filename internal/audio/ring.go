package audio

import (
	"sync"
	"time"
)

// DefaultBufferLatency is the rolling capture window the ring holds by
// default. A quarter second absorbs scheduling jitter between the capture
// goroutine and the render loop without letting the display fall far behind
// the device.
const DefaultBufferLatency = 250 * time.Millisecond

// RingFrames returns the ring capacity, in frames, needed to buffer the
// given latency, plus one frame of slack for the frame in flight.
func RingFrames(latency time.Duration) int {
	n := int((latency + FramePeriod - 1) / FramePeriod)
	return n + 1
}

// A FrameRing is a bounded circular queue of frames shared between the
// capture goroutine and the render loop. Pushing onto a full ring evicts the
// oldest frame, so the ring always holds the most recent capacity frames.
// Neither operation ever blocks beyond the push/pop critical section.
// It is safe for concurrent use.
type FrameRing struct {
	mu     sync.Mutex
	frames []Frame
	head   int
	count  int
}

// NewFrameRing returns an empty ring holding at most capacity frames.
func NewFrameRing(capacity int) *FrameRing {
	if capacity < 1 {
		capacity = 1
	}
	return &FrameRing{frames: make([]Frame, capacity)}
}

// Push copies f into the ring, evicting the oldest frame when full.
func (r *FrameRing) Push(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == len(r.frames) {
		r.head = (r.head + 1) % len(r.frames)
		r.count--
	}
	r.frames[(r.head+r.count)%len(r.frames)] = f.Clone()
	r.count++
}

// Pop removes and returns the oldest frame. It reports false when the ring
// is empty, leaving the ring untouched.
func (r *FrameRing) Pop() (Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == 0 {
		return Frame{}, false
	}
	var f Frame
	f.Take(&r.frames[r.head])
	r.head = (r.head + 1) % len(r.frames)
	r.count--
	return f, true
}

// Len returns the number of buffered frames.
func (r *FrameRing) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Cap returns the ring capacity in frames.
func (r *FrameRing) Cap() int {
	return len(r.frames)
}
