package audio

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// idlePollInterval is how often the capture goroutine checks whether it has
// been started. Startup latency is not critical, so coarse polling beats the
// bookkeeping of a condition variable here.
const idlePollInterval = 25 * time.Millisecond

// State is the capture lifecycle state.
type State int32

// Capture lifecycle states. Stopped is terminal.
const (
	StateIdle State = iota
	StateStarted
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarted:
		return "started"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Capture owns a Sampler and a FrameRing and runs the producer loop on its
// own goroutine for its entire lifetime. The goroutine blocks only inside
// device reads; consumers drain frames through the non-blocking Read.
// It is safe for concurrent use.
type Capture struct {
	sampler    Sampler
	ring       *FrameRing
	frameBytes int

	state     atomic.Int32
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

var _ Source = (*Capture)(nil)

// NewCapture returns a capture orchestrator in the idle state and launches
// its producer goroutine. frameBytes is the frame size the sampler fills per
// read; ringFrames is the ring capacity in frames.
func NewCapture(sampler Sampler, frameBytes, ringFrames int) *Capture {
	c := &Capture{
		sampler:    sampler,
		ring:       NewFrameRing(ringFrames),
		frameBytes: frameBytes,
		done:       make(chan struct{}),
	}
	go c.run()
	return c
}

// Start transitions the capture from idle to started. Calling Start on an
// already started or stopped capture has no effect.
func (c *Capture) Start() {
	c.state.CompareAndSwap(int32(StateIdle), int32(StateStarted))
}

// Stop requests termination. The producer observes the flag between device
// reads, so a read already in flight completes first: shutdown latency is
// bounded by one frame period. Stop is terminal.
func (c *Capture) Stop() {
	for {
		s := c.state.Load()
		if State(s) == StateStopped {
			return
		}
		if c.state.CompareAndSwap(s, int32(StateStopped)) {
			return
		}
	}
}

// IsOpen reports whether the capture is started.
func (c *Capture) IsOpen() bool {
	return State(c.state.Load()) == StateStarted
}

// State returns the current lifecycle state.
func (c *Capture) State() State {
	return State(c.state.Load())
}

// Read pops the oldest buffered frame without blocking. It reports false
// when the ring is empty; the caller should skip the tick, not retry.
func (c *Capture) Read() (Frame, bool) {
	return c.ring.Pop()
}

// Buffered returns the number of frames waiting in the ring.
func (c *Capture) Buffered() int {
	return c.ring.Len()
}

// Close stops the capture, joins the producer goroutine, and closes the
// sampler. The join happens before teardown so the producer can never touch
// a closed device. Close is idempotent.
func (c *Capture) Close() error {
	c.closeOnce.Do(func() {
		c.Stop()
		<-c.done
		c.closeErr = c.sampler.Close()
	})
	return c.closeErr
}

// run is the producer loop: wait for Start, then read one frame per device
// period and push it until stopped. A failed read is logged and the loop
// continues; the next read re-blocks on the device, so no backoff is needed.
func (c *Capture) run() {
	defer close(c.done)

	for State(c.state.Load()) == StateIdle {
		time.Sleep(idlePollInterval)
	}

	for State(c.state.Load()) == StateStarted {
		frame := NewFrame(c.frameBytes)
		if err := c.sampler.Read(frame.Bytes()); err != nil {
			if State(c.state.Load()) != StateStarted {
				return
			}
			slog.Warn("capture read failed", "error", err)
			continue
		}
		c.ring.Push(frame)
	}
}
