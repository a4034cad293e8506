package audio

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// patternFrame returns a frame of the given size filled with b.
func patternFrame(size int, b byte) Frame {
	f := NewFrame(size)
	for i := range f.Bytes() {
		f.Bytes()[i] = b
	}
	return f
}

func TestFrameRingFIFO(t *testing.T) {
	r := NewFrameRing(4)

	for i := range 3 {
		r.Push(patternFrame(4, byte(i+1)))
	}
	require.Equal(t, 3, r.Len())

	for i := range 3 {
		f, ok := r.Pop()
		require.True(t, ok)
		assert.EqualValues(t, byte(i+1), f.Bytes()[0])
	}

	_, ok := r.Pop()
	assert.False(t, ok)
}

func TestFrameRingEviction(t *testing.T) {
	const capacity = 4
	r := NewFrameRing(capacity)

	// Push capacity+3 frames; only the most recent capacity survive.
	for i := range capacity + 3 {
		r.Push(patternFrame(2, byte(i)))
	}
	require.Equal(t, capacity, r.Len())

	for i := range capacity {
		f, ok := r.Pop()
		require.True(t, ok)
		assert.EqualValues(t, byte(i+3), f.Bytes()[0], "oldest frames must have been evicted")
	}
}

func TestFrameRingEmptyPop(t *testing.T) {
	r := NewFrameRing(2)

	f, ok := r.Pop()
	assert.False(t, ok)
	assert.Zero(t, f.Len())
	assert.Equal(t, 0, r.Len())

	// An empty pop must not disturb subsequent operation.
	r.Push(patternFrame(2, 7))
	f, ok = r.Pop()
	require.True(t, ok)
	assert.EqualValues(t, 7, f.Bytes()[0])
}

func TestFrameRingPushCopies(t *testing.T) {
	r := NewFrameRing(2)
	f := patternFrame(4, 1)
	r.Push(f)

	// Mutating the pushed frame afterwards must not affect the ring.
	f.Bytes()[0] = 42

	got, ok := r.Pop()
	require.True(t, ok)
	assert.EqualValues(t, 1, got.Bytes()[0])
}

func TestFrameRingConcurrent(t *testing.T) {
	const frameSize = 64
	r := NewFrameRing(8)
	stop := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := byte(1)
		for {
			select {
			case <-stop:
				return
			default:
				r.Push(patternFrame(frameSize, i))
				i++
				if i == 0 {
					i = 1
				}
			}
		}
	}()

	// The consumer pops at its own cadence and must never observe a
	// partially written frame: every byte of a popped frame is identical.
	deadline := time.After(200 * time.Millisecond)
	popped := 0
	for {
		select {
		case <-deadline:
			close(stop)
			wg.Wait()
			require.Positive(t, popped, "consumer should have drained frames")
			return
		default:
		}

		f, ok := r.Pop()
		if !ok {
			continue
		}
		popped++
		first := f.Bytes()[0]
		require.NotZero(t, first)
		for _, b := range f.Bytes() {
			require.Equal(t, first, b, "frame must be whole, not partially written")
		}
	}
}
