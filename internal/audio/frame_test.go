package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameSamples(t *testing.T) {
	rates := []int{8000, 16000, 22050, 44100, 48000, 96000, 192000}
	for _, rate := range rates {
		samples := FrameSamples(rate)
		assert.Zero(t, samples%2, "sample count must be even at rate %d", rate)
		assert.GreaterOrEqual(t, float64(samples), float64(rate)/60, "frame must cover one period at rate %d", rate)
	}
}

func TestFrameBytes(t *testing.T) {
	assert.Equal(t, 1472, FrameBytes(44100))
	assert.Equal(t, 1600, FrameBytes(48000))

	for _, rate := range []int{8000, 44100, 48000, 192000} {
		b := FrameBytes(rate)
		assert.Zero(t, b%BytesPerSample)
		assert.GreaterOrEqual(t, float64(b), 2*float64(rate)/60)
	}
}

func TestFrameClone(t *testing.T) {
	f := NewFrame(8)
	copy(f.Bytes(), []byte{1, 2, 3, 4, 5, 6, 7, 8})

	c := f.Clone()
	require.Equal(t, f.Bytes(), c.Bytes())

	// Mutating the clone must not touch the original.
	c.Bytes()[0] = 99
	assert.EqualValues(t, 1, f.Bytes()[0])
}

func TestFrameTake(t *testing.T) {
	src := NewFrame(4)
	copy(src.Bytes(), []byte{10, 20, 30, 40})

	var dst Frame
	dst.Take(&src)

	assert.Equal(t, []byte{10, 20, 30, 40}, dst.Bytes())
	assert.Equal(t, []byte{0, 0, 0, 0}, src.Bytes(), "source must be zeroed after take")
}
