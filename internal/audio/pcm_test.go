package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeSample(t *testing.T) {
	assert.EqualValues(t, 0, DecodeSample([]byte{0x00, 0x00}))
	assert.EqualValues(t, 1, DecodeSample([]byte{0x01, 0x00}))
	assert.EqualValues(t, -1, DecodeSample([]byte{0xff, 0xff}))
	assert.EqualValues(t, math.MaxInt16, DecodeSample([]byte{0xff, 0x7f}))
	assert.EqualValues(t, math.MinInt16, DecodeSample([]byte{0x00, 0x80}))
}

func TestNormalizeEndpoints(t *testing.T) {
	assert.EqualValues(t, -1, Normalize(math.MinInt16))
	assert.EqualValues(t, 1, Normalize(math.MaxInt16))

	// Zero sits just above the midpoint of the asymmetric int16 range.
	assert.InDelta(t, 0, Normalize(0), 0.0001)
	assert.Positive(t, Normalize(0))
}

func TestNormalizeMonotonic(t *testing.T) {
	prev := Normalize(math.MinInt16)
	for _, v := range []int16{-20000, -1, 0, 1, 20000, math.MaxInt16} {
		n := Normalize(v)
		assert.Greater(t, n, prev)
		prev = n
	}
}

func TestDenormalizeRoundTrip(t *testing.T) {
	for _, v := range []int16{math.MinInt16, -12345, -1, 0, 1, 12345, math.MaxInt16} {
		assert.Equal(t, v, Denormalize(Normalize(v)))
	}
}
