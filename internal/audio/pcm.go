package audio

import (
	"encoding/binary"
	"math"
)

// DecodeSample decodes one S16LE sample from the first two bytes of p.
func DecodeSample(p []byte) int16 {
	return int16(binary.LittleEndian.Uint16(p))
}

// Normalize maps a signed 16-bit sample onto [-1, 1].
func Normalize(v int16) float32 {
	return 2*(float32(v)-math.MinInt16)/(math.MaxInt16-math.MinInt16) - 1
}

// Denormalize is the inverse of Normalize, mapping [-1, 1] back to the
// nearest signed 16-bit sample value.
func Denormalize(f float32) int16 {
	v := (f+1)/2*(math.MaxInt16-math.MinInt16) + math.MinInt16
	return int16(math.Round(float64(v)))
}
