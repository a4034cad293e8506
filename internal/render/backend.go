// Package render converts captured audio frames into a scrolling waveform
// drawn through a graphics backend.
package render

// A Point is one waveform vertex in normalized device coordinates,
// x and y both in [-1, 1].
type Point struct {
	X, Y float32
}

// Backend is the graphics collaborator the renderer draws through. The
// renderer treats every call as synchronous and never manages GPU objects
// itself.
type Backend interface {
	// Alloc reserves a device-side point buffer of fixed capacity.
	Alloc(numPoints int) error
	// Upload copies pts into the device buffer starting at the given
	// point offset.
	Upload(offset int, pts []Point)
	// ClearPoints zeroes n points of the device buffer starting at the
	// given offset, discarding stale geometry.
	ClearPoints(offset, n int)
	// DrawLineStrip draws a connected line strip over the first count
	// points of the device buffer.
	DrawLineStrip(count int)
	// Clear clears the frame.
	Clear()
}
