package util

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	r, g, b, err := ParseHexColor("#0000FF")
	require.NoError(t, err)
	assert.EqualValues(t, 0, r)
	assert.EqualValues(t, 0, g)
	assert.EqualValues(t, 255, b)

	r, g, b, err = ParseHexColor("1a2b3c")
	require.NoError(t, err)
	assert.EqualValues(t, 0x1a, r)
	assert.EqualValues(t, 0x2b, g)
	assert.EqualValues(t, 0x3c, b)

	for _, bad := range []string{"", "#fff", "#gggggg", "#0000FF00"} {
		_, _, _, err := ParseHexColor(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestHexToRGBA(t *testing.T) {
	c, err := HexToRGBA("#FF0000")
	require.NoError(t, err)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, c)

	c, err = HexToRGBA("#808080")
	require.NoError(t, err)
	assert.InDelta(t, 0.502, c[0], 0.001)
	assert.EqualValues(t, 1, c[3])

	_, err = HexToRGBA("red")
	assert.Error(t, err)
}

func TestBackoff(t *testing.T) {
	b := NewBackoff(time.Second, 5*time.Second)

	assert.Equal(t, time.Second, b.Next())
	assert.Equal(t, 2*time.Second, b.Next())
	assert.Equal(t, 4*time.Second, b.Next())
	assert.Equal(t, 5*time.Second, b.Next(), "delay caps at the maximum")
	assert.Equal(t, 5*time.Second, b.Next())

	b.Reset()
	assert.Equal(t, time.Second, b.Next())
}

func TestWrapError(t *testing.T) {
	base := errors.New("boom")
	err := WrapError("open device", base)
	require.Error(t, err)
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "open device")
}

func TestFormatHumanTime(t *testing.T) {
	assert.Equal(t, "unknown", FormatHumanTime(""))
	assert.Equal(t, "unknown", FormatHumanTime("unknown"))
	assert.Equal(t, "not-a-time", FormatHumanTime("not-a-time"))

	got := FormatHumanTime("2026-08-30T12:00:00Z")
	assert.NotEqual(t, "unknown", got)
	assert.Contains(t, got, "2026")
}
