package audio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopeworks/wavescope/internal/config"
)

// sampleBuf packs n copies of v as S16LE bytes.
func sampleBuf(n int, v int16) []byte {
	buf := make([]byte, n*BytesPerSample)
	for i := 0; i < len(buf); i += BytesPerSample {
		binary.LittleEndian.PutUint16(buf[i:], uint16(v))
	}
	return buf
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New(filepath.Join(t.TempDir(), "wavescope.json"))
	require.NoError(t, cfg.Load())
	return cfg
}

func TestLevelMonitorInitialLevels(t *testing.T) {
	m := NewLevelMonitor(testConfig(t))
	levels := m.AudioLevels()
	assert.Equal(t, float64(MinDB), levels.RMS)
	assert.Equal(t, float64(MinDB), levels.Peak)
	assert.False(t, levels.Silence)
}

func TestLevelUpdateSamples(t *testing.T) {
	// One readout period is ~100 ms of audio at any configured rate.
	assert.Equal(t, 4410, LevelUpdateSamples(44100))
	assert.Equal(t, 4800, LevelUpdateSamples(48000))
	assert.Equal(t, 19200, LevelUpdateSamples(192000))
}

func TestLevelMonitorUpdatesAfterThreshold(t *testing.T) {
	m := NewLevelMonitor(testConfig(t))
	period := LevelUpdateSamples(config.DefaultSampleRate)

	// Below the accumulation threshold nothing changes.
	m.Process(sampleBuf(period/2, 16384))
	assert.Equal(t, float64(MinDB), m.AudioLevels().RMS)

	// Crossing it publishes a fresh readout, roughly -6 dBFS here.
	m.Process(sampleBuf(period/2, 16384))
	levels := m.AudioLevels()
	assert.InDelta(t, -6.02, levels.RMS, 0.01)
	assert.InDelta(t, -6.02, levels.Peak, 0.01)
	assert.False(t, levels.Silence)
	assert.Zero(t, levels.Clip)
}

func TestLevelMonitorCadenceFollowsSampleRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wavescope.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"audio":{"sample_rate":48000}}`), 0o600))
	cfg := config.New(path)
	require.NoError(t, cfg.Load())

	m := NewLevelMonitor(cfg)

	// The default rate's period is not enough audio at 48 kHz.
	m.Process(sampleBuf(LevelUpdateSamples(44100), 16384))
	assert.Equal(t, float64(MinDB), m.AudioLevels().RMS)

	m.Process(sampleBuf(LevelUpdateSamples(48000)-LevelUpdateSamples(44100), 16384))
	assert.InDelta(t, -6.02, m.AudioLevels().RMS, 0.01)
}

func TestLevelMonitorReportsClipping(t *testing.T) {
	m := NewLevelMonitor(testConfig(t))
	m.Process(sampleBuf(LevelUpdateSamples(config.DefaultSampleRate), 32767))
	assert.Positive(t, m.AudioLevels().Clip)
}

func TestLevelMonitorPeakHoldOutlivesReadout(t *testing.T) {
	m := NewLevelMonitor(testConfig(t))
	period := LevelUpdateSamples(config.DefaultSampleRate)

	m.Process(sampleBuf(period, 16384))
	loud := m.AudioLevels().Peak

	// A quieter period follows; the held peak keeps the louder value.
	m.Process(sampleBuf(period, 1638))
	levels := m.AudioLevels()
	assert.Less(t, levels.RMS, loud)
	assert.Equal(t, loud, levels.Peak)
}
