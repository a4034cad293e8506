package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "wavescope.json")
	cfg := New(path)

	require.NoError(t, cfg.Load())
	assert.FileExists(t, path)

	assert.Equal(t, DefaultSampleRate, cfg.Audio.SampleRate)
	assert.Equal(t, DefaultBufferLatencyMs, cfg.Audio.BufferLatencyMs)
	assert.Equal(t, DefaultWindowWidth, cfg.Display.Width)
	assert.Equal(t, DefaultWindowTitle, cfg.Display.Title)
	assert.Equal(t, DefaultTraceColor, cfg.Display.TraceColor)
	assert.False(t, cfg.Server.Enabled)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)

	// The written file must parse as JSON.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestFirstRunSilenceDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wavescope.json")
	cfg := New(path)
	require.NoError(t, cfg.Load())

	// A first run with no config file must carry the silence defaults, in
	// memory and in the persisted file, or a 0 dB threshold flags every
	// measurement period as silent.
	snap := cfg.Snapshot()
	assert.Equal(t, DefaultSilenceThreshold, snap.SilenceThreshold)
	assert.EqualValues(t, DefaultSilenceDurationMs, snap.SilenceDurationMs)
	assert.EqualValues(t, DefaultSilenceRecoveryMs, snap.SilenceRecoveryMs)

	reloaded := New(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, DefaultSilenceThreshold, reloaded.Snapshot().SilenceThreshold)
}

func TestLoadAppliesDefaultsToPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wavescope.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"audio":{"sample_rate":48000}}`), 0o600))

	cfg := New(path)
	require.NoError(t, cfg.Load())

	assert.Equal(t, 48000, cfg.Audio.SampleRate)
	assert.Equal(t, DefaultBufferLatencyMs, cfg.Audio.BufferLatencyMs)
	assert.Equal(t, DefaultVisibleSeconds, cfg.Display.VisibleSeconds)
	assert.Equal(t, DefaultSilenceThreshold, cfg.SilenceDetection.ThresholdDB)
	assert.EqualValues(t, DefaultSilenceDurationMs, cfg.SilenceDetection.DurationMs)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"sample rate too low", `{"audio":{"sample_rate":4000}}`},
		{"latency too high", `{"audio":{"buffer_latency_ms":5000}}`},
		{"window too small", `{"display":{"width":10}}`},
		{"bad trace color", `{"display":{"trace_color":"blue"}}`},
		{"port out of range", `{"server":{"port":99999}}`},
		{"positive silence threshold", `{"silence_detection":{"threshold_db":5}}`},
		{"malformed json", `{"audio":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "wavescope.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.json), 0o600))

			cfg := New(path)
			assert.Error(t, cfg.Load())
		})
	}
}

func TestSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wavescope.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"audio":{"sample_rate":48000,"buffer_latency_ms":500},"server":{"enabled":true,"port":9090}}`,
	), 0o600))

	cfg := New(path)
	require.NoError(t, cfg.Load())

	snap := cfg.Snapshot()
	assert.Equal(t, 48000, snap.SampleRate)
	assert.Equal(t, 500*time.Millisecond, snap.BufferLatency)
	assert.True(t, snap.ServerEnabled)
	assert.Equal(t, 9090, snap.ServerPort)
	assert.Equal(t, DefaultTraceColor, snap.TraceColor)
	assert.Equal(t, DefaultSilenceThreshold, snap.SilenceThreshold)
}
