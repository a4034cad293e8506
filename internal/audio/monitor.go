package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/scopeworks/wavescope/internal/config"
	"github.com/scopeworks/wavescope/internal/types"
)

// levelUpdatePeriod is how much audio is accumulated before the level
// readout is refreshed.
const levelUpdatePeriod = 100 * time.Millisecond

// LevelUpdateSamples returns the number of samples in one level readout
// period at the given sample rate.
func LevelUpdateSamples(sampleRate int) int {
	return sampleRate * int(levelUpdatePeriod) / int(time.Second)
}

// LevelMonitor accumulates per-frame sample statistics and maintains the
// current RMS/peak readout and silence state. It is fed from the render
// loop, one frame at a time. It is safe for concurrent use.
type LevelMonitor struct {
	levelData     *LevelData
	silenceDetect *SilenceDetector
	peakHolder    *PeakHolder
	config        *config.Config
	updateSamples int

	mu     sync.Mutex
	levels types.AudioLevels
}

// NewLevelMonitor creates a level monitor using the silence thresholds and
// sample rate from cfg.
func NewLevelMonitor(cfg *config.Config) *LevelMonitor {
	return &LevelMonitor{
		levelData:     &LevelData{},
		silenceDetect: NewSilenceDetector(),
		peakHolder:    NewPeakHolder(),
		config:        cfg,
		updateSamples: LevelUpdateSamples(cfg.Snapshot().SampleRate),
		levels:        types.AudioLevels{RMS: MinDB, Peak: MinDB},
	}
}

// Process accumulates one frame of S16LE mono samples and refreshes the
// level readout once enough samples have been gathered.
func (m *LevelMonitor) Process(frame []byte) {
	ProcessSamples(frame, m.levelData)

	if m.levelData.SampleCount < m.updateSamples {
		return
	}

	levels := CalculateLevels(m.levelData)
	m.levelData.Reset()

	now := time.Now()
	heldPeak := m.peakHolder.Update(levels.Peak, now)

	// Fresh config snapshot so threshold changes apply without restart.
	cfg := m.config.Snapshot()
	silenceCfg := SilenceConfig{
		Threshold:  cfg.SilenceThreshold,
		DurationMs: cfg.SilenceDurationMs,
		RecoveryMs: cfg.SilenceRecoveryMs,
	}
	event := m.silenceDetect.Update(levels.RMS, silenceCfg, now)

	switch {
	case event.JustEntered:
		slog.Warn("silence detected", "level_db", event.CurrentLevel, "threshold_db", silenceCfg.Threshold)
	case event.JustRecovered:
		slog.Info("silence recovered", "total_ms", event.TotalDurationMs)
	}

	m.mu.Lock()
	m.levels = types.AudioLevels{
		RMS:               levels.RMS,
		Peak:              heldPeak,
		Silence:           event.InSilence,
		SilenceDurationMs: event.DurationMs,
		SilenceLevel:      event.Level,
		Clip:              levels.Clip,
	}
	m.mu.Unlock()
}

// AudioLevels returns the current audio levels.
func (m *LevelMonitor) AudioLevels() types.AudioLevels {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.levels
}
