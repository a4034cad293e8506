// Package config provides application configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/scopeworks/wavescope/internal/util"
)

// Configuration defaults are used when values are not specified.
const (
	DefaultSampleRate        = 44100
	DefaultBufferLatencyMs   = 250
	DefaultWindowWidth       = 640
	DefaultWindowHeight      = 480
	DefaultWindowTitle       = "wavescope"
	DefaultVisibleSeconds    = 1.0
	DefaultAmplitudeScale    = 0.5
	DefaultTraceColor        = "#0000FF"
	DefaultServerPort        = 8080
	DefaultSilenceThreshold  = -40.0
	DefaultSilenceDurationMs = 2000 // 2 seconds below threshold
	DefaultSilenceRecoveryMs = 1000 // 1 second above threshold
)

// validate is the shared validator instance for configuration validation.
var validate = validator.New(validator.WithRequiredStructEnabled())

// AudioConfig holds audio capture settings.
type AudioConfig struct {
	SampleRate      int `json:"sample_rate" validate:"omitempty,gte=8000,lte=192000"` // Capture sample rate in Hz
	BufferLatencyMs int `json:"buffer_latency_ms" validate:"omitempty,gte=50,lte=2000"` // Frame ring buffering window
}

// DisplayConfig holds waveform display settings.
type DisplayConfig struct {
	Width          int     `json:"width" validate:"omitempty,gte=160,lte=7680"`  // Window width in pixels
	Height         int     `json:"height" validate:"omitempty,gte=120,lte=4320"` // Window height in pixels
	Title          string  `json:"title"`                                        // Window title
	VisibleSeconds float64 `json:"visible_seconds" validate:"omitempty,gt=0,lte=30"` // Audio shown per sweep
	AmplitudeScale float64 `json:"amplitude_scale" validate:"omitempty,gt=0,lte=1"`  // Vertical scale of the trace
	TraceColor     string  `json:"trace_color" validate:"omitempty,hexcolor"`        // Trace color (#RRGGBB)
}

// ServerConfig holds status server settings.
type ServerConfig struct {
	Enabled bool `json:"enabled"`                                    // Serve status API and live levels
	Port    int  `json:"port" validate:"omitempty,gte=1,lte=65535"` // HTTP listen port
}

// SilenceDetectionConfig holds silence detection thresholds and timing parameters.
type SilenceDetectionConfig struct {
	ThresholdDB float64 `json:"threshold_db" validate:"omitempty,lte=0"` // Silence threshold in dB
	DurationMs  int64   `json:"duration_ms" validate:"omitempty,gte=0"`  // Duration below threshold before silence alert
	RecoveryMs  int64   `json:"recovery_ms" validate:"omitempty,gte=0"`  // Duration above threshold before recovery
}

// Config holds all application configuration. It is safe for concurrent use.
type Config struct {
	Audio            AudioConfig            `json:"audio"`
	Display          DisplayConfig          `json:"display"`
	Server           ServerConfig           `json:"server"`
	SilenceDetection SilenceDetectionConfig `json:"silence_detection"`

	mu       sync.RWMutex
	filePath string
}

// New creates a new Config with default values.
func New(filePath string) *Config {
	return &Config{
		Audio: AudioConfig{
			SampleRate:      DefaultSampleRate,
			BufferLatencyMs: DefaultBufferLatencyMs,
		},
		Display: DisplayConfig{
			Width:          DefaultWindowWidth,
			Height:         DefaultWindowHeight,
			Title:          DefaultWindowTitle,
			VisibleSeconds: DefaultVisibleSeconds,
			AmplitudeScale: DefaultAmplitudeScale,
			TraceColor:     DefaultTraceColor,
		},
		Server: ServerConfig{Port: DefaultServerPort},
		SilenceDetection: SilenceDetectionConfig{
			ThresholdDB: DefaultSilenceThreshold,
			DurationMs:  DefaultSilenceDurationMs,
			RecoveryMs:  DefaultSilenceRecoveryMs,
		},
		filePath: filePath,
	}
}

// Load reads config from file, creating a default if none exists.
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.filePath)
	if os.IsNotExist(err) {
		return c.saveLocked()
	}
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return util.WrapError("parse config", err)
	}

	c.applyDefaults()

	if err := validate.Struct(c); err != nil {
		return util.WrapError("validate config", err)
	}

	// Trace color must parse into a GL color even past the format check.
	if _, err := util.HexToRGBA(c.Display.TraceColor); err != nil {
		return fmt.Errorf("invalid trace_color %q: must be hex format (#RRGGBB)", c.Display.TraceColor)
	}

	return nil
}

// applyDefaults sets default values for zero-value fields.
func (c *Config) applyDefaults() {
	// Audio defaults
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = DefaultSampleRate
	}
	if c.Audio.BufferLatencyMs == 0 {
		c.Audio.BufferLatencyMs = DefaultBufferLatencyMs
	}
	// Display defaults
	if c.Display.Width == 0 {
		c.Display.Width = DefaultWindowWidth
	}
	if c.Display.Height == 0 {
		c.Display.Height = DefaultWindowHeight
	}
	if c.Display.Title == "" {
		c.Display.Title = DefaultWindowTitle
	}
	if c.Display.VisibleSeconds == 0 {
		c.Display.VisibleSeconds = DefaultVisibleSeconds
	}
	if c.Display.AmplitudeScale == 0 {
		c.Display.AmplitudeScale = DefaultAmplitudeScale
	}
	if c.Display.TraceColor == "" {
		c.Display.TraceColor = DefaultTraceColor
	}
	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
	// Silence detection defaults
	if c.SilenceDetection.ThresholdDB == 0 {
		c.SilenceDetection.ThresholdDB = DefaultSilenceThreshold
	}
	if c.SilenceDetection.DurationMs == 0 {
		c.SilenceDetection.DurationMs = DefaultSilenceDurationMs
	}
	if c.SilenceDetection.RecoveryMs == 0 {
		c.SilenceDetection.RecoveryMs = DefaultSilenceRecoveryMs
	}
}

// saveLocked persists configuration. Caller must hold c.mu.
func (c *Config) saveLocked() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return util.WrapError("marshal config", err)
	}

	dir := filepath.Dir(c.filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return util.WrapError("create config directory", err)
	}

	if err := os.WriteFile(c.filePath, data, 0o600); err != nil {
		return util.WrapError("write config", err)
	}

	return nil
}

// Snapshot is a point-in-time copy of all configuration values.
type Snapshot struct {
	// Audio
	SampleRate    int
	BufferLatency time.Duration

	// Display
	WindowWidth    int
	WindowHeight   int
	WindowTitle    string
	VisibleSeconds float64
	AmplitudeScale float64
	TraceColor     string

	// Server
	ServerEnabled bool
	ServerPort    int

	// Silence detection
	SilenceThreshold  float64
	SilenceDurationMs int64
	SilenceRecoveryMs int64
}

// Snapshot returns a point-in-time copy of all configuration values.
func (c *Config) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Snapshot{
		// Audio
		SampleRate:    c.Audio.SampleRate,
		BufferLatency: time.Duration(c.Audio.BufferLatencyMs) * time.Millisecond,

		// Display
		WindowWidth:    c.Display.Width,
		WindowHeight:   c.Display.Height,
		WindowTitle:    c.Display.Title,
		VisibleSeconds: c.Display.VisibleSeconds,
		AmplitudeScale: c.Display.AmplitudeScale,
		TraceColor:     c.Display.TraceColor,

		// Server
		ServerEnabled: c.Server.Enabled,
		ServerPort:    c.Server.Port,

		// Silence detection
		SilenceThreshold:  c.SilenceDetection.ThresholdDB,
		SilenceDurationMs: c.SilenceDetection.DurationMs,
		SilenceRecoveryMs: c.SilenceDetection.RecoveryMs,
	}
}
