// Package types provides shared type definitions used across the visualizer.
package types

// SilenceLevel represents the silence detection state.
type SilenceLevel string

// SilenceLevelActive indicates silence is confirmed.
const SilenceLevelActive SilenceLevel = "active"

// AudioLevels is the current audio level measurement for the level readout.
type AudioLevels struct {
	// RMS is the RMS level in dB.
	RMS float64 `json:"rms"`
	// Peak is the held peak level in dB.
	Peak float64 `json:"peak"`
	// Silence reports whether audio is below the configured silence threshold.
	Silence bool `json:"silence,omitzero"`
	// SilenceDurationMs is how long silence has lasted in milliseconds.
	SilenceDurationMs int64 `json:"silence_duration_ms,omitzero"`
	// SilenceLevel indicates the silence detection state (active or empty).
	SilenceLevel SilenceLevel `json:"silence_level,omitzero"`
	// Clip is how many samples clipped during the last measurement period.
	Clip int `json:"clip,omitzero"`
}

// VersionInfo describes the running build and any available update.
type VersionInfo struct {
	// Current is the running version.
	Current string `json:"current"`
	// Latest is the newest published release, if known.
	Latest string `json:"latest,omitzero"`
	// Commit is the git commit the binary was built from.
	Commit string `json:"commit"`
	// BuildTime is the build timestamp in human-readable form.
	BuildTime string `json:"build_time"`
	// UpdateAvail reports whether Latest is newer than Current.
	UpdateAvail bool `json:"update_available"`
}

// WSLevelsResponse is pushed to WebSocket clients with live audio levels.
type WSLevelsResponse struct {
	Type   string      `json:"type"` // "levels"
	Levels AudioLevels `json:"levels"`
}

// StatusResponse describes the visualizer state for the status API and
// WebSocket status pushes.
type StatusResponse struct {
	Type           string      `json:"type,omitzero"` // "status" on WebSocket pushes
	CaptureState   string      `json:"capture_state"`
	SampleRate     int         `json:"sample_rate"`
	BufferedFrames int         `json:"buffered_frames"`
	Uptime         string      `json:"uptime"`
	FPS            int         `json:"fps"`
	Version        VersionInfo `json:"version"`
}
