// Package main provides an oscilloscope-style waveform visualizer that
// captures audio from the default input device and draws it as a scrolling
// line in an OpenGL window.
//
// Usage:
//
//	wavescope [-config path/to/config.json]
//
// If -config is not specified, wavescope looks for config.json in the same
// directory as the binary.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/scopeworks/wavescope/internal/audio"
	"github.com/scopeworks/wavescope/internal/config"
	"github.com/scopeworks/wavescope/internal/display"
	"github.com/scopeworks/wavescope/internal/render"
	"github.com/scopeworks/wavescope/internal/util"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: config.json next to binary)")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	listDevices := flag.Bool("list-devices", false, "List audio input devices and exit")
	flag.Parse()

	if *showVersion {
		slog.Info("version info", "version", Version, "commit", Commit, "build_time", BuildTime)
		return
	}

	if *listDevices {
		devices, err := audio.Devices()
		if err != nil {
			slog.Error("failed to list audio devices", "error", err)
			os.Exit(1)
		}
		for _, d := range devices {
			slog.Info("input device",
				"name", d.Name,
				"channels", d.MaxInputChannels,
				"sample_rate", d.DefaultSampleRate,
				"default", d.Default)
		}
		return
	}

	if *configPath == "" {
		execPath, err := os.Executable()
		if err != nil {
			slog.Error("failed to get executable path", "error", err)
			os.Exit(1)
		}
		*configPath = filepath.Join(filepath.Dir(execPath), "config.json")
	}

	slog.Info("using config file", "path", *configPath)

	cfg := config.New(*configPath)
	if err := cfg.Load(); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	snap := cfg.Snapshot()

	// Open the capture device. Failing here is fatal: there is nothing to
	// visualize without an input.
	device, err := audio.OpenInputDevice(snap.SampleRate)
	if err != nil {
		slog.Error("failed to open capture device", "error", err)
		os.Exit(1)
	}

	capture := audio.NewCapture(device, audio.FrameBytes(snap.SampleRate), audio.RingFrames(snap.BufferLatency))
	monitor := audio.NewLevelMonitor(cfg)

	slog.Info("capture ready",
		"sample_rate", snap.SampleRate,
		"frame_bytes", audio.FrameBytes(snap.SampleRate),
		"ring_frames", audio.RingFrames(snap.BufferLatency))

	// Create the render window and GL pipeline. GPU setup failures are
	// fatal with a descriptive message.
	win, err := display.Open(display.WindowOptions{
		Width:  snap.WindowWidth,
		Height: snap.WindowHeight,
		Title:  snap.WindowTitle,
	})
	if err != nil {
		slog.Error("failed to open render window", "error", err)
		os.Exit(1)
	}

	traceColor, err := util.HexToRGBA(snap.TraceColor)
	if err != nil {
		slog.Error("invalid trace color", "color", snap.TraceColor, "error", err)
		os.Exit(1)
	}

	backend, err := display.NewBackend(traceColor)
	if err != nil {
		slog.Error("failed to set up GL pipeline", "error", err)
		os.Exit(1)
	}

	wave, err := render.NewWaveform(backend, render.Options{
		SampleRate:     snap.SampleRate,
		VisibleSeconds: snap.VisibleSeconds,
		AmplitudeScale: snap.AmplitudeScale,
	})
	if err != nil {
		slog.Error("failed to allocate waveform buffer", "error", err)
		os.Exit(1)
	}

	var fps atomic.Int64

	// Optional status server.
	var srv *Server
	var httpServer interface{ Shutdown(context.Context) error }
	if snap.ServerEnabled {
		srv = NewServer(cfg, capture, monitor, &fps)
		httpServer = srv.Start()
	}

	// Close the window on SIGINT/SIGTERM so the render loop unwinds
	// through its normal shutdown path.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, util.ShutdownSignals()...)
	go func() {
		<-sigChan
		slog.Info("shutdown signal received")
		win.RequestClose()
	}()

	runRenderLoop(win, backend, capture, monitor, wave, &fps)

	slog.Info("shutting down")

	capture.Stop()

	if srv != nil {
		srv.version.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		}
	}

	if err := capture.Close(); err != nil {
		slog.Error("error closing capture", "error", err)
	}

	win.Close()

	slog.Info("shutdown complete")
}

// runRenderLoop drives the display at the monitor refresh rate until the
// window closes. Each tick drains at most one frame from the capture ring;
// an empty ring leaves the trace where it is.
func runRenderLoop(win *display.Window, backend *display.Backend, capture *audio.Capture, monitor *audio.LevelMonitor, wave *render.Waveform, fps *atomic.Int64) {
	frames := 0
	lastReport := time.Now()

	for !win.ShouldClose() {
		backend.Clear()

		// The first iteration starts the capture; afterwards this is a
		// no-op until Stop.
		if !capture.IsOpen() {
			capture.Start()
		}

		frame, ok := capture.Read()
		if ok {
			monitor.Process(frame.Bytes())
			wave.Tick(frame.Bytes(), true)
		} else {
			wave.Tick(nil, false)
		}

		win.SwapBuffers()
		win.PollEvents()

		frames++
		if now := time.Now(); now.Sub(lastReport) >= time.Second {
			fps.Store(int64(frames))
			slog.Debug("render rate", "fps", frames, "buffered_frames", capture.Buffered())
			frames = 0
			lastReport = now
		}
	}
}
