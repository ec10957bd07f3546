package main

import (
	"context"
	"log/slog"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jwulff/glossplayer/internal/app"
	"github.com/jwulff/glossplayer/internal/config"
	"github.com/jwulff/glossplayer/internal/mpv"
)

func runTUI(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger := ctx.ensureLogger()

	store, songs, err := ctx.openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	opts := app.Options{
		TickInterval:  cfg.TickInterval(),
		Step:          cfg.Playback.Step,
		BeatDivisions: cfg.Playback.BeatDivisions,
		Duration:      cfg.Duration(),
		Logger:        logger,
	}

	if cfg.Audio.Enabled {
		client, proc := connectAudio(cmd.Context(), cfg, logger)
		if client != nil {
			defer client.Close()
			opts.Audio = client
		}
		if proc != nil {
			defer func() {
				_, _ = client.Command("quit")
				_ = proc.Wait()
			}()
		}
	}

	logger.Info("tui starting", "library", store.Path(), "audio", opts.Audio != nil)
	program := tea.NewProgram(app.New(songs, opts), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = program.Run()
	return err
}

// connectAudio dials a running mpv or, when configured, launches one. Audio
// is optional: failures are logged and the UI falls back to the simulated
// clock.
func connectAudio(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*mpv.Client, *exec.Cmd) {
	client, err := mpv.Connect(cfg.Audio.MPVSocket)
	if err == nil {
		return client, nil
	}
	if !cfg.Audio.Launch {
		logger.Warn("audio disabled: mpv not reachable", "socket", cfg.Audio.MPVSocket, "error", err)
		return nil, nil
	}

	client, proc, err := mpv.Launch(ctx, cfg.Audio.MPVBinary, cfg.Audio.MPVSocket)
	if err != nil {
		logger.Warn("audio disabled: mpv launch failed", "binary", cfg.Audio.MPVBinary, "error", err)
		return nil, nil
	}
	logger.Info("mpv launched", "pid", proc.Process.Pid, "socket", cfg.Audio.MPVSocket)
	return client, proc
}
