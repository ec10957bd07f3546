package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwulff/glossplayer/internal/gloss"
	"github.com/jwulff/glossplayer/internal/library"
	"github.com/jwulff/glossplayer/internal/playback"
)

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "play ID",
		Short: "Play a song's gloss in the terminal without the full UI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if interval <= 0 {
				interval = cfg.TickInterval()
			}

			var song library.Song
			err = ctx.withSongs(func(songs *library.Songs) error {
				var err error
				song, err = songs.TouchLastPlayed(cmd.Context(), args[0])
				return err
			})
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			session := playback.NewSession(song.GlossData, playback.SessionOptions{
				Step:          cfg.Playback.Step,
				BeatDivisions: cfg.Playback.BeatDivisions,
			})
			return playSong(runCtx, cmd, song, session, interval, cfg.Duration())
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Tick interval (defaults to playback.tick_interval_ms)")
	return cmd
}

// playSong ticks session until the song finishes or ctx is cancelled,
// printing each line as it becomes active.
func playSong(ctx context.Context, cmd *cobra.Command, song library.Song, session *playback.Session, interval, duration time.Duration) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "▶ %s\n", song.Title)
	if song.GlossData.LineCount() == 0 {
		fmt.Fprintln(out, "(no gloss lines)")
		return nil
	}

	cache := gloss.NewCache()
	printLine := func(pos playback.Position) {
		line, ok := song.GlossData.Line(pos.Line)
		if !ok {
			return
		}
		fmt.Fprintf(out, "[%s] %s\n", playback.FormatElapsed(pos.Progress, duration), plainLine(cache, line))
	}
	printLine(session.Position())

	err := playback.Run(ctx, interval, func() bool {
		tick := session.Tick()
		if tick.Finished {
			return false
		}
		if tick.LineChanged {
			printLine(tick.Position)
		}
		return true
	})
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, "stopped")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "■ finished")
	return nil
}

func plainLine(cache *gloss.Cache, line gloss.Line) string {
	parts := make([]string, 0, len(line))
	for _, token := range line {
		parts = append(parts, cache.Decode(token).Text())
	}
	return strings.Join(parts, " ")
}
