package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwulff/glossplayer/internal/importer"
	"github.com/jwulff/glossplayer/internal/library"
)

// transientErrorDelay is how long a transient error stays on screen.
const transientErrorDelay = 5 * time.Second

// loadSongsCmd lists the library for the given query and filter.
func loadSongsCmd(lib Library, query string, filter library.Filter) tea.Cmd {
	return func() tea.Msg {
		songs, err := lib.Search(context.Background(), query, filter)
		return SongsLoadedMsg{Songs: songs, Err: err}
	}
}

// toggleFavoriteCmd flips a song's favorite flag.
func toggleFavoriteCmd(lib Library, id string) tea.Cmd {
	return func() tea.Msg {
		song, err := lib.ToggleFavorite(context.Background(), id)
		if err != nil {
			return StoreErrorMsg{Err: err, Transient: true}
		}
		return SongUpdatedMsg{Song: song}
	}
}

// touchCmd records that a song was opened.
func touchCmd(lib Library, id string) tea.Cmd {
	return func() tea.Msg {
		song, err := lib.TouchLastPlayed(context.Background(), id)
		if err != nil {
			return StoreErrorMsg{Err: err, Transient: true}
		}
		return SongUpdatedMsg{Song: song}
	}
}

// deleteSongCmd removes a song from the library.
func deleteSongCmd(lib Library, id string) tea.Cmd {
	return func() tea.Msg {
		if err := lib.Delete(context.Background(), id); err != nil {
			return StoreErrorMsg{Err: err, Transient: true}
		}
		return SongDeletedMsg{ID: id}
	}
}

// importCmd reads a gloss file and adds it to the library.
func importCmd(lib Library, path, title string) tea.Cmd {
	return func() tea.Msg {
		song, err := importer.Import(context.Background(), lib, importer.Request{
			Path:  path,
			Title: title,
		})
		if err != nil {
			return StoreErrorMsg{Err: err, Transient: true}
		}
		return SongImportedMsg{Song: song}
	}
}

// tickCmd schedules the next playback tick for run gen. With audio set the
// player position is sampled when the timer fires.
func tickCmd(gen int, interval time.Duration, audio Audio) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		msg := TickMsg{Gen: gen}
		if audio != nil {
			progress, err := audio.Progress()
			if err != nil {
				msg.Err = err
			} else {
				msg.Sampled = true
				msg.Progress = progress
			}
		}
		return msg
	})
}

// loadAudioCmd loads a song's audio file paused at the start.
func loadAudioCmd(audio Audio, songID, path string) tea.Cmd {
	return func() tea.Msg {
		if err := audio.LoadFile(path); err != nil {
			return AudioLoadedMsg{SongID: songID, Err: err}
		}
		if err := audio.SetPause(true); err != nil {
			return AudioLoadedMsg{SongID: songID, Err: err}
		}
		return AudioLoadedMsg{SongID: songID}
	}
}

// pauseAudioCmd pauses or resumes the audio player.
func pauseAudioCmd(audio Audio, paused bool) tea.Cmd {
	return func() tea.Msg {
		if err := audio.SetPause(paused); err != nil {
			return AudioErrorMsg{Err: err}
		}
		return nil
	}
}

// seekAudioCmd moves the audio player to an absolute position.
func seekAudioCmd(audio Audio, seconds float64) tea.Cmd {
	return func() tea.Msg {
		if err := audio.Seek(seconds); err != nil {
			return AudioErrorMsg{Err: err}
		}
		return nil
	}
}

// clearTransientErrorCmd fires after a delay to clear the error shown as seq.
func clearTransientErrorCmd(seq int) tea.Cmd {
	return tea.Tick(transientErrorDelay, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{Seq: seq}
	})
}
