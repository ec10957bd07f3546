package importer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwulff/glossplayer/internal/gloss"
	"github.com/jwulff/glossplayer/internal/library"
)

// ErrTitleRequired is returned when the import request has a blank title.
var ErrTitleRequired = errors.New("song title is required")

// Request describes one song import.
type Request struct {
	Path           string
	Title          string
	SheetMusicFile string
	AudioFile      string
}

// Adder stores a new song.
type Adder interface {
	Add(ctx context.Context, song library.Song) error
}

// Import reads and parses the gloss file in req and adds the song to songs.
// Nothing is stored when the file cannot be read.
func Import(ctx context.Context, songs Adder, req Request) (library.Song, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return library.Song{}, ErrTitleRequired
	}

	text, err := ReadFile(req.Path)
	if err != nil {
		return library.Song{}, err
	}

	glossFile, err := filepath.Abs(req.Path)
	if err != nil {
		glossFile = req.Path
	}

	song := library.Song{
		ID:             uuid.NewString(),
		Title:          title,
		GlossFile:      glossFile,
		GlossData:      gloss.Parse(text),
		SheetMusicFile: strings.TrimSpace(req.SheetMusicFile),
		AudioFile:      strings.TrimSpace(req.AudioFile),
		DateAdded:      time.Now().UTC(),
	}
	if err := songs.Add(ctx, song); err != nil {
		return library.Song{}, fmt.Errorf("store song: %w", err)
	}
	return song, nil
}
