package library

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/jwulff/glossplayer/internal/logging"
)

// SongsKey is the key holding the JSON song list.
const SongsKey = "songs"

// DefaultRecentLimit is the number of songs Recent returns when limit <= 0.
const DefaultRecentLimit = 5

var (
	// ErrNotFound is returned when no song has the requested ID.
	ErrNotFound = errors.New("song not found")
	// ErrDuplicate is returned when adding a song whose ID is already stored.
	ErrDuplicate = errors.New("song already exists")
)

// Songs is the song repository. Every mutation rewrites the whole list with
// a single Set, so a failed write leaves the previous list intact.
type Songs struct {
	kv     KV
	logger *slog.Logger
	now    func() time.Time
}

// NewSongs returns a repository over kv.
func NewSongs(kv KV, logger *slog.Logger) *Songs {
	return &Songs{kv: kv, logger: logging.OrNop(logger), now: time.Now}
}

// All returns every song in stored order.
func (s *Songs) All(ctx context.Context) ([]Song, error) {
	raw, ok, err := s.kv.Get(ctx, SongsKey)
	if err != nil {
		return nil, fmt.Errorf("load songs: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []Song{}, nil
	}
	var songs []Song
	if err := json.Unmarshal([]byte(raw), &songs); err != nil {
		return nil, fmt.Errorf("decode songs: %w", err)
	}
	if songs == nil {
		songs = []Song{}
	}
	return songs, nil
}

// Add appends song to the library.
func (s *Songs) Add(ctx context.Context, song Song) error {
	err := s.mutate(ctx, func(songs []Song) ([]Song, error) {
		if slices.ContainsFunc(songs, func(existing Song) bool { return existing.ID == song.ID }) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, song.ID)
		}
		return append(songs, song), nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("song added", "song_id", song.ID, "title", song.Title, "lines", song.GlossData.LineCount())
	return nil
}

// Recent returns up to limit songs, newest DateAdded first.
func (s *Songs) Recent(ctx context.Context, limit int) ([]Song, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	songs, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	sortRecent(songs)
	if len(songs) > limit {
		songs = songs[:limit]
	}
	return songs, nil
}

// ByID returns the song with the given ID.
func (s *Songs) ByID(ctx context.Context, id string) (Song, error) {
	songs, err := s.All(ctx)
	if err != nil {
		return Song{}, err
	}
	for _, song := range songs {
		if song.ID == id {
			return song, nil
		}
	}
	return Song{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Update replaces the stored song that has the same ID.
func (s *Songs) Update(ctx context.Context, song Song) error {
	return s.mutate(ctx, func(songs []Song) ([]Song, error) {
		i := indexOf(songs, song.ID)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, song.ID)
		}
		songs[i] = song
		return songs, nil
	})
}

// Delete removes the song with the given ID.
func (s *Songs) Delete(ctx context.Context, id string) error {
	err := s.mutate(ctx, func(songs []Song) ([]Song, error) {
		i := indexOf(songs, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return slices.Delete(songs, i, i+1), nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("song deleted", "song_id", id)
	return nil
}

// ToggleFavorite flips the favorite flag and returns the updated song.
func (s *Songs) ToggleFavorite(ctx context.Context, id string) (Song, error) {
	var updated Song
	err := s.mutate(ctx, func(songs []Song) ([]Song, error) {
		i := indexOf(songs, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		songs[i].IsFavorite = !songs[i].IsFavorite
		updated = songs[i]
		return songs, nil
	})
	return updated, err
}

// TouchLastPlayed sets LastPlayed to now and returns the updated song.
func (s *Songs) TouchLastPlayed(ctx context.Context, id string) (Song, error) {
	var updated Song
	err := s.mutate(ctx, func(songs []Song) ([]Song, error) {
		i := indexOf(songs, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		now := s.now().UTC()
		songs[i].LastPlayed = &now
		updated = songs[i]
		return songs, nil
	})
	return updated, err
}

// Search returns the songs whose title contains query, compared with Unicode
// case folding, narrowed by filter. An empty query matches every song.
func (s *Songs) Search(ctx context.Context, query string, filter Filter) ([]Song, error) {
	songs, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return Select(songs, query, filter), nil
}

// Select applies the search query and filter to an already loaded list.
func Select(songs []Song, query string, filter Filter) []Song {
	matched := make([]Song, 0, len(songs))
	needle := fold(strings.TrimSpace(query))
	for _, song := range songs {
		if needle != "" && !strings.Contains(fold(song.Title), needle) {
			continue
		}
		if filter == FilterFavorite && !song.IsFavorite {
			continue
		}
		matched = append(matched, song)
	}
	if filter == FilterRecent {
		sortRecent(matched)
	}
	return matched
}

func (s *Songs) mutate(ctx context.Context, fn func([]Song) ([]Song, error)) error {
	return s.kv.Update(ctx, func() error {
		songs, err := s.All(ctx)
		if err != nil {
			return err
		}
		songs, err = fn(songs)
		if err != nil {
			return err
		}
		data, err := json.Marshal(songs)
		if err != nil {
			return fmt.Errorf("encode songs: %w", err)
		}
		if err := s.kv.Set(ctx, SongsKey, string(data)); err != nil {
			return fmt.Errorf("save songs: %w", err)
		}
		return nil
	})
}

func indexOf(songs []Song, id string) int {
	return slices.IndexFunc(songs, func(song Song) bool { return song.ID == id })
}

func sortRecent(songs []Song) {
	slices.SortStableFunc(songs, func(a, b Song) int {
		return cmp.Compare(b.DateAdded.UnixNano(), a.DateAdded.UnixNano())
	})
}

func fold(s string) string {
	return cases.Fold().String(s)
}
