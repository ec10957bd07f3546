// Package library persists the song library: a JSON-encoded list of song
// records kept under a single key in a SQLite key-value table.
package library

import (
	"time"

	"github.com/jwulff/glossplayer/internal/gloss"
)

// Song is one imported song with its parsed gloss notation.
type Song struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	GlossFile      string         `json:"glossFile"`
	GlossData      gloss.Document `json:"glossData"`
	SheetMusicFile string         `json:"sheetMusicFile,omitempty"`
	AudioFile      string         `json:"audioFile,omitempty"`
	IsFavorite     bool           `json:"isFavorite,omitempty"`
	DateAdded      time.Time      `json:"dateAdded"`
	LastPlayed     *time.Time     `json:"lastPlayed,omitempty"`
}

// Filter selects which songs a listing returns.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterRecent   Filter = "recent"
	FilterFavorite Filter = "favorite"
)

// Filters lists the filters in the order the UI cycles through them.
var Filters = []Filter{FilterAll, FilterRecent, FilterFavorite}

// ParseFilter converts a user-supplied name into a Filter. The empty string
// means FilterAll.
func ParseFilter(name string) (Filter, bool) {
	switch Filter(name) {
	case "", FilterAll:
		return FilterAll, true
	case FilterRecent:
		return FilterRecent, true
	case FilterFavorite:
		return FilterFavorite, true
	}
	return "", false
}
