package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jwulff/glossplayer/internal/gloss"
	"github.com/jwulff/glossplayer/internal/library"
	"github.com/jwulff/glossplayer/internal/playback"
)

// SignView is the JSON form of a decoded sign.
type SignView struct {
	Raw     string   `json:"raw"`
	Text    string   `json:"text"`
	Parts   []string `json:"parts"`
	Markers []string `json:"markers"`
}

// PositionView is the JSON form of a mapped position.
type PositionView struct {
	Progress     float64 `json:"progress"`
	Line         int     `json:"line"`
	Sign         int     `json:"sign"`
	LineFraction float64 `json:"line_fraction"`
}

// SongSummary is one row of list_songs.
type SongSummary struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Lines      int        `json:"lines"`
	Signs      int        `json:"signs"`
	Favorite   bool       `json:"favorite"`
	DateAdded  time.Time  `json:"date_added"`
	LastPlayed *time.Time `json:"last_played,omitempty"`
}

// SongDetail is the result of get_song.
type SongDetail struct {
	SongSummary
	GlossFile      string       `json:"gloss_file"`
	SheetMusicFile string       `json:"sheet_music_file,omitempty"`
	AudioFile      string       `json:"audio_file,omitempty"`
	DecodedLines   [][]SignView `json:"decoded_lines"`
}

var errNoLibrary = errors.New("song library is not available")

// ViewSign converts a decoded sign to its JSON form.
func ViewSign(s gloss.Sign) SignView {
	return SignView{Raw: s.Raw, Text: s.Text(), Parts: s.Parts, Markers: s.MarkerNames()}
}

func summarize(song library.Song) SongSummary {
	return SongSummary{
		ID:         song.ID,
		Title:      song.Title,
		Lines:      song.GlossData.LineCount(),
		Signs:      song.GlossData.SignCount(),
		Favorite:   song.IsFavorite,
		DateAdded:  song.DateAdded,
		LastPlayed: song.LastPlayed,
	}
}

// ParseGloss handles parse_gloss.
func (h *Handlers) ParseGloss(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc := gloss.Parse(content)
	return jsonResult(struct {
		Lines     gloss.Document `json:"lines"`
		LineCount int            `json:"line_count"`
		SignCount int            `json:"sign_count"`
	}{doc, doc.LineCount(), doc.SignCount()})
}

// DecodeSign handles decode_sign.
func (h *Handlers) DecodeSign(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	token, err := req.RequireString("token")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(ViewSign(h.cache.Decode(token)))
}

// MapPosition handles map_position.
func (h *Handlers) MapPosition(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	progress, err := req.RequireFloat("progress")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lineCount, err := countArg(req, "line_count")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lineLength, err := countArg(req, "line_length")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pos := playback.Map(progress, lineCount, lineLength)
	return jsonResult(PositionView{
		Progress:     pos.Progress,
		Line:         pos.Line,
		Sign:         pos.Sign,
		LineFraction: pos.LineFraction,
	})
}

// MaxCount bounds the line_count and line_length arguments of map_position.
const MaxCount = math.MaxInt32

// countArg reads a whole, non-negative count no larger than MaxCount.
func countArg(req mcp.CallToolRequest, key string) (int, error) {
	v, err := req.RequireFloat(key)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || v < 0 || v > MaxCount || v != math.Trunc(v) {
		return 0, fmt.Errorf("%s must be a whole number between 0 and %d", key, MaxCount)
	}
	return int(v), nil
}

// ListSongs handles list_songs.
func (h *Handlers) ListSongs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.songs == nil {
		return mcp.NewToolResultError(errNoLibrary.Error()), nil
	}
	filter, ok := library.ParseFilter(req.GetString("filter", ""))
	if !ok {
		return mcp.NewToolResultError("filter must be one of all, recent, favorite"), nil
	}
	songs, err := h.songs.Search(ctx, req.GetString("query", ""), filter)
	if err != nil {
		h.logger.Warn("list songs failed", "error", err)
		return mcp.NewToolResultErrorFromErr("list songs", err), nil
	}

	summaries := make([]SongSummary, 0, len(songs))
	for _, song := range songs {
		summaries = append(summaries, summarize(song))
	}
	return jsonResult(summaries)
}

// GetSong handles get_song.
func (h *Handlers) GetSong(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.songs == nil {
		return mcp.NewToolResultError(errNoLibrary.Error()), nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	song, err := h.songs.ByID(ctx, id)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("get song", err), nil
	}

	lines := make([][]SignView, 0, song.GlossData.LineCount())
	for _, line := range song.GlossData {
		signs := make([]SignView, 0, len(line))
		for _, token := range line {
			signs = append(signs, ViewSign(h.cache.Decode(token)))
		}
		lines = append(lines, signs)
	}
	return jsonResult(SongDetail{
		SongSummary:    summarize(song),
		GlossFile:      song.GlossFile,
		SheetMusicFile: song.SheetMusicFile,
		AudioFile:      song.AudioFile,
		DecodedLines:   lines,
	})
}
