// Package mcpserver exposes gloss parsing, sign decoding, position mapping
// and the song library as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jwulff/glossplayer/internal/gloss"
	"github.com/jwulff/glossplayer/internal/library"
	"github.com/jwulff/glossplayer/internal/logging"
)

// ServerName is reported to MCP clients during initialization.
const ServerName = "glossplayer"

// SongReader is the read side of the song library.
type SongReader interface {
	Search(ctx context.Context, query string, filter library.Filter) ([]library.Song, error)
	ByID(ctx context.Context, id string) (library.Song, error)
}

// Handlers implements the tool handlers. songs may be nil, in which case
// the library tools report an error.
type Handlers struct {
	songs  SongReader
	cache  *gloss.Cache
	logger *slog.Logger
}

// NewHandlers returns tool handlers backed by songs.
func NewHandlers(songs SongReader, logger *slog.Logger) *Handlers {
	return &Handlers{songs: songs, cache: gloss.NewCache(), logger: logging.OrNop(logger)}
}

// NewServer builds an MCP server with every tool registered.
func NewServer(h *Handlers, version string) *server.MCPServer {
	s := server.NewMCPServer(ServerName, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.AddTool(mcp.NewTool("parse_gloss",
		mcp.WithDescription("Parse ASL gloss text into lines of sign tokens. Lines are separated by newlines and signs by '|'."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Gloss text")),
	), h.ParseGloss)

	s.AddTool(mcp.NewTool("decode_sign",
		mcp.WithDescription("Decode one gloss token into display text, parts and annotation markers."),
		mcp.WithString("token", mcp.Required(), mcp.Description("Sign token such as HELLO(2h)^ or CAT~DOG")),
	), h.DecodeSign)

	s.AddTool(mcp.NewTool("map_position",
		mcp.WithDescription("Map playback progress in [0,1] to the active line and highlighted sign. -1 means none."),
		mcp.WithNumber("progress", mcp.Required(), mcp.Description("Playback progress, clamped to [0,1]")),
		mcp.WithNumber("line_count", mcp.Required(), mcp.Min(0), mcp.Max(MaxCount), mcp.Description("Number of lines")),
		mcp.WithNumber("line_length", mcp.Required(), mcp.Min(0), mcp.Max(MaxCount), mcp.Description("Number of signs on the active line")),
	), h.MapPosition)

	s.AddTool(mcp.NewTool("list_songs",
		mcp.WithDescription("List songs in the library."),
		mcp.WithString("query", mcp.Description("Case-insensitive title search")),
		mcp.WithString("filter", mcp.Enum("all", "recent", "favorite"), mcp.Description("Listing filter")),
	), h.ListSongs)

	s.AddTool(mcp.NewTool("get_song",
		mcp.WithDescription("Get a song with its decoded gloss lines."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Song ID")),
	), h.GetSong)

	return s
}

// Serve runs the MCP server on the given streams until ctx is cancelled or
// the input closes.
func Serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	err := server.NewStdioServer(s).Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("serve mcp: %w", err)
	}
	return nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
