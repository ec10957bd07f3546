package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwulff/glossplayer/internal/gloss"
	"github.com/jwulff/glossplayer/internal/importer"
	"github.com/jwulff/glossplayer/internal/library"
	"github.com/jwulff/glossplayer/internal/mcpserver"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var title, sheetMusic, audio string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a gloss text file into the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveFileArg(args[0])
			if err != nil {
				return err
			}
			if strings.TrimSpace(title) == "" {
				title = importer.TitleFromFilename(path)
			}
			if !importer.LooksLikeGloss(path) {
				fmt.Fprintf(cmd.ErrOrStderr(), "note: %s does not look like a gloss file (expected *gloss*.txt)\n", path)
			}

			return ctx.withSongs(func(songs *library.Songs) error {
				song, err := importer.Import(cmd.Context(), songs, importer.Request{
					Path:           path,
					Title:          title,
					SheetMusicFile: sheetMusic,
					AudioFile:      audio,
				})
				if err != nil {
					return fmt.Errorf("import %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %q (%s): %d lines, %d signs\n",
					song.Title, song.ID, song.GlossData.LineCount(), song.GlossData.SignCount())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Song title (defaults to a title derived from the file name)")
	cmd.Flags().StringVar(&sheetMusic, "sheet-music", "", "Sheet music file to associate with the song")
	cmd.Flags().StringVar(&audio, "audio", "", "Audio file played through mpv")
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var filterName, query string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List songs in the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, ok := library.ParseFilter(strings.ToLower(strings.TrimSpace(filterName)))
			if !ok {
				return fmt.Errorf("unknown filter %q (use all, recent or favorite)", filterName)
			}
			return ctx.withSongs(func(songs *library.Songs) error {
				found, err := songs.Search(cmd.Context(), query, filter)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, found)
				}
				printSongs(cmd, found)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&filterName, "filter", "f", string(library.FilterAll), "Filter: all, recent or favorite")
	cmd.Flags().StringVarP(&query, "search", "s", "", "Only songs whose title contains this text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func printSongs(cmd *cobra.Command, songs []library.Song) {
	out := cmd.OutOrStdout()
	if len(songs) == 0 {
		fmt.Fprintln(out, "No songs")
		return
	}

	if !isTerminal(out) {
		for _, song := range songs {
			fmt.Fprintln(out, strings.Join(songRow(song), "\t"))
		}
		return
	}
	fmt.Fprintln(out, renderSongTable(songs))
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a song with its decoded gloss",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSongs(func(songs *library.Songs) error {
				song, err := songs.ByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, song)
				}
				printSong(cmd, song)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func printSong(cmd *cobra.Command, song library.Song) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", song.Title)
	fmt.Fprintf(out, "  ID:        %s\n", song.ID)
	fmt.Fprintf(out, "  Gloss:     %s\n", song.GlossFile)
	if song.SheetMusicFile != "" {
		fmt.Fprintf(out, "  Sheet:     %s\n", song.SheetMusicFile)
	}
	if song.AudioFile != "" {
		fmt.Fprintf(out, "  Audio:     %s\n", song.AudioFile)
	}
	fmt.Fprintf(out, "  Favorite:  %s\n", yesNo(song.IsFavorite))
	fmt.Fprintf(out, "  Added:     %s\n", song.DateAdded.Local().Format("2006-01-02 15:04"))
	if song.LastPlayed != nil {
		fmt.Fprintf(out, "  Played:    %s\n", song.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(out)

	cache := gloss.NewCache()
	for i, line := range song.GlossData {
		fmt.Fprintf(out, "%3d  %s\n", i+1, describeLine(cache, line))
	}
}

// describeLine renders each sign as TEXT or TEXT[marker,marker].
func describeLine(cache *gloss.Cache, line gloss.Line) string {
	parts := make([]string, 0, len(line))
	for _, token := range line {
		sign := cache.Decode(token)
		text := sign.Text()
		if names := sign.MarkerNames(); len(names) > 0 {
			text += "[" + strings.Join(names, ",") + "]"
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " | ")
}

func newFavoriteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite ID",
		Short: "Toggle a song's favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSongs(func(songs *library.Songs) error {
				song, err := songs.ToggleFavorite(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				state := "removed from"
				if song.IsFavorite {
					state = "added to"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%q %s favorites\n", song.Title, state)
				return nil
			})
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a song from the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSongs(func(songs *library.Songs) error {
				if err := songs.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func newDecodeCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "decode TOKEN...",
		Short:       "Decode gloss sign tokens",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			views := make([]mcpserver.SignView, 0, len(args))
			for _, token := range args {
				views = append(views, mcpserver.ViewSign(gloss.Decode(token)))
			}
			if asJSON {
				return writeJSON(cmd, views)
			}
			out := cmd.OutOrStdout()
			for _, v := range views {
				markers := "none"
				if len(v.Markers) > 0 {
					markers = strings.Join(v.Markers, ", ")
				}
				fmt.Fprintf(out, "%s\n  text:    %s\n  parts:   %s\n  markers: %s\n",
					v.Raw, v.Text, strings.Join(v.Parts, " / "), markers)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newParseCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "parse FILE",
		Short:       "Parse a gloss file without importing it",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveFileArg(args[0])
			if err != nil {
				return err
			}
			text, err := importer.ReadFile(path)
			if err != nil {
				return err
			}
			doc := gloss.Parse(text)
			if asJSON {
				return writeJSON(cmd, doc)
			}
			out := cmd.OutOrStdout()
			cache := gloss.NewCache()
			for i, line := range doc {
				fmt.Fprintf(out, "%3d  %s\n", i+1, describeLine(cache, line))
			}
			fmt.Fprintf(out, "%d lines, %d signs\n", doc.LineCount(), doc.SignCount())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
