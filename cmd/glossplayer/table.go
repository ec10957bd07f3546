package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/jwulff/glossplayer/internal/library"
)

var songColumns = []string{"ID", "Title", "Fav", "Lines", "Signs", "Added"}

// songRow holds the cells printed for one song, in songColumns order.
func songRow(song library.Song) []string {
	fav := ""
	if song.IsFavorite {
		fav = "★"
	}
	return []string{
		song.ID,
		song.Title,
		fav,
		strconv.Itoa(song.GlossData.LineCount()),
		strconv.Itoa(song.GlossData.SignCount()),
		song.DateAdded.Local().Format("2006-01-02"),
	}
}

// renderSongTable draws songs as a rounded go-pretty table with the count
// columns right aligned.
func renderSongTable(songs []library.Song) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(songColumns))
	for i, name := range songColumns {
		header[i] = name
	}
	tw.AppendHeader(header)

	for _, song := range songs {
		cells := songRow(song)
		row := make(table.Row, len(cells))
		for i, cell := range cells {
			row[i] = cell
		}
		tw.AppendRow(row)
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Title", WidthMax: 48},
		{Name: "Lines", Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Name: "Signs", Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
