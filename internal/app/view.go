package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jwulff/glossplayer/internal/library"
	"github.com/jwulff/glossplayer/internal/playback"
	"github.com/jwulff/glossplayer/internal/ui"
)

func (m Model) glossVisibleLines() int {
	if m.height == 0 {
		return 20
	}
	// Reserve: header(1) + status(1) + progress(1) + dividers(2) + error(1) + footer(1) + padding
	reserved := 8
	return max(3, m.height-reserved)
}

func (m Model) glossWidth() int {
	return max(10, m.width-4)
}

func (m Model) libraryVisibleRows() int {
	if m.height == 0 {
		return 20
	}
	// Reserve: header(1) + chips(1) + prompt(1) + dividers(2) + error(1) + footer(1) + padding
	reserved := 8
	return max(3, m.height-reserved)
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string
	if m.screen == ScreenPlayer {
		sections = m.playerSections()
	} else {
		sections = m.librarySections()
	}

	if m.errorMessage != "" {
		sections = append(sections, m.renderErrorBar())
	}
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) divider() string {
	return ui.DividerStyle.Render(strings.Repeat("─", m.width))
}

func (m Model) librarySections() []string {
	title := ui.TitleStyle.Render("GLOSSPLAYER")
	count := ui.DimStyle.Render(fmt.Sprintf(" — %d songs", len(m.songs)))

	return []string{
		title + count,
		m.renderChips(),
		m.renderPrompt(),
		m.divider(),
		m.renderSongList(),
		m.divider(),
	}
}

func (m Model) renderChips() string {
	var chips []string
	for _, f := range library.Filters {
		if f == m.filter {
			chips = append(chips, ui.ChipActiveStyle.Render(string(f)))
		} else {
			chips = append(chips, ui.ChipStyle.Render(string(f)))
		}
	}
	return strings.Join(chips, " ")
}

func (m Model) renderPrompt() string {
	switch m.mode {
	case modeSearch:
		return ui.PromptStyle.Render("Search: ") + m.input + "▌"
	case modeImportPath:
		return ui.PromptStyle.Render("Gloss file: ") + m.input + "▌"
	case modeImportTitle:
		return ui.PromptStyle.Render("Title: ") + m.input + "▌"
	case modeConfirmDelete:
		if song, ok := m.selectedSong(); ok {
			return ui.ErrorTextStyle.Render(fmt.Sprintf("Delete %q? (y/n)", song.Title))
		}
	}
	if m.query != "" {
		return ui.DimStyle.Render("Search: " + m.query)
	}
	if m.statusText != "" {
		return ui.StatusStyle.Render(m.statusText)
	}
	return ""
}

func (m Model) renderSongList() string {
	height := m.libraryVisibleRows()
	var lines []string

	if len(m.songs) == 0 {
		lines = append(lines, "")
		if m.query != "" || m.filter != library.FilterAll {
			lines = append(lines, ui.DimStyle.Render("  No songs match"))
		} else {
			lines = append(lines, ui.DimStyle.Render("  No songs yet"))
			lines = append(lines, ui.DimStyle.Render("  Press i to import a gloss file"))
		}
	} else {
		start := 0
		if m.selected >= height {
			start = m.selected - height + 1
		}
		end := min(len(m.songs), start+height)
		for i := start; i < end; i++ {
			lines = append(lines, m.renderSongRow(m.songs[i], i == m.selected))
		}
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSongRow(song library.Song, selected bool) string {
	star := " "
	if song.IsFavorite {
		star = ui.FavoriteStyle.Render("★")
	}
	meta := ui.DimStyle.Render(fmt.Sprintf("  %d signs · %s",
		song.GlossData.SignCount(), song.DateAdded.Local().Format("2006-01-02")))

	title := truncateToWidth(song.Title, max(10, m.width-30))
	if selected {
		return ui.SelectedStyle.Render("> ") + star + " " + ui.SelectedStyle.Render(title) + meta
	}
	return "  " + star + " " + title + meta
}

func (m Model) playerSections() []string {
	title := ui.TitleStyle.Render(m.song.Title)
	if m.song.IsFavorite {
		title += " " + ui.FavoriteStyle.Render("★")
	}

	return []string{
		title,
		m.renderPlayerStatus(),
		ui.ProgressBar(m.progress(), max(10, m.width-2)),
		m.divider(),
		m.renderGloss(),
		m.divider(),
	}
}

func (m Model) progress() float64 {
	if m.session == nil {
		return 0
	}
	return m.session.Progress()
}

func (m Model) renderPlayerStatus() string {
	var dot string
	if m.playing {
		dot = ui.PlayingDotStyle.Render("● PLAY")
	} else {
		dot = ui.PausedDotStyle.Render("○ PAUSE")
	}

	clock := ui.StatusStyle.Render(playback.FormatElapsed(m.progress(), m.opts.Duration))

	beat := " "
	if m.beat {
		beat = ui.BeatStyle.Render("♪")
	}

	var audio string
	if m.audioLoaded {
		audio = ui.DimStyle.Render("  [audio]")
	}

	status := dot + "  " + clock + "  " + beat + audio
	if m.statusText != "" {
		status += "  " + ui.StatusStyle.Render(m.statusText)
	}
	return status
}

func (m Model) renderGloss() string {
	height := m.glossVisibleLines()
	doc := m.song.GlossData
	var lines []string

	if doc.LineCount() == 0 {
		lines = append(lines, "", ui.DimStyle.Render("  This song has no gloss lines"))
	} else {
		width := m.glossWidth()
		for i := m.scroll; i < doc.LineCount() && len(lines) < height; i++ {
			active := i == m.position.Line
			highlight := playback.NoIndex
			if active {
				highlight = m.position.Sign
			}
			rows := ui.RenderLine(doc[i], m.cache, highlight, active, width)
			if active && highlight >= 0 {
				// A line taller than the window starts at the highlighted row.
				avail := height - len(lines)
				if r := ui.SignRow(doc[i], m.cache, highlight, width); r >= avail {
					rows = rows[r-avail+1:]
				}
			}
			for j, row := range rows {
				prefix := "  "
				if active && j == 0 {
					prefix = ui.SelectedStyle.Render("▶ ")
				}
				lines = append(lines, prefix+row)
			}
		}
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderErrorBar() string {
	return ui.ErrorStyle.Render("Error: ") + ui.ErrorTextStyle.Render(m.errorMessage)
}

func (m Model) renderFooter() string {
	var parts []string
	key := func(k, desc string) {
		parts = append(parts, ui.FooterKeyStyle.Render(k)+ui.FooterDescStyle.Render(" "+desc))
	}

	switch {
	case m.screen == ScreenPlayer:
		if m.playing {
			key("Space", "Pause")
		} else {
			key("Space", "Play")
		}
		key("r", "Reset")
		key("f", "Favorite")
		key("esc", "Back")
	case m.mode == modeSearch || m.mode == modeImportPath || m.mode == modeImportTitle:
		key("enter", "Apply")
		key("esc", "Cancel")
		return strings.Join(parts, "  ")
	case m.mode == modeConfirmDelete:
		key("y", "Delete")
		key("any", "Cancel")
		return strings.Join(parts, "  ")
	default:
		key("enter", "Play")
		key("Tab", "Filter")
		key("/", "Search")
		key("j/k", "Nav")
		key("f", "Favorite")
		key("d", "Delete")
		key("i", "Import")
	}

	key("q", "Quit")
	return strings.Join(parts, "  ")
}

// Helpers

func truncateToWidth(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}
