// Package ui holds the lipgloss styles and the renderers that turn decoded
// signs into terminal text.
package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jwulff/glossplayer/internal/gloss"
)

// Glyphs decorating a rendered sign.
const (
	GlyphTwoHanded        = "‗"
	GlyphRaised           = "˄"
	GlyphDirectionalLeft  = "◂"
	GlyphDirectionalRight = "▸"
	GlyphConnector        = "‿"
	GlyphRoleShift        = "»"
)

// RenderSign renders one decoded sign. highlighted marks the sign under the
// playback cursor; active is false for signs on lines other than the active
// one.
func RenderSign(sign gloss.Sign, highlighted, active bool) string {
	style := SignStyle
	if !active {
		style = SignInactiveStyle
	}
	if sign.IsRightHand() {
		style = style.Underline(true)
	}
	if sign.IsLeftHand() {
		style = style.Italic(true)
	}
	if highlighted {
		style = style.Reverse(true).Bold(true)
	}

	var b strings.Builder
	if sign.IsRoleShift() {
		b.WriteString(RoleShiftMarkStyle.Render(GlyphRoleShift))
	}
	if sign.IsDirectionalLeft() {
		b.WriteString(DirectionMarkStyle.Render(GlyphDirectionalLeft))
	}
	if sign.IsRaised() {
		b.WriteString(RaisedMarkStyle.Render(GlyphRaised))
	}
	b.WriteString(style.Render(strings.Join(sign.Parts, GlyphConnector)))
	if sign.IsTwoHanded() {
		b.WriteString(TwoHandedMarkStyle.Render(GlyphTwoHanded))
	}
	if sign.IsDirectionalRight() {
		b.WriteString(DirectionMarkStyle.Render(GlyphDirectionalRight))
	}
	return b.String()
}

// RenderLine renders every sign of line and wraps them into rows no wider
// than width. highlight is the index of the highlighted sign, or a negative
// value for none. A width of zero or less disables wrapping. cache may be nil.
func RenderLine(line gloss.Line, cache *gloss.Cache, highlight int, active bool, width int) []string {
	rows, _ := layoutLine(line, cache, highlight, active, width)
	return rows
}

// SignRow returns the row RenderLine places sign i on at width, or 0 when i
// is out of range.
func SignRow(line gloss.Line, cache *gloss.Cache, i, width int) int {
	_, signRows := layoutLine(line, cache, -1, false, width)
	if i < 0 || i >= len(signRows) {
		return 0
	}
	return signRows[i]
}

func layoutLine(line gloss.Line, cache *gloss.Cache, highlight int, active bool, width int) ([]string, []int) {
	if len(line) == 0 {
		return []string{""}, nil
	}

	var rows []string
	signRows := make([]int, len(line))
	var row strings.Builder
	rowWidth := 0
	for i, token := range line {
		var sign gloss.Sign
		if cache != nil {
			sign = cache.Decode(token)
		} else {
			sign = gloss.Decode(token)
		}
		rendered := RenderSign(sign, i == highlight, active)
		w := lipgloss.Width(rendered)

		if rowWidth > 0 && width > 0 && rowWidth+1+w > width {
			rows = append(rows, row.String())
			row.Reset()
			rowWidth = 0
		}
		if rowWidth > 0 {
			row.WriteString(" ")
			rowWidth++
		}
		row.WriteString(rendered)
		rowWidth += w
		signRows[i] = len(rows)
	}
	return append(rows, row.String()), signRows
}

// ProgressBar renders progress in [0, 1] as a bar width cells wide.
func ProgressBar(progress float64, width int) string {
	if width <= 0 {
		return ""
	}
	if math.IsNaN(progress) || progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(math.Round(progress * float64(width)))
	return ProgressFilledStyle.Render(strings.Repeat("█", filled)) +
		ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}
