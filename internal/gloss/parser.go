// Package gloss parses ASL gloss files and decodes the notation markers
// carried inside individual sign tokens.
package gloss

import "strings"

const (
	lineSeparator = "\n"
	signSeparator = "|"
)

// Line is one line of gloss notation: raw sign tokens in playback order.
type Line []string

// Document is a parsed gloss file. Lines are in source order.
type Document []Line

// Parse converts gloss file content into a Document. Blank lines are dropped,
// each remaining line is split on "|" and every token is trimmed. Empty
// tokens are discarded. Parse never fails.
func Parse(content string) Document {
	doc := Document{}
	for _, raw := range strings.Split(content, lineSeparator) {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		line := Line{}
		for _, fragment := range strings.Split(trimmed, signSeparator) {
			if sign := strings.TrimSpace(fragment); sign != "" {
				line = append(line, sign)
			}
		}
		doc = append(doc, line)
	}
	return doc
}

// LineCount returns the number of lines in the document.
func (d Document) LineCount() int {
	return len(d)
}

// SignCount returns the total number of sign tokens across all lines.
func (d Document) SignCount() int {
	total := 0
	for _, line := range d {
		total += len(line)
	}
	return total
}

// Line returns line i, or false when i is out of range.
func (d Document) Line(i int) (Line, bool) {
	if i < 0 || i >= len(d) {
		return nil, false
	}
	return d[i], true
}

// Text renders the document back into gloss file format.
func (d Document) Text() string {
	var b strings.Builder
	for i, line := range d {
		if i > 0 {
			b.WriteString(lineSeparator)
		}
		b.WriteString(strings.Join(line, " "+signSeparator+" "))
	}
	return b.String()
}
