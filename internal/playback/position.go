// Package playback maps a normalized playback progress value onto the lines
// and signs of a gloss document, and drives that mapping from a tick clock.
package playback

import (
	"math"

	"github.com/jwulff/glossplayer/internal/gloss"
)

// NoIndex marks the absence of an active line or highlighted sign. It is
// distinct from index 0.
const NoIndex = -1

// Position is the notation position for one progress sample.
type Position struct {
	Progress float64
	Line     int
	Sign     int
	// LineFraction is the progress through the active line, in [0,1).
	LineFraction float64
}

// Map computes the active line and the highlighted sign within it.
// lineCount is the number of lines in the document and lineLength the number
// of signs in the active line. Progress is clamped to [0,1]; 1.0 maps to the
// last line.
func Map(progress float64, lineCount, lineLength int) Position {
	p := clampProgress(progress)
	pos := Position{Progress: p, Line: NoIndex, Sign: NoIndex}
	if lineCount <= 0 {
		return pos
	}

	scaled := p * float64(lineCount)
	pos.Line = floorIndex(scaled, lineCount)
	pos.LineFraction = scaled - math.Floor(scaled)

	if lineLength > 0 {
		pos.Sign = floorIndex(pos.LineFraction*float64(lineLength), lineLength)
	}
	return pos
}

// Locate maps progress onto doc, using the length of whichever line becomes
// active.
func Locate(doc gloss.Document, progress float64) Position {
	pos := Map(progress, doc.LineCount(), 0)
	if pos.Line == NoIndex {
		return pos
	}
	return Map(progress, doc.LineCount(), len(doc[pos.Line]))
}

// Active reports whether the position has an active line.
func (p Position) Active() bool {
	return p.Line != NoIndex
}

// Highlighted reports whether the sign at (line, sign) is the highlighted one.
func (p Position) Highlighted(line, sign int) bool {
	return p.Line != NoIndex && p.Sign != NoIndex && p.Line == line && p.Sign == sign
}

func clampProgress(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// floorIndex returns floor(x) clamped to [0, n-1]. The clamp happens in
// float64 so counts near math.MaxInt cannot overflow the conversion.
func floorIndex(x float64, n int) int {
	f := math.Floor(x)
	switch {
	case f <= 0:
		return 0
	case f >= float64(n-1):
		return n - 1
	}
	return int(f)
}
