package playback

import (
	"math"

	"github.com/jwulff/glossplayer/internal/gloss"
)

const (
	// DefaultStep is the progress added per simulated tick.
	DefaultStep = 0.005
	// DefaultBeatDivisions is the number of beats across a whole track.
	DefaultBeatDivisions = 20
)

// SessionOptions configures a Session.
type SessionOptions struct {
	Step          float64
	BeatDivisions int
}

// Tick is the outcome of advancing a Session once.
type Tick struct {
	Position
	// LineChanged is set when the active line differs from the previous tick.
	LineChanged bool
	// Beat is set when progress crossed a beat boundary.
	Beat bool
	// Finished is set when progress reached the end. The session has already
	// been rewound to 0 and the caller should stop ticking.
	Finished bool
}

// Session holds the progress state of one playback of a document. Ticks must
// be serialized by the owner; a Session is not safe for concurrent use.
type Session struct {
	doc      gloss.Document
	step     float64
	beats    int
	progress float64
	line     int
}

// NewSession creates a session positioned at the start of doc.
func NewSession(doc gloss.Document, opts SessionOptions) *Session {
	if opts.Step <= 0 {
		opts.Step = DefaultStep
	}
	if opts.BeatDivisions <= 0 {
		opts.BeatDivisions = DefaultBeatDivisions
	}
	s := &Session{doc: doc, step: opts.Step, beats: opts.BeatDivisions}
	s.Reset()
	return s
}

// Tick advances progress by the configured step.
func (s *Session) Tick() Tick {
	return s.Sample(s.progress + s.step)
}

// Sample moves the session to an externally supplied progress value, such
// as the position reported by an audio player.
func (s *Session) Sample(progress float64) Tick {
	prev := s.progress
	next := clampProgress(progress)

	t := Tick{
		Position: Locate(s.doc, next),
		Beat:     s.beatOf(prev) != s.beatOf(next),
	}
	if t.Line != s.line {
		t.LineChanged = true
		s.line = t.Line
	}

	if next >= 1 {
		t.Finished = true
		s.Reset()
		return t
	}
	s.progress = next
	return t
}

// Reset rewinds the session to the start of the document.
func (s *Session) Reset() {
	s.progress = 0
	s.line = Locate(s.doc, 0).Line
}

// Progress returns the current progress in [0,1).
func (s *Session) Progress() float64 {
	return s.progress
}

// Position returns the notation position for the current progress.
func (s *Session) Position() Position {
	return Locate(s.doc, s.progress)
}

func (s *Session) beatOf(p float64) int {
	return int(math.Floor(p * float64(s.beats)))
}
