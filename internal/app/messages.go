package app

import "github.com/jwulff/glossplayer/internal/library"

// SongsLoadedMsg carries the library listing for the current query and filter.
type SongsLoadedMsg struct {
	Songs []library.Song
	Err   error
}

// SongUpdatedMsg carries a song changed by a favorite toggle or play.
type SongUpdatedMsg struct {
	Song library.Song
}

// SongDeletedMsg is sent after a song is removed from the library.
type SongDeletedMsg struct {
	ID string
}

// SongImportedMsg is sent after a gloss file is imported.
type SongImportedMsg struct {
	Song library.Song
}

// StoreErrorMsg reports a failed library operation.
type StoreErrorMsg struct {
	Err       error
	Transient bool
}

// TickMsg advances playback. Gen identifies the play run that scheduled it;
// ticks from an older run are dropped. When audio is playing the tick also
// carries the sampled player position.
type TickMsg struct {
	Gen      int
	Sampled  bool
	Progress float64
	Err      error
}

// AudioLoadedMsg reports the result of loading a song's audio file.
type AudioLoadedMsg struct {
	SongID string
	Err    error
}

// AudioErrorMsg reports a failed audio transport command.
type AudioErrorMsg struct {
	Err error
}

// ClearTransientErrorMsg clears a transient error after a timeout. Seq
// identifies the error it was scheduled for; a newer error is left alone.
type ClearTransientErrorMsg struct {
	Seq int
}
