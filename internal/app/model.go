// Package app is the bubbletea terminal UI: a song library screen and a
// player screen that highlights the gloss sign under the playback cursor.
package app

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwulff/glossplayer/internal/config"
	"github.com/jwulff/glossplayer/internal/gloss"
	"github.com/jwulff/glossplayer/internal/importer"
	"github.com/jwulff/glossplayer/internal/library"
	"github.com/jwulff/glossplayer/internal/logging"
	"github.com/jwulff/glossplayer/internal/playback"
	"github.com/jwulff/glossplayer/internal/ui"
)

// Screen is the screen currently shown.
type Screen int

const (
	ScreenLibrary Screen = iota
	ScreenPlayer
)

// inputMode is what keystrokes on the library screen are feeding.
type inputMode int

const (
	modeBrowse inputMode = iota
	modeSearch
	modeImportPath
	modeImportTitle
	modeConfirmDelete
)

// Library is the song repository the UI reads and writes.
type Library interface {
	Search(ctx context.Context, query string, filter library.Filter) ([]library.Song, error)
	Add(ctx context.Context, song library.Song) error
	ToggleFavorite(ctx context.Context, id string) (library.Song, error)
	TouchLastPlayed(ctx context.Context, id string) (library.Song, error)
	Delete(ctx context.Context, id string) error
}

// Audio is the optional audio player. *mpv.Client satisfies it.
type Audio interface {
	LoadFile(path string) error
	SetPause(paused bool) error
	Seek(seconds float64) error
	Progress() (float64, error)
}

// Options configures the model.
type Options struct {
	TickInterval  time.Duration
	Step          float64
	BeatDivisions int
	// Duration is the nominal track length shown by the clock.
	Duration time.Duration
	// Audio is nil when audio playback is disabled.
	Audio  Audio
	Logger *slog.Logger
}

// Model is the root bubbletea model for the glossplayer TUI.
type Model struct {
	lib    Library
	audio  Audio
	logger *slog.Logger
	opts   Options
	cache  *gloss.Cache

	screen Screen
	width  int
	height int

	// Library screen
	songs      []library.Song
	selected   int
	filter     library.Filter
	query      string
	mode       inputMode
	input      string
	importPath string

	// Player screen
	song        library.Song
	session     *playback.Session
	position    playback.Position
	playing     bool
	generation  int
	beat        bool
	scroll      int
	audioLoaded bool

	// Errors
	errorMessage   string
	errorTransient bool
	errorSeq       int

	// Status
	statusText string
}

// New creates a Model showing the library screen.
func New(lib Library, opts Options) Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = 100 * time.Millisecond
	}
	if opts.Duration <= 0 {
		opts.Duration = playback.DefaultDuration
	}
	return Model{
		lib:    lib,
		audio:  opts.Audio,
		logger: logging.OrNop(opts.Logger),
		opts:   opts,
		cache:  gloss.NewCache(),
		screen: ScreenLibrary,
		filter: library.FilterAll,
	}
}

// Init returns the initial command: load the library.
func (m Model) Init() tea.Cmd {
	return loadSongsCmd(m.lib, m.query, m.filter)
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureLineVisible()
		return m, nil

	case SongsLoadedMsg:
		if msg.Err != nil {
			return m, m.showError(msg.Err, false)
		}
		m.songs = msg.Songs
		if m.selected >= len(m.songs) {
			m.selected = max(0, len(m.songs)-1)
		}
		return m, nil

	case SongUpdatedMsg:
		if i := slices.IndexFunc(m.songs, func(s library.Song) bool { return s.ID == msg.Song.ID }); i >= 0 {
			m.songs[i] = msg.Song
		}
		if m.song.ID == msg.Song.ID {
			m.song = msg.Song
		}
		return m, loadSongsCmd(m.lib, m.query, m.filter)

	case SongDeletedMsg:
		m.statusText = "Deleted"
		return m, loadSongsCmd(m.lib, m.query, m.filter)

	case SongImportedMsg:
		m.statusText = "Imported " + msg.Song.Title
		return m, loadSongsCmd(m.lib, m.query, m.filter)

	case StoreErrorMsg:
		return m, m.showError(msg.Err, msg.Transient)

	case TickMsg:
		return m.handleTick(msg)

	case AudioLoadedMsg:
		if msg.SongID != m.song.ID {
			return m, nil
		}
		if msg.Err != nil {
			m.audioLoaded = false
			return m, m.showError(msg.Err, true)
		}
		m.audioLoaded = true
		return m, nil

	case AudioErrorMsg:
		m.audioLoaded = false
		return m, m.showError(msg.Err, true)

	case ClearTransientErrorMsg:
		if m.errorTransient && msg.Seq == m.errorSeq {
			m.errorMessage = ""
			m.errorTransient = false
		}
		return m, nil
	}

	return m, nil
}

// handleTick applies one playback tick. Ticks from an older run, or arriving
// while paused or off the player screen, are ignored.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.generation || !m.playing || m.screen != ScreenPlayer || m.session == nil {
		return m, nil
	}

	var cmds []tea.Cmd
	var tick playback.Tick
	switch {
	case m.audioLoaded && msg.Sampled:
		tick = m.session.Sample(msg.Progress)
	default:
		if m.audioLoaded && msg.Err != nil {
			m.audioLoaded = false
			cmds = append(cmds, m.showError(msg.Err, true))
		}
		tick = m.session.Tick()
	}

	m.position = tick.Position
	m.beat = tick.Beat
	if tick.LineChanged {
		m.ensureLineVisible()
	}

	if tick.Finished {
		m.playing = false
		m.generation++
		m.position = m.session.Position()
		m.scroll = 0
		m.statusText = "Finished"
		if m.audioLoaded {
			cmds = append(cmds, pauseAudioCmd(m.audio, true))
		}
		return m, tea.Batch(cmds...)
	}

	cmds = append(cmds, m.nextTick())
	return m, tea.Batch(cmds...)
}

func (m Model) nextTick() tea.Cmd {
	var audio Audio
	if m.audioLoaded {
		audio = m.audio
	}
	return tickCmd(m.generation, m.opts.TickInterval, audio)
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == KeyCtrlC {
		return m, tea.Quit
	}
	if m.screen == ScreenPlayer {
		return m.handlePlayerKey(msg)
	}
	switch m.mode {
	case modeSearch, modeImportPath, modeImportTitle:
		return m.handleInputKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmKey(msg)
	}
	return m.handleLibraryKey(msg)
}

func (m Model) handleLibraryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit:
		return m, tea.Quit

	case KeyTab:
		i := slices.Index(library.Filters, m.filter)
		m.filter = library.Filters[(i+1)%len(library.Filters)]
		m.selected = 0
		return m, loadSongsCmd(m.lib, m.query, m.filter)

	case KeySearch:
		m.mode = modeSearch
		m.input = m.query
		return m, nil

	case KeyJ, KeyDown:
		if m.selected < len(m.songs)-1 {
			m.selected++
		}
		return m, nil

	case KeyK, KeyUp:
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case KeyEnter:
		if song, ok := m.selectedSong(); ok {
			return m.openSong(song)
		}
		return m, nil

	case KeyFavorite:
		if song, ok := m.selectedSong(); ok {
			return m, toggleFavoriteCmd(m.lib, song.ID)
		}
		return m, nil

	case KeyDelete:
		if _, ok := m.selectedSong(); ok {
			m.mode = modeConfirmDelete
		}
		return m, nil

	case KeyImport:
		m.mode = modeImportPath
		m.input = ""
		m.importPath = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	song, ok := m.selectedSong()
	if msg.String() != KeyConfirm || !ok {
		return m, nil
	}
	return m, deleteSongCmd(m.lib, song.ID)
}

// handleInputKey edits the prompt text for search and import.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.mode == modeSearch && m.query != "" {
			m.query = ""
			m.mode = modeBrowse
			m.input = ""
			return m, loadSongsCmd(m.lib, m.query, m.filter)
		}
		m.mode = modeBrowse
		m.input = ""
		return m, nil

	case tea.KeyEnter:
		return m.submitInput()

	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
		return m, nil

	case tea.KeySpace:
		m.input += " "
		return m, nil

	case tea.KeyRunes:
		m.input += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input)
	switch m.mode {
	case modeSearch:
		m.mode = modeBrowse
		m.query = value
		m.input = ""
		m.selected = 0
		return m, loadSongsCmd(m.lib, m.query, m.filter)

	case modeImportPath:
		if value == "" {
			m.mode = modeBrowse
			return m, nil
		}
		if path, err := config.ExpandPath(value); err == nil {
			value = path
		}
		m.importPath = value
		m.input = importer.TitleFromFilename(value)
		m.mode = modeImportTitle
		return m, nil

	case modeImportTitle:
		m.mode = modeBrowse
		m.input = ""
		path := m.importPath
		m.importPath = ""
		return m, importCmd(m.lib, path, value)
	}
	return m, nil
}

func (m Model) selectedSong() (library.Song, bool) {
	if m.selected < 0 || m.selected >= len(m.songs) {
		return library.Song{}, false
	}
	return m.songs[m.selected], true
}

// openSong switches to the player screen, paused at the start of song.
func (m Model) openSong(song library.Song) (tea.Model, tea.Cmd) {
	m.song = song
	m.session = playback.NewSession(song.GlossData, playback.SessionOptions{
		Step:          m.opts.Step,
		BeatDivisions: m.opts.BeatDivisions,
	})
	m.position = m.session.Position()
	m.screen = ScreenPlayer
	m.playing = false
	m.generation++
	m.beat = false
	m.scroll = 0
	m.audioLoaded = false
	m.statusText = ""

	cmds := []tea.Cmd{touchCmd(m.lib, song.ID)}
	if m.audio != nil && song.AudioFile != "" {
		cmds = append(cmds, loadAudioCmd(m.audio, song.ID, song.AudioFile))
	}
	m.logger.Debug("song opened", "song_id", song.ID, "lines", song.GlossData.LineCount())
	return m, tea.Batch(cmds...)
}

func (m Model) handlePlayerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit:
		return m, tea.Quit

	case KeySpace:
		m.generation++
		m.beat = false
		if m.playing {
			m.playing = false
			m.statusText = "Paused"
			if m.audioLoaded {
				return m, pauseAudioCmd(m.audio, true)
			}
			return m, nil
		}
		m.playing = true
		m.statusText = ""
		cmds := []tea.Cmd{m.nextTick()}
		if m.audioLoaded {
			cmds = append(cmds, pauseAudioCmd(m.audio, false))
		}
		return m, tea.Batch(cmds...)

	case KeyReset:
		m.session.Reset()
		m.position = m.session.Position()
		m.beat = false
		m.scroll = 0
		if m.audioLoaded {
			return m, seekAudioCmd(m.audio, 0)
		}
		return m, nil

	case KeyFavorite:
		return m, toggleFavoriteCmd(m.lib, m.song.ID)

	case KeyEsc, KeyBack:
		m.screen = ScreenLibrary
		m.playing = false
		m.generation++
		m.beat = false
		m.statusText = ""
		cmds := []tea.Cmd{loadSongsCmd(m.lib, m.query, m.filter)}
		if m.audioLoaded {
			cmds = append(cmds, pauseAudioCmd(m.audio, true))
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// showError puts err in the error bar. Transient errors clear themselves.
func (m *Model) showError(err error, transient bool) tea.Cmd {
	m.logger.Warn("operation failed", "error", err, "transient", transient)
	m.errorMessage = err.Error()
	m.errorTransient = transient
	m.errorSeq++
	if transient {
		return clearTransientErrorCmd(m.errorSeq)
	}
	return nil
}

// ensureLineVisible scrolls the gloss lines so the active line is on screen.
// Lines wrap into several rows, so the window is measured in rendered rows.
func (m *Model) ensureLineVisible() {
	if !m.position.Active() {
		return
	}
	line := m.position.Line
	if line < m.scroll {
		m.scroll = line
		return
	}

	visible := m.glossVisibleLines()
	need := min(m.lineRows(line), visible)
	used := 0
	for i := m.scroll; i < line; i++ {
		used += m.lineRows(i)
	}
	for m.scroll < line && used+need > visible {
		used -= m.lineRows(m.scroll)
		m.scroll++
	}
}

// lineRows is the number of rows gloss line i wraps into at the current width.
func (m *Model) lineRows(i int) int {
	line, ok := m.song.GlossData.Line(i)
	if !ok || m.width == 0 {
		return 1
	}
	return len(ui.RenderLine(line, m.cache, playback.NoIndex, false, m.glossWidth()))
}
